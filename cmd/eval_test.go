package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jsonlogic-go/jsonlogic/config"
)

func writeTempJSON(t *testing.T, dir, name string, v interface{}) string {
	t.Helper()
	p := filepath.Join(dir, name)
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(p, data, 0o600); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}

func TestRunEvalNoData(t *testing.T) {
	dir := t.TempDir()
	rulePath := writeTempJSON(t, dir, "rule.json", map[string]interface{}{"+": []interface{}{1, 2}})

	var buf bytes.Buffer
	if err := runEval(rulePath, "", newEvalCommandParams(), config.Config{OutputFormat: "json", LogLevel: "info"}, &buf); err != nil {
		t.Fatalf("runEval: %v", err)
	}

	var out struct {
		Result json.Number `json:"result"`
	}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal output %q: %v", buf.String(), err)
	}
	if out.Result.String() != "3" {
		t.Errorf("result = %q, want 3", out.Result.String())
	}
}

func TestRunEvalWithData(t *testing.T) {
	dir := t.TempDir()
	rulePath := writeTempJSON(t, dir, "rule.json", map[string]interface{}{"var": "x"})
	dataPath := writeTempJSON(t, dir, "data.json", map[string]interface{}{"x": "hello"})

	var buf bytes.Buffer
	if err := runEval(rulePath, dataPath, newEvalCommandParams(), config.Config{OutputFormat: "json", LogLevel: "info"}, &buf); err != nil {
		t.Fatalf("runEval: %v", err)
	}
	var out struct {
		Result string `json:"result"`
	}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal output %q: %v", buf.String(), err)
	}
	if out.Result != "hello" {
		t.Errorf("result = %q, want hello", out.Result)
	}
}

func TestRunEvalPrettyFormat(t *testing.T) {
	dir := t.TempDir()
	rulePath := writeTempJSON(t, dir, "rule.json", true)

	var buf bytes.Buffer
	if err := runEval(rulePath, "", newEvalCommandParams(), config.Config{OutputFormat: "pretty", LogLevel: "info"}, &buf); err != nil {
		t.Fatalf("runEval: %v", err)
	}
	if buf.String() != "true\n" {
		t.Errorf("pretty output = %q, want %q", buf.String(), "true\n")
	}
}

func TestRunEvalMalformedRuleIsError(t *testing.T) {
	dir := t.TempDir()
	rulePath := writeTempJSON(t, dir, "rule.json", map[string]interface{}{"bogus-op": 1})

	var buf bytes.Buffer
	if err := runEval(rulePath, "", newEvalCommandParams(), config.Config{OutputFormat: "json", LogLevel: "info"}, &buf); err == nil {
		t.Fatal("expected error for unsupported operator")
	}
}

func TestRunEvalMissingFileIsError(t *testing.T) {
	var buf bytes.Buffer
	if err := runEval(filepath.Join(t.TempDir(), "missing.json"), "", newEvalCommandParams(), config.Config{OutputFormat: "json", LogLevel: "info"}, &buf); err == nil {
		t.Fatal("expected error for missing rule file")
	}
}

func TestRunEvalReportsMetrics(t *testing.T) {
	dir := t.TempDir()
	rulePath := writeTempJSON(t, dir, "rule.json", map[string]interface{}{"+": []interface{}{1, 2}})

	params := newEvalCommandParams()
	params.reportMetrics = true

	var buf bytes.Buffer
	if err := runEval(rulePath, "", params, config.Config{OutputFormat: "json", LogLevel: "info"}, &buf); err != nil {
		t.Fatalf("runEval: %v", err)
	}
	var out struct {
		Metrics map[string]interface{} `json:"metrics"`
	}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal output %q: %v", buf.String(), err)
	}
	if len(out.Metrics) == 0 {
		t.Errorf("expected non-empty metrics, got %v", out.Metrics)
	}
}

func TestRunEvalExtensionsFlagEnablesRegex(t *testing.T) {
	dir := t.TempDir()
	rulePath := writeTempJSON(t, dir, "rule.json", map[string]interface{}{
		"regex": []interface{}{"^a.*z$", "abz"},
	})

	params := newEvalCommandParams()
	params.extensions = true

	var buf bytes.Buffer
	if err := runEval(rulePath, "", params, config.Config{OutputFormat: "json", LogLevel: "info"}, &buf); err != nil {
		t.Fatalf("runEval: %v", err)
	}
	var out struct {
		Result bool `json:"result"`
	}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal output %q: %v", buf.String(), err)
	}
	if !out.Result {
		t.Errorf("regex result = %v, want true", out.Result)
	}
}
