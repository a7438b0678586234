package cmd

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestRunVarsListsDedupedNames(t *testing.T) {
	dir := t.TempDir()
	rulePath := writeTempJSON(t, dir, "rule.json", map[string]interface{}{
		"and": []interface{}{
			map[string]interface{}{"var": "a"},
			map[string]interface{}{"var": "b"},
			map[string]interface{}{"var": "a"},
		},
	})

	var buf bytes.Buffer
	if err := runVars(rulePath, false, &buf); err != nil {
		t.Fatalf("runVars: %v", err)
	}

	var out struct {
		Variables        []string `json:"variables"`
		HasComputedNames bool     `json:"has_computed_names"`
	}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal output %q: %v", buf.String(), err)
	}
	if got, want := out.Variables, []string{"a", "b"}; len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("variables = %v, want %v", got, want)
	}
	if out.HasComputedNames {
		t.Errorf("has_computed_names = true, want false")
	}
}

func TestRunVarsFlagsComputedNames(t *testing.T) {
	dir := t.TempDir()
	rulePath := writeTempJSON(t, dir, "rule.json", map[string]interface{}{
		"missing": []interface{}{"a", "b"},
	})

	var buf bytes.Buffer
	if err := runVars(rulePath, false, &buf); err != nil {
		t.Fatalf("runVars: %v", err)
	}
	var out struct {
		HasComputedNames bool `json:"has_computed_names"`
	}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal output %q: %v", buf.String(), err)
	}
	if !out.HasComputedNames {
		t.Errorf("has_computed_names = false, want true for a rule containing missing")
	}
}

func TestRunVarsRequiresExtensionsForRegex(t *testing.T) {
	dir := t.TempDir()
	rulePath := writeTempJSON(t, dir, "rule.json", map[string]interface{}{
		"regex": []interface{}{"^a$", "a"},
	})

	var buf bytes.Buffer
	if err := runVars(rulePath, false, &buf); err == nil {
		t.Fatal("expected error building regex rule without extensions")
	}

	buf.Reset()
	if err := runVars(rulePath, true, &buf); err != nil {
		t.Fatalf("runVars with extensions: %v", err)
	}
}
