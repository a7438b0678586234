package log

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"testing"
)

func TestInfo(t *testing.T) {
	var buffer bytes.Buffer
	var fields Fields

	logger := getLogger(&buffer)

	logger.Info("Hello")

	err := json.Unmarshal(buffer.Bytes(), &fields)
	if err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}

	assertResult(t, fields["level"], "info")
	assertResult(t, fields["msg"], "Hello")
}

func TestDebug(t *testing.T) {
	var buffer bytes.Buffer
	var fields Fields

	logger := getLogger(&buffer)
	logger.SetLevel("debug")

	logger.Debugf("Hello %v", "World")

	err := json.Unmarshal(buffer.Bytes(), &fields)
	if err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}

	assertResult(t, fields["level"], "debug")
	assertResult(t, fields["msg"], "Hello World")
}

func TestError(t *testing.T) {
	var buffer bytes.Buffer
	var fields Fields

	logger := getLogger(&buffer)
	logger.SetLevel("error")

	logger.Errorln("Bad Error")

	err := json.Unmarshal(buffer.Bytes(), &fields)
	if err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}

	assertResult(t, fields["level"], "error")
	assertResult(t, fields["msg"], "Bad Error")
}

func TestWarn(t *testing.T) {
	var buffer bytes.Buffer
	var fields Fields

	logger := getLogger(&buffer)
	logger.SetLevel("Warn")

	logger.Warn("Bad Warning")

	err := json.Unmarshal(buffer.Bytes(), &fields)
	if err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}

	assertResult(t, fields["level"], "warning")
	assertResult(t, fields["msg"], "Bad Warning")
}

// TestWithFieldStampsEvalID mirrors how cmd/eval.go stamps a run's eval_id,
// via a single WithField call, onto the lines written through that entry.
func TestWithFieldStampsEvalID(t *testing.T) {
	var buffer bytes.Buffer
	var fields Fields

	logger := getLogger(&buffer)

	entry := logger.WithField("eval_id", "test-eval-id")
	entry.Info("Hello")

	err := json.Unmarshal(buffer.Bytes(), &fields)
	if err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}

	assertResult(t, fields["eval_id"], "test-eval-id")
}

// TestWithFieldStampsLoggedValue mirrors topdown.LoggerSink, which stamps
// the value passed to a rule's log() call onto the "value" field.
func TestWithFieldStampsLoggedValue(t *testing.T) {
	var buffer bytes.Buffer
	var fields Fields

	logger := getLogger(&buffer)

	entry := logger.WithField("value", `"hi"`)
	entry.Info("jsonlogic log()")

	err := json.Unmarshal(buffer.Bytes(), &fields)
	if err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}

	assertResult(t, fields["value"], `"hi"`)
}

func TestWithFields(t *testing.T) {
	var buffer bytes.Buffer
	var fields Fields

	logger := getLogger(&buffer)

	entry := logger.WithFields(Fields{
		"foo": "bar",
	})

	entry.Info("Hello")

	err := json.Unmarshal(buffer.Bytes(), &fields)
	if err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}

	assertResult(t, fields["foo"], "bar")
}

func TestWithContext(t *testing.T) {
	var buffer bytes.Buffer
	var fields Fields

	type ctxKey struct{}

	ctx := context.WithValue(context.Background(), ctxKey{}, "bar")

	logger := getLogger(&buffer)
	logger = logger.WithContext(ctx)

	entry := logger.WithFields(Fields{
		"baz": "test",
	})

	entry.Info("Hello")

	err := json.Unmarshal(buffer.Bytes(), &fields)
	if err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}

	assertResult(t, entry.Context, ctx)
}

func assertResult(t *testing.T, actual, expected interface{}) {
	if actual != expected {
		t.Fatalf("Expected result %v but got %v", expected, actual)
	}
}

func getLogger(w io.Writer) Logger {
	logger := NewLogger()
	logger.SetOutput(w)
	logger.SetJSONFormatter()
	return logger
}
