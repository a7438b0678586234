package topdown

import (
	"github.com/jsonlogic-go/jsonlogic/ast"
	"github.com/jsonlogic-go/jsonlogic/internal/log"
)

// DiagnosticSink receives the values passed through log() during
// evaluation. Rules use log() to trace intermediate results without
// affecting the value the surrounding expression evaluates to.
type DiagnosticSink interface {
	Log(v ast.Value)
}

// LoggerSink adapts an internal/log.Logger to DiagnosticSink, writing each
// logged value at Info level.
type LoggerSink struct {
	Logger log.Logger
}

// NewLoggerSink wraps logger as a DiagnosticSink.
func NewLoggerSink(logger log.Logger) LoggerSink {
	return LoggerSink{Logger: logger}
}

// Log implements DiagnosticSink.
func (s LoggerSink) Log(v ast.Value) {
	if s.Logger == nil {
		return
	}
	s.Logger.WithField("value", v.String()).Info("jsonlogic log()")
}
