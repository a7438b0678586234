package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/jsonlogic-go/jsonlogic/ast"
	"github.com/jsonlogic-go/jsonlogic/config"
	"github.com/jsonlogic-go/jsonlogic/internal/log"
	"github.com/jsonlogic-go/jsonlogic/metrics"
	"github.com/jsonlogic-go/jsonlogic/rule"
	"github.com/jsonlogic-go/jsonlogic/topdown"
)

type evalCommandParams struct {
	format        string
	extensions    bool
	reportMetrics bool
	logLevel      string
	logFormat     string
}

func newEvalCommandParams() evalCommandParams {
	return evalCommandParams{format: "json", logLevel: "info", logFormat: "text"}
}

func init() {
	params := newEvalCommandParams()

	evalCmd := &cobra.Command{
		Use:   "eval <rule.json> [data.json]",
		Short: "Evaluate a JsonLogic rule",
		Long: `Evaluate a JsonLogic rule and print the result.

Examples
--------

Evaluate a rule with no data context:

    $ jsonlogic eval rule.json

Evaluate a rule against a JSON data document:

    $ jsonlogic eval rule.json data.json

Output Formats
--------------

    --format=json    output the result as JSON (default)
    --format=pretty  output the result in the value model's textual form
`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return errors.Wrap(err, "loading config")
			}
			cfg = config.ApplyFlags(cfg, cmd.Flags())
			dataPath := ""
			if len(args) == 2 {
				dataPath = args[1]
			}
			return runEval(args[0], dataPath, params, cfg, os.Stdout)
		},
	}

	evalCmd.Flags().StringVarP(&params.format, "format", "f", params.format, "set output format (json, pretty)")
	evalCmd.Flags().BoolVarP(&params.extensions, "extensions", "", params.extensions, "enable optional operators (regex)")
	evalCmd.Flags().BoolVarP(&params.reportMetrics, "metrics", "", params.reportMetrics, "report evaluation metrics")
	evalCmd.Flags().StringVarP(&params.logLevel, "log-level", "", params.logLevel, "set log level (debug, info, warn, error)")
	evalCmd.Flags().StringVarP(&params.logFormat, "log-format", "", params.logFormat, "set log format (text, json)")

	RootCommand.AddCommand(evalCmd)
}

func runEval(rulePath, dataPath string, params evalCommandParams, cfg config.Config, w io.Writer) error {
	evalID := uuid.New().String()

	logger := log.NewLogger()
	if err := logger.SetLevel(cfg.LogLevel); err != nil {
		return errors.Wrap(err, "invalid log level")
	}
	if cfg.LogFormat == "json" {
		logger.SetJSONFormatter()
	}
	entry := logger.WithField("eval_id", evalID)

	ruleJSON, err := readJSONFile(rulePath)
	if err != nil {
		return errors.Wrap(err, "reading rule")
	}

	var m metrics.Metrics
	if params.reportMetrics {
		m = metrics.New()
	}

	opts := []rule.Option{rule.WithDiagnosticSink(topdown.NewLoggerSink(logger))}
	if cfg.Extensions || params.extensions {
		opts = append(opts, rule.WithExtensions())
	}
	if m != nil {
		opts = append(opts, rule.WithMetrics(m))
	}

	r, err := rule.Build(ruleJSON, opts...)
	if err != nil {
		return errors.Wrap(err, "building rule")
	}
	entry.Debugf("built rule with %d named variable(s), computed names: %v", len(r.VariableNames()), r.HasComputedNames())

	var result ast.Value
	if dataPath != "" {
		dataJSON, err := readJSONFile(dataPath)
		if err != nil {
			return errors.Wrap(err, "reading data")
		}
		result, err = r.ApplyWithAccessor(topdown.NewJSONAccessor(dataJSON))
		if err != nil {
			return errors.Wrap(err, "evaluating rule")
		}
	} else {
		result, err = r.Apply()
		if err != nil {
			return errors.Wrap(err, "evaluating rule")
		}
	}

	return writeResult(w, result, m, cfg.OutputFormat)
}

func writeResult(w io.Writer, result ast.Value, m metrics.Metrics, format string) error {
	if format == "pretty" {
		fmt.Fprintln(w, result.String())
		return nil
	}
	out := struct {
		Result  ast.Value       `json:"result"`
		Metrics json.RawMessage `json:"metrics,omitempty"`
	}{Result: result}
	if m != nil {
		raw, err := m.MarshalJSON()
		if err != nil {
			return errors.Wrap(err, "marshaling metrics")
		}
		out.Metrics = raw
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func readJSONFile(path string) (interface{}, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}
