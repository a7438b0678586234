package cmd

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/jsonlogic-go/jsonlogic/config"
	"github.com/jsonlogic-go/jsonlogic/rule"
)

func init() {
	extensions := false

	varsCmd := &cobra.Command{
		Use:   "vars <rule.json>",
		Short: "Print a rule's variable-name table",
		Long: `Print the ordered, deduplicated table of literal variable names a rule
references, and whether it also contains any computed variable reference
(a dynamic name, a dotted-and-bracketed name, or missing/missing_some).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return errors.Wrap(err, "loading config")
			}
			cfg = config.ApplyFlags(cfg, cmd.Flags())
			return runVars(args[0], cfg.Extensions || extensions, os.Stdout)
		},
	}

	varsCmd.Flags().BoolVarP(&extensions, "extensions", "", false, "enable optional operators (regex)")
	RootCommand.AddCommand(varsCmd)
}

func runVars(rulePath string, extensions bool, w io.Writer) error {
	ruleJSON, err := readJSONFile(rulePath)
	if err != nil {
		return errors.Wrap(err, "reading rule")
	}

	var opts []rule.Option
	if extensions {
		opts = append(opts, rule.WithExtensions())
	}
	r, err := rule.Build(ruleJSON, opts...)
	if err != nil {
		return errors.Wrap(err, "building rule")
	}

	out := struct {
		Variables        []string `json:"variables"`
		HasComputedNames bool     `json:"has_computed_names"`
	}{
		Variables:        r.VariableNames(),
		HasComputedNames: r.HasComputedNames(),
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
