package cmd

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/jsonlogic-go/jsonlogic/config"
)

func init() {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the fully-resolved configuration jsonlogic would use, after
merging built-in defaults, .jsonlogic.yaml and JSONLOGIC_* environment
variables, in that order of increasing precedence. This command defines
no flags, so the flag overrides that eval and vars accept do not apply.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return errors.Wrap(err, "loading config")
			}
			cfg = config.ApplyFlags(cfg, cmd.Flags())
			return runConfig(cfg, os.Stdout)
		},
	}

	RootCommand.AddCommand(configCmd)
}

func runConfig(cfg config.Config, w io.Writer) error {
	return config.Dump(cfg, w)
}
