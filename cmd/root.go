// Package cmd implements the jsonlogic command-line test harness: an
// external collaborator that exercises rule.Build/Apply through their
// public API, not part of the evaluation core's contract.
package cmd

import (
	"os"
	"path"

	"github.com/spf13/cobra"
)

// RootCommand is the base CLI command that all subcommands are added to.
var RootCommand = &cobra.Command{
	Use:   path.Base(os.Args[0]),
	Short: "jsonlogic evaluates JsonLogic rules",
	Long:  "jsonlogic is a command-line harness for building and evaluating JsonLogic rules.",
}
