// Command jsonlogic is a command-line harness for building and evaluating
// JsonLogic rules against the library in github.com/jsonlogic-go/jsonlogic.
package main

import (
	"os"

	"github.com/jsonlogic-go/jsonlogic/cmd"
)

func main() {
	if err := cmd.RootCommand.Execute(); err != nil {
		os.Exit(1)
	}
}
