package main

import (
	"fmt"
	"os"

	"github.com/hashicorp/cli"
	colorable "github.com/mattn/go-colorable"

	"github.com/hpcops/jobgate/command"
	"github.com/hpcops/jobgate/version"
)

func main() {
	os.Exit(Run(os.Args[1:]))
}

// Run runs the CLI with the given arguments and returns the exit code.
func Run(args []string) int {
	// Parse flags into env vars for global use
	args = setupEnv(args)

	ui := &cli.BasicUi{
		Reader:      os.Stdin,
		Writer:      colorable.NewColorableStdout(),
		ErrorWriter: colorable.NewColorableStderr(),
	}

	metaPtr := &command.Meta{
		Ui: ui,
	}

	// The agent command writes its own output
	agentUi := &cli.BasicUi{
		Reader:      os.Stdin,
		Writer:      colorable.NewColorableStdout(),
		ErrorWriter: colorable.NewColorableStderr(),
	}

	c := cli.NewCLI("jobgate", version.GetVersion().FullVersionNumber(true))
	c.Args = args
	c.Commands = command.Commands(metaPtr, agentUi)
	c.HelpWriter = os.Stdout

	exitCode, err := c.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error executing CLI: %s\n", err.Error())
		return 1
	}

	return exitCode
}

// setupEnv parses args and may replace them and set some env vars to known
// values based on format options
func setupEnv(args []string) []string {
	for _, arg := range args {
		// Check if command is exactly "-v" or "--version"
		if arg == "-v" || arg == "--version" {
			return []string{"version"}
		}
	}
	return args
}
