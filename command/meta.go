package command

import (
	"flag"
	"io"

	"github.com/hashicorp/cli"
	"github.com/mitchellh/colorstring"
	"github.com/posener/complete"

	"github.com/hpcops/jobgate/api"
)

// FlagSetFlags is an enum to define what flags are present in the
// default FlagSet returned by Meta.FlagSet.
type FlagSetFlags uint

const (
	FlagSetNone    FlagSetFlags = 0
	FlagSetClient  FlagSetFlags = 1 << iota
	FlagSetDefault              = FlagSetClient
)

// Meta contains the meta-options and functionality that nearly every
// jobgate command inherits.
type Meta struct {
	Ui cli.Ui

	// These are set by the command line flags.
	flagAddress string

	// token is the shared token presented to the agent
	token string

	// Whether to not-colorize output
	noColor bool
}

// FlagSet returns a FlagSet with the common flags that every
// command implements.
func (m *Meta) FlagSet(n string, fs FlagSetFlags) *flag.FlagSet {
	f := flag.NewFlagSet(n, flag.ContinueOnError)

	// FlagSetClient is used to enable the settings for specifying
	// agent connectivity options.
	if fs&FlagSetClient != 0 {
		f.StringVar(&m.flagAddress, "address", "", "")
		f.StringVar(&m.token, "token", "", "")
		f.BoolVar(&m.noColor, "no-color", false, "")
	}

	f.SetOutput(io.Discard)

	return f
}

// AutocompleteFlags returns a set of flag completions for the given flag set.
func (m *Meta) AutocompleteFlags(fs FlagSetFlags) complete.Flags {
	if fs&FlagSetClient == 0 {
		return nil
	}

	return complete.Flags{
		"-address":  complete.PredictAnything,
		"-token":    complete.PredictAnything,
		"-no-color": complete.PredictNothing,
	}
}

// Colorize returns the colorization configured by the command flags.
func (m *Meta) Colorize() *colorstring.Colorize {
	return &colorstring.Colorize{
		Colors:  colorstring.DefaultColors,
		Disable: m.noColor,
		Reset:   true,
	}
}

// Client is used to initialize and return a new API client using
// the default command line arguments and env vars.
func (m *Meta) Client() (*api.Client, error) {
	config := api.DefaultConfig()
	if m.flagAddress != "" {
		config.Address = m.flagAddress
	}
	if m.token != "" {
		config.Token = m.token
	}
	return api.NewClient(config)
}

// generalOptionsUsage returns the help text for the global options shared by
// every client command.
func generalOptionsUsage() string {
	return `
  -address=<addr>
    The address of the jobgate agent. Overrides the JOBGATE_ADDR
    environment variable if set. Defaults to http://127.0.0.1:6818.

  -token=<token>
    The shared token used to authenticate with the agent. Overrides the
    JOBGATE_TOKEN environment variable if set.

  -no-color
    Disables colored command output.`
}
