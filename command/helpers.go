package command

import (
	"fmt"

	"github.com/posener/complete"
	"github.com/ryanuber/columnize"
)

// NamedCommand is a interface to denote a command's name.
type NamedCommand interface {
	Name() string
}

// formatKV takes a set of strings and formats them into properly
// aligned k = v pairs using the columnize library.
func formatKV(in []string) string {
	columnConf := columnize.DefaultConfig()
	columnConf.Empty = "<none>"
	columnConf.Glue = " = "
	return columnize.Format(in, columnConf)
}

func mergeAutocompleteFlags(flags ...complete.Flags) complete.Flags {
	merged := make(map[string]complete.Predictor, len(flags))
	for _, f := range flags {
		for k, v := range f {
			merged[k] = v
		}
	}
	return merged
}

func commandErrorText(cmd NamedCommand) string {
	return fmt.Sprintf("For additional help try 'jobgate %s -help'", cmd.Name())
}
