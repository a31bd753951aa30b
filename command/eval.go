package command

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	humanize "github.com/dustin/go-humanize"
	"github.com/posener/complete"

	"github.com/hpcops/jobgate/jobgate"
	"github.com/hpcops/jobgate/jobgate/structs"
)

// EvalCommand runs the submission rule chain over a JSON job descriptor and
// prints what changed. By default the rules run in-process; with -address
// the descriptor is sent through a running agent instead, which exercises
// the exact path the host sees.
type EvalCommand struct {
	Meta

	mailDomain string
	uid        uint
	remote     bool
	jsonOut    bool
}

func (c *EvalCommand) Help() string {
	helpText := `
Usage: jobgate eval [options] <path>

  Evaluates the submission rules against the job descriptor in the given
  JSON file and prints the mutated descriptor. Reads from stdin if path
  is "-".

General Options:
` + generalOptionsUsage() + `

Eval Options:

  -remote
    Send the descriptor to a running agent instead of evaluating the
    rules in-process.

  -mail-domain=<domain>
    The mail domain used for local evaluation. Defaults to example.edu.

  -uid=<uid>
    The submitting user id to report. Defaults to the current uid.

  -json
    Output the mutated descriptor as JSON instead of a field listing.
`
	return strings.TrimSpace(helpText)
}

func (c *EvalCommand) Synopsis() string {
	return "Runs the submission rules over a job descriptor"
}

func (c *EvalCommand) Name() string { return "eval" }

func (c *EvalCommand) AutocompleteFlags() complete.Flags {
	return mergeAutocompleteFlags(c.Meta.AutocompleteFlags(FlagSetClient),
		complete.Flags{
			"-remote":      complete.PredictNothing,
			"-mail-domain": complete.PredictAnything,
			"-uid":         complete.PredictAnything,
			"-json":        complete.PredictNothing,
		})
}

func (c *EvalCommand) AutocompleteArgs() complete.Predictor {
	return complete.PredictFiles("*.json")
}

func (c *EvalCommand) Run(args []string) int {
	flags := c.Meta.FlagSet(c.Name(), FlagSetClient)
	flags.Usage = func() { c.Ui.Output(c.Help()) }
	flags.StringVar(&c.mailDomain, "mail-domain", "", "")
	flags.UintVar(&c.uid, "uid", uint(os.Getuid()), "")
	flags.BoolVar(&c.remote, "remote", false, "")
	flags.BoolVar(&c.jsonOut, "json", false, "")

	if err := flags.Parse(args); err != nil {
		return 1
	}

	args = flags.Args()
	if len(args) != 1 {
		c.Ui.Error("This command takes one argument: <path>")
		c.Ui.Error(commandErrorText(c))
		return 1
	}

	job, err := c.readJob(args[0])
	if err != nil {
		c.Ui.Error(fmt.Sprintf("Error reading job descriptor: %s", err))
		return 1
	}
	before := job.Copy()

	if c.remote {
		if err := c.evalRemote(job); err != nil {
			c.Ui.Error(fmt.Sprintf("Error evaluating job via agent: %s", err))
			return 1
		}
	} else {
		config := jobgate.DefaultConfig()
		if c.mailDomain != "" {
			config.MailDomain = c.mailDomain
		}
		policy := jobgate.NewPolicy(config, nil)
		policy.OnSubmit(job, nil, uint32(c.uid))
	}

	if c.jsonOut {
		out, err := json.MarshalIndent(job, "", "    ")
		if err != nil {
			c.Ui.Error(fmt.Sprintf("Error formatting output: %s", err))
			return 1
		}
		c.Ui.Output(string(out))
		return 0
	}

	c.Ui.Output(formatKV([]string{
		fmt.Sprintf("User|%s", job.UserName),
		fmt.Sprintf("Mail User|%s", renderMail(job)),
		fmt.Sprintf("Min Mem Per Node|%s", renderMem(job)),
		fmt.Sprintf("Shared|%s", renderShared(job.Shared)),
	}))

	if changed := diffFields(before, job); len(changed) > 0 {
		c.Ui.Output(c.Colorize().Color("\n[bold]Mutated fields:[reset] " + strings.Join(changed, ", ")))
	} else {
		c.Ui.Output("\nNo fields mutated")
	}
	return 0
}

func (c *EvalCommand) readJob(path string) (*structs.JobDescriptor, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var job structs.JobDescriptor
	if err := json.NewDecoder(r).Decode(&job); err != nil {
		return nil, err
	}
	return &job, nil
}

func (c *EvalCommand) evalRemote(job *structs.JobDescriptor) error {
	client, err := c.Meta.Client()
	if err != nil {
		return err
	}
	resp, err := client.Jobs().Submit(&structs.JobSubmitRequest{
		Job:       job,
		SubmitUID: uint32(c.uid),
	})
	if err != nil {
		return err
	}
	*job = *resp.Job
	return nil
}

func renderMail(job *structs.JobDescriptor) string {
	if !job.MailUserSet() {
		return "<unset>"
	}
	return *job.MailUser
}

func renderMem(job *structs.JobDescriptor) string {
	if job.MinMemPerNodeMB == 0 {
		return "0 (no minimum)"
	}
	return humanize.IBytes(job.MinMemPerNodeMB * 1024 * 1024)
}

func renderShared(shared uint16) string {
	switch shared {
	case structs.JobSharedNone:
		return "none"
	case structs.JobSharedOK:
		return "ok"
	case structs.JobSharedExclusive:
		return "exclusive"
	default:
		return fmt.Sprintf("unknown(%d)", shared)
	}
}

func diffFields(before, after *structs.JobDescriptor) []string {
	var changed []string
	if renderMail(before) != renderMail(after) {
		changed = append(changed, "mail_user")
	}
	if before.Shared != after.Shared {
		changed = append(changed, "shared")
	}
	if before.MinMemPerNodeMB != after.MinMemPerNodeMB {
		changed = append(changed, "min_mem_per_node")
	}
	return changed
}
