package agent

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/hashicorp/cli"
	log "github.com/hashicorp/go-hclog"
	"github.com/posener/complete"

	"github.com/hpcops/jobgate/version"
)

// Command is a Command implementation that runs a jobgate agent.
// The command will not end unless a shutdown message is sent on the
// ShutdownCh.
type Command struct {
	Ui         cli.Ui
	ShutdownCh <-chan struct{}

	args       []string
	agent      *Agent
	httpServer *HTTPServer
}

func (c *Command) readConfig() *Config {
	var dev bool
	var configFiles []string
	cmdConfig := &Config{Rules: &RulesConfig{}}

	flags := flag.NewFlagSet("agent", flag.ContinueOnError)
	flags.Usage = func() { c.Ui.Error(c.Help()) }

	flags.Var((*StringFlag)(&configFiles), "config", "config file")
	flags.BoolVar(&dev, "dev", false, "")
	flags.StringVar(&cmdConfig.BindAddr, "bind", "", "")
	flags.IntVar(&cmdConfig.Port, "port", 0, "")
	flags.StringVar(&cmdConfig.LogLevel, "log-level", "", "")

	if err := flags.Parse(c.args); err != nil {
		return nil
	}

	config := DefaultConfig()
	if dev {
		config = DevConfig()
	}

	for _, path := range configFiles {
		current, err := ParseConfigFile(path)
		if err != nil {
			c.Ui.Error(fmt.Sprintf("Error loading configuration from %s: %s", path, err))
			return nil
		}
		config = config.Merge(current)
	}

	config = config.Merge(cmdConfig)

	if err := config.Validate(); err != nil {
		c.Ui.Error(fmt.Sprintf("Invalid configuration: %s", err))
		return nil
	}

	return config
}

func (c *Command) Run(args []string) int {
	c.args = args

	config := c.readConfig()
	if config == nil {
		return 1
	}

	logger := log.New(&log.LoggerOptions{
		Name:       "jobgate",
		Level:      log.LevelFromString(config.LogLevel),
		Output:     os.Stderr,
		JSONFormat: config.LogJson,
	})

	agent, err := NewAgent(config, logger, os.Stderr)
	if err != nil {
		c.Ui.Error(fmt.Sprintf("Error starting agent: %s", err))
		return 1
	}
	c.agent = agent

	httpServer, err := NewHTTPServer(agent, config)
	if err != nil {
		c.Ui.Error(fmt.Sprintf("Error starting http server: %s", err))
		return 1
	}
	c.httpServer = httpServer

	c.Ui.Output(fmt.Sprintf("jobgate agent %s listening on %s",
		version.GetVersion().VersionNumber(), httpServer.Addr))

	return c.handleSignals()
}

// handleSignals blocks until we get an exit-causing signal
func (c *Command) handleSignals() int {
	signalCh := make(chan os.Signal, 4)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-signalCh:
		c.Ui.Output(fmt.Sprintf("Caught signal: %v", s))
	case <-c.ShutdownCh:
	}

	c.httpServer.Shutdown()
	if err := c.agent.Shutdown(); err != nil {
		return 1
	}
	return 0
}

func (c *Command) Synopsis() string {
	return "Runs the jobgate hook agent"
}

func (c *Command) AutocompleteFlags() complete.Flags {
	return complete.Flags{
		"-config":    complete.PredictFiles("*.hcl"),
		"-dev":       complete.PredictNothing,
		"-bind":      complete.PredictAnything,
		"-port":      complete.PredictAnything,
		"-log-level": complete.PredictSet("TRACE", "DEBUG", "INFO", "WARN", "ERROR"),
	}
}

func (c *Command) AutocompleteArgs() complete.Predictor {
	return complete.PredictNothing
}

func (c *Command) Help() string {
	helpText := `
Usage: jobgate agent [options]

  Starts the jobgate agent and runs until an interrupt is received. The
  agent serves the job submit and modify hooks the workload manager's
  controller calls on each submission event.

Options:

  -config=<path>
    The path to a configuration file. May be specified multiple times;
    later files merge over earlier ones.

  -dev
    Start the agent in development mode: debug logging, loopback bind,
    request logging, no token.

  -bind=<addr>
    The address to bind the HTTP listener to. Overrides the config file.

  -port=<port>
    The port to bind the HTTP listener to. Overrides the config file.

  -log-level=<level>
    The logging verbosity. Defaults to INFO.
`
	return strings.TrimSpace(helpText)
}

// StringFlag implements the flag.Value interface and allows multiple
// calls to the same variable to append a list.
type StringFlag []string

func (s *StringFlag) String() string {
	return strings.Join(*s, ",")
}

func (s *StringFlag) Set(value string) error {
	*s = append(*s, value)
	return nil
}
