package agent

import (
	"fmt"
	"io"
	"sync"

	log "github.com/hashicorp/go-hclog"

	"github.com/hpcops/jobgate/jobgate"
)

// Agent is the long running process the workload manager's controller talks
// to. It holds the hook policy and exposes it over HTTP; there is no other
// state and no background work.
type Agent struct {
	config     *Config
	configLock sync.Mutex

	logger    log.Logger
	logOutput io.Writer

	policy *jobgate.Policy

	shutdown     bool
	shutdownCh   chan struct{}
	shutdownLock sync.Mutex
}

// NewAgent is used to create a new agent with the given configuration.
func NewAgent(config *Config, logger log.Logger, logOutput io.Writer) (*Agent, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid agent config: %w", err)
	}

	a := &Agent{
		config:     config,
		logger:     logger.Named("agent"),
		logOutput:  logOutput,
		policy:     jobgate.NewPolicy(config.PolicyConfig(), logger),
		shutdownCh: make(chan struct{}),
	}
	return a, nil
}

// Policy returns the hook policy the agent serves.
func (a *Agent) Policy() *jobgate.Policy {
	return a.policy
}

// GetConfig returns the current agent configuration.
func (a *Agent) GetConfig() *Config {
	a.configLock.Lock()
	defer a.configLock.Unlock()
	return a.config
}

// Shutdown is used to terminate the agent.
func (a *Agent) Shutdown() error {
	a.shutdownLock.Lock()
	defer a.shutdownLock.Unlock()

	if a.shutdown {
		return nil
	}

	a.logger.Info("requesting shutdown")
	a.shutdown = true
	close(a.shutdownCh)
	a.logger.Info("shutdown complete")
	return nil
}

// ShutdownCh returns a channel closed when the agent shuts down.
func (a *Agent) ShutdownCh() <-chan struct{} {
	return a.shutdownCh
}
