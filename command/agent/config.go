package agent

import (
	"fmt"
	"net"
	"strconv"

	"github.com/hpcops/jobgate/jobgate"
)

// Config is the configuration for the jobgate agent.
type Config struct {
	// LogLevel is the level of the logs to put out
	LogLevel string `hcl:"log_level" json:"log_level"`

	// LogJson enables log output in a JSON format
	LogJson bool `hcl:"log_json" json:"log_json"`

	// BindAddr is the address the HTTP listener binds to.
	BindAddr string `hcl:"bind_addr" json:"bind_addr"`

	// Port is the port the HTTP listener binds to.
	Port int `hcl:"port" json:"port"`

	// Token, when set, must match the X-JOBGATE-TOKEN header of every
	// request. Empty disables the check.
	Token string `hcl:"token" json:"token,omitempty"`

	// LogRequests enables access logging of every HTTP request.
	LogRequests bool `hcl:"log_requests" json:"log_requests"`

	// Rules configures the submission rule chain.
	Rules *RulesConfig `hcl:"rules" json:"rules"`

	// DevMode is set by the -dev CLI flag.
	DevMode bool `hcl:"-" json:"dev_mode"`
}

// RulesConfig mirrors jobgate.Config for the HCL file. Pointers distinguish
// "not mentioned" from an explicit false.
type RulesConfig struct {
	MailDomain string `hcl:"mail_domain" json:"mail_domain,omitempty"`
	DefaultMail *bool `hcl:"default_mail" json:"default_mail,omitempty"`
	ExclusiveOnZeroMem *bool `hcl:"exclusive_on_zero_mem" json:"exclusive_on_zero_mem,omitempty"`
}

// DefaultConfig is the baseline configuration for the jobgate agent.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "INFO",
		BindAddr: "127.0.0.1",
		Port:     6818,
		Rules:    &RulesConfig{},
	}
}

// DevConfig is a mode used for ease of local development: debug logging,
// loopback bind, no token.
func DevConfig() *Config {
	conf := DefaultConfig()
	conf.DevMode = true
	conf.LogLevel = "DEBUG"
	conf.LogRequests = true
	return conf
}

// Merge merges two configurations, with b taking precedence.
func (c *Config) Merge(b *Config) *Config {
	result := *c

	if b.LogLevel != "" {
		result.LogLevel = b.LogLevel
	}
	if b.LogJson {
		result.LogJson = true
	}
	if b.BindAddr != "" {
		result.BindAddr = b.BindAddr
	}
	if b.Port != 0 {
		result.Port = b.Port
	}
	if b.Token != "" {
		result.Token = b.Token
	}
	if b.LogRequests {
		result.LogRequests = true
	}
	if b.DevMode {
		result.DevMode = true
	}

	if result.Rules == nil && b.Rules != nil {
		rules := *b.Rules
		result.Rules = &rules
	} else if b.Rules != nil {
		result.Rules = result.Rules.Merge(b.Rules)
	}

	return &result
}

// Merge merges two rule configurations, with b taking precedence.
func (r *RulesConfig) Merge(b *RulesConfig) *RulesConfig {
	result := *r

	if b.MailDomain != "" {
		result.MailDomain = b.MailDomain
	}
	if b.DefaultMail != nil {
		result.DefaultMail = b.DefaultMail
	}
	if b.ExclusiveOnZeroMem != nil {
		result.ExclusiveOnZeroMem = b.ExclusiveOnZeroMem
	}

	return &result
}

// PolicyConfig converts the agent rule configuration into the policy's
// config, filling unset values with the shipped defaults.
func (c *Config) PolicyConfig() *jobgate.Config {
	pc := jobgate.DefaultConfig()
	if c.Rules == nil {
		return pc
	}
	if c.Rules.MailDomain != "" {
		pc.MailDomain = c.Rules.MailDomain
	}
	if c.Rules.DefaultMail != nil {
		pc.DefaultMail = *c.Rules.DefaultMail
	}
	if c.Rules.ExclusiveOnZeroMem != nil {
		pc.ExclusiveOnZeroMem = *c.Rules.ExclusiveOnZeroMem
	}
	return pc
}

// HTTPAddr returns the host:port the agent listens on.
func (c *Config) HTTPAddr() string {
	return net.JoinHostPort(c.BindAddr, strconv.Itoa(c.Port))
}

// Validate checks that the configuration can produce a working agent.
func (c *Config) Validate() error {
	// port 0 asks the listener for an ephemeral port
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if ip := net.ParseIP(c.BindAddr); ip == nil {
		return fmt.Errorf("invalid bind address %q", c.BindAddr)
	}
	return nil
}
