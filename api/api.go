// Package api is a thin HTTP client for a running jobgate agent. The host
// workload manager speaks the same surface; this client exists for the CLI
// and for tests.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	cleanhttp "github.com/hashicorp/go-cleanhttp"
)

const (
	// EnvJobgateAddr names the environment variable the default config
	// reads the agent address from.
	EnvJobgateAddr = "JOBGATE_ADDR"

	// EnvJobgateToken names the environment variable the default config
	// reads the shared token from.
	EnvJobgateToken = "JOBGATE_TOKEN"

	tokenHeader = "X-JOBGATE-TOKEN"
)

// Config is used to configure the creation of a client.
type Config struct {
	// Address is the address of the jobgate agent.
	Address string

	// Token is the shared token presented on every request, if set.
	Token string

	// HttpClient is the client to use. Default will be used if not
	// provided.
	HttpClient *http.Client
}

// DefaultConfig returns a default configuration for the client, reading the
// environment where set.
func DefaultConfig() *Config {
	config := &Config{
		Address:    "http://127.0.0.1:6818",
		HttpClient: cleanhttp.DefaultClient(),
	}
	if addr := os.Getenv(EnvJobgateAddr); addr != "" {
		config.Address = addr
	}
	if token := os.Getenv(EnvJobgateToken); token != "" {
		config.Token = token
	}
	return config
}

// Client provides a client to the jobgate agent API.
type Client struct {
	config Config
}

// NewClient returns a new client.
func NewClient(config *Config) (*Client, error) {
	defConfig := DefaultConfig()
	if config == nil {
		config = defConfig
	}
	if config.Address == "" {
		config.Address = defConfig.Address
	}
	if config.HttpClient == nil {
		config.HttpClient = defConfig.HttpClient
	}
	if _, err := url.Parse(config.Address); err != nil {
		return nil, fmt.Errorf("invalid address %q: %w", config.Address, err)
	}

	return &Client{config: *config}, nil
}

// Address returns the address the client talks to.
func (c *Client) Address() string {
	return c.config.Address
}

func (c *Client) post(endpoint string, in, out interface{}) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost,
		strings.TrimSuffix(c.config.Address, "/")+endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) get(endpoint string, out interface{}) error {
	req, err := http.NewRequest(http.MethodGet,
		strings.TrimSuffix(c.config.Address, "/")+endpoint, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	if c.config.Token != "" {
		req.Header.Set(tokenHeader, c.config.Token)
	}

	resp, err := c.config.HttpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected response code %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
