package api

// AgentSelf is the response of the agent self endpoint. Config is left loose
// so the CLI can render whatever the agent reports.
type AgentSelf struct {
	Version string                 `json:"version"`
	Config  map[string]interface{} `json:"config"`
}

// Agent is used to access the agent endpoints.
type Agent struct {
	client *Client
}

// Agent returns a handle on the agent endpoints.
func (c *Client) Agent() *Agent {
	return &Agent{client: c}
}

// Self queries the running agent for its version and configuration.
func (a *Agent) Self() (*AgentSelf, error) {
	var resp AgentSelf
	if err := a.client.get("/v1/agent/self", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
