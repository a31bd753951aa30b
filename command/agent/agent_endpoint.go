package agent

import (
	"net/http"

	"github.com/hpcops/jobgate/version"
)

type agentSelf struct {
	Version string  `json:"version"`
	Config  *Config `json:"config"`
}

func (s *HTTPServer) AgentSelfRequest(resp http.ResponseWriter, req *http.Request) (interface{}, error) {
	if req.Method != http.MethodGet {
		return nil, CodedError(405, ErrInvalidMethod)
	}

	self := agentSelf{
		Version: version.GetVersion().VersionNumber(),
	}

	// never echo the token back
	conf := *s.agent.GetConfig()
	if conf.Token != "" {
		conf.Token = "<redacted>"
	}
	self.Config = &conf

	return self, nil
}
