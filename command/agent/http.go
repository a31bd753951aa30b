package agent

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	log "github.com/hashicorp/go-hclog"
	"github.com/rs/cors"
)

const (
	// ErrInvalidMethod is used if the HTTP method is not supported
	ErrInvalidMethod = "Invalid method"

	// ErrInvalidToken is used if the host token header does not match
	ErrInvalidToken = "Invalid token"

	// tokenHeader carries the shared host token when one is configured.
	tokenHeader = "X-JOBGATE-TOKEN"
)

// allowCORS sets permissive CORS headers for a handler
var allowCORS = cors.New(cors.Options{
	AllowedOrigins: []string{"*"},
	AllowedMethods: []string{"HEAD", "GET", "POST"},
	AllowedHeaders: []string{"*"},
})

// HTTPServer is used to wrap an Agent and expose it over an HTTP interface
type HTTPServer struct {
	agent    *Agent
	mux      *http.ServeMux
	listener net.Listener
	logger   log.Logger
	Addr     string
}

// NewHTTPServer starts a new HTTP server over the agent.
func NewHTTPServer(agent *Agent, config *Config) (*HTTPServer, error) {
	lnAddr, err := net.ResolveTCPAddr("tcp", config.HTTPAddr())
	if err != nil {
		return nil, err
	}
	ln, err := net.ListenTCP("tcp", lnAddr)
	if err != nil {
		return nil, fmt.Errorf("failed to start HTTP listener: %v", err)
	}

	mux := http.NewServeMux()
	srv := &HTTPServer{
		agent:    agent,
		mux:      mux,
		listener: ln,
		logger:   agent.logger.Named("http"),
		Addr:     ln.Addr().String(),
	}
	srv.registerHandlers()

	var handler http.Handler = mux
	if config.LogRequests {
		handler = handlers.CombinedLoggingHandler(agent.logOutput, handler)
	}
	handler = allowCORS.Handler(handler)

	go http.Serve(ln, handler)

	return srv, nil
}

// Shutdown is used to shutdown the HTTP server
func (s *HTTPServer) Shutdown() {
	if s != nil {
		s.logger.Debug("shutting down http server")
		s.listener.Close()
	}
}

// registerHandlers is used to attach our handlers to the mux
func (s *HTTPServer) registerHandlers() {
	s.mux.HandleFunc("/v1/job/submit", s.wrap(s.JobSubmitRequest))
	s.mux.HandleFunc("/v1/job/modify", s.wrap(s.JobModifyRequest))
	s.mux.HandleFunc("/v1/agent/self", s.wrap(s.AgentSelfRequest))
}

// HTTPCodedError is used to provide the HTTP error code along with an error
type HTTPCodedError interface {
	error
	Code() int
}

func CodedError(c int, s string) HTTPCodedError {
	return &codedError{s, c}
}

type codedError struct {
	s    string
	code int
}

func (e *codedError) Error() string {
	return e.s
}

func (e *codedError) Code() int {
	return e.code
}

// wrap is used to wrap functions to make them more convenient
func (s *HTTPServer) wrap(handler func(resp http.ResponseWriter, req *http.Request) (interface{}, error)) func(resp http.ResponseWriter, req *http.Request) {
	f := func(resp http.ResponseWriter, req *http.Request) {
		reqURL := req.URL.String()
		start := time.Now()
		defer func() {
			s.logger.Debug("request complete", "method", req.Method, "path", reqURL, "duration", time.Since(start))
		}()

		if err := s.checkToken(req); err != nil {
			s.handleErr(resp, reqURL, err)
			return
		}

		obj, err := handler(resp, req)
		if err != nil {
			s.handleErr(resp, reqURL, err)
			return
		}
		if obj == nil {
			return
		}

		// Write out the JSON object
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		if prettyPrint(req) {
			enc.SetIndent("", "    ")
		}
		if err := enc.Encode(obj); err != nil {
			s.handleErr(resp, reqURL, err)
			return
		}
		resp.Header().Set("Content-Type", "application/json")
		resp.Write(buf.Bytes())
	}
	return f
}

func (s *HTTPServer) handleErr(resp http.ResponseWriter, reqURL string, err error) {
	s.logger.Error("request failed", "url", reqURL, "error", err)
	code := 500
	if coded, ok := err.(HTTPCodedError); ok {
		code = coded.Code()
	}
	resp.WriteHeader(code)
	resp.Write([]byte(err.Error()))
}

// checkToken rejects the request when a shared token is configured and the
// caller did not present it.
func (s *HTTPServer) checkToken(req *http.Request) error {
	token := s.agent.GetConfig().Token
	if token == "" {
		return nil
	}
	if req.Header.Get(tokenHeader) != token {
		return CodedError(403, ErrInvalidToken)
	}
	return nil
}

func prettyPrint(req *http.Request) bool {
	if v, ok := req.URL.Query()["pretty"]; ok {
		return len(v) > 0 && (len(v[0]) == 0 || v[0] != "0")
	}
	return false
}

// decodeBody is used to decode a JSON request body
func decodeBody(req *http.Request, out interface{}) error {
	dec := json.NewDecoder(req.Body)
	return dec.Decode(out)
}
