package agent

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	log "github.com/hashicorp/go-hclog"
	"github.com/shoenig/test/must"

	"github.com/hpcops/jobgate/ci"
	"github.com/hpcops/jobgate/helper/pointer"
	"github.com/hpcops/jobgate/jobgate/structs"
)

func testServer(t *testing.T, config *Config) *HTTPServer {
	t.Helper()

	if config == nil {
		config = DevConfig()
	}
	agent, err := NewAgent(config, log.NewNullLogger(), bytes.NewBuffer(nil))
	must.NoError(t, err)

	srv := &HTTPServer{
		agent:  agent,
		mux:    http.NewServeMux(),
		logger: agent.logger,
	}
	srv.registerHandlers()
	return srv
}

func httpJSON(t *testing.T, srv *HTTPServer, method, path string, body, out interface{}) *httptest.ResponseRecorder {
	t.Helper()

	buf, err := json.Marshal(body)
	must.NoError(t, err)

	req := httptest.NewRequest(method, path, bytes.NewReader(buf))
	resp := httptest.NewRecorder()
	srv.mux.ServeHTTP(resp, req)

	if out != nil && resp.Code == http.StatusOK {
		must.NoError(t, json.Unmarshal(resp.Body.Bytes(), out))
	}
	return resp
}

func TestHTTP_JobSubmit(t *testing.T) {
	ci.Parallel(t)

	srv := testServer(t, nil)

	args := &structs.JobSubmitRequest{
		Job: &structs.JobDescriptor{
			UserName:        "grad1",
			MinMemPerNodeMB: 0,
			Shared:          structs.JobSharedNone,
		},
		SubmitUID: 1001,
	}

	var out structs.JobSubmitResponse
	resp := httpJSON(t, srv, http.MethodPost, "/v1/job/submit", args, &out)
	must.Eq(t, http.StatusOK, resp.Code)

	must.Eq(t, structs.StatusSuccess, out.Status)
	must.NotEq(t, "", out.EvalID)
	must.Equal(t, &structs.JobDescriptor{
		UserName:        "grad1",
		MailUser:        pointer.Of("grad1@example.edu"),
		MinMemPerNodeMB: 0,
		Shared:          structs.JobSharedExclusive,
	}, out.Job)
}

func TestHTTP_JobSubmit_badRequest(t *testing.T) {
	ci.Parallel(t)

	srv := testServer(t, nil)

	resp := httpJSON(t, srv, http.MethodPost, "/v1/job/submit", &structs.JobSubmitRequest{}, nil)
	must.Eq(t, http.StatusBadRequest, resp.Code)

	resp = httpJSON(t, srv, http.MethodGet, "/v1/job/submit", nil, nil)
	must.Eq(t, http.StatusMethodNotAllowed, resp.Code)
}

func TestHTTP_JobModify(t *testing.T) {
	ci.Parallel(t)

	srv := testServer(t, nil)

	args := &structs.JobModifyRequest{
		Update: &structs.JobUpdate{
			JobID:           7,
			MinMemPerNodeMB: pointer.Of(uint64(0)),
			Shared:          pointer.Of(structs.JobSharedNone),
		},
		Job:       &structs.JobDescriptor{JobID: 7, UserName: "grad1"},
		ModifyUID: 1001,
	}
	want := args.Update.Copy()

	var out structs.JobModifyResponse
	resp := httpJSON(t, srv, http.MethodPost, "/v1/job/modify", args, &out)
	must.Eq(t, http.StatusOK, resp.Code)

	must.Eq(t, structs.StatusSuccess, out.Status)
	must.Equal(t, want, out.Update)
}

func TestHTTP_AgentSelf(t *testing.T) {
	ci.Parallel(t)

	config := DevConfig()
	config.Token = "hunter2"
	srv := testServer(t, config)

	req := httptest.NewRequest(http.MethodGet, "/v1/agent/self", nil)
	resp := httptest.NewRecorder()
	srv.mux.ServeHTTP(resp, req)
	must.Eq(t, http.StatusForbidden, resp.Code)

	req = httptest.NewRequest(http.MethodGet, "/v1/agent/self", nil)
	req.Header.Set(tokenHeader, "hunter2")
	resp = httptest.NewRecorder()
	srv.mux.ServeHTTP(resp, req)
	must.Eq(t, http.StatusOK, resp.Code)

	var self agentSelf
	must.NoError(t, json.Unmarshal(resp.Body.Bytes(), &self))
	must.Eq(t, "<redacted>", self.Config.Token)
	must.NotEq(t, "", self.Version)
}
