package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shoenig/test/must"

	"github.com/hpcops/jobgate/ci"
)

func TestDefaultConfig_env(t *testing.T) {
	// not parallel, mutates the environment
	t.Setenv(EnvJobgateAddr, "http://10.0.0.5:6818")
	t.Setenv(EnvJobgateToken, "hunter2")

	config := DefaultConfig()
	must.Eq(t, "http://10.0.0.5:6818", config.Address)
	must.Eq(t, "hunter2", config.Token)
}

func TestClient_tokenHeader(t *testing.T) {
	ci.Parallel(t)

	var gotToken string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-JOBGATE-TOKEN")
		w.Write([]byte(`{"version":"0.0.0","config":{}}`))
	}))
	t.Cleanup(ts.Close)

	client, err := NewClient(&Config{Address: ts.URL, Token: "hunter2"})
	must.NoError(t, err)

	self, err := client.Agent().Self()
	must.NoError(t, err)
	must.Eq(t, "hunter2", gotToken)
	must.Eq(t, "0.0.0", self.Version)
}

func TestClient_errorResponse(t *testing.T) {
	ci.Parallel(t)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Invalid token", 403)
	}))
	t.Cleanup(ts.Close)

	client, err := NewClient(&Config{Address: ts.URL})
	must.NoError(t, err)

	_, err = client.Agent().Self()
	must.ErrorContains(t, err, "403")
	must.ErrorContains(t, err, "Invalid token")
}
