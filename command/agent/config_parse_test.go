package agent

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shoenig/test/must"

	"github.com/hpcops/jobgate/ci"
	"github.com/hpcops/jobgate/helper/pointer"
)

func TestParseConfigFile(t *testing.T) {
	ci.Parallel(t)

	content := `
log_level = "DEBUG"
bind_addr = "0.0.0.0"
port      = 6820
token     = "hunter2"

rules {
  mail_domain           = "hpc.uni.edu"
  default_mail          = true
  exclusive_on_zero_mem = false
}
`
	path := filepath.Join(t.TempDir(), "agent.hcl")
	must.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	c, err := ParseConfigFile(path)
	must.NoError(t, err)
	must.Eq(t, "DEBUG", c.LogLevel)
	must.Eq(t, "0.0.0.0", c.BindAddr)
	must.Eq(t, 6820, c.Port)
	must.Eq(t, "hunter2", c.Token)
	must.NotNil(t, c.Rules)
	must.Eq(t, "hpc.uni.edu", c.Rules.MailDomain)
	must.Eq(t, pointer.Of(true), c.Rules.DefaultMail)
	must.Eq(t, pointer.Of(false), c.Rules.ExclusiveOnZeroMem)
}

func TestParseConfigFile_missing(t *testing.T) {
	ci.Parallel(t)

	_, err := ParseConfigFile(filepath.Join(t.TempDir(), "nope.hcl"))
	must.Error(t, err)
}

func TestParseConfigFile_invalid(t *testing.T) {
	ci.Parallel(t)

	path := filepath.Join(t.TempDir(), "agent.hcl")
	must.NoError(t, os.WriteFile(path, []byte("log_level = {"), 0o644))

	_, err := ParseConfigFile(path)
	must.Error(t, err)
}
