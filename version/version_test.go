package version

import (
	"strings"
	"testing"
)

func TestVersionInfo(t *testing.T) {
	v := GetVersion()

	if got := v.VersionNumber(); !strings.HasPrefix(got, Version) {
		t.Fatalf("expected version number to start with %q, got %q", Version, got)
	}
	if got := v.FullVersionNumber(false); !strings.HasPrefix(got, "jobgate v") {
		t.Fatalf("unexpected full version: %q", got)
	}
}
