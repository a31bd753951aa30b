package agent

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl"
)

// ParseConfigFile returns an agent Config parsed from an HCL file.
func ParseConfigFile(path string) (*Config, error) {
	// slurp
	var buf bytes.Buffer
	path, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if _, err := io.Copy(&buf, f); err != nil {
		return nil, err
	}

	// parse
	c := &Config{
		Rules: &RulesConfig{},
	}
	if err := hcl.Decode(c, buf.String()); err != nil {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, err)
	}

	return c, nil
}
