package api

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadChain reads a chain file, sets Dir/FilePath, and validates it.
func LoadChain(filename string) (*ChainFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading chain file: %w", err)
	}

	var c ChainFile
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing chain file: %w", err)
	}

	absPath, err := filepath.Abs(filename)
	if err != nil {
		return nil, fmt.Errorf("resolving absolute path: %w", err)
	}
	c.FilePath = absPath
	c.Dir = filepath.Dir(absPath)

	if c.Name == "" {
		c.Name = DisplayName(absPath)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validating chain %s: %w", filename, err)
	}

	return &c, nil
}

// DisplayName derives a chain name from its file name.
func DisplayName(path string) string {
	base := filepath.Base(path)
	if name := strings.TrimSuffix(base, ChainFileSuffix); name != "" {
		return name
	}
	return base
}
