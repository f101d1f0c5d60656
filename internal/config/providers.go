package config

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Provider names understood by the server.
const (
	ProviderGemini = "gemini"
	ProviderGroq   = "groq"
	ProviderClaude = "claude"
)

// ProviderConfig is one row of the provider table. Lower priority runs first.
type ProviderConfig struct {
	Name     string        `yaml:"name"`
	Priority int           `yaml:"priority"`
	Timeout  time.Duration `yaml:"timeout"`
	Model    string        `yaml:"model"`
	Enabled  *bool         `yaml:"enabled"`
}

func (p ProviderConfig) IsEnabled() bool {
	return p.Enabled == nil || *p.Enabled
}

type providersFile struct {
	Providers []ProviderConfig `yaml:"providers"`
}

// DefaultProviders is gemini, then groq, then claude.
func DefaultProviders(timeout time.Duration) []ProviderConfig {
	return []ProviderConfig{
		{Name: ProviderGemini, Priority: 1, Timeout: timeout},
		{Name: ProviderGroq, Priority: 2, Timeout: timeout},
		{Name: ProviderClaude, Priority: 3, Timeout: timeout},
	}
}

// LoadProviders reads a YAML provider table. Rows without a timeout get
// defaultTimeout; unknown or duplicate names are an error.
func LoadProviders(path string, defaultTimeout time.Duration) ([]ProviderConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading providers file: %w", err)
	}

	var f providersFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing providers file: %w", err)
	}
	if len(f.Providers) == 0 {
		return nil, fmt.Errorf("providers file %s lists no providers", path)
	}

	seen := make(map[string]bool, len(f.Providers))
	for i := range f.Providers {
		p := &f.Providers[i]
		p.Name = strings.ToLower(strings.TrimSpace(p.Name))
		switch p.Name {
		case ProviderGemini, ProviderGroq, ProviderClaude:
		default:
			return nil, fmt.Errorf("unknown provider %q in %s", p.Name, path)
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("duplicate provider %q in %s", p.Name, path)
		}
		seen[p.Name] = true
		if p.Timeout <= 0 {
			p.Timeout = defaultTimeout
		}
	}

	sort.SliceStable(f.Providers, func(i, j int) bool {
		return f.Providers[i].Priority < f.Providers[j].Priority
	})
	return f.Providers, nil
}
