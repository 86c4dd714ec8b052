package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	m "conform.dev/pkg/conform/internal/model"
)

// Profile is a shareable rule configuration file: teams check one into a
// repo and point CI at it with --profile. It only narrows or re-weights
// the rule set; engine options (parallelism, output) stay in the main
// configuration.
type Profile struct {
	// Disabled lists rule IDs to turn off.
	Disabled []string `yaml:"disabled"`

	// Severity maps rule IDs to an overriding severity name.
	Severity map[string]string `yaml:"severity"`
}

// LoadProfile reads and parses a profile file.
func LoadProfile(path m.Path) (*Profile, error) {
	data, err := os.ReadFile(string(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read profile %s: %w", path, err)
	}

	var profile Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile %s: %w", path, err)
	}

	return &profile, nil
}

// Apply merges the profile over the given configuration and returns the
// result. The input configuration is not modified.
func (p *Profile) Apply(cfg Config) (Config, error) {
	merged := cfg

	merged.Disabled = append(append([]string(nil), cfg.Disabled...), p.Disabled...)

	merged.Severities = make(map[string]m.Severity, len(cfg.Severities)+len(p.Severity))
	for id, severity := range cfg.Severities {
		merged.Severities[id] = severity
	}

	for id, name := range p.Severity {
		severity, err := m.ParseSeverity(name)
		if err != nil {
			return Config{}, fmt.Errorf("profile severity for %s: %w", id, err)
		}

		merged.Severities[id] = severity
	}

	return merged, nil
}
