// Package config contains configuration for commitgate, plus helpers.
package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/imdario/mergo"
)

// Config holds most of the configuration variables for commitgate. This
// struct is intended for command-line use, so not all of its attributes
// apply to every operation.
type Config struct {
	Debug          bool     `json:"debug,omitempty"`
	Quiet          bool     `json:"quiet,omitempty"`
	InCI           bool     `json:"ci,omitempty"`
	Strict         bool     `json:"strict,omitempty"`
	Format         string   `json:"format,omitempty"`
	TargetBranch   string   `json:"target_branch,omitempty"`
	Branches       []string `json:"branches,omitempty"`
	AllowedTypes   []string `json:"allowed_types,omitempty"`
	AllowedScopes  []string `json:"allowed_scopes,omitempty"`
	Policies       []string `json:"policies,omitempty"`
	CustomPolicies []Policy `json:"custom_policies,omitempty"`

	// BranchesSet tracks whether branches came from a flag or a config
	// file, as opposed to the builtin default.
	BranchesSet bool       `json:"-"`
	Term        TerminalIO `json:"-"`
}

// New returns a Config with defaults merged over by overrides, if any.
func New(overrides *Config) (Config, error) {
	return NewWithTerminalIO(overrides, nil)
}

// NewWithTerminalIO is like New, but overrides terminal io streams for
// testing.
func NewWithTerminalIO(overrides *Config, termio *TerminalIO) (Config, error) {
	cfg := GetDefault()
	if overrides != nil {
		if err := mergo.Merge(&cfg, *overrides, mergo.WithOverride); err != nil {
			return cfg, err
		}
	}
	if termio != nil {
		cfg.Term = *termio
	}
	return cfg, nil
}

// GetAllowedTypes returns the commit type allow-list, lowercased. When
// no list was configured the builtin default applies. An explicitly
// empty list is honored as-is: it allows no types at all.
func (c Config) GetAllowedTypes() []string {
	if c.AllowedTypes == nil {
		return DefaultAllowedTypes()
	}
	types := make([]string, len(c.AllowedTypes))
	for i, t := range c.AllowedTypes {
		types[i] = strings.ToLower(strings.TrimSpace(t))
	}
	return types
}

// GetPolicies returns the resolved policies named by c.Policies. Custom
// policies shadow builtin ones with the same name. Unknown names are
// skipped here and rejected by Validate.
func (c Config) GetPolicies() []*Policy {
	var pols []*Policy
	for _, name := range c.Policies {
		if pol := c.findPolicy(name); pol != nil {
			pols = append(pols, pol)
		}
	}
	return pols
}

func (c Config) findPolicy(name string) *Policy {
	for _, pol := range c.CustomPolicies {
		if pol.Name == name {
			p := pol
			return &p
		}
	}
	return getBuiltinPolicy(name)
}

// Validate checks the configuration for invalid or conflicting values.
func (c Config) Validate() error {
	switch c.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("config: invalid format %q (must be text or json)", c.Format)
	}
	for _, name := range c.Policies {
		pol := c.findPolicy(name)
		if pol == nil {
			return fmt.Errorf("config: unknown policy %q", name)
		}
		if err := pol.Validate(); err != nil {
			return fmt.Errorf("config: policy %q: %w", name, err)
		}
	}
	if len(c.GetPolicies()) == 0 {
		return errors.New("config: at least one policy is required")
	}
	return nil
}

// Printf prints a message to the configured stdout unless quiet mode is
// on.
func (c Config) Printf(msg string, args ...any) {
	if c.Quiet {
		return
	}
	fmt.Fprintf(c.Term.Stdout, msg+"\n", args...)
}

// Errorf prints a message to the configured stderr.
func (c Config) Errorf(msg string, args ...any) {
	fmt.Fprintf(c.Term.Stderr, msg+"\n", args...)
}

// Debugf prints a message to the configured stderr in debug mode.
func (c Config) Debugf(msg string, args ...any) {
	if !c.Debug {
		return
	}
	fmt.Fprintf(c.Term.Stderr, msg+"\n", args...)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
