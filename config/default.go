package config

// DefaultAllowedTypes returns the commit types allowed when no
// allow-list is configured.
func DefaultAllowedTypes() []string {
	return []string{
		"feat",
		"fix",
		"docs",
		"style",
		"refactor",
		"perf",
		"test",
		"build",
		"ci",
		"chore",
		"revert",
	}
}

// GetDefault returns the default configuration.
func GetDefault() Config {
	return Config{
		Branches: []string{"main", "master"},
		Policies: []string{"conventional"},
		Term:     DefaultTermIO,
	}
}
