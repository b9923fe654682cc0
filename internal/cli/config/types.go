// Package config provides configuration management for the lookmlint CLI.
//
// Configuration merges four layers, lowest to highest precedence:
// built-in defaults, the project's lookmlint.yaml, LOOKMLINT_ environment
// variables, and command-line flags.
package config

// Config holds all CLI configuration options.
type Config struct {
	// Select restricts checks to these rule codes. Empty means all.
	Select []string `koanf:"select"`

	// Ignore removes these rule codes. Ignore wins over select.
	Ignore []string `koanf:"ignore"`

	// RulesFile points to a standalone YAML file of rule definitions.
	RulesFile string `koanf:"rules_file"`

	// CustomRules holds inline rule definitions from the config file.
	CustomRules []map[string]any `koanf:"custom_rules"`

	// Output selects the format: auto, text, markdown or json.
	Output string `koanf:"output"`

	// Verbose enables progress logging on stderr.
	Verbose bool `koanf:"verbose"`

	// Jobs bounds the number of files checked concurrently. Zero means
	// one worker per CPU.
	Jobs int `koanf:"jobs"`
}

// Default configuration values.
const (
	DefaultOutput = "auto" // TTY renders text, pipes render markdown
	DefaultJobs   = 0
)
