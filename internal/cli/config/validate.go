package config

import "fmt"

var validOutputs = map[string]bool{
	"auto":     true,
	"text":     true,
	"markdown": true,
	"json":     true,
}

// Validate checks the loaded configuration for values no command could
// act on. Rule-level validation happens later, when the definitions are
// built into rules.
func Validate(c *Config) error {
	if !validOutputs[c.Output] {
		return fmt.Errorf("invalid output format %q (want auto, text, markdown or json)", c.Output)
	}
	if c.Jobs < 0 {
		return fmt.Errorf("jobs must be zero or positive, got %d", c.Jobs)
	}
	return nil
}
