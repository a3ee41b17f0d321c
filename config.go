package thompson

// Config controls compilation limits, prefiltering and the zero-length match
// policy.
//
// Example:
//
//	config := thompson.DefaultConfig()
//	config.AllowEmpty = false // never report zero-length matches
//	re, err := thompson.CompileWithConfig("a*", config)
type Config struct {
	// AllowEmpty reports zero-length matches, e.g. "a*" matches "" at
	// offset 0 of "b". When false, a start position whose longest match is
	// empty is skipped and the search moves on.
	// Default: true
	AllowEmpty bool

	// EnablePrefilter enables literal and first-byte candidate scanning.
	// Results are identical either way.
	// Default: true
	EnablePrefilter bool

	// MaxStates limits the number of automaton states.
	// Default: 100000
	MaxStates int

	// MaxLiterals is the largest finite literal set scanned with
	// Aho-Corasick.
	// Default: 64
	MaxLiterals int

	// MaxFirstBytes is the largest first-byte set scanned for candidates.
	// Default: 16
	MaxFirstBytes int
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		AllowEmpty:      true,
		EnablePrefilter: true,
		MaxStates:       100_000,
		MaxLiterals:     64,
		MaxFirstBytes:   16,
	}
}

// Validate checks if the configuration is valid.
//
// Valid ranges:
//   - MaxStates: 1 to 10,000,000
//   - MaxLiterals: 1 to 1,000 (when prefiltering)
//   - MaxFirstBytes: 1 to 255 (when prefiltering)
func (c Config) Validate() error {
	if c.MaxStates < 1 || c.MaxStates > 10_000_000 {
		return &ConfigError{
			Field:   "MaxStates",
			Message: "must be between 1 and 10,000,000",
		}
	}

	if c.EnablePrefilter {
		if c.MaxLiterals < 1 || c.MaxLiterals > 1_000 {
			return &ConfigError{
				Field:   "MaxLiterals",
				Message: "must be between 1 and 1,000",
			}
		}
		if c.MaxFirstBytes < 1 || c.MaxFirstBytes > 255 {
			return &ConfigError{
				Field:   "MaxFirstBytes",
				Message: "must be between 1 and 255",
			}
		}
	}

	return nil
}

// ConfigError represents an invalid configuration field.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "thompson: invalid config: " + e.Field + ": " + e.Message
}
