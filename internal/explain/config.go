package explain

// Config holds explanation generation settings.
type Config struct {
	// Language is the course language named in the prompt, e.g. "Macedonian".
	Language string

	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns defaults for short feedback explanations.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   384,
		Temperature: 0.3,
	}
}
