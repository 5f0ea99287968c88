package tutor

// Config holds module generation and grading settings.
type Config struct {
	ModuleMaxTokens int
	EvalMaxTokens   int
	Temperature     float64

	// QuizSize is the number of quiz questions requested per module.
	QuizSize int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		ModuleMaxTokens: 8192,
		EvalMaxTokens:   1024,
		Temperature:     0.4,
		QuizSize:        4,
	}
}
