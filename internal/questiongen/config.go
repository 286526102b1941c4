package questiongen

// PairCount is the number of pairs in a generated connect question.
const PairCount = 4

// Config controls synthesis and recap injection.
type Config struct {
	// MaxTableQuestions caps how many table-derived questions join a
	// lesson's quiz, so authored content dominates.
	MaxTableQuestions int

	// MaxDistractors is the number of wrong options drawn from other rows.
	MaxDistractors int

	// RecapPrevious is how many questions are drawn from lesson i-1.
	RecapPrevious int

	// RecapTwoBack is how many questions are drawn from lesson i-2.
	RecapTwoBack int
}

// DefaultConfig returns the standard settings.
func DefaultConfig() Config {
	return Config{
		MaxTableQuestions: 2,
		MaxDistractors:    3,
		RecapPrevious:     2,
		RecapTwoBack:      1,
	}
}
