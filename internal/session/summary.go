package session

// Outcome is emitted once when a session completes.
type Outcome struct {
	SessionID string
	Mode      Mode
	TargetID  string

	// Stats holds the session's answer counts and elapsed whole seconds.
	Stats Stats

	// Total is the number of questions the session started with.
	Total int

	// Percentage is correct / total for exams; zero for lessons.
	Percentage float64

	// Passed is the exam verdict. Lessons always pass.
	Passed bool

	// XPAwarded is what the recorder granted, 0 without a recorder.
	XPAwarded int
}

// Percentage returns correct / total, or 0 for an empty exam.
func Percentage(correct, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(correct) / float64(total)
}

// Passed applies the exam rule: the score must be strictly above threshold.
func Passed(percentage, threshold float64) bool {
	return percentage > threshold
}

// Accuracy is correct answers over all answers, retries included.
func (o Outcome) Accuracy() float64 {
	return Percentage(o.Stats.Correct, o.Stats.Correct+o.Stats.Incorrect)
}
