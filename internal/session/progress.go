package session

// Progress is the fraction of the session done, for progress bars. Lessons
// count questions answered correctly against the starting queue length so
// retries never move the bar backwards; exams count answered questions.
func (s *Session) Progress() float64 {
	done := s.net
	if s.mode == ModeExam {
		done = s.answered
	}
	f := float64(done) / float64(s.original)
	return min(max(f, 0), 1)
}

// NetProgress is the number of questions answered correctly so far.
func (s *Session) NetProgress() int { return s.net }

// Total is the starting queue length.
func (s *Session) Total() int { return s.original }

// Remaining is the current queue length, retries included.
func (s *Session) Remaining() int {
	if s.phase == PhaseComplete {
		return 0
	}
	return len(s.queue)
}

// Mistakes is the number of retries still waiting in the queue.
func (s *Session) Mistakes() int {
	n := 0
	for _, q := range s.queue {
		if q.IsRetry() {
			n++
		}
	}
	return n
}

// Stats returns the running answer counts. Seconds is only filled in on
// the outcome.
func (s *Session) Stats() Stats { return s.stats }
