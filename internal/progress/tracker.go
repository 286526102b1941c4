package progress

import "time"

// TimeTracker accumulates time spent in the course between ticks. Flush
// hands out whole seconds and keeps the fraction for the next call.
// While paused nothing accumulates; quiz sessions pause it because they
// report their own time.
type TimeTracker struct {
	mark   time.Time
	paused bool
}

// NewTimeTracker starts tracking at now.
func NewTimeTracker(now time.Time) *TimeTracker {
	return &TimeTracker{mark: now}
}

// Flush returns the whole seconds since the last flush and advances the
// mark by that amount. It returns 0 while paused or when the clock moved
// backwards.
func (t *TimeTracker) Flush(now time.Time) int64 {
	if t.paused {
		return 0
	}
	elapsed := now.Sub(t.mark)
	if elapsed < 0 {
		t.mark = now
		return 0
	}
	secs := int64(elapsed / time.Second)
	t.mark = t.mark.Add(time.Duration(secs) * time.Second)
	return secs
}

// Pause flushes and stops accumulating.
func (t *TimeTracker) Pause(now time.Time) int64 {
	secs := t.Flush(now)
	t.paused = true
	return secs
}

// Resume starts accumulating again from now.
func (t *TimeTracker) Resume(now time.Time) {
	t.mark = now
	t.paused = false
}

// Paused reports whether the tracker is paused.
func (t *TimeTracker) Paused() bool { return t.paused }
