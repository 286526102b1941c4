package session

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/abhisek/lingo/internal/question"
)

type fakeRecorder struct {
	lessons  map[string]bool
	modules  map[string]bool
	xp       int
	stats    Stats
	calls    int
	outcomes []Outcome
	fail     error
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{lessons: map[string]bool{}, modules: map[string]bool{}}
}

func (f *fakeRecorder) LessonCompleted(_ context.Context, id string, xp int) (int, error) {
	f.calls++
	if f.lessons[id] {
		xp /= 5
	}
	f.lessons[id] = true
	f.xp += xp
	return xp, f.fail
}

func (f *fakeRecorder) ModulePassed(_ context.Context, id string, xp int) (int, error) {
	f.calls++
	if f.modules[id] {
		xp = 0
	}
	f.modules[id] = true
	f.xp += xp
	return xp, f.fail
}

func (f *fakeRecorder) StatsDelta(_ context.Context, d Stats) error {
	f.stats = f.stats.Add(d)
	return nil
}

func (f *fakeRecorder) RecordOutcome(_ context.Context, o Outcome) error {
	f.outcomes = append(f.outcomes, o)
	return nil
}

func mc(id string) *question.MultipleChoice {
	return &question.MultipleChoice{
		Meta:   question.Meta{QID: id, Text: id + "?"},
		Choice: question.Choice{Options: []string{"right", "wrong"}, Answer: "right"},
	}
}

func fg(id string) *question.FillGap {
	return &question.FillGap{
		Meta:   question.Meta{QID: id, Text: "Јас ___"},
		Choice: question.Choice{Options: []string{"right", "wrong"}, Answer: "right"},
	}
}

func conn(id string) *question.Connect {
	return &question.Connect{
		Meta:  question.Meta{QID: id, Text: "Match the words"},
		Pairs: []question.Pair{{Left: "еден", Right: "one"}},
	}
}

// fakeClock advances by step each call.
func fakeClock(start time.Time, step time.Duration) func() time.Time {
	now := start
	return func() time.Time {
		t := now
		now = now.Add(step)
		return t
	}
}

func testOpts(r Recorder) Options {
	o := DefaultOptions()
	o.Recorder = r
	o.Clock = fakeClock(time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC), 45*time.Second)
	return o
}

func answer(t *testing.T, s *Session, choice string) *Outcome {
	t.Helper()
	if _, err := s.SubmitAnswer(choice); err != nil {
		t.Fatalf("SubmitAnswer(%q): %v", choice, err)
	}
	out, err := s.Advance(context.Background())
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	return out
}

func TestLessonScenarioWrongThenRight(t *testing.T) {
	rec := newFakeRecorder()
	s, err := NewLesson("l1", []question.Question{mc("Q1"), fg("Q2")}, testOpts(rec))
	if err != nil {
		t.Fatal(err)
	}

	// Q1 wrong: it goes to the tail as a retry.
	if out := answer(t, s, "wrong"); out != nil {
		t.Fatal("session completed early")
	}
	if s.Current().ID() != "Q2" {
		t.Fatalf("current = %s, want Q2", s.Current().ID())
	}
	if s.Remaining() != 2 || s.Mistakes() != 1 {
		t.Errorf("remaining/mistakes = %d/%d, want 2/1", s.Remaining(), s.Mistakes())
	}
	if s.Progress() != 0 {
		t.Errorf("progress = %v, want 0", s.Progress())
	}

	answer(t, s, "right") // Q2
	if got := s.Current(); got.ID() != "Q1" || !got.IsRetry() {
		t.Fatalf("current = %s retry=%v, want retried Q1", got.ID(), got.IsRetry())
	}
	if s.Progress() != 0.5 {
		t.Errorf("progress = %v, want 0.5", s.Progress())
	}

	out := answer(t, s, "right") // Q1 retry
	if out == nil {
		t.Fatal("expected outcome on last question")
	}
	if out.Stats.Correct != 2 || out.Stats.Incorrect != 1 {
		t.Errorf("stats = %+v, want 2 correct 1 incorrect", out.Stats)
	}
	if out.XPAwarded != 20 || rec.xp != 20 {
		t.Errorf("xp awarded = %d (recorder %d), want 20", out.XPAwarded, rec.xp)
	}
	if out.Stats.Seconds != 45 {
		t.Errorf("seconds = %d, want 45", out.Stats.Seconds)
	}
	if s.Phase() != PhaseComplete || s.Current() != nil || s.Progress() != 1 {
		t.Errorf("phase %v current %v progress %v", s.Phase(), s.Current(), s.Progress())
	}
	if rec.stats.Correct != 2 || rec.stats.Incorrect != 1 {
		t.Errorf("recorded stats = %+v", rec.stats)
	}
	if len(rec.outcomes) != 1 || rec.outcomes[0].SessionID != s.ID() {
		t.Errorf("outcomes recorded = %d", len(rec.outcomes))
	}
}

func TestRepeatLessonIsWorthOneFifth(t *testing.T) {
	rec := newFakeRecorder()
	for i, want := range []int{20, 4} {
		s, err := NewLesson("l1", []question.Question{mc("Q1")}, testOpts(rec))
		if err != nil {
			t.Fatal(err)
		}
		out := answer(t, s, "right")
		if out.XPAwarded != want {
			t.Errorf("run %d xp = %d, want %d", i, out.XPAwarded, want)
		}
	}
}

func TestCompletionEmittedOnce(t *testing.T) {
	rec := newFakeRecorder()
	s, _ := NewLesson("l1", []question.Question{mc("Q1")}, testOpts(rec))
	answer(t, s, "right")

	if _, err := s.Advance(context.Background()); !errors.Is(err, ErrComplete) {
		t.Errorf("second Advance err = %v, want ErrComplete", err)
	}
	if _, err := s.SubmitAnswer("right"); !errors.Is(err, ErrComplete) {
		t.Errorf("SubmitAnswer after completion err = %v, want ErrComplete", err)
	}
	if rec.calls != 1 {
		t.Errorf("recorder called %d times, want 1", rec.calls)
	}
}

func TestInvalidSubmissionIsNoOp(t *testing.T) {
	s, _ := NewLesson("l1", []question.Question{mc("Q1"), conn("C1")}, testOpts(nil))

	if _, err := s.SubmitAnswer(""); !errors.Is(err, ErrInvalidSubmission) {
		t.Errorf("empty choice err = %v", err)
	}
	if s.Phase() != PhaseActive || s.Stats() != (Stats{}) {
		t.Error("empty submission changed state")
	}

	if _, err := s.CompletePairing(true); !errors.Is(err, ErrInvalidSubmission) {
		t.Errorf("pairing on mc err = %v", err)
	}

	answer(t, s, "right")
	if _, err := s.SubmitAnswer("one"); !errors.Is(err, ErrInvalidSubmission) {
		t.Errorf("submit on connect err = %v", err)
	}
	if s.Stats().Incorrect != 0 {
		t.Error("submission on connect must never score wrong")
	}

	if _, err := s.Advance(context.Background()); !errors.Is(err, ErrNotResolved) {
		t.Errorf("advance before answer err = %v", err)
	}
}

func TestSecondSubmissionDuringFeedbackRejected(t *testing.T) {
	s, _ := NewLesson("l1", []question.Question{mc("Q1")}, testOpts(nil))
	if _, err := s.SubmitAnswer("wrong"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.SubmitAnswer("right"); !errors.Is(err, ErrInvalidSubmission) {
		t.Errorf("err = %v, want ErrInvalidSubmission", err)
	}
	if s.Stats().Correct != 0 || s.Stats().Incorrect != 1 {
		t.Errorf("stats = %+v", s.Stats())
	}
}

// Mismatched pairs are corrected on the board and never counted as wrong;
// a connect question can only resolve as correct.
func TestConnectIsForgiving(t *testing.T) {
	rec := newFakeRecorder()
	s, _ := NewLesson("l1", []question.Question{conn("C1")}, testOpts(rec))

	fb, err := s.CompletePairing(false)
	if err != nil {
		t.Fatal(err)
	}
	if fb.Correct || s.Phase() != PhaseActive || s.Stats().Incorrect != 0 {
		t.Errorf("unsuccessful pairing changed state: %+v phase %v", s.Stats(), s.Phase())
	}

	fb, err = s.CompletePairing(true)
	if err != nil || !fb.Correct {
		t.Fatalf("CompletePairing(true) = %+v, %v", fb, err)
	}
	out, err := s.Advance(context.Background())
	if err != nil || out == nil {
		t.Fatalf("Advance = %v, %v", out, err)
	}
	if out.Stats.Correct != 1 || out.Stats.Incorrect != 0 {
		t.Errorf("stats = %+v, want 1 correct 0 incorrect", out.Stats)
	}
}

func TestEmptyPoolCannotStart(t *testing.T) {
	if _, err := NewLesson("l", nil, DefaultOptions()); !errors.Is(err, ErrEmptyPool) {
		t.Errorf("lesson err = %v", err)
	}
	if _, err := NewExam("m", []question.Question{}, DefaultOptions()); !errors.Is(err, ErrEmptyPool) {
		t.Errorf("exam err = %v", err)
	}
}

func TestRecorderErrorStillCompletes(t *testing.T) {
	rec := newFakeRecorder()
	rec.fail = errors.New("disk full")
	s, _ := NewLesson("l1", []question.Question{mc("Q1")}, testOpts(rec))
	s.SubmitAnswer("right")
	out, err := s.Advance(context.Background())
	if err == nil || !errors.Is(err, rec.fail) {
		t.Errorf("err = %v, want wrapped recorder error", err)
	}
	if out == nil || s.Phase() != PhaseComplete {
		t.Error("session should complete despite recorder failure")
	}
}

// For any answer sequence, net progress equals the number of correct
// answers, and the session completes only once every original question
// has been answered correctly.
func TestLessonPropertyRandomAnswers(t *testing.T) {
	for seed := uint64(0); seed < 200; seed++ {
		rng := rand.New(rand.NewPCG(seed, 7))
		n := 1 + rng.IntN(6)
		pool := make([]question.Question, n)
		for i := range pool {
			pool[i] = mc(string(rune('A' + i)))
		}
		s, err := NewLesson("l", pool, testOpts(nil))
		if err != nil {
			t.Fatal(err)
		}

		solved := map[string]bool{}
		correct := 0
		var out *Outcome
		for steps := 0; out == nil; steps++ {
			if steps > 1000 {
				t.Fatalf("seed %d: session did not finish", seed)
			}
			if len(solved) == n {
				t.Fatalf("seed %d: all solved but session still active", seed)
			}
			id := s.Current().ID()
			choice := "wrong"
			if rng.IntN(3) > 0 {
				choice = "right"
				correct++
				solved[id] = true
			}
			out = answer(t, s, choice)
			if s.NetProgress() != correct {
				t.Fatalf("seed %d: net progress %d, want %d", seed, s.NetProgress(), correct)
			}
			if p := s.Progress(); p < 0 || p > 1 {
				t.Fatalf("seed %d: progress %v out of range", seed, p)
			}
		}
		if len(solved) != n {
			t.Errorf("seed %d: completed with %d/%d solved", seed, len(solved), n)
		}
		if out.Stats.Correct != n {
			t.Errorf("seed %d: correct = %d, want %d", seed, out.Stats.Correct, n)
		}
	}
}

func examPool(n int) []question.Question {
	pool := make([]question.Question, n)
	for i := range pool {
		pool[i] = mc(string(rune('a' + i)))
	}
	return pool
}

func runExam(t *testing.T, rec Recorder, n, correct int) *Outcome {
	t.Helper()
	s, err := NewExam("m1", examPool(n), testOpts(rec))
	if err != nil {
		t.Fatal(err)
	}
	var out *Outcome
	for i := 0; i < n; i++ {
		choice := "wrong"
		if i < correct {
			choice = "right"
		}
		out = answer(t, s, choice)
		if i < n-1 && out != nil {
			t.Fatalf("exam finished after %d of %d", i+1, n)
		}
	}
	return out
}

func TestExamPassScenario(t *testing.T) {
	rec := newFakeRecorder()
	out := runExam(t, rec, 5, 3)
	if !out.Passed || out.Percentage != 0.6 {
		t.Errorf("3/5: passed=%v pct=%v, want pass at 0.6", out.Passed, out.Percentage)
	}
	if out.XPAwarded != 100 || !rec.modules["m1"] {
		t.Errorf("xp = %d, module recorded = %v", out.XPAwarded, rec.modules["m1"])
	}

	// A second pass re-confirms but awards nothing.
	out = runExam(t, rec, 5, 5)
	if !out.Passed || out.XPAwarded != 0 {
		t.Errorf("repeat pass xp = %d, want 0", out.XPAwarded)
	}
}

func TestExamFailScenario(t *testing.T) {
	rec := newFakeRecorder()
	out := runExam(t, rec, 5, 2)
	if out.Passed || out.XPAwarded != 0 || rec.modules["m1"] {
		t.Errorf("2/5: passed=%v xp=%d recorded=%v, want fail", out.Passed, out.XPAwarded, rec.modules["m1"])
	}
	if rec.stats.Correct != 2 || rec.stats.Incorrect != 3 {
		t.Errorf("stats still recorded on fail: %+v", rec.stats)
	}
}

func TestExamNeverRequeues(t *testing.T) {
	s, _ := NewExam("m1", examPool(3), testOpts(nil))
	answer(t, s, "wrong")
	if s.Remaining() != 2 || s.Mistakes() != 0 {
		t.Errorf("remaining/mistakes = %d/%d, want 2/0", s.Remaining(), s.Mistakes())
	}
	if got := s.Progress(); got < 0.33 || got > 0.34 {
		t.Errorf("exam progress = %v, want 1/3", got)
	}
}

func TestPassThresholdIsStrict(t *testing.T) {
	tests := []struct {
		pct  float64
		want bool
	}{
		{0.51, false},
		{0.5100001, true},
		{0.5, false},
		{1, true},
		{0, false},
	}
	for _, tt := range tests {
		if got := Passed(tt.pct, 0.51); got != tt.want {
			t.Errorf("Passed(%v) = %v, want %v", tt.pct, got, tt.want)
		}
	}

	// 51 of 100 is exactly the threshold and fails.
	if Passed(Percentage(51, 100), 0.51) {
		t.Error("51/100 must fail")
	}
}

func TestPercentageMonotonic(t *testing.T) {
	for total := 1; total <= 20; total++ {
		prev := -1.0
		for c := 0; c <= total; c++ {
			p := Percentage(c, total)
			if p < prev {
				t.Fatalf("Percentage(%d, %d) = %v < %v", c, total, p, prev)
			}
			prev = p
		}
	}
}

func TestStatsAdd(t *testing.T) {
	a := Stats{Correct: 1, Incorrect: 2, Seconds: 30}
	if got := a.Add(Stats{}); got != a {
		t.Errorf("Add(zero) = %+v", got)
	}
	if !(Stats{}).IsZero() || a.IsZero() {
		t.Error("IsZero mismatch")
	}
	if got := a.Add(a); got != (Stats{Correct: 2, Incorrect: 4, Seconds: 60}) {
		t.Errorf("Add = %+v", got)
	}
}
