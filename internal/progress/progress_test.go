package progress

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/abhisek/lingo/internal/question"
	"github.com/abhisek/lingo/internal/session"
)

var t0 = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

type memLog struct{ got []session.Outcome }

func (m *memLog) AppendSession(_ context.Context, o session.Outcome, _ time.Time) error {
	m.got = append(m.got, o)
	return nil
}

func newTestService() (*Service, *MemoryRepo, *memLog) {
	repo := NewMemoryRepo()
	log := &memLog{}
	svc := NewService(repo, log, nil)
	svc.clock = func() time.Time { return t0 }
	return svc, repo, log
}

func TestLessonXPFirstAndRepeat(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	for i, want := range []int{20, 4, 4} {
		got, err := svc.LessonCompleted(ctx, "m1_l1", 20)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("completion %d xp = %d, want %d", i+1, got, want)
		}
	}

	p, _ := svc.Load(ctx)
	if p.XP != 28 {
		t.Errorf("XP = %d, want 28", p.XP)
	}
	rec := p.CompletedLessons["m1_l1"]
	if rec.Count != 3 || !rec.First.Equal(t0) {
		t.Errorf("record = %+v", rec)
	}
	if !p.LessonDone("m1_l1") || p.LessonDone("m1_l2") {
		t.Error("LessonDone mismatch")
	}
}

func TestModulePassOnlyFirstEarns(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	if xp, _ := svc.ModulePassed(ctx, "m1", 100); xp != 100 {
		t.Errorf("first pass xp = %d, want 100", xp)
	}
	later := t0.Add(time.Hour)
	svc.clock = func() time.Time { return later }
	if xp, _ := svc.ModulePassed(ctx, "m1", 100); xp != 0 {
		t.Errorf("repeat pass xp = %d, want 0", xp)
	}

	p, _ := svc.Load(ctx)
	if p.XP != 100 {
		t.Errorf("XP = %d, want 100", p.XP)
	}
	rec := p.CompletedModules["m1"]
	if rec.Count != 2 || !rec.Last.Equal(later) {
		t.Errorf("repeat pass not re-confirmed: %+v", rec)
	}
}

func TestStatsDeltaZeroIsNotWritten(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	if err := svc.StatsDelta(ctx, session.Stats{}); err != nil {
		t.Fatal(err)
	}
	if repo.Writes() != 0 {
		t.Errorf("writes = %d, want 0", repo.Writes())
	}

	svc.StatsDelta(ctx, session.Stats{Correct: 2, Incorrect: 1, Seconds: 40})
	svc.StatsDelta(ctx, session.Stats{Correct: 1})
	p, _ := svc.Load(ctx)
	want := session.Stats{Correct: 3, Incorrect: 1, Seconds: 40}
	if p.Stats != want {
		t.Errorf("stats = %+v, want %+v", p.Stats, want)
	}
	if got := p.Accuracy(); got != 0.75 {
		t.Errorf("accuracy = %v, want 0.75", got)
	}
}

func TestAdminAndReset(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	on, err := svc.ToggleAdmin(ctx)
	if err != nil || !on {
		t.Fatalf("ToggleAdmin = %v, %v", on, err)
	}
	svc.LessonCompleted(ctx, "m1_l1", 20)
	svc.ModulePassed(ctx, "m1", 100)
	svc.StatsDelta(ctx, session.Stats{Correct: 1})

	if err := svc.Reset(ctx); err != nil {
		t.Fatal(err)
	}
	p, _ := svc.Load(ctx)
	if p.Admin || p.XP != 0 || p.LessonDone("m1_l1") || p.ModuleDone("m1") || !p.Stats.IsZero() {
		t.Errorf("reset left state behind: %+v", p)
	}
}

func TestLoadReturnsCopy(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	p, _ := svc.Load(ctx)
	p.CompletedLessons["x"] = Record{Count: 1}
	p.XP = 999

	again, _ := svc.Load(ctx)
	if again.LessonDone("x") || again.XP != 0 {
		t.Error("mutating a loaded Progress changed the repo")
	}
}

func TestNilProgressIsEmpty(t *testing.T) {
	var p *Progress
	if p.LessonDone("a") || p.ModuleDone("m") {
		t.Error("nil progress reports completion")
	}
}

func TestServiceAsSessionRecorder(t *testing.T) {
	svc, _, log := newTestService()
	ctx := context.Background()

	pool := []question.Question{
		&question.MultipleChoice{
			Meta:   question.Meta{QID: "q1", Text: "Hello?"},
			Choice: question.Choice{Options: []string{"Здраво", "Чао"}, Answer: "Здраво"},
		},
	}
	opts := session.DefaultOptions()
	opts.Recorder = svc
	s, err := session.NewLesson("m1_l1", pool, opts)
	if err != nil {
		t.Fatal(err)
	}
	s.SubmitAnswer("Чао")
	s.Advance(ctx)
	s.SubmitAnswer("Здраво")
	out, err := s.Advance(ctx)
	if err != nil || out == nil {
		t.Fatalf("Advance = %v, %v", out, err)
	}

	p, _ := svc.Load(ctx)
	if p.XP != 20 || !p.LessonDone("m1_l1") {
		t.Errorf("progress = %+v", p)
	}
	if p.Stats.Correct != 1 || p.Stats.Incorrect != 1 {
		t.Errorf("stats = %+v", p.Stats)
	}
	if len(log.got) != 1 || log.got[0].TargetID != "m1_l1" {
		t.Errorf("history = %+v", log.got)
	}
}

type failingRepo struct{ *MemoryRepo }

var errDisk = errors.New("disk full")

func (failingRepo) CompleteLesson(context.Context, string, time.Time, Award) (bool, int, error) {
	return false, 0, errDisk
}

func TestLessonCompletedWrapsRepoError(t *testing.T) {
	svc := NewService(failingRepo{NewMemoryRepo()}, nil, nil)
	_, err := svc.LessonCompleted(context.Background(), "l", 20)
	if !errors.Is(err, errDisk) {
		t.Errorf("err = %v, want wrapped errDisk", err)
	}
}

func TestLessonCompletionAndXPAreOneWrite(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.LessonCompleted(ctx, "m1_l1", 20); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.ModulePassed(ctx, "m1", 100); err != nil {
		t.Fatal(err)
	}
	if repo.Writes() != 2 {
		t.Errorf("Writes = %d, want 2", repo.Writes())
	}
	p, _ := svc.Load(ctx)
	if p.XP != 120 {
		t.Errorf("XP = %d, want 120", p.XP)
	}
}

func TestAwardNilAndNegativeEarnNothing(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	if _, xp, _ := repo.CompleteLesson(ctx, "l", t0, nil); xp != 0 {
		t.Errorf("nil award xp = %d, want 0", xp)
	}
	if _, xp, _ := repo.PassModule(ctx, "m", t0, func(bool) int { return -5 }); xp != 0 {
		t.Errorf("negative award xp = %d, want 0", xp)
	}
	p, _ := repo.Load(ctx)
	if p.XP != 0 || !p.LessonDone("l") || !p.ModuleDone("m") {
		t.Errorf("progress = %+v", p)
	}
}

func TestTimeTrackerFlush(t *testing.T) {
	tr := NewTimeTracker(t0)

	if got := tr.Flush(t0); got != 0 {
		t.Errorf("zero elapsed = %d, want 0", got)
	}
	if got := tr.Flush(t0.Add(30*time.Second + 600*time.Millisecond)); got != 30 {
		t.Errorf("flush = %d, want 30", got)
	}
	// The 600ms remainder carries over.
	if got := tr.Flush(t0.Add(31*time.Second + 100*time.Millisecond)); got != 1 {
		t.Errorf("flush with carry = %d, want 1", got)
	}
	if got := tr.Flush(t0); got != 0 {
		t.Errorf("backwards clock = %d, want 0", got)
	}
}

func TestTimeTrackerPauseResume(t *testing.T) {
	tr := NewTimeTracker(t0)
	if got := tr.Pause(t0.Add(10 * time.Second)); got != 10 {
		t.Errorf("pause flush = %d, want 10", got)
	}
	if got := tr.Flush(t0.Add(5 * time.Minute)); got != 0 || !tr.Paused() {
		t.Errorf("paused flush = %d, want 0", got)
	}
	tr.Resume(t0.Add(5 * time.Minute))
	if got := tr.Flush(t0.Add(5*time.Minute + 30*time.Second)); got != 30 {
		t.Errorf("resumed flush = %d, want 30", got)
	}
}

func TestFlushTimeIdempotentOnZero(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()
	tr := NewTimeTracker(t0)

	for range 3 {
		if err := svc.FlushTime(ctx, tr, t0); err != nil {
			t.Fatal(err)
		}
	}
	if repo.Writes() != 0 {
		t.Errorf("writes = %d, want 0", repo.Writes())
	}

	svc.FlushTime(ctx, tr, t0.Add(30*time.Second))
	svc.FlushTime(ctx, tr, t0.Add(30*time.Second))
	p, _ := svc.Load(ctx)
	if p.Stats.Seconds != 30 || repo.Writes() != 1 {
		t.Errorf("seconds = %d writes = %d, want 30 and 1", p.Stats.Seconds, repo.Writes())
	}
}
