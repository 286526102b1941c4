package progress

import (
	"context"
	"sync"
	"time"

	"github.com/abhisek/lingo/internal/session"
)

// Award maps whether a record is new to the XP it earns. A nil Award
// earns nothing.
type Award func(first bool) int

// Earn returns the XP for a record, never negative.
func (a Award) Earn(first bool) int {
	if a == nil {
		return 0
	}
	return max(a(first), 0)
}

// Repo persists progress. The SQLite implementation lives in the store
// package; MemoryRepo serves tests and ephemeral runs.
type Repo interface {
	// Load returns the current progress.
	Load(ctx context.Context) (*Progress, error)

	// CompleteLesson records a completion and the XP award chooses for it
	// in one write. It reports whether the completion was the first.
	CompleteLesson(ctx context.Context, lessonID string, at time.Time, award Award) (first bool, xp int, err error)

	// PassModule records an exam pass and its XP in one write, like
	// CompleteLesson.
	PassModule(ctx context.Context, moduleID string, at time.Time, award Award) (first bool, xp int, err error)

	// AddStats adds d to the cumulative stats.
	AddStats(ctx context.Context, d session.Stats) error

	// SetAdmin persists the admin flag.
	SetAdmin(ctx context.Context, on bool) error

	// Reset clears everything, admin included.
	Reset(ctx context.Context) error
}

// EventLog appends completed sessions to the history.
type EventLog interface {
	AppendSession(ctx context.Context, o session.Outcome, at time.Time) error
}

// MemoryRepo is an in-memory Repo. It is safe for concurrent use.
type MemoryRepo struct {
	mu     sync.Mutex
	p      *Progress
	writes int
}

// NewMemoryRepo returns an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{p: New()}
}

func (r *MemoryRepo) Load(context.Context) (*Progress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.p.Clone(), nil
}

func (r *MemoryRepo) CompleteLesson(_ context.Context, lessonID string, at time.Time, award Award) (bool, int, error) {
	return r.complete(func(p *Progress) map[string]Record { return p.CompletedLessons }, lessonID, at, award)
}

func (r *MemoryRepo) PassModule(_ context.Context, moduleID string, at time.Time, award Award) (bool, int, error) {
	return r.complete(func(p *Progress) map[string]Record { return p.CompletedModules }, moduleID, at, award)
}

func (r *MemoryRepo) complete(records func(*Progress) map[string]Record, id string, at time.Time, award Award) (bool, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	first := bump(records(r.p), id, at)
	xp := award.Earn(first)
	r.p.XP += xp
	return first, xp, nil
}

func bump(m map[string]Record, id string, at time.Time) bool {
	rec, ok := m[id]
	if !ok {
		rec.First = at
	}
	rec.Count++
	rec.Last = at
	m[id] = rec
	return !ok
}

func (r *MemoryRepo) AddStats(_ context.Context, d session.Stats) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	r.p.Stats = r.p.Stats.Add(d)
	return nil
}

func (r *MemoryRepo) SetAdmin(_ context.Context, on bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	r.p.Admin = on
	return nil
}

func (r *MemoryRepo) Reset(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	r.p = New()
	return nil
}

// Writes returns the number of mutating calls seen so far.
func (r *MemoryRepo) Writes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writes
}
