package screen

import (
	"context"
	"log/slog"
	"math/rand/v2"

	"github.com/abhisek/lingo/internal/course"
	"github.com/abhisek/lingo/internal/explain"
	"github.com/abhisek/lingo/internal/progress"
	"github.com/abhisek/lingo/internal/questiongen"
	"github.com/abhisek/lingo/internal/session"
	"github.com/abhisek/lingo/internal/store"
)

// HistoryReader lists completed sessions, newest first.
type HistoryReader interface {
	QuerySessions(ctx context.Context, opts store.QueryOpts) ([]store.SessionEvent, error)
}

// Env carries the collaborators screens share.
type Env struct {
	Catalog  *course.Catalog
	Progress *progress.Service
	Pools    *questiongen.Builder
	Session  session.Options

	// Explain may be disabled; History may be nil.
	Explain *explain.Service
	History HistoryReader

	// Rand orders options and board columns at display time.
	Rand *rand.Rand

	// ForceAdmin unlocks everything for this run without persisting it.
	ForceAdmin bool

	Logger *slog.Logger
}

// Admin reports whether locks are lifted for p.
func (e *Env) Admin(p *progress.Progress) bool {
	return e.ForceAdmin || (p != nil && p.Admin)
}

// Shuffle returns a shuffled copy of in using the shared source.
func Shuffle[T any](e *Env, in []T) []T {
	return questiongen.Shuffle(e.Rand, in)
}

// Log returns the shared logger, or a discarding one.
func (e *Env) Log() *slog.Logger {
	if e.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return e.Logger
}
