package progress

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/abhisek/lingo/internal/session"
)

// RepeatDivisor scales the lesson award for a lesson already completed.
const RepeatDivisor = 5

// Service applies session outcomes to persisted progress. It implements
// session.Recorder and session.OutcomeRecorder.
type Service struct {
	repo   Repo
	events EventLog
	clock  func() time.Time
	logger *slog.Logger
}

var (
	_ session.Recorder        = (*Service)(nil)
	_ session.OutcomeRecorder = (*Service)(nil)
)

// NewService creates a progress service. events may be nil, in which case
// session history is not kept.
func NewService(repo Repo, events EventLog, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		repo:   repo,
		events: events,
		clock:  time.Now,
		logger: logger,
	}
}

// Load returns the current progress.
func (s *Service) Load(ctx context.Context) (*Progress, error) {
	p, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	return p, nil
}

// LessonCompleted marks a lesson done. A first completion earns baseXP, a
// repeat earns baseXP/RepeatDivisor. Completion and XP are written together.
func (s *Service) LessonCompleted(ctx context.Context, lessonID string, baseXP int) (int, error) {
	first, xp, err := s.repo.CompleteLesson(ctx, lessonID, s.clock(), func(first bool) int {
		if first {
			return baseXP
		}
		return baseXP / RepeatDivisor
	})
	if err != nil {
		return 0, fmt.Errorf("complete lesson %s: %w", lessonID, err)
	}
	s.logger.Info("lesson completed", "lesson", lessonID, "first", first, "xp", xp)
	return xp, nil
}

// ModulePassed marks a module passed. Only the first pass earns baseXP; a
// repeat still updates the pass count and time.
func (s *Service) ModulePassed(ctx context.Context, moduleID string, baseXP int) (int, error) {
	first, xp, err := s.repo.PassModule(ctx, moduleID, s.clock(), func(first bool) int {
		if first {
			return baseXP
		}
		return 0
	})
	if err != nil {
		return 0, fmt.Errorf("pass module %s: %w", moduleID, err)
	}
	s.logger.Info("module passed", "module", moduleID, "first", first, "xp", xp)
	return xp, nil
}

// StatsDelta adds d to the cumulative stats. A zero delta is not written.
func (s *Service) StatsDelta(ctx context.Context, d session.Stats) error {
	if d.IsZero() {
		return nil
	}
	if err := s.repo.AddStats(ctx, d); err != nil {
		return fmt.Errorf("add stats: %w", err)
	}
	return nil
}

// RecordOutcome appends the session to the history when an event log is set.
func (s *Service) RecordOutcome(ctx context.Context, o session.Outcome) error {
	if s.events == nil {
		return nil
	}
	if err := s.events.AppendSession(ctx, o, s.clock()); err != nil {
		return fmt.Errorf("append session event: %w", err)
	}
	return nil
}

// FlushTime moves the seconds accumulated by t into the cumulative stats.
func (s *Service) FlushTime(ctx context.Context, t *TimeTracker, now time.Time) error {
	return s.StatsDelta(ctx, session.Stats{Seconds: t.Flush(now)})
}

// SetAdmin turns the unlock-everything flag on or off.
func (s *Service) SetAdmin(ctx context.Context, on bool) error {
	if err := s.repo.SetAdmin(ctx, on); err != nil {
		return fmt.Errorf("set admin: %w", err)
	}
	s.logger.Info("admin mode changed", "admin", on)
	return nil
}

// ToggleAdmin flips the admin flag and returns the new value.
func (s *Service) ToggleAdmin(ctx context.Context) (bool, error) {
	p, err := s.Load(ctx)
	if err != nil {
		return false, err
	}
	on := !p.Admin
	return on, s.SetAdmin(ctx, on)
}

// Reset clears all progress and turns admin off.
func (s *Service) Reset(ctx context.Context) error {
	if err := s.repo.Reset(ctx); err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	s.logger.Warn("progress reset")
	return nil
}
