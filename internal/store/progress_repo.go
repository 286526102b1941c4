package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/lingo/internal/progress"
	"github.com/abhisek/lingo/internal/session"
)

// progressRepo implements progress.Repo on the lesson, module and learner tables.
type progressRepo struct {
	db *sql.DB
}

var _ progress.Repo = (*progressRepo)(nil)

// execQuerier is the part of *sql.DB and *sql.Tx the repo writes through.
type execQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func seedLearner(db *sql.DB) error {
	q, args := sqlite().Insert(tableLearner).
		Columns("id").
		Values(learnerID).
		OnConflict(entsql.ConflictColumns("id"), entsql.DoNothing()).
		Query()
	if _, err := db.Exec(q, args...); err != nil {
		return fmt.Errorf("seed learner: %w", err)
	}
	return nil
}

func (r *progressRepo) Load(ctx context.Context) (*progress.Progress, error) {
	p := progress.New()

	q, args := sqlite().
		Select("xp", "total_correct", "total_incorrect", "time_spent_seconds", "admin").
		From(entsql.Table(tableLearner)).
		Where(entsql.EQ("id", learnerID)).
		Query()
	err := r.db.QueryRowContext(ctx, q, args...).
		Scan(&p.XP, &p.Stats.Correct, &p.Stats.Incorrect, &p.Stats.Seconds, &p.Admin)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("query learner: %w", err)
	}

	if err := r.loadRecords(ctx, tableLessons, "lesson_id", "completions",
		"first_completed_at", "last_completed_at", p.CompletedLessons); err != nil {
		return nil, err
	}
	if err := r.loadRecords(ctx, tableModules, "module_id", "passes",
		"first_passed_at", "last_passed_at", p.CompletedModules); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *progressRepo) loadRecords(ctx context.Context, table, key, count, first, last string, into map[string]progress.Record) error {
	q, args := sqlite().Select(key, count, first, last).From(entsql.Table(table)).Query()
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id  string
			rec progress.Record
		)
		if err := rows.Scan(&id, &rec.Count, &rec.First, &rec.Last); err != nil {
			return fmt.Errorf("scan %s: %w", table, err)
		}
		into[id] = rec
	}
	return rows.Err()
}

func (r *progressRepo) CompleteLesson(ctx context.Context, lessonID string, at time.Time, award progress.Award) (bool, int, error) {
	return r.complete(ctx, tableLessons, "lesson_id", "completions", "first_completed_at", "last_completed_at", lessonID, at, award)
}

func (r *progressRepo) PassModule(ctx context.Context, moduleID string, at time.Time, award progress.Award) (bool, int, error) {
	return r.complete(ctx, tableModules, "module_id", "passes", "first_passed_at", "last_passed_at", moduleID, at, award)
}

// complete upserts the record and adds the awarded XP in one transaction,
// so a failed XP write leaves the record untouched.
func (r *progressRepo) complete(ctx context.Context, table, key, count, first, last, id string, at time.Time, award progress.Award) (bool, int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, 0, fmt.Errorf("begin %s %s: %w", table, id, err)
	}
	defer tx.Rollback()

	isFirst, err := upsertRecord(ctx, tx, table, key, count, first, last, id, at)
	if err != nil {
		return false, 0, err
	}
	xp := award.Earn(isFirst)
	if xp > 0 {
		if err := updateLearner(ctx, tx, sqlite().Update(tableLearner).Add("xp", xp)); err != nil {
			return false, 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return false, 0, fmt.Errorf("commit %s %s: %w", table, id, err)
	}
	return isFirst, xp, nil
}

// upsertRecord inserts a first record or bumps the count and last time of
// an existing one. The returned count tells the two apart.
func upsertRecord(ctx context.Context, db execQuerier, table, key, count, first, last, id string, at time.Time) (bool, error) {
	at = at.UTC()
	q, args := sqlite().Insert(table).
		Columns(key, count, first, last).
		Values(id, 1, at, at).
		OnConflict(
			entsql.ConflictColumns(key),
			entsql.ResolveWith(func(u *entsql.UpdateSet) {
				u.SetExcluded(last)
				u.Add(count, 1)
			}),
		).
		Returning(count).
		Query()

	var n int
	if err := db.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		return false, fmt.Errorf("upsert %s %s: %w", table, id, err)
	}
	return n == 1, nil
}

func (r *progressRepo) AddStats(ctx context.Context, d session.Stats) error {
	return updateLearner(ctx, r.db, sqlite().Update(tableLearner).
		Add("total_correct", d.Correct).
		Add("total_incorrect", d.Incorrect).
		Add("time_spent_seconds", d.Seconds))
}

func (r *progressRepo) SetAdmin(ctx context.Context, on bool) error {
	return updateLearner(ctx, r.db, sqlite().Update(tableLearner).Set("admin", on))
}

func updateLearner(ctx context.Context, db execQuerier, u *entsql.UpdateBuilder) error {
	q, args := u.Where(entsql.EQ("id", learnerID)).Query()
	if _, err := db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("update learner: %w", err)
	}
	return nil
}

// Reset clears lessons, modules, XP, stats and the admin flag. Session and
// LLM history is an append-only log and is kept.
func (r *progressRepo) Reset(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reset: %w", err)
	}
	defer tx.Rollback()

	stmts := []entsql.Querier{
		sqlite().Delete(tableLessons),
		sqlite().Delete(tableModules),
		sqlite().Update(tableLearner).
			Set("xp", 0).
			Set("total_correct", 0).
			Set("total_incorrect", 0).
			Set("time_spent_seconds", 0).
			Set("admin", false).
			Where(entsql.EQ("id", learnerID)),
	}
	for _, s := range stmts {
		q, args := s.Query()
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			return fmt.Errorf("reset: %w", err)
		}
	}
	return tx.Commit()
}
