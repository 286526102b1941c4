package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/lingo/internal/session"
)

// SessionEvent is one completed lesson or exam in the history.
type SessionEvent struct {
	ID           int
	Sequence     int64
	Timestamp    time.Time
	SessionID    string
	Kind         string
	TargetID     string
	Correct      int
	Incorrect    int
	Total        int
	DurationSecs int64
	Percentage   float64
	Passed       bool
	XP           int
}

var sessionEventColumns = []string{
	"id", "sequence", "timestamp", "session_id", "kind", "target_id",
	"correct", "incorrect", "total", "duration_secs", "percentage", "passed", "xp",
}

// AppendSession records a completed session. It satisfies progress.EventLog.
func (e *Events) AppendSession(ctx context.Context, o session.Outcome, at time.Time) error {
	seqNum, err := e.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	q, args := sqlite().Insert(tableSessions).
		Columns(sessionEventColumns[1:]...).
		Values(
			seqNum, at.UTC(), o.SessionID, o.Mode.String(), o.TargetID,
			o.Stats.Correct, o.Stats.Incorrect, o.Total, o.Stats.Seconds,
			o.Percentage, o.Passed, o.XPAwarded,
		).
		Query()
	if _, err := e.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

// QuerySessions returns session events, newest first.
func (e *Events) QuerySessions(ctx context.Context, opts QueryOpts) ([]SessionEvent, error) {
	sel := sqlite().Select(sessionEventColumns...).From(entsql.Table(tableSessions))
	q, args := opts.apply(sel).Query()

	rows, err := e.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	defer rows.Close()

	var out []SessionEvent
	for rows.Next() {
		var ev SessionEvent
		if err := rows.Scan(
			&ev.ID, &ev.Sequence, &ev.Timestamp, &ev.SessionID, &ev.Kind, &ev.TargetID,
			&ev.Correct, &ev.Incorrect, &ev.Total, &ev.DurationSecs, &ev.Percentage, &ev.Passed, &ev.XP,
		); err != nil {
			return nil, fmt.Errorf("scan session event: %w", err)
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}
