package stats

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/lingo/internal/course"
	"github.com/abhisek/lingo/internal/progress"
	"github.com/abhisek/lingo/internal/screen"
	"github.com/abhisek/lingo/internal/session"
)

func TestStatsScreen_View(t *testing.T) {
	c, err := course.Default()
	if err != nil {
		t.Fatal(err)
	}
	repo := progress.NewMemoryRepo()
	ctx := context.Background()
	repo.CompleteLesson(ctx, "m1_l1", time.Now(), func(bool) int { return 20 })
	repo.AddStats(ctx, session.Stats{Correct: 9, Incorrect: 3, Seconds: 250})

	s := New(&screen.Env{
		Catalog:  course.NewCatalog(c),
		Progress: progress.NewService(repo, nil, nil),
	})
	s.Update(s.Init()())

	view := s.View(100, 30)
	for _, want := range []string{"1 / 5", "0 / 2", "75%", "4m 10s", "Up next"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestStatsScreen_Loading(t *testing.T) {
	s := New(&screen.Env{})
	if !strings.Contains(s.View(80, 24), "Loading") {
		t.Error("expected loading view before data arrives")
	}
}

func TestDuration(t *testing.T) {
	tests := []struct {
		secs int64
		want string
	}{
		{0, "0m 00s"},
		{250, "4m 10s"},
		{3900, "1h 05m"},
	}
	for _, tt := range tests {
		if got := Duration(tt.secs); got != tt.want {
			t.Errorf("Duration(%d) = %q, want %q", tt.secs, got, tt.want)
		}
	}
}
