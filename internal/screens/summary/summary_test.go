package summary

import (
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lingo/internal/router"
	"github.com/abhisek/lingo/internal/session"
)

func lessonOutcome() session.Outcome {
	return session.Outcome{
		SessionID: "s1",
		Mode:      session.ModeLesson,
		TargetID:  "m1_l1",
		Stats:     session.Stats{Correct: 6, Incorrect: 2, Seconds: 95},
		Total:     6,
		Passed:    true,
		XPAwarded: 20,
	}
}

func examOutcome(correct int) session.Outcome {
	p := session.Percentage(correct, 5)
	return session.Outcome{
		Mode:       session.ModeExam,
		TargetID:   "m1",
		Stats:      session.Stats{Correct: correct, Incorrect: 5 - correct},
		Total:      5,
		Percentage: p,
		Passed:     session.Passed(p, 0.51),
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	if got := New(lessonOutcome(), "Greetings", nil).Title(); got != "Lesson Complete" {
		t.Errorf("Title = %q, want %q", got, "Lesson Complete")
	}
	if got := New(examOutcome(3), "Basics exam", nil).Title(); got != "Exam Result" {
		t.Errorf("Title = %q, want %q", got, "Exam Result")
	}
}

func TestSummaryScreen_LessonDisplay(t *testing.T) {
	view := New(lessonOutcome(), "Greetings", nil).View(80, 24)
	for _, want := range []string{"Lesson complete!", "Greetings", "+20 XP", "1:35", "75%"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummaryScreen_ExamVerdict(t *testing.T) {
	if view := New(examOutcome(3), "Basics exam", nil).View(80, 24); !strings.Contains(view, "Exam passed!") {
		t.Error("expected pass verdict for 3/5")
	}
	view := New(examOutcome(2), "Basics exam", nil).View(80, 24)
	if !strings.Contains(view, "Exam not passed") {
		t.Error("expected fail verdict for 2/5")
	}
	if strings.Contains(view, "XP") {
		t.Error("failed exam should not show XP")
	}
}

func TestSummaryScreen_RecordError(t *testing.T) {
	view := New(lessonOutcome(), "Greetings", errors.New("disk full")).View(80, 24)
	if !strings.Contains(view, "disk full") {
		t.Error("expected record error in view")
	}
}

func TestSummaryScreen_Navigation(t *testing.T) {
	for _, k := range []tea.KeyPressMsg{{Code: tea.KeyEnter}, {Code: tea.KeyEscape}} {
		_, cmd := New(lessonOutcome(), "Greetings", nil).Update(k)
		if cmd == nil {
			t.Fatalf("expected a command on %s", k.String())
		}
		if _, ok := cmd().(router.PopToRootMsg); !ok {
			t.Errorf("%s: got %T, want PopToRootMsg", k.String(), cmd())
		}
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	if len(New(lessonOutcome(), "", nil).KeyHints()) == 0 {
		t.Error("expected non-empty key hints")
	}
}
