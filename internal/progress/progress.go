// Package progress keeps the learner's course progress: completed lessons,
// passed modules, XP, cumulative stats and the admin flag.
package progress

import (
	"maps"
	"time"

	"github.com/abhisek/lingo/internal/session"
)

// Record tracks repeated completions of a lesson or passes of a module.
type Record struct {
	Count int       `json:"count"`
	First time.Time `json:"first"`
	Last  time.Time `json:"last"`
}

// Progress is a point-in-time view of the learner's state.
type Progress struct {
	CompletedLessons map[string]Record `json:"completed_lessons"`
	CompletedModules map[string]Record `json:"completed_modules"`
	XP               int               `json:"xp"`
	Stats            session.Stats     `json:"stats"`
	Admin            bool              `json:"admin"`
}

// New returns empty progress.
func New() *Progress {
	return &Progress{
		CompletedLessons: make(map[string]Record),
		CompletedModules: make(map[string]Record),
	}
}

// LessonDone reports whether the lesson has been completed at least once.
func (p *Progress) LessonDone(lessonID string) bool {
	if p == nil {
		return false
	}
	_, ok := p.CompletedLessons[lessonID]
	return ok
}

// ModuleDone reports whether the module exam has been passed.
func (p *Progress) ModuleDone(moduleID string) bool {
	if p == nil {
		return false
	}
	_, ok := p.CompletedModules[moduleID]
	return ok
}

// Clone returns a deep copy.
func (p *Progress) Clone() *Progress {
	c := *p
	c.CompletedLessons = maps.Clone(p.CompletedLessons)
	c.CompletedModules = maps.Clone(p.CompletedModules)
	if c.CompletedLessons == nil {
		c.CompletedLessons = make(map[string]Record)
	}
	if c.CompletedModules == nil {
		c.CompletedModules = make(map[string]Record)
	}
	return &c
}

// Accuracy is total correct over total answers, 0 before any answer.
func (p *Progress) Accuracy() float64 {
	return session.Percentage(p.Stats.Correct, p.Stats.Correct+p.Stats.Incorrect)
}
