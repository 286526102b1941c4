package course

import "fmt"

// Completion answers which lessons and modules the learner has finished.
// progress.Progress satisfies it.
type Completion interface {
	LessonDone(lessonID string) bool
	ModuleDone(moduleID string) bool
}

// Position locates a lesson within the course.
type Position struct {
	ModuleIndex int
	LessonIndex int
}

// Catalog indexes a course for lookup and unlock gating. Gating lives here,
// in the navigation layer; the quiz engine never consults it.
type Catalog struct {
	course  *Course
	modules map[string]int
	lessons map[string]Position
}

// NewCatalog indexes c.
func NewCatalog(c *Course) *Catalog {
	cat := &Catalog{
		course:  c,
		modules: make(map[string]int),
		lessons: make(map[string]Position),
	}
	for mi, m := range c.Modules {
		cat.modules[m.ID] = mi
		for li, l := range m.Lessons {
			cat.lessons[l.ID] = Position{ModuleIndex: mi, LessonIndex: li}
		}
	}
	return cat
}

// Course returns the indexed course.
func (c *Catalog) Course() *Course { return c.course }

// Modules returns the modules in order.
func (c *Catalog) Modules() []Module { return c.course.Modules }

// Module returns the module with id and its index.
func (c *Catalog) Module(id string) (*Module, int, error) {
	mi, ok := c.modules[id]
	if !ok {
		return nil, -1, fmt.Errorf("module %q: %w", id, ErrNotFound)
	}
	return &c.course.Modules[mi], mi, nil
}

// Lesson returns a lesson of a module together with its index.
func (c *Catalog) Lesson(moduleID, lessonID string) (*Lesson, int, error) {
	m, mi, err := c.Module(moduleID)
	if err != nil {
		return nil, -1, err
	}
	pos, ok := c.lessons[lessonID]
	if !ok || pos.ModuleIndex != mi {
		return nil, -1, fmt.Errorf("lesson %q in module %q: %w", lessonID, moduleID, ErrNotFound)
	}
	return &m.Lessons[pos.LessonIndex], pos.LessonIndex, nil
}

// Locate returns the position of a lesson id anywhere in the course.
func (c *Catalog) Locate(lessonID string) (Position, bool) {
	pos, ok := c.lessons[lessonID]
	return pos, ok
}

// ModuleLocked reports whether the module at mi is gated. The first module
// is always open; later ones open once the previous exam is passed.
func (c *Catalog) ModuleLocked(p Completion, mi int, admin bool) bool {
	if admin || mi <= 0 {
		return false
	}
	return !p.ModuleDone(c.course.Modules[mi-1].ID)
}

// LessonLocked reports whether the lesson at (mi, li) is gated: its module
// is locked, or the previous lesson of the module is not complete.
func (c *Catalog) LessonLocked(p Completion, mi, li int, admin bool) bool {
	if admin {
		return false
	}
	if c.ModuleLocked(p, mi, false) {
		return true
	}
	if li == 0 {
		return false
	}
	return !p.LessonDone(c.course.Modules[mi].Lessons[li-1].ID)
}

// ExamLocked reports whether the module exam is gated. The exam follows
// its module's lock, so a learner may attempt it before finishing every
// lesson.
func (c *Catalog) ExamLocked(p Completion, mi int, admin bool) bool {
	return c.ModuleLocked(p, mi, admin)
}

// CurrentLesson returns the first incomplete lesson across the course.
// ok is false when every lesson is complete.
func (c *Catalog) CurrentLesson(p Completion) (pos Position, ok bool) {
	for mi, m := range c.course.Modules {
		for li, l := range m.Lessons {
			if !p.LessonDone(l.ID) {
				return Position{ModuleIndex: mi, LessonIndex: li}, true
			}
		}
	}
	return Position{}, false
}

// LessonCount is the number of lessons across all modules.
func (c *Catalog) LessonCount() int {
	return len(c.lessons)
}

// Title returns the title of the module or lesson with id, or id itself
// when neither exists, e.g. for history rows from an older course.
func (c *Catalog) Title(id string) string {
	if mi, ok := c.modules[id]; ok {
		return c.course.Modules[mi].Title
	}
	if pos, ok := c.lessons[id]; ok {
		return c.course.Modules[pos.ModuleIndex].Lessons[pos.LessonIndex].Title
	}
	return id
}
