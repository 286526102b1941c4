package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/lingo/internal/course"
	"github.com/abhisek/lingo/internal/progress"
	"github.com/abhisek/lingo/internal/question"
)

type handler struct {
	deps   Deps
	logger *slog.Logger
}

type courseResponse struct {
	Title    string           `json:"title"`
	Language string           `json:"language"`
	Version  string           `json:"version"`
	Modules  []moduleResponse `json:"modules"`
}

type moduleResponse struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Locked      bool             `json:"locked"`
	Passed      bool             `json:"passed"`
	ExamLocked  bool             `json:"exam_locked"`
	Lessons     []lessonOverview `json:"lessons"`
}

type lessonOverview struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Locked    bool   `json:"locked"`
	Completed bool   `json:"completed"`
	Current   bool   `json:"current"`
}

type lessonResponse struct {
	ID            string                `json:"id"`
	ModuleID      string                `json:"module_id"`
	Title         string                `json:"title"`
	Locked        bool                  `json:"locked"`
	Theory        []string              `json:"theory"`
	Vocabulary    []course.Vocabulary   `json:"vocabulary"`
	GrammarTables []course.GrammarTable `json:"grammar_tables"`
	Questions     []questionResponse    `json:"questions"`
}

type questionResponse struct {
	ID      string          `json:"id"`
	Type    string          `json:"type"`
	Prompt  string          `json:"prompt"`
	Options []string        `json:"options,omitempty"`
	Pairs   []question.Pair `json:"pairs,omitempty"`
}

type progressResponse struct {
	XP               int                        `json:"xp"`
	Admin            bool                       `json:"admin"`
	CompletedLessons map[string]progress.Record `json:"completed_lessons"`
	CompletedModules map[string]progress.Record `json:"completed_modules"`
}

type statsResponse struct {
	XP               int     `json:"xp"`
	Correct          int     `json:"correct"`
	Incorrect        int     `json:"incorrect"`
	Accuracy         float64 `json:"accuracy"`
	TimeSpentSeconds int64   `json:"time_spent_seconds"`
	LessonsCompleted int     `json:"lessons_completed"`
	LessonsTotal     int     `json:"lessons_total"`
	ModulesPassed    int     `json:"modules_passed"`
	ModulesTotal     int     `json:"modules_total"`
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	if h.deps.DB != nil {
		if err := h.deps.DB.PingContext(r.Context()); err != nil {
			h.logger.ErrorContext(r.Context(), "health check", "error", err)
			respondError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok", "time": time.Now().UTC().Format(time.RFC3339)})
}

// load fetches progress and reports a 500 itself on failure.
func (h *handler) load(w http.ResponseWriter, r *http.Request) (*progress.Progress, bool) {
	p, err := h.deps.Progress.Load(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "load progress", "error", err)
		respondError(w, http.StatusInternalServerError, "load progress")
		return nil, false
	}
	return p, true
}

func (h *handler) admin(p *progress.Progress) bool {
	return h.deps.Admin || p.Admin
}

func (h *handler) getCourse(w http.ResponseWriter, r *http.Request) {
	p, ok := h.load(w, r)
	if !ok {
		return
	}
	cat := h.deps.Catalog
	admin := h.admin(p)
	current, hasCurrent := cat.CurrentLesson(p)

	c := cat.Course()
	resp := courseResponse{Title: c.Title, Language: c.Language, Version: c.Version}
	for mi, m := range cat.Modules() {
		mr := moduleResponse{
			ID:          m.ID,
			Title:       m.Title,
			Description: m.Description,
			Locked:      cat.ModuleLocked(p, mi, admin),
			Passed:      p.ModuleDone(m.ID),
			ExamLocked:  cat.ExamLocked(p, mi, admin),
		}
		for li, l := range m.Lessons {
			mr.Lessons = append(mr.Lessons, lessonOverview{
				ID:        l.ID,
				Title:     l.Title,
				Locked:    cat.LessonLocked(p, mi, li, admin),
				Completed: p.LessonDone(l.ID),
				Current:   hasCurrent && current == course.Position{ModuleIndex: mi, LessonIndex: li},
			})
		}
		resp.Modules = append(resp.Modules, mr)
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *handler) getLesson(w http.ResponseWriter, r *http.Request) {
	moduleID := chi.URLParam(r, "moduleID")
	lessonID := chi.URLParam(r, "lessonID")

	l, li, err := h.deps.Catalog.Lesson(moduleID, lessonID)
	if errors.Is(err, course.ErrNotFound) {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	p, ok := h.load(w, r)
	if !ok {
		return
	}
	_, mi, _ := h.deps.Catalog.Module(moduleID)

	resp := lessonResponse{
		ID:            l.ID,
		ModuleID:      moduleID,
		Title:         l.Title,
		Locked:        h.deps.Catalog.LessonLocked(p, mi, li, h.admin(p)),
		Theory:        l.Theory,
		Vocabulary:    l.Vocabulary,
		GrammarTables: l.GrammarTables,
	}
	for _, q := range l.Quiz {
		resp.Questions = append(resp.Questions, toQuestion(q))
	}
	respondJSON(w, http.StatusOK, resp)
}

// toQuestion omits the answer so the API cannot be used to cheat.
func toQuestion(q question.Question) questionResponse {
	qr := questionResponse{ID: q.ID(), Type: q.Kind().String(), Prompt: q.Prompt()}
	switch v := q.(type) {
	case *question.Connect:
		qr.Pairs = v.Pairs
	default:
		if c, err := question.Choices(q); err == nil {
			qr.Options = c.Options
		}
	}
	return qr
}

func (h *handler) getProgress(w http.ResponseWriter, r *http.Request) {
	p, ok := h.load(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, progressResponse{
		XP:               p.XP,
		Admin:            p.Admin,
		CompletedLessons: p.CompletedLessons,
		CompletedModules: p.CompletedModules,
	})
}

func (h *handler) getStats(w http.ResponseWriter, r *http.Request) {
	p, ok := h.load(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, statsResponse{
		XP:               p.XP,
		Correct:          p.Stats.Correct,
		Incorrect:        p.Stats.Incorrect,
		Accuracy:         p.Accuracy(),
		TimeSpentSeconds: p.Stats.Seconds,
		LessonsCompleted: len(p.CompletedLessons),
		LessonsTotal:     h.deps.Catalog.LessonCount(),
		ModulesPassed:    len(p.CompletedModules),
		ModulesTotal:     len(h.deps.Catalog.Modules()),
	})
}
