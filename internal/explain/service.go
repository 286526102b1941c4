// Package explain asks an LLM why a quiz answer was wrong. Requests run in
// the background and results are looked up by question id.
package explain

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/abhisek/lingo/internal/llm"
	"github.com/abhisek/lingo/internal/question"
)

// Explanation is the feedback shown under a wrong answer.
type Explanation struct {
	QuestionID string
	Text       string
	Tip        string
}

type entry struct {
	done chan struct{}
	exp  *Explanation
	err  error
}

// Service generates explanations asynchronously. Each question id is
// explained at most once per service; retries of the same question share
// the first result.
type Service struct {
	provider llm.Provider
	cfg      Config
	logger   *slog.Logger

	mu      sync.Mutex
	entries map[string]*entry
	wg      sync.WaitGroup
}

// NewService returns a Service. A nil provider disables it: Request does
// nothing and Lookup never finds anything.
func NewService(provider llm.Provider, cfg Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		provider: provider,
		cfg:      cfg,
		logger:   logger,
		entries:  make(map[string]*entry),
	}
}

// Enabled reports whether a provider is configured.
func (s *Service) Enabled() bool { return s != nil && s.provider != nil }

// Request starts generating an explanation for chosen as an answer to q.
// It returns a channel closed when the result is ready, or nil when
// nothing was started: the service is disabled, q is not selectable, or
// the answer was correct. Repeated requests for the same id return the
// channel of the first.
func (s *Service) Request(ctx context.Context, q question.Question, chosen string) <-chan struct{} {
	if !s.Enabled() {
		return nil
	}
	c, err := question.Choices(q)
	if err != nil || chosen == "" || chosen == c.Answer {
		return nil
	}

	s.mu.Lock()
	if e, ok := s.entries[q.ID()]; ok {
		s.mu.Unlock()
		return e.done
	}
	e := &entry{done: make(chan struct{})}
	s.entries[q.ID()] = e
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		exp, err := s.generate(ctx, q, c, chosen)
		if err != nil {
			s.logger.Warn("explain mistake", "question", q.ID(), "error", err)
		}
		s.mu.Lock()
		e.exp, e.err = exp, err
		s.mu.Unlock()
		close(e.done)
	}()
	return e.done
}

// Lookup returns the finished explanation for a question id. ok is false
// while it is pending, when it failed, or when it was never requested.
func (s *Service) Lookup(id string) (exp *Explanation, ok bool) {
	if s == nil {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e, found := s.entries[id]
	if !found || e.exp == nil {
		return nil, false
	}
	return e.exp, true
}

// Err returns the failure of a finished request, if any.
func (s *Service) Err(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[id]; ok {
		return e.err
	}
	return nil
}

// Wait blocks until every started request has finished.
func (s *Service) Wait() { s.wg.Wait() }

type output struct {
	Explanation string `json:"explanation"`
	Tip         string `json:"tip"`
}

func (s *Service) generate(ctx context.Context, q question.Question, c question.Choice, chosen string) (*Explanation, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeExplain)

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildUserMessage(s.cfg, q, c, chosen)}},
		Schema:      Schema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("explanation for %s: %w", q.ID(), err)
	}

	var out output
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse explanation: %w", err)
	}
	return &Explanation{QuestionID: q.ID(), Text: out.Explanation, Tip: out.Tip}, nil
}
