package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingo/internal/app"
	"github.com/abhisek/lingo/internal/explain"
	"github.com/abhisek/lingo/internal/llm"
	"github.com/abhisek/lingo/internal/questiongen"
	"github.com/abhisek/lingo/internal/screen"
	"github.com/abhisek/lingo/internal/store"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	be, err := openBackend(cmd, logger)
	if err != nil {
		return err
	}
	defer be.Close()

	rng := newRand()
	catalog, err := playableCatalog(rng, logger)
	if err != nil {
		return err
	}

	env := &screen.Env{
		Catalog:    catalog,
		Progress:   be.progress,
		Pools:      questiongen.NewBuilder(questionConfig(), rng),
		Session:    sessionOptions(be.progress),
		Rand:       rng,
		ForceAdmin: cfg.Admin,
		Logger:     logger,
	}
	// A nil *Events must not become a non-nil interface.
	var repo store.EventRepo
	if ev := be.events(); ev != nil {
		env.History = ev
		repo = ev
	}
	provider, err := newLLMProvider(cmd, repo, logger)
	if err != nil {
		logger.Warn("mistake explanations unavailable", "err", err)
	}
	if provider != nil {
		ec := explain.DefaultConfig()
		ec.Language = catalog.Course().Language
		env.Explain = explain.NewService(provider, ec, logger)
		defer env.Explain.Wait()
	}

	skip, _ := cmd.Flags().GetBool("skip-welcome")
	return app.Run(ctx, app.Options{
		Env:          env,
		TickInterval: cfg.TickInterval,
		SkipWelcome:  skip,
	})
}

// newLLMProvider returns nil without error when no provider is configured.
func newLLMProvider(cmd *cobra.Command, repo store.EventRepo, logger *slog.Logger) (llm.Provider, error) {
	lc := llm.ConfigFromEnv().Override(cfg.LLM.Provider, cfg.LLM.Model, cfg.LLM.APIKey)
	if !lc.Enabled() {
		return nil, nil
	}
	p, err := llm.NewProvider(cmd.Context(), lc, repo, logger)
	if err != nil {
		var unavailable *llm.ErrProviderUnavailable
		if errors.As(err, &unavailable) {
			return nil, nil
		}
		return nil, fmt.Errorf("llm provider: %w", err)
	}
	return p, nil
}
