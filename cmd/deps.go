package cmd

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingo/internal/config"
	"github.com/abhisek/lingo/internal/course"
	"github.com/abhisek/lingo/internal/progress"
	"github.com/abhisek/lingo/internal/questiongen"
	"github.com/abhisek/lingo/internal/session"
	"github.com/abhisek/lingo/internal/store"
)

// backend is the persistence a command works against. With --ephemeral
// there is no store and progress lives in memory.
type backend struct {
	store    *store.Store
	progress *progress.Service
}

// events returns the event log, or nil without a store.
func (b *backend) events() *store.Events {
	if b.store == nil {
		return nil
	}
	return b.store.EventRepo()
}

func (b *backend) Close() error {
	if b.store == nil {
		return nil
	}
	return b.store.Close()
}

// resolveDBPath returns the database path: config (--db, LINGO_DB_PATH or
// the config file) first, then LINGO_DB, then the default XDG path.
func resolveDBPath() (string, error) {
	if p := cfg.DB.Path; p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

func openBackend(cmd *cobra.Command, logger *slog.Logger) (*backend, error) {
	if ephemeral, _ := cmd.Flags().GetBool("ephemeral"); ephemeral {
		return &backend{progress: progress.NewService(progress.NewMemoryRepo(), nil, logger)}, nil
	}
	dbPath, err := resolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	ev := st.EventRepo()
	return &backend{
		store:    st,
		progress: progress.NewService(st.ProgressRepo(), ev, logger),
	}, nil
}

// openStore opens the database for commands that read the event log.
func openStore() (*store.Store, error) {
	dbPath, err := resolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}

func loadCatalog() (*course.Catalog, error) {
	c, err := course.Load(cfg.Content.Path)
	if err != nil {
		return nil, fmt.Errorf("load course: %w", err)
	}
	return course.NewCatalog(c), nil
}

// playableCatalog loads the course and adds the table-derived and pairing
// questions to every lesson quiz.
func playableCatalog(rng *rand.Rand, logger *slog.Logger) (*course.Catalog, error) {
	c, err := course.Load(cfg.Content.Path)
	if err != nil {
		return nil, fmt.Errorf("load course: %w", err)
	}
	questiongen.NewSynthesizer(questionConfig(), rng, logger).EnrichCourse(c)
	return course.NewCatalog(c), nil
}

func questionConfig() questiongen.Config {
	qc := questiongen.DefaultConfig()
	qc.MaxTableQuestions = cfg.Quiz.MaxTableQuestions
	qc.RecapPrevious = cfg.Quiz.RecapPrevious
	qc.RecapTwoBack = cfg.Quiz.RecapTwoBack
	return qc
}

func sessionOptions(rec session.Recorder) session.Options {
	o := session.DefaultOptions()
	o.Recorder = rec
	o.LessonXP = cfg.Quiz.LessonXP
	o.ModuleXP = cfg.Quiz.ModuleXP
	o.PassThreshold = cfg.Quiz.PassThreshold
	return o
}

// newRand returns the shuffle source, seeded when quiz.seed is set.
func newRand() *rand.Rand {
	if cfg.Quiz.Seed != 0 {
		return questiongen.NewSeededRand(cfg.Quiz.Seed)
	}
	return questiongen.NewRand()
}

// newLogger builds the logger for a command. The TUI must not write to the
// terminal, so when tui is set and no log file is configured, logs go to
// lingo.log in the data dir.
func newLogger(tui bool) (*slog.Logger, func() error, error) {
	lc := cfg.Log
	if tui && lc.File == "" {
		dir, err := store.DataDir()
		if err != nil {
			return nil, nil, err
		}
		lc.File = filepath.Join(dir, "lingo.log")
		if err := store.EnsureDir(lc.File); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
	}
	w, closeLog, err := config.OpenLogOutput(lc)
	if err != nil {
		return nil, nil, err
	}
	return config.NewLogger(lc, w), closeLog, nil
}
