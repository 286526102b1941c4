package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate keeps the user's real config and env out of the test.
func isolate(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	t.Chdir(dir)
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
	assert.Equal(t, 0.51, cfg.Quiz.PassThreshold)
	assert.Equal(t, 30*time.Second, cfg.TickInterval)
}

func TestLoadFileEnvAndFlags(t *testing.T) {
	isolate(t)
	file := filepath.Join(t.TempDir(), "lingo.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
quiz:
  pass_threshold: 0.7
  recap_previous: 3
  seed: 9
tick_interval: 10s
log:
  level: debug
server:
  addr: ":9000"
`), 0o644))

	t.Setenv("LINGO_QUIZ_RECAP_PREVIOUS", "1")
	t.Setenv("LINGO_SERVER_ADDR", ":9100")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("addr", "", "")
	flags.Bool("admin", false, "")
	require.NoError(t, flags.Parse([]string{"--addr", ":9200"}))

	cfg, err := Load(file, flags)
	require.NoError(t, err)

	assert.Equal(t, 0.7, cfg.Quiz.PassThreshold, "file")
	assert.Equal(t, uint64(9), cfg.Quiz.Seed, "file")
	assert.Equal(t, 10*time.Second, cfg.TickInterval, "file")
	assert.Equal(t, "debug", cfg.Log.Level, "file")
	assert.Equal(t, 1, cfg.Quiz.RecapPrevious, "env beats file")
	assert.Equal(t, ":9200", cfg.Server.Addr, "flag beats env")
	assert.False(t, cfg.Admin, "unchanged flag keeps default")
	assert.Equal(t, 1, cfg.Quiz.RecapTwoBack, "default")
}

func TestLoadExplicitFileMissing(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errSub string
	}{
		{"ok", func(*Config) {}, ""},
		{"threshold one", func(c *Config) { c.Quiz.PassThreshold = 1 }, "PassThreshold"},
		{"threshold zero", func(c *Config) { c.Quiz.PassThreshold = 0 }, "PassThreshold"},
		{"negative recap", func(c *Config) { c.Quiz.RecapPrevious = -1 }, "RecapPrevious"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "Level"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "Format"},
		{"no tick", func(c *Config) { c.TickInterval = 0 }, "TickInterval"},
		{"no addr", func(c *Config) { c.Server.Addr = "" }, "Addr"},
		{"unknown provider", func(c *Config) { c.LLM.Provider = "acme" }, "Provider"},
		{"known provider", func(c *Config) { c.LLM.Provider = "gemini" }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.errSub == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSub)
		})
	}
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("whatever"))
}

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LogConfig{Level: "warn", Format: "json"}, &buf)

	logger.Info("hidden")
	assert.Zero(t, buf.Len())

	logger.Warn("shown", "lesson", "m1_l1")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Contains(t, buf.String(), `"lesson":"m1_l1"`)
}

func TestNewLoggerLevelFromConfig(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LogConfig{Level: "debug", Format: "json"}, &buf)
	logger.Debug("visible")
	assert.Contains(t, buf.String(), `"msg":"visible"`)
	assert.Contains(t, buf.String(), `"level":"DEBUG"`)
}

func TestNewLoggerTextToFileHasNoColor(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LogConfig{Level: "info", Format: "text", File: "x.log"}, &buf)
	logger.Info("hello", "k", "v")
	assert.Contains(t, buf.String(), "hello")
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestOpenLogOutput(t *testing.T) {
	w, closeFn, err := OpenLogOutput(LogConfig{})
	require.NoError(t, err)
	assert.Equal(t, os.Stderr, w)
	assert.NoError(t, closeFn())

	path := filepath.Join(t.TempDir(), "lingo.log")
	w, closeFn, err = OpenLogOutput(LogConfig{File: path})
	require.NoError(t, err)
	_, err = w.Write([]byte("line\n"))
	require.NoError(t, err)
	require.NoError(t, closeFn())
	assert.FileExists(t, path)
}
