// Package config loads lingo's settings from file, environment and flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. LINGO_QUIZ_SEED.
const EnvPrefix = "LINGO"

// Config is the full application configuration.
type Config struct {
	DB           DBConfig      `mapstructure:"db"`
	Content      ContentConfig `mapstructure:"content"`
	Quiz         QuizConfig    `mapstructure:"quiz"`
	TickInterval time.Duration `mapstructure:"tick_interval" validate:"gt=0"`
	Admin        bool          `mapstructure:"admin"`
	Log          LogConfig     `mapstructure:"log"`
	Server       ServerConfig  `mapstructure:"server"`
	LLM          LLMConfig     `mapstructure:"llm"`
}

type DBConfig struct {
	// Path is the SQLite file. Empty resolves to the XDG data dir.
	Path string `mapstructure:"path"`
}

type ContentConfig struct {
	// Path is a course JSON file. Empty uses the embedded course.
	Path string `mapstructure:"path"`
}

// QuizConfig tunes question pools, scoring and rewards.
type QuizConfig struct {
	PassThreshold     float64 `mapstructure:"pass_threshold" validate:"gt=0,lt=1"`
	RecapPrevious     int     `mapstructure:"recap_previous" validate:"gte=0"`
	RecapTwoBack      int     `mapstructure:"recap_two_back" validate:"gte=0"`
	MaxTableQuestions int     `mapstructure:"max_table_questions" validate:"gte=0"`
	LessonXP          int     `mapstructure:"lesson_xp" validate:"gte=0"`
	ModuleXP          int     `mapstructure:"module_xp" validate:"gte=0"`

	// Seed fixes the shuffle RNG; 0 means system random.
	Seed uint64 `mapstructure:"seed"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
	File   string `mapstructure:"file"`
}

type ServerConfig struct {
	Addr        string   `mapstructure:"addr" validate:"required"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

// LLMConfig overrides the provider discovered from the environment.
type LLMConfig struct {
	Provider string `mapstructure:"provider" validate:"omitempty,oneof=anthropic openai gemini openrouter mock"`
	Model    string `mapstructure:"model"`
	APIKey   string `mapstructure:"api_key"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Quiz: QuizConfig{
			PassThreshold:     0.51,
			RecapPrevious:     2,
			RecapTwoBack:      1,
			MaxTableQuestions: 2,
			LessonXP:          20,
			ModuleXP:          100,
		},
		TickInterval: 30 * time.Second,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Addr:        ":8080",
			CORSOrigins: []string{"*"},
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("db.path", d.DB.Path)
	v.SetDefault("content.path", d.Content.Path)
	v.SetDefault("quiz.pass_threshold", d.Quiz.PassThreshold)
	v.SetDefault("quiz.recap_previous", d.Quiz.RecapPrevious)
	v.SetDefault("quiz.recap_two_back", d.Quiz.RecapTwoBack)
	v.SetDefault("quiz.max_table_questions", d.Quiz.MaxTableQuestions)
	v.SetDefault("quiz.lesson_xp", d.Quiz.LessonXP)
	v.SetDefault("quiz.module_xp", d.Quiz.ModuleXP)
	v.SetDefault("quiz.seed", d.Quiz.Seed)
	v.SetDefault("tick_interval", d.TickInterval)
	v.SetDefault("admin", d.Admin)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.cors_origins", d.Server.CORSOrigins)
	v.SetDefault("llm.provider", "")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.api_key", "")
}

// flagKeys maps persistent flag names to config keys.
var flagKeys = map[string]string{
	"db":        "db.path",
	"content":   "content.path",
	"log-level": "log.level",
	"admin":     "admin",
	"seed":      "quiz.seed",
	"addr":      "server.addr",
}

// Load reads configuration. file, when set, must exist; otherwise lingo.yaml
// is looked up in the standard config dirs and may be absent. Environment
// variables override the file and changed flags override everything.
func Load(file string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("lingo")
		v.SetConfigType("yaml")
		for _, dir := range searchPaths() {
			v.AddConfigPath(dir)
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func searchPaths() []string {
	var dirs []string
	if x := os.Getenv("XDG_CONFIG_HOME"); x != "" {
		dirs = append(dirs, filepath.Join(x, "lingo"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", "lingo"))
	}
	return append(dirs, ".")
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the struct tags and reports every failing key.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q (got %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}
