package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingo/internal/config"
)

// cfg is loaded before any command runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:           "lingo",
	Short:         "Self-paced language course player",
	Long:          "Lingo is a terminal language course with lessons, adaptive quizzes and module exams.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("config")
		c, err := config.Load(file, cmd.Flags())
		if err != nil {
			return err
		}
		cfg = c
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Config file (default lingo.yaml in the config dirs)")
	pf.String("db", "", "Path to SQLite database file (overrides LINGO_DB)")
	pf.String("content", "", "Course JSON file (default: embedded course)")
	pf.String("log-level", "", "Log level: debug, info, warn or error")
	pf.Bool("admin", false, "Unlock every lesson, module and exam")
	pf.Uint64("seed", 0, "Fix the shuffle seed (0 = random)")
	pf.Bool("ephemeral", false, "Keep progress in memory only")

	rootCmd.Flags().Bool("skip-welcome", false, "Open the course map directly")

	rootCmd.AddCommand(courseCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(adminCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}
