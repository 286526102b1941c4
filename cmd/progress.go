package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingo/internal/screens/history"
	"github.com/abhisek/lingo/internal/screens/stats"
	"github.com/abhisek/lingo/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		be, err := openBackend(cmd, nil)
		if err != nil {
			return err
		}
		defer be.Close()

		catalog, err := loadCatalog()
		if err != nil {
			return err
		}
		p, err := be.progress.Load(cmd.Context())
		if err != nil {
			return err
		}

		passed := 0
		for _, m := range catalog.Modules() {
			if p.ModuleDone(m.ID) {
				passed++
			}
		}
		done := 0
		for _, m := range catalog.Modules() {
			for _, l := range m.Lessons {
				if p.LessonDone(l.ID) {
					done++
				}
			}
		}

		fmt.Printf("XP:              %d\n", p.XP)
		fmt.Printf("Lessons:         %d / %d\n", done, catalog.LessonCount())
		fmt.Printf("Modules passed:  %d / %d\n", passed, len(catalog.Modules()))
		fmt.Printf("Correct:         %d\n", p.Stats.Correct)
		fmt.Printf("Mistakes:        %d\n", p.Stats.Incorrect)
		fmt.Printf("Accuracy:        %.0f%%\n", p.Accuracy()*100)
		fmt.Printf("Time spent:      %s\n", stats.Duration(p.Stats.Seconds))
		if cfg.Admin || p.Admin {
			fmt.Println("Admin mode:      on")
		}
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear all learner progress",
	Long:  "Clear completed lessons, passed modules, XP, stats and the admin flag. Session history is kept.",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirm(cmd, "Reset all progress? [y/N] ") {
			fmt.Println("Aborted.")
			return nil
		}

		be, err := openBackend(cmd, nil)
		if err != nil {
			return err
		}
		defer be.Close()

		if err := be.progress.Reset(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("Progress reset.")
		return nil
	},
}

func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

var adminCmd = &cobra.Command{
	Use:       "admin on|off",
	Short:     "Turn the persisted admin mode on or off",
	Long:      "Admin mode unlocks every lesson, module and exam.",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"on", "off"},
	RunE: func(cmd *cobra.Command, args []string) error {
		be, err := openBackend(cmd, nil)
		if err != nil {
			return err
		}
		defer be.Close()

		on := args[0] == "on"
		if err := be.progress.SetAdmin(cmd.Context(), on); err != nil {
			return err
		}
		fmt.Printf("Admin mode %s.\n", args[0])
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent lesson and exam sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		catalog, err := loadCatalog()
		if err != nil {
			return err
		}
		events, err := st.EventRepo().QuerySessions(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}
		if len(events) == 0 {
			fmt.Println("No sessions yet.")
			return nil
		}

		rows := make([][]string, 0, len(events))
		for _, e := range events {
			rows = append(rows, []string{
				e.Timestamp.Local().Format("2006-01-02 15:04"),
				e.Kind,
				truncate(catalog.Title(e.TargetID), 24),
				history.Result(e),
				fmt.Sprintf("%d:%02d", e.DurationSecs/60, e.DurationSecs%60),
				fmt.Sprintf("+%d", e.XP),
			})
		}
		printTable([]string{"When", "Kind", "Target", "Result", "Time", "XP"}, rows, 4, 5)
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	historyCmd.Flags().IntP("limit", "n", 20, "Number of sessions to show")
}
