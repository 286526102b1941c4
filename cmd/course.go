package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingo/internal/course"
)

var courseCmd = &cobra.Command{
	Use:   "course",
	Short: "Print the course map with lock state",
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
		admin := cfg.Admin || p.Admin

		c := catalog.Course()
		fmt.Printf("%s (%s, %s)\n", c.Title, c.Language, c.Version)
		current, hasCurrent := catalog.CurrentLesson(p)

		for mi, m := range catalog.Modules() {
			fmt.Println()
			marker := " "
			switch {
			case p.ModuleDone(m.ID):
				marker = "✓"
			case catalog.ModuleLocked(p, mi, admin):
				marker = "⊘"
			}
			fmt.Printf("%s %s  %s\n", marker, m.ID, m.Title)

			for li, l := range m.Lessons {
				marker := "○"
				switch {
				case p.LessonDone(l.ID):
					marker = "✓"
				case catalog.LessonLocked(p, mi, li, admin):
					marker = "⊘"
				case hasCurrent && current == course.Position{ModuleIndex: mi, LessonIndex: li}:
					marker = "▶"
				}
				fmt.Printf("    %s %-10s %s\n", marker, l.ID, l.Title)
			}

			exam := "locked"
			if !catalog.ExamLocked(p, mi, admin) {
				exam = fmt.Sprintf("%d questions", len(m.Exam))
			}
			fmt.Printf("    ★ exam       %s\n", exam)
		}
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate course content",
	Long:  "Validate a course JSON file, or the configured course when no file is given.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.Content.Path
		if len(args) == 1 {
			path = args[0]
		}
		c, err := course.Load(path)
		if err != nil {
			return err
		}
		catalog := course.NewCatalog(c)

		name := path
		if name == "" {
			name = "embedded course"
		}
		fmt.Printf("%s: ok (%d modules, %d lessons)\n", name, len(c.Modules), catalog.LessonCount())
		return nil
	},
}
