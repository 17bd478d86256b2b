package cli

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/example/roadmap/internal/bot"
	"github.com/example/roadmap/internal/excel"
	"github.com/example/roadmap/internal/progress"
	"github.com/example/roadmap/internal/roadmap"
	"github.com/example/roadmap/internal/scheduler"
	"github.com/example/roadmap/pkg/models"
)

// NewRootCommand builds the command tree around app
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "roadmap",
		Short:         "Track completed concepts of a learning roadmap",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.init(cmd.Context())
		},
	}

	root.AddCommand(
		newStatusCommand(app),
		newPhaseCommand(app),
		newToggleCommand(app),
		newCompletedCommand(app),
		newResetCommand(app),
		newResourcesCommand(app),
		newExportCommand(app),
		newImportCommand(app),
		newRemindCommand(app),
	)
	return root
}

func newStatusCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show overall and per-phase progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			summary := app.Tracker().Summarize(*app.Roadmap)

			if app.Roadmap.Title != "" {
				fmt.Fprintln(out, app.Roadmap.Title)
			}
			fmt.Fprintf(out, "Overall Progress %s (%d/%d concepts)\n",
				progress.FormatPercent(summary.Overall), summary.CompletedCount, summary.TotalCount)

			remaining, err := app.remaining()
			if err != nil {
				app.Logger.Warn("ignoring target date", zap.Error(err))
			} else if remaining != nil {
				fmt.Fprintf(out, "Time left: %s\n", remaining)
			}

			saved, err := app.lastSaved(cmd.Context())
			if err != nil {
				app.Logger.Warn("cannot read last save time", zap.Error(err))
			} else if saved != nil {
				fmt.Fprintf(out, "Last saved: %s\n", saved.UTC().Format(time.RFC3339))
			}

			fmt.Fprintln(out)
			for _, p := range summary.Phases {
				fmt.Fprintf(out, "%-10s %6s  %-16s %s\n", p.PhaseID, progress.FormatPercent(p.Progress), p.Label(), p.Title)
			}
			return nil
		},
	}
}

func newPhaseCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "phase <phase-id>",
		Short: "List the concepts of a phase with their completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			phase, ok := app.Roadmap.Phase(args[0])
			if !ok {
				return fmt.Errorf("unknown phase %q", args[0])
			}

			out := cmd.OutOrStdout()
			tracker := app.Tracker()
			pp := tracker.PhaseProgress(phase.ConceptIDs())

			fmt.Fprintf(out, "%s  %s, %d / %d concepts\n", phase.Title, progress.FormatPercent(pp.Progress), pp.CompletedCount, pp.TotalCount)
			for _, c := range phase.Concepts {
				mark := " "
				if tracker.IsCompleted(c.ID) {
					mark = "x"
				}
				fmt.Fprintf(out, "[%s] %-28s %s (%s)\n", mark, c.ID, c.Name, c.Label)
			}
			printChallenge(out, phase.EliteChallenge)
			return nil
		},
	}
}

func printChallenge(out io.Writer, ch models.EliteChallenge) {
	if ch.Title == "" {
		return
	}
	fmt.Fprintf(out, "\nElite challenge: %s\n", ch.Title)
	for _, f := range ch.MustHaveFeatures {
		fmt.Fprintf(out, "  - %s\n", f)
	}
}

func newToggleCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <concept-id>...",
		Short: "Mark concepts as completed, or completed concepts as not completed",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			tracker := app.Tracker()

			known := make(map[string]bool)
			for _, id := range app.Roadmap.ConceptIDs() {
				known[id] = true
			}

			for _, id := range args {
				tracker.ToggleConcept(cmd.Context(), id)
				state := "not completed"
				if tracker.IsCompleted(id) {
					state = "completed"
				}
				note := ""
				if !known[id] {
					note = " (not in roadmap)"
				}
				fmt.Fprintf(out, "%s: %s%s\n", id, state, note)
			}
			fmt.Fprintf(out, "Overall Progress %s\n", progress.FormatPercent(tracker.GlobalProgress(app.Roadmap.ConceptIDs())))
			return nil
		},
	}
}

func newCompletedCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "completed",
		Short: "List completed concept ids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, id := range app.Tracker().Completed() {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
}

func newResetCommand(app *App) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear all progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return fmt.Errorf("refusing to clear progress without --yes")
			}
			app.Tracker().Reset(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), "Progress cleared")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm clearing all progress")
	return cmd
}

func newResourcesCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "resources",
		Short: "List the resource hub by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			byCategory := make(map[models.ResourceCategory][]models.ResourceLink)
			var categories []models.ResourceCategory
			for _, r := range app.Roadmap.Resources {
				if _, ok := byCategory[r.Category]; !ok {
					categories = append(categories, r.Category)
				}
				byCategory[r.Category] = append(byCategory[r.Category], r)
			}
			sort.SliceStable(categories, func(i, j int) bool { return categories[i] < categories[j] })

			for _, c := range categories {
				fmt.Fprintf(out, "%s\n", c)
				for _, r := range byCategory[c] {
					fmt.Fprintf(out, "  %s  %s\n", r.Name, r.URL)
				}
			}
			return nil
		},
	}
}

func newExportCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file.xlsx>",
		Short: "Write a progress report workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tracker := app.Tracker()
			summary := tracker.Summarize(*app.Roadmap)
			if err := excel.ExportProgress(args[0], *app.Roadmap, summary, tracker.IsCompleted); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", args[0])
			return nil
		},
	}
}

func newImportCommand(app *App) *cobra.Command {
	var (
		out     string
		sheet   string
		replace bool
	)
	cmd := &cobra.Command{
		Use:   "import <file.xlsx|file.csv>",
		Short: "Import concepts from a spreadsheet into a roadmap file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := excel.DefaultImportConfig()
			cfg.FilePath = args[0]
			if sheet != "" {
				cfg.SheetName = sheet
			}

			base := *app.Roadmap
			if replace {
				base = models.Roadmap{Title: app.Roadmap.Title, TargetDate: app.Roadmap.TargetDate}
			}

			merged, result, err := excel.ImportConcepts(cfg, base)
			if err != nil {
				return err
			}

			target := out
			if target == "" {
				target = app.Config.RoadmapFile
			}
			if target == "" {
				target = "roadmap.yaml"
			}
			if err := roadmap.Save(target, merged); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Processed %d rows: %d created, %d updated, %d new phases\n",
				result.TotalProcessed, result.Created, result.Updated, result.PhasesCreated)
			for _, e := range result.Errors {
				fmt.Fprintf(w, "  %s\n", e)
			}
			fmt.Fprintf(w, "Roadmap written to %s\n", target)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "roadmap YAML to write (default $ROADMAP_FILE or roadmap.yaml)")
	cmd.Flags().StringVar(&sheet, "sheet", "", "sheet to read from an Excel file")
	cmd.Flags().BoolVar(&replace, "replace", false, "start from an empty roadmap instead of the current one")
	return cmd
}

func newRemindCommand(app *App) *cobra.Command {
	var once bool
	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Send progress reminders periodically until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var notifier scheduler.Notifier = bot.LogNotifier{Logger: app.Logger}
			if app.Config.Telegram.Enabled() {
				tn, err := bot.NewTelegramNotifier(&app.Config.Telegram)
				if err != nil {
					return err
				}
				notifier = tn
			}

			s := scheduler.New(app.Backend, *app.Roadmap, notifier, app.Config.ReminderInterval, app.Logger,
				progress.WithKey(app.Config.ProgressKey))

			if once {
				return s.RunManualCheck(cmd.Context())
			}

			if err := s.Start(); err != nil {
				return err
			}
			app.Logger.Info("reminders started", zap.Duration("interval", app.Config.ReminderInterval))
			<-cmd.Context().Done()
			s.Stop()
			app.Logger.Info("reminders stopped")
			return nil
		},
	}
	cmd.Flags().BoolVar(&once, "once", false, "send a single reminder and exit")
	return cmd
}

// Execute runs the command line with the environment-backed App
func Execute(ctx context.Context, args []string) error {
	app := &App{}
	defer app.Close()

	root := NewRootCommand(app)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}
