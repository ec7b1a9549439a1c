package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"zazen/internal/bootstrap"
	"zazen/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var homePath string

	root := &cobra.Command{
		Use:           "zazen",
		Short:         "Meditation timer for the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&homePath, "home", "", "data directory (default ~/.zazen)")

	root.AddCommand(newTUICmd(&homePath))
	root.AddCommand(newStartCmd(&homePath))
	root.AddCommand(newStopCmd(&homePath))
	root.AddCommand(newStatusCmd(&homePath))
	root.AddCommand(newHistoryCmd(&homePath))
	root.AddCommand(newStatsCmd(&homePath))
	root.AddCommand(newSyncCmd(&homePath))
	root.AddCommand(newCompanionCmd(&homePath))
	return root
}

func loadApp(homePath string) (config.Config, *bootstrap.App, error) {
	cfg, err := config.New(homePath)
	if err != nil {
		return config.Config{}, nil, err
	}
	if err := os.MkdirAll(cfg.HomePath, 0o755); err != nil {
		return config.Config{}, nil, fmt.Errorf("create data dir: %w", err)
	}
	app, err := bootstrap.New(cfg)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, app, nil
}

func newTUICmd(homePath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the zazen terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			return bootstrap.RunTUI(cfg, app)
		},
	}
}

func newStartCmd(homePath *string) *cobra.Command {
	var duration time.Duration

	start := &cobra.Command{
		Use:   "start",
		Short: "Start a meditation session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			if duration == 0 {
				duration = cfg.DefaultDuration
			}
			out, err := app.SessionCLI.Start(context.Background(), duration)
			if err != nil {
				return err
			}
			if out.AlreadyRunning {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "already sitting since %s (%s planned)\n",
					out.StartedAt.Format(time.RFC3339), out.PlannedDuration)
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session started: %s for %s\n", out.SessionID, out.PlannedDuration)
			return nil
		},
	}
	start.Flags().DurationVar(&duration, "duration", 0, "planned duration (default from config)")
	return start
}

func newStopCmd(homePath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "End the active session early",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := app.SessionCLI.Stop(context.Background())
			if err != nil {
				return err
			}
			if !out.Stopped {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no active session")
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session ended: %s after %s (%.0f%%)\n",
				out.Session.SessionID, out.Session.ActualDuration.Round(time.Second), out.Session.CompletionPercentage*100)
			return nil
		},
	}
}

func newStatusCmd(homePath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show countdown state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := app.SessionCLI.Status(context.Background())
			if err != nil {
				return err
			}
			if out.Finalized != nil {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session completed: %s (%s)\n",
					out.Finalized.SessionID, out.Finalized.ActualDuration.Round(time.Second))
				return nil
			}
			if !out.Running {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "idle")
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "sitting: %s remaining of %s (%.0f%%)\n",
				out.Remaining.Round(time.Second), out.PlannedDuration, out.Progress*100)
			if out.SampleCount > 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "heart-rate samples: %d\n", out.SampleCount)
			}
			return nil
		},
	}
}

func newHistoryCmd(homePath *string) *cobra.Command {
	history := &cobra.Command{Use: "history", Short: "Completed session log"}

	history.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List completed sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			sessions, err := app.HistoryCLI.List(context.Background())
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions recorded")
				return nil
			}
			for _, s := range sessions {
				line := fmt.Sprintf("%s\t%s\t%s of %s\t%.0f%%",
					s.ID, s.StartedAt.Format("2006-01-02 15:04"),
					s.EffectiveDuration.Round(time.Second), s.PlannedDuration,
					s.CompletionPercentage*100)
				if s.AverageBPM > 0 {
					line += fmt.Sprintf("\t%.0f bpm", s.AverageBPM)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	})

	var removeID string
	remove := &cobra.Command{
		Use:   "remove --id <id>",
		Short: "Remove one session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(removeID) == "" {
				return fmt.Errorf("--id is required")
			}
			_, app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			if err := app.HistoryCLI.Remove(context.Background(), removeID); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", removeID)
			return nil
		},
	}
	remove.Flags().StringVar(&removeID, "id", "", "session id")
	history.AddCommand(remove)

	history.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove all sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			if err := app.HistoryCLI.RemoveAll(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "history cleared")
			return nil
		},
	})

	return history
}

func newStatsCmd(homePath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show practice statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := app.StatsCLI.Overview(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "streak: %d days (longest %d)\n", out.CurrentStreak, out.LongestStreak)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "sits: %d total=%s average=%s\n",
				out.TotalSessions, out.TotalDuration.Round(time.Minute), out.AverageDuration.Round(time.Second))
			for _, day := range out.Days {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%dm\n", day.Date.Format("2006-01-02"), int(day.Total.Minutes()))
			}
			return nil
		},
	}
}

func newSyncCmd(homePath *string) *cobra.Command {
	sync := &cobra.Command{Use: "sync", Short: "Mindful sink operations"}

	sync.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List configured sinks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			sinks, err := app.SyncCLI.List(context.Background())
			if err != nil {
				return err
			}
			if len(sinks) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sinks configured")
				return nil
			}
			for _, s := range sinks {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s@%s enabled=%t binary=%s\n", s.Name, s.Version, s.Enabled, s.Binary)
			}
			return nil
		},
	})

	sync.AddCommand(&cobra.Command{
		Use:   "doctor",
		Short: "Validate sink checksums and lifecycle",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			results, err := app.SyncCLI.Doctor(context.Background())
			if err != nil {
				return err
			}
			if len(results) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sinks configured")
				return nil
			}
			for _, r := range results {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s checksum=%t binary=%t lifecycle=%t", r.Name, r.ChecksumValid, r.BinaryReachable, r.LifecycleOK)
				if r.Error != "" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), " error=%q", r.Error)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	})

	return sync
}

func newCompanionCmd(homePath *string) *cobra.Command {
	companion := &cobra.Command{Use: "companion", Short: "Companion device bridge"}

	var addr string
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve the websocket bridge for companion devices",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			if addr == "" {
				addr = cfg.CompanionAddr
			}
			if addr == "" {
				addr = "127.0.0.1:8799"
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "companion bridge listening on ws://%s/ws\n", addr)
			return app.Companion.Serve(ctx, addr)
		},
	}
	serve.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	companion.AddCommand(serve)

	return companion
}
