package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taskboard/internal/dashboard"
	"taskboard/internal/logging"
	"taskboard/internal/notify"
	"taskboard/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// flushTimeout bounds the final write after the TUI exits.
const flushTimeout = 5 * time.Second

// runTUI starts the dashboard. The TUI owns the terminal, so logs go to a
// file in the data directory.
func runTUI(cmd *cobra.Command, o *options) error {
	cfg, err := o.loadConfig()
	if err != nil {
		return err
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger, logFile, err := logging.OpenFile(cfg.GetDataDir(), level)
	if err != nil {
		return err
	}
	defer logFile.Close()

	s, err := o.openWith(cfg, logger)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	snap, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	theme := snap.Theme
	if !snap.ThemeStored {
		theme = dashboard.ResolveInitialTheme(snap.Theme, false, o.systemDark())
	}
	initial := dashboard.NewState(snap.Tasks, snap.Data, theme)

	appCfg := &ui.AppConfig{
		Keys:                  &cfg.Keys,
		ConfirmDeletions:      cfg.UX.ConfirmDeletions,
		NarrowLayoutThreshold: cfg.UX.NarrowLayoutThreshold,
		Locale:                cfg.UX.Locale,
		Animate:               cfg.UX.Animate,
		Mirror: notify.NewMirror(nil, notify.Config{
			Enabled: cfg.Notifications.Enabled,
			Sound:   cfg.Notifications.Sound,
		}),
		Warnings: snap.Warnings,
		Logger:   logger,
		Now:      o.now,
	}

	logger.Info("dashboard starting", "tasks", len(initial.Tasks), "theme", initial.Theme)
	final, runErr := ui.Run(ctx, s.store, initial, ui.NewThemeStyles(&cfg.Theme), appCfg)

	// Saves still in flight when the program quit are abandoned with it, so
	// write whatever differs from the starting state once more.
	flushCtx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()
	if err := s.persist(flushCtx, final, changedKeys(initial, final)); err != nil {
		logger.Error("final save failed", "err", err)
		if runErr == nil {
			return fmt.Errorf("save on exit: %w", err)
		}
	}

	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return fmt.Errorf("run dashboard: %w", runErr)
	}
	logger.Info("dashboard stopped")
	return nil
}
