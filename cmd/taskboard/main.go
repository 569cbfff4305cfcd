// Package main is the entry point for the taskboard application. With no
// subcommand it starts the dashboard TUI; the subcommands operate on the
// same stored data from the shell.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	"taskboard/internal/config"
	"taskboard/internal/dashboard"
	"taskboard/internal/kvstore"
	"taskboard/internal/logging"
	"taskboard/internal/storage"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

// Version information - set by GoReleaser during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd(newOptions()).ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// options are the global flags plus the process edges that tests replace.
type options struct {
	configPath string
	dataDir    string
	backend    string

	stdin      io.Reader
	systemDark func() bool
	now        func() time.Time
}

func newOptions() *options {
	return &options{
		stdin:      os.Stdin,
		systemDark: termenv.HasDarkBackground,
		now:        time.Now,
	}
}

func newRootCmd(o *options) *cobra.Command {
	root := &cobra.Command{
		Use:   "taskboard",
		Short: "A project dashboard for your terminal",
		Long: `taskboard shows project statistics, a status chart and an editable task
list in a keyboard and mouse driven terminal UI. Run it without a command
to open the dashboard.

Data lives in ~/.taskboard/ (one JSON value per key, or a SQLite file).
Optional config file: ~/.config/taskboard/config.yaml`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, o)
		},
	}
	root.PersistentFlags().StringVar(&o.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/taskboard/config.yaml)")
	root.PersistentFlags().StringVar(&o.dataDir, "data-dir", "", "data directory (overrides data_dir)")
	root.PersistentFlags().StringVar(&o.backend, "backend", "", "storage backend: file or sqlite (overrides storage.backend)")

	root.AddCommand(
		newListCmd(o),
		newAddCmd(o),
		newToggleCmd(o),
		newDeleteCmd(o),
		newStatsCmd(o),
		newThemeCmd(o),
		newSetCmd(o),
		newBackupCmd(o),
		newRestoreCmd(o),
		newExportCmd(o),
		newImportCmd(o),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "taskboard version %s\n", version)
			fmt.Fprintf(out, "  commit: %s\n", commit)
			fmt.Fprintf(out, "  built:  %s\n", date)
		},
	}
}

// ============================================================================
// Session
// ============================================================================

// session is an opened config, logger and store.
type session struct {
	cfg    *config.Config
	logger *log.Logger
	store  *storage.Storage
	now    func() time.Time
}

// loadConfig reads the config file and applies flag overrides.
func (o *options) loadConfig() (*config.Config, error) {
	path := o.configPath
	if path == "" {
		path = config.Path()
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return nil, err
	}
	if o.dataDir != "" {
		cfg.DataDir = o.dataDir
	}
	if o.backend != "" {
		cfg.Storage.Backend = strings.ToLower(o.backend)
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("--backend: %w", err)
		}
	}
	return cfg, nil
}

// open prepares a session that logs to stderr.
func (o *options) open(cmd *cobra.Command) (*session, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	opts := logging.DefaultOptions()
	opts.Level = level
	return o.openWith(cfg, logging.New(cmd.ErrOrStderr(), opts))
}

func (o *options) openWith(cfg *config.Config, logger *log.Logger) (*session, error) {
	kv, err := kvstore.Open(cfg.Storage.Backend, cfg.GetDataDir())
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	logger.Debug("storage opened", "backend", cfg.Storage.Backend, "dir", cfg.GetDataDir())
	return &session{
		cfg:    cfg,
		logger: logger,
		store:  storage.New(kv, logger),
		now:    o.now,
	}, nil
}

func (s *session) Close() error {
	return s.store.Close()
}

// load reads the stored dashboard. A missing theme preference falls back to
// the terminal background.
func (s *session) load(ctx context.Context, systemDark func() bool) (dashboard.State, error) {
	snap, err := s.store.Load(ctx)
	if err != nil {
		return dashboard.State{}, err
	}
	theme := snap.Theme
	if !snap.ThemeStored {
		theme = dashboard.ResolveInitialTheme(snap.Theme, false, systemDark())
	}
	return dashboard.NewState(snap.Tasks, snap.Data, theme), nil
}

// apply dispatches a and writes the keys it changed.
func (s *session) apply(ctx context.Context, state dashboard.State, a dashboard.Action) (dashboard.Result, error) {
	res := dashboard.Dispatcher{Now: s.now}.Dispatch(state, a)
	if !res.Changed {
		return res, nil
	}
	if err := s.persist(ctx, res.State, res.Persist); err != nil {
		return res, err
	}
	return res, nil
}

// persist writes the given keys of state.
func (s *session) persist(ctx context.Context, state dashboard.State, keys []string) error {
	for _, k := range keys {
		var err error
		switch k {
		case storage.KeyData:
			err = s.store.SaveProjectData(ctx, state.Data)
		case storage.KeyTasks:
			err = s.store.SaveTasks(ctx, state.Tasks)
		case storage.KeyTheme:
			err = s.store.SaveTheme(ctx, state.Theme)
		default:
			err = fmt.Errorf("unknown key %q", k)
		}
		if err != nil {
			return err
		}
		s.logger.Debug("saved", "key", k)
	}
	return nil
}

// changedKeys lists the keys whose values differ between before and after.
func changedKeys(before, after dashboard.State) []string {
	var keys []string
	if before.Data != after.Data {
		keys = append(keys, storage.KeyData)
	}
	if !slices.Equal(before.Tasks, after.Tasks) {
		keys = append(keys, storage.KeyTasks)
	}
	if before.Theme != after.Theme {
		keys = append(keys, storage.KeyTheme)
	}
	return keys
}

// promptConfirmer asks on out and reads one line from in. Anything but
// y or yes declines, including end of input.
func promptConfirmer(in io.Reader, out io.Writer) dashboard.Confirmer {
	return dashboard.ConfirmFunc(func(prompt string) bool {
		fmt.Fprintf(out, "%s [y/N] ", prompt)
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(out)
			return false
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		}
		return false
	})
}
