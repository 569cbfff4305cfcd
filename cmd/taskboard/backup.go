package main

import (
	"fmt"
	"io"
	"time"

	"taskboard/internal/backup"

	"github.com/spf13/cobra"
)

func newBackupCmd(o *options) *cobra.Command {
	var list bool
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Create a backup of all data",
		Long: `Creates a timestamped backup of the stored tasks, project counters and
theme. Backups are stored in <data dir>/backups/ and can be restored later,
into either storage backend.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := o.open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			manager := backup.NewManager(s.store.KV(), s.cfg.GetDataDir(), version)
			out := cmd.OutOrStdout()
			if list {
				return listBackups(out, manager, o.now())
			}

			name, err := manager.Create(cmd.Context())
			if err != nil {
				return fmt.Errorf("create backup: %w", err)
			}
			info, err := manager.GetBackup(name)
			if err != nil {
				return fmt.Errorf("read backup info: %w", err)
			}
			fmt.Fprintf(out, "✓ Backup created: %s\n", name)
			fmt.Fprintf(out, "  Tasks: %d, Completed: %d\n", info.Stats["tasks"], info.Stats["completed"])
			fmt.Fprintf(out, "  Location: %s\n", info.Path)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&list, "list", "l", false, "list available backups")
	return cmd
}

// listBackups lists all available backups.
func listBackups(out io.Writer, manager *backup.Manager, now time.Time) error {
	backups, err := manager.List()
	if err != nil {
		return fmt.Errorf("list backups: %w", err)
	}

	if len(backups) == 0 {
		fmt.Fprintln(out, "No backups available.")
		fmt.Fprintln(out, "Run 'taskboard backup' to create one.")
		return nil
	}

	fmt.Fprintln(out, "Available backups:")
	for _, b := range backups {
		fmt.Fprintf(out, "  %s  (%s)   Tasks: %d, Completed: %d\n",
			b.Name, formatAge(now.Sub(b.CreatedAt)), b.Stats["tasks"], b.Stats["completed"])
	}
	return nil
}

// formatAge returns a human-readable age string.
func formatAge(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d.Minutes()), "minute")
	case d < 24*time.Hour:
		return plural(int(d.Hours()), "hour")
	case d < 7*24*time.Hour:
		return plural(int(d.Hours()/24), "day")
	default:
		return plural(int(d.Hours()/24/7), "week")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit + " ago"
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
