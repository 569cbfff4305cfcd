package main

import (
	"fmt"

	"taskboard/internal/backup"

	"github.com/spf13/cobra"
)

func newRestoreCmd(o *options) *cobra.Command {
	var latest, force bool
	cmd := &cobra.Command{
		Use:   "restore [NAME]",
		Short: "Restore data from a backup",
		Long: `Restores the stored tasks, project counters and theme from a backup.
A safety backup of the current data is taken first.

Run 'taskboard backup --list' to see available backups.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if latest == (len(args) == 1) {
				return fmt.Errorf("specify a backup NAME or --latest")
			}

			s, err := o.open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			manager := backup.NewManager(s.store.KV(), s.cfg.GetDataDir(), version)

			var name string
			if latest {
				backups, err := manager.List()
				if err != nil {
					return fmt.Errorf("list backups: %w", err)
				}
				if len(backups) == 0 {
					return fmt.Errorf("no backups available")
				}
				name = backups[0].Name
			} else {
				name = args[0]
			}

			info, err := manager.GetBackup(name)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Restoring from backup: %s\n", info.Name)
			fmt.Fprintf(out, "  Created: %s\n", info.CreatedAt.Format("2006-01-02 15:04:05"))
			fmt.Fprintf(out, "  Tasks: %d, Completed: %d\n\n", info.Stats["tasks"], info.Stats["completed"])

			if !force && !promptConfirmer(o.stdin, out).Confirm("⚠ This will overwrite your current data. Continue?") {
				fmt.Fprintln(out, "Restore cancelled.")
				return nil
			}

			fmt.Fprintln(out, "✓ Creating safety backup first...")
			if err := manager.Restore(cmd.Context(), name); err != nil {
				return fmt.Errorf("restore backup: %w", err)
			}
			fmt.Fprintf(out, "✓ Restored successfully from %s\n", name)
			return nil
		},
	}
	cmd.Flags().BoolVar(&latest, "latest", false, "restore from the most recent backup")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")
	return cmd
}
