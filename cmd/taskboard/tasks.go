package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"taskboard/internal/dashboard"
	"taskboard/internal/storage"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q", arg)
	}
	return id, nil
}

func newListCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := o.open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			state, err := s.load(cmd.Context(), o.systemDark)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(state.Tasks) == 0 {
				fmt.Fprintln(out, "No tasks yet. Run 'taskboard add TEXT' to add one.")
				return nil
			}

			labels := dashboard.LabelsFor(s.cfg.UX.Locale)
			idWidth, textWidth := 0, 0
			for _, t := range state.Tasks {
				idWidth = max(idWidth, len(strconv.FormatInt(t.ID, 10)))
				textWidth = max(textWidth, runewidth.StringWidth(t.Text))
			}
			textWidth = min(textWidth, 60)

			for _, t := range state.Tasks {
				box := " "
				if t.Completed {
					box = "x"
				}
				text := runewidth.FillRight(runewidth.Truncate(t.Text, textWidth, ".."), textWidth)
				fmt.Fprintf(out, "[%s] %*d  %s  %s\n", box, idWidth, t.ID, text, labels.Status(t.Status))
			}
			st := state.Stats()
			fmt.Fprintf(out, "\n%d/%d complete\n", st.Completed, st.Total)
			return nil
		},
	}
}

func newAddCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "add TEXT...",
		Short: "Add a pending task",
		Long:  "Add a pending task. The words are joined with spaces; blank text is ignored.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := o.open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			ctx := cmd.Context()
			state, err := s.load(ctx, o.systemDark)
			if err != nil {
				return err
			}
			res, err := s.apply(ctx, state, dashboard.Add{Text: strings.Join(args, " ")})
			if err != nil {
				return err
			}
			if res.Changed {
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Added task %d: %s\n", res.Task.ID, res.Task.Text)
			}
			return nil
		},
	}
}

func newToggleCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle ID",
		Short: "Toggle a task between completed and in progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			s, err := o.open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			ctx := cmd.Context()
			state, err := s.load(ctx, o.systemDark)
			if err != nil {
				return err
			}
			res, err := s.apply(ctx, state, dashboard.Toggle{ID: id})
			if err != nil {
				return err
			}
			if !res.Changed {
				return fmt.Errorf("no task with id %d", id)
			}
			labels := dashboard.LabelsFor(s.cfg.UX.Locale)
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s: %s\n", res.Task.Text, labels.Status(res.Task.Status))
			return nil
		},
	}
}

func newDeleteCmd(o *options) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a task after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			s, err := o.open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			ctx := cmd.Context()
			state, err := s.load(ctx, o.systemDark)
			if err != nil {
				return err
			}
			task, ok := state.Get(id)
			if !ok {
				return fmt.Errorf("no task with id %d", id)
			}

			out := cmd.OutOrStdout()
			confirm := dashboard.Confirmed
			if !yes {
				fmt.Fprintf(out, "Task: %s\n", task.Text)
				confirm = promptConfirmer(o.stdin, out)
			}
			res, err := s.apply(ctx, state, dashboard.Delete{ID: id, Confirm: confirm})
			if err != nil {
				return err
			}
			if !res.Changed {
				fmt.Fprintln(out, "Delete cancelled.")
				return nil
			}
			fmt.Fprintf(out, "✓ Deleted task %d: %s\n", res.Task.ID, res.Task.Text)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "delete without asking")
	return cmd
}

func newStatsCmd(o *options) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show project counters and task status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := o.open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			state, err := s.load(cmd.Context(), o.systemDark)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				data, err := json.MarshalIndent(state.Data, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			labels := dashboard.LabelsFor(s.cfg.UX.Locale)
			d := state.Data
			fmt.Fprintf(out, "%-16s %d\n", labels.ActiveProjects+":", d.ActiveProjects)
			fmt.Fprintf(out, "%-16s %d\n", labels.HoursLogged+":", d.HoursLogged)
			fmt.Fprintf(out, "%-16s %d\n", labels.TasksCompleted+":", d.TasksCompleted)
			fmt.Fprintln(out)
			fmt.Fprintf(out, "%-16s %d\n", labels.Completed+":", d.ProjectStatus.Completed)
			fmt.Fprintf(out, "%-16s %d\n", labels.InProgress+":", d.ProjectStatus.InProgress)
			fmt.Fprintf(out, "%-16s %d\n", labels.Pending+":", d.ProjectStatus.Pending)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the stored project document as JSON")
	return cmd
}

func newThemeCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [dark|light|toggle]",
		Short:     "Show or change the theme",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(storage.ThemeDark), string(storage.ThemeLight), "toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := o.open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			ctx := cmd.Context()
			state, err := s.load(ctx, o.systemDark)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(args) == 0 {
				fmt.Fprintf(out, "%s %s\n", dashboard.ThemeIcon(state.Theme), state.Theme)
				return nil
			}

			want := dashboard.ToggleTheme(state.Theme)
			if args[0] != "toggle" {
				want = storage.Theme(args[0])
			}
			if want == state.Theme {
				// Persist anyway so an explicit choice overrides the system.
				if err := s.persist(ctx, state, []string{storage.KeyTheme}); err != nil {
					return err
				}
			} else if _, err := s.apply(ctx, state, dashboard.ToggleThemeAction{}); err != nil {
				return err
			}
			fmt.Fprintf(out, "✓ Theme: %s %s\n", dashboard.ThemeIcon(want), want)
			return nil
		},
	}
}

func newSetCmd(o *options) *cobra.Command {
	var projects, hours int
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set the active projects and hours logged counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var action dashboard.SetCounters
			if cmd.Flags().Changed("active-projects") {
				if projects < 0 {
					return fmt.Errorf("--active-projects must not be negative")
				}
				action.ActiveProjects = &projects
			}
			if cmd.Flags().Changed("hours") {
				if hours < 0 {
					return fmt.Errorf("--hours must not be negative")
				}
				action.HoursLogged = &hours
			}
			if action.ActiveProjects == nil && action.HoursLogged == nil {
				return fmt.Errorf("nothing to set: use --active-projects and/or --hours")
			}

			s, err := o.open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			ctx := cmd.Context()
			state, err := s.load(ctx, o.systemDark)
			if err != nil {
				return err
			}
			res, err := s.apply(ctx, state, action)
			if err != nil {
				return err
			}
			d := res.State.Data
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Active projects: %d, hours logged: %d\n", d.ActiveProjects, d.HoursLogged)
			return nil
		},
	}
	cmd.Flags().IntVar(&projects, "active-projects", 0, "number of active projects")
	cmd.Flags().IntVar(&hours, "hours", 0, "hours logged")
	return cmd
}
