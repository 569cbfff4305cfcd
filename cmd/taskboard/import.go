package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"taskboard/internal/importer"

	"github.com/spf13/cobra"
)

// previewLimit caps the tasks listed by a dry run.
const previewLimit = 20

func newImportCmd(o *options) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "import FORMAT FILE",
		Short: "Import tasks from other apps",
		Long: `Import tasks from other productivity tools. Supported formats: ` + strings.Join(importer.SupportedFormats(), ", ") + `

TASKWARRIOR:
  Export your tasks using: task export > tasks.json
  Both JSON array and newline-delimited JSON formats are supported.
  - description → task text
  - completed → completed
  - started (a start time is set) → in progress
  - anything else → pending
  - Deleted tasks are skipped, as are tasks already on the board.`,
		Example: `  task export > tasks.json
  taskboard import taskwarrior tasks.json
  taskboard import --dry-run taskwarrior tasks.json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := strings.ToLower(args[0])
			imp := importer.GetImporter(format)
			if imp == nil {
				return fmt.Errorf("unknown format %q (supported: %s)", format, strings.Join(importer.SupportedFormats(), ", "))
			}

			file, err := os.Open(args[1])
			if err != nil {
				return err
			}
			defer file.Close()

			out := cmd.OutOrStdout()
			if dryRun {
				return previewImport(out, imp, file)
			}

			s, err := o.open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			result, err := imp.Import(cmd.Context(), file, s.store)
			if err != nil {
				return fmt.Errorf("import: %w", err)
			}
			fmt.Fprintln(out, "Import complete!")
			fmt.Fprintf(out, "  Imported: %d tasks\n", result.Imported)
			if result.Skipped > 0 {
				fmt.Fprintf(out, "  Skipped:  %d already on the board\n", result.Skipped)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "preview import without making changes")
	return cmd
}

// previewImport lists what an import would add without touching storage.
func previewImport(out io.Writer, imp importer.Importer, r io.Reader) error {
	tasks, err := imp.Preview(r)
	if err != nil {
		return fmt.Errorf("parse file: %w", err)
	}
	if len(tasks) == 0 {
		fmt.Fprintln(out, "No tasks found to import.")
		return nil
	}

	fmt.Fprintf(out, "Preview: %d tasks to import\n", len(tasks))
	fmt.Fprintln(out, "────────────────────────────")
	for _, task := range tasks[:min(len(tasks), previewLimit)] {
		details := []string{string(task.Status)}
		if task.Project != "" {
			details = append([]string{task.Project}, details...)
		}
		fmt.Fprintf(out, "  %s (%s)\n", task.Text, strings.Join(details, ", "))
	}
	if len(tasks) > previewLimit {
		fmt.Fprintf(out, "  ... and %d more\n", len(tasks)-previewLimit)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run without --dry-run to import.")
	return nil
}
