package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"taskboard/internal/fsutil"
	"taskboard/internal/reports"

	"github.com/spf13/cobra"
)

func newExportCmd(o *options) *cobra.Command {
	var format, output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a dashboard report",
		Long: `Generates a report of the project counters, the status breakdown and
every task. Reports can be output as Markdown (human-readable) or JSON
(machine-readable).`,
		Example: `  taskboard export
  taskboard export --format json
  taskboard export -o report.md`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format = strings.ToLower(format)
			switch format {
			case "markdown", "md":
				format = "markdown"
			case "json":
			default:
				return fmt.Errorf("invalid format %q: use 'markdown' or 'json'", format)
			}

			s, err := o.open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			gen := reports.NewGenerator(s.store, s.cfg.UX.Locale)
			report, err := gen.Generate(cmd.Context())
			if err != nil {
				return err
			}

			var data []byte
			if format == "json" {
				data, err = reports.FormatJSON(report)
				if err != nil {
					return fmt.Errorf("format JSON: %w", err)
				}
				data = append(data, '\n')
			} else {
				data = []byte(reports.FormatMarkdown(report))
			}

			out := cmd.OutOrStdout()
			if output == "" {
				_, err := out.Write(data)
				return err
			}

			if dir := filepath.Dir(output); dir != "." {
				if err := os.MkdirAll(dir, 0o700); err != nil {
					return fmt.Errorf("create output directory: %w", err)
				}
			}
			if err := fsutil.WriteFileAtomic(output, data, 0o600); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			fmt.Fprintf(out, "Report written to %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "markdown", "output format: markdown or json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	return cmd
}
