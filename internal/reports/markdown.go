package reports

import (
	"fmt"
	"strings"

	"taskboard/internal/storage"
)

// FormatMarkdown renders a report as a Markdown document.
func FormatMarkdown(report *Report) string {
	var b strings.Builder

	b.WriteString("# Project Dashboard\n\n")
	fmt.Fprintf(&b, "_Generated %s_\n\n", report.GeneratedAt.Format("2006-01-02 15:04"))

	b.WriteString("## Summary\n\n")
	b.WriteString("| Metric | Value |\n")
	b.WriteString("|---|---|\n")
	fmt.Fprintf(&b, "| Active projects | %d |\n", report.Counters.ActiveProjects)
	fmt.Fprintf(&b, "| Hours logged | %d |\n", report.Counters.HoursLogged)
	fmt.Fprintf(&b, "| Tasks completed | %d |\n", report.Counters.TasksCompleted)
	b.WriteString("\n")

	s := report.Status
	b.WriteString("## Status\n\n")
	fmt.Fprintf(&b, "- Completed: %d\n", s.Completed)
	fmt.Fprintf(&b, "- In progress: %d\n", s.InProgress)
	fmt.Fprintf(&b, "- Pending: %d\n", s.Pending)
	fmt.Fprintf(&b, "\n%d of %d tasks done (%.0f%%)\n\n", s.Completed, s.Total, s.CompletionRate)

	if len(report.Tasks) == 0 {
		b.WriteString("## Tasks\n\nNo tasks.\n")
		return b.String()
	}

	for _, status := range []storage.Status{
		storage.StatusInProgress,
		storage.StatusPending,
		storage.StatusCompleted,
	} {
		lines := report.byStatus(status)
		if len(lines) == 0 {
			continue
		}
		fmt.Fprintf(&b, "## %s\n\n", lines[0].StatusLabel)
		for _, t := range lines {
			box := " "
			if t.Completed {
				box = "x"
			}
			fmt.Fprintf(&b, "- [%s] %s\n", box, escapeMarkdown(t.Text))
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
