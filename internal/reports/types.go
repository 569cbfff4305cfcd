// Package reports builds snapshot reports of the dashboard for export.
// A report carries the counters, the status breakdown and the task list.
package reports

import (
	"time"

	"taskboard/internal/storage"
)

// Report is a point-in-time summary of the dashboard.
type Report struct {
	GeneratedAt time.Time     `json:"generated_at"`
	Theme       storage.Theme `json:"theme"`
	Counters    Counters      `json:"counters"`
	Status      StatusSummary `json:"status"`
	Tasks       []TaskLine    `json:"tasks"`
}

// Counters are the three stat card values.
type Counters struct {
	ActiveProjects int `json:"active_projects"`
	HoursLogged    int `json:"hours_logged"`
	TasksCompleted int `json:"tasks_completed"`
}

// StatusSummary is the chart dataset with shares.
type StatusSummary struct {
	Completed      int     `json:"completed"`
	InProgress     int     `json:"in_progress"`
	Pending        int     `json:"pending"`
	Total          int     `json:"total"`
	CompletionRate float64 `json:"completion_rate"` // 0-100
}

// TaskLine is one task as it appears in a report.
type TaskLine struct {
	ID          int64          `json:"id"`
	Text        string         `json:"text"`
	Completed   bool           `json:"completed"`
	Status      storage.Status `json:"status"`
	StatusLabel string         `json:"status_label"`
}
