package storage

// Status is the workflow state of a task.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// Valid reports whether s is one of the three known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	default:
		return false
	}
}

// Task is a single row of the task list. Completed mirrors Status: it is
// true exactly when Status is StatusCompleted.
type Task struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	Status    Status `json:"status"`
}

// StatusCounts holds the three chart slices.
type StatusCounts struct {
	Completed  int `json:"completed"`
	InProgress int `json:"inProgress"`
	Pending    int `json:"pending"`
}

// Total returns the sum of all three counts.
func (c StatusCounts) Total() int {
	return c.Completed + c.InProgress + c.Pending
}

// ProjectData is the document stored under KeyData. TasksCompleted and
// ProjectStatus are derived from the task list; ActiveProjects and
// HoursLogged are set by the user.
type ProjectData struct {
	ActiveProjects int          `json:"activeProjects"`
	HoursLogged    int          `json:"hoursLogged"`
	TasksCompleted int          `json:"tasksCompleted"`
	ProjectStatus  StatusCounts `json:"projectStatus"`
}

// Theme is the persisted light/dark preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Valid reports whether t is light or dark.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}
