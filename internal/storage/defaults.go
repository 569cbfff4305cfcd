package storage

// Fixed keys in the key-value store.
const (
	KeyTheme = "dashboard-theme"
	KeyData  = "dashboard-data"
	KeyTasks = "dashboard-tasks"
)

// Keys lists every key the dashboard persists, in backup order.
var Keys = []string{KeyData, KeyTasks, KeyTheme}

// DefaultProjectData returns the document used when nothing is stored.
func DefaultProjectData() ProjectData {
	return ProjectData{
		ActiveProjects: 12,
		HoursLogged:    145,
		TasksCompleted: 89,
		ProjectStatus: StatusCounts{
			Completed:  65,
			InProgress: 25,
			Pending:    10,
		},
	}
}

// SeedTasks returns the task list shown on first run.
func SeedTasks() []Task {
	return []Task{
		{ID: 1, Text: "Design the home page", Completed: false, Status: StatusInProgress},
		{ID: 2, Text: "Implement login API", Completed: true, Status: StatusCompleted},
		{ID: 3, Text: "Responsive layout testing", Completed: false, Status: StatusPending},
		{ID: 4, Text: "Fix reported bugs", Completed: false, Status: StatusInProgress},
	}
}
