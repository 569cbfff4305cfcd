package dashboard

import "taskboard/internal/storage"

// Stats is the summary derived from the task list.
type Stats struct {
	Completed  int
	InProgress int
	Pending    int
	Total      int
}

// Aggregate counts tasks. Completed is counted by the completed flag,
// in-progress and pending by status. For tasks that keep the flag and the
// status in agreement the three counts sum to Total.
func Aggregate(tasks []storage.Task) Stats {
	st := Stats{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			st.Completed++
		}
		switch t.Status {
		case storage.StatusInProgress:
			st.InProgress++
		case storage.StatusPending:
			st.Pending++
		}
	}
	return st
}

// TasksCompleted is the value shown on the "tasks completed" card.
func (s Stats) TasksCompleted() int {
	return s.Completed
}

// Counts returns the chart slices.
func (s Stats) Counts() storage.StatusCounts {
	return storage.StatusCounts{
		Completed:  s.Completed,
		InProgress: s.InProgress,
		Pending:    s.Pending,
	}
}
