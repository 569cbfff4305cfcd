package reports

import (
	"context"
	"fmt"
	"time"

	"taskboard/internal/dashboard"
	"taskboard/internal/storage"
)

// Generator creates reports from storage data.
type Generator struct {
	store  *storage.Storage
	labels dashboard.Labels
	now    func() time.Time
}

// NewGenerator creates a report generator. Status labels follow locale.
func NewGenerator(store *storage.Storage, locale string) *Generator {
	return &Generator{
		store:  store,
		labels: dashboard.LabelsFor(locale),
		now:    time.Now,
	}
}

// Generate loads the stored dashboard and summarizes it.
func (g *Generator) Generate(ctx context.Context) (*Report, error) {
	snap, err := g.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("generate report: %w", err)
	}
	state := dashboard.NewState(snap.Tasks, snap.Data, snap.Theme)
	return FromState(state, g.labels, g.now()), nil
}

// FromState summarizes state without touching storage.
func FromState(state dashboard.State, labels dashboard.Labels, now time.Time) *Report {
	st := state.Stats()

	r := &Report{
		GeneratedAt: now,
		Theme:       state.Theme,
		Counters: Counters{
			ActiveProjects: state.Data.ActiveProjects,
			HoursLogged:    state.Data.HoursLogged,
			TasksCompleted: st.TasksCompleted(),
		},
		Status: StatusSummary{
			Completed:  st.Completed,
			InProgress: st.InProgress,
			Pending:    st.Pending,
			Total:      st.Total,
		},
		Tasks: make([]TaskLine, 0, len(state.Tasks)),
	}
	if st.Total > 0 {
		r.Status.CompletionRate = float64(st.Completed) / float64(st.Total) * 100
	}

	for _, t := range state.Tasks {
		r.Tasks = append(r.Tasks, TaskLine{
			ID:          t.ID,
			Text:        t.Text,
			Completed:   t.Completed,
			Status:      t.Status,
			StatusLabel: labels.Status(t.Status),
		})
	}
	return r
}

// byStatus returns the tasks with status s, keeping their order.
func (r *Report) byStatus(s storage.Status) []TaskLine {
	var out []TaskLine
	for _, t := range r.Tasks {
		if t.Status == s {
			out = append(out, t)
		}
	}
	return out
}
