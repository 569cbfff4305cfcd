package dashboard

import "taskboard/internal/storage"

// Slice colors, shared by both themes.
const (
	ColorCompleted  = "#4caf50"
	ColorInProgress = "#2196f3"
	ColorPending    = "#ffc107"
)

// Palette holds the theme-dependent chart colors.
type Palette struct {
	Border      string
	Legend      string
	TooltipBg   string
	TooltipText string
}

// PaletteFor returns the chart palette for t.
func PaletteFor(t storage.Theme) Palette {
	if t == storage.ThemeDark {
		return Palette{
			Border:      "#1e1e1e",
			Legend:      "#e0e0e0",
			TooltipBg:   "#2d2d2d",
			TooltipText: "#e0e0e0",
		}
	}
	return Palette{
		Border:      "#ffffff",
		Legend:      "#333333",
		TooltipBg:   "#ffffff",
		TooltipText: "#333333",
	}
}

// Row is one line of the task list.
type Row struct {
	ID          int64
	Text        string
	Checked     bool
	Status      storage.Status
	StatusLabel string
}

// CardKind identifies a stat card.
type CardKind int

const (
	CardActiveProjects CardKind = iota
	CardHoursLogged
	CardTasksCompleted
)

// Card is one stat card. Value is the count-up target.
type Card struct {
	Kind  CardKind
	Label string
	Value int
}

// Slice is one segment of the status chart.
type Slice struct {
	Status  storage.Status
	Label   string
	Value   int
	Color   string
	Percent float64
}

// Chart is the three-slice status chart.
type Chart struct {
	Title  string
	Slices []Slice
	Total  int
}

// ViewModel is everything a renderer needs to draw the dashboard.
type ViewModel struct {
	Theme     storage.Theme
	ThemeIcon string
	Palette   Palette
	Labels    Labels
	Rows      []Row
	Cards     []Card
	Chart     Chart
}

// BuildView derives the view model from s. It is deterministic: the same
// state and locale always give the same view.
func BuildView(s State, locale string) ViewModel {
	labels := LabelsFor(locale)

	rows := make([]Row, 0, len(s.Tasks))
	for _, t := range s.Tasks {
		rows = append(rows, Row{
			ID:          t.ID,
			Text:        t.Text,
			Checked:     t.Completed,
			Status:      t.Status,
			StatusLabel: labels.Status(t.Status),
		})
	}

	cards := []Card{
		{Kind: CardActiveProjects, Label: labels.ActiveProjects, Value: s.Data.ActiveProjects},
		{Kind: CardHoursLogged, Label: labels.HoursLogged, Value: s.Data.HoursLogged},
		{Kind: CardTasksCompleted, Label: labels.TasksCompleted, Value: s.Data.TasksCompleted},
	}

	counts := s.Data.ProjectStatus
	total := counts.Total()
	slices := []Slice{
		{Status: storage.StatusCompleted, Label: labels.Completed, Value: counts.Completed, Color: ColorCompleted},
		{Status: storage.StatusInProgress, Label: labels.InProgress, Value: counts.InProgress, Color: ColorInProgress},
		{Status: storage.StatusPending, Label: labels.Pending, Value: counts.Pending, Color: ColorPending},
	}
	if total > 0 {
		for i := range slices {
			slices[i].Percent = float64(slices[i].Value) / float64(total) * 100
		}
	}

	return ViewModel{
		Theme:     s.Theme,
		ThemeIcon: ThemeIcon(s.Theme),
		Palette:   PaletteFor(s.Theme),
		Labels:    labels,
		Rows:      rows,
		Cards:     cards,
		Chart:     Chart{Title: labels.ChartTitle, Slices: slices, Total: total},
	}
}
