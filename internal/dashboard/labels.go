package dashboard

import (
	"fmt"
	"strings"

	"taskboard/internal/storage"
)

// Locales with a label table.
const (
	LocaleEnglish = "en"
	LocalePersian = "fa"
)

// Labels is the user-facing text of the dashboard.
type Labels struct {
	Completed  string
	InProgress string
	Pending    string

	ActiveProjects string
	HoursLogged    string
	TasksCompleted string

	ChartTitle  string
	SliceCount  string // format with one %d
	Close       string
	DeleteTask  string
	DeleteAsk   string
	AddPrompt   string
	TaskAdded   string
	TaskDeleted string
}

var labelTables = map[string]Labels{
	LocaleEnglish: {
		Completed:      "Completed",
		InProgress:     "In progress",
		Pending:        "Pending",
		ActiveProjects: "Active projects",
		HoursLogged:    "Hours logged",
		TasksCompleted: "Tasks completed",
		ChartTitle:     "Project status",
		SliceCount:     "Count: %d projects",
		Close:          "Close",
		DeleteTask:     "Delete task",
		DeleteAsk:      DeletePrompt,
		AddPrompt:      "Enter the new task text:",
		TaskAdded:      "New task added successfully!",
		TaskDeleted:    "Task deleted successfully!",
	},
	LocalePersian: {
		Completed:      "تکمیل شده",
		InProgress:     "در حال انجام",
		Pending:        "در انتظار",
		ActiveProjects: "پروژه‌های فعال",
		HoursLogged:    "ساعات ثبت‌شده",
		TasksCompleted: "تسک‌های تکمیل‌شده",
		ChartTitle:     "وضعیت پروژه‌ها",
		SliceCount:     "تعداد: %d پروژه",
		Close:          "بستن",
		DeleteTask:     "حذف تسک",
		DeleteAsk:      "آیا مطمئن هستید که می‌خواهید این تسک را حذف کنید؟",
		AddPrompt:      "لطفاً متن تسک جدید را وارد کنید:",
		TaskAdded:      "تسک جدید با موفقیت اضافه شد!",
		TaskDeleted:    "تسک با موفقیت حذف شد!",
	},
}

// LabelsFor returns the table for locale, falling back to English. Region
// suffixes such as "fa_IR" or "en-US" are ignored.
func LabelsFor(locale string) Labels {
	locale = strings.ToLower(strings.TrimSpace(locale))
	if i := strings.IndexAny(locale, "_-."); i > 0 {
		locale = locale[:i]
	}
	if l, ok := labelTables[locale]; ok {
		return l
	}
	return labelTables[LocaleEnglish]
}

// Status returns the label for s. Unknown statuses are shown verbatim.
func (l Labels) Status(s storage.Status) string {
	switch s {
	case storage.StatusCompleted:
		return l.Completed
	case storage.StatusInProgress:
		return l.InProgress
	case storage.StatusPending:
		return l.Pending
	default:
		return string(s)
	}
}

// Count formats the body of the slice detail modal.
func (l Labels) Count(n int) string {
	return fmt.Sprintf(l.SliceCount, n)
}
