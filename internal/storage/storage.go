// Package storage converts dashboard state to and from the key-value store.
// Each value is written whole on every save. Loads never fail on bad data:
// anything unreadable is replaced by defaults and reported as a warning.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"taskboard/internal/kvstore"

	"github.com/charmbracelet/log"
)

// Snapshot is everything read from the store at startup.
type Snapshot struct {
	Tasks []Task
	Data  ProjectData

	// Theme is the stored preference; ThemeStored is false when no valid
	// preference exists and the caller should fall back to the system.
	Theme       Theme
	ThemeStored bool

	// Warnings describes values that were unreadable and replaced.
	Warnings []string
}

// Storage is the persistence adapter for the dashboard.
type Storage struct {
	kv     kvstore.Store
	logger *log.Logger
}

// New wraps kv. A nil logger discards warnings.
func New(kv kvstore.Store, logger *log.Logger) *Storage {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Storage{kv: kv, logger: logger}
}

// KV exposes the underlying store for backup and restore.
func (s *Storage) KV() kvstore.Store {
	return s.kv
}

// Close closes the underlying store.
func (s *Storage) Close() error {
	return s.kv.Close()
}

// Load reads all three keys. The returned error is non-nil only when the
// store itself could not be read.
func (s *Storage) Load(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{}

	tasks, warn, err := s.LoadTasks(ctx)
	if err != nil {
		return nil, err
	}
	snap.Tasks = tasks
	snap.Warnings = appendWarning(snap.Warnings, warn)

	data, warn, err := s.LoadProjectData(ctx)
	if err != nil {
		return nil, err
	}
	snap.Data = data
	snap.Warnings = appendWarning(snap.Warnings, warn)

	theme, ok, err := s.LoadTheme(ctx)
	if err != nil {
		return nil, err
	}
	snap.Theme, snap.ThemeStored = theme, ok

	return snap, nil
}

func appendWarning(list []string, warn string) []string {
	if warn == "" {
		return list
	}
	return append(list, warn)
}

// ============================================================================
// Tasks
// ============================================================================

// LoadTasks returns the stored task list, or the seed tasks when the key is
// absent. A non-empty warning means the stored value was unreadable.
func (s *Storage) LoadTasks(ctx context.Context) ([]Task, string, error) {
	raw, ok, err := s.kv.Get(ctx, KeyTasks)
	if err != nil {
		return nil, "", fmt.Errorf("load tasks: %w", err)
	}
	if !ok {
		return SeedTasks(), "", nil
	}

	tasks, repaired, parseErr := decodeTasks(raw)
	if parseErr == nil {
		if repaired > 0 {
			s.logger.Warn("stored tasks had missing or repeated ids, renumbered", "key", KeyTasks, "count", repaired)
		}
		return tasks, "", nil
	}

	if backup, ok := s.backup(ctx, KeyTasks); ok {
		if tasks, _, err := decodeTasks(backup); err == nil {
			warn := fmt.Sprintf("%s: %v (recovered from backup)", KeyTasks, parseErr)
			s.logger.Warn("stored tasks unreadable, using backup", "key", KeyTasks, "err", parseErr)
			return tasks, warn, nil
		}
	}

	warn := fmt.Sprintf("%s: %v (reset to defaults)", KeyTasks, parseErr)
	s.logger.Warn("stored tasks unreadable, using defaults", "key", KeyTasks, "err", parseErr)
	return SeedTasks(), warn, nil
}

// SaveTasks overwrites the stored task list.
func (s *Storage) SaveTasks(ctx context.Context, tasks []Task) error {
	if tasks == nil {
		tasks = []Task{}
	}
	return s.writeJSON(ctx, KeyTasks, tasks)
}

// decodeTasks parses a stored task list. Null entries are dropped and any
// missing or repeated id is replaced with one above the largest stored id,
// so every id in the result is unique. repaired counts the renumbered tasks.
func decodeTasks(raw string) (tasks []Task, repaired int, err error) {
	trimmed := bytes.TrimSpace([]byte(raw))
	if len(trimmed) == 0 {
		return nil, 0, fmt.Errorf("empty value")
	}
	if trimmed[0] != '[' {
		return nil, 0, fmt.Errorf("expected a JSON array")
	}
	var stored []*Task
	if err := json.Unmarshal(trimmed, &stored); err != nil {
		return nil, 0, fmt.Errorf("parse: %w", err)
	}

	var maxID int64
	for _, t := range stored {
		if t != nil && t.ID > maxID {
			maxID = t.ID
		}
	}

	tasks = make([]Task, 0, len(stored))
	seen := make(map[int64]bool, len(stored))
	for _, t := range stored {
		if t == nil {
			continue
		}
		task := normalizeTask(*t)
		if task.ID <= 0 || seen[task.ID] {
			maxID++
			task.ID = maxID
			repaired++
		}
		seen[task.ID] = true
		tasks = append(tasks, task)
	}
	return tasks, repaired, nil
}

// normalizeTask restores the completed/status invariant on hand-edited
// data. A valid status wins; otherwise the completed flag decides.
func normalizeTask(t Task) Task {
	t.Text = strings.TrimSpace(t.Text)
	if !t.Status.Valid() {
		if t.Completed {
			t.Status = StatusCompleted
		} else {
			t.Status = StatusPending
		}
	}
	t.Completed = t.Status == StatusCompleted
	return t
}

// ============================================================================
// Project data
// ============================================================================

// LoadProjectData returns the stored document shallow-merged over
// DefaultProjectData: top-level fields present in the stored object replace
// the defaults wholesale, absent fields keep them.
func (s *Storage) LoadProjectData(ctx context.Context) (ProjectData, string, error) {
	raw, ok, err := s.kv.Get(ctx, KeyData)
	if err != nil {
		return ProjectData{}, "", fmt.Errorf("load project data: %w", err)
	}
	if !ok {
		return DefaultProjectData(), "", nil
	}

	data, parseErr := mergeProjectData(DefaultProjectData(), raw)
	if parseErr == nil {
		return data, "", nil
	}

	if backup, ok := s.backup(ctx, KeyData); ok {
		if data, err := mergeProjectData(DefaultProjectData(), backup); err == nil {
			warn := fmt.Sprintf("%s: %v (recovered from backup)", KeyData, parseErr)
			s.logger.Warn("stored project data unreadable, using backup", "key", KeyData, "err", parseErr)
			return data, warn, nil
		}
	}

	warn := fmt.Sprintf("%s: %v (reset to defaults)", KeyData, parseErr)
	s.logger.Warn("stored project data unreadable, using defaults", "key", KeyData, "err", parseErr)
	return DefaultProjectData(), warn, nil
}

// SaveProjectData overwrites the stored document.
func (s *Storage) SaveProjectData(ctx context.Context, data ProjectData) error {
	return s.writeJSON(ctx, KeyData, data)
}

func mergeProjectData(base ProjectData, raw string) (ProjectData, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return base, fmt.Errorf("parse: %w", err)
	}
	if fields == nil {
		return base, fmt.Errorf("expected a JSON object")
	}

	set := func(name string, dst any) error {
		v, ok := fields[name]
		if !ok {
			return nil
		}
		if err := json.Unmarshal(v, dst); err != nil {
			return fmt.Errorf("field %s: %w", name, err)
		}
		return nil
	}

	out := base
	if err := set("activeProjects", &out.ActiveProjects); err != nil {
		return base, err
	}
	if err := set("hoursLogged", &out.HoursLogged); err != nil {
		return base, err
	}
	if err := set("tasksCompleted", &out.TasksCompleted); err != nil {
		return base, err
	}
	if _, ok := fields["projectStatus"]; ok {
		// Shallow merge: a stored projectStatus replaces the default one.
		out.ProjectStatus = StatusCounts{}
		if err := set("projectStatus", &out.ProjectStatus); err != nil {
			return base, err
		}
	}
	return out, nil
}

// ============================================================================
// Theme
// ============================================================================

// LoadTheme returns the stored theme and true, or ("", false) when no valid
// preference is stored. Both the bare string and its JSON-quoted form are
// accepted.
func (s *Storage) LoadTheme(ctx context.Context) (Theme, bool, error) {
	raw, ok, err := s.kv.Get(ctx, KeyTheme)
	if err != nil {
		return "", false, fmt.Errorf("load theme: %w", err)
	}
	if !ok {
		return "", false, nil
	}
	value := strings.TrimSpace(raw)
	var quoted string
	if err := json.Unmarshal([]byte(value), &quoted); err == nil {
		value = quoted
	}
	theme := Theme(value)
	if !theme.Valid() {
		s.logger.Warn("ignoring stored theme", "key", KeyTheme, "value", raw)
		return "", false, nil
	}
	return theme, true, nil
}

// SaveTheme stores the preference as the bare string "dark" or "light".
func (s *Storage) SaveTheme(ctx context.Context, theme Theme) error {
	if !theme.Valid() {
		return fmt.Errorf("invalid theme %q", theme)
	}
	if err := s.kv.Set(ctx, KeyTheme, string(theme)); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}

// ============================================================================
// Helpers
// ============================================================================

func (s *Storage) writeJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("serialize %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func (s *Storage) backup(ctx context.Context, key string) (string, bool) {
	br, ok := s.kv.(kvstore.BackupReader)
	if !ok {
		return "", false
	}
	v, ok, err := br.GetBackup(ctx, key)
	if err != nil || !ok {
		return "", false
	}
	return v, true
}
