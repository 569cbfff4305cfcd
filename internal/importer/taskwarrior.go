package importer

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"taskboard/internal/storage"
)

// TaskwarriorImporter handles importing from Taskwarrior JSON exports.
type TaskwarriorImporter struct {
	// Now supplies the clock for new task ids. Defaults to time.Now.
	Now func() time.Time
}

// taskwarriorTask holds the fields of a Taskwarrior export record we read.
type taskwarriorTask struct {
	Description string `json:"description"`
	Status      string `json:"status"`
	Project     string `json:"project"`
	Start       string `json:"start"`
}

// Name returns the importer name.
func (t *TaskwarriorImporter) Name() string {
	return "taskwarrior"
}

// Import reads tasks from Taskwarrior JSON and appends them to storage.
func (t *TaskwarriorImporter) Import(ctx context.Context, reader io.Reader, store *storage.Storage) (*ImportResult, error) {
	tasks, err := t.Preview(reader)
	if err != nil {
		return nil, err
	}
	now := t.Now
	if now == nil {
		now = time.Now
	}
	return importTasks(ctx, store, tasks, now)
}

// Preview returns the tasks that would be imported. Both the JSON array
// written by `task export` and one object per line are accepted.
func (t *TaskwarriorImporter) Preview(reader io.Reader) ([]PreviewTask, error) {
	br := bufio.NewReader(reader)
	first, err := peekNonSpace(br)
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("empty input")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	dec := json.NewDecoder(br)
	if first == '[' {
		if _, err := dec.Token(); err != nil {
			return nil, fmt.Errorf("failed to parse JSON array: %w", err)
		}
	}

	var tasks []PreviewTask
	for n := 1; ; n++ {
		if first == '[' && !dec.More() {
			break
		}
		var tw taskwarriorTask
		err := dec.Decode(&tw)
		if first != '[' && errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode task %d (offset %d): %w", n, dec.InputOffset(), err)
		}
		if task, ok := previewFromTaskwarrior(tw); ok {
			tasks = append(tasks, task)
		}
	}

	if first == '[' {
		if _, err := dec.Token(); err != nil {
			return nil, fmt.Errorf("failed to parse JSON array: %w", err)
		}
	}
	return tasks, nil
}

// peekNonSpace skips leading whitespace and returns the next byte without
// consuming it.
func peekNonSpace(r *bufio.Reader) (byte, error) {
	for {
		b, err := r.Peek(1)
		if err != nil {
			return 0, err
		}
		switch b[0] {
		case ' ', '\t', '\n', '\r':
			_, _ = r.ReadByte()
		default:
			return b[0], nil
		}
	}
}

func previewFromTaskwarrior(tw taskwarriorTask) (PreviewTask, bool) {
	status, ok := mapTaskwarriorStatus(tw)
	if !ok {
		return PreviewTask{}, false
	}

	text := strings.TrimSpace(tw.Description)
	if text == "" {
		return PreviewTask{}, false
	}

	return PreviewTask{
		Text:    text,
		Project: tw.Project,
		Status:  status,
	}, true
}

// mapTaskwarriorStatus converts a Taskwarrior status. A pending task with a
// start time has been started and counts as in progress. Deleted tasks are
// dropped.
func mapTaskwarriorStatus(tw taskwarriorTask) (storage.Status, bool) {
	switch strings.ToLower(strings.TrimSpace(tw.Status)) {
	case "deleted":
		return "", false
	case "completed":
		return storage.StatusCompleted, true
	case "started", "active":
		return storage.StatusInProgress, true
	default:
		if strings.TrimSpace(tw.Start) != "" {
			return storage.StatusInProgress, true
		}
		return storage.StatusPending, true
	}
}
