// Package backup provides backup and restore of the dashboard's stored keys.
// Each backup is a timestamped directory holding one file per key plus a
// manifest, so it can be restored into any key-value backend.
package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"taskboard/internal/fsutil"
	"taskboard/internal/kvstore"
	"taskboard/internal/storage"
)

// Version constants for the backup format.
const (
	ManifestVersion = "2.0"
	ManifestFile    = "manifest.json"
	BackupsDir      = "backups"
)

// Manager handles backup and restore operations.
type Manager struct {
	kv         kvstore.Store
	backupDir  string // Path to backups directory (e.g., ~/.taskboard/backups)
	appVersion string // Application version for manifest
	now        func() time.Time
}

// Manifest contains metadata about a backup.
type Manifest struct {
	Version    string         `json:"version"`
	CreatedAt  time.Time      `json:"created_at"`
	AppVersion string         `json:"app_version"`
	Keys       []string       `json:"keys"`
	Stats      map[string]int `json:"stats"`
}

// BackupInfo contains summary information about a backup.
type BackupInfo struct {
	Name      string         // Directory name (2025-12-15_143022_123)
	Path      string         // Full path to backup directory
	CreatedAt time.Time      // When the backup was created
	Stats     map[string]int // tasks, completed
}

// NewManager creates a backup manager for kv. Backups live under
// dataDir/backups regardless of the store backend.
func NewManager(kv kvstore.Store, dataDir, appVersion string) *Manager {
	return &Manager{
		kv:         kv,
		backupDir:  filepath.Join(dataDir, BackupsDir),
		appVersion: appVersion,
		now:        time.Now,
	}
}

// Dir returns the directory holding all backups.
func (m *Manager) Dir() string {
	return m.backupDir
}

// Create snapshots every stored dashboard key.
// Returns the backup name (timestamp format) on success.
func (m *Manager) Create(ctx context.Context) (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	// Milliseconds keep names unique for back-to-back backups.
	now := m.now()
	name := fmt.Sprintf("%s_%03d", now.Format("2006-01-02_150405"), now.Nanosecond()/1e6)
	backupPath := filepath.Join(m.backupDir, name)
	if fsutil.Exists(backupPath) {
		return "", fmt.Errorf("backup already exists: %s", name)
	}
	if err := os.MkdirAll(backupPath, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup: %w", err)
	}

	var copied []string
	stats := make(map[string]int)

	for _, key := range storage.Keys {
		value, ok, err := m.kv.Get(ctx, key)
		if err != nil {
			_ = os.RemoveAll(backupPath)
			return "", fmt.Errorf("failed to read %s: %w", key, err)
		}
		if !ok {
			continue
		}
		if err := fsutil.WriteFileAtomic(filepath.Join(backupPath, fileForKey(key)), []byte(value), 0600); err != nil {
			_ = os.RemoveAll(backupPath)
			return "", fmt.Errorf("failed to copy %s: %w", key, err)
		}
		copied = append(copied, key)

		if key == storage.KeyTasks {
			var tasks []storage.Task
			if json.Unmarshal([]byte(value), &tasks) == nil {
				stats["tasks"] = len(tasks)
				for _, t := range tasks {
					if t.Completed {
						stats["completed"]++
					}
				}
			}
		}
	}

	manifest := Manifest{
		Version:    ManifestVersion,
		CreatedAt:  now,
		AppVersion: m.appVersion,
		Keys:       copied,
		Stats:      stats,
	}

	if err := writeJSON(filepath.Join(backupPath, ManifestFile), manifest); err != nil {
		_ = os.RemoveAll(backupPath)
		return "", fmt.Errorf("failed to write manifest: %w", err)
	}

	return name, nil
}

// List returns all available backups, sorted by creation time (newest first).
func (m *Manager) List() ([]BackupInfo, error) {
	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []BackupInfo{}, nil
		}
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []BackupInfo
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		info, err := m.info(entry.Name())
		if err != nil {
			continue // Skip invalid backups
		}
		backups = append(backups, *info)
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].CreatedAt.After(backups[j].CreatedAt)
	})

	return backups, nil
}

// Restore writes a backup's values back into the store. Every value is
// checked before anything is written, and a safety backup of the current
// state is taken first.
func (m *Manager) Restore(ctx context.Context, name string) error {
	if err := validateBackupName(name); err != nil {
		return err
	}

	backupPath := filepath.Join(m.backupDir, name)
	if !fsutil.Exists(backupPath) {
		return fmt.Errorf("backup not found: %s", name)
	}

	var manifest Manifest
	if err := readJSON(filepath.Join(backupPath, ManifestFile), &manifest); err != nil {
		// Fall back to every known key if the manifest is missing
		manifest.Keys = storage.Keys
	}

	values := make(map[string]string)
	for _, key := range manifest.Keys {
		data, ok, err := fsutil.ReadFileIfExists(filepath.Join(backupPath, fileForKey(key)))
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", key, err)
		}
		if !ok {
			continue
		}
		if err := validateValue(key, data); err != nil {
			return fmt.Errorf("backup %s has an invalid %s: %w", name, key, err)
		}
		values[key] = string(data)
	}

	safetyName, err := m.Create(ctx)
	if err != nil {
		return fmt.Errorf("failed to create safety backup: %w", err)
	}

	for _, key := range storage.Keys {
		value, ok := values[key]
		if !ok {
			continue
		}
		if err := m.kv.Set(ctx, key, value); err != nil {
			return fmt.Errorf("failed to restore %s (safety backup: %s): %w", key, safetyName, err)
		}
	}

	return nil
}

// RestoreLatest restores from the most recent backup and returns its name.
func (m *Manager) RestoreLatest(ctx context.Context) (string, error) {
	backups, err := m.List()
	if err != nil {
		return "", err
	}
	if len(backups) == 0 {
		return "", fmt.Errorf("no backups available")
	}
	return backups[0].Name, m.Restore(ctx, backups[0].Name)
}

// Delete removes a specific backup.
func (m *Manager) Delete(name string) error {
	if err := validateBackupName(name); err != nil {
		return err
	}

	backupPath := filepath.Join(m.backupDir, name)
	if !fsutil.Exists(backupPath) {
		return fmt.Errorf("backup not found: %s", name)
	}

	return os.RemoveAll(backupPath)
}

// Prune removes old backups, keeping only the N most recent.
func (m *Manager) Prune(keepCount int) (int, error) {
	if keepCount < 0 {
		return 0, fmt.Errorf("keepCount must be non-negative")
	}

	backups, err := m.List()
	if err != nil {
		return 0, err
	}
	if len(backups) <= keepCount {
		return 0, nil
	}

	deleted := 0
	for _, b := range backups[keepCount:] {
		if err := m.Delete(b.Name); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}

// GetBackup returns information about a specific backup.
func (m *Manager) GetBackup(name string) (*BackupInfo, error) {
	if err := validateBackupName(name); err != nil {
		return nil, err
	}
	if !fsutil.Exists(filepath.Join(m.backupDir, name)) {
		return nil, fmt.Errorf("backup not found: %s", name)
	}
	return m.info(name)
}

func (m *Manager) info(name string) (*BackupInfo, error) {
	backupPath := filepath.Join(m.backupDir, name)

	var manifest Manifest
	if err := readJSON(filepath.Join(backupPath, ManifestFile), &manifest); err != nil {
		createdAt, parseErr := parseBackupName(name)
		if parseErr != nil {
			return nil, fmt.Errorf("invalid backup: %s", name)
		}
		manifest.CreatedAt = createdAt
		manifest.Stats = make(map[string]int)
	}

	return &BackupInfo{
		Name:      name,
		Path:      backupPath,
		CreatedAt: manifest.CreatedAt,
		Stats:     manifest.Stats,
	}, nil
}

// Helper functions

// fileForKey maps a store key to its file inside a backup.
func fileForKey(key string) string {
	return key + ".json"
}

// validateValue rejects values the dashboard could not load.
func validateValue(key string, data []byte) error {
	switch key {
	case storage.KeyTasks:
		var tasks []storage.Task
		return json.Unmarshal(data, &tasks)
	case storage.KeyData:
		var doc map[string]json.RawMessage
		if err := json.Unmarshal(data, &doc); err != nil {
			return err
		}
		if doc == nil {
			return fmt.Errorf("expected a JSON object")
		}
		return nil
	case storage.KeyTheme:
		v := strings.Trim(strings.TrimSpace(string(data)), `"`)
		if !storage.Theme(v).Valid() {
			return fmt.Errorf("unknown theme %q", v)
		}
		return nil
	default:
		return fmt.Errorf("unknown key %q", key)
	}
}

func validateBackupName(name string) error {
	if name == "" {
		return fmt.Errorf("backup name is required")
	}
	if name != filepath.Base(name) || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid backup name: %q", name)
	}
	if _, err := parseBackupName(name); err != nil {
		return fmt.Errorf("invalid backup name: %q", name)
	}
	return nil
}

// writeJSON writes a value as JSON to a file.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(path, data, 0600)
}

// readJSON reads JSON from a file into a value.
func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// parseBackupName parses a backup directory name into a timestamp.
// Supports both 2006-01-02_150405 and 2006-01-02_150405_XXX.
func parseBackupName(name string) (time.Time, error) {
	if len(name) == 21 {
		baseTime, err := time.Parse("2006-01-02_150405", name[:17])
		if err != nil {
			return time.Time{}, err
		}
		if name[17] != '_' {
			return time.Time{}, fmt.Errorf("invalid backup format")
		}
		ms, err := strconv.Atoi(name[18:])
		if err != nil || ms < 0 || ms > 999 {
			return time.Time{}, fmt.Errorf("invalid milliseconds")
		}
		return baseTime.Add(time.Duration(ms) * time.Millisecond), nil
	}

	return time.Parse("2006-01-02_150405", name)
}
