// Package fsutil holds small filesystem helpers shared by the key-value
// store and the backup manager.
package fsutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// WriteFileAtomic replaces path with data. The bytes go to a temp file in the
// same directory first, get fsynced, and are renamed into place, so readers
// never observe a half-written value.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()

	fail := func(step string, err error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%s %s: %w", step, tmpPath, err)
	}

	if err := tmp.Chmod(perm); err != nil {
		return fail("chmod", err)
	}
	if _, err := tmp.Write(data); err != nil {
		return fail("write", err)
	}
	if err := tmp.Sync(); err != nil {
		return fail("fsync", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close %s: %w", tmpPath, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		// Windows refuses to rename over an existing file.
		if runtime.GOOS == "windows" && Exists(path) && os.Remove(path) == nil {
			if err := os.Rename(tmpPath, path); err == nil {
				syncDir(dir)
				return nil
			}
		}
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename %s -> %s: %w", tmpPath, path, err)
	}

	syncDir(dir)
	return nil
}

// ReadFileIfExists returns the file contents and true, or nil and false when
// the file does not exist. Other read errors are returned as-is.
func ReadFileIfExists(path string) ([]byte, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

// BestEffortBackup copies the current contents of path to path+".bak".
// Failures are ignored; the caller's write proceeds either way.
func BestEffortBackup(path string, perm os.FileMode) {
	data, ok, err := ReadFileIfExists(path)
	if err != nil || !ok {
		return
	}
	_ = WriteFileAtomic(BackupPath(path), data, perm)
}

// BackupPath returns the sibling ".bak" path for path.
func BackupPath(path string) string {
	return path + ".bak"
}

// Exists reports whether path exists. Stat errors other than "not exist"
// count as existing so callers never clobber a file they could not inspect.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !errors.Is(err, os.ErrNotExist)
}

func syncDir(dir string) {
	f, err := os.Open(dir)
	if err != nil {
		return
	}
	defer f.Close()
	_ = f.Sync()
}
