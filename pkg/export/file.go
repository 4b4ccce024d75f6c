package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrExists is returned when the destination exists and overwrite is off
var ErrExists = errors.New("output file already exists")

// writeAtomic lets fill populate a temporary file next to path, then moves
// it into place. A failed fill leaves path untouched. Without overwrite the
// temporary file is hard-linked to path, which fails if path appeared in the
// meantime.
func writeAtomic(path string, overwrite bool, fill func(tmp string) error) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrExists, path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to check output file: %w", err)
		}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmp.Name()
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := fill(tmpPath); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to set file mode: %w", err)
	}

	if !overwrite {
		return publishExclusive(tmpPath, path)
	}

	// Atomic rename
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}

// publishExclusive moves tmpPath to path unless path exists
func publishExclusive(tmpPath, path string) error {
	defer os.Remove(tmpPath)

	err := os.Link(tmpPath, path)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, os.ErrExist):
		return fmt.Errorf("%w: %s", ErrExists, path)
	}

	// Filesystems without hard links: check again and rename
	if _, statErr := os.Lstat(path); statErr == nil {
		return fmt.Errorf("%w: %s", ErrExists, path)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}
	return nil
}
