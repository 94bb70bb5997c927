// Package archive moves the files directory aside so the next run starts
// with an empty one.
package archive

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// ErrNotExist is returned when there is no directory to archive.
var ErrNotExist = errors.New("directory does not exist")

// Dir moves dir to <parent>/archive/<name>-<timestamp>, where name is the
// base name of dir, and returns the new path.
func Dir(dir string) (string, error) {
	return dirAt(dir, time.Now())
}

func dirAt(dir string, now time.Time) (string, error) {
	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrNotExist, dir)
	}
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("not a directory: %s", dir)
	}

	archiveDir := filepath.Join(filepath.Dir(dir), "archive")
	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	name := filepath.Base(dir)
	archivePath := filepath.Join(archiveDir, fmt.Sprintf("%s-%s", name, now.Format("20060102-150405")))

	// Two archives within the same second get microseconds appended.
	if _, err := os.Stat(archivePath); err == nil {
		archivePath = filepath.Join(archiveDir, fmt.Sprintf("%s-%s", name, now.Format("20060102-150405.000000")))
	}

	if err := os.Rename(dir, archivePath); err != nil {
		return "", fmt.Errorf("failed to archive %s: %w", dir, err)
	}
	return archivePath, nil
}
