package archive

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"codeberg.org/snonux/wortkarte/internal/testutil"
)

func TestDir(t *testing.T) {
	tmpDir := t.TempDir()
	filesDir := filepath.Join(tmpDir, "files")

	testutil.CreateTestFile(t, filepath.Join(filesDir, "Haus_profile.json"), []byte("{}"))
	testutil.CreateMediaFiles(t, filesDir, "Haus", 1)

	archived, err := Dir(filesDir)
	if err != nil {
		t.Fatalf("Dir failed: %v", err)
	}

	testutil.AssertFileNotExists(t, filesDir)

	if filepath.Dir(archived) != filepath.Join(tmpDir, "archive") {
		t.Errorf("Archived to %s, want a child of %s/archive", archived, tmpDir)
	}
	if !strings.HasPrefix(filepath.Base(archived), "files-") {
		t.Errorf("Archived directory name doesn't start with 'files-': %s", archived)
	}

	testutil.AssertFileExists(t, filepath.Join(archived, "Haus_profile.json"))
	testutil.AssertFileExists(t, filepath.Join(archived, "Haus_image.jpg"))
	testutil.AssertFileExists(t, filepath.Join(archived, "Haus_example_1.mp3"))
}

func TestDir_NonExistentDirectory(t *testing.T) {
	_, err := Dir(filepath.Join(t.TempDir(), "nonexistent"))
	if !errors.Is(err, ErrNotExist) {
		t.Errorf("Expected ErrNotExist, got: %v", err)
	}
}

func TestDir_NotADirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "files")
	testutil.CreateTestFile(t, path, []byte("x"))

	if _, err := Dir(path); err == nil {
		t.Error("Expected error for a regular file")
	}
}

func TestDir_SameSecond(t *testing.T) {
	tmpDir := t.TempDir()
	filesDir := filepath.Join(tmpDir, "files")
	now := time.Date(2026, 10, 18, 9, 30, 0, 123456000, time.UTC)

	var names []string
	for i := 0; i < 2; i++ {
		if err := os.MkdirAll(filesDir, 0755); err != nil {
			t.Fatalf("Failed to create files directory: %v", err)
		}

		archived, err := dirAt(filesDir, now)
		if err != nil {
			t.Fatalf("dirAt failed on iteration %d: %v", i, err)
		}
		names = append(names, filepath.Base(archived))
	}

	if names[0] != "files-20261018-093000" {
		t.Errorf("first archive = %s", names[0])
	}
	if names[1] != "files-20261018-093000.123456" {
		t.Errorf("second archive = %s", names[1])
	}
}
