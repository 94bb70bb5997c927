package testutil

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

// CreateTestFile creates a test file with content
func CreateTestFile(t *testing.T, path string, content []byte) {
	t.Helper()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create directory for test file: %v", err)
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("Failed to create test file %s: %v", path, err)
	}
}

// CreateMediaFiles writes fake word audio, one audio clip per example and
// an image for word into dir, named the way the asset generators name them.
func CreateMediaFiles(t *testing.T, dir, word string, examples int) {
	t.Helper()

	CreateTestFile(t, filepath.Join(dir, word+"_word.mp3"), []byte{0xFF, 0xFB, 0x90, 0x00})
	for i := 1; i <= examples; i++ {
		CreateTestFile(t, filepath.Join(dir, word+"_example_"+strconv.Itoa(i)+".mp3"), []byte{0xFF, 0xFB, 0x90, byte(i)})
	}
	CreateTestFile(t, filepath.Join(dir, word+"_image.jpg"), []byte{0xFF, 0xD8, 0xFF, 0xE0})
}

// AssertFileExists checks if a file exists
func AssertFileExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("Expected file to exist: %s", path)
	}
}

// AssertFileNotExists checks if a file does not exist
func AssertFileNotExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); err == nil {
		t.Errorf("Expected file to not exist: %s", path)
	}
}
