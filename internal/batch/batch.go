// Package batch reads word lists for processing several words in one run.
package batch

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Entry is one word of a batch file with an optional proficiency level
// that overrides the configured one.
type Entry struct {
	Word  string
	Level string
}

// ReadFile reads entries from filename.
// Supported line formats:
// - Word only: "Haus"
// - With level: "Haus | B1"
// Empty lines and lines starting with '#' are skipped.
func ReadFile(filename string) ([]Entry, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	defer f.Close()

	entries, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file %s: %w", filename, err)
	}
	return entries, nil
}

// Parse reads entries from r, one per line.
func Parse(r io.Reader) ([]Entry, error) {
	var entries []Entry

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		word, level, hasLevel := strings.Cut(line, "|")
		word = strings.TrimSpace(word)
		level = strings.TrimSpace(level)

		if word == "" {
			return nil, fmt.Errorf("line %d: missing word", lineNo)
		}
		if hasLevel && level == "" {
			return nil, fmt.Errorf("line %d: empty level after '|'", lineNo)
		}

		entries = append(entries, Entry{Word: word, Level: level})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
