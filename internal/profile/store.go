package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"codeberg.org/snonux/wortkarte/internal"
)

const fileSuffix = "_profile.json"

// Path returns where the profile of word is stored inside dir.
func Path(dir, word string) string {
	return filepath.Join(dir, internal.SanitizeFilename(word)+fileSuffix)
}

// Save writes p to dir, replacing any earlier profile of the same word.
func Save(dir string, p *WordProfile) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create files directory: %w", err)
	}

	data, err := Encode(p)
	if err != nil {
		return "", fmt.Errorf("failed to encode profile: %w", err)
	}

	path := Path(dir, p.GermanWord)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write profile: %w", err)
	}
	return path, nil
}

// Load reads the stored profile of word from dir.
func Load(dir, word string) (*WordProfile, error) {
	return loadFile(Path(dir, word))
}

// LoadAll reads every stored profile in dir, sorted by German word.
func LoadAll(dir string) ([]*WordProfile, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*"+fileSuffix))
	if err != nil {
		return nil, err
	}

	profiles := make([]*WordProfile, 0, len(paths))
	for _, path := range paths {
		p, err := loadFile(path)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}

	sort.Slice(profiles, func(i, j int) bool {
		return strings.ToLower(profiles[i].GermanWord) < strings.ToLower(profiles[j].GermanWord)
	})
	return profiles, nil
}

func loadFile(path string) (*WordProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	var p WordProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, &DecodeError{Payload: string(data), Err: fmt.Errorf("%s: %w", path, err)}
	}
	return &p, nil
}
