package media

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"codeberg.org/snonux/wortkarte/internal"
	"codeberg.org/snonux/wortkarte/internal/profile"
)

// Filename suffixes of the generated media.
const (
	WordAudioSuffix = "word.mp3"
	ImageSuffix     = "image.jpg"
)

// ExampleAudioSuffix returns the suffix of the clip for the i-th example,
// counting from 1.
func ExampleAudioSuffix(i int) string {
	return fmt.Sprintf("example_%d.mp3", i)
}

// FileName is the base name of the media file of word with suffix.
func FileName(word, suffix string) string {
	return internal.SanitizeFilename(word) + "_" + suffix
}

// FilePath is where the media file of word with suffix lives in dir.
func FilePath(dir, word, suffix string) string {
	return filepath.Join(dir, FileName(word, suffix))
}

// Uploader stores a file in the flashcard application's media library and
// returns the name it was stored under.
type Uploader interface {
	StoreMediaFile(ctx context.Context, filename string, data []byte) (string, error)
}

// Files are the uploaded media names of one profile. An empty name means
// the file was missing or could not be uploaded.
type Files struct {
	AudioWord     string
	AudioExamples []string
	Image         string
}

// Store uploads media files from the files directory.
type Store struct {
	dir      string
	uploader Uploader
	log      *zap.Logger
}

func NewStore(dir string, uploader Uploader, log *zap.Logger) *Store {
	return &Store{dir: dir, uploader: uploader, log: log}
}

// Dir returns the files directory.
func (s *Store) Dir() string {
	return s.dir
}

// Store reads <dir>/<word>_<suffix> and uploads it. A missing file or a
// failed upload is logged and reported as ok == false.
func (s *Store) Store(ctx context.Context, word, suffix string) (string, bool) {
	path := FilePath(s.dir, word, suffix)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.log.Warn("Media file does not exist", zap.String("path", path))
		} else {
			s.log.Error("Failed to read media file", zap.String("path", path), zap.Error(err))
		}
		return "", false
	}

	name, err := s.uploader.StoreMediaFile(ctx, filepath.Base(path), data)
	if err != nil {
		s.log.Error("Failed to store media file", zap.String("file", filepath.Base(path)), zap.Error(err))
		return "", false
	}

	s.log.Info("Media file stored", zap.String("file", name))
	return name, true
}

// Collect uploads the word audio, one clip per example and the image of p.
// AudioExamples always has one entry per example.
func (s *Store) Collect(ctx context.Context, p *profile.WordProfile) Files {
	var files Files

	files.AudioWord, _ = s.Store(ctx, p.GermanWord, WordAudioSuffix)

	files.AudioExamples = make([]string, len(p.Examples))
	for i := range p.Examples {
		files.AudioExamples[i], _ = s.Store(ctx, p.GermanWord, ExampleAudioSuffix(i+1))
	}

	files.Image, _ = s.Store(ctx, p.GermanWord, ImageSuffix)
	return files
}
