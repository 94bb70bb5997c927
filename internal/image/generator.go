package image

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"codeberg.org/snonux/wortkarte/internal/media"
	"codeberg.org/snonux/wortkarte/internal/profile"
)

// CardSize is the edge length in pixels of every flashcard picture.
const CardSize = 256

// ImageGenerator defines the interface for image generation providers
type ImageGenerator interface {
	// Generate creates one image for prompt and returns a short-lived URL to it
	Generate(ctx context.Context, prompt string) (string, error)

	// Name returns the name of the provider
	Name() string
}

// GenerationError represents an error reported by an image provider
type GenerationError struct {
	Provider string
	Message  string
}

func (e *GenerationError) Error() string {
	return e.Provider + ": " + e.Message
}

// Illustrator turns a word profile into <word>_image.jpg in the files directory.
type Illustrator struct {
	generator  ImageGenerator
	downloader *Downloader
	dir        string
	log        *zap.Logger
}

func NewIllustrator(generator ImageGenerator, downloader *Downloader, dir string, log *zap.Logger) *Illustrator {
	return &Illustrator{
		generator:  generator,
		downloader: downloader,
		dir:        dir,
		log:        log,
	}
}

// Illustrate generates a picture for p, downloads it to a temporary file,
// scales it to CardSize and saves it as a JPEG. The temporary file is
// always removed.
func (il *Illustrator) Illustrate(ctx context.Context, p *profile.WordProfile) (string, error) {
	prompt := createEducationalPrompt(p)
	il.log.Debug("Image prompt", zap.String("word", p.GermanWord), zap.String("prompt", prompt))

	url, err := il.generator.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("image generation failed: %w", err)
	}

	if err := os.MkdirAll(il.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create files directory: %w", err)
	}

	tmp, err := os.CreateTemp(il.dir, "temp_image_*")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	if err := il.downloader.Download(ctx, url, tmpPath); err != nil {
		return "", err
	}

	outputPath := media.FilePath(il.dir, p.GermanWord, media.ImageSuffix)
	if err := ResizeFile(tmpPath, outputPath, CardSize); err != nil {
		return "", err
	}

	il.log.Info("Resized image saved", zap.String("path", outputPath))
	return outputPath, nil
}
