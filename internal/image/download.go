package image

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// DefaultMaxSizeBytes limits how much of a generated image is downloaded.
const DefaultMaxSizeBytes = 10 * 1024 * 1024

// Downloader fetches generated images from their temporary URLs
type Downloader struct {
	client       *http.Client
	MaxSizeBytes int64 // Maximum file size to download (0 = no limit)
}

// NewDownloader creates a downloader using client, or a client with a
// sensible timeout when client is nil
func NewDownloader(client *http.Client) *Downloader {
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	return &Downloader{
		client:       client,
		MaxSizeBytes: DefaultMaxSizeBytes,
	}
}

// Download writes the body at url to outputPath. A partial file is removed on error.
func (d *Downloader) Download(ctx context.Context, url, outputPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create download request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	var reader io.Reader = resp.Body
	if d.MaxSizeBytes > 0 {
		// One byte over the limit tells an oversized image apart from an exact fit.
		reader = io.LimitReader(resp.Body, d.MaxSizeBytes+1)
	}

	written, err := io.Copy(file, reader)
	if err != nil {
		os.Remove(outputPath)
		return fmt.Errorf("failed to write file: %w", err)
	}

	if d.MaxSizeBytes > 0 && written > d.MaxSizeBytes {
		os.Remove(outputPath)
		return fmt.Errorf("image exceeds maximum size of %d bytes", d.MaxSizeBytes)
	}

	if written == 0 {
		os.Remove(outputPath)
		return fmt.Errorf("downloaded image is empty")
	}

	return nil
}
