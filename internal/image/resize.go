package image

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"os"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// ResizeFile decodes the image at src, scales it to size x size and writes
// it to dst as a JPEG. Transparent areas become white.
func ResizeFile(src, dst string, size int) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open image: %w", err)
	}
	defer in.Close()

	img, format, err := image.Decode(in)
	if err != nil {
		return fmt.Errorf("failed to decode image: %w", err)
	}

	resized := Resize(img, size)

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if err := jpeg.Encode(out, resized, &jpeg.Options{Quality: 90}); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("failed to encode %s image as jpeg: %w", format, err)
	}
	return out.Close()
}

// Resize scales img to a size x size RGBA image on a white background.
func Resize(img image.Image, size int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}
