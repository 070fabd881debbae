// Package output encodes rendered frames to image files.
package output

import (
	"bufio"
	"errors"
	"fmt"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/df07/go-pathtracer/pkg/renderer"
)

// ErrUnsupportedFormat is returned for file extensions no encoder handles
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Format identifies an image encoding
type Format string

const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
	PPM  Format = "ppm" // ASCII P3
)

// JPEGQuality is used for .jpg/.jpeg output
const JPEGQuality = 95

// FormatFromPath picks the encoder from the file extension
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "bmp":
		return BMP, nil
	case "tif", "tiff":
		return TIFF, nil
	case "ppm":
		return PPM, nil
	}
	return "", fmt.Errorf("%q: %w", ext, ErrUnsupportedFormat)
}

// Encode writes frame to w in the given format
func Encode(w io.Writer, frame *renderer.Frame, format Format) error {
	switch format {
	case PNG:
		return png.Encode(w, frame.Image())
	case JPEG:
		return jpeg.Encode(w, frame.Image(), &jpeg.Options{Quality: JPEGQuality})
	case BMP:
		return bmp.Encode(w, frame.Image())
	case TIFF:
		return tiff.Encode(w, frame.Image(), &tiff.Options{Compression: tiff.Deflate})
	case PPM:
		return encodePPM(w, frame)
	}
	return fmt.Errorf("%q: %w", format, ErrUnsupportedFormat)
}

// Save writes frame to path, creating parent directories as needed
func Save(frame *renderer.Frame, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := Encode(file, frame, format); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return file.Close()
}

// encodePPM writes the plain (ASCII) PPM variant, one pixel per line
func encodePPM(w io.Writer, frame *renderer.Frame) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "P3\n%d %d\n255\n", frame.Width, frame.Height)
	for _, p := range frame.Pixels {
		fmt.Fprintf(bw, "%d %d %d\n", p.R, p.G, p.B)
	}
	return bw.Flush()
}
