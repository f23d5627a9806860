package visualization

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Writer saves display buffers as image files under a directory.
type Writer struct {
	// dir is the output directory, created on first use
	dir string

	// format is "png" or "jpeg"
	format string
}

// NewWriter creates a writer for dir. An empty format selects PNG.
func NewWriter(dir, format string) (*Writer, error) {
	format = strings.ToLower(format)
	switch format {
	case "":
		format = "png"
	case "png", "jpeg":
	case "jpg":
		format = "jpeg"
	default:
		return nil, fmt.Errorf("unsupported output format: %s (must be png or jpeg)", format)
	}
	return &Writer{dir: dir, format: format}, nil
}

// Ext returns the file extension used for written images.
func (w *Writer) Ext() string {
	if w.format == "jpeg" {
		return ".jpg"
	}
	return ".png"
}

// SaveDisplay writes d as <dir>/<name><ext> and returns the path.
func (w *Writer) SaveDisplay(name string, d *Display) (string, error) {
	return w.SaveImage(name, d.Image())
}

// SaveImage writes img as <dir>/<name><ext> and returns the path.
func (w *Writer) SaveImage(name string, img image.Image) (string, error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(w.dir, name+w.Ext())
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	if err := w.encode(file, img); err != nil {
		return "", err
	}
	return path, nil
}

// encode writes img to wc and closes it. A close failure is reported
// since buffered bytes may not have reached the file.
func (w *Writer) encode(wc io.WriteCloser, img image.Image) (err error) {
	defer func() {
		if cerr := wc.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close image file: %w", cerr)
		}
	}()

	if w.format == "jpeg" {
		err = jpeg.Encode(wc, img, &jpeg.Options{Quality: 90})
	} else {
		err = png.Encode(wc, img)
	}
	if err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}
	return nil
}
