// Package capture writes screenshots of the rendered frame.
package capture

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Screenshot writes RGBA frames as PNG files named
// <prefix>_<timestamp>.png in its output directory.
// It is safe for concurrent use.
type Screenshot struct {
	outputDir string
	prefix    string
	now       func() time.Time

	mu   sync.Mutex
	last string
	seq  int
}

// New creates a screenshot writer. An empty dir means the working directory.
func New(outputDir, prefix string) *Screenshot {
	if prefix == "" {
		prefix = "screenshot"
	}
	return &Screenshot{
		outputDir: outputDir,
		prefix:    prefix,
		now:       time.Now,
	}
}

// CaptureFromPixels saves a frame read back from OpenGL.
// pixels must be RGBA with width*height*4 bytes, bottom row first; the
// image is flipped so the file is top row first.
func (s *Screenshot) CaptureFromPixels(pixels []byte, width, height int) (string, error) {
	if width <= 0 || height <= 0 {
		return "", fmt.Errorf("invalid frame size %dx%d", width, height)
	}
	if len(pixels) != width*height*4 {
		return "", fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		srcOffset := (height - 1 - y) * rowSize
		dstOffset := y * img.Stride
		copy(img.Pix[dstOffset:dstOffset+rowSize], pixels[srcOffset:srcOffset+rowSize])
	}

	return s.save(img)
}

func (s *Screenshot) save(img image.Image) (string, error) {
	// Create output directory if needed
	if s.outputDir != "" {
		if err := os.MkdirAll(s.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := s.nextFilename()
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}

	if err := png.Encode(file, img); err != nil {
		file.Close()
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("closing file: %w", err)
	}

	return filename, nil
}

// nextFilename appends a counter when several shots share a timestamp.
func (s *Screenshot) nextFilename() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	stamp := s.now().Format("2006-01-02_15-04-05")
	name := fmt.Sprintf("%s_%s", s.prefix, stamp)
	if stamp == s.last {
		s.seq++
		name = fmt.Sprintf("%s_%d", name, s.seq)
	} else {
		s.last = stamp
		s.seq = 0
	}
	return filepath.Join(s.outputDir, name+".png")
}
