// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"path/filepath"

	"github.com/user/clipshift/pkg/ports"
)

// Sink saves debug output to files under a base directory.
type Sink struct {
	baseDir string
	fs      ports.FileSystem
}

// New creates a new Sink.
func New(baseDir string, fs ports.FileSystem) *Sink {
	return &Sink{baseDir: baseDir, fs: fs}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveReferenceFrame saves the frame used for face detection.
func (s *Sink) SaveReferenceFrame(img image.Image) error {
	return s.savePNG(filepath.Join(s.baseDir, "reference.png"), img)
}

// SaveRegionJSON saves the detection outcome as JSON.
func (s *Sink) SaveRegionJSON(data []byte) error {
	return s.fs.WriteFile(filepath.Join(s.baseDir, "region.json"), data)
}

// SaveComposedFrame saves a composed output frame.
func (s *Sink) SaveComposedFrame(index int, img image.Image) error {
	dir := filepath.Join(s.baseDir, "frames")
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	return s.savePNG(filepath.Join(dir, fmt.Sprintf("frame-%04d.png", index)), img)
}

func (s *Sink) savePNG(path string, img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return s.fs.WriteFile(path, buf.Bytes())
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
