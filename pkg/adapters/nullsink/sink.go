// Package nullsink provides a no-op debug sink.
package nullsink

import (
	"image"

	"github.com/user/clipshift/pkg/ports"
)

// Sink discards all debug output.
type Sink struct{}

// New creates a new Sink.
func New() *Sink {
	return &Sink{}
}

// Enabled returns false; callers may skip preparing debug data.
func (s *Sink) Enabled() bool {
	return false
}

// SaveReferenceFrame does nothing.
func (s *Sink) SaveReferenceFrame(img image.Image) error {
	return nil
}

// SaveRegionJSON does nothing.
func (s *Sink) SaveRegionJSON(data []byte) error {
	return nil
}

// SaveComposedFrame does nothing.
func (s *Sink) SaveComposedFrame(index int, img image.Image) error {
	return nil
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
