package mocks

import (
	"image"
	"sync"

	"github.com/user/clipshift/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink.
type DebugSink struct {
	mu sync.RWMutex

	enabled bool

	ReferenceFrame image.Image
	RegionJSON     []byte
	ComposedFrames map[int]image.Image
}

// NewDebugSink creates a new mock DebugSink.
func NewDebugSink(enabled bool) *DebugSink {
	return &DebugSink{
		enabled:        enabled,
		ComposedFrames: make(map[int]image.Image),
	}
}

func (m *DebugSink) Enabled() bool {
	return m.enabled
}

func (m *DebugSink) SaveReferenceFrame(img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReferenceFrame = img
	return nil
}

func (m *DebugSink) SaveRegionJSON(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RegionJSON = data
	return nil
}

func (m *DebugSink) SaveComposedFrame(index int, img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ComposedFrames[index] = img
	return nil
}

var _ ports.DebugSink = (*DebugSink)(nil)
