package mocks

import (
	"image"

	"github.com/user/clipshift/pkg/ports"
)

// FaceDetector is a mock implementation of ports.FaceDetector.
type FaceDetector struct {
	DetectFunc func(img image.Image) *ports.Region

	// Region is returned by Detect when DetectFunc is nil. A nil
	// Region selects the no-face layout.
	Region *ports.Region

	// Recorded calls for verification
	DetectCount int
}

func (m *FaceDetector) Detect(img image.Image) *ports.Region {
	m.DetectCount++
	if m.DetectFunc != nil {
		return m.DetectFunc(img)
	}
	return m.Region
}

// Ensure FaceDetector implements ports.FaceDetector
var _ ports.FaceDetector = (*FaceDetector)(nil)
