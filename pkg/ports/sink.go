package ports

import (
	"image"
)

// DebugSink abstracts debug output for intermediate pipeline results.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveReferenceFrame saves the frame used for face detection.
	SaveReferenceFrame(img image.Image) error

	// SaveRegionJSON saves the detection outcome as JSON.
	SaveRegionJSON(data []byte) error

	// SaveComposedFrame saves a composed output frame.
	SaveComposedFrame(index int, img image.Image) error
}
