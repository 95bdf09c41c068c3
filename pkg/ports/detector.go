package ports

import (
	"image"
)

// Region is an axis-aligned box in absolute source-frame pixels,
// clipped to [0, width] x [0, height].
type Region struct {
	X1, Y1, X2, Y2 int
}

// Width returns the horizontal extent of the region.
func (r Region) Width() int { return r.X2 - r.X1 }

// Height returns the vertical extent of the region.
func (r Region) Height() int { return r.Y2 - r.Y1 }

// Rect converts the region to an image.Rectangle.
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X1, r.Y1, r.X2, r.Y2)
}

// FaceDetector runs a single-shot face detection on a reference frame.
// The region is held fixed for the remainder of the clip; the design
// assumes a static camera framing and does not re-detect per frame.
type FaceDetector interface {
	// Detect returns the padded region of the most confident face, or
	// nil when no face is found. A nil region is not an error; it
	// selects the no-face layout.
	Detect(img image.Image) *Region
}
