// Package ports defines interfaces for external dependencies.
package ports

import (
	"context"
)

// SourceInfo describes a probed source clip.
// It is derived once per pipeline run and never mutated afterwards.
type SourceInfo struct {
	Path       string
	FPS        float64 // always > 0
	HasAudio   bool
	Width      int // source frame width in pixels
	Height     int // source frame height in pixels
	DurationMs int // 0 when the container reports no duration
}

// Prober inspects a media file and reports stream facts.
type Prober interface {
	// Probe reads the container metadata of the file at path.
	// It fails when the file has no readable video stream or the
	// metadata tool cannot be invoked.
	Probe(ctx context.Context, path string) (SourceInfo, error)
}
