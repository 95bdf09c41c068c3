package ports

import (
	"context"
)

// EncodeParams configures a single encoding session.
type EncodeParams struct {
	Width  int
	Height int
	FPS    float64

	// AudioSource is the path of the original clip whose audio track
	// is remuxed into the output. Empty means no audio track is
	// written at all.
	AudioSource string

	OutputPath string

	CRF          int    // x264 quality target
	Preset       string // x264 speed/quality preset
	AudioBitrate string // e.g. "192k"
}

// Encoder launches encoding sessions.
type Encoder interface {
	Start(ctx context.Context, params EncodeParams) (EncodeSession, error)
}

// EncodeSession owns one child encoding process and the write end of
// its frame pipe for the life of a single pipeline run.
type EncodeSession interface {
	// WriteFrame submits exactly one frame of raw RGB24 bytes
	// (len = Width*Height*3). The call blocks while the child's input
	// buffer is full; that blocking is the pipeline's backpressure. A
	// write after the child closed its input fails with a broken-pipe
	// error and is fatal to the run.
	WriteFrame(buf []byte) error

	// Close ends the input stream, waits for the child to exit and
	// validates that the artifact exists and is non-empty.
	Close() error

	// Abort terminates the child without validating output. Idempotent.
	Abort()
}
