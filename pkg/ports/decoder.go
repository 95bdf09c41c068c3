package ports

import (
	"image"
)

// FrameSource opens sequential access to the decoded frames of a clip.
type FrameSource interface {
	// Open starts a decode stream for the probed source.
	Open(info SourceInfo) (FrameStream, error)
}

// FrameStream yields decoded frames in presentation order.
type FrameStream interface {
	// ReadFrame returns the next frame at source resolution.
	// io.EOF signals a clean end-of-stream.
	ReadFrame() (*image.NRGBA, error)

	// Rewind repositions the stream at the first frame.
	Rewind() error

	// Close releases the decode handle. Safe to call more than once.
	Close() error
}
