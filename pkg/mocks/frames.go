package mocks

import (
	"image"
	"io"

	"github.com/user/clipshift/pkg/ports"
)

// FrameSource is a mock implementation of ports.FrameSource.
type FrameSource struct {
	OpenFunc func(info ports.SourceInfo) (ports.FrameStream, error)

	// Stream is returned by Open when OpenFunc is nil.
	Stream *FrameStream
}

func (m *FrameSource) Open(info ports.SourceInfo) (ports.FrameStream, error) {
	if m.OpenFunc != nil {
		return m.OpenFunc(info)
	}
	if m.Stream != nil {
		return m.Stream, nil
	}
	return &FrameStream{}, nil
}

// FrameStream is a scripted mock implementation of ports.FrameStream.
// It replays Frames from the start, again after every Rewind.
type FrameStream struct {
	// Frames are yielded in order; after the last one ReadFrame
	// returns io.EOF.
	Frames []*image.NRGBA

	ReadFrameFunc func() (*image.NRGBA, error)
	RewindFunc    func() error
	CloseFunc     func() error

	// Recorded calls for verification
	ReadCount   int
	RewindCount int
	CloseCount  int

	pos int
}

func (m *FrameStream) ReadFrame() (*image.NRGBA, error) {
	m.ReadCount++
	if m.ReadFrameFunc != nil {
		return m.ReadFrameFunc()
	}
	if m.pos >= len(m.Frames) {
		return nil, io.EOF
	}
	frame := m.Frames[m.pos]
	m.pos++
	return frame, nil
}

func (m *FrameStream) Rewind() error {
	m.RewindCount++
	if m.RewindFunc != nil {
		return m.RewindFunc()
	}
	m.pos = 0
	return nil
}

func (m *FrameStream) Close() error {
	m.CloseCount++
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// Ensure mocks implement the ports interfaces
var _ ports.FrameSource = (*FrameSource)(nil)
var _ ports.FrameStream = (*FrameStream)(nil)
