package mocks

import (
	"context"

	"github.com/user/clipshift/pkg/ports"
)

// Encoder is a mock implementation of ports.Encoder.
type Encoder struct {
	StartFunc func(ctx context.Context, params ports.EncodeParams) (ports.EncodeSession, error)

	// Session is returned by Start when StartFunc is nil.
	Session *EncodeSession

	// Recorded calls for verification
	StartCalls []ports.EncodeParams
}

func (m *Encoder) Start(ctx context.Context, params ports.EncodeParams) (ports.EncodeSession, error) {
	m.StartCalls = append(m.StartCalls, params)
	if m.StartFunc != nil {
		return m.StartFunc(ctx, params)
	}
	if m.Session != nil {
		return m.Session, nil
	}
	return &EncodeSession{}, nil
}

// EncodeSession is a mock implementation of ports.EncodeSession.
type EncodeSession struct {
	WriteFrameFunc func(buf []byte) error
	CloseFunc      func() error
	AbortFunc      func()

	// FailAtWrite makes the Nth WriteFrame call (1-based) return
	// FailWith. Zero disables the scripted failure.
	FailAtWrite int
	FailWith    error

	// Recorded calls for verification
	WriteCount int
	FrameSizes []int
	CloseCount int
	AbortCount int
}

func (m *EncodeSession) WriteFrame(buf []byte) error {
	m.WriteCount++
	m.FrameSizes = append(m.FrameSizes, len(buf))
	if m.FailAtWrite > 0 && m.WriteCount >= m.FailAtWrite {
		return m.FailWith
	}
	if m.WriteFrameFunc != nil {
		return m.WriteFrameFunc(buf)
	}
	return nil
}

func (m *EncodeSession) Close() error {
	m.CloseCount++
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

func (m *EncodeSession) Abort() {
	m.AbortCount++
	if m.AbortFunc != nil {
		m.AbortFunc()
	}
}

// Ensure mocks implement the ports interfaces
var _ ports.Encoder = (*Encoder)(nil)
var _ ports.EncodeSession = (*EncodeSession)(nil)
