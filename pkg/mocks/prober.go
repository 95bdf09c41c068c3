// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"

	"github.com/user/clipshift/pkg/ports"
)

// Prober is a mock implementation of ports.Prober.
type Prober struct {
	ProbeFunc func(ctx context.Context, path string) (ports.SourceInfo, error)

	// Recorded calls for verification
	ProbeCalls []string
}

func (m *Prober) Probe(ctx context.Context, path string) (ports.SourceInfo, error) {
	m.ProbeCalls = append(m.ProbeCalls, path)
	if m.ProbeFunc != nil {
		return m.ProbeFunc(ctx, path)
	}
	return ports.SourceInfo{Path: path, FPS: 30.0, Width: 1920, Height: 1080}, nil
}

// Ensure Prober implements ports.Prober
var _ ports.Prober = (*Prober)(nil)
