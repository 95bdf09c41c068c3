package mocks

import (
	"github.com/user/clipshift/pkg/ports"
)

// ArtifactInspector is a mock implementation of ports.ArtifactInspector.
type ArtifactInspector struct {
	InspectFunc func(path string) (ports.ArtifactInfo, error)

	// Info is returned by Inspect when InspectFunc is nil.
	Info ports.ArtifactInfo

	// Recorded calls for verification
	InspectCalls []string
}

func (m *ArtifactInspector) Inspect(path string) (ports.ArtifactInfo, error) {
	m.InspectCalls = append(m.InspectCalls, path)
	if m.InspectFunc != nil {
		return m.InspectFunc(path)
	}
	return m.Info, nil
}

// Ensure ArtifactInspector implements ports.ArtifactInspector
var _ ports.ArtifactInspector = (*ArtifactInspector)(nil)
