package ports

// ArtifactInfo describes a finished output container.
type ArtifactInfo struct {
	Width       int
	Height      int
	HasVideo    bool
	HasAudio    bool
	AudioTracks int
	DurationMs  int
	VideoCodec  string // sample entry type, e.g. "avc1"
}

// ArtifactInspector reads stream facts back out of a produced file.
type ArtifactInspector interface {
	Inspect(path string) (ArtifactInfo, error)
}
