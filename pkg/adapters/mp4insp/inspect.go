// Package mp4insp reads stream facts back out of finished MP4
// artifacts.
package mp4insp

import (
	"fmt"
	"io"
	"os"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/user/clipshift/pkg/ports"
)

// Inspector implements ports.ArtifactInspector using mp4ff.
type Inspector struct{}

// New creates a new Inspector.
func New() *Inspector {
	return &Inspector{}
}

// Inspect parses the MP4 at path.
func (i *Inspector) Inspect(path string) (ports.ArtifactInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return ports.ArtifactInfo{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return InspectReader(f)
}

// InspectReader parses MP4 data from an io.ReadSeeker.
func InspectReader(reader io.ReadSeeker) (ports.ArtifactInfo, error) {
	mp4File, err := mp4.DecodeFile(reader)
	if err != nil {
		return ports.ArtifactInfo{}, fmt.Errorf("decode mp4: %w", err)
	}

	moov := mp4File.Moov
	if moov == nil && mp4File.Init != nil {
		moov = mp4File.Init.Moov
	}
	if moov == nil {
		return ports.ArtifactInfo{}, fmt.Errorf("no moov box")
	}

	var info ports.ArtifactInfo
	if moov.Mvhd != nil && moov.Mvhd.Timescale > 0 {
		info.DurationMs = int(moov.Mvhd.Duration * 1000 / uint64(moov.Mvhd.Timescale))
	}

	for _, trak := range moov.Traks {
		if trak.Mdia == nil || trak.Mdia.Hdlr == nil {
			continue
		}
		switch trak.Mdia.Hdlr.HandlerType {
		case "vide":
			info.HasVideo = true
			if trak.Tkhd != nil {
				// Tkhd dimensions are 16.16 fixed point.
				info.Width = int(trak.Tkhd.Width >> 16)
				info.Height = int(trak.Tkhd.Height >> 16)
			}
			info.VideoCodec = videoSampleEntryType(trak)
		case "soun":
			info.HasAudio = true
			info.AudioTracks++
		}
	}

	if !info.HasVideo {
		return info, fmt.Errorf("no video track")
	}
	return info, nil
}

// videoSampleEntryType returns the stsd sample entry type of the
// video track, e.g. "avc1".
func videoSampleEntryType(trak *mp4.TrakBox) string {
	if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil || trak.Mdia.Minf.Stbl.Stsd == nil {
		return ""
	}
	for _, child := range trak.Mdia.Minf.Stbl.Stsd.Children {
		if entry, ok := child.(*mp4.VisualSampleEntryBox); ok {
			return entry.Type()
		}
	}
	return ""
}

// Ensure Inspector implements ports.ArtifactInspector
var _ ports.ArtifactInspector = (*Inspector)(nil)
