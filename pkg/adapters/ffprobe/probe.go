// Package ffprobe implements source probing via the ffprobe tool.
package ffprobe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/user/clipshift/pkg/adapters/ffpath"
	"github.com/user/clipshift/pkg/ports"
)

// DefaultFPS is assumed when the container reports no frame rate at
// all. Audio presence is never defaulted.
const DefaultFPS = 30.0

// ErrProbeFailed is returned when the file has no readable video
// stream or ffprobe cannot be invoked.
var ErrProbeFailed = errors.New("ffprobe: probe failed")

// Prober implements ports.Prober using the ffprobe external process.
type Prober struct {
	// CustomPath optionally pins the ffprobe binary location.
	CustomPath string

	logger ports.Logger
}

// New creates a new Prober.
func New(logger ports.Logger) *Prober {
	return &Prober{logger: logger.WithComponent("ffprobe")}
}

// Probe inspects the file at path and reports frame rate, audio
// presence and frame dimensions.
func (p *Prober) Probe(ctx context.Context, path string) (ports.SourceInfo, error) {
	bin, err := ffpath.Find("ffprobe", p.CustomPath)
	if err != nil {
		return ports.SourceInfo{}, fmt.Errorf("%w: %v", ErrProbeFailed, err)
	}

	cmd := exec.CommandContext(ctx, bin,
		"-v", "error",
		"-show_streams",
		"-show_format",
		"-of", "json",
		path,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return ports.SourceInfo{}, fmt.Errorf("%w: %v: %s", ErrProbeFailed, err, strings.TrimSpace(stderr.String()))
	}

	info, err := parseReport(out)
	if err != nil {
		return ports.SourceInfo{}, err
	}
	info.Path = path

	p.logger.Debug("Probed %s: %.3f fps, %dx%d, audio=%t, %dms", path, info.FPS, info.Width, info.Height, info.HasAudio, info.DurationMs)
	return info, nil
}

// report mirrors the subset of ffprobe's JSON output we consume.
type report struct {
	Streams []stream `json:"streams"`
	Format  format   `json:"format"`
}

type stream struct {
	CodecType    string `json:"codec_type"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	RFrameRate   string `json:"r_frame_rate"`
	AvgFrameRate string `json:"avg_frame_rate"`
}

type format struct {
	Duration string `json:"duration"` // seconds, e.g. "3.004000"
}

// parseReport extracts SourceInfo from raw ffprobe JSON.
func parseReport(data []byte) (ports.SourceInfo, error) {
	var rep report
	if err := json.Unmarshal(data, &rep); err != nil {
		return ports.SourceInfo{}, fmt.Errorf("%w: parse output: %v", ErrProbeFailed, err)
	}

	var video *stream
	hasAudio := false
	for i := range rep.Streams {
		switch rep.Streams[i].CodecType {
		case "video":
			if video == nil {
				video = &rep.Streams[i]
			}
		case "audio":
			hasAudio = true
		}
	}
	if video == nil {
		return ports.SourceInfo{}, fmt.Errorf("%w: no video stream", ErrProbeFailed)
	}
	if video.Width <= 0 || video.Height <= 0 {
		return ports.SourceInfo{}, fmt.Errorf("%w: video stream reports no dimensions", ErrProbeFailed)
	}

	fps := parseRational(video.RFrameRate)
	if fps <= 0 {
		fps = parseRational(video.AvgFrameRate)
	}
	if fps <= 0 {
		fps = DefaultFPS
	}

	return ports.SourceInfo{
		FPS:        fps,
		HasAudio:   hasAudio,
		Width:      video.Width,
		Height:     video.Height,
		DurationMs: parseDurationMs(rep.Format.Duration),
	}, nil
}

// parseDurationMs resolves the format section's duration in seconds to
// milliseconds. Returns 0 for missing or unparseable values.
func parseDurationMs(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	secs, err := strconv.ParseFloat(s, 64)
	if err != nil || secs < 0 {
		return 0
	}
	return int(secs * 1000)
}

// parseRational resolves a frame rate given as "num/den" or a plain
// number to a float. Returns 0 for missing or degenerate values.
func parseRational(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" || s == "0/0" {
		return 0
	}
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err1 := strconv.ParseFloat(num, 64)
		d, err2 := strconv.ParseFloat(den, 64)
		if err1 != nil || err2 != nil || d == 0 {
			return 0
		}
		return n / d
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// Ensure Prober implements ports.Prober
var _ ports.Prober = (*Prober)(nil)
