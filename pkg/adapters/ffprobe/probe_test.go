package ffprobe

import (
	"errors"
	"testing"
)

func TestParseRational(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"30/1", 30},
		{"30000/1001", 29.97002997002997},
		{"60", 60},
		{"23.976", 23.976},
		{"0/0", 0},
		{"30/0", 0},
		{"", 0},
		{" 25/1 ", 25},
		{"abc", 0},
		{"abc/def", 0},
	}

	for _, tt := range tests {
		if got := parseRational(tt.input); got != tt.want {
			t.Errorf("parseRational(%q): expected %v, got %v", tt.input, tt.want, got)
		}
	}
}

func TestParseDurationMs(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"3.004000", 3004},
		{"180", 180000},
		{"0.5", 500},
		{"", 0},
		{"N/A", 0},
		{"-1", 0},
	}

	for _, tt := range tests {
		if got := parseDurationMs(tt.input); got != tt.want {
			t.Errorf("parseDurationMs(%q): expected %d, got %d", tt.input, tt.want, got)
		}
	}
}

func TestParseReport(t *testing.T) {
	data := []byte(`{
		"streams": [
			{"codec_type": "video", "width": 1920, "height": 1080, "r_frame_rate": "60/1", "avg_frame_rate": "60/1"},
			{"codec_type": "audio"}
		],
		"format": {"duration": "3.004000"}
	}`)

	info, err := parseReport(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Width != 1920 || info.Height != 1080 {
		t.Errorf("dimensions: expected 1920x1080, got %dx%d", info.Width, info.Height)
	}
	if info.FPS != 60 {
		t.Errorf("fps: expected 60, got %v", info.FPS)
	}
	if !info.HasAudio {
		t.Error("expected audio stream to be detected")
	}
	if info.DurationMs != 3004 {
		t.Errorf("duration: expected 3004ms, got %d", info.DurationMs)
	}
}

// A report without a format section still probes; duration is simply
// unknown.
func TestParseReport_NoFormatSection(t *testing.T) {
	data := []byte(`{"streams": [{"codec_type": "video", "width": 640, "height": 360, "r_frame_rate": "30/1"}]}`)

	info, err := parseReport(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.DurationMs != 0 {
		t.Errorf("duration: expected 0, got %d", info.DurationMs)
	}
}

func TestParseReport_NoAudio(t *testing.T) {
	data := []byte(`{"streams": [{"codec_type": "video", "width": 1280, "height": 720, "r_frame_rate": "30/1"}]}`)

	info, err := parseReport(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.HasAudio {
		t.Error("audio must never be assumed")
	}
}

// r_frame_rate wins; avg_frame_rate is the fallback; DefaultFPS is the
// last resort.
func TestParseReport_FrameRateFallback(t *testing.T) {
	tests := []struct {
		name string
		data string
		want float64
	}{
		{
			"r_frame_rate degenerate",
			`{"streams": [{"codec_type": "video", "width": 640, "height": 360, "r_frame_rate": "0/0", "avg_frame_rate": "24/1"}]}`,
			24,
		},
		{
			"both missing",
			`{"streams": [{"codec_type": "video", "width": 640, "height": 360}]}`,
			DefaultFPS,
		},
	}

	for _, tt := range tests {
		info, err := parseReport([]byte(tt.data))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.name, err)
		}
		if info.FPS != tt.want {
			t.Errorf("%s: fps: expected %v, got %v", tt.name, tt.want, info.FPS)
		}
	}
}

func TestParseReport_Failures(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"no streams", `{"streams": []}`},
		{"audio only", `{"streams": [{"codec_type": "audio"}]}`},
		{"no dimensions", `{"streams": [{"codec_type": "video", "r_frame_rate": "30/1"}]}`},
		{"not json", `garbage`},
	}

	for _, tt := range tests {
		if _, err := parseReport([]byte(tt.data)); !errors.Is(err, ErrProbeFailed) {
			t.Errorf("%s: expected ErrProbeFailed, got %v", tt.name, err)
		}
	}
}
