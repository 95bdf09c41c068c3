package pigodetect

import (
	"testing"
)

func TestPadRegion(t *testing.T) {
	tests := []struct {
		name           string
		cx, cy, size   int
		pad            float64
		width, height  int
		x1, y1, x2, y2 int
	}{
		{
			name: "centered face",
			cx:   960, cy: 540, size: 100, pad: 1.5,
			width: 1920, height: 1080,
			x1: 810, y1: 390, x2: 1110, y2: 690,
		},
		{
			name: "clipped at origin",
			cx:   50, cy: 40, size: 100, pad: 1.5,
			width: 1920, height: 1080,
			x1: 0, y1: 0, x2: 200, y2: 190,
		},
		{
			name: "clipped at far edge",
			cx:   1900, cy: 1060, size: 100, pad: 1.5,
			width: 1920, height: 1080,
			x1: 1750, y1: 910, x2: 1920, y2: 1080,
		},
		{
			name: "pad larger than frame",
			cx:   320, cy: 180, size: 400, pad: 1.5,
			width: 640, height: 360,
			x1: 0, y1: 0, x2: 640, y2: 360,
		},
	}

	for _, tt := range tests {
		got := PadRegion(tt.cx, tt.cy, tt.size, tt.pad, tt.width, tt.height)
		if got.X1 != tt.x1 || got.Y1 != tt.y1 || got.X2 != tt.x2 || got.Y2 != tt.y2 {
			t.Errorf("%s: expected (%d,%d)-(%d,%d), got (%d,%d)-(%d,%d)",
				tt.name, tt.x1, tt.y1, tt.x2, tt.y2, got.X1, got.Y1, got.X2, got.Y2)
		}
	}
}

func TestPadRegion_NeverExceedsBounds(t *testing.T) {
	r := PadRegion(-50, 5000, 300, 2.0, 1280, 720)
	if r.X1 < 0 || r.Y1 < 0 || r.X2 > 1280 || r.Y2 > 720 {
		t.Errorf("region escapes frame bounds: %+v", r)
	}
	if r.X1 > r.X2 || r.Y1 > r.Y2 {
		t.Errorf("region is inverted: %+v", r)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi, want int
	}{
		{5, 0, 10, 5},
		{-3, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 0, 0},
	}
	for _, tt := range tests {
		if got := clamp(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("clamp(%d, %d, %d): expected %d, got %d", tt.v, tt.lo, tt.hi, tt.want, got)
		}
	}
}
