package overlay

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestNew_NothingToDraw(t *testing.T) {
	o, err := New(Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o != nil {
		t.Error("expected nil overlay when nothing is configured")
	}
}

func TestNew_LabelRequiresFont(t *testing.T) {
	if _, err := New(Options{Label: "streamer"}); err == nil {
		t.Error("expected error for a label without a font")
	}
}

// The font face loads once at construction; an unreadable font must
// fail there, not silently per frame.
func TestNew_MissingFont(t *testing.T) {
	if _, err := New(Options{Label: "streamer", FontPath: "/nonexistent/font.ttf"}); err == nil {
		t.Error("expected error for an unreadable font file")
	}
}

func TestNew_MissingLogo(t *testing.T) {
	if _, err := New(Options{LogoPath: "/nonexistent/logo.png"}); err == nil {
		t.Error("expected error for a missing logo file")
	}
}

func writeTestLogo(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 200, G: 40, B: 40, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "logo.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create logo: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode logo: %v", err)
	}
	return path
}

func TestApply_LogoOnly(t *testing.T) {
	o, err := New(Options{LogoPath: writeTestLogo(t, 96, 48)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o == nil {
		t.Fatal("expected an overlay")
	}

	frame := image.NewNRGBA(image.Rect(0, 0, 270, 480))
	for y := 0; y < 480; y++ {
		for x := 0; x < 270; x++ {
			frame.SetNRGBA(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
	out := o.Apply(frame)
	if out.Bounds() != frame.Bounds() {
		t.Errorf("apply changed frame dimensions: %v", out.Bounds())
	}
	// The badge darkens at least one pixel near the bottom-left corner.
	changed := false
	for y := 480 - DefaultMargin - 60; y < 480-DefaultMargin; y++ {
		for x := DefaultMargin; x < DefaultMargin+60; x++ {
			if out.NRGBAAt(x, y) != frame.NRGBAAt(x, y) {
				changed = true
			}
		}
	}
	if !changed {
		t.Error("expected the badge to alter the frame")
	}
}

func TestLoadScaledLogo_PreservesAspect(t *testing.T) {
	logo, err := loadScaledLogo(writeTestLogo(t, 100, 50), 48)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b := logo.Bounds()
	if b.Dy() != 48 {
		t.Errorf("height: expected 48, got %d", b.Dy())
	}
	if b.Dx() != 96 {
		t.Errorf("width: expected 96, got %d", b.Dx())
	}
}
