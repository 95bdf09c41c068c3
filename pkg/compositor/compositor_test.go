package compositor

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/user/clipshift/pkg/ports"
)

// testLayout keeps composition tests fast while preserving the default
// panel ratios.
func testLayout() Layout {
	return Layout{
		OutputWidth:     108,
		OutputHeight:    192,
		FacePanelRatio:  0.35,
		ClearPanelRatio: 0.65,
		BlurBarRatio:    0.175,
		BlurSigma:       3,
	}
}

func testFrame(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 7 % 256),
				G: uint8(y * 13 % 256),
				B: uint8((x + y) % 256),
				A: 255,
			})
		}
	}
	return img
}

func TestDefaultLayout_PanelHeights(t *testing.T) {
	l := DefaultLayout()

	if l.OutputWidth != 1080 || l.OutputHeight != 1920 {
		t.Errorf("output: expected 1080x1920, got %dx%d", l.OutputWidth, l.OutputHeight)
	}
	if got := l.FacePanelHeight(); got != 672 {
		t.Errorf("face panel height: expected 672, got %d", got)
	}
	if got := l.GamePanelHeight(); got != 1248 {
		t.Errorf("game panel height: expected 1248, got %d", got)
	}
	if got := l.TopBarHeight(); got != 336 {
		t.Errorf("top bar height: expected 336, got %d", got)
	}
	if got := l.ClearPanelHeight(); got != 1248 {
		t.Errorf("clear panel height: expected 1248, got %d", got)
	}
	if got := l.BottomBarHeight(); got != 336 {
		t.Errorf("bottom bar height: expected 336, got %d", got)
	}
}

// Panel heights must always tile the output exactly, whatever the
// ratios round to.
func TestLayout_HeightsSumToOutput(t *testing.T) {
	layouts := []Layout{
		DefaultLayout(),
		testLayout(),
		{OutputWidth: 720, OutputHeight: 1283, FacePanelRatio: 0.333, ClearPanelRatio: 0.61, BlurBarRatio: 0.195},
		{OutputWidth: 1080, OutputHeight: 1921, FacePanelRatio: 0.35, ClearPanelRatio: 0.65, BlurBarRatio: 0.175},
	}

	for i, l := range layouts {
		if sum := l.FacePanelHeight() + l.GamePanelHeight(); sum != l.OutputHeight {
			t.Errorf("layout %d: face split panels sum to %d, want %d", i, sum, l.OutputHeight)
		}
		if sum := l.TopBarHeight() + l.ClearPanelHeight() + l.BottomBarHeight(); sum != l.OutputHeight {
			t.Errorf("layout %d: no-face panels sum to %d, want %d", i, sum, l.OutputHeight)
		}
	}
}

func TestCompositor_FaceSplit(t *testing.T) {
	l := testLayout()

	if c := New(l, &ports.Region{X1: 0, Y1: 0, X2: 50, Y2: 50}); !c.FaceSplit() {
		t.Error("expected face-split mode with a region")
	}
	if c := New(l, nil); c.FaceSplit() {
		t.Error("expected no-face mode without a region")
	}
}

func TestCompose_ExactOutputDimensions(t *testing.T) {
	l := testLayout()
	region := &ports.Region{X1: 10, Y1: 10, X2: 60, Y2: 60}

	sources := []struct {
		name string
		w, h int
	}{
		{"16:9", 640, 360},
		{"720p", 1280, 720},
		{"4:3", 320, 240},
		{"vertical", 360, 640},
		{"odd", 853, 479},
	}

	for _, src := range sources {
		frame := testFrame(src.w, src.h)

		for _, mode := range []struct {
			name string
			face *ports.Region
		}{
			{"face_split", region},
			{"blurred", nil},
		} {
			c := New(l, mode.face)
			out, err := c.Compose(frame)
			if err != nil {
				t.Errorf("%s/%s: unexpected error: %v", src.name, mode.name, err)
				continue
			}
			b := out.Bounds()
			if b.Dx() != l.OutputWidth || b.Dy() != l.OutputHeight {
				t.Errorf("%s/%s: got %dx%d, want %dx%d",
					src.name, mode.name, b.Dx(), b.Dy(), l.OutputWidth, l.OutputHeight)
			}
		}
	}
}

// The same source frame and region must always yield byte-identical
// compositions.
func TestCompose_Deterministic(t *testing.T) {
	l := testLayout()
	frame := testFrame(640, 360)

	for _, face := range []*ports.Region{
		{X1: 20, Y1: 20, X2: 120, Y2: 120},
		nil,
	} {
		c := New(l, face)
		first, err := c.Compose(frame)
		if err != nil {
			t.Fatalf("compose: %v", err)
		}
		second, err := c.Compose(frame)
		if err != nil {
			t.Fatalf("compose: %v", err)
		}
		if !bytes.Equal(first.Pix, second.Pix) {
			t.Errorf("face=%v: repeated composition differs", face)
		}
	}
}

// A region that ends up empty after clipping to the frame must still
// produce a full-size output.
func TestCompose_DegenerateFaceRegion(t *testing.T) {
	l := testLayout()
	frame := testFrame(640, 360)

	c := New(l, &ports.Region{X1: 640, Y1: 360, X2: 700, Y2: 420})
	out, err := c.Compose(frame)
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	b := out.Bounds()
	if b.Dx() != l.OutputWidth || b.Dy() != l.OutputHeight {
		t.Errorf("got %dx%d, want %dx%d", b.Dx(), b.Dy(), l.OutputWidth, l.OutputHeight)
	}
}

func TestCenterColumns(t *testing.T) {
	frame := testFrame(640, 360)

	got := centerColumns(frame)
	b := got.Bounds()
	if b.Dx() != 320 {
		t.Errorf("center crop width: expected 320, got %d", b.Dx())
	}
	if b.Dy() != 360 {
		t.Errorf("center crop height: expected 360, got %d", b.Dy())
	}

	// Column [160, 480) of the source maps to column 0 of the crop.
	want := frame.NRGBAAt(160, 0)
	if c := got.NRGBAAt(0, 0); c != want {
		t.Errorf("crop origin: expected %v, got %v", want, c)
	}
}

func TestFitAndCenterCrop(t *testing.T) {
	tests := []struct {
		name             string
		srcW, srcH       int
		width, height    int
	}{
		{"wide crop into square", 200, 100, 50, 50},
		{"tall crop into wide", 100, 200, 80, 40},
		{"exact fit", 60, 30, 60, 30},
		{"upscale", 10, 10, 108, 67},
		{"rounding", 97, 53, 108, 67},
	}

	for _, tt := range tests {
		got := fitAndCenterCrop(testFrame(tt.srcW, tt.srcH), tt.width, tt.height)
		b := got.Bounds()
		if b.Dx() != tt.width || b.Dy() != tt.height {
			t.Errorf("%s: got %dx%d, want %dx%d", tt.name, b.Dx(), b.Dy(), tt.width, tt.height)
		}
	}
}

func TestFitAndCenterCrop_EmptySource(t *testing.T) {
	got := fitAndCenterCrop(image.NewNRGBA(image.Rect(0, 0, 0, 0)), 40, 20)
	b := got.Bounds()
	if b.Dx() != 40 || b.Dy() != 20 {
		t.Errorf("got %dx%d, want 40x20", b.Dx(), b.Dy())
	}
}

func TestPackRGB24(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 1, G: 2, B: 3, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{R: 4, G: 5, B: 6, A: 255})
	img.SetNRGBA(0, 1, color.NRGBA{R: 7, G: 8, B: 9, A: 255})
	img.SetNRGBA(1, 1, color.NRGBA{R: 10, G: 11, B: 12, A: 255})

	got := PackRGB24(img)
	want := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	if !bytes.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestPackRGB24_Length(t *testing.T) {
	l := testLayout()
	c := New(l, nil)
	out, err := c.Compose(testFrame(640, 360))
	if err != nil {
		t.Fatalf("compose: %v", err)
	}

	got := PackRGB24(out)
	if want := l.OutputWidth * l.OutputHeight * 3; len(got) != want {
		t.Errorf("packed length: expected %d, got %d", want, len(got))
	}
}
