// Package compositor converts horizontal source frames into the fixed
// vertical output composition.
//
// Two layout modes exist and are mutually exclusive for a clip:
// face-split (facecam panel over a zoomed gameplay strip) and no-face
// (clear gameplay strip between two blurred bars). The mode is chosen
// once per clip from the detection outcome.
package compositor

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"github.com/user/clipshift/pkg/ports"
)

// Layout holds the fixed geometry of the vertical composition.
// It is passed in explicitly so alternate ratios can be tested without
// touching pipeline code.
type Layout struct {
	OutputWidth  int
	OutputHeight int

	// FacePanelRatio is the share of the output height given to the
	// facecam panel in face-split mode.
	FacePanelRatio float64

	// ClearPanelRatio is the share given to the clear gameplay panel
	// in no-face mode.
	ClearPanelRatio float64

	// BlurBarRatio is the share of the top blurred bar in no-face
	// mode. The bottom bar consumes the exact remainder, which guards
	// against rounding drift.
	BlurBarRatio float64

	// BlurSigma controls the Gaussian blur strength of the bars. The
	// blur hides letterboxing; it does not convey content.
	BlurSigma float64
}

// DefaultLayout returns the Shorts-format layout: 1080x1920 with a
// 35/65 face split and 17.5% blur bars.
func DefaultLayout() Layout {
	return Layout{
		OutputWidth:     1080,
		OutputHeight:    1920,
		FacePanelRatio:  0.35,
		ClearPanelRatio: 0.65,
		BlurBarRatio:    0.175,
		BlurSigma:       30,
	}
}

// FacePanelHeight returns the facecam panel height in face-split mode.
func (l Layout) FacePanelHeight() int {
	return int(math.Round(float64(l.OutputHeight) * l.FacePanelRatio))
}

// GamePanelHeight returns the gameplay panel height in face-split
// mode. Panel heights always sum to OutputHeight exactly.
func (l Layout) GamePanelHeight() int {
	return l.OutputHeight - l.FacePanelHeight()
}

// ClearPanelHeight returns the clear gameplay panel height in no-face
// mode.
func (l Layout) ClearPanelHeight() int {
	return int(math.Round(float64(l.OutputHeight) * l.ClearPanelRatio))
}

// TopBarHeight returns the top blurred bar height in no-face mode.
func (l Layout) TopBarHeight() int {
	return int(math.Round(float64(l.OutputHeight) * l.BlurBarRatio))
}

// BottomBarHeight returns the bottom blurred bar height in no-face
// mode: the exact remainder of the output height.
func (l Layout) BottomBarHeight() int {
	return l.OutputHeight - l.TopBarHeight() - l.ClearPanelHeight()
}

// Compositor produces output frames from source frames. It is pure:
// the same source frame and face region always yield the same
// composition.
type Compositor struct {
	layout Layout
	face   *ports.Region // nil selects the no-face layout
}

// New creates a Compositor for one clip. The face region, when
// present, stays fixed for every frame of the clip.
func New(layout Layout, face *ports.Region) *Compositor {
	return &Compositor{layout: layout, face: face}
}

// FaceSplit reports whether the face-split layout is active.
func (c *Compositor) FaceSplit() bool {
	return c.face != nil
}

// Compose renders one source frame into one output frame of exactly
// OutputWidth x OutputHeight. A size mismatch is a contract violation
// and is reported before the frame can reach the encoder.
func (c *Compositor) Compose(src image.Image) (*image.NRGBA, error) {
	var out *image.NRGBA
	if c.face != nil {
		out = c.composeFaceSplit(src)
	} else {
		out = c.composeBlurred(src)
	}

	b := out.Bounds()
	if b.Dx() != c.layout.OutputWidth || b.Dy() != c.layout.OutputHeight {
		return nil, fmt.Errorf("composed frame is %dx%d, want %dx%d",
			b.Dx(), b.Dy(), c.layout.OutputWidth, c.layout.OutputHeight)
	}
	return out, nil
}

// composeFaceSplit stacks the facecam crop over the zoomed gameplay
// strip.
func (c *Compositor) composeFaceSplit(src image.Image) *image.NRGBA {
	l := c.layout
	topH := l.FacePanelHeight()
	bottomH := l.GamePanelHeight()

	faceRect := c.face.Rect().Intersect(src.Bounds())
	facePanel := fitAndCenterCrop(imaging.Crop(src, faceRect), l.OutputWidth, topH)

	gamePanel := imaging.Resize(centerColumns(src), l.OutputWidth, bottomH, imaging.Lanczos)

	out := image.NewNRGBA(image.Rect(0, 0, l.OutputWidth, l.OutputHeight))
	out = imaging.Paste(out, facePanel, image.Pt(0, 0))
	out = imaging.Paste(out, gamePanel, image.Pt(0, topH))
	return out
}

// composeBlurred stacks a blurred bar, the clear gameplay strip and a
// second blurred bar sized to consume the exact remainder.
func (c *Compositor) composeBlurred(src image.Image) *image.NRGBA {
	l := c.layout
	topBarH := l.TopBarHeight()
	clearH := l.ClearPanelHeight()
	bottomBarH := l.BottomBarHeight()

	blurred := imaging.Blur(imaging.Resize(src, l.OutputWidth, l.OutputHeight, imaging.Lanczos), l.BlurSigma)
	topBar := imaging.Crop(blurred, image.Rect(0, 0, l.OutputWidth, topBarH))
	bottomBar := imaging.Crop(blurred, image.Rect(0, l.OutputHeight-bottomBarH, l.OutputWidth, l.OutputHeight))

	clearPanel := imaging.Resize(centerColumns(src), l.OutputWidth, clearH, imaging.Lanczos)

	out := image.NewNRGBA(image.Rect(0, 0, l.OutputWidth, l.OutputHeight))
	out = imaging.Paste(out, topBar, image.Pt(0, 0))
	out = imaging.Paste(out, clearPanel, image.Pt(0, topBarH))
	out = imaging.Paste(out, bottomBar, image.Pt(0, topBarH+clearH))
	return out
}

// centerColumns extracts the horizontal center 50% of the source
// frame: columns [w/4, w-w/4). Foreground action is usually centered.
func centerColumns(src image.Image) *image.NRGBA {
	b := src.Bounds()
	w := b.Dx()
	x1 := w/2 - w/4
	x2 := w/2 + w/4
	return imaging.Crop(src, image.Rect(b.Min.X+x1, b.Min.Y, b.Min.X+x2, b.Max.Y))
}

// fitAndCenterCrop resizes preserving aspect ratio, then center-crops
// to exactly fill width x height. The crop truncates the relatively
// longer dimension: a wide crop fits height and loses width
// symmetrically, a tall crop fits width and loses height.
func fitAndCenterCrop(src *image.NRGBA, width, height int) *image.NRGBA {
	b := src.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return imaging.New(width, height, color.NRGBA{A: 255})
	}

	targetAspect := float64(width) / float64(height)
	cropAspect := float64(b.Dx()) / float64(b.Dy())

	var resized *image.NRGBA
	if cropAspect > targetAspect {
		resized = imaging.Resize(src, 0, height, imaging.Lanczos)
	} else {
		resized = imaging.Resize(src, width, 0, imaging.Lanczos)
	}

	cropped := imaging.CropCenter(resized, width, height)
	if cb := cropped.Bounds(); cb.Dx() != width || cb.Dy() != height {
		// Rounding in the aspect-preserving resize can leave the
		// intermediate a pixel short of the crop window.
		cropped = imaging.Resize(cropped, width, height, imaging.Lanczos)
	}
	return cropped
}
