// Package overlay draws the optional branding stamp onto composed
// frames: a small watermark badge and the broadcaster label. It is a
// composable post-pass and takes no part in the core geometry
// contract.
package overlay

import (
	"fmt"
	"image"
	stddraw "image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
)

// Options configures the stamp.
type Options struct {
	// Label is the text drawn in the badge, typically the broadcaster
	// name. Empty disables the text.
	Label string

	// FontPath points at a TTF file. Required when Label is set.
	FontPath string

	// FontSize in points; zero means DefaultFontSize.
	FontSize float64

	// LogoPath points at an optional PNG/JPEG logo scaled into the
	// badge.
	LogoPath string

	// Margin is the distance from the frame edges in pixels; zero
	// means DefaultMargin.
	Margin int
}

const (
	// DefaultFontSize is the label point size.
	DefaultFontSize = 36

	// DefaultMargin keeps the badge clear of player UI chrome.
	DefaultMargin = 48

	badgePadding = 18
	badgeRadius  = 12
	badgeAlpha   = 0.55
	logoHeight   = 48
)

// Overlay stamps frames with a prepared badge. The font face and the
// scaled logo are loaded once here, not per frame.
type Overlay struct {
	label  string
	face   font.Face
	margin int
	logo   *image.RGBA // pre-scaled, nil when absent
}

// New prepares an Overlay. It returns nil (and no error) when the
// options select nothing to draw.
func New(opts Options) (*Overlay, error) {
	if opts.Label == "" && opts.LogoPath == "" {
		return nil, nil
	}
	if opts.Label != "" && opts.FontPath == "" {
		return nil, fmt.Errorf("overlay: label %q requires a font path", opts.Label)
	}

	o := &Overlay{
		label:  opts.Label,
		margin: opts.Margin,
	}
	if o.margin == 0 {
		o.margin = DefaultMargin
	}

	if opts.Label != "" {
		fontSize := opts.FontSize
		if fontSize == 0 {
			fontSize = DefaultFontSize
		}
		face, err := gg.LoadFontFace(opts.FontPath, fontSize)
		if err != nil {
			return nil, fmt.Errorf("overlay: load font %s: %w", opts.FontPath, err)
		}
		o.face = face
	}

	if opts.LogoPath != "" {
		logo, err := loadScaledLogo(opts.LogoPath, logoHeight)
		if err != nil {
			return nil, err
		}
		o.logo = logo
	}
	return o, nil
}

// Apply draws the stamp into the bottom-left corner of the frame and
// returns a new frame of identical dimensions.
func (o *Overlay) Apply(frame *image.NRGBA) *image.NRGBA {
	dc := gg.NewContextForImage(frame)
	h := float64(frame.Bounds().Dy())

	textW := 0.0
	textH := 0.0
	if o.label != "" {
		dc.SetFontFace(o.face)
		textW, textH = dc.MeasureString(o.label)
	}

	logoW := 0.0
	if o.logo != nil {
		logoW = float64(o.logo.Bounds().Dx()) + badgePadding
	}

	badgeW := textW + logoW + 2*badgePadding
	badgeH := textH + 2*badgePadding
	if lh := float64(logoHeight) + 2*badgePadding; o.logo != nil && lh > badgeH {
		badgeH = lh
	}
	x := float64(o.margin)
	y := h - float64(o.margin) - badgeH

	dc.SetRGBA(0, 0, 0, badgeAlpha)
	dc.DrawRoundedRectangle(x, y, badgeW, badgeH, badgeRadius)
	dc.Fill()

	cursor := x + badgePadding
	if o.logo != nil {
		logoY := y + (badgeH-float64(o.logo.Bounds().Dy()))/2
		dc.DrawImage(o.logo, int(cursor), int(logoY))
		cursor += logoW
	}
	if o.label != "" && textH > 0 {
		dc.SetRGBA(1, 1, 1, 1)
		dc.DrawStringAnchored(o.label, cursor, y+badgeH/2, 0, 0.35)
	}

	out := image.NewNRGBA(frame.Bounds())
	stddraw.Draw(out, out.Bounds(), dc.Image(), frame.Bounds().Min, stddraw.Src)
	return out
}

// loadScaledLogo decodes the logo image and scales it to the badge
// height preserving aspect ratio.
func loadScaledLogo(path string, height int) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("overlay: open logo: %w", err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("overlay: decode logo: %w", err)
	}

	b := src.Bounds()
	if b.Dy() == 0 {
		return nil, fmt.Errorf("overlay: logo has no height")
	}
	width := b.Dx() * height / b.Dy()
	if width < 1 {
		width = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)
	return dst, nil
}
