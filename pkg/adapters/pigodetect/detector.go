// Package pigodetect implements single-shot face detection with the
// pigo cascade classifier.
package pigodetect

import (
	"fmt"
	"image"
	"os"

	pigo "github.com/esimov/pigo/core"

	"github.com/user/clipshift/pkg/ports"
)

const (
	// DefaultMinQuality rejects weak cascade responses. Webcam faces
	// in gaming overlays are often small and partially turned, so the
	// threshold stays moderate.
	DefaultMinQuality = 5.0

	// DefaultPadFactor expands the detection to a generous square-ish
	// crop: half-extent = PadFactor x detection height. The padding
	// absorbs webcam jitter without re-detecting every frame.
	DefaultPadFactor = 1.5

	clusterIoU  = 0.2
	minFaceSize = 20
)

// Options configures the detector.
type Options struct {
	// CascadePath points at the binary pigo cascade file. When empty,
	// FindCascade is consulted.
	CascadePath string

	// MinQuality is the minimum cascade quality; zero means
	// DefaultMinQuality.
	MinQuality float32

	// PadFactor is the crop expansion factor; zero means
	// DefaultPadFactor.
	PadFactor float64
}

// Detector implements ports.FaceDetector on a pigo classifier.
type Detector struct {
	classifier *pigo.Pigo
	minQuality float32
	padFactor  float64
	logger     ports.Logger
}

// New loads the cascade and creates a Detector.
func New(opts Options, logger ports.Logger) (*Detector, error) {
	path := opts.CascadePath
	if path == "" {
		var err error
		path, err = FindCascade()
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cascade %s: %w", path, err)
	}
	classifier, err := pigo.NewPigo().Unpack(data)
	if err != nil {
		return nil, fmt.Errorf("unpack cascade %s: %w", path, err)
	}

	minQuality := opts.MinQuality
	if minQuality == 0 {
		minQuality = DefaultMinQuality
	}
	padFactor := opts.PadFactor
	if padFactor == 0 {
		padFactor = DefaultPadFactor
	}

	return &Detector{
		classifier: classifier,
		minQuality: minQuality,
		padFactor:  padFactor,
		logger:     logger.WithComponent("pigodetect"),
	}, nil
}

// FindCascade locates the cascade file.
// Priority: PIGO_CASCADE environment variable, then common locations.
func FindCascade() (string, error) {
	if envPath := os.Getenv("PIGO_CASCADE"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
		return "", fmt.Errorf("pigodetect: PIGO_CASCADE %s not found", envPath)
	}

	candidates := []string{
		"facefinder",
		"cascade/facefinder",
		"/usr/share/pigo/facefinder",
		"/usr/local/share/pigo/facefinder",
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("pigodetect: cascade file not found (set PIGO_CASCADE)")
}

// Detect runs the cascade once over the reference frame and returns
// the padded region of the best detection, or nil when no face scores
// above the quality threshold.
func (d *Detector) Detect(img image.Image) *ports.Region {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil
	}

	maxSize := w
	if h > maxSize {
		maxSize = h
	}

	params := pigo.CascadeParams{
		MinSize:     minFaceSize,
		MaxSize:     maxSize,
		ShiftFactor: 0.1,
		ScaleFactor: 1.1,
		ImageParams: pigo.ImageParams{
			Pixels: pigo.RgbToGrayscale(img),
			Rows:   h,
			Cols:   w,
			Dim:    w,
		},
	}

	dets := d.classifier.RunCascade(params, 0.0)
	dets = d.classifier.ClusterDetections(dets, clusterIoU)

	best, found := bestDetection(dets, d.minQuality)
	if !found {
		d.logger.Debug("No face in reference frame")
		return nil
	}

	region := PadRegion(best.Col, best.Row, best.Scale, d.padFactor, w, h)
	d.logger.Debug("Face at center=(%d,%d) size=%d q=%.1f, region=%v",
		best.Col, best.Row, best.Scale, best.Q, *region)
	return region
}

// bestDetection picks the highest-quality detection above the
// threshold. Multi-face scenes are not split.
func bestDetection(dets []pigo.Detection, minQuality float32) (pigo.Detection, bool) {
	var best pigo.Detection
	found := false
	for _, det := range dets {
		if det.Q < minQuality {
			continue
		}
		if !found || det.Q > best.Q {
			best = det
			found = true
		}
	}
	return best, found
}

// PadRegion expands a detection of the given size around its center
// (cx, cy) and clips the result to the frame bounds.
func PadRegion(cx, cy, size int, padFactor float64, width, height int) *ports.Region {
	half := int(float64(size) * padFactor)
	return &ports.Region{
		X1: clamp(cx-half, 0, width),
		Y1: clamp(cy-half, 0, height),
		X2: clamp(cx+half, 0, width),
		Y2: clamp(cy+half, 0, height),
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Ensure Detector implements ports.FaceDetector
var _ ports.FaceDetector = (*Detector)(nil)
