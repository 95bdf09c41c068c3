// Package pipeline sequences probing, face detection, frame
// composition and encoding for one clip at a time.
//
// A run walks Idle -> Probed -> DetectionDone -> Encoding ->
// Finalizing and ends Succeeded or Failed. All failures stay contained
// inside the run; nothing is retried here. Retry policy belongs to the
// calling scheduler, which may fall back to publishing the unprocessed
// original.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/user/clipshift/pkg/compositor"
	"github.com/user/clipshift/pkg/ports"
)

// Config carries the per-installation settings of the pipeline.
type Config struct {
	Layout compositor.Layout

	CRF          int
	Preset       string
	AudioBitrate string

	// ProgressInterval is the number of frames between progress log
	// lines. Zero disables progress logging.
	ProgressInterval int
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Layout:           compositor.DefaultLayout(),
		CRF:              23,
		Preset:           "medium",
		AudioBitrate:     "192k",
		ProgressInterval: 100,
	}
}

// FramePass transforms a composed frame before it reaches the
// encoder. Passes run in order and must preserve frame dimensions.
type FramePass interface {
	Apply(frame *image.NRGBA) *image.NRGBA
}

// Job identifies one clip to process.
type Job struct {
	InputPath  string
	OutputPath string

	// Label is advisory metadata (e.g. broadcaster name). It is
	// surfaced in logs and consumed by branding passes; the geometry
	// contract does not depend on it.
	Label string
}

// Processor drives single pipeline runs. Runs are independent; the
// caller may execute them one at a time or in parallel across
// Processor values, but a single run's steps are strictly ordered.
type Processor struct {
	prober    ports.Prober
	frames    ports.FrameSource
	detector  ports.FaceDetector
	encoder   ports.Encoder
	inspector ports.ArtifactInspector
	fs        ports.FileSystem
	sink      ports.DebugSink
	logger    ports.Logger
	cfg       Config
	passes    []FramePass
}

// New creates a Processor.
func New(
	prober ports.Prober,
	frames ports.FrameSource,
	detector ports.FaceDetector,
	encoder ports.Encoder,
	inspector ports.ArtifactInspector,
	fs ports.FileSystem,
	sink ports.DebugSink,
	logger ports.Logger,
	cfg Config,
	passes ...FramePass,
) *Processor {
	return &Processor{
		prober:    prober,
		frames:    frames,
		detector:  detector,
		encoder:   encoder,
		inspector: inspector,
		fs:        fs,
		sink:      sink,
		logger:    logger,
		cfg:       cfg,
		passes:    passes,
	}
}

// Process is the boundary contract exposed to the scheduling
// collaborator. It returns true only if the output exists and is
// non-empty after the run; every failure kind yields false and
// nothing escapes across this boundary.
func (p *Processor) Process(inputPath, outputPath, label string) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("Processing failed: %s", fmt.Sprintf("panic: %v", r))
			ok = false
		}
	}()

	err := p.Run(context.Background(), Job{
		InputPath:  inputPath,
		OutputPath: outputPath,
		Label:      label,
	})
	if err != nil {
		p.logger.Error("Processing failed: %s", err)
		return false
	}
	return true
}

// Run executes one pipeline run and reports the failure kind, if any.
// Every exit path releases the decode handle and the child process
// exactly once.
func (p *Processor) Run(ctx context.Context, job Job) error {
	p.logger.Info("Processing %s -> %s", job.InputPath, job.OutputPath)
	if job.Label != "" {
		p.logger.Debug("Label: %s", job.Label)
	}

	// Idle -> Probed
	exists, err := p.fs.Exists(job.InputPath)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMissingInput, job.InputPath, err)
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrMissingInput, job.InputPath)
	}

	info, err := p.prober.Probe(ctx, job.InputPath)
	if err != nil {
		return err
	}

	// Probed -> DetectionDone
	stream, err := p.frames.Open(info)
	if err != nil {
		return fmt.Errorf("open decode stream: %w", err)
	}
	defer stream.Close()

	region, err := p.detectOnce(stream)
	if err != nil {
		return err
	}
	comp := compositor.New(p.cfg.Layout, region)
	if comp.FaceSplit() {
		p.logger.Info("Face detected, using split layout")
	} else {
		p.logger.Info("No face detected, using blurred layout")
	}

	// DetectionDone -> Encoding
	params := ports.EncodeParams{
		Width:        p.cfg.Layout.OutputWidth,
		Height:       p.cfg.Layout.OutputHeight,
		FPS:          info.FPS,
		OutputPath:   job.OutputPath,
		CRF:          p.cfg.CRF,
		Preset:       p.cfg.Preset,
		AudioBitrate: p.cfg.AudioBitrate,
	}
	if info.HasAudio {
		params.AudioSource = job.InputPath
	}

	session, err := p.encoder.Start(ctx, params)
	if err != nil {
		return err
	}

	// Encoding: sequential read/compose/write loop. A loop failure
	// stops early and proceeds to finalizing with the error retained.
	frameCount, loopErr := p.encodeLoop(ctx, stream, comp, session)

	// Finalizing -> {Succeeded, Failed}
	if loopErr != nil {
		if errors.Is(loopErr, ctx.Err()) && ctx.Err() != nil {
			session.Abort()
		} else if cerr := session.Close(); cerr != nil {
			p.logger.Debug("Encoder close after failure: %s", cerr)
		}
		return loopErr
	}
	if err := session.Close(); err != nil {
		return err
	}

	p.inspectArtifact(job.OutputPath, info)
	p.logger.Info("Done: %s (%d frames)", job.OutputPath, frameCount)
	return nil
}

// detectOnce reads exactly one frame for detection and rewinds, so
// detection consumes nothing from the main pass.
func (p *Processor) detectOnce(stream ports.FrameStream) (*ports.Region, error) {
	first, err := stream.ReadFrame()
	if err != nil {
		if err == io.EOF {
			return nil, ErrEmptyVideo
		}
		return nil, fmt.Errorf("%w: %v", ErrEmptyVideo, err)
	}

	region := p.detector.Detect(first)

	if p.sink.Enabled() {
		p.sink.SaveReferenceFrame(first)
		if data, err := json.MarshalIndent(region, "", "  "); err == nil {
			p.sink.SaveRegionJSON(data)
		}
	}

	if err := stream.Rewind(); err != nil {
		return nil, fmt.Errorf("rewind: %w", err)
	}
	return region, nil
}

// encodeLoop drives frames from the decoder through the compositor
// into the encoder until end-of-stream or a write failure.
func (p *Processor) encodeLoop(
	ctx context.Context,
	stream ports.FrameStream,
	comp *compositor.Compositor,
	session ports.EncodeSession,
) (int, error) {
	frameCount := 0
	for {
		if err := ctx.Err(); err != nil {
			return frameCount, err
		}

		src, err := stream.ReadFrame()
		if err == io.EOF {
			return frameCount, nil
		}
		if err != nil {
			return frameCount, fmt.Errorf("read frame %d: %w", frameCount, err)
		}

		out, err := comp.Compose(src)
		if err != nil {
			return frameCount, fmt.Errorf("compose frame %d: %w", frameCount, err)
		}
		for _, pass := range p.passes {
			out = pass.Apply(out)
		}

		if p.sink.Enabled() && frameCount == 0 {
			p.sink.SaveComposedFrame(frameCount, out)
		}

		if err := session.WriteFrame(compositor.PackRGB24(out)); err != nil {
			return frameCount, err
		}

		frameCount++
		if p.cfg.ProgressInterval > 0 && frameCount%p.cfg.ProgressInterval == 0 {
			p.logger.Info("Processed %d frames...", frameCount)
		}
	}
}

// inspectArtifact reads stream facts back from the finished file and
// flags surprises. Inspection problems never fail a run that already
// produced a validated artifact.
func (p *Processor) inspectArtifact(path string, info ports.SourceInfo) {
	if p.inspector == nil {
		return
	}
	art, err := p.inspector.Inspect(path)
	if err != nil {
		p.logger.Debug("Artifact inspection: %s", err)
		return
	}
	p.logger.Debug("Artifact: %dx%d %s, audio=%t, %dms",
		art.Width, art.Height, art.VideoCodec, art.HasAudio, art.DurationMs)
	if art.HasAudio != info.HasAudio {
		p.logger.Warn("Artifact audio presence (%t) does not match source (%t)", art.HasAudio, info.HasAudio)
	}
	// Shortest-wins trimming means the artifact never outlasts the
	// source by more than container rounding.
	if info.DurationMs > 0 && art.DurationMs > info.DurationMs+1000 {
		p.logger.Warn("Artifact duration %dms exceeds source duration %dms", art.DurationMs, info.DurationMs)
	}
}
