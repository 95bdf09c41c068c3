// Package ffmpegenc owns the child encoding process of a pipeline run.
// Raw RGB24 frames go in over a blocking byte pipe; the finished MP4
// comes out at the destination path.
package ffmpegenc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"syscall"

	"github.com/user/clipshift/pkg/adapters/ffpath"
	"github.com/user/clipshift/pkg/ports"
)

// Encoder implements ports.Encoder using the ffmpeg external process.
type Encoder struct {
	// CustomPath optionally pins the ffmpeg binary location.
	CustomPath string

	logger ports.Logger
}

// New creates a new Encoder.
func New(logger ports.Logger) *Encoder {
	return &Encoder{logger: logger.WithComponent("ffmpegenc")}
}

// Start launches the encoding child. The raw-frame input declares
// pixel format, resolution and fps explicitly; when params.AudioSource
// is set, the original file is opened as a second input for
// audio-only extraction and the tracks are trimmed to the shortest.
func (e *Encoder) Start(ctx context.Context, params ports.EncodeParams) (ports.EncodeSession, error) {
	bin, err := ffpath.Find("ffmpeg", e.CustomPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncoderLaunch, err)
	}

	s := &session{
		params:    params,
		frameSize: params.Width * params.Height * 3,
		logger:    e.logger,
	}

	cmd := exec.CommandContext(ctx, bin, buildArgs(params)...)
	cmd.Stderr = &s.stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: stdin pipe: %v", ErrEncoderLaunch, err)
	}
	if err := cmd.Start(); err != nil {
		stdin.Close()
		return nil, fmt.Errorf("%w: %v", ErrEncoderLaunch, err)
	}

	s.cmd = cmd
	s.stdin = stdin
	e.logger.Debug("Encoder started: %dx%d @ %.3f fps, audio=%t, output=%s",
		params.Width, params.Height, params.FPS, params.AudioSource != "", params.OutputPath)
	return s, nil
}

// buildArgs assembles the ffmpeg invocation for one session.
func buildArgs(p ports.EncodeParams) []string {
	withAudio := p.AudioSource != ""

	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pix_fmt", "rgb24",
		"-s", fmt.Sprintf("%dx%d", p.Width, p.Height),
		"-r", fmt.Sprintf("%.3f", p.FPS),
		"-i", "pipe:0",
	}
	if withAudio {
		args = append(args, "-i", p.AudioSource)
	}

	args = append(args, "-map", "0:v:0")
	if withAudio {
		args = append(args, "-map", "1:a:0")
	}

	args = append(args,
		"-c:v", "libx264",
		"-preset", p.Preset,
		"-crf", fmt.Sprintf("%d", p.CRF),
		"-pix_fmt", "yuv420p",
	)
	if withAudio {
		args = append(args,
			"-c:a", "aac",
			"-b:a", p.AudioBitrate,
			"-ar", "44100",
			"-shortest",
		)
	}

	args = append(args, "-movflags", "+faststart", p.OutputPath)
	return args
}

// session is a live child-process handle plus the exclusively-owned
// write end of its input byte stream. It owns no frames, only the
// channel.
type session struct {
	params    ports.EncodeParams
	frameSize int
	logger    ports.Logger

	mu     sync.Mutex
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stderr bytes.Buffer
	closed bool
}

// WriteFrame writes exactly one frame's raw bytes. Blocking here is
// the pipeline's backpressure mechanism, not an error.
func (s *session) WriteFrame(buf []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.stdin == nil {
		return ErrSessionClosed
	}
	if len(buf) != s.frameSize {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrBadFrameSize, len(buf), s.frameSize)
	}

	if _, err := s.stdin.Write(buf); err != nil {
		if errors.Is(err, syscall.EPIPE) || errors.Is(err, os.ErrClosed) {
			return fmt.Errorf("%w: %v", ErrPipeBroken, err)
		}
		// Any other write failure means the channel is unusable too.
		return fmt.Errorf("%w: write: %v", ErrPipeBroken, err)
	}
	return nil
}

// Close ends the input stream, waits for the child and verifies the
// artifact. Calling Close again after it returned is a no-op.
func (s *session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	s.stdin.Close()
	s.stdin = nil

	if err := s.cmd.Wait(); err != nil {
		return fmt.Errorf("%w: %v: %s", ErrEncoderExit, err, diagnostic(&s.stderr))
	}

	fi, err := os.Stat(s.params.OutputPath)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrNoOutput, s.params.OutputPath)
	}
	if fi.Size() == 0 {
		return fmt.Errorf("%w: %s is empty", ErrNoOutput, s.params.OutputPath)
	}

	s.logger.Debug("Encoder finished: %s (%d bytes)", s.params.OutputPath, fi.Size())
	return nil
}

// Abort terminates the child without validating output. Idempotent.
func (s *session) Abort() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true

	if s.stdin != nil {
		s.stdin.Close()
		s.stdin = nil
	}
	if s.cmd != nil && s.cmd.Process != nil {
		s.cmd.Process.Kill()
	}
	s.cmd.Wait()
}

// diagnostic trims the captured stderr to its most useful tail.
func diagnostic(buf *bytes.Buffer) string {
	const maxLines = 12
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}
	return strings.Join(lines, "\n")
}

// Ensure Encoder implements ports.Encoder
var _ ports.Encoder = (*Encoder)(nil)
var _ ports.EncodeSession = (*session)(nil)
