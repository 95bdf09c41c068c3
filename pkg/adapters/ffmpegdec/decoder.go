// Package ffmpegdec streams decoded frames out of an ffmpeg child
// process as raw RGB24 on stdout.
package ffmpegdec

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"os/exec"
	"strings"

	"github.com/user/clipshift/pkg/adapters/ffpath"
	"github.com/user/clipshift/pkg/ports"
)

// ErrDecodeFailed is returned when the child process reports an error
// before producing a full frame.
var ErrDecodeFailed = errors.New("ffmpegdec: decode failed")

// Source implements ports.FrameSource using the ffmpeg external process.
type Source struct {
	// CustomPath optionally pins the ffmpeg binary location.
	CustomPath string

	logger ports.Logger
}

// New creates a new Source.
func New(logger ports.Logger) *Source {
	return &Source{logger: logger.WithComponent("ffmpegdec")}
}

// Open launches a decode child for the probed source.
func (s *Source) Open(info ports.SourceInfo) (ports.FrameStream, error) {
	bin, err := ffpath.Find("ffmpeg", s.CustomPath)
	if err != nil {
		return nil, err
	}

	st := &stream{
		ffmpegPath: bin,
		info:       info,
		frameSize:  info.Width * info.Height * 3,
		logger:     s.logger,
	}
	if err := st.start(); err != nil {
		return nil, err
	}
	return st, nil
}

// stream drives one decode child. Rewind relaunches the child, so
// reading the detection frame consumes nothing from the main pass.
type stream struct {
	ffmpegPath string
	info       ports.SourceInfo
	frameSize  int
	logger     ports.Logger

	cmd    *exec.Cmd
	stdout io.ReadCloser
	stderr bytes.Buffer
}

func (st *stream) start() error {
	cmd := exec.Command(st.ffmpegPath,
		"-v", "error",
		"-i", st.info.Path,
		"-f", "rawvideo",
		"-pix_fmt", "rgb24",
		"pipe:1",
	)
	st.stderr.Reset()
	cmd.Stderr = &st.stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		stdout.Close()
		return fmt.Errorf("start ffmpeg: %w", err)
	}

	st.cmd = cmd
	st.stdout = stdout
	return nil
}

// ReadFrame reads the next raw frame and unpacks it into an NRGBA
// image at source resolution.
func (st *stream) ReadFrame() (*image.NRGBA, error) {
	if st.stdout == nil {
		return nil, io.EOF
	}

	buf := make([]byte, st.frameSize)
	if _, err := io.ReadFull(st.stdout, buf); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			// Drain exit status; a failed child with no full frame
			// left is a decode error rather than a clean end.
			if werr := st.waitChild(); werr != nil {
				return nil, fmt.Errorf("%w: %v", ErrDecodeFailed, werr)
			}
			return nil, io.EOF
		}
		return nil, fmt.Errorf("%w: read: %v", ErrDecodeFailed, err)
	}

	img := image.NewNRGBA(image.Rect(0, 0, st.info.Width, st.info.Height))
	si := 0
	for di := 0; di < len(img.Pix); di += 4 {
		img.Pix[di+0] = buf[si+0]
		img.Pix[di+1] = buf[si+1]
		img.Pix[di+2] = buf[si+2]
		img.Pix[di+3] = 0xff
		si += 3
	}
	return img, nil
}

// Rewind repositions the stream at the first frame by relaunching the
// decode child.
func (st *stream) Rewind() error {
	st.stop()
	return st.start()
}

// Close releases the decode child. Safe to call more than once.
func (st *stream) Close() error {
	st.stop()
	return nil
}

func (st *stream) stop() {
	if st.stdout != nil {
		st.stdout.Close()
		st.stdout = nil
	}
	if st.cmd != nil {
		if st.cmd.Process != nil {
			st.cmd.Process.Kill()
		}
		st.cmd.Wait()
		st.cmd = nil
	}
}

// waitChild reaps a child that stopped producing output and reports
// its stderr when it exited non-zero.
func (st *stream) waitChild() error {
	st.stdout.Close()
	st.stdout = nil
	cmd := st.cmd
	st.cmd = nil
	if cmd == nil {
		return nil
	}
	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("%v: %s", err, strings.TrimSpace(st.stderr.String()))
	}
	return nil
}

// Ensure Source implements ports.FrameSource
var _ ports.FrameSource = (*Source)(nil)
