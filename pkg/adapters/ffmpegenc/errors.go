package ffmpegenc

import "errors"

var (
	// ErrEncoderLaunch is returned when the child process could not start.
	ErrEncoderLaunch = errors.New("ffmpegenc: encoder process could not start")

	// ErrPipeBroken is returned when a frame write fails because the
	// child closed its input. Fatal to the run; frames are not retried.
	ErrPipeBroken = errors.New("ffmpegenc: frame pipe closed by encoder")

	// ErrEncoderExit is returned when the child exits non-zero. The
	// wrapping error carries the captured diagnostic text.
	ErrEncoderExit = errors.New("ffmpegenc: encoder exited with failure")

	// ErrNoOutput is returned when the child exits zero but the
	// artifact is missing or empty.
	ErrNoOutput = errors.New("ffmpegenc: encoder produced no output")

	// ErrBadFrameSize is returned when a frame buffer does not match
	// width*height*3 bytes.
	ErrBadFrameSize = errors.New("ffmpegenc: frame byte size mismatch")

	// ErrSessionClosed is returned when writing after Close or Abort.
	ErrSessionClosed = errors.New("ffmpegenc: session closed")
)
