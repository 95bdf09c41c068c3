package pipeline

import "errors"

var (
	// ErrMissingInput is returned when the source path does not exist.
	ErrMissingInput = errors.New("pipeline: input file does not exist")

	// ErrEmptyVideo is returned when the source has zero decodable
	// frames.
	ErrEmptyVideo = errors.New("pipeline: no decodable frames")
)
