package ggrid

import "errors"

// Sentinel errors returned by grid construction and segment loading.
// Call sites wrap them with context; test with errors.Is.
var (
	// ErrInvalidConfig is returned when a non-empty grid has a non-positive
	// or non-finite dimension.
	ErrInvalidConfig = errors.New("ggrid: invalid config")

	// ErrInvalidSegmentSize is returned when the segment size is zero.
	ErrInvalidSegmentSize = errors.New("ggrid: invalid segment size")

	// ErrSegmentOutOfRange is returned when a segment would start at or past
	// the last row of the grid.
	ErrSegmentOutOfRange = errors.New("ggrid: segment out of range")

	// ErrNilSource is returned when a nil SegmentSource is supplied.
	ErrNilSource = errors.New("ggrid: nil segment source")
)
