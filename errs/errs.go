// Package errs defines the sentinel errors shared by every quadpack package.
//
// Callers match them with errors.Is. Wire-level decoding errors wrap
// ErrMalformedInput as well, so a caller that only cares whether the input
// could be trusted can test for that single value.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrIO reports a filesystem failure: unreadable input or unwritable output.
	ErrIO = errors.New("i/o failure")

	// ErrInvalidDimensions reports a non-positive quadrant size or a quadrant
	// that does not fit inside the raster.
	ErrInvalidDimensions = errors.New("invalid dimensions")

	// ErrInvalidThreshold reports a negative split threshold.
	ErrInvalidThreshold = errors.New("invalid threshold")

	// ErrIndexOutOfRange reports a child reference outside [-1, N) or a start
	// index outside [0, N).
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrInvalidTopology reports a present child reference that does not point
	// forward in pre-order, which would otherwise allow cycles.
	ErrInvalidTopology = errors.New("invalid tree topology")

	// ErrPartialSplit reports a node with some, but not all, children present.
	ErrPartialSplit = errors.New("partial split")

	// ErrMalformedInput reports input that does not match the expected format.
	ErrMalformedInput = errors.New("malformed input")
)

// Wire-level errors. Each one wraps ErrMalformedInput.
var (
	ErrInvalidHeaderSize      = fmt.Errorf("%w: invalid header size", ErrMalformedInput)
	ErrInvalidRecordSize      = fmt.Errorf("%w: invalid record size", ErrMalformedInput)
	ErrNodeCountMismatch      = fmt.Errorf("%w: node count does not match payload", ErrMalformedInput)
	ErrLeafCountMismatch      = fmt.Errorf("%w: leaf count does not match records", ErrMalformedInput)
	ErrInvalidContainer       = fmt.Errorf("%w: invalid container header", ErrMalformedInput)
	ErrChecksumMismatch       = fmt.Errorf("%w: checksum mismatch", ErrMalformedInput)
	ErrUnsupportedCompression = fmt.Errorf("%w: unsupported compression", ErrMalformedInput)
	ErrEmptyArray             = fmt.Errorf("%w: empty node array", ErrMalformedInput)
)
