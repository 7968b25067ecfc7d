package timeline

import "errors"

var (
	// ErrMalformedSegment is returned by Builder.Build for authoring mistakes:
	// non-positive durations, properties the subject does not expose, negative
	// start times and similar.
	ErrMalformedSegment = errors.New("malformed segment")
	ErrUnknownLabel     = errors.New("unknown label")
)
