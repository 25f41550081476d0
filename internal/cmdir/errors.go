// internal/cmdir/errors.go
package cmdir

import "errors"

var (
	// ErrNotCmdir indicates the input path does not carry the .cmdir suffix
	ErrNotCmdir = errors.New("input file must have a .cmdir extension")

	// ErrAlreadyConverted indicates the .commands sibling already exists
	ErrAlreadyConverted = errors.New("converted commands file already exists")

	// ErrMalformedMarker indicates an end_pause line without a readable timestamp
	ErrMalformedMarker = errors.New("malformed end_pause marker")
)
