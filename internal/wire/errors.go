package wire

import "errors"

var (
	// ErrTruncated indicates the buffer lacked the bytes required for a structure.
	ErrTruncated = errors.New("wire: truncated buffer")

	// ErrBadWidth indicates a typed read was attempted against a payload of
	// the wrong length for that type.
	ErrBadWidth = errors.New("wire: bad field width")
)
