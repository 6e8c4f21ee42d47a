// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package pathflag

import (
	"errors"
	"fmt"
)

// ErrorKind classifies an IOError.
type ErrorKind int

const (
	// KindRead means the underlying byte stream reported a failure.
	KindRead ErrorKind = iota

	// KindInvalidData means the bytes were read successfully but could
	// not be interpreted, e.g. invalid UTF-8 or malformed TOML.
	KindInvalidData
)

// String implements the fmt.Stringer interface.
func (k ErrorKind) String() string {
	switch k {
	case KindRead:
		return "read error"
	case KindInvalidData:
		return "invalid data"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// ErrInvalidUTF8 is the cause of a KindInvalidData IOError returned when
// a stream decoded as text does not contain valid UTF-8.
var ErrInvalidUTF8 = errors.New("stream did not contain valid UTF-8")

// IOError is the only error kind returned by a Decoder. Whether the stream
// failed or its contents were malformed is recorded by Kind; the original
// failure is available through errors.Is and errors.As.
type IOError struct {
	Kind  ErrorKind
	Cause error
}

// Error implements the error interface.
func (e IOError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e IOError) Unwrap() error {
	return e.Cause
}

// PathError occurs when the file behind a PathTo could not be opened,
// read or decoded.
type PathError struct {
	Path  string
	Cause error
}

// Error implements the error interface.
func (e *PathError) Error() string {
	return fmt.Sprintf("failed to read %s: %s", e.Path, e.Cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e *PathError) Unwrap() error {
	return e.Cause
}
