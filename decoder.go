// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package pathflag

import (
	"io"
	"strings"
	"unicode/utf8"
)

// Decoder materializes a T from a byte stream. PathTo always provides
// a buffered reader positioned at the start of the file. Implementations
// must not retain r after Decode returns and should report failures as
// an IOError.
type Decoder[T any] interface {
	Decode(r io.Reader) (T, error)
}

// DecoderFunc is a functional implementation of the Decoder interface.
type DecoderFunc[T any] func(io.Reader) (T, error)

// Decode implements the Decoder interface.
func (f DecoderFunc[T]) Decode(r io.Reader) (T, error) {
	return f(r)
}

// Text decodes the full contents of a stream as a UTF-8 string.
var Text Decoder[string] = DecoderFunc[string](ReadText)

// ReadText reads r to exhaustion and returns its contents as a string.
func ReadText(r io.Reader) (string, error) {
	var sb strings.Builder
	_, err := io.Copy(&sb, r)
	if err != nil {
		return "", IOError{Kind: KindRead, Cause: err}
	}

	s := sb.String()
	if !utf8.ValidString(s) {
		return "", IOError{Kind: KindInvalidData, Cause: ErrInvalidUTF8}
	}
	return s, nil
}
