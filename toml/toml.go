// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package toml adapts pathflag.PathTo for TOML documents.
package toml

import (
	"io"
	"reflect"
	"strings"

	"github.com/z5labs/pathflag"
	"github.com/z5labs/pathflag/internal/try"

	"github.com/pelletier/go-toml/v2"
)

// Of holds a value decoded from a TOML document.
type Of[T any] struct {
	Value T
}

type decodeOptions struct {
	disallowUnknownFields bool
}

// DecodeOption configures how a TOML document is decoded.
type DecodeOption func(*decodeOptions)

// DisallowUnknownFields causes documents with keys that do
// not map to a field of the target type to be rejected.
func DisallowUnknownFields() DecodeOption {
	return func(do *decodeOptions) {
		do.disallowUnknownFields = true
	}
}

// Validator is implemented by types which have invariants that
// can not be expressed by the shape of the TOML document alone,
// e.g. required keys.
type Validator interface {
	Validate() error
}

// Decode reads r to exhaustion and decodes its contents as a TOML document.
//
// Any failure is returned as a pathflag.IOError. A failure reading r, or r
// not containing valid UTF-8, is reported by pathflag.ReadText. Malformed
// TOML, a document which does not fit the shape of T and a failed
// Validate are all reported with pathflag.KindInvalidData.
func Decode[T any](r io.Reader, opts ...DecodeOption) (Of[T], error) {
	do := decodeOptions{}
	for _, opt := range opts {
		opt(&do)
	}

	s, err := pathflag.ReadText(r)
	if err != nil {
		return Of[T]{}, err
	}

	v, err := unmarshal[T](s, do)
	if err != nil {
		return Of[T]{}, pathflag.IOError{Kind: pathflag.KindInvalidData, Cause: err}
	}
	return Of[T]{Value: v}, nil
}

func unmarshal[T any](s string, do decodeOptions) (v T, err error) {
	defer try.Recover(&err)

	dec := toml.NewDecoder(strings.NewReader(s))
	if do.disallowUnknownFields {
		dec.DisallowUnknownFields()
	}
	err = dec.Decode(&v)
	if err != nil {
		return v, err
	}

	err = validate(&v)
	return v, err
}

// validate calls Validate on v or *v. A pointer T left nil by an
// empty document has nothing to validate.
func validate[T any](v *T) error {
	if val, ok := any(v).(Validator); ok {
		return val.Validate()
	}
	rv := reflect.ValueOf(*v)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil
	}
	if val, ok := any(*v).(Validator); ok {
		return val.Validate()
	}
	return nil
}

// NewDecoder returns a pathflag.Decoder which decodes TOML documents into T.
func NewDecoder[T any](opts ...DecodeOption) pathflag.Decoder[Of[T]] {
	return pathflag.DecoderFunc[Of[T]](func(r io.Reader) (Of[T], error) {
		return Decode[T](r, opts...)
	})
}

// Path returns an unset pathflag.PathTo which decodes TOML documents into T.
func Path[T any](opts ...pathflag.Option) *pathflag.PathTo[Of[T]] {
	return pathflag.New(NewDecoder[T](), opts...)
}

// Data returns a reference to the TOML value held by p.
func Data[T any](p *pathflag.PathTo[Of[T]]) *T {
	return &p.Data().Value
}

// IntoData returns the TOML value held by p.
func IntoData[T any](p *pathflag.PathTo[Of[T]]) T {
	return p.IntoData().Value
}
