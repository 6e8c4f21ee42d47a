// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package pathflag

import (
	"bufio"

	"github.com/z5labs/pathflag/internal/try"

	"github.com/spf13/afero"
)

type options struct {
	fs afero.Fs
}

// Option configures a PathTo.
type Option func(*options)

// FS sets the filesystem paths are resolved against. The default
// is the host operating system filesystem.
func FS(fs afero.Fs) Option {
	return func(o *options) {
		o.fs = fs
	}
}

// PathTo binds a filesystem path to the value decoded from the file at that path.
//
// PathTo implements both flag.Value and pflag.Value so it can be registered
// directly as a command-line flag. The file is read and decoded as soon as
// the flag is set; decode failures are reported by Set and surface through
// the flag parser.
type PathTo[T any] struct {
	path string
	data T

	fs  afero.Fs
	dec Decoder[T]
}

// New returns an unset PathTo which decodes files with dec.
func New[T any](dec Decoder[T], opts ...Option) *PathTo[T] {
	o := options{
		fs: afero.NewOsFs(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &PathTo[T]{
		fs:  o.fs,
		dec: dec,
	}
}

// Read returns a PathTo holding the value decoded from the file at path.
func Read[T any](path string, dec Decoder[T], opts ...Option) (*PathTo[T], error) {
	p := New(dec, opts...)
	err := p.Set(path)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Set implements the flag.Value interface. The path and value are
// only replaced if the file at path is successfully decoded.
func (p *PathTo[T]) Set(path string) error {
	v, err := p.decode(path)
	if err != nil {
		return &PathError{Path: path, Cause: err}
	}
	p.path = path
	p.data = v
	return nil
}

func (p *PathTo[T]) decode(path string) (v T, err error) {
	defer try.Recover(&err)

	fr := newFileReader(p.fs, path)
	defer try.Close(&err, fr)

	v, err = p.dec.Decode(bufio.NewReader(fr))
	if err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// String implements the flag.Value interface.
func (p *PathTo[T]) String() string {
	if p == nil {
		return ""
	}
	return p.path
}

// Type implements the pflag.Value interface.
func (p *PathTo[T]) Type() string {
	return "path"
}

// Path returns the path the value was decoded from. It is empty
// until Set succeeds.
func (p *PathTo[T]) Path() string {
	return p.path
}

// Data returns a reference to the decoded value.
func (p *PathTo[T]) Data() *T {
	return &p.data
}

// IntoData returns the decoded value.
func (p *PathTo[T]) IntoData() T {
	return p.data
}
