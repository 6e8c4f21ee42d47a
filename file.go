// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package pathflag

import (
	"sync"

	"github.com/spf13/afero"
)

// fileReader is an io.Reader that opens its file on the first Read.
type fileReader struct {
	path string

	openOnce sync.Once
	openErr  error
	fs       afero.Fs
	file     afero.File
}

func newFileReader(fs afero.Fs, path string) *fileReader {
	return &fileReader{
		path: path,
		fs:   fs,
	}
}

// Read implements the io.Reader interface.
func (r *fileReader) Read(b []byte) (int, error) {
	r.openOnce.Do(func() {
		r.file, r.openErr = r.fs.Open(r.path)
	})
	if r.openErr != nil {
		return 0, r.openErr
	}
	return r.file.Read(b)
}

// Close implements the io.Closer interface.
func (r *fileReader) Close() error {
	if r.file == nil {
		return nil
	}

	err := r.file.Close()
	r.file = nil
	return err
}
