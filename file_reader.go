package dsv

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

// FileReader reads records from a file path. Every rewind closes the file it
// opened before and opens the path again.
type FileReader struct {
	cursor
	path string
	file handle
}

var _ Reader = (*FileReader)(nil)

// NewFileReader returns a Reader over the file at path. The file is not
// opened until the first Next, All, ReadAll or Rewind call. A missing or
// unreadable file yields an empty traversal; Err reports the cause.
func NewFileReader(path string, opts ...Option) *FileReader {
	r := &FileReader{path: path}
	r.cursor = newCursor(newSettings(opts), r.Open)
	return r
}

// Path returns the path the reader opens.
func (r *FileReader) Path() string {
	return r.path
}

// Open releases the previously opened file and opens the path again.
func (r *FileReader) Open() (io.Reader, error) {
	releaseErr := r.file.release()
	f, err := os.Open(r.path)
	if err != nil {
		return nil, errors.Wrapf(err, "dsv: open %s", r.path)
	}
	_ = r.file.hold(f, true)
	return f, releaseErr
}

// Close closes the file opened by the reader, if any.
func (r *FileReader) Close() error {
	return r.file.release()
}
