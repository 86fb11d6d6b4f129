package dsv

import (
	"io"

	"github.com/pkg/errors"
)

// StreamReader reads records from a handle the caller already opened.
//
// The handle is reused for every traversal. When it implements io.Seeker it
// is seeked back to its start on each rewind, including the first; otherwise
// the first traversal reads from the current position and later rewinds
// report ErrNotSeekable. The reader never closes the handle: ownership stays
// with the caller.
type StreamReader struct {
	cursor
	stream io.Reader
	opened bool
}

var _ Reader = (*StreamReader)(nil)

// NewStreamReader returns a Reader over stream. A nil stream yields an
// empty traversal and Err reports ErrNilSource.
func NewStreamReader(stream io.Reader, opts ...Option) *StreamReader {
	r := &StreamReader{stream: stream}
	r.cursor = newCursor(newSettings(opts), r.Open)
	return r
}

// Open seeks the handle back to its start when possible and returns it.
func (r *StreamReader) Open() (io.Reader, error) {
	if r.stream == nil {
		return nil, ErrNilSource
	}
	first := !r.opened
	r.opened = true

	seeker, ok := r.stream.(io.Seeker)
	if !ok {
		if first {
			return r.stream, nil
		}
		return r.stream, ErrNotSeekable
	}
	if _, err := seeker.Seek(0, io.SeekStart); err != nil {
		// Pipes and terminals are *os.File values that refuse to seek.
		if first {
			return r.stream, nil
		}
		return r.stream, errors.Wrapf(ErrNotSeekable, "%v", err)
	}
	return r.stream, nil
}

// Close is a no-op: the handle belongs to the caller.
func (r *StreamReader) Close() error {
	return nil
}
