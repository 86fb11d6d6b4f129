package dsv

import (
	"io"
	"strings"
)

// StringReader reads records from an in-memory string without any I/O.
type StringReader struct {
	cursor
	data string
}

var _ Reader = (*StringReader)(nil)

// NewStringReader returns a Reader over data.
func NewStringReader(data string, opts ...Option) *StringReader {
	r := &StringReader{data: data}
	r.cursor = newCursor(newSettings(opts), r.Open)
	return r
}

// Open returns a fresh reader positioned at the start of the data.
func (r *StringReader) Open() (io.Reader, error) {
	return strings.NewReader(r.data), nil
}

// Close is a no-op.
func (r *StringReader) Close() error {
	return nil
}
