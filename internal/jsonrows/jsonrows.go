// Package jsonrows encodes dsv rows as JSON objects, one per line or as a
// single array.
package jsonrows

import (
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/oleg578/dsv"
)

const bufferSize = 4096

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Option configures a Writer.
type Option func(*Writer)

// WithNewlineDelimited selects one object per line (the default) or, when
// false, a JSON array of objects.
func WithNewlineDelimited(enabled bool) Option {
	return func(w *Writer) {
		w.newlineDelimited = enabled
	}
}

// WithLimit stops output after limit rows. A negative limit means no limit.
func WithLimit(limit int) Option {
	return func(w *Writer) {
		w.limit = limit
	}
}

// Writer is a dsv.RowWriter producing JSON. Object fields follow the row's
// key order. Keys are always available, so headers are implied and
// AddHeaderRow writes nothing.
type Writer struct {
	stream *jsoniter.Stream

	newlineDelimited bool
	limit            int
	rows             int
	closed           bool
}

// New returns a Writer encoding to dst.
func New(dst io.Writer, opts ...Option) *Writer {
	w := &Writer{
		stream:           jsoniter.NewStream(json, dst, bufferSize),
		newlineDelimited: true,
		limit:            -1,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// AddHeaderRow is a no-op.
func (w *Writer) AddHeaderRow() error {
	return w.stream.Error
}

// OutputRow encodes row as one JSON object. Rows past the limit are
// discarded silently.
func (w *Writer) OutputRow(row dsv.Row) error {
	if w.closed {
		return dsv.ErrWriterClosed
	}
	if w.stream.Error != nil {
		return w.stream.Error
	}
	if w.limit >= 0 && w.rows >= w.limit {
		return nil
	}

	s := w.stream
	if !w.newlineDelimited {
		if w.rows == 0 {
			s.WriteRaw("[")
		} else {
			s.WriteRaw(",")
		}
		s.WriteRaw("\n")
	}
	s.WriteObjectStart()
	first := true
	row.Each(func(key, value string) bool {
		if !first {
			s.WriteMore()
		}
		first = false
		s.WriteObjectField(key)
		s.WriteString(value)
		return true
	})
	s.WriteObjectEnd()
	if w.newlineDelimited {
		s.WriteRaw("\n")
	}
	w.rows++

	if s.Buffered() >= bufferSize {
		return w.Flush()
	}
	return s.Error
}

// Rows returns the number of objects written.
func (w *Writer) Rows() int {
	return w.rows
}

// Flush pushes buffered output to the destination.
func (w *Writer) Flush() error {
	if err := w.stream.Flush(); err != nil {
		return errors.Wrap(err, "jsonrows: flush")
	}
	return nil
}

// Close terminates the array in array mode, writing "[]" when no row was
// output, and flushes. It does not close the destination.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if !w.newlineDelimited {
		if w.rows == 0 {
			w.stream.WriteRaw("[]\n")
		} else {
			w.stream.WriteRaw("\n]\n")
		}
	}
	return w.Flush()
}
