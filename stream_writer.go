package dsv

import (
	"io"
)

// StreamWriter writes records to a destination the caller owns, such as
// os.Stdout or a network connection. Close flushes but never closes it.
type StreamWriter struct {
	encoder
}

var _ Writer = (*StreamWriter)(nil)

// NewStreamWriter returns a Writer over dst.
func NewStreamWriter(dst io.Writer, opts ...Option) *StreamWriter {
	w := &StreamWriter{}
	if dst != nil {
		w.encoder = newEncoder(newSettings(opts), dst)
	}
	return w
}

// Close flushes buffered output. dst is left open.
func (w *StreamWriter) Close() error {
	if w.dst == nil {
		return errNilWriter
	}
	return w.finish()
}
