package dsv

import (
	"bytes"
)

// StringWriter accumulates written records in memory.
type StringWriter struct {
	encoder
	buf bytes.Buffer
}

var _ Writer = (*StringWriter)(nil)

// NewStringWriter returns a Writer backed by an in-memory buffer.
func NewStringWriter(opts ...Option) *StringWriter {
	w := &StringWriter{}
	w.encoder = newEncoder(newSettings(opts), &w.buf)
	return w
}

// String returns everything written so far. It may be called at any time,
// including before Close.
func (w *StringWriter) String() string {
	w.sync()
	return w.buf.String()
}

// Bytes returns a copy of everything written so far.
func (w *StringWriter) Bytes() []byte {
	w.sync()
	return bytes.Clone(w.buf.Bytes())
}

// Len returns the number of bytes written so far.
func (w *StringWriter) Len() int {
	w.sync()
	return w.buf.Len()
}

// Reset discards the buffer and header state so the writer can be reused
// with the same Format.
func (w *StringWriter) Reset() {
	w.dst.Reset(&w.buf)
	w.buf.Reset()
	w.headerWritten, w.headerPending, w.closed, w.err = false, false, false, nil
}

// Close flushes the buffer. String keeps working afterwards.
func (w *StringWriter) Close() error {
	return w.finish()
}

// sync moves buffered bytes into buf; writes to a bytes.Buffer cannot fail.
func (w *StringWriter) sync() {
	if !w.closed {
		_ = w.dst.Flush()
	}
}
