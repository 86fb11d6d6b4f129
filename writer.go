package dsv

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// RowWriter is the part of a Writer that Copy needs. Destinations that are
// not delimited text, such as JSON encoders, can implement it alone.
type RowWriter interface {
	// AddHeaderRow emits the header. It must be called at most once and
	// before any data rows.
	AddHeaderRow() error
	// OutputRow writes the row's values in the row's own key order.
	OutputRow(row Row) error
	// Flush pushes buffered output to the destination.
	Flush() error
}

// Writer emits a header row and data rows in a fixed Format.
//
// Quoting is applied only to fields containing the delimiter, the quote,
// a line break or the configured EOL, so rows read from a source that quotes
// the same way are written back byte for byte.
type Writer interface {
	RowWriter
	// WriteRecord writes raw field values as one record.
	WriteRecord(fields []string) error
	// Error reports the first error encountered by the writer.
	Error() error
	// Format returns the configuration the Writer was built with.
	Format() Format
	// Close flushes and releases destinations the Writer opened itself.
	Close() error
}

// encoder is the serialization state shared by every Writer variant.
type encoder struct {
	format Format
	header []string
	dst    *bufio.Writer

	headerWritten bool
	headerPending bool
	closed        bool
	err           error
}

func newEncoder(s *settings, dst io.Writer) encoder {
	return encoder{
		format: s.format,
		header: s.header,
		dst:    bufio.NewWriterSize(dst, defaultBufferSize),
	}
}

// AddHeaderRow writes the configured header. Without one, the keys of the
// first row passed to OutputRow are written just before that row.
func (w *encoder) AddHeaderRow() error {
	if err := w.check(); err != nil {
		return err
	}
	if w.headerWritten || w.headerPending {
		return ErrHeaderWritten
	}
	if w.header == nil {
		w.headerPending = true
		return nil
	}
	w.headerWritten = true
	return w.WriteRecord(w.header)
}

// OutputRow writes row, preceded by its keys when a header is pending.
func (w *encoder) OutputRow(row Row) error {
	if err := w.check(); err != nil {
		return err
	}
	if w.headerPending {
		w.headerPending = false
		w.headerWritten = true
		if err := w.WriteRecord(row.Keys()); err != nil {
			return err
		}
	}
	return w.WriteRecord(row.values)
}

// writePendingHeader writes keys when AddHeaderRow is still waiting for a row.
func (w *encoder) writePendingHeader(keys []string) error {
	if !w.headerPending || keys == nil {
		return nil
	}
	w.headerPending = false
	w.headerWritten = true
	return w.WriteRecord(keys)
}

// WriteRecord emits a single record terminated with the configured EOL.
func (w *encoder) WriteRecord(fields []string) error {
	if err := w.check(); err != nil {
		return err
	}
	comma := w.format.Delimiter
	for i := range fields {
		if i > 0 {
			if err := w.dst.WriteByte(comma); err != nil {
				w.err = err
				return err
			}
		}
		if err := w.writeField(fields[i]); err != nil {
			w.err = err
			return err
		}
	}
	if _, err := w.dst.WriteString(w.format.EOL); err != nil {
		w.err = err
		return err
	}
	return nil
}

// Flush flushes pending buffered data to the destination.
func (w *encoder) Flush() error {
	if w.err != nil {
		return w.err
	}
	if w.dst == nil {
		return errNilWriter
	}
	if err := w.dst.Flush(); err != nil {
		w.err = errors.Wrap(err, "dsv: flush")
		return w.err
	}
	return nil
}

// Error reports the first error encountered by the writer.
func (w *encoder) Error() error {
	return w.err
}

// Format returns a copy of the configuration.
func (w *encoder) Format() Format {
	return w.format
}

func (w *encoder) check() error {
	switch {
	case w.dst == nil:
		return errNilWriter
	case w.closed:
		return ErrWriterClosed
	default:
		return w.err
	}
}

// finish flushes and marks the encoder closed. Closing twice is harmless.
func (w *encoder) finish() error {
	if w.closed {
		return nil
	}
	err := w.Flush()
	w.closed = true
	return err
}

// writeField writes one field, enclosing it in quotes when needed. Inside
// the quotes every quote and every active escape byte is doubled, so the
// reader's escape handling never consumes the closing quote.
func (w *encoder) writeField(field string) error {
	if !fieldNeedsQuote(field, w.format) {
		_, err := w.dst.WriteString(field)
		return err
	}
	quote := w.format.Quote
	if err := w.dst.WriteByte(quote); err != nil {
		return err
	}
	for len(field) > 0 {
		i := w.nextSpecial(field)
		if i < 0 {
			break
		}
		// Write the run up to and including the special byte, then repeat it.
		if _, err := w.dst.WriteString(field[:i+1]); err != nil {
			return err
		}
		if err := w.dst.WriteByte(field[i]); err != nil {
			return err
		}
		field = field[i+1:]
	}
	if _, err := w.dst.WriteString(field); err != nil {
		return err
	}
	return w.dst.WriteByte(quote)
}

// nextSpecial returns the index of the first byte of field that must be
// doubled inside quotes, or -1.
func (w *encoder) nextSpecial(field string) int {
	for i := 0; i < len(field); i++ {
		if field[i] == w.format.Quote || w.format.escapes(field[i]) {
			return i
		}
	}
	return -1
}

func fieldNeedsQuote(field string, f Format) bool {
	for i := 0; i < len(field); i++ {
		switch field[i] {
		case f.Quote, f.Delimiter, '\n', '\r':
			return true
		}
	}
	return f.EOL != "" && strings.Contains(field, f.EOL)
}
