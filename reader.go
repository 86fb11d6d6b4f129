package dsv

import (
	"bufio"
	"io"
	"iter"

	"github.com/pkg/errors"
)

const defaultBufferSize = 1 << 12 // 4096 bytes

// Reader is a restartable, tolerant traversal over delimited records.
//
// Source failures never surface as errors from iteration: a source that
// cannot be opened or read simply yields no further rows. Err reports what was
// absorbed during the current traversal.
type Reader interface {
	// Open acquires or re-acquires the underlying byte source.
	Open() (io.Reader, error)
	// Rewind resets the traversal to the first data row, reopening the
	// source and recapturing the header when header mode is enabled.
	Rewind()
	// Next advances to the next row. The first call on a fresh Reader rewinds.
	Next() bool
	// Row returns the row produced by the last successful Next.
	Row() Row
	// Key returns the zero-based index of the last row produced, or -1.
	Key() int
	// Header returns the captured column names, nil without header mode.
	Header() []string
	// All rewinds and yields every (key, row) pair of a full traversal.
	All() iter.Seq2[int, Row]
	// ReadAll rewinds and collects every row, returning Err afterwards.
	ReadAll() ([]Row, error)
	// Reshaped counts rows of the traversal whose width had to be
	// padded or truncated to the header (or first row) width.
	Reshaped() int
	// Err reports the first source error absorbed during the traversal.
	Err() error
	// Format returns the configuration the Reader was built with.
	Format() Format
	// Close releases resources the Reader acquired itself.
	Close() error
}

// cursor is the traversal state shared by every Reader variant. The variant
// supplies open; cursor never touches the source handle beyond reading it.
type cursor struct {
	format Format
	open   func() (io.Reader, error)

	src     *bufio.Reader
	header  []string
	cols    *columns
	row     Row
	key     int
	width   int
	started bool
	done    bool

	reshaped int
	err      error
}

func newCursor(s *settings, open func() (io.Reader, error)) cursor {
	return cursor{format: s.format, open: open, key: -1}
}

// Rewind resets the cursor and repositions it before the first data row.
func (c *cursor) Rewind() {
	c.header, c.cols, c.row = nil, nil, Row{}
	c.key, c.width, c.reshaped = -1, 0, 0
	c.started, c.done, c.err = true, false, nil

	r, err := c.open()
	if err != nil {
		c.fail(err)
	}
	if r == nil {
		c.done = true
		return
	}
	if c.src == nil {
		c.src = bufio.NewReaderSize(r, defaultBufferSize)
	} else {
		c.src.Reset(r)
	}

	if !c.format.HeaderRow {
		return
	}
	fields, ok := c.readRecord()
	if !ok {
		c.done = true
		return
	}
	c.header = fields
	c.cols = newColumns(fields)
	c.width = len(fields)
}

// Next parses the next record into a Row shaped to the traversal width.
func (c *cursor) Next() bool {
	if !c.started {
		c.Rewind()
	}
	if c.done {
		return false
	}

	fields, ok := c.readRecord()
	if !ok {
		c.done = true
		c.row = Row{}
		return false
	}
	if c.cols == nil {
		// Positional mode: the first row fixes the width.
		c.width = len(fields)
		c.cols = positional(c.width)
	}
	if len(fields) != c.width {
		c.reshaped++
		fields = shape(fields, c.width)
	}
	c.key++
	c.row = Row{cols: c.cols, values: fields}
	return true
}

// Row returns the current row.
func (c *cursor) Row() Row {
	return c.row
}

// Key returns the index of the current row.
func (c *cursor) Key() int {
	return c.key
}

// Header returns a copy of the captured header.
func (c *cursor) Header() []string {
	if c.header == nil {
		return nil
	}
	return append([]string(nil), c.header...)
}

// All returns a single-use-per-call iterator; every call starts over.
func (c *cursor) All() iter.Seq2[int, Row] {
	return func(yield func(int, Row) bool) {
		c.Rewind()
		for c.Next() {
			if !yield(c.key, c.row) {
				return
			}
		}
	}
}

// ReadAll exhausts a fresh traversal, returning the rows and any absorbed error.
func (c *cursor) ReadAll() (rows []Row, err error) {
	for _, row := range c.All() {
		rows = append(rows, row)
	}
	return rows, c.err
}

// Reshaped returns the number of padded or truncated rows.
func (c *cursor) Reshaped() int {
	return c.reshaped
}

// Err returns the first absorbed error of the traversal.
func (c *cursor) Err() error {
	return c.err
}

// Format returns a copy of the configuration.
func (c *cursor) Format() Format {
	return c.format
}

func (c *cursor) fail(err error) {
	if c.err == nil {
		c.err = err
	}
}

// readRecord assembles the next non-blank record, joining physical lines
// while a quoted field is still open. The raw line breaks stay inside the
// field, so "\r\n" sources keep their embedded terminators.
func (c *cursor) readRecord() ([]string, bool) {
	var pending string
	for {
		line, err := c.src.ReadString('\n')
		if err != nil && err != io.EOF {
			c.fail(errors.Wrap(err, "dsv: read source"))
			return nil, false
		}
		atEOF := err == io.EOF

		if pending == "" && trimEOL(line) == "" {
			if atEOF {
				return nil, false
			}
			continue
		}

		pending += line
		parsed := ParseLine(trimEOL(pending), c.format)
		if !parsed.Unterminated || atEOF {
			return parsed.Fields, true
		}
	}
}
