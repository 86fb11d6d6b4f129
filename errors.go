package dsv

import (
	"github.com/pkg/errors"
)

var (
	// ErrNilSource is reported by Reader.Err when a StreamReader was given no handle.
	ErrNilSource = errors.New("dsv: source handle is nil")
	// ErrNotSeekable is reported by Reader.Err when a rewind could not seek a stream back to its start.
	ErrNotSeekable = errors.New("dsv: source handle cannot seek")
	// ErrHeaderWritten is returned when AddHeaderRow is called more than once.
	ErrHeaderWritten = errors.New("dsv: header row already written")
	// ErrWriterClosed is returned by writes after Close.
	ErrWriterClosed = errors.New("dsv: writer is closed")

	errNilWriter = errors.New("dsv: writer is nil")
)
