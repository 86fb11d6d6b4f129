package dsv

import (
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// FileWriter writes records to a file it creates, or, in download mode, to an
// HTTP response presented as an attachment named after the path.
type FileWriter struct {
	encoder
	path     string
	out      handle
	response http.ResponseWriter
}

var _ Writer = (*FileWriter)(nil)

// WithDownload makes a FileWriter send its output to rw as a downloadable
// attachment instead of creating a file. The response writer is never closed.
func WithDownload(rw http.ResponseWriter) Option {
	return func(s *settings) {
		s.download = rw
	}
}

// NewFileWriter creates or truncates the file at path. With WithDownload the
// path only names the attachment and no file is touched.
func NewFileWriter(path string, opts ...Option) (*FileWriter, error) {
	s := newSettings(opts)
	w := &FileWriter{path: path}

	var dst io.Writer
	if s.download != nil {
		w.response = s.download
		setDownloadHeaders(s.download.Header(), path, s.format)
		dst = s.download
	} else {
		f, err := os.Create(path)
		if err != nil {
			return nil, errors.Wrapf(err, "dsv: create %s", path)
		}
		_ = w.out.hold(f, true)
		dst = f
	}
	w.encoder = newEncoder(s, dst)
	return w, nil
}

// Path returns the file path or attachment name.
func (w *FileWriter) Path() string {
	return w.path
}

// Download reports whether the writer targets an HTTP response.
func (w *FileWriter) Download() bool {
	return w.response != nil
}

// Close flushes buffered output and closes the file the writer created.
// In download mode the response is flushed to the client but left open.
func (w *FileWriter) Close() error {
	if w.closed {
		return nil
	}
	err := w.finish()
	if w.response != nil {
		if f, ok := w.response.(http.Flusher); ok && err == nil {
			f.Flush()
		}
		return err
	}
	if cerr := w.out.release(); err == nil {
		err = cerr
	}
	return err
}

func setDownloadHeaders(h http.Header, path string, f Format) {
	contentType := "text/csv; charset=utf-8"
	if f.Delimiter == '\t' {
		contentType = "text/tab-separated-values; charset=utf-8"
	}
	h.Set("Content-Type", contentType)
	h.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": filepath.Base(path),
	}))
	h.Set("Cache-Control", "no-cache, no-store, must-revalidate")
	h.Set("X-Content-Type-Options", "nosniff")
}
