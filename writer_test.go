package dsv

import (
	"errors"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriterWriteRecord(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		records [][]string
		opts    []Option
		want    string
	}{
		{
			name:    "basic",
			records: [][]string{{"a", "b", "c"}},
			want:    "a,b,c\n",
		},
		{
			name:    "multipleRecords",
			records: [][]string{{"alpha", "beta"}, {"gamma", "delta"}},
			want:    "alpha,beta\ngamma,delta\n",
		},
		{
			name:    "emptyField",
			records: [][]string{{"", "b"}},
			want:    ",b\n",
		},
		{
			name:    "commaForcesQuote",
			records: [][]string{{"alpha,beta"}},
			want:    "\"alpha,beta\"\n",
		},
		{
			name:    "quoteEscaping",
			records: [][]string{{"he said \"hello\"", "plain"}},
			want:    "\"he said \"\"hello\"\"\",plain\n",
		},
		{
			name:    "escapeDoubledInQuotes",
			records: [][]string{{`C:\dir,x\`, `a\"b`}},
			want:    `"C:\\dir,x\\","a\\""b"` + "\n",
		},
		{
			name:    "escapeBareOutsideQuotes",
			records: [][]string{{`C:\dir`}},
			want:    `C:\dir` + "\n",
		},
		{
			name:    "noEscapeKeepsBackslash",
			records: [][]string{{`x\,`}},
			opts:    []Option{WithEscape(NoEscape)},
			want:    `"x\,"` + "\n",
		},
		{
			name:    "newlineForcesQuote",
			records: [][]string{{"multi\nline", "z"}},
			want:    "\"multi\nline\",z\n",
		},
		{
			name:    "carriageReturnForcesQuote",
			records: [][]string{{"a\rb"}},
			want:    "\"a\rb\"\n",
		},
		{
			name:    "spacesStayBare",
			records: [][]string{{"Land Area", "New York"}},
			want:    "Land Area,New York\n",
		},
		{
			name:    "tabLeavesCommaBare",
			records: [][]string{{"a,b", "c\td"}},
			opts:    []Option{WithDelimiter('\t')},
			want:    "a,b\t\"c\td\"\n",
		},
		{
			name:    "customQuote",
			records: [][]string{{"alpha'beta", "plain"}},
			opts:    []Option{WithQuote('\'')},
			want:    "'alpha''beta',plain\n",
		},
		{
			name:    "crlf",
			records: [][]string{{"a"}, {"b"}},
			opts:    []Option{WithCRLF()},
			want:    "a\r\nb\r\n",
		},
		{
			name:    "customEOLForcesQuote",
			records: [][]string{{"x|y", "z"}},
			opts:    []Option{WithEOL("|")},
			want:    "\"x|y\",z|",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			w := NewStringWriter(tc.opts...)
			for _, rec := range tc.records {
				if err := w.WriteRecord(rec); err != nil {
					t.Fatalf("WriteRecord() error = %v", err)
				}
			}
			if got := w.String(); got != tc.want {
				t.Fatalf("unexpected output:\n got: %q\nwant: %q", got, tc.want)
			}
		})
	}
}

func TestStringWriterConfiguredHeader(t *testing.T) {
	t.Parallel()

	w := NewStringWriter(WithHeader("state", "latitude", "longitude", "name"))
	if err := w.AddHeaderRow(); err != nil {
		t.Fatalf("AddHeaderRow() error = %v", err)
	}
	if err := w.OutputRow(RowOf("NY", "43.0", "-75.0", "New York")); err != nil {
		t.Fatalf("OutputRow() error = %v", err)
	}

	want := "state,latitude,longitude,name\nNY,43.0,-75.0,New York\n"
	if got := w.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestStringWriterHeaderFromFirstRow(t *testing.T) {
	t.Parallel()

	w := NewStringWriter()
	if err := w.AddHeaderRow(); err != nil {
		t.Fatalf("AddHeaderRow() error = %v", err)
	}
	if got := w.String(); got != "" {
		t.Fatalf("String() before first row = %q, want empty", got)
	}
	keys := []string{"state", "name"}
	for _, values := range [][]string{{"NY", "New York"}, {"VT", "Vermont"}} {
		if err := w.OutputRow(NewRow(keys, values)); err != nil {
			t.Fatalf("OutputRow() error = %v", err)
		}
	}

	want := "state,name\nNY,New York\nVT,Vermont\n"
	if got := w.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestStringWriterRetrievableAnyTime(t *testing.T) {
	t.Parallel()

	w := NewStringWriter()
	if err := w.WriteRecord([]string{"a"}); err != nil {
		t.Fatalf("WriteRecord() error = %v", err)
	}
	if got := w.String(); got != "a\n" {
		t.Fatalf("String() = %q, want %q", got, "a\n")
	}
	if err := w.WriteRecord([]string{"b"}); err != nil {
		t.Fatalf("WriteRecord() error = %v", err)
	}
	if w.Len() != 4 || string(w.Bytes()) != "a\nb\n" {
		t.Fatalf("Bytes() = %q Len() = %d, want %q 4", w.Bytes(), w.Len(), "a\nb\n")
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if got := w.String(); got != "a\nb\n" {
		t.Fatalf("String() after Close = %q", got)
	}
	if err := w.WriteRecord([]string{"c"}); !errors.Is(err, ErrWriterClosed) {
		t.Fatalf("WriteRecord() after Close error = %v, want ErrWriterClosed", err)
	}

	w.Reset()
	if err := w.WriteRecord([]string{"fresh"}); err != nil {
		t.Fatalf("WriteRecord() after Reset error = %v", err)
	}
	if got := w.String(); got != "fresh\n" {
		t.Fatalf("String() after Reset = %q", got)
	}
}

func TestWriterHeaderTwice(t *testing.T) {
	t.Parallel()

	for _, w := range []*StringWriter{NewStringWriter(), NewStringWriter(WithHeader("a"))} {
		if err := w.AddHeaderRow(); err != nil {
			t.Fatalf("AddHeaderRow() error = %v", err)
		}
		if err := w.AddHeaderRow(); !errors.Is(err, ErrHeaderWritten) {
			t.Fatalf("second AddHeaderRow() error = %v, want ErrHeaderWritten", err)
		}
	}
}

type failingResponse struct {
	header http.Header
	err    error
}

func (f *failingResponse) Header() http.Header       { return f.header }
func (f *failingResponse) Write([]byte) (int, error) { return 0, f.err }
func (f *failingResponse) WriteHeader(int)           {}

func TestWriterFlushError(t *testing.T) {
	t.Parallel()

	exp := errors.New("connection reset")
	w, err := NewFileWriter("out.csv", WithDownload(&failingResponse{header: http.Header{}, err: exp}))
	if err != nil {
		t.Fatalf("NewFileWriter() error = %v", err)
	}
	if err := w.WriteRecord([]string{"a"}); err != nil {
		t.Fatalf("WriteRecord() error = %v", err)
	}
	if err := w.Flush(); !errors.Is(err, exp) {
		t.Fatalf("Flush() error = %v, want %v", err, exp)
	}
	if err := w.WriteRecord([]string{"b"}); !errors.Is(err, exp) {
		t.Fatalf("WriteRecord() should return stored error %v, got %v", exp, err)
	}
	if err := w.Error(); !errors.Is(err, exp) {
		t.Fatalf("Error() = %v, want %v", err, exp)
	}
	if err := w.Close(); !errors.Is(err, exp) {
		t.Fatalf("Close() = %v, want %v", err, exp)
	}
}

func TestFileWriterCreatesFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.tsv")
	w, err := NewFileWriter(path, WithDelimiter('\t'), WithCRLF(), WithHeader("state", "name"))
	if err != nil {
		t.Fatalf("NewFileWriter() error = %v", err)
	}
	if w.Download() {
		t.Fatalf("Download() = true for a file writer")
	}
	if err := w.AddHeaderRow(); err != nil {
		t.Fatalf("AddHeaderRow() error = %v", err)
	}
	if err := w.OutputRow(RowOf("NY", "New York")); err != nil {
		t.Fatalf("OutputRow() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if want := "state\tname\r\nNY\tNew York\r\n"; string(got) != want {
		t.Fatalf("file contents = %q, want %q", got, want)
	}
}

func TestFileWriterCreateError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing-dir", "out.csv")
	if _, err := NewFileWriter(path); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("NewFileWriter() error = %v, want fs.ErrNotExist", err)
	}
}

func TestFileWriterDownload(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	name := "states-download.tsv"
	w, err := NewFileWriter(name, WithDelimiter('\t'), WithDownload(rec))
	if err != nil {
		t.Fatalf("NewFileWriter() error = %v", err)
	}
	if !w.Download() {
		t.Fatalf("Download() = false")
	}
	if err := w.AddHeaderRow(); err != nil {
		t.Fatalf("AddHeaderRow() error = %v", err)
	}
	if err := w.OutputRow(NewRow([]string{"state", "name"}, []string{"NY", "New York"})); err != nil {
		t.Fatalf("OutputRow() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if got := rec.Body.String(); got != "state\tname\nNY\tNew York\n" {
		t.Fatalf("body = %q", got)
	}
	h := rec.Result().Header
	if got := h.Get("Content-Type"); got != "text/tab-separated-values; charset=utf-8" {
		t.Fatalf("Content-Type = %q", got)
	}
	if got := h.Get("Content-Disposition"); got != "attachment; filename="+name {
		t.Fatalf("Content-Disposition = %q", got)
	}
	if !rec.Flushed {
		t.Fatalf("response was not flushed on Close")
	}
	if _, err := os.Stat(name); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("download mode touched the filesystem: Stat() error = %v", err)
	}
}

func TestFileWriterDownloadCSVContentType(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	w, err := NewFileWriter(filepath.Join("reports", "my report.csv"), WithDownload(rec))
	if err != nil {
		t.Fatalf("NewFileWriter() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	h := rec.Header()
	if got := h.Get("Content-Type"); got != "text/csv; charset=utf-8" {
		t.Fatalf("Content-Type = %q", got)
	}
	if got := h.Get("Content-Disposition"); got != `attachment; filename="my report.csv"` {
		t.Fatalf("Content-Disposition = %q", got)
	}
}

type closeCounter struct {
	strings.Builder
	closed int
}

func (c *closeCounter) Close() error {
	c.closed++
	return nil
}

func TestStreamWriterLeavesDestinationOpen(t *testing.T) {
	t.Parallel()

	dst := &closeCounter{}
	w := NewStreamWriter(dst, WithDelimiter('\t'), WithCRLF())
	if err := w.AddHeaderRow(); err != nil {
		t.Fatalf("AddHeaderRow() error = %v", err)
	}
	if err := w.OutputRow(NewRow([]string{"state", "name"}, []string{"NY", "New\tYork"})); err != nil {
		t.Fatalf("OutputRow() error = %v", err)
	}
	if dst.Len() != 0 {
		t.Fatalf("output reached destination before Flush: %q", dst.String())
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}

	if want := "state\tname\r\nNY\t\"New\tYork\"\r\n"; dst.String() != want {
		t.Fatalf("output = %q, want %q", dst.String(), want)
	}
	if dst.closed != 0 {
		t.Fatalf("destination closed %d times, want 0", dst.closed)
	}
	if err := w.WriteRecord([]string{"x"}); !errors.Is(err, ErrWriterClosed) {
		t.Fatalf("WriteRecord() after Close error = %v, want %v", err, ErrWriterClosed)
	}
}

func TestStreamWriterNilDestination(t *testing.T) {
	t.Parallel()

	w := NewStreamWriter(nil)
	if err := w.WriteRecord([]string{"a"}); err == nil {
		t.Fatalf("WriteRecord() on nil destination returned nil error")
	}
	if err := w.Close(); err == nil {
		t.Fatalf("Close() on nil destination returned nil error")
	}
}
