package dsv

import "net/http"

const (
	// DefaultDelimiter separates fields when no delimiter is configured.
	DefaultDelimiter byte = ','
	// DefaultQuote encloses fields that contain special bytes.
	DefaultQuote byte = '"'
	// DefaultEscape marks a literal quote inside a quoted field.
	DefaultEscape byte = '\\'
	// DefaultEOL terminates records written by a Writer.
	DefaultEOL = "\n"
)

// Format describes how records are delimited, quoted and terminated.
// Readers and Writers copy the Format at construction; later changes to the
// caller's value have no effect on them.
type Format struct {
	// Delimiter is the field separator. Default is ','.
	Delimiter byte
	// Quote is the enclosure character. Default is '"'.
	Quote byte
	// Escape, when immediately followed by Quote inside a quoted field,
	// yields a literal quote. Default is '\\'. Use NoEscape to disable it.
	Escape byte
	// EOL terminates every written record. Readers accept both "\n" and "\r\n".
	EOL string
	// HeaderRow reports whether the first record names the columns.
	HeaderRow bool

	noEscape bool
}

// NoEscape disables escape handling when passed to WithEscape.
const NoEscape byte = 0

// DefaultFormat returns the comma-separated, header-enabled Format.
func DefaultFormat() Format {
	return Format{
		Delimiter: DefaultDelimiter,
		Quote:     DefaultQuote,
		Escape:    DefaultEscape,
		EOL:       DefaultEOL,
		HeaderRow: true,
	}
}

// TSV returns a tab-separated Format with the remaining defaults.
func TSV() Format {
	f := DefaultFormat()
	f.Delimiter = '\t'
	return f
}

// normalize fills zero values with defaults, mirroring how a zero Comma or
// Quote falls back to ',' and '"'.
func (f Format) normalize() Format {
	if f.Delimiter == 0 {
		f.Delimiter = DefaultDelimiter
	}
	if f.Quote == 0 {
		f.Quote = DefaultQuote
	}
	if f.Escape == 0 && !f.noEscape {
		f.Escape = DefaultEscape
	}
	if f.EOL == "" {
		f.EOL = DefaultEOL
	}
	return f
}

// escapes reports whether b acts as an escape byte under f.
func (f Format) escapes(b byte) bool {
	return !f.noEscape && f.Escape != 0 && f.Escape != f.Quote && b == f.Escape
}

// Option configures a Reader or Writer at construction.
type Option func(*settings)

type settings struct {
	format Format
	header []string
	// download is only consulted by FileWriter.
	download http.ResponseWriter
}

func newSettings(opts []Option) *settings {
	s := &settings{format: DefaultFormat()}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.format = s.format.normalize()
	return s
}

// WithFormat replaces the whole Format. Zero fields fall back to defaults,
// except HeaderRow which is taken as given.
func WithFormat(f Format) Option {
	return func(s *settings) {
		s.format = f
	}
}

// WithDelimiter sets the field separator.
func WithDelimiter(d byte) Option {
	return func(s *settings) {
		s.format.Delimiter = d
	}
}

// WithQuote sets the enclosure character.
func WithQuote(q byte) Option {
	return func(s *settings) {
		s.format.Quote = q
	}
}

// WithEscape sets the escape character. NoEscape turns escaping off.
func WithEscape(e byte) Option {
	return func(s *settings) {
		s.format.Escape = e
		s.format.noEscape = e == NoEscape
	}
}

// WithEOL sets the record terminator used by writers.
func WithEOL(eol string) Option {
	return func(s *settings) {
		s.format.EOL = eol
	}
}

// WithCRLF is shorthand for WithEOL("\r\n").
func WithCRLF() Option {
	return WithEOL("\r\n")
}

// WithHeaderRow enables or disables header mode.
func WithHeaderRow(enabled bool) Option {
	return func(s *settings) {
		s.format.HeaderRow = enabled
	}
}

// WithHeader fixes the column names a Writer emits from AddHeaderRow.
// Readers ignore it.
func WithHeader(columns ...string) Option {
	return func(s *settings) {
		s.header = append([]string(nil), columns...)
	}
}
