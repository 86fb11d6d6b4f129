package dsv

import (
	"strings"
)

// Parsed is the best-effort result of splitting one record.
type Parsed struct {
	// Fields holds the field values with quoting and escaping resolved.
	Fields []string
	// Unterminated is set when the record ended inside a quoted field.
	// The last field then holds everything after its opening quote.
	Unterminated bool
}

// ParseLine splits line into fields according to f. The line must not
// include its record terminator. It never fails: malformed quoting yields the
// best available fields and sets Parsed.Unterminated.
//
// Quoting rules:
//   - a field that starts with f.Quote is quoted and may contain the
//     delimiter and line breaks literally;
//   - inside a quoted field, a doubled quote or f.Escape followed by the
//     quote yields one literal quote, and a doubled escape yields one
//     literal escape;
//   - an escape followed by any other byte is kept as is;
//   - bytes after a closing quote are appended up to the next delimiter;
//   - a quote inside an unquoted field is literal.
func ParseLine(line string, f Format) Parsed {
	f = f.normalize()
	comma, quote := f.Delimiter, f.Quote

	fields := make([]string, 0, strings.Count(line, string(comma))+1)
	var field strings.Builder
	pos := 0

	for {
		if pos >= len(line) || line[pos] != quote {
			// Fast-path an unquoted field up to the next delimiter.
			idx := strings.IndexByte(line[pos:], comma)
			if idx < 0 {
				fields = append(fields, line[pos:])
				return Parsed{Fields: fields}
			}
			fields = append(fields, line[pos:pos+idx])
			pos += idx + 1
			continue
		}

		// Quoted field.
		field.Reset()
		pos++
		closed := false
		for pos < len(line) {
			b := line[pos]
			switch {
			case f.escapes(b) && pos+1 < len(line) && (line[pos+1] == quote || line[pos+1] == b):
				field.WriteByte(line[pos+1])
				pos += 2
			case b == quote && pos+1 < len(line) && line[pos+1] == quote:
				field.WriteByte(quote)
				pos += 2
			case b == quote:
				pos++
				closed = true
			default:
				// Copy the plain run preceding the next quote or escape.
				end := pos + 1
				for end < len(line) && line[end] != quote && !f.escapes(line[end]) {
					end++
				}
				field.WriteString(line[pos:end])
				pos = end
			}
			if closed {
				break
			}
		}
		if !closed {
			fields = append(fields, field.String())
			return Parsed{Fields: fields, Unterminated: true}
		}

		// Trailing bytes after the closing quote belong to the same field.
		idx := strings.IndexByte(line[pos:], comma)
		if idx < 0 {
			field.WriteString(line[pos:])
			fields = append(fields, field.String())
			return Parsed{Fields: fields}
		}
		field.WriteString(line[pos : pos+idx])
		fields = append(fields, field.String())
		pos += idx + 1
	}
}

// trimEOL strips one trailing "\n" or "\r\n" from raw.
func trimEOL(raw string) string {
	if strings.HasSuffix(raw, "\n") {
		raw = raw[:len(raw)-1]
		if strings.HasSuffix(raw, "\r") {
			raw = raw[:len(raw)-1]
		}
	}
	return raw
}
