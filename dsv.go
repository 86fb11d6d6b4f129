// # dsv: Rewindable Delimited-Values Readers and Writers for Go
//
// dsv reads CSV/TSV data as an ordered, restartable sequence of rows and writes rows back in the same format. The same row contract holds for files, in-memory strings, and already-open streams, so a dataset read from any of them and written with the same Format reproduces the source bytes.
//
// # Features
//
// - Three Reader sources: `FileReader` (path, reopened on every rewind), `StringReader` (in-memory, no I/O), and `StreamReader` (caller-owned handle, seeked back on rewind and never closed).
// - Header-row capture with name-keyed rows, or positional keys when the header is disabled.
// - Tolerant parsing: unterminated quotes and ragged rows never abort a traversal; `Reader.Err` and `Reader.Reshaped` report what was absorbed.
// - Writers with configurable delimiter, quote, escape and line terminator: `StringWriter` and `FileWriter` (file path or HTTP attachment download).
// - Range-over-func iteration via `Reader.All`, plus a pull API (`Next`, `Row`, `Key`).
//
// # Getting Started
//
//	r := dsv.NewFileReader("states.tsv", dsv.WithDelimiter('\t'))
//	defer r.Close()
//	for key, row := range r.All() {
//		name, _ := row.Get("name")
//		fmt.Println(key, name)
//	}
package dsv
