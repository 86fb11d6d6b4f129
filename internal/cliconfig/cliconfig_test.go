package cliconfig

import (
	"testing"

	"github.com/oleg578/dsv"
)

func TestParseByte(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value   string
		want    byte
		wantErr bool
	}{
		{value: "", want: ','},
		{value: ";", want: ';'},
		{value: "tab", want: '\t'},
		{value: "TAB", want: '\t'},
		{value: `\t`, want: '\t'},
		{value: "\t", want: '\t'},
		{value: "pipe", want: '|'},
		{value: "ab", wantErr: true},
	}
	for _, tc := range tests {
		got, err := ParseByte("delimiter", tc.value, ',')
		if (err != nil) != tc.wantErr {
			t.Fatalf("ParseByte(%q) error = %v, wantErr %v", tc.value, err, tc.wantErr)
		}
		if err == nil && got != tc.want {
			t.Fatalf("ParseByte(%q) = %q, want %q", tc.value, got, tc.want)
		}
	}
}

func TestParseEOL(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]string{"": "\n", "lf": "\n", "CRLF": "\r\n", `\r\n`: "\r\n"} {
		got, err := ParseEOL(in)
		if err != nil || got != want {
			t.Fatalf("ParseEOL(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseEOL("cr"); err == nil {
		t.Fatalf("ParseEOL(cr) expected error")
	}
}

func TestOptions(t *testing.T) {
	t.Parallel()

	cfg := &Config{Delimiter: "tab", OutDelimiter: "comma", EOL: "crlf", Escape: "none", HeaderRow: true}
	ropts, err := cfg.ReaderOptions()
	if err != nil {
		t.Fatalf("ReaderOptions() error = %v", err)
	}
	rf := dsv.NewStringReader("", ropts...).Format()
	if rf.Delimiter != '\t' || !rf.HeaderRow || rf.Escape != dsv.NoEscape {
		t.Fatalf("reader Format = %+v", rf)
	}

	wopts, err := cfg.WriterOptions()
	if err != nil {
		t.Fatalf("WriterOptions() error = %v", err)
	}
	wf := dsv.NewStringWriter(wopts...).Format()
	if wf.Delimiter != ',' || wf.EOL != "\r\n" {
		t.Fatalf("writer Format = %+v", wf)
	}

	if _, err := (&Config{Quote: "<<"}).ReaderOptions(); err == nil {
		t.Fatalf("ReaderOptions() accepted a two-byte quote")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DSV_DELIMITER", "tab")
	t.Setenv("DSV_EOL", "crlf")
	t.Setenv("DSV_HEADER_ROW", "false")
	t.Setenv("DSV_JOBS", "2")
	t.Setenv("BEAVER_DSV_JOBS", "9")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Delimiter != "tab" || cfg.EOL != "crlf" || cfg.HeaderRow || cfg.Jobs != 2 {
		t.Fatalf("Load() = %+v", cfg)
	}
}
