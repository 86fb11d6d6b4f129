// Command dsvcopy rewrites delimited files, optionally changing the
// delimiter and line endings, projecting columns or emitting JSON.
//
//	dsvcopy --delimiter tab --out-delimiter comma -o out/ testdata/
//	cat data.csv | dsvcopy --json --select 'name,lat*' -
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	flag "github.com/juju/gnuflag"

	"github.com/oleg578/dsv/internal/cliconfig"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("dsvcopy: ")

	cfg, err := cliconfig.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if err == flag.ErrHelp {
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

// run parses args over the environment defaults in cfg and converts every
// input. Progress goes to stderr, converted data to stdout when no output
// directory is given.
func run(ctx context.Context, cfg *cliconfig.Config, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("dsvcopy", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var o options
	fs.StringVar(&cfg.Delimiter, "delimiter", cfg.Delimiter, "input field delimiter: one byte or comma, tab, semicolon, pipe, space")
	fs.StringVar(&cfg.OutDelimiter, "out-delimiter", cfg.OutDelimiter, "output field delimiter, defaults to the input delimiter")
	noHeader := fs.Bool("no-header", !cfg.HeaderRow, "inputs have no header row, columns are keyed by position")
	crlf := fs.Bool("crlf", false, `terminate output records with "\r\n"`)
	fs.StringVar(&o.selectCols, "select", "", "comma-separated column name patterns to keep, e.g. 'name,lat*'")
	fs.BoolVar(&o.json, "json", false, "write newline-delimited JSON objects instead of delimited text")
	fs.StringVar(&o.outDir, "o", "", "output directory; output goes to stdout when empty")
	fs.StringVar(&o.match, "match", defaultMatch, "file name pattern applied when an input is a directory")
	fs.BoolVar(&o.verify, "verify", false, "check that each output file is byte-identical to its input")
	fs.IntVar(&cfg.Jobs, "j", cfg.Jobs, "number of files converted concurrently")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: dsvcopy [options] <file|dir|->...\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(true, args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return flag.ErrHelp
	}

	cfg.HeaderRow = !*noHeader
	if *crlf {
		cfg.EOL = "crlf"
	}

	c, err := newConverter(cfg, o, stdin, stdout, log.New(stderr, "dsvcopy: ", 0))
	if err != nil {
		return err
	}
	return c.convertAll(ctx, fs.Args())
}
