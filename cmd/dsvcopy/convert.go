package main

import (
	"context"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	humanize "github.com/dustin/go-humanize"
	"github.com/gobwas/glob"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/oleg578/dsv"
	"github.com/oleg578/dsv/internal/cliconfig"
	"github.com/oleg578/dsv/internal/jsonrows"
	"github.com/oleg578/dsv/internal/project"
	"github.com/oleg578/dsv/internal/verify"
)

const (
	defaultMatch = "*.{csv,tsv,txt}"
	stdinName    = "-"
)

type options struct {
	selectCols string
	json       bool
	outDir     string
	match      string
	verify     bool
}

// job is one input and the path it is written to. An empty dst means stdout.
type job struct {
	src string
	dst string
}

type converter struct {
	opts     options
	jobs     int
	readOpts []dsv.Option
	outOpts  []dsv.Option
	outExt   string
	match    glob.Glob
	patterns []string

	stdin  io.Reader
	stdout io.Writer
	logger *log.Logger

	// stdout is shared by every job that has no output file.
	mu sync.Mutex
}

func newConverter(cfg *cliconfig.Config, o options, stdin io.Reader, stdout io.Writer, logger *log.Logger) (*converter, error) {
	readOpts, err := cfg.ReaderOptions()
	if err != nil {
		return nil, err
	}
	outOpts, err := cfg.WriterOptions()
	if err != nil {
		return nil, err
	}
	match, err := glob.Compile(o.match)
	if err != nil {
		return nil, errors.Wrapf(err, "bad --match pattern %q", o.match)
	}
	patterns := project.Split(o.selectCols)
	// Fail on a bad --select before touching any input.
	if _, err := project.Compile(patterns...); err != nil {
		return nil, err
	}
	if o.verify && (o.json || o.selectCols != "") {
		return nil, errors.New("--verify cannot be combined with --json or --select")
	}
	outDelim, err := cfg.OutputDelimiter()
	if err != nil {
		return nil, err
	}

	c := &converter{
		opts:     o,
		jobs:     cfg.Jobs,
		readOpts: readOpts,
		outOpts:  outOpts,
		match:    match,
		patterns: patterns,
		stdin:    stdin,
		stdout:   stdout,
		logger:   logger,
	}
	c.outExt = ".csv"
	switch {
	case o.json:
		c.outExt = ".ndjson"
	case outDelim == '\t':
		c.outExt = ".tsv"
	}
	if o.outDir == "" {
		// Interleaved records on one stream would be unreadable.
		c.jobs = 1
	}
	return c, nil
}

// plan expands inputs into jobs. Directories are walked and their files
// filtered by the --match pattern.
func (c *converter) plan(inputs []string) ([]job, error) {
	var jobs []job
	for _, in := range inputs {
		if in == stdinName {
			jobs = append(jobs, job{src: in, dst: c.outPath("stdin")})
			continue
		}
		info, err := os.Stat(in)
		if err != nil {
			return nil, errors.Wrapf(err, "stat %s", in)
		}
		if !info.IsDir() {
			jobs = append(jobs, job{src: in, dst: c.outPath(filepath.Base(in))})
			continue
		}
		err = filepath.WalkDir(in, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !c.match.Match(d.Name()) {
				return nil
			}
			rel, err := filepath.Rel(in, path)
			if err != nil {
				return err
			}
			jobs = append(jobs, job{src: path, dst: c.outPath(rel)})
			return nil
		})
		if err != nil {
			return nil, errors.Wrapf(err, "walk %s", in)
		}
	}
	return jobs, nil
}

func (c *converter) outPath(rel string) string {
	if c.opts.outDir == "" {
		return ""
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel)) + c.outExt
	return filepath.Join(c.opts.outDir, rel)
}

// convertAll runs every job, at most c.jobs at a time. The first failure
// cancels jobs that have not started yet.
func (c *converter) convertAll(ctx context.Context, inputs []string) error {
	jobs, err := c.plan(inputs)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		return errors.Errorf("no input matched %q", c.opts.match)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.jobs)

	var (
		totalMu   sync.Mutex
		totalRows int64
	)
	for _, j := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			n, err := c.convert(j)
			if err != nil {
				return errors.WithMessagef(err, "convert %s", j.src)
			}
			totalMu.Lock()
			totalRows += int64(n)
			totalMu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	c.logger.Printf("%s files, %s rows", humanize.Comma(int64(len(jobs))), humanize.Comma(totalRows))
	return nil
}

func (c *converter) convert(j job) (int, error) {
	src := c.reader(j.src)
	defer src.Close()

	dst, closeDst, err := c.writer(j.dst)
	if err != nil {
		return 0, err
	}

	// Projectors cache per key set, so each job compiles its own.
	var transform dsv.Transform
	p, err := project.Compile(c.patterns...)
	if err != nil {
		closeDst()
		return 0, err
	}
	if !p.Empty() {
		transform = p.Transform()
	}

	n, err := dsv.Copy(dst, src, src.Format().HeaderRow, transform)
	if cerr := closeDst(); err == nil {
		err = cerr
	}
	if err != nil {
		return n, err
	}
	if err := src.Err(); err != nil {
		return n, err
	}

	c.report(j, n, src.Reshaped())
	if c.opts.verify && j.dst != "" && j.src != stdinName {
		same, err := verify.SameFiles(j.src, j.dst)
		if err != nil {
			return n, err
		}
		if !same {
			return n, errors.Errorf("verify: %s differs from its source", j.dst)
		}
	}
	return n, nil
}

func (c *converter) reader(path string) dsv.Reader {
	if path == stdinName {
		return dsv.NewStreamReader(c.stdin, c.readOpts...)
	}
	return dsv.NewFileReader(path, c.readOpts...)
}

// writer returns the destination for path and a function that flushes and
// releases it. Stdout is locked for the lifetime of the writer.
func (c *converter) writer(path string) (dsv.RowWriter, func() error, error) {
	if path == "" {
		c.mu.Lock()
		if c.opts.json {
			w := jsonrows.New(c.stdout)
			return w, func() error { defer c.mu.Unlock(); return w.Close() }, nil
		}
		w := dsv.NewStreamWriter(c.stdout, c.outOpts...)
		return w, func() error { defer c.mu.Unlock(); return w.Close() }, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, errors.Wrapf(err, "create directory for %s", path)
	}
	if !c.opts.json {
		w, err := dsv.NewFileWriter(path, c.outOpts...)
		if err != nil {
			return nil, nil, err
		}
		return w, w.Close, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "create %s", path)
	}
	w := jsonrows.New(f)
	return w, func() error {
		if err := w.Close(); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}, nil
}

func (c *converter) report(j job, rows, reshaped int) {
	dst := j.dst
	size := ""
	if dst == "" {
		dst = "stdout"
	} else if info, err := os.Stat(dst); err == nil {
		size = ", " + humanize.Bytes(uint64(info.Size()))
	}
	msg := humanize.Comma(int64(rows)) + " rows" + size
	if reshaped > 0 {
		msg += ", " + humanize.Comma(int64(reshaped)) + " reshaped"
	}
	c.logger.Printf("%s -> %s: %s", j.src, dst, msg)
}
