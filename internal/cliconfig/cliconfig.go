// Package cliconfig loads dsvcopy defaults from the environment and turns
// them into dsv options.
package cliconfig

import (
	"strings"

	"github.com/gobeaver/beaver-kit/config"
	"github.com/pkg/errors"

	"github.com/oleg578/dsv"
)

// EnvPrefix is prepended to every variable name in Config.
const EnvPrefix = "DSV_"

// Config holds dsvcopy defaults read from DSV_* variables.
type Config struct {
	// Input format
	Delimiter string `env:"DELIMITER"` // single byte or a name such as "tab"; empty means comma
	Quote     string `env:"QUOTE"`
	Escape    string `env:"ESCAPE"` // "none" disables escaping
	HeaderRow bool   `env:"HEADER_ROW,default:true"`

	// Output format
	OutDelimiter string `env:"OUT_DELIMITER"`  // empty means same as Delimiter
	EOL          string `env:"EOL,default:lf"` // lf or crlf

	// Number of files converted concurrently
	Jobs int `env:"JOBS,default:4"`
}

// Load returns the configuration read from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := config.Load(cfg, config.LoadOptions{Prefix: EnvPrefix}); err != nil {
		return nil, errors.Wrap(err, "cliconfig: load environment")
	}
	if cfg.Jobs < 1 {
		cfg.Jobs = 1
	}
	return cfg, nil
}

// ReaderOptions converts the input settings.
func (c *Config) ReaderOptions() ([]dsv.Option, error) {
	delim, err := ParseByte("delimiter", c.Delimiter, dsv.DefaultDelimiter)
	if err != nil {
		return nil, err
	}
	opts := []dsv.Option{dsv.WithDelimiter(delim), dsv.WithHeaderRow(c.HeaderRow)}
	quoting, err := c.quoting()
	if err != nil {
		return nil, err
	}
	return append(opts, quoting...), nil
}

// WriterOptions converts the output settings. The output delimiter falls
// back to the input delimiter.
func (c *Config) WriterOptions() ([]dsv.Option, error) {
	delim, err := c.OutputDelimiter()
	if err != nil {
		return nil, err
	}
	eol, err := ParseEOL(c.EOL)
	if err != nil {
		return nil, err
	}
	opts := []dsv.Option{dsv.WithDelimiter(delim), dsv.WithEOL(eol), dsv.WithHeaderRow(c.HeaderRow)}
	quoting, err := c.quoting()
	if err != nil {
		return nil, err
	}
	return append(opts, quoting...), nil
}

// OutputDelimiter resolves the output delimiter, falling back to the input
// delimiter.
func (c *Config) OutputDelimiter() (byte, error) {
	out := c.OutDelimiter
	if out == "" {
		out = c.Delimiter
	}
	return ParseByte("out-delimiter", out, dsv.DefaultDelimiter)
}

func (c *Config) quoting() ([]dsv.Option, error) {
	quote, err := ParseByte("quote", c.Quote, dsv.DefaultQuote)
	if err != nil {
		return nil, err
	}
	opts := []dsv.Option{dsv.WithQuote(quote)}
	if strings.EqualFold(c.Escape, "none") {
		return append(opts, dsv.WithEscape(dsv.NoEscape)), nil
	}
	escape, err := ParseByte("escape", c.Escape, dsv.DefaultEscape)
	if err != nil {
		return nil, err
	}
	return append(opts, dsv.WithEscape(escape)), nil
}

var namedBytes = map[string]byte{
	"comma":     ',',
	"tab":       '\t',
	`\t`:        '\t',
	"semicolon": ';',
	"pipe":      '|',
	"space":     ' ',
	"backslash": '\\',
	"dquote":    '"',
	"squote":    '\'',
}

// ParseByte resolves a single-byte setting. Empty values yield def.
func ParseByte(name, value string, def byte) (byte, error) {
	if value == "" {
		return def, nil
	}
	if b, ok := namedBytes[strings.ToLower(value)]; ok {
		return b, nil
	}
	if len(value) != 1 {
		return 0, errors.Errorf("cliconfig: %s must be exactly one byte, got %q", name, value)
	}
	return value[0], nil
}

// ParseEOL resolves "lf" or "crlf" (case-insensitive) to a terminator.
func ParseEOL(value string) (string, error) {
	switch strings.ToLower(value) {
	case "", "lf", `\n`:
		return "\n", nil
	case "crlf", `\r\n`:
		return "\r\n", nil
	default:
		return "", errors.Errorf("cliconfig: unknown line ending %q", value)
	}
}
