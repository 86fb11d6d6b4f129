// Package project keeps only the columns whose names match glob patterns.
package project

import (
	"strings"

	"github.com/gobwas/glob"
	"github.com/pkg/errors"

	"github.com/oleg578/dsv"
)

// Projector selects columns by name.
type Projector struct {
	patterns []glob.Glob

	// Rows of one traversal share their keys, so the selection is cached
	// per key set.
	lastKeys []string
	selected []string
}

// Compile builds a Projector from glob patterns such as "lat*" or
// "{state,name}". Empty patterns are ignored.
func Compile(patterns ...string) (*Projector, error) {
	p := &Projector{}
	for _, raw := range patterns {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		g, err := glob.Compile(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "project: bad pattern %q", raw)
		}
		p.patterns = append(p.patterns, g)
	}
	return p, nil
}

// Split parses a comma-separated pattern list, keeping commas that sit
// inside {...} alternations.
func Split(list string) []string {
	var out []string
	depth, start := 0, 0
	for i := 0; i < len(list); i++ {
		switch list[i] {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				out = append(out, list[start:i])
				start = i + 1
			}
		}
	}
	return append(out, list[start:])
}

// Empty reports whether the projector keeps every column.
func (p *Projector) Empty() bool {
	return len(p.patterns) == 0
}

// Match reports whether key matches any pattern.
func (p *Projector) Match(key string) bool {
	for _, g := range p.patterns {
		if g.Match(key) {
			return true
		}
	}
	return false
}

// Apply returns row restricted to matching columns in their original order.
// A projector without patterns returns row unchanged.
func (p *Projector) Apply(row dsv.Row) dsv.Row {
	if p.Empty() {
		return row
	}
	keys := row.Keys()
	if !sameKeys(keys, p.lastKeys) {
		p.lastKeys = keys
		p.selected = p.selected[:0]
		for _, k := range keys {
			if p.Match(k) {
				p.selected = append(p.selected, k)
			}
		}
	}
	return row.Select(p.selected...)
}

// Transform adapts Apply for dsv.Copy.
func (p *Projector) Transform() dsv.Transform {
	return func(row dsv.Row) (dsv.Row, bool) {
		return p.Apply(row), true
	}
}

func sameKeys(a, b []string) bool {
	if len(a) != len(b) || a == nil || b == nil {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
