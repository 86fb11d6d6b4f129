package dsv

import (
	"strconv"
	"strings"
)

// Row is one record as an insertion-ordered set of (key, value) pairs.
// Keys are header column names in header mode and decimal positions
// ("0", "1", ...) otherwise. Rows produced by one traversal share their key
// index, so lookups by key cost a single map access.
type Row struct {
	cols   *columns
	values []string
}

// columns is the ordered key set shared by every row of a traversal.
type columns struct {
	keys  []string
	index map[string]int
}

func newColumns(keys []string) *columns {
	c := &columns{
		keys:  keys,
		index: make(map[string]int, len(keys)),
	}
	for i, k := range keys {
		// The first occurrence of a duplicated name wins lookups.
		if _, dup := c.index[k]; !dup {
			c.index[k] = i
		}
	}
	return c
}

// positional returns keys "0".."n-1".
func positional(n int) *columns {
	keys := make([]string, n)
	for i := range keys {
		keys[i] = strconv.Itoa(i)
	}
	return newColumns(keys)
}

// NewRow pairs keys and values in order. Missing values are empty; surplus
// values are dropped.
func NewRow(keys, values []string) Row {
	cols := newColumns(append([]string(nil), keys...))
	return Row{cols: cols, values: shape(append([]string(nil), values...), len(keys))}
}

// RowOf builds a positional row from values.
func RowOf(values ...string) Row {
	return Row{cols: positional(len(values)), values: append([]string(nil), values...)}
}

// Len returns the number of fields.
func (r Row) Len() int {
	return len(r.values)
}

// Get returns the value stored under key.
func (r Row) Get(key string) (string, bool) {
	if r.cols == nil {
		return "", false
	}
	i, ok := r.cols.index[key]
	if !ok || i >= len(r.values) {
		return "", false
	}
	return r.values[i], true
}

// At returns the i-th value.
func (r Row) At(i int) string {
	return r.values[i]
}

// Keys returns a copy of the keys in row order, nil for a row without columns.
func (r Row) Keys() []string {
	if r.cols == nil {
		return nil
	}
	return append([]string(nil), r.cols.keys...)
}

// Values returns a copy of the values in row order, nil for an empty row.
func (r Row) Values() []string {
	return append([]string(nil), r.values...)
}

// Map returns the row as a map. Ordering is lost.
func (r Row) Map() map[string]string {
	m := make(map[string]string, len(r.values))
	if r.cols == nil {
		return m
	}
	for i, k := range r.cols.keys {
		if _, dup := m[k]; !dup {
			m[k] = r.values[i]
		}
	}
	return m
}

// Each calls fn for every (key, value) pair in order until fn returns false.
func (r Row) Each(fn func(key, value string) bool) {
	if r.cols == nil {
		return
	}
	for i, k := range r.cols.keys {
		if !fn(k, r.values[i]) {
			return
		}
	}
}

// Select returns a row holding only the listed keys, in the given order.
// Unknown keys are skipped.
func (r Row) Select(keys ...string) Row {
	outKeys := make([]string, 0, len(keys))
	outValues := make([]string, 0, len(keys))
	for _, k := range keys {
		if v, ok := r.Get(k); ok {
			outKeys = append(outKeys, k)
			outValues = append(outValues, v)
		}
	}
	return Row{cols: newColumns(outKeys), values: outValues}
}

// String renders the row as key=value pairs, for debugging.
func (r Row) String() string {
	var b strings.Builder
	b.WriteByte('{')
	first := true
	r.Each(func(k, v string) bool {
		if !first {
			b.WriteString(", ")
		}
		first = false
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(strconv.Quote(v))
		return true
	})
	b.WriteByte('}')
	return b.String()
}

// shape pads values with empty strings or truncates them to width.
func shape(values []string, width int) []string {
	switch {
	case len(values) == width:
		return values
	case len(values) > width:
		return values[:width:width]
	default:
		out := make([]string, width)
		copy(out, values)
		return out
	}
}
