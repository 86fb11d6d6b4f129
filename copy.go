package dsv

// Transform rewrites a row on its way from a Reader to a Writer. Returning
// false drops the row.
type Transform func(Row) (Row, bool)

// Copy writes every row of a fresh traversal of src to dst, passing each one
// through transform when it is non-nil. When header is set, AddHeaderRow is
// called first so the header matches the first written row's keys (or the
// header configured on dst). It returns the number of data rows written and
// the first writer error; source errors stay available through src.Err.
func Copy(dst RowWriter, src Reader, header bool, transform Transform) (int, error) {
	if header {
		if err := dst.AddHeaderRow(); err != nil {
			return 0, err
		}
	}
	n := 0
	for _, row := range src.All() {
		if transform != nil {
			var keep bool
			if row, keep = transform(row); !keep {
				continue
			}
		}
		if err := dst.OutputRow(row); err != nil {
			return n, err
		}
		n++
	}
	if header && n == 0 {
		// With no row written, the header still goes out, shaped by the
		// transform as a row would have been. Only its keys are used, so a
		// transform that filters by value cannot suppress it.
		if p, ok := dst.(pendingHeaderWriter); ok {
			keys := src.Header()
			if transform != nil && keys != nil {
				shaped, _ := transform(NewRow(keys, nil))
				keys = shaped.Keys()
			}
			if err := p.writePendingHeader(keys); err != nil {
				return 0, err
			}
		}
	}
	return n, dst.Flush()
}

// RoundTrip copies src to dst unchanged, writing a header exactly when src
// is in header mode. With matching Formats the output reproduces the source.
func RoundTrip(dst RowWriter, src Reader) (int, error) {
	return Copy(dst, src, src.Format().HeaderRow, nil)
}

type pendingHeaderWriter interface {
	writePendingHeader(keys []string) error
}
