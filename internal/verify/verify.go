// Package verify compares byte streams by xxhash digest, which dsvcopy uses
// to confirm that a rewritten file reproduces its source.
package verify

import (
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"
)

// Sum is the digest and length of a stream.
type Sum struct {
	Hash uint64
	Size int64
}

// Digest hashes everything read from r.
func Digest(r io.Reader) (Sum, error) {
	h := xxhash.New()
	n, err := io.Copy(h, r)
	if err != nil {
		return Sum{}, errors.Wrap(err, "verify: read")
	}
	return Sum{Hash: h.Sum64(), Size: n}, nil
}

// DigestFile hashes the file at path.
func DigestFile(path string) (Sum, error) {
	f, err := os.Open(path)
	if err != nil {
		return Sum{}, errors.Wrapf(err, "verify: open %s", path)
	}
	defer f.Close()
	return Digest(f)
}

// SameFiles reports whether two files have identical contents.
func SameFiles(a, b string) (bool, error) {
	sa, err := DigestFile(a)
	if err != nil {
		return false, err
	}
	sb, err := DigestFile(b)
	if err != nil {
		return false, err
	}
	return sa == sb, nil
}
