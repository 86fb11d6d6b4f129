package dsv

import (
	"io"

	"github.com/pkg/errors"
)

// handle holds the byte source or sink a Reader or Writer currently uses.
// Only handles acquired by the holder itself are closed; borrowed ones are
// dropped without being touched.
type handle struct {
	c     io.Closer
	owned bool
}

// hold stores c, releasing whatever was held before.
func (h *handle) hold(c io.Closer, owned bool) error {
	err := h.release()
	h.c, h.owned = c, owned
	return err
}

// release closes an owned handle and forgets any handle.
func (h *handle) release() error {
	c, owned := h.c, h.owned
	h.c, h.owned = nil, false
	if c == nil || !owned {
		return nil
	}
	return errors.Wrap(c.Close(), "dsv: close handle")
}
