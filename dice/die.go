// Package dice simulates polyhedral dice. It is independent of the dsv
// engine.
package dice

import (
	"fmt"
	"math/rand/v2"

	"github.com/pkg/errors"
)

// DefaultSides is the face count of an ordinary die.
const DefaultSides = 6

// ErrTooFewSides is returned when a die is built with fewer than two sides.
var ErrTooFewSides = errors.New("dice: a die must have at least 2 sides")

// Die is a single die showing one face. A Die is a value: copying it yields
// an independent die that rolls separately.
//
// The zero Die is a six-sided die that has not been rolled yet.
type Die struct {
	sides int
	value int
}

// NewDie returns a rolled die with the given number of sides.
func NewDie(sides int) (Die, error) {
	if sides < 2 {
		return Die{}, errors.Wrapf(ErrTooFewSides, "got %d", sides)
	}
	d := Die{sides: sides}
	d.Roll()
	return d, nil
}

// MustDie is like NewDie but panics on a bad side count.
func MustDie(sides int) Die {
	d, err := NewDie(sides)
	if err != nil {
		panic(err)
	}
	return d
}

// Roll picks a new face uniformly from 1..Sides and returns it.
func (d *Die) Roll() int {
	d.value = rand.IntN(d.Sides()) + 1
	return d.value
}

// Value returns the face shown, or 0 for a zero Die never rolled.
func (d Die) Value() int {
	return d.value
}

// Sides returns the number of faces.
func (d Die) Sides() int {
	if d.sides == 0 {
		return DefaultSides
	}
	return d.sides
}

func (d Die) String() string {
	return fmt.Sprintf("d%d=%d", d.Sides(), d.value)
}
