// Package monopoly provides the two-dice pair and the HTML die face used by
// board game pages.
package monopoly

import (
	"strings"

	"github.com/oleg578/dsv/dice"
)

// Pair is two six-sided dice rolled together.
type Pair struct {
	set dice.Set
}

// NewPair returns a rolled pair.
func NewPair() *Pair {
	p := &Pair{}
	p.set.Add()
	p.set.Add()
	return p
}

// Roll rolls both dice and returns their total.
func (p *Pair) Roll() int {
	p.set.Roll()
	return p.Total()
}

// Values returns both faces.
func (p *Pair) Values() [2]int {
	v := p.set.Values()
	return [2]int{v[0], v[1]}
}

// Doubles reports whether both dice show the same face.
func (p *Pair) Doubles() bool {
	v := p.Values()
	return v[0] == v[1]
}

// Total returns the sum of both faces.
func (p *Pair) Total() int {
	v := p.Values()
	return v[0] + v[1]
}

// ImageDie is a six-sided die that renders its face as HTML. Pips are
// positioned by the page's .face and .pip styles.
type ImageDie struct {
	dice.Die
}

// NewImageDie returns a rolled six-sided ImageDie.
func NewImageDie() ImageDie {
	return ImageDie{Die: dice.MustDie(dice.DefaultSides)}
}

// Face renders the shown value as a div holding one pip span per point.
func (d ImageDie) Face() string {
	const pip = `<span class="pip"></span>`

	var b strings.Builder
	b.Grow(len(`<div class="face"></div>`) + d.Value()*len(pip))
	b.WriteString(`<div class="face">`)
	for range d.Value() {
		b.WriteString(pip)
	}
	b.WriteString(`</div>`)
	return b.String()
}
