package dice

// Set is an ordered collection of dice. It holds its own copies, so dice
// passed to Add or returned by Dies never share state with the set.
type Set struct {
	dice []Die
}

// Add appends copies of dies and returns the new count. With no arguments
// it adds one freshly rolled six-sided die.
func (s *Set) Add(dies ...Die) int {
	if len(dies) == 0 {
		s.dice = append(s.dice, MustDie(DefaultSides))
		return len(s.dice)
	}
	s.dice = append(s.dice, dies...)
	return len(s.dice)
}

// Len returns the number of dice.
func (s *Set) Len() int {
	return len(s.dice)
}

// Roll rolls every die.
func (s *Set) Roll() {
	for i := range s.dice {
		s.dice[i].Roll()
	}
}

// Values returns the face of each die in insertion order.
func (s *Set) Values() []int {
	values := make([]int, len(s.dice))
	for i, d := range s.dice {
		values[i] = d.Value()
	}
	return values
}

// Dies returns copies of the dice.
func (s *Set) Dies() []Die {
	return append([]Die(nil), s.dice...)
}
