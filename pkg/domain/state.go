package domain

import "strconv"

// State is the sole stateful entity of the calculator: the current display
// text plus the single pending operation. Invariants:
//
//   - Display is always a parseable numeric literal (the machine only ever
//     appends digits and at most one decimal point).
//   - Stored is meaningless while Pending is empty.
//   - AwaitingEntry is true when the next digit starts a fresh number.
type State struct {
	// Display is the text currently shown. Starts as "0".
	Display string `json:"display"`

	// Stored is the left-hand operand frozen when an operator was pressed.
	Stored float64 `json:"stored,omitempty"`

	// Pending is the selected operator awaiting a second operand.
	// Empty string means no operation is pending.
	Pending Operator `json:"pending,omitempty"`

	// AwaitingEntry indicates the next digit replaces the display rather
	// than extending it.
	AwaitingEntry bool `json:"awaiting_entry"`
}

// NewState creates a clean state showing "0".
func NewState() *State {
	return &State{
		Display:       "0",
		AwaitingEntry: true,
	}
}

// Reset restores the initial values in place. Equivalent to pressing Clear.
func (s *State) Reset() {
	s.Display = "0"
	s.Stored = 0
	s.Pending = ""
	s.AwaitingEntry = true
}

// Value parses the display as a float. Given the machine's invariants this
// only fails on a hand-constructed state.
func (s *State) Value() (float64, error) {
	return strconv.ParseFloat(s.Display, 64)
}

// Clone returns an independent copy so callers can keep the prior snapshot.
func (s *State) Clone() *State {
	c := *s
	return &c
}
