package domain

import (
	"fmt"
	"strings"
)

// EventKind classifies a keypad input event.
type EventKind string

const (
	KindDigit      EventKind = "digit"
	KindDecimal    EventKind = "decimal"
	KindOperator   EventKind = "operator"
	KindEquals     EventKind = "equals"
	KindClear      EventKind = "clear"
	KindSignChange EventKind = "sign_change"
	KindPercent    EventKind = "percent"
)

// Event is a single discrete button press delivered to the state machine.
// Exactly one is processed at a time; the machine never sees raw labels.
type Event struct {
	Kind     EventKind `json:"kind"`
	Digit    string    `json:"digit,omitempty"`    // set when Kind == KindDigit
	Operator Operator  `json:"operator,omitempty"` // set when Kind == KindOperator
}

// Digit builds a digit press event. d must be a single character "0"-"9".
func Digit(d string) Event {
	return Event{Kind: KindDigit, Digit: d}
}

// Op builds an operator press event.
func Op(op Operator) Event {
	return Event{Kind: KindOperator, Operator: op}
}

// Decimal builds a decimal point press event.
func Decimal() Event { return Event{Kind: KindDecimal} }

// Equals builds an equals press event.
func Equals() Event { return Event{Kind: KindEquals} }

// Clear builds a clear press event.
func Clear() Event { return Event{Kind: KindClear} }

// SignChange builds a sign-change press event.
func SignChange() Event { return Event{Kind: KindSignChange} }

// Percent builds a percentage press event.
func Percent() Event { return Event{Kind: KindPercent} }

// ParseButton maps a keypad label to an Event. This is the boundary spoken by
// presentation adapters (CLI, HTTP, MCP): they forward labels, the core gets
// typed events. Returns ErrUnknownButton for anything unmapped.
func ParseButton(label string) (Event, error) {
	switch label {
	case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9":
		return Digit(label), nil
	case ".", ",":
		return Decimal(), nil
	case "=":
		return Equals(), nil
	case "C", "c", "AC", "ac":
		return Clear(), nil
	case "±", "+/-":
		return SignChange(), nil
	case "%":
		return Percent(), nil
	}
	if op, err := ParseOperator(label); err == nil {
		return Op(op), nil
	}
	return Event{}, fmt.Errorf("%w: %q", ErrUnknownButton, label)
}

// Label returns the canonical keypad label for the event.
func (e Event) Label() string {
	switch e.Kind {
	case KindDigit:
		return e.Digit
	case KindDecimal:
		return "."
	case KindOperator:
		return string(e.Operator)
	case KindEquals:
		return "="
	case KindClear:
		return "C"
	case KindSignChange:
		return "±"
	case KindPercent:
		return "%"
	}
	return strings.ToUpper(string(e.Kind))
}
