package domain

import "errors"

// ErrDivisionByZero is returned when a pending division resolves with a zero
// right-hand operand. It is the only arithmetic failure the engine produces.
var ErrDivisionByZero = errors.New("division by zero")

// ErrUnknownButton is returned when a keypad label cannot be mapped to an event.
var ErrUnknownButton = errors.New("unknown button")

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")
