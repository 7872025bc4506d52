package domain

import "fmt"

// Operator identifies one of the four binary arithmetic operations.
// The canonical symbols match the keypad labels (`×` and `÷`, not `*`/`/`).
type Operator string

const (
	OpAdd      Operator = "+"
	OpSubtract Operator = "-"
	OpMultiply Operator = "×"
	OpDivide   Operator = "÷"
)

// Apply resolves a binary operation. `a` is the stored (left) operand, `b` the
// freshly entered one; order matters for subtraction and division.
// Returns ErrDivisionByZero when dividing by zero. Pure otherwise.
func Apply(op Operator, a, b float64) (float64, error) {
	switch op {
	case OpAdd:
		return a + b, nil
	case OpSubtract:
		return a - b, nil
	case OpMultiply:
		return a * b, nil
	case OpDivide:
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		return a / b, nil
	default:
		return 0, fmt.Errorf("unsupported operator %q", string(op))
	}
}

// ParseOperator maps a label to an Operator, accepting the ASCII aliases
// commonly produced by terminals ("*", "x", "/").
func ParseOperator(s string) (Operator, error) {
	switch s {
	case "+":
		return OpAdd, nil
	case "-":
		return OpSubtract, nil
	case "×", "*", "x", "X":
		return OpMultiply, nil
	case "÷", "/":
		return OpDivide, nil
	default:
		return "", fmt.Errorf("%w: %q is not an operator", ErrUnknownButton, s)
	}
}
