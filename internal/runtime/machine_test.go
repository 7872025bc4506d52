package runtime_test

import (
	"context"
	"testing"

	"github.com/aretw0/tally/internal/runtime"
	"github.com/aretw0/tally/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// press runs a sequence of keypad labels through the machine, returning the
// final state and the last error (if any press failed).
func press(t *testing.T, m *runtime.Machine, state *domain.State, labels ...string) (*domain.State, error) {
	t.Helper()
	var lastErr error
	for _, label := range labels {
		ev, err := domain.ParseButton(label)
		require.NoError(t, err, "label %q should parse", label)
		state, err = m.Press(context.Background(), state, ev)
		if err != nil {
			lastErr = err
		}
	}
	return state, lastErr
}

func TestMachine_DigitConcatenation(t *testing.T) {
	m := runtime.NewMachine()

	state, err := press(t, m, domain.NewState(), "1", "2", "3", "4")
	require.NoError(t, err)
	assert.Equal(t, "1234", state.Display)
	assert.False(t, state.AwaitingEntry)
}

func TestMachine_FirstDigitReplacesZero(t *testing.T) {
	m := runtime.NewMachine()

	state, err := press(t, m, domain.NewState(), "7")
	require.NoError(t, err)
	assert.Equal(t, "7", state.Display, "leading zero must not survive the first digit")
}

func TestMachine_SingleDecimalPoint(t *testing.T) {
	m := runtime.NewMachine()

	state, err := press(t, m, domain.NewState(), "3", ".", "1", ".", "4")
	require.NoError(t, err)
	assert.Equal(t, "3.14", state.Display, "second decimal press must be ignored")
}

func TestMachine_DecimalOnFreshEntry(t *testing.T) {
	m := runtime.NewMachine()

	state, err := press(t, m, domain.NewState(), ".", "5")
	require.NoError(t, err)
	assert.Equal(t, "0.5", state.Display)
}

func TestMachine_Addition(t *testing.T) {
	m := runtime.NewMachine()

	state, err := press(t, m, domain.NewState(), "5", "+", "3", "=")
	require.NoError(t, err)
	assert.Equal(t, "8", state.Display)
	assert.Empty(t, state.Pending)
	assert.True(t, state.AwaitingEntry)
}

func TestMachine_DivisionByZero(t *testing.T) {
	m := runtime.NewMachine()

	state, err := press(t, m, domain.NewState(), "6", "÷", "0", "=")
	assert.ErrorIs(t, err, domain.ErrDivisionByZero)
	assert.Equal(t, "0", state.Display, "state must reset to initial values")
	assert.Empty(t, state.Pending)
	assert.True(t, state.AwaitingEntry)
}

func TestMachine_DivisionByZero_OnOperatorResolution(t *testing.T) {
	// The pending division resolves when the next operator is pressed, not
	// only on equals.
	m := runtime.NewMachine()

	state, err := press(t, m, domain.NewState(), "6", "÷", "0", "+")
	assert.ErrorIs(t, err, domain.ErrDivisionByZero)
	assert.Equal(t, "0", state.Display)
}

func TestMachine_SignChange(t *testing.T) {
	m := runtime.NewMachine()

	state, err := press(t, m, domain.NewState(), "9", "±")
	require.NoError(t, err)
	assert.Equal(t, "-9", state.Display)

	state, err = press(t, m, state, "±")
	require.NoError(t, err)
	assert.Equal(t, "9", state.Display, "double sign change must round-trip")
}

func TestMachine_PendingResolvesBeforeNewOperator(t *testing.T) {
	m := runtime.NewMachine()

	state, err := press(t, m, domain.NewState(), "5", "×", "4", "+", "1", "=")
	require.NoError(t, err)
	assert.Equal(t, "21", state.Display, "the pending × must resolve before + is stored")
}

func TestMachine_OperatorReplacesOperator(t *testing.T) {
	// No value entered between the two presses, so nothing resolves; the
	// second operator wins.
	m := runtime.NewMachine()

	state, err := press(t, m, domain.NewState(), "8", "-", "×", "2", "=")
	require.NoError(t, err)
	assert.Equal(t, "16", state.Display)
}

func TestMachine_EqualsWithoutPending(t *testing.T) {
	m := runtime.NewMachine()

	state, err := press(t, m, domain.NewState(), "4", "2", "=")
	require.NoError(t, err)
	assert.Equal(t, "42", state.Display, "equals without a pending operator is a no-op")
}

func TestMachine_EqualsWithoutRightOperand(t *testing.T) {
	m := runtime.NewMachine()

	state, err := press(t, m, domain.NewState(), "7", "+", "=")
	require.NoError(t, err)
	assert.Equal(t, "7", state.Display, "equals with no fresh entry must not compute")
	assert.Equal(t, domain.OpAdd, state.Pending)
}

func TestMachine_Clear(t *testing.T) {
	m := runtime.NewMachine()

	state, err := press(t, m, domain.NewState(), "9", "+", "1", "C")
	require.NoError(t, err)
	assert.Equal(t, "0", state.Display)
	assert.Empty(t, state.Pending)
	assert.True(t, state.AwaitingEntry)
}

func TestMachine_Percentage(t *testing.T) {
	m := runtime.NewMachine()

	state, err := press(t, m, domain.NewState(), "5", "0", "%")
	require.NoError(t, err)
	assert.Equal(t, "0.5", state.Display)
}

func TestMachine_SubtractionAndDivisionOrder(t *testing.T) {
	m := runtime.NewMachine()

	state, err := press(t, m, domain.NewState(), "9", "-", "4", "=")
	require.NoError(t, err)
	assert.Equal(t, "5", state.Display)

	state, err = press(t, m, domain.NewState(), "8", "÷", "4", "=")
	require.NoError(t, err)
	assert.Equal(t, "2", state.Display)
}

func TestMachine_DecimalArithmetic(t *testing.T) {
	m := runtime.NewMachine()

	state, err := press(t, m, domain.NewState(), "1", ".", "5", "+", "2", ".", "5", "=")
	require.NoError(t, err)
	assert.Equal(t, "4", state.Display)
}

func TestMachine_ResultFeedsNextCalculation(t *testing.T) {
	m := runtime.NewMachine()

	state, err := press(t, m, domain.NewState(), "5", "+", "3", "=")
	require.NoError(t, err)

	// The result acts as the left operand of the next operation.
	state, err = press(t, m, state, "×", "2", "=")
	require.NoError(t, err)
	assert.Equal(t, "16", state.Display)
}

func TestMachine_PressDoesNotMutateInput(t *testing.T) {
	m := runtime.NewMachine()
	initial := domain.NewState()

	_, err := m.Press(context.Background(), initial, domain.Digit("5"))
	require.NoError(t, err)
	assert.Equal(t, "0", initial.Display)
	assert.True(t, initial.AwaitingEntry)
}

func TestMachine_Hooks(t *testing.T) {
	var presses []string
	var resolved *domain.ResolveEvent
	errored := false

	hooks := domain.LifecycleHooks{
		OnPress: func(ctx context.Context, e *domain.PressEvent) {
			presses = append(presses, e.Label)
		},
		OnResolve: func(ctx context.Context, e *domain.ResolveEvent) {
			resolved = e
		},
		OnError: func(ctx context.Context, e *domain.ErrorEvent) {
			errored = true
		},
	}
	m := runtime.NewMachine(runtime.WithLifecycleHooks(hooks))

	state, err := press(t, m, domain.NewState(), "5", "+", "3", "=")
	require.NoError(t, err)
	assert.Equal(t, []string{"5", "+", "3", "="}, presses)
	require.NotNil(t, resolved)
	assert.Equal(t, domain.OpAdd, resolved.Operator)
	assert.Equal(t, 5.0, resolved.Left)
	assert.Equal(t, 3.0, resolved.Right)
	assert.Equal(t, 8.0, resolved.Result)
	assert.False(t, errored)

	_, err = press(t, m, state, "÷", "0", "=")
	assert.ErrorIs(t, err, domain.ErrDivisionByZero)
	assert.True(t, errored, "OnError should fire for division by zero")
}

func TestMachine_CustomFormatter(t *testing.T) {
	m := runtime.NewMachine(runtime.WithFormatter(func(v float64) string {
		return "<" + runtime.DefaultFormatter(v) + ">"
	}))

	state, err := press(t, m, domain.NewState(), "2", "+", "2", "=")
	require.NoError(t, err)
	assert.Equal(t, "<4>", state.Display)
}
