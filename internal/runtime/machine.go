package runtime

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/tally/pkg/domain"
)

// Formatter converts a computed result into display text.
type Formatter func(float64) string

// DefaultFormatter renders the shortest decimal form that round-trips.
// Trailing-zero and precision artifacts of float64 are accepted as-is.
func DefaultFormatter(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Machine is the core calculation state machine. It reduces a stream of
// discrete keypad events to a display string, holding at most one pending
// binary operation. Press is strictly synchronous: each event is processed to
// completion before the next one is accepted, and the input state is never
// mutated.
type Machine struct {
	hooks  domain.LifecycleHooks
	logger *slog.Logger
	format Formatter
}

// Option defines a functional option for configuring the Machine.
type Option func(*Machine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(m *Machine) {
		m.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Machine) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithFormatter overrides the result-to-display conversion.
func WithFormatter(f Formatter) Option {
	return func(m *Machine) {
		if f != nil {
			m.format = f
		}
	}
}

// NewMachine creates a machine with defaults (discard logger, shortest-form
// formatting).
func NewMachine(opts ...Option) *Machine {
	m := &Machine{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		format: DefaultFormatter,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Press processes one keypad event and returns the resulting state.
//
// On domain.ErrDivisionByZero the error is returned together with a fresh
// initial state: the caller surfaces the error to the user and continues from
// "0", mirroring a Clear press.
func (m *Machine) Press(ctx context.Context, state *domain.State, ev domain.Event) (*domain.State, error) {
	next := state.Clone()

	var err error
	switch ev.Kind {
	case domain.KindDigit:
		m.pressDigit(next, ev.Digit)
	case domain.KindDecimal:
		m.pressDecimal(next)
	case domain.KindOperator:
		err = m.pressOperator(ctx, next, ev.Operator)
	case domain.KindEquals:
		err = m.resolve(ctx, next)
	case domain.KindClear:
		next.Reset()
	case domain.KindSignChange:
		err = m.pressSignChange(next)
	case domain.KindPercent:
		err = m.pressPercent(next)
	default:
		err = fmt.Errorf("unsupported event kind %q", string(ev.Kind))
	}

	if err != nil {
		m.logger.Debug("press failed", "kind", ev.Kind, "err", err)
		m.fireError(ctx, ev.Kind, err)
		// Recovery policy: the full state resets to initial values.
		return domain.NewState(), err
	}

	m.logger.Debug("press", "label", ev.Label(), "display", next.Display)
	m.firePress(ctx, ev, next.Display)
	return next, nil
}

// pressDigit starts a fresh entry or extends the current one. Literal string
// growth; overflow is not specially handled.
func (m *Machine) pressDigit(s *domain.State, d string) {
	if s.AwaitingEntry {
		s.Display = d
		s.AwaitingEntry = false
		return
	}
	s.Display += d
}

// pressDecimal guarantees at most one decimal point per entry.
func (m *Machine) pressDecimal(s *domain.State) {
	if strings.Contains(s.Display, ".") {
		return
	}
	if s.AwaitingEntry {
		s.Display = "0."
		s.AwaitingEntry = false
		return
	}
	s.Display += "."
}

// pressOperator resolves any pending calculation first, then freezes the
// display as the left operand. An operator pressed right after another one
// simply replaces the pending operator.
func (m *Machine) pressOperator(ctx context.Context, s *domain.State, op domain.Operator) error {
	if err := m.resolve(ctx, s); err != nil {
		return err
	}
	left, err := s.Value()
	if err != nil {
		return fmt.Errorf("display is not numeric: %w", err)
	}
	s.Stored = left
	s.Pending = op
	s.AwaitingEntry = true
	return nil
}

// resolve applies the pending operation with the display as right operand.
// No-op unless an operator is pending and a fresh value has been entered.
func (m *Machine) resolve(ctx context.Context, s *domain.State) error {
	if s.Pending == "" || s.AwaitingEntry {
		return nil
	}
	right, err := s.Value()
	if err != nil {
		return fmt.Errorf("display is not numeric: %w", err)
	}
	result, err := domain.Apply(s.Pending, s.Stored, right)
	if err != nil {
		return err
	}
	m.fireResolve(ctx, s.Pending, s.Stored, right, result)
	s.Display = m.format(result)
	s.Pending = ""
	s.AwaitingEntry = true
	return nil
}

func (m *Machine) pressSignChange(s *domain.State) error {
	v, err := s.Value()
	if err != nil {
		return fmt.Errorf("display is not numeric: %w", err)
	}
	s.Display = m.format(-v)
	return nil
}

func (m *Machine) pressPercent(s *domain.State) error {
	v, err := s.Value()
	if err != nil {
		return fmt.Errorf("display is not numeric: %w", err)
	}
	s.Display = m.format(v / 100)
	return nil
}

func (m *Machine) firePress(ctx context.Context, ev domain.Event, display string) {
	if m.hooks.OnPress == nil {
		return
	}
	m.hooks.OnPress(ctx, &domain.PressEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventPress},
		Kind:      ev.Kind,
		Label:     ev.Label(),
		Display:   display,
	})
}

func (m *Machine) fireResolve(ctx context.Context, op domain.Operator, left, right, result float64) {
	if m.hooks.OnResolve == nil {
		return
	}
	m.hooks.OnResolve(ctx, &domain.ResolveEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventResolve},
		Operator:  op,
		Left:      left,
		Right:     right,
		Result:    result,
	})
}

func (m *Machine) fireError(ctx context.Context, kind domain.EventKind, err error) {
	if m.hooks.OnError == nil {
		return
	}
	m.hooks.OnError(ctx, &domain.ErrorEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventError},
		Kind:      kind,
		Err:       err,
	})
}
