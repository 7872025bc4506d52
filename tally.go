package tally

import (
	"context"
	"io"
	"log/slog"

	"github.com/aretw0/tally/internal/runtime"
	"github.com/aretw0/tally/pkg/domain"
)

// Engine is the high-level entry point for the tally library.
// It wraps the internal state machine and provides a simplified API for
// consumers. The Engine itself is stateless; calculator state lives in
// domain.State values (or a Session, which bundles one).
type Engine struct {
	machine     *runtime.Machine
	logger      *slog.Logger
	hooks       domain.LifecycleHooks
	machineOpts []runtime.Option
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks (press/resolve/error).
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithFormatter overrides how computed results become display text.
func WithFormatter(f func(float64) string) Option {
	return func(e *Engine) {
		e.machineOpts = append(e.machineOpts, runtime.WithFormatter(f))
	}
}

// New initializes a new tally Engine.
func New(opts ...Option) *Engine {
	eng := &Engine{}

	for _, opt := range opts {
		opt(eng)
	}

	// Ensure logger is initialized (so we don't pass nil to the machine,
	// which would overwrite its default)
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	machineOpts := []runtime.Option{
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithLogger(eng.logger),
	}
	machineOpts = append(machineOpts, eng.machineOpts...)

	eng.machine = runtime.NewMachine(machineOpts...)

	return eng
}

// Press processes a single keypad event against the given state and returns
// the resulting state. On domain.ErrDivisionByZero the returned state is the
// fresh initial state (recovery equals Clear) and the error is surfaced for
// the host to present.
func (e *Engine) Press(ctx context.Context, state *domain.State, ev domain.Event) (*domain.State, error) {
	return e.machine.Press(ctx, state, ev)
}

// PressButton parses a keypad label and presses it.
func (e *Engine) PressButton(ctx context.Context, state *domain.State, label string) (*domain.State, error) {
	ev, err := domain.ParseButton(label)
	if err != nil {
		return state, err
	}
	return e.machine.Press(ctx, state, ev)
}

// NewSession creates a Session starting at the initial state.
func (e *Engine) NewSession() *Session {
	return &Session{
		engine: e,
		state:  domain.NewState(),
	}
}

// Session bundles an Engine with one calculator state. It is the minimal
// harness surface: press an event, read the display, inspect the last error.
// Not safe for concurrent use; there is exactly one logical actor per session.
type Session struct {
	engine  *Engine
	state   *domain.State
	lastErr error
}

// Press processes one event. The last error is replaced on every press:
// cleared on success, set on failure (after which the state has been reset).
func (s *Session) Press(ctx context.Context, ev domain.Event) error {
	next, err := s.engine.Press(ctx, s.state, ev)
	s.state = next
	s.lastErr = err
	return err
}

// PressButton parses a keypad label and presses it.
func (s *Session) PressButton(ctx context.Context, label string) error {
	ev, err := domain.ParseButton(label)
	if err != nil {
		s.lastErr = err
		return err
	}
	return s.Press(ctx, ev)
}

// Display returns the text currently shown.
func (s *Session) Display() string {
	return s.state.Display
}

// LastError returns the failure recorded by the most recent press, or nil.
func (s *Session) LastError() error {
	return s.lastErr
}

// State exposes the underlying state snapshot.
func (s *Session) State() *domain.State {
	return s.state
}

// Restore replaces the session state (used by hosts that persist sessions).
func (s *Session) Restore(state *domain.State) {
	if state != nil {
		s.state = state
	}
}
