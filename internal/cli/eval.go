package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/tally"
)

// RunEval presses a whole button sequence ("5 + 3 =") and writes the final
// display. Strict: unknown tokens or a division by zero fail the run.
func RunEval(w io.Writer, sequence string, debug bool) error {
	logger := createLogger(debug)

	engineOpts := []tally.Option{}
	if debug {
		engineOpts = append(engineOpts,
			tally.WithLogger(logger),
			tally.WithLifecycleHooks(createDebugHooks(logger)),
		)
	}
	engine := tally.New(engineOpts...)

	events, err := tally.Tokenize(sequence)
	if err != nil {
		return err
	}

	session := engine.NewSession()
	ctx := context.Background()
	for _, ev := range events {
		if err := session.Press(ctx, ev); err != nil {
			return fmt.Errorf("press %q: %w", ev.Label(), err)
		}
	}

	fmt.Fprintln(w, session.Display())
	return nil
}
