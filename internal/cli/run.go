package cli

import (
	"os"

	"github.com/aretw0/tally"
	"github.com/aretw0/tally/internal/presentation/tui"
	"golang.org/x/term"
)

// RunOptions contains the configuration for the interactive run command.
type RunOptions struct {
	Headless bool
	Debug    bool
}

// RunSession starts the interactive calculator REPL on Stdin/Stdout.
func RunSession(opts RunOptions) error {
	logger := createLogger(opts.Debug)

	// The banner and glamour rendering only make sense on a real terminal.
	interactive := !opts.Headless && term.IsTerminal(int(os.Stdout.Fd()))
	if interactive {
		tui.PrintBanner(tally.Version)
	}

	engineOpts := []tally.Option{}
	if opts.Debug {
		engineOpts = append(engineOpts,
			tally.WithLogger(logger),
			tally.WithLifecycleHooks(createDebugHooks(logger)),
		)
	}
	engine := tally.New(engineOpts...)

	r := tally.NewRunner()
	r.Input = os.Stdin
	r.Output = os.Stdout
	r.Headless = !interactive
	if interactive {
		r.Renderer = tui.NewRenderer()
	}

	return r.Run(engine)
}
