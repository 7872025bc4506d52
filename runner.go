package tally

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/tally/pkg/domain"
)

// Runner handles the read-eval-print loop of the tally engine using provided
// IO. This allows for easy testing and integration with different frontends
// (plain terminal, scripted harness).
type Runner struct {
	Input    io.Reader
	Output   io.Writer
	Headless bool
	Renderer ContentRenderer
}

// ContentRenderer transforms help content before outputting it.
// This allows for TUI rendering (markdown to ANSI) without coupling the core
// package.
type ContentRenderer func(string) (string, error)

// NewRunner creates a new Runner. Callers must set Input/Output (os.Stdin and
// os.Stdout for a terminal session, buffers in tests).
func NewRunner() *Runner {
	return &Runner{}
}

const helpText = `# tally keypad

Type button labels separated by spaces, then press enter.

| buttons | meaning |
|---|---|
| 0-9 | digits |
| . | decimal point |
| + - × ÷ | operators (* and / work too) |
| = | resolve the pending operation |
| C | clear |
| ± | sign change (+/- works too) |
| % | divide the display by 100 |

A token like 12.5 is pressed digit by digit. Type exit to leave.
`

// Run executes the REPL until EOF or an explicit exit. Each input line is a
// sequence of button presses; the display is printed after every line.
// Division by zero is reported and the calculator continues from "0".
func (r *Runner) Run(engine *Engine) error {
	if r.Input == nil {
		return fmt.Errorf("input reader must be set (use os.Stdin)")
	}
	if r.Output == nil {
		return fmt.Errorf("output writer must be set (use os.Stdout)")
	}

	lineReader := bufio.NewReader(r.Input)
	writer := r.Output
	session := engine.NewSession()
	ctx := context.Background()

	if !r.Headless {
		fmt.Fprintln(writer, "Type buttons separated by spaces (e.g. '5 + 3 ='). 'help' for the keypad, 'exit' to leave.")
	}

	for {
		if !r.Headless {
			fmt.Fprint(writer, "> ")
		}

		text, err := lineReader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				// Graceful exit on EOF; flush any trailing input first.
				if strings.TrimSpace(text) == "" {
					return nil
				}
			} else {
				return fmt.Errorf("input error: %w", err)
			}
		}

		input := strings.TrimSpace(text)
		switch input {
		case "":
			if err == io.EOF {
				return nil
			}
			continue
		case "exit", "quit":
			if !r.Headless {
				fmt.Fprintln(writer, "Bye!")
			}
			return nil
		case "help":
			r.printHelp(writer)
			continue
		}

		for _, token := range strings.Fields(input) {
			events, perr := tokenEvents(token)
			if perr != nil {
				fmt.Fprintf(writer, "error: %v\n", perr)
				continue
			}
			for _, ev := range events {
				if perr := session.Press(ctx, ev); perr != nil {
					// The session has already reset; tell the user and move on.
					fmt.Fprintf(writer, "error: %v\n", perr)
					break
				}
			}
		}
		fmt.Fprintln(writer, session.Display())

		if err == io.EOF {
			return nil
		}
	}
}

func (r *Runner) printHelp(writer io.Writer) {
	output := helpText
	if r.Renderer != nil {
		if rendered, err := r.Renderer(helpText); err == nil {
			output = rendered
		}
	}
	fmt.Fprintln(writer, strings.TrimSpace(output))
}

// Tokenize expands a whitespace-separated line of keypad tokens into button
// events. Unlike the REPL loop, it is strict: any unknown token fails the
// whole line. Used by one-shot harnesses (`tally eval`).
func Tokenize(line string) ([]domain.Event, error) {
	var events []domain.Event
	for _, token := range strings.Fields(line) {
		evs, err := tokenEvents(token)
		if err != nil {
			return nil, err
		}
		events = append(events, evs...)
	}
	return events, nil
}

// tokenEvents expands one whitespace-separated token into button events.
// A token is either a single recognized label ("+/-", "AC") or a run of
// one-character labels ("12.5" presses 1, 2, ., 5).
func tokenEvents(token string) ([]domain.Event, error) {
	if ev, err := domain.ParseButton(token); err == nil {
		return []domain.Event{ev}, nil
	}
	events := make([]domain.Event, 0, len(token))
	for _, r := range token {
		ev, err := domain.ParseButton(string(r))
		if err != nil {
			return nil, fmt.Errorf("%w: token %q", domain.ErrUnknownButton, token)
		}
		events = append(events, ev)
	}
	if len(events) == 0 {
		return nil, errors.New("empty token")
	}
	return events, nil
}
