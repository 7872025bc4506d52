/*
Package tally is a deterministic calculator state machine engine with a
keypad-event API, designed to be embedded behind any presentation surface
(CLI, HTTP, MCP).

It separates the calculation core (a small state machine over digit, decimal,
operator, equals, clear, sign-change and percentage events) from the hosts
that capture button presses and render the display. The engine processes one
discrete event at a time, synchronously, and holds at most one pending binary
operation.

# Key Features

  - Deterministic transitions: given the same state and event, the result is
    always reproducible.
  - Hexagonal architecture: the core never touches IO; adapters (REPL, HTTP,
    MCP, session stores) live at the edges.
  - Single failure mode: division by zero surfaces as an error and resets the
    state to its initial values, exactly like pressing Clear.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/tally"
	)

	func main() {
		eng := tally.New()
		session := eng.NewSession()

		ctx := context.Background()
		for _, label := range []string{"5", "+", "3", "="} {
			if err := session.PressButton(ctx, label); err != nil {
				log.Fatal(err)
			}
		}

		fmt.Println(session.Display()) // "8"
	}
*/
package tally
