package tally_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/tally"
	"github.com/aretw0/tally/pkg/domain"
)

// ExampleNew demonstrates driving a session the way a keypad would:
// one button press at a time, reading the display between presses.
func ExampleNew() {
	engine := tally.New()
	session := engine.NewSession()
	ctx := context.Background()

	for _, label := range []string{"5", "+", "3", "="} {
		if err := session.PressButton(ctx, label); err != nil {
			log.Fatal(err)
		}
	}

	fmt.Println(session.Display())
	// Output: 8
}

// ExampleSession_LastError shows the single failure mode: dividing by zero
// surfaces an error and resets the session to a usable initial state.
func ExampleSession_LastError() {
	engine := tally.New()
	session := engine.NewSession()
	ctx := context.Background()

	for _, label := range []string{"6", "÷", "0", "="} {
		if err := session.PressButton(ctx, label); err != nil {
			fmt.Println(err)
		}
	}

	fmt.Println(session.Display())
	// Output:
	// division by zero
	// 0
}

// ExampleEngine_Press shows the stateless API: the caller owns the state and
// threads it through each press.
func ExampleEngine_Press() {
	engine := tally.New()
	ctx := context.Background()

	state := domain.NewState()
	state, err := engine.PressButton(ctx, state, "9")
	if err != nil {
		log.Fatal(err)
	}
	state, err = engine.PressButton(ctx, state, "±")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(state.Display)
	// Output: -9
}
