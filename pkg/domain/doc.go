// Package domain contains the core value types of the tally engine: keypad
// events, the four arithmetic operators, the calculator state snapshot and the
// observability hook definitions. It has no dependencies on adapters.
package domain
