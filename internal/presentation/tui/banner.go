package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the tally ASCII art banner with its version.
func PrintBanner(version string) {
	p := termenv.ColorProfile()
	// Amber-to-orange scheme, keypad style
	s1 := termenv.String("  _        _ _       ").Foreground(p.Color("#fbbf24"))
	s2 := termenv.String(" | |_ __ _| | |_   _ ").Foreground(p.Color("#f59e0b"))
	s3 := termenv.String(" | __/ _` | | | | | |").Foreground(p.Color("#f97316"))
	s4 := termenv.String(" | || (_| | | | |_| |").Foreground(p.Color("#ea580c"))
	s5 := termenv.String("  \\__\\__,_|_|_|\\__, |").Foreground(p.Color("#dc2626"))
	s6 := termenv.String("               |___/ ").Foreground(p.Color("#b91c1c"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println(s6)
	fmt.Printf("  v%s\n\n", version)
}
