package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner for strata.
func PrintBanner() {
	p := termenv.ColorProfile()
	// Stratified color scheme, dark to light like a rock face.
	s1 := termenv.String("       _             _        ").Foreground(p.Color("#1e3a8a"))
	s2 := termenv.String("  ___ | |_ _ __ __ _| |_ __ _ ").Foreground(p.Color("#1d4ed8"))
	s3 := termenv.String(" / __|| __| '__/ _` | __/ _` |").Foreground(p.Color("#2563eb"))
	s4 := termenv.String(" \\__ \\| |_| | | (_| | || (_| |").Foreground(p.Color("#3b82f6"))
	s5 := termenv.String(" |___/ \\__|_|  \\__,_|\\__\\__,_|").Foreground(p.Color("#93c5fd"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println()
}
