// Package sneatest draws widgets on a simulation screen and reads the result back.
package sneatest

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
)

// NewSimScreen returns an initialized simulation screen of the given size.
func NewSimScreen(t *testing.T, width, height int) tcell.Screen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("simulation screen: %v", err)
	}
	screen.SetSize(width, height)
	return screen
}

// ReadLine returns the first width cells of row y. Empty cells read as spaces.
func ReadLine(screen tcell.Screen, y, width int) string {
	var sb strings.Builder
	for x := range width {
		cell, _, _ := screen.Get(x, y)
		if cell == "" {
			cell = " "
		}
		sb.WriteString(cell)
	}
	return sb.String()
}

// Colors returns the foreground and background color of the cell at x, y.
func Colors(screen tcell.Screen, x, y int) (fg, bg tcell.Color) {
	_, style, _ := screen.Get(x, y)
	fg, bg, _ = style.Decompose()
	return fg, bg
}
