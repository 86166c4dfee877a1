package sneatv

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

var (
	DefaultFocusedBorderColor = tcell.ColorCornflowerBlue
	DefaultBlurBorderColor    = tcell.ColorGray
)

// DefaultBorderWithoutPadding draws a border around box that is highlighted while box has focus.
func DefaultBorderWithoutPadding(box *tview.Box) {
	box.SetBorder(true)
	box.SetBorderPadding(0, 0, 0, 0)
	box.SetBorderColor(DefaultBlurBorderColor)
	box.SetFocusFunc(func() {
		box.SetBorderColor(DefaultFocusedBorderColor)
	})
	box.SetBlurFunc(func() {
		box.SetBorderColor(DefaultBlurBorderColor)
	})
}
