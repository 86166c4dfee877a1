package sneatv

import (
	"strings"
	"testing"

	"github.com/datatug/sdtug/pkg/sneatv/sneatest"
	"github.com/rivo/tview"
	"github.com/stretchr/testify/assert"
)

func TestFrame_Draw(t *testing.T) {
	screen := sneatest.NewSimScreen(t, 40, 10)
	defer screen.Fini()

	inner := tview.NewFlex()
	inner.SetTitle("config.json")
	footer := tview.NewTextView().SetText("2 KiB")
	frame := NewFrame(inner, WithLeftRule(0), WithFooter(footer))
	frame.SetRect(0, 0, 40, 10)

	frame.Draw(screen)
	top := sneatest.ReadLine(screen, 0, 40)
	assert.True(t, strings.HasPrefix(top, "┬──"), top)
	assert.Contains(t, top, "┤config.json├")
	assert.Equal(t, "│", sneatest.ReadLine(screen, 5, 1))
	bottom := sneatest.ReadLine(screen, 9, 40)
	assert.True(t, strings.HasPrefix(bottom, "┴"), bottom)
	assert.Contains(t, bottom, "┤2 KiB├")

	fg, _ := sneatest.Colors(screen, 1, 0)
	assert.Equal(t, DefaultBlurBorderColor, fg)

	frame.Focus(func(p tview.Primitive) {})
	frame.Draw(screen)
	top = sneatest.ReadLine(screen, 0, 40)
	assert.True(t, strings.HasPrefix(top, "╒══"), top)
	assert.Contains(t, top, "╡config.json╞")
	assert.True(t, strings.HasPrefix(sneatest.ReadLine(screen, 9, 40), "╘"))
	fg, _ = sneatest.Colors(screen, 1, 0)
	assert.Equal(t, DefaultFocusedBorderColor, fg)
}

func TestFrame_RuleOverlapsLeftNeighbour(t *testing.T) {
	screen := sneatest.NewSimScreen(t, 20, 4)
	defer screen.Fini()

	inner := tview.NewFlex()
	frame := NewFrame(inner, WithLeftRule(-1))
	frame.SetRect(5, 0, 10, 4)
	frame.Draw(screen)

	assert.Equal(t, "┬──────────", sneatest.ReadLine(screen, 0, 15)[4:])
	assert.Equal(t, "┴──────────", sneatest.ReadLine(screen, 3, 15)[4:])
	assert.Equal(t, "│", strings.TrimSpace(sneatest.ReadLine(screen, 1, 15)))
}

func TestFrame_TitleTooWide(t *testing.T) {
	screen := sneatest.NewSimScreen(t, 10, 3)
	defer screen.Fini()

	inner := tview.NewFlex()
	inner.SetTitle("a-very-long-file-name.txt")
	frame := NewFrame(inner)
	frame.SetRect(0, 0, 10, 3)
	frame.Draw(screen)

	assert.Equal(t, "──────────", sneatest.ReadLine(screen, 0, 10))
}

func TestLabelWidth(t *testing.T) {
	assert.Equal(t, 0, labelWidth(nil))
	assert.Equal(t, 5, labelWidth(tview.NewTextView().SetText("[red]hello[-]\nworld!")))
	box := tview.NewBox()
	box.SetRect(0, 0, 7, 1)
	assert.Equal(t, 7, labelWidth(box))
}
