package sneatv

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

var (
	FrameFocusedStyle = tcell.StyleDefault.Foreground(DefaultFocusedBorderColor).Background(tcell.ColorBlack)
	FrameBlurredStyle = tcell.StyleDefault.Foreground(DefaultBlurBorderColor).Background(tcell.ColorBlack)
	FrameTitleColor   = tcell.ColorGhostWhite
)

// Framed is the content of a Frame. It keeps a blank row above and below for the frame lines.
type Framed interface {
	tview.Primitive
	GetTitle() string
	SetBorderPadding(top, bottom, left, right int) *tview.Box
}

type frameRunes struct {
	line, open, close, top, bottom rune
}

var (
	focusedRunes = frameRunes{line: '═', open: '╡', close: '╞', top: '╒', bottom: '╘'}
	blurredRunes = frameRunes{line: '─', open: '┤', close: '├', top: '┬', bottom: '┴'}
)

// Frame draws the title of its content centered in a line above it and an
// optional footer centered in a line below it. With a left rule it also draws
// a vertical line that can overlap the column of the panel to its left.
type Frame struct {
	Framed
	footer     tview.Primitive
	leftRule   bool
	ruleOffset int
}

type FrameOption func(*Frame)

// WithLeftRule draws a vertical line at offset columns from the left edge.
func WithLeftRule(offset int) FrameOption {
	return func(f *Frame) {
		f.leftRule = true
		f.ruleOffset = offset
	}
}

// WithFooter centers footer in the bottom line. A TextView footer is as wide as its first line.
func WithFooter(footer tview.Primitive) FrameOption {
	return func(f *Frame) {
		f.footer = footer
	}
}

func NewFrame(inner Framed, options ...FrameOption) *Frame {
	f := &Frame{Framed: inner}
	for _, set := range options {
		set(f)
	}
	inner.SetBorderPadding(1, 1, 0, 0)
	return f
}

func (f *Frame) Draw(screen tcell.Screen) {
	f.Framed.Draw(screen)

	x, y, width, height := f.GetRect()
	if width <= 0 || height <= 0 {
		return
	}
	style, runes := FrameBlurredStyle, blurredRunes
	if f.HasFocus() {
		style, runes = FrameFocusedStyle, focusedRunes
	}

	lineX, lineWidth := x, width
	if f.leftRule {
		ruleX := x + f.ruleOffset
		screen.SetContent(ruleX, y, runes.top, nil, style)
		for row := y + 1; row < y+height-1; row++ {
			screen.SetContent(ruleX, row, '│', nil, style)
		}
		screen.SetContent(ruleX, y+height-1, runes.bottom, nil, style)
		lineX, lineWidth = ruleX+1, x+width-ruleX-1
	}

	title := f.GetTitle()
	start := f.drawLine(screen, style, runes, lineX, y, lineWidth, tview.TaggedStringWidth(title))
	if start >= 0 {
		tview.Print(screen, title, start, y, lineWidth, tview.AlignLeft, FrameTitleColor)
	}

	if height < 2 {
		return
	}
	footerWidth := labelWidth(f.footer)
	start = f.drawLine(screen, style, runes, lineX, y+height-1, lineWidth, footerWidth)
	if start >= 0 {
		f.footer.SetRect(start, y+height-1, footerWidth, 1)
		f.footer.Draw(screen)
	}
}

// drawLine fills a horizontal line leaving a gap of labelWidth in the middle
// and returns where the gap starts, or -1 when there is no room for it.
func (f *Frame) drawLine(screen tcell.Screen, style tcell.Style, runes frameRunes, x, y, width, labelWidth int) int {
	for i := 0; i < width; i++ {
		screen.SetContent(x+i, y, runes.line, nil, style)
	}
	if labelWidth == 0 || labelWidth+2 > width {
		return -1
	}
	start := x + (width-labelWidth)/2
	screen.SetContent(start-1, y, runes.open, nil, style)
	screen.SetContent(start+labelWidth, y, runes.close, nil, style)
	return start
}

func labelWidth(p tview.Primitive) int {
	switch label := p.(type) {
	case nil:
		return 0
	case *tview.TextView:
		text, _, _ := strings.Cut(label.GetText(false), "\n")
		return tview.TaggedStringWidth(text)
	default:
		_, _, width, _ := label.GetRect()
		return max(width, 0)
	}
}
