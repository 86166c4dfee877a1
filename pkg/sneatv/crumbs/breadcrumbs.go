package crumbs

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const separator = " / "

var (
	LinkColor    = tcell.ColorLightSkyBlue
	CurrentColor = tcell.ColorWhiteSmoke
)

// Breadcrumbs is a one-line path navigator. Only clickable segments can be selected.
type Breadcrumbs struct {
	*tview.Box
	items    []Breadcrumb
	selected int // -1 when nothing is selectable

	nextFocusTarget tview.Primitive
	prevFocusTarget tview.Primitive
}

func NewBreadcrumbs() *Breadcrumbs {
	return &Breadcrumbs{
		Box:      tview.NewBox(),
		selected: -1,
	}
}

// SetItems replaces the path and preselects the innermost clickable segment.
func (b *Breadcrumbs) SetItems(items ...Breadcrumb) {
	b.items = items
	b.selected = b.lastClickable()
}

func (b *Breadcrumbs) Clear() {
	b.SetItems()
}

func (b *Breadcrumbs) Items() []Breadcrumb {
	return b.items
}

// Selected returns the index of the selected segment, or -1.
func (b *Breadcrumbs) Selected() int {
	return b.selected
}

func (b *Breadcrumbs) SetNextFocusTarget(p tview.Primitive) {
	b.nextFocusTarget = p
}

func (b *Breadcrumbs) SetPrevFocusTarget(p tview.Primitive) {
	b.prevFocusTarget = p
}

func (b *Breadcrumbs) lastClickable() int {
	for i := len(b.items) - 1; i >= 0; i-- {
		if b.items[i].Clickable() {
			return i
		}
	}
	return -1
}

// move selects the nearest clickable segment in direction step.
func (b *Breadcrumbs) move(step int) {
	for i := b.selected + step; i >= 0 && i < len(b.items); i += step {
		if b.items[i].Clickable() {
			b.selected = i
			return
		}
	}
}

func (b *Breadcrumbs) Focus(delegate func(p tview.Primitive)) {
	if b.selected < 0 || !b.items[b.selected].Clickable() {
		b.selected = b.lastClickable()
	}
	b.Box.Focus(delegate)
}

func label(item Breadcrumb) string {
	return tview.Escape(item.Title)
}

func color(item Breadcrumb) tcell.Color {
	if item.Clickable() {
		return LinkColor
	}
	return CurrentColor
}

func (b *Breadcrumbs) Draw(screen tcell.Screen) {
	b.DrawForSubclass(screen, b)
	x, y, width, _ := b.GetInnerRect()
	if width <= 0 {
		return
	}
	maxX := x + width
	cursorX := x
	hasFocus := b.HasFocus()
	for i, item := range b.items {
		if cursorX >= maxX {
			break
		}
		text := label(item)
		if hasFocus && i == b.selected {
			text = "[black:yellow]" + text + "[-:-]"
		}
		_, w := tview.Print(screen, text, cursorX, y, maxX-cursorX, tview.AlignLeft, color(item))
		cursorX += w
		if i < len(b.items)-1 && cursorX < maxX {
			_, sepW := tview.Print(screen, separator, cursorX, y, maxX-cursorX, tview.AlignLeft, tcell.ColorGray)
			cursorX += sepW
		}
	}
}

// itemAt returns the index of the segment drawn at column x, or -1.
func (b *Breadcrumbs) itemAt(x int) int {
	rectX, _, width, _ := b.GetInnerRect()
	maxX := rectX + width
	cursorX := rectX
	for i, item := range b.items {
		if cursorX >= maxX {
			break
		}
		w := tview.TaggedStringWidth(label(item))
		if x >= cursorX && x < cursorX+w {
			return i
		}
		cursorX += w + tview.TaggedStringWidth(separator)
	}
	return -1
}

func (b *Breadcrumbs) MouseHandler() func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
	return b.WrapMouseHandler(func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
		if action != tview.MouseLeftClick && action != tview.MouseLeftDown {
			return false, nil
		}
		x, y := event.Position()
		if !b.InInnerRect(x, y) {
			return false, nil
		}
		i := b.itemAt(x)
		if i >= 0 && b.items[i].Clickable() {
			b.selected = i
			if action == tview.MouseLeftClick {
				b.items[i].Activate()
			}
			return true, nil
		}
		if setFocus != nil {
			setFocus(b)
		}
		return true, nil
	})
}

func (b *Breadcrumbs) InputHandler() func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
	return b.WrapInputHandler(func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
		switch event.Key() {
		case tcell.KeyTab, tcell.KeyDown:
			if b.nextFocusTarget != nil {
				setFocus(b.nextFocusTarget)
			}
		case tcell.KeyBacktab, tcell.KeyUp:
			if b.prevFocusTarget != nil {
				setFocus(b.prevFocusTarget)
			}
		case tcell.KeyLeft:
			b.move(-1)
		case tcell.KeyRight:
			b.move(1)
		case tcell.KeyEnter:
			if b.selected >= 0 {
				b.items[b.selected].Activate()
			}
		default:
		}
	})
}
