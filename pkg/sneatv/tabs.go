package sneatv

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// TabColors are tview color names, e.g. "black" or "lightgray".
type TabColors struct {
	Foreground string
	Background string
}

type TabsStyle struct {
	ActiveFocused   TabColors
	ActiveBlur      TabColors
	InactiveFocused TabColors
	InactiveBlur    TabColors
}

var UnderlineTabsStyle = TabsStyle{
	ActiveFocused:   TabColors{Foreground: "black", Background: "lightgray"},
	ActiveBlur:      TabColors{Foreground: "black", Background: "darkgray"},
	InactiveFocused: TabColors{Foreground: "lightgray", Background: "black"},
	InactiveBlur:    TabColors{Foreground: "gray", Background: "black"},
}

type Tab struct {
	ID    string
	Title string
	tview.Primitive
}

func NewTab(id string, title string, content tview.Primitive) *Tab {
	return &Tab{
		ID:        id,
		Title:     title,
		Primitive: content,
	}
}

// Tabs is a one-line tab bar above the pages of its tabs.
// Tab n is also reachable with Alt+n and by clicking its title.
type Tabs struct {
	*tview.Flex
	TextView *tview.TextView

	style     TabsStyle
	label     string
	onSwitch  func(from, to *Tab)
	focusDown func(current tview.Primitive)

	pages     *tview.Pages
	tabs      []*Tab
	active    int
	isFocused bool
}

type TabsOption func(*Tabs)

// WithLabel shows label in front of the tab titles.
func WithLabel(label string) TabsOption {
	return func(t *Tabs) {
		t.label = label
	}
}

// WithOnSwitch registers a callback for tab changes. from is nil for the first tab.
func WithOnSwitch(f func(from, to *Tab)) TabsOption {
	return func(t *Tabs) {
		t.onSwitch = f
	}
}

// FocusDown is called when Down is pressed on the tab bar.
func FocusDown(f func(current tview.Primitive)) TabsOption {
	return func(t *Tabs) {
		t.focusDown = f
	}
}

func NewTabs(style TabsStyle, options ...TabsOption) *Tabs {
	t := &Tabs{
		Flex:   tview.NewFlex().SetDirection(tview.FlexRow),
		style:  style,
		pages:  tview.NewPages(),
		active: -1,
		TextView: tview.NewTextView().
			SetDynamicColors(true).
			SetWrap(false),
	}
	for _, set := range options {
		set(t)
	}

	t.TextView.SetInputCapture(t.handleInput)
	t.TextView.SetFocusFunc(func() {
		t.isFocused = true
		t.render()
	})
	t.TextView.SetBlurFunc(func() {
		t.isFocused = false
		t.render()
	})
	t.TextView.SetMouseCapture(func(action tview.MouseAction, event *tcell.EventMouse) (tview.MouseAction, *tcell.EventMouse) {
		if action != tview.MouseLeftClick || !t.TextView.InRect(event.Position()) {
			return action, event
		}
		x, _ := event.Position()
		rectX, _, _, _ := t.TextView.GetInnerRect()
		if index := t.tabAt(x - rectX); index >= 0 {
			t.SwitchTo(index)
		}
		return action, event
	})

	t.AddItem(t.TextView, 1, 0, false)
	t.AddItem(t.pages, 0, 1, true)
	return t
}

// AddTabs appends tabs. The first tab ever added becomes active.
func (t *Tabs) AddTabs(tabs ...*Tab) {
	first := len(t.tabs) == 0
	t.tabs = append(t.tabs, tabs...)
	for _, tab := range tabs {
		t.pages.AddPage(tab.ID, tab.Primitive, true, false)
	}
	if first {
		t.SwitchTo(0)
	} else {
		t.render()
	}
}

func (t *Tabs) SwitchTo(index int) {
	if index < 0 || index >= len(t.tabs) || index == t.active {
		return
	}
	var from *Tab
	if t.active >= 0 {
		from = t.tabs[t.active]
	}
	t.active = index
	t.pages.SwitchToPage(t.tabs[index].ID)
	t.render()
	if t.onSwitch != nil {
		t.onSwitch(from, t.tabs[index])
	}
}

func (t *Tabs) SwitchToID(id string) {
	for i, tab := range t.tabs {
		if tab.ID == id {
			t.SwitchTo(i)
			return
		}
	}
}

// Active returns the current tab or nil when there are no tabs.
func (t *Tabs) Active() *Tab {
	if t.active < 0 || t.active >= len(t.tabs) {
		return nil
	}
	return t.tabs[t.active]
}

func (t *Tabs) colors(active bool) (TabColors, string) {
	switch {
	case active && t.isFocused:
		return t.style.ActiveFocused, "b"
	case active:
		return t.style.ActiveBlur, ""
	case t.isFocused:
		return t.style.InactiveFocused, "u"
	default:
		return t.style.InactiveBlur, "u"
	}
}

func (t *Tabs) title(i int) string {
	if i < 9 {
		return fmt.Sprintf("%d %s", i+1, t.tabs[i].Title)
	}
	return t.tabs[i].Title
}

// tabAt returns the tab drawn at column x of the bar or -1.
func (t *Tabs) tabAt(x int) int {
	start := tview.TaggedStringWidth(t.label)
	for i := range t.tabs {
		end := start + tview.TaggedStringWidth(t.title(i)) + 2
		if x >= start && x < end {
			return i
		}
		start = end
	}
	return -1
}

// render redraws the tab bar, e.g. ` device  1 Files  2 System `.
func (t *Tabs) render() {
	var sb strings.Builder
	sb.WriteString(t.label)
	for i := range t.tabs {
		c, attr := t.colors(i == t.active)
		if attr == "" {
			_, _ = fmt.Fprintf(&sb, "[%s:%s] %s [-:-]", c.Foreground, c.Background, t.title(i))
		} else {
			_, _ = fmt.Fprintf(&sb, "[%s:%s:%s] %s [-:-:%s]",
				c.Foreground, c.Background, attr, t.title(i), strings.ToUpper(attr))
		}
	}
	t.TextView.SetText(sb.String())
}

func (t *Tabs) handleInput(ev *tcell.EventKey) *tcell.EventKey {
	switch ev.Key() {
	case tcell.KeyRight:
		t.SwitchTo(t.active + 1)
		return nil
	case tcell.KeyLeft:
		t.SwitchTo(t.active - 1)
		return nil
	case tcell.KeyDown:
		if t.focusDown != nil {
			t.focusDown(t.TextView)
		}
		return nil
	case tcell.KeyRune:
		if ev.Modifiers()&tcell.ModAlt != 0 && ev.Rune() >= '1' && ev.Rune() <= '9' {
			t.SwitchTo(int(ev.Rune() - '1'))
			return nil
		}
	}
	return ev
}
