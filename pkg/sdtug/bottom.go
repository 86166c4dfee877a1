package sdtug

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

type MenuItem struct {
	Title   string
	HotKeys []string
	Action  func()
}

// bottom is the status bar: a clickable menu on the left and the last operation result on the right.
type bottom struct {
	*tview.Flex
	ui        *UI
	menu      *tview.TextView
	status    *tview.TextView
	menuItems []MenuItem
}

func newBottom(ui *UI) *bottom {
	b := &bottom{
		ui:   ui,
		Flex: tview.NewFlex(),
		menu: tview.NewTextView().
			SetDynamicColors(true).
			SetRegions(true).
			SetWrap(false).
			SetTextColor(tcell.ColorSlateGray),
		status: tview.NewTextView().
			SetDynamicColors(true).
			SetWrap(false).
			SetTextAlign(tview.AlignRight),
	}
	b.menu.SetHighlightedFunc(b.highlighted)
	b.menuItems = b.getMenuItems()
	b.render()

	b.AddItem(b.menu, 0, 3, false)
	b.AddItem(b.status, 0, 2, false)
	return b
}

func regionID(hotKey string) string {
	return strings.ReplaceAll(hotKey, "+", "-")
}

func (b *bottom) render() {
	b.menu.SetText(b.renderMenuItems(b.menuItems))
}

func (b *bottom) renderMenuItems(menuItems []MenuItem) string {
	const separator = "┊"
	var sb strings.Builder
	for i, mi := range menuItems {
		title := mi.Title
		for _, key := range mi.HotKeys {
			hotkeyText := fmt.Sprintf("[%s]%s[-]", Style.HotkeyColor, key)
			title = strings.Replace(title, key, hotkeyText, 1)
		}
		if i > 0 {
			sb.WriteString(separator)
		}
		_, _ = fmt.Fprintf(&sb, `["%s"]%s[""]`, regionID(mi.HotKeys[0]), title)
	}
	return sb.String()
}

func (b *bottom) highlighted(added, _, _ []string) {
	if len(added) == 0 {
		return
	}
	region := added[0]
	b.menu.Highlight()
	for _, mi := range b.menuItems {
		if regionID(mi.HotKeys[0]) == region && mi.Action != nil {
			mi.Action()
			return
		}
	}
}

// SetStatus shows the result of the last operation.
func (b *bottom) SetStatus(text string, color tcell.Color) {
	b.status.SetTextColor(color)
	b.status.SetText(tview.Escape(text) + " ")
}

func (b *bottom) Status() string {
	return strings.TrimSuffix(b.status.GetText(true), " ")
}

func (b *bottom) getMenuItems() []MenuItem {
	return []MenuItem{
		{Title: "Enter Open", HotKeys: []string{"Enter"}, Action: b.ui.files.open},
		{Title: "F3 View", HotKeys: []string{"F3"}, Action: func() {
			if row, ok := b.ui.files.selectedRow(); ok {
				b.ui.previewer.Preview(row)
			}
		}},
		{Title: "F5 Download", HotKeys: []string{"F5"}, Action: b.ui.downloadSelected},
		{Title: "F8 Delete", HotKeys: []string{"F8"}, Action: b.ui.deleteSelected},
		{Title: "r Retry", HotKeys: []string{"r"}, Action: b.ui.files.retryOrRefresh},
		{Title: "Alt+x Exit", HotKeys: []string{"Alt+x"}, Action: b.ui.quit},
	}
}
