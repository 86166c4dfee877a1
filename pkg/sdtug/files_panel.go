package sdtug

import (
	"fmt"

	"github.com/datatug/sdtug/pkg/filemanager"
	"github.com/datatug/sdtug/pkg/files"
	"github.com/datatug/sdtug/pkg/sneatv/crumbs"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const (
	contentTable   = "table"
	contentMessage = "message"

	retryHint = "\n\nPress [::b]r[::-] to retry"
)

var _ filemanager.View = (*filesPanel)(nil)

// filesPanel renders the browser: storage line, breadcrumbs, and the listing or a message.
type filesPanel struct {
	*tview.Flex
	ui *UI

	storage     *tview.TextView
	breadcrumbs *crumbs.Breadcrumbs
	content     *tview.Pages
	table       *tview.Table
	message     *tview.TextView

	rows []filemanager.Row
}

func newFilesPanel(ui *UI) *filesPanel {
	f := &filesPanel{
		ui:          ui,
		Flex:        tview.NewFlex().SetDirection(tview.FlexRow),
		storage:     tview.NewTextView().SetDynamicColors(true),
		breadcrumbs: crumbs.NewBreadcrumbs(),
		table:       tview.NewTable(),
		message: tview.NewTextView().
			SetDynamicColors(true).
			SetWrap(true).
			SetTextAlign(tview.AlignCenter),
	}
	f.SetBorder(true)
	f.SetBorderColor(Style.BlurBorderColor)
	f.SetTitle(" Files ")

	f.table.SetSelectable(true, false)
	f.table.SetFixed(1, 0)
	f.table.SetInputCapture(f.inputCapture)
	f.table.SetFocusFunc(f.focus)
	f.table.SetBlurFunc(f.blur)

	f.message.SetInputCapture(f.inputCapture)
	f.message.SetFocusFunc(f.focus)
	f.message.SetBlurFunc(f.blur)

	f.content = tview.NewPages().
		AddPage(contentTable, f.table, true, false).
		AddPage(contentMessage, f.message, true, true)

	f.breadcrumbs.SetNextFocusTarget(f.content)

	f.AddItem(f.storage, 1, 0, false)
	f.AddItem(f.breadcrumbs, 1, 0, false)
	f.AddItem(f.content, 0, 1, true)
	return f
}

func (f *filesPanel) focus() {
	f.SetBorderColor(Style.FocusedBorderColor)
}

func (f *filesPanel) blur() {
	f.SetBorderColor(Style.BlurBorderColor)
}

func (f *filesPanel) switchContent(name string) {
	hadFocus := f.content.HasFocus()
	f.content.SwitchToPage(name)
	if hadFocus {
		f.ui.app.SetFocus(f.content)
	}
}

func (f *filesPanel) showMessage(text string, color tcell.Color) {
	f.rows = nil
	f.table.Clear()
	f.message.SetText(text)
	f.message.SetTextColor(color)
	f.switchContent(contentMessage)
}

func (f *filesPanel) ShowLoading(text string) {
	f.showMessage(tview.Escape(text), Style.LoadingColor)
}

func (f *filesPanel) ShowListing(p string, rows []filemanager.Row) {
	f.SetTitle(fmt.Sprintf(" Files: %s ", tview.Escape(p)))
	f.rows = rows
	f.renderTable()
	f.switchContent(contentTable)
}

func (f *filesPanel) ShowEmpty(text string) {
	f.showMessage(tview.Escape(text), Style.FileColor)
}

func (f *filesPanel) ShowError(message string, retry bool) {
	text := tview.Escape(message)
	if retry {
		text += retryHint
	}
	f.showMessage(text, Style.ErrorColor)
}

func (f *filesPanel) ShowNotInserted(text string) {
	f.SetTitle(" Files ")
	f.showMessage(tview.Escape(text), Style.WarningColor)
}

// SetBreadcrumbs shows the path. Every segment but the current directory navigates.
func (f *filesPanel) SetBreadcrumbs(items []files.Crumb) {
	segments := make([]crumbs.Breadcrumb, len(items))
	for i, item := range items {
		if i == len(items)-1 {
			segments[i] = crumbs.NewBreadcrumb(item.Title, nil)
			continue
		}
		segments[i] = crumbs.NewBreadcrumb(item.Title, func() {
			f.ui.browser.NavigateTo(item.Path)
		})
	}
	f.breadcrumbs.SetItems(segments...)
}

func (f *filesPanel) ClearBreadcrumbs() {
	f.breadcrumbs.Clear()
}

func (f *filesPanel) SetStorageStatus(kind filemanager.StorageKind, text string) {
	f.storage.SetTextColor(storageColor(kind))
	f.storage.SetText(tview.Escape(text))
}

func (f *filesPanel) renderTable() {
	f.table.Clear()
	header := func(col int, text string, align int) {
		cell := tview.NewTableCell(text).
			SetTextColor(Style.TableHeaderColor).
			SetAlign(align).
			SetSelectable(false)
		f.table.SetCell(0, col, cell)
	}
	header(0, "Name", tview.AlignLeft)
	header(1, "Size", tview.AlignRight)
	header(2, "Modified", tview.AlignRight)
	f.table.GetCell(0, 0).SetExpansion(1)

	for i, row := range f.rows {
		color := Style.FileColor
		name := " " + tview.Escape(row.Name)
		switch {
		case row.IsDir():
			color = Style.DirColor
			name = "📁" + tview.Escape(row.Name)
		case !row.DownloadEnabled:
			color = Style.DisabledFileColor
		}
		f.table.SetCell(i+1, 0, tview.NewTableCell(name).SetTextColor(color).SetReference(row))
		f.table.SetCell(i+1, 1, tview.NewTableCell(row.SizeText).SetTextColor(color).SetAlign(tview.AlignRight))
		f.table.SetCell(i+1, 2, tview.NewTableCell(row.Modified).SetTextColor(color).SetAlign(tview.AlignRight))
	}
	if len(f.rows) > 0 {
		f.table.Select(1, 0)
	}
	f.table.ScrollToBeginning()
}

// selectedRow returns the row under the cursor when the listing is shown.
func (f *filesPanel) selectedRow() (filemanager.Row, bool) {
	if len(f.rows) == 0 {
		return filemanager.Row{}, false
	}
	rowIndex, _ := f.table.GetSelection()
	cell := f.table.GetCell(rowIndex, 0)
	if cell == nil {
		return filemanager.Row{}, false
	}
	row, ok := cell.GetReference().(filemanager.Row)
	return row, ok
}

func (f *filesPanel) open() {
	row, ok := f.selectedRow()
	if !ok {
		return
	}
	if row.IsDir() {
		f.ui.browser.NavigateTo(row.Path)
		return
	}
	f.ui.previewer.Preview(row)
}

func (f *filesPanel) goUp() {
	current := f.ui.browser.CurrentPath()
	if current == filemanager.RootPath {
		return
	}
	f.ui.browser.NavigateTo(files.ParentPath(current))
}

func (f *filesPanel) retryOrRefresh() {
	if f.ui.browser.Retryable() {
		f.ui.browser.Retry()
		return
	}
	f.ui.browser.Refresh()
}

func (f *filesPanel) inputCapture(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyEnter:
		f.open()
		return nil
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		f.goUp()
		return nil
	case tcell.KeyF3:
		if row, ok := f.selectedRow(); ok && !row.IsDir() {
			f.ui.previewer.Preview(row)
		}
		return nil
	case tcell.KeyF5:
		f.ui.downloadSelected()
		return nil
	case tcell.KeyF8, tcell.KeyDelete:
		f.ui.deleteSelected()
		return nil
	case tcell.KeyRight:
		f.ui.app.SetFocus(f.ui.previewer.pages)
		return nil
	case tcell.KeyUp:
		if rowIndex, _ := f.table.GetSelection(); len(f.rows) == 0 || rowIndex <= 1 {
			f.ui.app.SetFocus(f.breadcrumbs)
			return nil
		}
		return event
	case tcell.KeyRune:
		switch event.Rune() {
		case 'r', 'R':
			f.retryOrRefresh()
			return nil
		case 'd', 'D':
			f.ui.downloadSelected()
			return nil
		case '/':
			f.ui.browser.NavigateTo(filemanager.RootPath)
			return nil
		}
		return event
	default:
		return event
	}
}
