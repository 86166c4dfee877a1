package sdtug

import (
	"context"
	"fmt"

	"github.com/datatug/sdtug/pkg/device"
	"github.com/datatug/sdtug/pkg/filemanager"
	"github.com/datatug/sdtug/pkg/files"
	"github.com/datatug/sdtug/pkg/fsutils"
	"github.com/datatug/sdtug/pkg/sneatv"
	"github.com/datatug/sdtug/pkg/viewers"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"
)

// MaxPreviewSize is how much of a file is fetched for the previewer.
const MaxPreviewSize = 64 * 1024

const (
	previewText = "text"
	previewMeta = "meta"
)

type previewer struct {
	*tview.Flex
	frame *sneatv.Frame
	ui    *UI

	pages     *tview.Pages
	textView  *tview.TextView
	metaTable *viewers.MetaTable
	footer    *tview.TextView

	path string
}

func (p *previewer) Draw(screen tcell.Screen) {
	p.frame.Draw(screen)
}

func newPreviewer(ui *UI) *previewer {
	flex := tview.NewFlex()
	p := &previewer{
		Flex: flex,
		ui:   ui,
		textView: tview.NewTextView().
			SetDynamicColors(true).
			SetWrap(false).
			SetScrollable(true),
		metaTable: viewers.NewMetaTable(),
		footer:    tview.NewTextView().SetDynamicColors(true),
	}
	p.frame = sneatv.NewFrame(flex,
		sneatv.WithLeftRule(-1),
		sneatv.WithFooter(p.footer),
	)
	p.SetTitle("Preview")
	p.textView.SetText("Select a file and press Enter to preview it.")
	p.textView.SetTextColor(Style.LoadingColor)

	p.pages = tview.NewPages().
		AddPage(previewText, p.textView, true, true).
		AddPage(previewMeta, p.metaTable, true, false)
	p.AddItem(p.pages, 0, 1, true)

	p.textView.SetInputCapture(p.inputCapture)
	p.metaTable.SetInputCapture(p.inputCapture)
	return p
}

func (p *previewer) inputCapture(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyLeft, tcell.KeyEscape:
		p.ui.app.SetFocus(p.ui.files.content)
		return nil
	default:
		return event
	}
}

func (p *previewer) setText(text string, color tcell.Color) {
	p.textView.Clear()
	p.textView.SetText(text)
	p.textView.SetTextColor(color)
	p.textView.ScrollToBeginning()
	p.pages.SwitchToPage(previewText)
}

func (p *previewer) setMeta(meta *viewers.Meta) {
	p.metaTable.SetMeta(meta)
	p.pages.SwitchToPage(previewMeta)
}

// Preview fetches the head of the file and shows it. A later Preview call supersedes an earlier one.
func (p *previewer) Preview(row filemanager.Row) {
	if row.IsDir() {
		return
	}
	filePath := row.Path
	p.path = filePath
	p.SetTitle(tview.Escape(row.Name))
	p.footer.SetText("")
	p.setText("Loading...", Style.LoadingColor)

	p.ui.loop.Go(func() {
		content, err := p.ui.device.View(context.Background(), filePath, MaxPreviewSize)
		p.ui.loop.Post(func() {
			if p.path != filePath {
				return
			}
			if err != nil {
				p.ui.log.Warn("failed to preview file", zap.String("path", filePath), zap.Error(err))
				p.setText(tview.Escape(fmt.Sprintf("Failed to load %s: %v", filePath, err)), Style.ErrorColor)
				return
			}
			p.render(content)
		})
	})
}

func (p *previewer) render(content *device.ViewContent) {
	name := files.BaseName(content.Path)
	if content.Size >= 0 {
		p.footer.SetText(fsutils.FormatFileSize(content.Size))
	}
	switch {
	case viewers.IsImage(name, content.ContentType):
		meta, err := viewers.ImageMeta(content.Data)
		if err != nil {
			p.setMeta(viewers.ContentMeta(content.ContentType, content.Size))
			return
		}
		p.setMeta(meta)
	case viewers.IsText(content.ContentType, content.Data):
		text := viewers.TextContent(name, content.Data)
		if content.Truncated {
			text += fmt.Sprintf("\n[gray]... only the first %s are shown[-]", fsutils.FormatFileSize(MaxPreviewSize))
		}
		p.setText(text, Style.FileColor)
	default:
		p.setMeta(viewers.ContentMeta(content.ContentType, content.Size))
	}
}
