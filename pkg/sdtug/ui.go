// Package sdtug is the terminal UI: a Files tab that browses the SD card
// and a System tab with the controller's health.
package sdtug

import (
	"github.com/datatug/sdtug/pkg/eventloop"
	"github.com/datatug/sdtug/pkg/filemanager"
	"github.com/datatug/sdtug/pkg/logging"
	"github.com/datatug/sdtug/pkg/sdtug/navigator"
	"github.com/datatug/sdtug/pkg/sneatv"
	"github.com/datatug/sdtug/pkg/sysstatus"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"
)

const (
	filesTabID  = "files"
	systemTabID = "system"

	mainPage    = "main"
	confirmPage = "confirm"
)

// UI is the root primitive of the application.
type UI struct {
	*tview.Pages
	app    navigator.App
	loop   eventloop.Loop
	device Device
	log    *zap.Logger
	o      uiOptions

	layout    *tview.Flex
	tabs      *sneatv.Tabs
	files     *filesPanel
	previewer *previewer
	system    *systemPanel
	bottom    *bottom

	browser *filemanager.Browser
	poller  *sysstatus.Poller

	started bool
}

type uiOptions struct {
	downloadDir string
	startPath   string
}

type Option func(o *uiOptions)

// WithDownloadDir sets the local directory downloads are saved to.
func WithDownloadDir(dir string) Option {
	return func(o *uiOptions) {
		o.downloadDir = dir
	}
}

func WithStartPath(p string) Option {
	return func(o *uiOptions) {
		o.startPath = p
	}
}

func NewUI(app navigator.App, loop eventloop.Loop, dev Device, options ...Option) *UI {
	ui := &UI{
		Pages:  tview.NewPages(),
		app:    app,
		loop:   loop,
		device: dev,
		log:    logging.L().Named("ui"),
		o: uiOptions{
			downloadDir: ".",
			startPath:   filemanager.RootPath,
		},
	}
	for _, option := range options {
		option(&ui.o)
	}

	ui.previewer = newPreviewer(ui)
	ui.files = newFilesPanel(ui)
	ui.system = newSystemPanel()
	ui.bottom = newBottom(ui)

	ui.browser = filemanager.NewBrowser(loop, dev, ui.files,
		filemanager.WithPath(ui.o.startPath),
		filemanager.WithLogger(logging.L().Named("browser")),
	)
	ui.poller = sysstatus.NewPoller(loop, dev, ui.system)

	filesPage := tview.NewFlex().
		AddItem(ui.files, 0, 3, true).
		AddItem(ui.previewer, 0, 2, false)

	ui.tabs = sneatv.NewTabs(sneatv.UnderlineTabsStyle,
		sneatv.WithLabel(" "+tview.Escape(dev.RootTitle())+" "),
		sneatv.WithOnSwitch(ui.onTabSwitch),
		sneatv.FocusDown(func(tview.Primitive) {
			if tab := ui.tabs.Active(); tab != nil {
				ui.app.SetFocus(tab.Primitive)
			}
		}),
	)
	ui.tabs.AddTabs(
		sneatv.NewTab(filesTabID, "Files", filesPage),
		sneatv.NewTab(systemTabID, "System", ui.system),
	)
	ui.files.breadcrumbs.SetPrevFocusTarget(ui.tabs.TextView)

	ui.layout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(ui.tabs, 0, 1, true).
		AddItem(ui.bottom, 1, 0, false)
	ui.layout.SetInputCapture(ui.inputCapture)

	ui.AddPage(mainPage, ui.layout, true, true)
	return ui
}

// SetupApp installs ui as the root of app and starts it on the event loop.
func SetupApp(app navigator.App, ui *UI) {
	app.EnableMouse(true)
	app.SetRoot(ui, true)
	ui.loop.Post(ui.Start)
}

// Start activates the current tab. Tab switches before Start are not acted on.
func (ui *UI) Start() {
	if ui.started {
		return
	}
	ui.started = true
	ui.applyTab(ui.tabs.Active())
}

// Stop deactivates both pages. Pending callbacks become no-ops.
func (ui *UI) Stop() {
	ui.started = false
	ui.browser.Deactivate()
	ui.poller.Stop()
}

func (ui *UI) onTabSwitch(_, to *sneatv.Tab) {
	if !ui.started {
		return
	}
	ui.applyTab(to)
}

func (ui *UI) applyTab(tab *sneatv.Tab) {
	if tab == nil {
		return
	}
	ui.log.Debug("tab", zap.String("id", tab.ID))
	switch tab.ID {
	case filesTabID:
		ui.poller.Stop()
		ui.browser.Activate()
	case systemTabID:
		ui.browser.Deactivate()
		ui.poller.Start()
	}
}

func (ui *UI) inputCapture(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyF10:
		ui.quit()
		return nil
	case tcell.KeyRune:
		if event.Modifiers()&tcell.ModAlt == 0 {
			return event
		}
		switch event.Rune() {
		case '1':
			ui.tabs.SwitchToID(filesTabID)
			return nil
		case '2':
			ui.tabs.SwitchToID(systemTabID)
			return nil
		case 'x', 'X':
			ui.quit()
			return nil
		default:
			return event
		}
	default:
		return event
	}
}

func (ui *UI) quit() {
	ui.Stop()
	ui.app.Stop()
}

// confirm shows a modal dialog and calls onConfirm if the user picks the first button.
func (ui *UI) confirm(text, confirmLabel string, onConfirm func()) {
	modal := tview.NewModal().
		SetText(text).
		AddButtons([]string{confirmLabel, "Cancel"})
	modal.SetDoneFunc(func(buttonIndex int, _ string) {
		ui.RemovePage(confirmPage)
		ui.app.SetFocus(ui.files.content)
		if buttonIndex == 0 && onConfirm != nil {
			onConfirm()
		}
	})
	ui.AddPage(confirmPage, modal, false, true)
	ui.app.SetFocus(modal)
}
