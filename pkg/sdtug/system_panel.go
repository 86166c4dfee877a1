package sdtug

import (
	"github.com/datatug/sdtug/pkg/sneatv"
	"github.com/datatug/sdtug/pkg/sysstatus"
	"github.com/rivo/tview"
)

var _ sysstatus.View = (*systemPanel)(nil)

type systemPanel struct {
	*tview.Table
}

func newSystemPanel() *systemPanel {
	p := &systemPanel{
		Table: tview.NewTable(),
	}
	sneatv.DefaultBorderWithoutPadding(p.Box)
	p.SetTitle(" System status ")
	p.SetSelectable(true, false)
	p.ShowSystemStatus(sysstatus.PlaceholderModel())
	return p
}

func (p *systemPanel) ShowSystemStatus(model sysstatus.Model) {
	row, _ := p.GetSelection()
	p.Clear()
	for i, item := range model.Items {
		p.SetCell(i, 0, tview.NewTableCell(" "+item.Label).SetTextColor(Style.TableHeaderColor))
		p.SetCell(i, 1, tview.NewTableCell(tview.Escape(item.Value)).SetAlign(tview.AlignRight))
		p.SetCell(i, 2, tview.NewTableCell(tview.Escape(item.Status)).
			SetTextColor(levelColor(item.Level)).
			SetExpansion(1))
	}
	if row >= p.GetRowCount() {
		row = 0
	}
	p.Select(row, 0)
}
