// Package viewers turns file content fetched from the device into something the previewer can show.
package viewers

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

type Meta struct {
	Groups []*MetaGroup
}

type MetaGroup struct {
	ID      string        `json:"id"`
	Title   string        `json:"title"`
	Records []*MetaRecord `json:"records"`
}

type MetaRecord struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Value      string `json:"value"`
	ValueAlign Align
}

type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// Record returns the record with the given ID from any group.
func (m *Meta) Record(id string) *MetaRecord {
	if m == nil {
		return nil
	}
	for _, g := range m.Groups {
		for _, r := range g.Records {
			if r.ID == id {
				return r
			}
		}
	}
	return nil
}

// MetaTable renders Meta as a two-column table: group titles, then indented records.
type MetaTable struct {
	*tview.Table
}

func NewMetaTable() *MetaTable {
	return &MetaTable{
		Table: tview.NewTable(),
	}
}

func (t *MetaTable) SetMeta(meta *Meta) {
	t.Clear()
	if meta == nil {
		return
	}
	row := 0
	for _, g := range meta.Groups {
		t.SetCell(row, 0, tview.NewTableCell(g.Title).
			SetTextColor(tcell.ColorWhiteSmoke).
			SetSelectable(false))
		row++
		for _, r := range g.Records {
			t.SetCell(row, 0, tview.NewTableCell("  "+r.Title).SetTextColor(tcell.ColorLightGray))
			valueCell := tview.NewTableCell(r.Value).SetExpansion(1)
			if r.ValueAlign == AlignRight {
				valueCell.SetAlign(tview.AlignRight)
			}
			t.SetCell(row, 1, valueCell)
			row++
		}
	}
}
