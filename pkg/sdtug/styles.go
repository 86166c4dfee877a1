package sdtug

import (
	"github.com/datatug/sdtug/pkg/filemanager"
	"github.com/datatug/sdtug/pkg/sysstatus"
	"github.com/gdamore/tcell/v2"
)

type Styles struct {
	FocusedBorderColor tcell.Color
	BlurBorderColor    tcell.Color

	TableHeaderColor  tcell.Color
	DirColor          tcell.Color
	FileColor         tcell.Color
	DisabledFileColor tcell.Color

	LoadingColor tcell.Color
	OKColor      tcell.Color
	WarningColor tcell.Color
	ErrorColor   tcell.Color

	HotkeyColor string
}

var Style = Styles{
	FocusedBorderColor: tcell.ColorCornflowerBlue,
	BlurBorderColor:    tcell.ColorGray,

	TableHeaderColor:  tcell.ColorWhiteSmoke,
	DirColor:          tcell.ColorLightSkyBlue,
	FileColor:         tcell.ColorWhiteSmoke,
	DisabledFileColor: tcell.ColorDimGray,

	LoadingColor: tcell.ColorLightGray,
	OKColor:      tcell.ColorLightGreen,
	WarningColor: tcell.ColorOrange,
	ErrorColor:   tcell.ColorOrangeRed,

	HotkeyColor: "yellow",
}

func storageColor(kind filemanager.StorageKind) tcell.Color {
	switch kind {
	case filemanager.StorageReady:
		return Style.OKColor
	case filemanager.StorageInitializing:
		return Style.WarningColor
	case filemanager.StorageNotInserted:
		return Style.ErrorColor
	default:
		return Style.LoadingColor
	}
}

func levelColor(level sysstatus.Level) tcell.Color {
	switch level {
	case sysstatus.LevelOK:
		return Style.OKColor
	case sysstatus.LevelWarning:
		return Style.WarningColor
	default:
		return Style.ErrorColor
	}
}
