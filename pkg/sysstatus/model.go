package sysstatus

import (
	"fmt"

	"github.com/datatug/sdtug/pkg/device"
)

type Level int

const (
	LevelOK Level = iota
	LevelWarning
	LevelError
)

// Item is one line of the system page.
type Item struct {
	Label  string
	Value  string // empty for items that only have a status
	Status string
	Level  Level
}

type Model struct {
	Items []Item
}

// Item returns the item with the given label.
func (m Model) Item(label string) (Item, bool) {
	for _, item := range m.Items {
		if item.Label == label {
			return item, true
		}
	}
	return Item{}, false
}

const (
	LabelMainSupply  = "Main supply"
	Label20VSupply   = "20V supply"
	Label5VSupply    = "5V supply"
	LabelRTC         = "RTC"
	LabelIPC         = "IPC"
	LabelMQTT        = "MQTT"
	LabelModbus      = "Modbus"
	LabelSD          = "SD card"
	LabelSDCapacity  = "SD capacity"
	LabelSDFree      = "SD free space"
	LabelLogFiles    = "Log files"
	LabelSensorFiles = "Sensor files"
)

const UnavailableText = "API UNAVAILABLE"

func okItem(label, value string, ok bool, okText, failText string, failLevel Level) Item {
	if ok {
		return Item{Label: label, Value: value, Status: okText, Level: LevelOK}
	}
	return Item{Label: label, Value: value, Status: failText, Level: failLevel}
}

func voltage(v float64) string {
	return fmt.Sprintf("%.1fV", v)
}

// BuildModel turns a status response into the lines of the system page.
// Sections the firmware did not send are left out.
func BuildModel(status *device.SystemStatus) Model {
	var items []Item
	if p := status.Power; p != nil {
		items = append(items,
			okItem(LabelMainSupply, voltage(p.MainVoltage), p.MainVoltageOK, "OK", "OUT OF RANGE", LevelError),
			okItem(Label20VSupply, voltage(p.V20Voltage), p.V20VoltageOK, "OK", "OUT OF RANGE", LevelError),
			okItem(Label5VSupply, voltage(p.V5Voltage), p.V5VoltageOK, "OK", "OUT OF RANGE", LevelError),
		)
	}
	if rtc := status.RTC; rtc != nil {
		items = append(items, okItem(LabelRTC, rtc.Time, rtc.OK, "OK", "ERROR", LevelError))
	}
	items = append(items,
		okItem(LabelIPC, "", status.IPC.Up(), "OK", "ERROR", LevelError),
		okItem(LabelMQTT, "", status.MQTT.Up(), "CONNECTED", "NOT-CONNECTED", LevelWarning),
		okItem(LabelModbus, "", status.Modbus.Up(), "CONNECTED", "NOT-CONNECTED", LevelWarning),
	)

	sd := status.SD
	switch {
	case !sd.Inserted:
		items = append(items, Item{Label: LabelSD, Status: "NOT INSERTED", Level: LevelWarning})
	case !sd.Ready:
		items = append(items, Item{Label: LabelSD, Status: "ERROR", Level: LevelError})
	default:
		items = append(items,
			Item{Label: LabelSD, Status: "OK", Level: LevelOK},
			Item{Label: LabelSDCapacity, Value: fmt.Sprintf("%.1f GB", sd.CapacityGB)},
			Item{Label: LabelSDFree, Value: fmt.Sprintf("%.1f GB", sd.FreeSpaceGB)},
			Item{Label: LabelLogFiles, Value: fmt.Sprintf("%.1f kB", sd.LogFileSizeKB)},
			Item{Label: LabelSensorFiles, Value: fmt.Sprintf("%.1f kB", sd.SensorFileSizeKB)},
		)
	}
	return Model{Items: items}
}

// PlaceholderModel is shown when the status endpoint cannot be reached.
func PlaceholderModel() Model {
	unavailable := func(label, value string) Item {
		return Item{Label: label, Value: value, Status: UnavailableText, Level: LevelWarning}
	}
	return Model{Items: []Item{
		unavailable(LabelMainSupply, "--V"),
		unavailable(Label20VSupply, "--V"),
		unavailable(Label5VSupply, "--V"),
		unavailable(LabelRTC, "--"),
		unavailable(LabelIPC, ""),
		unavailable(LabelMQTT, ""),
		unavailable(LabelModbus, ""),
		unavailable(LabelSD, ""),
	}}
}
