package device

import (
	"bytes"
	"encoding/json"
)

// MaxDownloadSize matches the firmware limit for /api/sd/download.
const MaxDownloadSize = 5_242_880

// StorageStatus is the "sd" object of /api/system/status.
type StorageStatus struct {
	Inserted         bool    `json:"inserted"`
	Ready            bool    `json:"ready"`
	CapacityGB       float64 `json:"capacityGB"`
	FreeSpaceGB      float64 `json:"freeSpaceGB"`
	LogFileSizeKB    float64 `json:"logFileSizeKB"`
	SensorFileSizeKB float64 `json:"sensorFileSizeKB"`
}

type PowerStatus struct {
	MainVoltage   float64 `json:"mainVoltage"`
	MainVoltageOK bool    `json:"mainVoltageOK"`
	V20Voltage    float64 `json:"v20Voltage"`
	V20VoltageOK  bool    `json:"v20VoltageOK"`
	V5Voltage     float64 `json:"v5Voltage"`
	V5VoltageOK   bool    `json:"v5VoltageOK"`
}

type RTCStatus struct {
	OK   bool   `json:"ok"`
	Time string `json:"time"`
}

// SystemStatus is the body of /api/system/status.
type SystemStatus struct {
	SD     StorageStatus `json:"sd"`
	Power  *PowerStatus  `json:"power,omitempty"`
	RTC    *RTCStatus    `json:"rtc,omitempty"`
	IPC    Health        `json:"ipc"`
	MQTT   Health        `json:"mqtt"`
	Modbus Health        `json:"modbus"`
}

// Health is a subsystem state. Older firmware reports a plain bool,
// newer firmware an object with details.
type Health struct {
	OK         bool `json:"ok"`
	Connected  bool `json:"connected"`
	Configured bool `json:"configured,omitempty"`
	Timeout    bool `json:"timeout,omitempty"`
	Fault      bool `json:"fault,omitempty"`
}

func (h *Health) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*h = Health{}
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*h = Health{OK: b, Connected: b, Configured: b}
		return nil
	}
	type plain Health
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*h = Health(p)
	// IPC reports ok/connected, modbus reports configured/connected/fault.
	if !h.OK && h.Connected && !h.Fault && !h.Timeout {
		h.OK = true
	}
	return nil
}

// Up is the single flag the dashboard shows for a subsystem.
func (h Health) Up() bool {
	return h.OK && !h.Fault && !h.Timeout
}

// ViewContent is the head of a file served by /api/sd/view.
type ViewContent struct {
	Path        string
	ContentType string
	Size        int64 // Content-Length, -1 if unknown
	Data        []byte
	Truncated   bool
}
