package sdtug

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/datatug/sdtug/pkg/device"
	"github.com/datatug/sdtug/pkg/eventloop/looptest"
	"github.com/datatug/sdtug/pkg/filemanager"
	"github.com/datatug/sdtug/pkg/files"
	"github.com/datatug/sdtug/pkg/sdtug/navigator"
)

type fakeDevice struct {
	storage   device.StorageStatus
	system    *device.SystemStatus
	systemErr error

	listings map[string]files.Listing
	listErr  map[string]error
	listed   []string

	content     map[string][]byte
	contentType map[string]string
	downloadErr error

	deleteErr error
	deleted   []string

	systemCalls int
}

var _ Device = (*fakeDevice)(nil)

func newFakeDevice() *fakeDevice {
	return &fakeDevice{
		storage: device.StorageStatus{Inserted: true, Ready: true, CapacityGB: 29.72, FreeSpaceGB: 28.1},
		system: &device.SystemStatus{
			SD:    device.StorageStatus{Inserted: true, Ready: true, CapacityGB: 29.72, FreeSpaceGB: 28.1},
			Power: &device.PowerStatus{MainVoltage: 24.1, MainVoltageOK: true, V20Voltage: 20, V20VoltageOK: true, V5Voltage: 5, V5VoltageOK: true},
			RTC:   &device.RTCStatus{OK: true, Time: "2026-10-17 09:30:00"},
			IPC:   device.Health{OK: true, Connected: true},
		},
		listings: map[string]files.Listing{
			"/": {
				Path:        "/",
				Directories: []files.Dir{{Name: "logs", Path: "/logs"}},
				Files: []files.File{
					{Name: "config.json", Path: "/config.json", Size: 7, Modified: "2026-10-01 12:00"},
					{Name: "big.csv", Path: "/big.csv", Size: 6_000_000},
				},
			},
			"/logs": {Path: "/logs"},
		},
		listErr: map[string]error{},
		content: map[string][]byte{
			"/config.json": []byte(`{"a":1}`),
		},
		contentType: map[string]string{
			"/config.json": "application/json",
		},
	}
}

func notFound(op string) error {
	return &device.StatusError{Op: op, Code: http.StatusNotFound, Message: "File not found"}
}

func (d *fakeDevice) RootTitle() string {
	return "http://open-reactor.local"
}

func (d *fakeDevice) StorageStatus(context.Context) (device.StorageStatus, error) {
	return d.storage, nil
}

func (d *fakeDevice) SystemStatus(context.Context) (*device.SystemStatus, error) {
	d.systemCalls++
	if d.systemErr != nil {
		return nil, d.systemErr
	}
	return d.system, nil
}

func (d *fakeDevice) ListDir(_ context.Context, dirPath string) (files.Listing, error) {
	d.listed = append(d.listed, dirPath)
	if err := d.listErr[dirPath]; err != nil {
		return files.Listing{}, err
	}
	listing, ok := d.listings[dirPath]
	if !ok {
		return files.Listing{}, notFound("list directory")
	}
	return listing, nil
}

func (d *fakeDevice) Download(_ context.Context, filePath string, w io.Writer) (int64, error) {
	if d.downloadErr != nil {
		return 0, d.downloadErr
	}
	data, ok := d.content[filePath]
	if !ok {
		return 0, notFound("download file")
	}
	n, err := w.Write(data)
	return int64(n), err
}

func (d *fakeDevice) View(_ context.Context, filePath string, max int64) (*device.ViewContent, error) {
	data, ok := d.content[filePath]
	if !ok {
		return nil, notFound("view file")
	}
	content := &device.ViewContent{
		Path:        filePath,
		ContentType: d.contentType[filePath],
		Size:        int64(len(data)),
		Data:        data,
	}
	if int64(len(data)) > max {
		content.Data = data[:max]
		content.Truncated = true
	}
	return content, nil
}

func (d *fakeDevice) Delete(_ context.Context, filePath string) error {
	if d.deleteErr != nil {
		return d.deleteErr
	}
	d.deleted = append(d.deleted, filePath)
	return nil
}

type uiTest struct {
	ui    *UI
	loop  *looptest.Fake
	dev   *fakeDevice
	dir   string
	stops int
}

func newUITest(t *testing.T, dev *fakeDevice, o ...Option) *uiTest {
	t.Helper()
	tt := &uiTest{
		loop: looptest.New(),
		dev:  dev,
		dir:  t.TempDir(),
	}
	app := navigator.NewApp(nil,
		navigator.WithStop(func() { tt.stops++ }),
	)
	o = append([]Option{WithDownloadDir(tt.dir)}, o...)
	tt.ui = NewUI(app, tt.loop, dev, o...)
	return tt
}

// start runs SetupApp and lets the first listing complete.
func (tt *uiTest) start() {
	SetupApp(tt.ui.app, tt.ui)
	tt.loop.Advance(filemanager.GraceDelay)
}

// selectRow moves the cursor to the row with the given name.
func (tt *uiTest) selectRow(t *testing.T, name string) filemanager.Row {
	t.Helper()
	for i, row := range tt.ui.files.rows {
		if row.Name == name {
			tt.ui.files.table.Select(i+1, 0)
			return row
		}
	}
	t.Fatalf("row %q not found", name)
	return filemanager.Row{}
}
