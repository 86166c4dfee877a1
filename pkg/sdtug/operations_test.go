package sdtug

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/datatug/sdtug/pkg/device"
	"github.com/datatug/sdtug/pkg/filemanager"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
)

func TestUI_Download(t *testing.T) {
	tt := newUITest(t, newFakeDevice())
	tt.start()

	tt.selectRow(t, "config.json")
	assert.Nil(t, tt.ui.files.inputCapture(key(tcell.KeyF5)))
	tt.loop.RunPending()

	target := filepath.Join(tt.dir, "config.json")
	data, err := os.ReadFile(target)
	assert.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(data))
	assert.Equal(t, fmt.Sprintf("Saved %s (7 bytes)", target), tt.ui.bottom.Status())

	// A second download does not overwrite the first.
	tt.ui.files.inputCapture(runeKey('d'))
	tt.loop.RunPending()
	_, err = os.Stat(filepath.Join(tt.dir, "config (1).json"))
	assert.NoError(t, err)
}

func TestUI_Download_TooLarge(t *testing.T) {
	tt := newUITest(t, newFakeDevice())
	tt.start()

	row := tt.selectRow(t, "big.csv")
	tt.ui.downloadSelected()
	tt.loop.RunPending()

	assert.Equal(t, row.Tooltip, tt.ui.bottom.Status())
	entries, err := os.ReadDir(tt.dir)
	assert.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUI_Download_Failure(t *testing.T) {
	dev := newFakeDevice()
	dev.downloadErr = &device.StatusError{Op: "download file", Code: http.StatusRequestEntityTooLarge}
	tt := newUITest(t, dev)
	tt.start()

	tt.selectRow(t, "config.json")
	tt.ui.downloadSelected()
	tt.loop.RunPending()

	assert.Equal(t, "Download of config.json failed: file is too large to download", tt.ui.bottom.Status())
	entries, err := os.ReadDir(tt.dir)
	assert.NoError(t, err)
	assert.Empty(t, entries, "partial file must be removed")
}

func TestUI_Download_IgnoresDirectories(t *testing.T) {
	tt := newUITest(t, newFakeDevice())
	tt.start()

	tt.selectRow(t, "logs")
	tt.ui.downloadSelected()
	assert.Equal(t, "", tt.ui.bottom.Status())
}

func TestDownloadFile_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "downloads")
	target, n, err := downloadFile(t.Context(), newFakeDevice(), "/config.json", dir, "config.json")
	assert.NoError(t, err)
	assert.Equal(t, int64(7), n)
	assert.Equal(t, filepath.Join(dir, "config.json"), target)
}

func TestUI_ConfirmDelete(t *testing.T) {
	tt := newUITest(t, newFakeDevice())
	tt.start()

	tt.selectRow(t, "config.json")
	assert.Nil(t, tt.ui.files.inputCapture(key(tcell.KeyF8)))
	assert.True(t, tt.ui.HasPage(confirmPage))
	assert.Empty(t, tt.dev.deleted)
}

func TestUI_ConfirmDelete_Refused(t *testing.T) {
	tests := []struct {
		name     string
		row      filemanager.Row
		expected string
	}{
		{
			name:     "directory",
			row:      filemanager.Row{Kind: filemanager.RowDir, Name: "data", Path: "/data"},
			expected: deleteDirText,
		},
		{
			name:     "protected",
			row:      filemanager.Row{Kind: filemanager.RowFile, Name: "logs", Path: "/logs"},
			expected: "/logs is protected and cannot be deleted",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tt := newUITest(t, newFakeDevice())
			tt.ui.confirmDelete(tc.row)
			assert.False(t, tt.ui.HasPage(confirmPage))
			assert.Equal(t, tc.expected, tt.ui.bottom.Status())
			assert.Empty(t, tt.dev.deleted)
		})
	}
}

func TestUI_DeleteFile(t *testing.T) {
	tt := newUITest(t, newFakeDevice())
	tt.start()

	row := tt.selectRow(t, "config.json")
	tt.ui.deleteFile(row)
	tt.loop.RunPending()

	assert.Equal(t, []string{"/config.json"}, tt.dev.deleted)
	assert.Equal(t, "Deleted /config.json", tt.ui.bottom.Status())
	assert.Equal(t, []string{"/", "/"}, tt.dev.listed, "listing is refreshed")
}

func TestUI_DeleteFile_Failure(t *testing.T) {
	dev := newFakeDevice()
	dev.deleteErr = &device.StatusError{Op: "delete file", Code: http.StatusNotFound, Message: "File not found"}
	tt := newUITest(t, dev)
	tt.start()

	tt.ui.deleteFile(tt.selectRow(t, "config.json"))
	tt.loop.RunPending()

	assert.Equal(t, "Failed to delete config.json: File not found", tt.ui.bottom.Status())
	assert.Equal(t, []string{"/"}, dev.listed)
}

func TestUI_DeleteFile_NoLongerListed(t *testing.T) {
	tt := newUITest(t, newFakeDevice())
	tt.start()

	row := tt.selectRow(t, "config.json")
	row.Path = "/removed.json"
	tt.ui.deleteFile(row)
	tt.loop.RunPending()

	assert.Empty(t, tt.dev.deleted)
	assert.Equal(t, "/removed.json is no longer listed, refresh the directory", tt.ui.bottom.Status())
}

func TestOperationError(t *testing.T) {
	assert.Equal(t, device.ErrLocked.Error(), operationError(&device.StatusError{Code: http.StatusLocked}))
	assert.Equal(t, "boom", operationError(errors.New("boom")))
}
