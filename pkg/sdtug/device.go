package sdtug

import (
	"context"
	"io"

	"github.com/datatug/sdtug/pkg/device"
	"github.com/datatug/sdtug/pkg/filemanager"
	"github.com/datatug/sdtug/pkg/sysstatus"
)

// Device is everything the UI asks of the controller. *device.Client implements it.
type Device interface {
	filemanager.Device
	sysstatus.Source
	Download(ctx context.Context, filePath string, w io.Writer) (int64, error)
	View(ctx context.Context, filePath string, max int64) (*device.ViewContent, error)
	Delete(ctx context.Context, filePath string) error
	RootTitle() string
}

var _ Device = (*device.Client)(nil)
