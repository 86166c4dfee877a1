package sdtug

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/datatug/sdtug/pkg/device"
	"github.com/datatug/sdtug/pkg/filemanager"
	"github.com/datatug/sdtug/pkg/files"
	"github.com/datatug/sdtug/pkg/fsutils"
	"github.com/datatug/sdtug/pkg/viewers"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
)

const (
	deleteDirText       = "Directories cannot be deleted"
	deleteProtectedText = "%s is protected and cannot be deleted"
	deleteGoneText      = "%s is no longer listed, refresh the directory"
)

func (ui *UI) downloadSelected() {
	if row, ok := ui.files.selectedRow(); ok {
		ui.download(row)
	}
}

func (ui *UI) deleteSelected() {
	if row, ok := ui.files.selectedRow(); ok {
		ui.confirmDelete(row)
	}
}

// download saves the file into the download directory without overwriting existing files.
func (ui *UI) download(row filemanager.Row) {
	if row.IsDir() {
		return
	}
	if !row.DownloadEnabled {
		ui.bottom.SetStatus(row.Tooltip, Style.WarningColor)
		return
	}
	dir := ui.o.downloadDir
	name := norm.NFC.String(files.BaseName(row.Path))
	ui.bottom.SetStatus(fmt.Sprintf("Downloading %s...", row.Name), Style.LoadingColor)

	ui.loop.Go(func() {
		target, n, err := downloadFile(context.Background(), ui.device, row.Path, dir, name)
		ui.loop.Post(func() {
			if err != nil {
				ui.log.Error("download failed", zap.String("path", row.Path), zap.Error(err))
				ui.bottom.SetStatus(fmt.Sprintf("Download of %s failed: %s", row.Name, operationError(err)), Style.ErrorColor)
				return
			}
			ui.log.Info("downloaded", zap.String("path", row.Path), zap.String("target", target), zap.Int64("bytes", n))
			ui.bottom.SetStatus(fmt.Sprintf("Saved %s (%s)", target, viewers.FormatBytes(n)), Style.OKColor)
		})
	})
}

func downloadFile(ctx context.Context, dev Device, filePath, dir, name string) (target string, n int64, err error) {
	exists, err := fsutils.DirExists(dir)
	if err != nil {
		return "", 0, fmt.Errorf("failed to check download directory: %w", err)
	}
	if !exists {
		if err = os.MkdirAll(dir, 0o755); err != nil {
			return "", 0, fmt.Errorf("failed to create download directory: %w", err)
		}
	}
	target = fsutils.FreeFileName(dir, name)
	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create file: %w", err)
	}
	n, err = dev.Download(ctx, filePath, f)
	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("failed to close file: %w", closeErr)
	}
	if err != nil {
		_ = os.Remove(target)
		return "", n, err
	}
	return target, n, nil
}

// operationError is the short form of err for the status line.
func operationError(err error) string {
	switch {
	case errors.Is(err, device.ErrTooLarge):
		return device.ErrTooLarge.Error()
	case errors.Is(err, device.ErrLocked):
		return device.ErrLocked.Error()
	}
	if message := device.ErrorMessage(err); message != "" {
		return message
	}
	return err.Error()
}

func (ui *UI) confirmDelete(row filemanager.Row) {
	switch {
	case row.IsDir():
		ui.bottom.SetStatus(deleteDirText, Style.WarningColor)
		return
	case device.IsProtectedPath(row.Path):
		ui.bottom.SetStatus(fmt.Sprintf(deleteProtectedText, row.Path), Style.WarningColor)
		return
	}
	text := fmt.Sprintf("Delete %s (%s)?\nThis cannot be undone.", row.Path, viewers.FormatBytes(row.Size))
	ui.confirm(text, "Delete", func() {
		ui.deleteFile(row)
	})
}

func (ui *UI) deleteFile(row filemanager.Row) {
	if dir := ui.browser.Dir(); dir != nil && dir.Listing() != nil {
		if _, ok := dir.Listing().FindFile(row.Path); !ok {
			ui.bottom.SetStatus(fmt.Sprintf(deleteGoneText, row.Path), Style.WarningColor)
			return
		}
	}
	ui.bottom.SetStatus(fmt.Sprintf("Deleting %s...", row.Name), Style.LoadingColor)
	ui.loop.Go(func() {
		err := ui.device.Delete(context.Background(), row.Path)
		ui.loop.Post(func() {
			if err != nil {
				ui.log.Error("delete failed", zap.String("path", row.Path), zap.Error(err))
				ui.bottom.SetStatus(fmt.Sprintf("Failed to delete %s: %s", row.Name, operationError(err)), Style.ErrorColor)
				return
			}
			ui.log.Info("deleted", zap.String("path", row.Path))
			ui.bottom.SetStatus(fmt.Sprintf("Deleted %s", row.Path), Style.OKColor)
			ui.browser.Refresh()
		})
	})
}
