package filemanager

import (
	"fmt"

	"github.com/datatug/sdtug/pkg/device"
	"github.com/datatug/sdtug/pkg/files"
	"github.com/datatug/sdtug/pkg/fsutils"
)

type RowKind int

const (
	RowDir RowKind = iota
	RowFile
)

// Row is one rendered entry of a directory listing.
type Row struct {
	Kind     RowKind
	Name     string
	Path     string
	Size     int64
	SizeText string
	Modified string

	DownloadEnabled bool
	Tooltip         string
}

func (r Row) IsDir() bool {
	return r.Kind == RowDir
}

var maxDownloadSizeText = fsutils.FormatFileSize(device.MaxDownloadSize)

// BuildRows renders directories first and then files, each in the order the device returned them.
func BuildRows(listing files.Listing) []Row {
	rows := make([]Row, 0, len(listing.Directories)+len(listing.Files))
	for _, d := range listing.Directories {
		rows = append(rows, Row{
			Kind: RowDir,
			Name: d.Name,
			Path: d.Path,
		})
	}
	for _, f := range listing.Files {
		rows = append(rows, fileRow(f))
	}
	return rows
}

func fileRow(f files.File) Row {
	row := Row{
		Kind:     RowFile,
		Name:     f.Name,
		Path:     f.Path,
		Size:     f.Size,
		SizeText: fsutils.FormatFileSize(f.Size),
		Modified: f.Modified,
	}
	if row.Modified == "" {
		row.Modified = "-"
	}
	if f.Size > device.MaxDownloadSize {
		row.Tooltip = fmt.Sprintf("File is too large to download (%s). Maximum size is %s.", row.SizeText, maxDownloadSizeText)
	} else {
		row.DownloadEnabled = true
		row.Tooltip = "Download this file"
	}
	return row
}
