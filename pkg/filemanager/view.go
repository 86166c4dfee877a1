package filemanager

import (
	"github.com/datatug/sdtug/pkg/files"
)

// ContentState is what the content area of the browser currently shows.
type ContentState int

const (
	ContentLoading ContentState = iota
	ContentListing
	ContentEmpty
	ContentError
	ContentNotInserted
)

func (s ContentState) String() string {
	switch s {
	case ContentLoading:
		return "loading"
	case ContentListing:
		return "listing"
	case ContentEmpty:
		return "empty"
	case ContentError:
		return "error"
	case ContentNotInserted:
		return "not-inserted"
	}
	return "unknown"
}

// StorageKind classifies the storage line.
type StorageKind int

const (
	StorageUnknown StorageKind = iota
	StorageNotInserted
	StorageInitializing
	StorageReady
)

// View renders the browser. All methods are called on the event loop.
type View interface {
	ShowLoading(text string)
	ShowListing(path string, rows []Row)
	ShowEmpty(text string)

	// ShowError shows a terminal error. When retry is true the view offers
	// an action that calls Browser.Retry.
	ShowError(message string, retry bool)

	ShowNotInserted(text string)
	SetBreadcrumbs(crumbs []files.Crumb)
	ClearBreadcrumbs()
	SetStorageStatus(kind StorageKind, text string)
}
