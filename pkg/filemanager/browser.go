// Package filemanager browses the device's SD card.
//
// Browser owns the navigation state and drives directory listings,
// including the bounded retry while the card reports "not ready".
// It renders through View and never blocks the event loop.
package filemanager

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/datatug/sdtug/pkg/device"
	"github.com/datatug/sdtug/pkg/eventloop"
	"github.com/datatug/sdtug/pkg/files"
	"github.com/datatug/sdtug/pkg/fsutils"
	"github.com/datatug/sdtug/pkg/logging"
	"github.com/datatug/sdtug/pkg/metrics"
	"go.uber.org/zap"
)

//go:generate mockgen -destination=mock_device.go -package=filemanager . Device

// Device is the part of the device API the browser needs.
type Device interface {
	StorageStatus(ctx context.Context) (device.StorageStatus, error)
	ListDir(ctx context.Context, dirPath string) (files.Listing, error)
}

const (
	RootPath = "/"

	MaxRetries = 3

	GraceDelay        = 500 * time.Millisecond
	RetryBaseDelay    = time.Second
	PollInterval      = 3 * time.Second
	InitCheckDelay    = 1500 * time.Millisecond
	NetworkRetryDelay = 2 * time.Second
)

const (
	LoadingText            = "Loading files..."
	RetryingTextFormat     = "SD card initializing, please wait... (%d/%d)"
	InitializingText       = "SD Card initializing, please wait..."
	EmptyText              = "This directory is empty"
	NotReadyText           = "SD card not ready. It may be initializing or experiencing an issue."
	ListFailedText         = "Failed to list directory"
	NotInsertedText        = "SD Card is not inserted. Please insert an SD card to view files."
	StorageNotInsertedText = "SD Card not inserted"
	StorageInsertedText    = "SD Card inserted"
	StorageReadyTextFormat = "SD Card Ready - %s free of %s"
)

// Browser is the DirectoryBrowser. Every method must be called on the event loop.
type Browser struct {
	loop   eventloop.Loop
	device Device
	view   View
	log    *zap.Logger

	currentPath string
	active      bool
	pollTimer   eventloop.Timer

	// session changes on every Activate and Deactivate; poll callbacks
	// from an earlier session are dropped.
	session int

	// generation identifies the live chain. A chain is a listing with its
	// retries, or a ready-check sequence. Callbacks of older chains are dropped.
	generation int
	pending    eventloop.Timer
	inFlight   bool

	// graceNext holds until the first listing request of a session is sent,
	// so a chain abandoned during the grace delay passes it on.
	graceNext bool

	state     ContentState
	retryable bool
	dir       *files.DirContext
}

type BrowserOption func(*Browser)

func WithLogger(log *zap.Logger) BrowserOption {
	return func(b *Browser) {
		b.log = log
	}
}

// WithPath sets the path shown on the first activation.
func WithPath(p string) BrowserOption {
	return func(b *Browser) {
		b.currentPath = p
	}
}

func NewBrowser(loop eventloop.Loop, dev Device, view View, o ...BrowserOption) *Browser {
	b := &Browser{
		loop:        loop,
		device:      dev,
		view:        view,
		currentPath: RootPath,
	}
	for _, opt := range o {
		opt(b)
	}
	if b.log == nil {
		b.log = logging.L().Named("browser")
	}
	return b
}

func (b *Browser) CurrentPath() string {
	return b.currentPath
}

func (b *Browser) Active() bool {
	return b.active
}

func (b *Browser) State() ContentState {
	return b.state
}

// Retryable reports whether the current error offers a manual retry.
func (b *Browser) Retryable() bool {
	return b.state == ContentError && b.retryable
}

// Dir returns the last successfully loaded directory, or nil.
func (b *Browser) Dir() *files.DirContext {
	return b.dir
}

// Activate starts the storage poll and loads the current path.
// The first listing request waits GraceDelay for the card to settle.
func (b *Browser) Activate() {
	if b.active {
		return
	}
	b.active = true
	b.session++
	b.graceNext = true
	b.log.Debug("activate", zap.String("path", b.currentPath))

	b.setLoading(LoadingText)
	b.pollStorage()
	b.schedulePoll()
	b.startChain(b.currentPath)
}

// Deactivate stops the poll and drops every scheduled or pending callback.
func (b *Browser) Deactivate() {
	if !b.active {
		return
	}
	b.active = false
	b.session++
	b.abandonChain()
	if b.pollTimer != nil {
		b.pollTimer.Stop()
		b.pollTimer = nil
	}
	b.log.Debug("deactivate", zap.String("path", b.currentPath))
}

// NavigateTo makes p the current path and loads it from scratch.
// The path is kept exactly as given.
func (b *Browser) NavigateTo(p string) {
	b.currentPath = p
	if !b.active {
		return
	}
	b.startChain(p)
}

// Retry restarts the listing after a terminal "not ready" error.
func (b *Browser) Retry() {
	if !b.active || !b.Retryable() {
		return
	}
	b.startChain(b.currentPath)
}

// Refresh reloads the current path.
func (b *Browser) Refresh() {
	if !b.active {
		return
	}
	b.startChain(b.currentPath)
}

func (b *Browser) abandonChain() {
	b.generation++
	b.inFlight = false
	if b.pending != nil {
		b.pending.Stop()
		b.pending = nil
	}
}

func (b *Browser) startChain(p string) {
	b.abandonChain()
	b.loadDirectory(p, 0)
}

func (b *Browser) isCurrent(gen int) bool {
	return b.active && gen == b.generation
}

// busy reports whether the live chain has a request or a timer outstanding.
func (b *Browser) busy() bool {
	return b.inFlight || b.pending != nil
}

// after schedules f for the live chain.
func (b *Browser) after(d time.Duration, f func()) {
	gen := b.generation
	b.pending = b.loop.AfterFunc(d, func() {
		if !b.isCurrent(gen) {
			return
		}
		b.pending = nil
		f()
	})
}

func (b *Browser) setLoading(text string) {
	b.state = ContentLoading
	b.retryable = false
	b.view.ShowLoading(text)
}

func (b *Browser) loadDirectory(p string, attempt int) {
	if attempt == 0 {
		b.setLoading(LoadingText)
	} else {
		b.setLoading(fmt.Sprintf(RetryingTextFormat, attempt, MaxRetries))
	}
	b.view.SetBreadcrumbs(files.Crumbs(p))

	if attempt == 0 && b.graceNext {
		b.after(GraceDelay, func() {
			b.fetch(p, attempt)
		})
		return
	}
	b.fetch(p, attempt)
}

func (b *Browser) fetch(p string, attempt int) {
	gen := b.generation
	b.inFlight = true
	b.graceNext = false
	b.loop.Go(func() {
		listing, err := b.device.ListDir(context.Background(), p)
		b.loop.Post(func() {
			b.onListing(gen, p, attempt, listing, err)
		})
	})
}

func (b *Browser) onListing(gen int, p string, attempt int, listing files.Listing, err error) {
	if !b.isCurrent(gen) {
		b.log.Debug("dropping stale listing", zap.String("path", p), zap.Int("attempt", attempt))
		return
	}
	b.inFlight = false

	if err == nil {
		b.showListing(p, listing)
		return
	}

	if errors.Is(err, device.ErrNotReady) {
		if attempt < MaxRetries {
			delay := RetryBaseDelay * time.Duration(attempt+1)
			metrics.RecordListingRetry()
			b.log.Info("SD card not ready, retrying",
				zap.String("path", p),
				zap.Int("attempt", attempt+1),
				zap.Duration("delay", delay),
			)
			b.setLoading(fmt.Sprintf(RetryingTextFormat, attempt+1, MaxRetries))
			b.after(delay, func() {
				b.loadDirectory(p, attempt+1)
			})
			return
		}
		b.log.Error("SD card not ready after retries", zap.String("path", p), zap.Int("attempts", attempt+1))
		b.showError(NotReadyText, true)
		return
	}

	message := device.ErrorMessage(err)
	if message == "" {
		message = ListFailedText
	}
	b.log.Error("failed to list directory", zap.String("path", p), zap.Error(err))
	b.showError(message, false)
}

func (b *Browser) showListing(p string, listing files.Listing) {
	if b.dir == nil || b.dir.Path() != p {
		b.dir = files.NewDirContext(p, nil)
	}
	b.dir.SetListing(listing)
	b.retryable = false
	b.log.Debug("listing loaded",
		zap.Stringer("dir", b.dir),
		zap.Int("directories", len(listing.Directories)),
		zap.Int("files", len(listing.Files)),
		zap.Time("loaded_at", b.dir.Timestamp()),
	)
	if listing.IsEmpty() {
		b.state = ContentEmpty
		b.view.ShowEmpty(EmptyText)
		return
	}
	b.state = ContentListing
	b.view.ShowListing(p, BuildRows(listing))
}

func (b *Browser) showError(message string, retry bool) {
	b.state = ContentError
	b.retryable = retry
	b.view.ShowError(message, retry)
}

func (b *Browser) showNotInserted() {
	b.abandonChain()
	b.state = ContentNotInserted
	b.retryable = false
	b.dir = nil
	b.view.ShowNotInserted(NotInsertedText)
	b.view.ClearBreadcrumbs()
}

func (b *Browser) schedulePoll() {
	session := b.session
	b.pollTimer = b.loop.AfterFunc(PollInterval, func() {
		if !b.active || session != b.session {
			return
		}
		b.pollStorage()
		b.schedulePoll()
	})
}

func (b *Browser) pollStorage() {
	session := b.session
	b.loop.Go(func() {
		status, err := b.device.StorageStatus(context.Background())
		b.loop.Post(func() {
			if !b.active || session != b.session {
				return
			}
			b.onStorageStatus(status, err)
		})
	})
}

func (b *Browser) onStorageStatus(status device.StorageStatus, err error) {
	if err != nil {
		metrics.RecordStoragePoll(metrics.PollError)
		b.log.Warn("storage status poll failed", zap.Error(err))
		return
	}

	switch {
	case !status.Inserted:
		metrics.RecordStoragePoll(metrics.PollNotInserted)
		b.view.SetStorageStatus(StorageNotInserted, StorageNotInsertedText)
		b.showNotInserted()
	case status.Ready:
		metrics.RecordStoragePoll(metrics.PollReady)
		b.view.SetStorageStatus(StorageReady, StorageReadyText(status))
		switch {
		case b.state == ContentNotInserted:
			b.readyCheckAndLoad()
		case b.state == ContentLoading && !b.busy():
			b.log.Info("storage ready while loading, reloading", zap.String("path", b.currentPath))
			b.startChain(b.currentPath)
		}
	default:
		metrics.RecordStoragePoll(metrics.PollNotReady)
		b.view.SetStorageStatus(StorageInitializing, StorageInsertedText)
		if b.state == ContentNotInserted {
			b.readyCheckAndLoad()
		}
	}
}

// StorageReadyText is the storage line for a ready card.
func StorageReadyText(status device.StorageStatus) string {
	return fmt.Sprintf(StorageReadyTextFormat, fsutils.FormatGB(status.FreeSpaceGB), fsutils.FormatGB(status.CapacityGB))
}

// readyCheckAndLoad waits for the card to become ready and then loads the current path.
func (b *Browser) readyCheckAndLoad() {
	b.abandonChain()
	gen := b.generation
	b.inFlight = true
	b.loop.Go(func() {
		status, err := b.device.StorageStatus(context.Background())
		b.loop.Post(func() {
			b.onReadyCheck(gen, status, err)
		})
	})
}

func (b *Browser) onReadyCheck(gen int, status device.StorageStatus, err error) {
	if !b.isCurrent(gen) {
		return
	}
	b.inFlight = false

	switch {
	case err != nil:
		b.log.Warn("ready check failed", zap.Error(err), zap.Duration("retry_in", NetworkRetryDelay))
		b.after(NetworkRetryDelay, b.readyCheckAndLoad)
	case status.Ready:
		b.startChain(b.currentPath)
	case status.Inserted:
		b.setLoading(InitializingText)
		b.after(InitCheckDelay, b.readyCheckAndLoad)
	default:
		b.view.SetStorageStatus(StorageNotInserted, StorageNotInsertedText)
		b.showNotInserted()
	}
}
