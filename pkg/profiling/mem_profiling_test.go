package profiling

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime/pprof"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDoMemProfiling(t *testing.T) {
	origOsCreate := osCreate
	origInterval := memProfilingInterval
	origPprofWrite := pprofWriteHeapProfile
	defer func() {
		osCreate = origOsCreate
		memProfilingInterval = origInterval
		pprofWriteHeapProfile = origPprofWrite
	}()

	var writes atomic.Int32
	memProfilingInterval = 20 * time.Millisecond
	osCreate = os.Create
	pprofWriteHeapProfile = func(w io.Writer) error {
		writes.Add(1)
		return pprof.WriteHeapProfile(w)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	tempFile := filepath.Join(t.TempDir(), "mem.prof")
	writeMemProfile := DoMemProfiling(ctx, tempFile)
	if !assert.NotNil(t, writeMemProfile) {
		return
	}

	writeMemProfile()
	_, err := os.Stat(tempFile)
	assert.NoError(t, err, "expected profile file to be created")

	assert.Eventually(t, func() bool {
		return writes.Load() >= 2
	}, time.Second, 10*time.Millisecond, "the ticker writes profiles too")
}

func TestDoMemProfiling_ErrorOsCreate(t *testing.T) {
	origOsCreate := osCreate
	defer func() {
		osCreate = origOsCreate
	}()
	osCreate = func(name string) (*os.File, error) {
		return nil, errors.New("mock error")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	writeMemProfile := DoMemProfiling(ctx, "invalid")
	writeMemProfile()
	_, err := os.Stat("invalid")
	assert.True(t, os.IsNotExist(err))
}

func TestDoMemProfiling_ErrorPprofWriteHeapProfile(t *testing.T) {
	origPprofWrite := pprofWriteHeapProfile
	defer func() {
		pprofWriteHeapProfile = origPprofWrite
	}()
	pprofWriteHeapProfile = func(w io.Writer) error {
		return errors.New("mock pprof error")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	writeMemProfile := DoMemProfiling(ctx, filepath.Join(t.TempDir(), "mem_err.prof"))
	writeMemProfile()
}
