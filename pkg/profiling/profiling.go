// Package profiling writes CPU and heap profiles requested on the command line.
package profiling

import (
	"context"
	"io"
	"os"
	"runtime/pprof"
	"time"

	"github.com/datatug/sdtug/pkg/logging"
	"go.uber.org/zap"
)

var (
	osCreate              = os.Create
	pprofStartCPUProfile  = pprof.StartCPUProfile
	pprofStopCPUProfile   = pprof.StopCPUProfile
	pprofWriteHeapProfile = pprof.WriteHeapProfile
	memProfilingInterval  = 30 * time.Second
)

// DoCPUProfiling starts CPU profiling into file and returns the function that stops it.
// On failure it logs and returns a no-op.
func DoCPUProfiling(file string) func() {
	create, start, stop := osCreate, pprofStartCPUProfile, pprofStopCPUProfile
	f, err := create(file)
	if err != nil {
		logging.L().Error("could not create CPU profile", zap.String("file", file), zap.Error(err))
		return func() {}
	}
	if err = start(f); err != nil {
		logging.L().Error("could not start CPU profile", zap.Error(err))
		_ = f.Close()
		return func() {}
	}
	return func() {
		stop()
		if err := f.Close(); err != nil {
			logging.L().Error("could not close CPU profile", zap.Error(err))
		}
	}
}

// DoMemProfiling writes a heap profile to file every memProfilingInterval until ctx is done.
// The returned function writes one more snapshot right away.
func DoMemProfiling(ctx context.Context, file string) func() {
	create, write, interval := osCreate, pprofWriteHeapProfile, memProfilingInterval

	writeMemProfile := func() {
		f, err := create(file)
		if err != nil {
			logging.L().Error("could not create memory profile", zap.String("file", file), zap.Error(err))
			return
		}
		defer func() {
			_ = f.Close()
		}()
		if err = write(io.Writer(f)); err != nil {
			logging.L().Error("could not write memory profile", zap.Error(err))
		}
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				writeMemProfile()
			}
		}
	}()
	return writeMemProfile
}
