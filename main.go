package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"runtime/pprof"

	"github.com/datatug/sdtug/pkg/config"
	"github.com/datatug/sdtug/pkg/device"
	"github.com/datatug/sdtug/pkg/eventloop"
	"github.com/datatug/sdtug/pkg/logging"
	"github.com/datatug/sdtug/pkg/metrics"
	"github.com/datatug/sdtug/pkg/profiling"
	"github.com/datatug/sdtug/pkg/sdtug"
	"github.com/datatug/sdtug/pkg/sdtug/navigator"
	"github.com/rivo/tview"
	"go.uber.org/zap"
)

var (
	configFile = flag.String("config", "", "read configuration from `file` (default "+config.DefaultPath+")")
	startPath  = flag.String("path", "/", "SD card `directory` to open first")
	cpuProfile = flag.String("cpuprofile", "", "write cpu profile to `file`")
	memProfile = flag.String("memprofile", "", "write memory profile to `file`")
	pprofAddr  = flag.String("pprof", "", "start pprof http server on `address` (e.g. localhost:6060)")
	overrides  = config.RegisterFlags(flag.CommandLine)
)

var httpListenAndServe = http.ListenAndServe
var osExit = os.Exit
var pprofStopCPUProfile = pprof.StopCPUProfile

func main() {
	app, cleanup := newSdTugApp()
	defer cleanup()
	if app == nil {
		return
	}
	run(app)
}

func newSdTugApp() (app *tview.Application, cleanup func()) {
	flag.Parse()
	cleanup = func() {}

	cfg, err := loadConfig(flag.CommandLine)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "%v\n", err)
		osExit(2)
		return nil, cleanup
	}
	if err = logging.Init(cfg.Logging()); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to initialize logging: %v\n", err)
	}
	log := logging.L()
	log.Info("starting",
		zap.String("device", cfg.DeviceURL),
		zap.String("config", cfg.ConfigPath),
		zap.String("download_dir", cfg.DownloadPath()),
	)

	if *pprofAddr != "" {
		serve("pprof", *pprofAddr, nil)
	}
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		serve("metrics", cfg.MetricsAddr, mux)
	}

	defer func() {
		if r := recover(); r != nil {
			log.Error("recovered from panic", zap.Any("panic", r))
			_, _ = fmt.Fprintf(os.Stderr, "Recovered from panic: %v\n", r)
			pprofStopCPUProfile()
			osExit(1)
		}
	}()

	var stops []func()
	if *cpuProfile != "" {
		stops = append(stops, profiling.DoCPUProfiling(*cpuProfile))
	}
	if *memProfile != "" {
		ctx, cancel := context.WithCancel(context.Background())
		writeMemProfile := profiling.DoMemProfiling(ctx, *memProfile)
		stops = append(stops, func() {
			cancel()
			writeMemProfile()
		})
	}
	cleanup = func() {
		for _, stop := range stops {
			stop()
		}
		_ = logging.Sync()
	}

	app = newApp(cfg)
	return
}

// loadConfig reads the config file and applies the flags set on fs.
func loadConfig(fs *flag.FlagSet) (*config.Config, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return nil, err
	}
	cfg.ApplyFlags(fs, overrides)
	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func serve(name, addr string, handler http.Handler) {
	go func() {
		err := httpListenAndServe(addr, handler)
		if err != nil {
			logging.L().Error(name+" server error", zap.String("addr", addr), zap.Error(err))
			_, _ = fmt.Fprintf(os.Stderr, "%s server error: %v\n", name, err)
		}
	}()
}

var setupApp = sdtug.SetupApp

var newApp = func(cfg *config.Config) *tview.Application {
	app := tview.NewApplication()
	root, err := cfg.Device()
	if err != nil {
		panic(err)
	}
	client := device.NewClient(*root, device.WithRequestTimeout(cfg.RequestTimeout))
	loop := eventloop.New(func(f func()) {
		app.QueueUpdateDraw(f)
	})
	a := navigator.NewApp(app)
	ui := sdtug.NewUI(a, loop, client,
		sdtug.WithDownloadDir(cfg.DownloadPath()),
		sdtug.WithStartPath(*startPath),
	)
	setupApp(a, ui)
	return app
}

type application interface{ Run() error }

var run = func(app application) {
	if err := app.Run(); err != nil {
		logging.L().Error("application stopped with error", zap.Error(err))
		_, _ = fmt.Fprintf(os.Stderr, "%v\n", err)
	}
}
