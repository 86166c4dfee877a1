package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"time"

	"github.com/datatug/sdtug/pkg/fsutils"
	"github.com/datatug/sdtug/pkg/logging"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where Load looks when no path is given.
const DefaultPath = "~/.sdtug/config.yaml"

// Config represents the application configuration
type Config struct {
	DeviceURL      string        `yaml:"device_url"`
	DownloadDir    string        `yaml:"download_dir"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	Log            LogConfig     `yaml:"log"`
	MetricsAddr    string        `yaml:"metrics_addr,omitempty"`

	// ConfigPath is the file the configuration was read from (not serialized)
	ConfigPath string `yaml:"-"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json or console
	File   string `yaml:"file"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		DeviceURL:      "http://open-reactor.local",
		DownloadDir:    "~/Downloads",
		RequestTimeout: 10 * time.Second,
		Log: LogConfig{
			Level:  "info",
			Format: "json",
			File:   "~/.sdtug/sdtug.log",
		},
	}
}

// Load reads the YAML file at path on top of the defaults.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}
	path = fsutils.ExpandHome(path)

	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err = yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	cfg.ConfigPath = path
	return cfg, nil
}

// Flags are the command-line overrides of the configuration file.
type Flags struct {
	DeviceURL   string
	DownloadDir string
	LogFile     string
	LogLevel    string
	MetricsAddr string
}

// RegisterFlags binds the overrides to fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.DeviceURL, "device", "", "device base URL, e.g. http://192.168.1.50")
	fs.StringVar(&f.DownloadDir, "download-dir", "", "directory for downloaded files")
	fs.StringVar(&f.LogFile, "log-file", "", "log file path")
	fs.StringVar(&f.LogLevel, "log-level", "", "log level: debug, info, warn, error")
	fs.StringVar(&f.MetricsAddr, "metrics", "", "serve Prometheus metrics on this address, e.g. :9100")
	return f
}

// ApplyFlags overrides values with the flags that were set explicitly.
func (c *Config) ApplyFlags(fs *flag.FlagSet, f *Flags) {
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "device":
			c.DeviceURL = f.DeviceURL
		case "download-dir":
			c.DownloadDir = f.DownloadDir
		case "log-file":
			c.Log.File = f.LogFile
		case "log-level":
			c.Log.Level = f.LogLevel
		case "metrics":
			c.MetricsAddr = f.MetricsAddr
		}
	})
}

// Validate checks the device URL and timeout.
func (c *Config) Validate() error {
	u, err := c.Device()
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("device URL must use http or https, got %q", c.DeviceURL)
	}
	if u.Host == "" {
		return fmt.Errorf("device URL has no host: %q", c.DeviceURL)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive, got %v", c.RequestTimeout)
	}
	return nil
}

// Device returns the parsed device URL.
func (c *Config) Device() (*url.URL, error) {
	u, err := url.Parse(c.DeviceURL)
	if err != nil {
		return nil, fmt.Errorf("invalid device URL: %w", err)
	}
	return u, nil
}

// Logging returns the logger settings with the home directory expanded.
func (c *Config) Logging() logging.Config {
	return logging.Config{
		Level:      c.Log.Level,
		Format:     c.Log.Format,
		OutputPath: fsutils.ExpandHome(c.Log.File),
	}
}

// DownloadPath returns the download directory with the home directory expanded.
func (c *Config) DownloadPath() string {
	return fsutils.ExpandHome(c.DownloadDir)
}
