package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
device_url: http://192.168.1.50
request_timeout: 3s
log:
  level: debug
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://192.168.1.50", cfg.DeviceURL)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format, "unset keys keep their defaults")
	assert.Equal(t, path, cfg.ConfigPath)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("device_url: [unclosed"), 0o644))
	_, err := Load(path)
	assert.ErrorContains(t, err, "failed to parse config file")
}

func TestLoad_Unreadable(t *testing.T) {
	_, err := Load(t.TempDir()) // a directory
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestApplyFlags(t *testing.T) {
	cfg := Default()
	fs := flag.NewFlagSet("sdtug", flag.ContinueOnError)
	flags := RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"-device", "http://10.0.0.7", "-log-level", "warn", "-metrics", ":9100"}))

	cfg.ApplyFlags(fs, flags)
	assert.Equal(t, "http://10.0.0.7", cfg.DeviceURL)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, ":9100", cfg.MetricsAddr)
	assert.Equal(t, Default().DownloadDir, cfg.DownloadDir, "unset flags do not override")
	assert.Equal(t, Default().Log.File, cfg.Log.File)
}

func TestApplyFlags_EmptyValueOverrides(t *testing.T) {
	cfg := Default()
	cfg.MetricsAddr = ":9100"
	fs := flag.NewFlagSet("sdtug", flag.ContinueOnError)
	flags := RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"-metrics", "", "-download-dir", "/tmp/dl", "-log-file", "/tmp/sdtug.log"}))
	cfg.ApplyFlags(fs, flags)
	assert.Equal(t, "", cfg.MetricsAddr)
	assert.Equal(t, "/tmp/dl", cfg.DownloadPath())
	assert.Equal(t, "/tmp/sdtug.log", cfg.Logging().OutputPath)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "default", mutate: func(c *Config) {}},
		{name: "bad_scheme", mutate: func(c *Config) { c.DeviceURL = "ftp://device" }, wantErr: "http or https"},
		{name: "no_host", mutate: func(c *Config) { c.DeviceURL = "http://" }, wantErr: "no host"},
		{name: "unparsable", mutate: func(c *Config) { c.DeviceURL = "http://[::1" }, wantErr: "invalid device URL"},
		{name: "timeout", mutate: func(c *Config) { c.RequestTimeout = 0 }, wantErr: "request_timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
