package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestL_BeforeInit(t *testing.T) {
	old := globalLogger
	defer func() {
		globalLogger = old
	}()
	globalLogger = nil
	assert.NotNil(t, L())
	assert.NoError(t, Sync())
}

func TestInit_File(t *testing.T) {
	old := globalLogger
	defer func() {
		globalLogger = old
	}()

	logFile := filepath.Join(t.TempDir(), "nested", "sdtug.log")
	err := Init(Config{Level: "debug", Format: "json", OutputPath: logFile})
	if !assert.NoError(t, err) {
		return
	}
	L().Info("hello", zapcore.Field{Key: "k", Type: zapcore.StringType, String: "v"})
	_ = Sync()

	data, err := os.ReadFile(logFile)
	assert.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Contains(t, string(data), `"k":"v"`)
}

func TestInit_InvalidLevelFallsBackToInfo(t *testing.T) {
	old := globalLogger
	defer func() {
		globalLogger = old
	}()
	err := Init(Config{Level: "chatty", Format: "console", OutputPath: "stderr"})
	assert.NoError(t, err)
	assert.Equal(t, zapcore.InfoLevel, globalLevel.Level())
}
