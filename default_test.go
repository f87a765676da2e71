// FILE: lixenwraith/linelog/default_test.go
package linelog

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetDefaultLogger gives the test a fresh package-level logger and restores it afterwards
func resetDefaultLogger(t *testing.T) {
	t.Helper()
	previous := defaultLogger
	defaultLogger = NewLogger()
	t.Cleanup(func() {
		_ = defaultLogger.Close()
		defaultLogger = previous
	})
}

func TestDefaultLoggerUninitialized(t *testing.T) {
	resetDefaultLogger(t)

	assert.ErrorIs(t, Print("x"), ErrNotInitialized)
	_, err := Lines()
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestInit(t *testing.T) {
	resetDefaultLogger(t)
	path := filepath.Join(t.TempDir(), "default.log")

	cfg := DefaultConfig()
	cfg.Path = path
	cfg.HeaderLayout = false
	cfg.CallerTrace = false
	require.NoError(t, Init(cfg))
	Default().SetClock(testClock)

	require.NoError(t, Print("a"))
	require.NoError(t, Log("b", SeverityError, true))

	assert.Equal(t, []string{testTimestamp + " a", testTimestamp + " b"}, readLines(t, path))

	n, err := Lines()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NoError(t, Close())
	assert.ErrorIs(t, Print("c"), ErrClosed)
}

func TestInitWithDefaults(t *testing.T) {
	resetDefaultLogger(t)
	path := filepath.Join(t.TempDir(), "default.log")

	require.NoError(t, InitWithDefaults(path, "caller_trace=false", "header=H", "line_limit=3"))

	require.NoError(t, Normal("n", 1))
	require.NoError(t, Debug("d"))
	require.NoError(t, Warning("w"))
	require.NoError(t, Error("e"))

	assert.Equal(t, []string{"debug  : d", "warning: w", "error  : e"}, readLines(t, path))
	assert.Equal(t, "H", Default().Header())
}

func TestInitWithDefaultsErrors(t *testing.T) {
	resetDefaultLogger(t)

	assert.Error(t, InitWithDefaults(""))
	assert.Error(t, InitWithDefaults(filepath.Join(t.TempDir(), "x.log"), "line_limit=-1"))
	assert.Error(t, Init(nil))
}

func TestDefaultCallerTrace(t *testing.T) {
	resetDefaultLogger(t)
	path := filepath.Join(t.TempDir(), "default.log")
	require.NoError(t, InitWithDefaults(path, "header_layout=false"))
	Default().SetClock(testClock)

	require.NoError(t, Print("traced"))

	lines := readLines(t, path)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "traced - at ")
	assert.Contains(t, lines[0], "TestDefaultCallerTrace(default_test.go:")
}
