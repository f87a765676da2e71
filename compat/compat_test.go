// FILE: lixenwraith/linelog/compat/compat_test.go
package compat

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/linelog"
)

// createTestCompatBuilder creates a standard setup for compatibility adapter tests
func createTestCompatBuilder(t *testing.T) (*Builder, *linelog.Logger, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "compat.log")
	appLogger, err := linelog.NewBuilder().
		Path(path).
		CallerTrace(false).
		Build()
	require.NoError(t, err)

	builder := NewBuilder().WithLogger(appLogger)
	return builder, appLogger, path
}

// readLines returns the target content without the session header
func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.NotEmpty(t, lines)
	return lines[1:]
}

func TestCompatBuilder(t *testing.T) {
	t.Run("with existing logger", func(t *testing.T) {
		builder, logger, _ := createTestCompatBuilder(t)
		defer logger.Close()

		gnetAdapter, err := builder.BuildGnet()
		require.NoError(t, err)
		assert.Same(t, logger, gnetAdapter.logger)
	})

	t.Run("with config", func(t *testing.T) {
		cfg := linelog.DefaultConfig()
		cfg.Path = filepath.Join(t.TempDir(), "cfg.log")

		builder := NewBuilder().WithConfig(cfg)
		fasthttpAdapter, err := builder.BuildFastHTTP()
		require.NoError(t, err)
		assert.NotNil(t, fasthttpAdapter)

		logger1, err := builder.GetLogger()
		require.NoError(t, err)
		defer logger1.Close()
		assert.Same(t, logger1, fasthttpAdapter.logger)
	})

	t.Run("nil logger", func(t *testing.T) {
		_, err := NewBuilder().WithLogger(nil).BuildGnet()
		assert.Error(t, err)
	})

	t.Run("no logger or config", func(t *testing.T) {
		_, err := NewBuilder().BuildFastHTTP()
		assert.Error(t, err)
	})
}

func TestGnetAdapter(t *testing.T) {
	builder, logger, path := createTestCompatBuilder(t)
	defer logger.Close()

	var fatalMsg string
	adapter, err := builder.BuildGnet(WithFatalHandler(func(msg string) {
		fatalMsg = msg
	}))
	require.NoError(t, err)

	adapter.Debugf("gnet debug id=%d", 1)
	adapter.Infof("gnet info id=%d", 2)
	adapter.Warnf("gnet warn id=%d", 3)
	adapter.Errorf("gnet error id=%d", 4)
	adapter.Fatalf("gnet fatal id=%d", 5)

	assert.Equal(t, []string{
		"debug  : gnet: gnet debug id=1",
		"normal : gnet: gnet info id=2",
		"warning: gnet: gnet warn id=3",
		"error  : gnet: gnet error id=4",
		"error  : gnet: fatal: gnet fatal id=5",
	}, readLines(t, path))
	assert.Equal(t, "gnet fatal id=5", fatalMsg)
}

func TestGnetAdapterCallerTrace(t *testing.T) {
	builder, logger, path := createTestCompatBuilder(t)
	defer logger.Close()
	require.NoError(t, logger.SetCallerTrace(true))

	adapter, err := builder.BuildGnet(WithGnetPrefix(""))
	require.NoError(t, err)

	adapter.Infof("traced")

	lines := readLines(t, path)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "normal : traced - at ")
	assert.Contains(t, lines[0], "TestGnetAdapterCallerTrace")
}

func TestGnetAdapterErrorHandler(t *testing.T) {
	builder, logger, _ := createTestCompatBuilder(t)

	var got error
	adapter, err := builder.BuildGnet(WithGnetErrorHandler(func(err error) { got = err }))
	require.NoError(t, err)

	require.NoError(t, logger.Close())
	adapter.Infof("after close")

	assert.True(t, errors.Is(got, linelog.ErrClosed))
}

func TestFastHTTPAdapter(t *testing.T) {
	builder, logger, path := createTestCompatBuilder(t)
	defer logger.Close()

	adapter, err := builder.BuildFastHTTP()
	require.NoError(t, err)

	testMessages := []string{
		"this is some informational message",
		"a debug message for the developers",
		"warning: something might be wrong",
		"an error occurred while processing",
	}
	for _, msg := range testMessages {
		adapter.Printf("%s", msg)
	}

	assert.Equal(t, []string{
		"normal : fasthttp: this is some informational message",
		"debug  : fasthttp: a debug message for the developers",
		"warning: fasthttp: warning: something might be wrong",
		"error  : fasthttp: an error occurred while processing",
	}, readLines(t, path))
}

func TestFastHTTPAdapterOptions(t *testing.T) {
	builder, logger, path := createTestCompatBuilder(t)
	defer logger.Close()

	adapter, err := builder.BuildFastHTTP(
		WithDefaultSeverity(linelog.SeverityWarning),
		WithSeverityDetector(func(string) linelog.Severity { return 0 }),
	)
	require.NoError(t, err)

	adapter.Printf("request failed: %d", 500)

	assert.Equal(t, []string{"warning: fasthttp: request failed: 500"}, readLines(t, path))
}

func TestDetectSeverity(t *testing.T) {
	tests := []struct {
		msg  string
		want linelog.Severity
	}{
		{"connection failed", linelog.SeverityError},
		{"PANIC recovered", linelog.SeverityError},
		{"deprecated option", linelog.SeverityWarning},
		{"trace id abc", linelog.SeverityDebug},
		{"served /index", linelog.SeverityNormal},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectSeverity(tt.msg))
		})
	}
}
