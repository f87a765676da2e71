// FILE: lixenwraith/linelog/interface_test.go
package linelog

import (
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter(t *testing.T) {
	logger, path := createTestLogger(t)
	w := logger.Writer(SeverityWarning)

	input := "first\r\n\nsecond\nthird"
	n, err := w.Write([]byte(input))
	require.NoError(t, err)
	assert.Equal(t, len(input), n)

	assert.Equal(t, []string{testHeader, "warning: first", "warning: second", "warning: third"}, readLines(t, path))
}

func TestWriterBlankOnly(t *testing.T) {
	logger, path := createTestLogger(t)

	n, err := logger.Writer(SeverityNormal).Write([]byte("\n\r\n"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Empty(t, readLines(t, path))
}

func TestWriterWithStdlibLogger(t *testing.T) {
	logger, path := createTestLogger(t, "header_layout=false")

	std := log.New(logger.Writer(SeverityNormal), "app: ", 0)
	std.Print("hello")
	std.Printf("count %d", 2)

	assert.Equal(t, []string{testTimestamp + " app: hello", testTimestamp + " app: count 2"}, readLines(t, path))
}

func TestWriterErrors(t *testing.T) {
	logger, _ := createTestLogger(t)
	require.NoError(t, logger.Close())

	n, err := logger.Writer(SeverityNormal).Write([]byte("x\n"))
	assert.ErrorIs(t, err, ErrClosed)
	assert.Zero(t, n)

	_, err = logger.Writer(Severity(42)).Write([]byte("x"))
	assert.Error(t, err)
}

func TestWriterCallerTrace(t *testing.T) {
	logger, path := createTestLogger(t, "caller_trace=true")

	_, err := logger.Writer(SeverityNormal).Write([]byte("x"))
	require.NoError(t, err)

	lines := readLines(t, path)
	require.Len(t, lines, 2)
	assert.True(t, strings.Contains(lines[1], "TestWriterCallerTrace(interface_test.go:"), lines[1])
}
