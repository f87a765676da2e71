// FILE: lixenwraith/linelog/heartbeat_test.go
package linelog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeartbeat(t *testing.T) {
	tests := []struct {
		name    string
		detail  int
		want    []string
		notWant []string
	}{
		{
			name:    "session only",
			detail:  0,
			want:    []string{"heartbeat 1 ", "records 0", "evicted_lines 0", "failed_calls 0"},
			notWant: []string{"line_limit", "alloc_mb"},
		},
		{
			name:    "with file figures",
			detail:  1,
			want:    []string{"heartbeat 1 ", "lines 0", "line_limit 3000", "file_size_kb 0.00"},
			notWant: []string{"alloc_mb"},
		},
		{
			name:   "with runtime figures",
			detail: 2,
			want:   []string{"line_limit 3000", "alloc_mb ", "num_gc ", "num_goroutine "},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, path := createTestLogger(t)

			require.NoError(t, logger.Heartbeat(tt.detail))

			lines := readLines(t, path)
			require.Len(t, lines, 2)
			assert.Equal(t, testHeader, lines[0])
			assert.True(t, strings.HasPrefix(lines[1], "normal : heartbeat 1 uptime_hours "), lines[1])
			for _, s := range tt.want {
				assert.Contains(t, lines[1], s)
			}
			for _, s := range tt.notWant {
				assert.NotContains(t, lines[1], s)
			}
		})
	}
}

func TestHeartbeatSequence(t *testing.T) {
	logger, path := createTestLogger(t)

	require.NoError(t, logger.Print("a"))
	require.NoError(t, logger.Heartbeat(1))
	require.NoError(t, logger.Heartbeat(1))

	lines := readLines(t, path)
	require.Len(t, lines, 4)
	assert.Contains(t, lines[2], "heartbeat 1 ")
	assert.Contains(t, lines[2], "records 1 ")
	assert.Contains(t, lines[2], "lines 2 ")
	assert.Contains(t, lines[3], "heartbeat 2 ")
	assert.Contains(t, lines[3], "records 2 ")
	assert.Contains(t, lines[3], "lines 3 ")
}

func TestHeartbeatClosed(t *testing.T) {
	logger, _ := createTestLogger(t)
	require.NoError(t, logger.Close())

	assert.ErrorIs(t, logger.Heartbeat(2), ErrClosed)
}
