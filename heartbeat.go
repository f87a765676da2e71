// FILE: lixenwraith/linelog/heartbeat.go
package linelog

import (
	"fmt"
	"os"
	"runtime"
	"time"
)

// Heartbeat writes a normal record with session statistics, for long-running processes that want
// periodic proof of life in the target. Detail 1 adds target file figures, 2 adds runtime figures.
func (l *Logger) Heartbeat(detail int) error {
	args := l.sessionHeartbeatArgs()

	if detail >= 1 {
		args = append(args, l.fileHeartbeatArgs()...)
	}

	if detail >= 2 {
		args = append(args, sysHeartbeatArgs()...)
	}

	return l.outputArgs(2, SeverityNormal, args)
}

// sessionHeartbeatArgs collects placement and counter state
func (l *Logger) sessionHeartbeatArgs() []any {
	sequence := l.state.HeartbeatSequence.Add(1)
	stats := l.Stats()

	var uptimeHours float64
	if !stats.SessionStart.IsZero() {
		uptimeHours = time.Since(stats.SessionStart).Hours()
	}

	return []any{
		"heartbeat", sequence,
		"uptime_hours", fmt.Sprintf("%.2f", uptimeHours),
		"records", stats.Records,
		"headers", stats.Headers,
		"inserts", stats.Inserts,
		"truncations", stats.Truncations,
		"evictions", stats.Evictions,
		"evicted_lines", stats.EvictedLines,
		"failed_calls", stats.FailedCalls,
	}
}

// fileHeartbeatArgs collects target size figures; -1 marks a failed probe
func (l *Logger) fileHeartbeatArgs() []any {
	lines, err := l.Lines()
	if err != nil {
		l.internalLog("warning - heartbeat failed to count lines: %v\n", err)
		lines = -1
	}

	sizeKB := float64(-1)
	if info, err := os.Stat(l.getConfig().Path); err == nil {
		sizeKB = float64(info.Size()) / 1024
	} else if !os.IsNotExist(err) {
		l.internalLog("warning - heartbeat failed to stat target: %v\n", err)
	} else {
		sizeKB = 0
	}

	return []any{
		"lines", lines,
		"line_limit", l.getConfig().LineLimit,
		"file_size_kb", fmt.Sprintf("%.2f", sizeKB),
	}
}

// sysHeartbeatArgs collects Go runtime figures
func sysHeartbeatArgs() []any {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return []any{
		"alloc_mb", fmt.Sprintf("%.2f", float64(memStats.Alloc)/(1000*1000)),
		"num_gc", memStats.NumGC,
		"num_goroutine", runtime.NumGoroutine(),
	}
}
