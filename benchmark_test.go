// FILE: lixenwraith/linelog/benchmark_test.go
package linelog

import (
	"path/filepath"
	"testing"
)

func benchmarkLogger(b *testing.B, overrides ...string) *Logger {
	b.Helper()
	logger, err := NewBuilder().
		Path(filepath.Join(b.TempDir(), "bench.log")).
		CallerTrace(false).
		Overrides(overrides...).
		Build()
	if err != nil {
		b.Fatal(err)
	}
	b.Cleanup(func() { _ = logger.Close() })
	return logger
}

func BenchmarkAppend(b *testing.B) {
	logger := benchmarkLogger(b, "line_limit=0")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = logger.Print("benchmark record")
	}
}

func BenchmarkAppendWithCeiling(b *testing.B) {
	logger := benchmarkLogger(b, "line_limit=500")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = logger.Print("benchmark record")
	}
}

func BenchmarkTopInsert(b *testing.B) {
	logger := benchmarkLogger(b, "top_insert=true", "line_limit=500")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = logger.Print("benchmark record")
	}
}

func BenchmarkCallerTrace(b *testing.B) {
	logger := benchmarkLogger(b, "line_limit=0", "caller_trace=true")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = logger.Print("benchmark record")
	}
}

func BenchmarkFormatArgs(b *testing.B) {
	args := []any{"key", 42, "ratio", 0.5, "ok", true}
	for i := 0; i < b.N; i++ {
		_ = formatArgs(DefaultTimestampFormat, args...)
	}
}
