// FILE: lixenwraith/linelog/storage.go
package linelog

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// lineEnding is the platform-native record terminator
var lineEnding = func() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}()

// target is the on-disk file a session writes to. It holds no content between calls;
// callers serialize access through the path lock.
type target struct {
	path string
	mode os.FileMode
	sync bool
}

func newTarget(cfg *Config) *target {
	return &target{
		path: cfg.Path,
		mode: cfg.fileMode(),
		sync: cfg.SyncOnWrite,
	}
}

// exists is the liveness check: the target is present and is a regular file
func (t *target) exists() bool {
	info, err := os.Stat(t.path)
	return err == nil && info.Mode().IsRegular()
}

// countLines returns the number of lines in the target. A trailing fragment without a terminator
// counts as a line. A missing file has zero lines.
func (t *target) countLines() (int, error) {
	f, err := os.Open(t.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, newFileError(KindFileUnreadable, "count", t.path, err)
	}
	defer f.Close()

	buf := make([]byte, countBufferSize)
	count := 0
	read := false
	var last byte
	for {
		n, err := f.Read(buf)
		if n > 0 {
			count += bytes.Count(buf[:n], []byte{'\n'})
			last = buf[n-1]
			read = true
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, newFileError(KindFileUnreadable, "count", t.path, err)
		}
	}
	if read && last != '\n' {
		count++
	}
	return count, nil
}

// readLines loads every line of the target without terminators. A missing file yields no lines.
func (t *target) readLines() ([]string, error) {
	f, err := os.Open(t.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, newFileError(KindFileUnreadable, "read", t.path, err)
	}
	defer f.Close()

	var lines []string
	r := bufio.NewReader(f)
	for {
		line, err := r.ReadString('\n')
		if len(line) > 0 {
			line = strings.TrimSuffix(line, "\n")
			line = strings.TrimSuffix(line, "\r")
			lines = append(lines, line)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, newFileError(KindFileUnreadable, "read", t.path, err)
		}
	}
	return lines, nil
}

// appendLine writes one line after the existing content, or replaces all content when appendMode is false.
// The file is created when absent.
func (t *target) appendLine(line string, appendMode bool) error {
	op := "append"
	flags := os.O_CREATE | os.O_RDWR
	if appendMode {
		flags |= os.O_APPEND
	} else {
		op = "truncate"
		flags |= os.O_TRUNC
	}

	f, err := os.OpenFile(t.path, flags, t.mode)
	if err != nil {
		return newFileError(KindFileUnwritable, op, t.path, err)
	}

	data := line + lineEnding
	if appendMode {
		// Keep a previously unterminated last line from merging with the new record
		if info, statErr := f.Stat(); statErr == nil && info.Size() > 0 {
			var last [1]byte
			if _, readErr := f.ReadAt(last[:], info.Size()-1); readErr == nil && last[0] != '\n' {
				data = lineEnding + data
			}
		}
	}

	if _, err := f.WriteString(data); err != nil {
		_ = f.Close()
		return newFileError(KindFileUnwritable, op, t.path, err)
	}
	if t.sync {
		if err := f.Sync(); err != nil {
			_ = f.Close()
			return newFileError(KindFileUnwritable, op, t.path, err)
		}
	}
	if err := f.Close(); err != nil {
		return newFileError(KindFileUnwritable, op, t.path, err)
	}
	return nil
}

// insertLine splices line before the line currently at index; an index past the end appends.
// The file is rewritten atomically.
func (t *target) insertLine(line string, index int) error {
	lines, err := t.readLines()
	if err != nil {
		return err
	}

	if index < 0 {
		index = 0
	}
	if index >= len(lines) {
		lines = append(lines, line)
	} else {
		lines = append(lines, "")
		copy(lines[index+1:], lines[index:])
		lines[index] = line
	}

	return t.rewrite("insert", lines)
}

// enforceLimit trims the target to the retention window when it holds more than limit lines.
// front keeps the first lines (top-insert mode), otherwise the last lines are kept.
// A non-nil isHeader excludes header lines from the count. Returns the number of evicted lines.
func (t *target) enforceLimit(limit int, front bool, isHeader func(string) bool) (int, error) {
	if limit <= 0 {
		return 0, nil
	}

	total, err := t.countLines()
	if err != nil {
		return 0, err
	}
	if total <= limit {
		return 0, nil
	}

	lines, err := t.readLines()
	if err != nil {
		return 0, err
	}

	kept := retainWindow(lines, limit, front, isHeader)
	if len(kept) == len(lines) {
		return 0, nil
	}

	if err := t.rewrite("evict", kept); err != nil {
		return 0, err
	}
	return len(lines) - len(kept), nil
}

// retainWindow selects the lines that survive eviction.
// Without a header predicate it is a plain front or back slice of limit lines. With one, only record
// lines are counted; headers inside the window survive, and a back window also keeps the nearest
// header above it so the oldest retained records keep their session heading.
func retainWindow(lines []string, limit int, front bool, isHeader func(string) bool) []string {
	if isHeader == nil {
		if len(lines) <= limit {
			return lines
		}
		if front {
			return lines[:limit]
		}
		return lines[len(lines)-limit:]
	}

	records := 0
	if front {
		for i, line := range lines {
			if isHeader(line) {
				continue
			}
			records++
			if records == limit {
				return lines[:i+1]
			}
		}
		return lines
	}

	for i := len(lines) - 1; i >= 0; i-- {
		if isHeader(lines[i]) {
			continue
		}
		records++
		if records < limit {
			continue
		}
		kept := lines[i:]
		for j := i - 1; j >= 0; j-- {
			if isHeader(lines[j]) {
				return append([]string{lines[j]}, kept...)
			}
		}
		return kept
	}
	return lines
}

// rewrite replaces the target content with lines through a temp file in the same directory and a rename.
// On failure the original file is left untouched and the temp file is removed.
func (t *target) rewrite(op string, lines []string) (err error) {
	dir, base := filepath.Split(t.path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return newFileError(KindPartialRewrite, op, t.path, err)
	}
	tmpPath := tmp.Name()

	defer func() {
		if err != nil {
			if rmErr := os.Remove(tmpPath); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
				err = combineErrors(err, fmtErrorf("failed to remove temp file '%s': %w", tmpPath, rmErr))
			}
		}
	}()

	w := bufio.NewWriter(tmp)
	for _, line := range lines {
		if _, werr := w.WriteString(line); werr != nil {
			_ = tmp.Close()
			return newFileError(KindPartialRewrite, op, t.path, werr)
		}
		if _, werr := w.WriteString(lineEnding); werr != nil {
			_ = tmp.Close()
			return newFileError(KindPartialRewrite, op, t.path, werr)
		}
	}
	if ferr := w.Flush(); ferr != nil {
		_ = tmp.Close()
		return newFileError(KindPartialRewrite, op, t.path, ferr)
	}
	if serr := tmp.Sync(); serr != nil {
		_ = tmp.Close()
		return newFileError(KindPartialRewrite, op, t.path, serr)
	}
	if cerr := tmp.Close(); cerr != nil {
		return newFileError(KindPartialRewrite, op, t.path, cerr)
	}

	mode := t.mode
	if info, statErr := os.Stat(t.path); statErr == nil {
		mode = info.Mode().Perm()
	}
	if cerr := os.Chmod(tmpPath, mode); cerr != nil {
		return newFileError(KindPartialRewrite, op, t.path, cerr)
	}

	if rerr := os.Rename(tmpPath, t.path); rerr != nil {
		return newFileError(KindPartialRewrite, op, t.path, rerr)
	}
	return nil
}
