// FILE: lixenwraith/linelog/follow/follow.go
package follow

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Event carries lines observed in the target.
// Reset marks a replaced or shrunk file; Lines then holds its complete content.
type Event struct {
	Lines []string
	Reset bool
}

// Follower reports changes to one target file.
// The parent directory is watched because eviction and top insertion replace the file by rename.
type Follower struct {
	path    string
	base    string
	fsw     *fsnotify.Watcher
	offset  int64
	partial string
	last    os.FileInfo
}

// New starts watching path. With fromStart the first event from Run carries the current content,
// otherwise only lines written after New are reported.
func New(path string, fromStart bool) (*Follower, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("follow: resolve %s: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("follow: create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("follow: watch %s: %w", filepath.Dir(abs), err)
	}

	f := &Follower{
		path: abs,
		base: filepath.Base(abs),
		fsw:  fsw,
	}

	if !fromStart {
		if info, err := os.Stat(abs); err == nil {
			f.offset = info.Size()
			f.last = info
		}
	}

	return f, nil
}

// Run delivers events to handle until ctx is cancelled or the watcher fails.
// handle runs on the calling goroutine.
func (f *Follower) Run(ctx context.Context, handle func(Event)) error {
	defer f.fsw.Close()

	// Pick up anything present or written between New and Run
	if err := f.poll(handle); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-f.fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != f.base {
				continue
			}
			switch {
			case ev.Op&fsnotify.Write != 0,
				ev.Op&fsnotify.Create != 0,
				ev.Op&fsnotify.Remove != 0,
				ev.Op&fsnotify.Rename != 0:
				if err := f.poll(handle); err != nil {
					return err
				}
			}
		case err, ok := <-f.fsw.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("follow: watcher error: %w", err)
		}
	}
}

// poll compares the file with the last observation and emits what changed
func (f *Follower) poll(handle func(Event)) error {
	info, err := os.Stat(f.path)
	if errors.Is(err, os.ErrNotExist) {
		// Mid-rename or deleted; the next Create brings it back
		return nil
	}
	if err != nil {
		return fmt.Errorf("follow: stat %s: %w", f.path, err)
	}

	replaced := f.last != nil && !os.SameFile(f.last, info)
	shrunk := info.Size() < f.offset
	f.last = info

	if replaced || shrunk {
		lines, size, _, err := readFrom(f.path, 0)
		if err != nil {
			return err
		}
		f.offset = size
		f.partial = ""
		handle(Event{Lines: lines, Reset: true})
		return nil
	}

	if info.Size() == f.offset {
		return nil
	}

	lines, size, terminated, err := readFrom(f.path, f.offset)
	if err != nil {
		return err
	}
	f.offset = size

	if len(lines) > 0 && f.partial != "" {
		lines[0] = f.partial + lines[0]
		f.partial = ""
	}
	// Hold an unterminated tail until its newline arrives
	if n := len(lines); n > 0 && !terminated {
		f.partial = lines[n-1]
		lines = lines[:n-1]
	}

	if len(lines) > 0 {
		handle(Event{Lines: lines})
	}
	return nil
}

// readFrom returns the lines starting at offset, the offset reached and whether the last line was terminated
func readFrom(path string, offset int64) ([]string, int64, bool, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, offset, false, fmt.Errorf("follow: open %s: %w", path, err)
	}
	defer file.Close()

	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return nil, offset, false, fmt.Errorf("follow: seek %s: %w", path, err)
	}

	var lines []string
	terminated := true
	r := bufio.NewReader(file)
	pos := offset
	for {
		line, err := r.ReadString('\n')
		pos += int64(len(line))
		if len(line) > 0 {
			terminated = strings.HasSuffix(line, "\n")
			lines = append(lines, strings.TrimRight(line, "\r\n"))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, offset, false, fmt.Errorf("follow: read %s: %w", path, err)
		}
	}
	return lines, pos, terminated, nil
}
