// FILE: lixenwraith/linelog/lock.go
package linelog

import (
	"path/filepath"
	"sync"
)

// pathLock serializes write-probe-evict sequences for one target path across all sessions in the process
type pathLock struct {
	mu   sync.Mutex
	key  string
	refs int
}

var pathLocks = struct {
	sync.Mutex
	m map[string]*pathLock
}{m: make(map[string]*pathLock)}

// lockKey normalizes a path so that different spellings of one file share a lock
func lockKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

// acquirePathLock returns the shared lock for path and takes a reference on it
func acquirePathLock(path string) *pathLock {
	key := lockKey(path)

	pathLocks.Lock()
	defer pathLocks.Unlock()

	pl, ok := pathLocks.m[key]
	if !ok {
		pl = &pathLock{key: key}
		pathLocks.m[key] = pl
	}
	pl.refs++
	return pl
}

// releasePathLock drops a reference; the entry is removed with the last one
func releasePathLock(pl *pathLock) {
	if pl == nil {
		return
	}

	pathLocks.Lock()
	defer pathLocks.Unlock()

	pl.refs--
	if pl.refs <= 0 {
		delete(pathLocks.m, pl.key)
	}
}
