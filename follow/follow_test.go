// FILE: lixenwraith/linelog/follow/follow_test.go
package follow

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startFollower runs a follower in the background and returns its event stream
func startFollower(t *testing.T, path string, fromStart bool) <-chan Event {
	t.Helper()
	f, err := New(path, fromStart)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	events := make(chan Event, 64)
	done := make(chan error, 1)
	go func() {
		done <- f.Run(ctx, func(ev Event) { events <- ev })
	}()

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Error("follower did not stop")
		}
	})
	return events
}

// nextEvent waits for one event
func nextEvent(t *testing.T, events <-chan Event) Event {
	t.Helper()
	select {
	case ev := <-events:
		return ev
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for follow event")
		return Event{}
	}
}

func appendString(t *testing.T, path, s string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	require.NoError(t, err)
	_, err = f.WriteString(s)
	require.NoError(t, err)
	require.NoError(t, f.Close())
}

func TestFollowAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	require.NoError(t, os.WriteFile(path, []byte("old\n"), 0644))

	events := startFollower(t, path, false)

	appendString(t, path, "new line\n")

	ev := nextEvent(t, events)
	assert.False(t, ev.Reset)
	assert.Equal(t, []string{"new line"}, ev.Lines)
}

func TestFollowFromStart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	require.NoError(t, os.WriteFile(path, []byte("a\nb\n"), 0644))

	events := startFollower(t, path, true)

	ev := nextEvent(t, events)
	assert.Equal(t, []string{"a", "b"}, ev.Lines)
}

func TestFollowMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "later.log")

	events := startFollower(t, path, false)

	appendString(t, path, "first\n")

	var got []string
	for len(got) == 0 {
		got = append(got, nextEvent(t, events).Lines...)
	}
	assert.Equal(t, []string{"first"}, got)
}

func TestFollowPartialLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	events := startFollower(t, path, false)

	appendString(t, path, "par")
	// Give the watcher a chance to observe the fragment on its own
	time.Sleep(50 * time.Millisecond)
	appendString(t, path, "tial\n")

	ev := nextEvent(t, events)
	assert.Equal(t, []string{"partial"}, ev.Lines)
}

func TestFollowReplacedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")
	require.NoError(t, os.WriteFile(path, []byte("one\ntwo\n"), 0644))

	events := startFollower(t, path, false)

	tmp := filepath.Join(dir, ".app.log.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte("zero\none\n"), 0644))
	require.NoError(t, os.Rename(tmp, path))

	ev := nextEvent(t, events)
	assert.True(t, ev.Reset)
	assert.Equal(t, []string{"zero", "one"}, ev.Lines)
}

func TestReadFrom(t *testing.T) {
	path := filepath.Join(t.TempDir(), "r.log")
	require.NoError(t, os.WriteFile(path, []byte("a\r\nb\nc"), 0644))

	lines, pos, terminated, err := readFrom(path, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, lines)
	assert.Equal(t, int64(6), pos)
	assert.False(t, terminated)

	lines, _, terminated, err = readFrom(path, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, lines)
	assert.False(t, terminated)
}
