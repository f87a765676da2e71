// FILE: lixenwraith/linelog/state.go
package linelog

import (
	"sync/atomic"
	"time"
)

// State encapsulates the runtime state of a session
type State struct {
	IsInitialized atomic.Bool
	Closed        atomic.Bool
	SessionStart  atomic.Value // stores time.Time, snapshotted for the default header

	// Placement state, guarded by Logger.mu
	headerEmitted bool
	cursor        int // Lines placed at the top this session
	anchor        int // Line index for the next top insert, just below this session's header

	// Counters
	TotalRecords      atomic.Uint64 // Record lines written
	TotalHeaders      atomic.Uint64 // Header lines written
	TotalInserts      atomic.Uint64 // Lines placed by the top inserter
	TotalTruncations  atomic.Uint64 // Calls with append=false
	TotalEvictions    atomic.Uint64 // Eviction rewrites
	EvictedLines      atomic.Uint64 // Lines removed by eviction
	FailedCalls       atomic.Uint64 // Log calls that returned an error
	HeartbeatSequence atomic.Uint64
}

// Stats is a point-in-time copy of session state and counters
type Stats struct {
	Path          string
	SessionStart  time.Time
	HeaderEmitted bool
	Cursor        int
	Records       uint64
	Headers       uint64
	Inserts       uint64
	Truncations   uint64
	Evictions     uint64
	EvictedLines  uint64
	FailedCalls   uint64
}

// resetSession returns the placement state to NoHeader with the cursor at the top
func (s *State) resetSession(start time.Time) {
	s.headerEmitted = false
	s.cursor = 0
	s.anchor = 0
	s.SessionStart.Store(start)
}

func (s *State) sessionStart() time.Time {
	if t, ok := s.SessionStart.Load().(time.Time); ok {
		return t
	}
	return time.Time{}
}
