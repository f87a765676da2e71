// FILE: lixenwraith/linelog/session.go
package linelog

// ready reports whether the session can touch its target. Caller must hold l.mu.
func (l *Logger) ready() error {
	if l.state.Closed.Load() {
		return ErrClosed
	}
	if !l.state.IsInitialized.Load() || l.lock == nil {
		return ErrNotInitialized
	}
	return nil
}

// output is the single write path behind every logging method.
// calldepth 1 attributes the record to the caller of output.
func (l *Logger) output(calldepth int, sev Severity, message string, appendMode bool) error {
	return l.emit(calldepth+1, sev, appendMode, func(*Config) string { return message })
}

// outputArgs appends a record built from args, rendered with the same config snapshot as the line
func (l *Logger) outputArgs(calldepth int, sev Severity, args []any) error {
	return l.emit(calldepth+1, sev, true, func(cfg *Config) string {
		return formatArgs(cfg.TimestampFormat, args...)
	})
}

func (l *Logger) emit(calldepth int, sev Severity, appendMode bool, message func(*Config) string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.ready(); err != nil {
		return err
	}

	cfg := l.getConfig()

	var caller string
	if cfg.CallerTrace {
		if c, ok := l.caller(calldepth); ok {
			caller = c.String()
		}
	}

	// Render before locking the path so a bad severity never reaches the file
	var line string
	var err error
	if cfg.HeaderLayout {
		line, err = l.formatter.Record(sev, message(cfg), caller)
	} else {
		line, err = l.formatter.Stamped(l.clock(), sev, message(cfg), caller)
	}
	if err != nil {
		l.state.FailedCalls.Add(1)
		return fmtErrorf("failed to format record: %w", err)
	}

	l.lock.mu.Lock()
	defer l.lock.mu.Unlock()

	writeErr := l.place(cfg, line, appendMode)
	_, evictErr := l.evict(cfg)

	if err := combineErrors(writeErr, evictErr); err != nil {
		l.state.FailedCalls.Add(1)
		l.internalLog("write to %s failed: %v\n", cfg.Path, err)
		return err
	}
	return nil
}

// place writes a rendered record according to the session state.
// Top-inserted records go to the anchor, directly below this session's header (or line 0 without one),
// so they read newest-first and the front eviction window keeps the newest.
// Caller must hold l.mu and the path lock.
//
//	header layout, no header yet, top insert, append   header at the anchor, record below it
//	header layout, no header yet or append=false       header via the append writer, then record appended
//	header layout, header emitted, top insert          record at the anchor
//	header layout, header emitted                      record appended
//	timestamped, top insert, append                    record at the anchor (line 0)
//	timestamped                                        record appended, or the file truncated
func (l *Logger) place(cfg *Config, line string, appendMode bool) error {
	t := l.target

	if !cfg.HeaderLayout {
		if cfg.TopInsert && appendMode {
			if err := l.insertTop(line); err != nil {
				return err
			}
		} else {
			if err := t.appendLine(line, appendMode); err != nil {
				return err
			}
			if !appendMode {
				l.state.anchor = 0
				l.state.cursor = 1
				l.state.TotalTruncations.Add(1)
			}
		}
		l.state.TotalRecords.Add(1)
		return nil
	}

	switch {
	case !l.state.headerEmitted && cfg.TopInsert && appendMode:
		if err := l.insertTop(l.headerLine(cfg)); err != nil {
			return err
		}
		l.state.anchor++
		l.state.headerEmitted = true
		l.state.TotalHeaders.Add(1)

		if err := l.insertTop(line); err != nil {
			return err
		}

	case !l.state.headerEmitted || !appendMode:
		if err := t.appendLine(l.headerLine(cfg), appendMode); err != nil {
			return err
		}
		l.state.headerEmitted = true
		l.state.TotalHeaders.Add(1)
		if !appendMode {
			l.state.anchor = 1
			l.state.cursor = 1
			l.state.TotalTruncations.Add(1)
		}

		if err := t.appendLine(line, true); err != nil {
			return err
		}
		if !appendMode {
			l.state.cursor++
		}

	case cfg.TopInsert:
		if err := l.insertTop(line); err != nil {
			return err
		}

	default:
		if err := t.appendLine(line, true); err != nil {
			return err
		}
	}

	l.state.TotalRecords.Add(1)
	return nil
}

// insertTop places one line at the anchor and advances the cursor
func (l *Logger) insertTop(line string) error {
	if err := l.target.insertLine(line, l.state.anchor); err != nil {
		return err
	}
	l.state.cursor++
	l.state.TotalInserts.Add(1)
	return nil
}

// evict applies the line ceiling. Caller must hold l.mu and the path lock.
func (l *Logger) evict(cfg *Config) (int, error) {
	var isHeader func(string) bool
	if !cfg.CountHeader {
		current := l.headerLine(cfg)
		isHeader = func(line string) bool { return isHeaderLine(line, current) }
	}

	evicted, err := l.target.enforceLimit(int(cfg.LineLimit), cfg.TopInsert, isHeader)
	if err != nil {
		return 0, err
	}
	if evicted > 0 {
		l.state.TotalEvictions.Add(1)
		l.state.EvictedLines.Add(uint64(evicted))
	}
	return evicted, nil
}

// headerLine is the header text for this session
func (l *Logger) headerLine(cfg *Config) string {
	return l.formatter.Header(cfg.Header, l.state.sessionStart())
}
