// FILE: lixenwraith/linelog/errors.go
package linelog

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed file operation
type ErrorKind int

// File error kinds
const (
	KindFileUnwritable ErrorKind = iota + 1 // permissions, missing parent directory, disk full
	KindFileUnreadable                      // probe or top-insert read failure
	KindPartialRewrite                      // rewrite aborted; the original file is left in place
)

// Sentinels for errors.Is matching
var (
	ErrFileUnwritable  = errors.New("linelog: file unwritable")
	ErrFileUnreadable  = errors.New("linelog: file unreadable")
	ErrPartialRewrite  = errors.New("linelog: partial rewrite failure")
	ErrUnknownSeverity = errors.New("linelog: unknown severity")
	ErrNotInitialized  = errors.New("linelog: logger not initialized")
	ErrClosed          = errors.New("linelog: logger closed")
)

// String returns the kind name
func (k ErrorKind) String() string {
	switch k {
	case KindFileUnwritable:
		return "FileUnwritable"
	case KindFileUnreadable:
		return "FileUnreadable"
	case KindPartialRewrite:
		return "PartialRewriteFailure"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindFileUnwritable:
		return ErrFileUnwritable
	case KindFileUnreadable:
		return ErrFileUnreadable
	case KindPartialRewrite:
		return ErrPartialRewrite
	default:
		return nil
	}
}

// FileError reports an I/O failure against the target file.
// It matches both its kind sentinel and the underlying cause with errors.Is / errors.As.
type FileError struct {
	Kind ErrorKind
	Op   string
	Path string
	Err  error
}

// Error implements error
func (e *FileError) Error() string {
	return fmt.Sprintf("linelog: %s %s (%s): %v", e.Op, e.Path, e.Kind, e.Err)
}

// Unwrap exposes the kind sentinel and the cause
func (e *FileError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s := e.Kind.sentinel(); s != nil {
		errs = append(errs, s)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func newFileError(kind ErrorKind, op, path string, err error) *FileError {
	return &FileError{Kind: kind, Op: op, Path: path, Err: err}
}
