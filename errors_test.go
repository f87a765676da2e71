// FILE: lixenwraith/linelog/errors_test.go
package linelog

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileError(t *testing.T) {
	cause := &fs.PathError{Op: "open", Path: "/x", Err: fs.ErrPermission}
	err := newFileError(KindFileUnwritable, "append", "/x", cause)

	assert.Equal(t, "linelog: append /x (FileUnwritable): open /x: permission denied", err.Error())
	assert.True(t, errors.Is(err, ErrFileUnwritable))
	assert.True(t, errors.Is(err, fs.ErrPermission))
	assert.False(t, errors.Is(err, ErrFileUnreadable))

	var pathErr *fs.PathError
	assert.True(t, errors.As(err, &pathErr))
}

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, "FileUnwritable", KindFileUnwritable.String())
	assert.Equal(t, "FileUnreadable", KindFileUnreadable.String())
	assert.Equal(t, "PartialRewriteFailure", KindPartialRewrite.String())
	assert.Equal(t, "ErrorKind(0)", ErrorKind(0).String())
}

func TestFileErrorUnknownKind(t *testing.T) {
	err := newFileError(ErrorKind(0), "read", "/x", nil)

	assert.Empty(t, err.Unwrap())
	assert.False(t, errors.Is(err, ErrFileUnreadable))
}

func TestJoinedWriteAndEvictErrors(t *testing.T) {
	write := newFileError(KindFileUnwritable, "append", "/x", fs.ErrPermission)
	evict := newFileError(KindFileUnreadable, "count", "/x", fs.ErrPermission)

	err := combineErrors(write, evict)

	assert.True(t, errors.Is(err, ErrFileUnwritable))
	assert.True(t, errors.Is(err, ErrFileUnreadable))
}
