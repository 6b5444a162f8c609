package utils

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/danjacques/gofslock/fslock"

	//lint:ignore ST1001 ignore dot imports warning
	. "github.com/poppolopoppo/sqlite3src/internal/base"
)

/***************************************
 * DirectoryLock: only one process is allowed to build in a destination directory
 ***************************************/

var ErrDirectoryLocked = errors.New("directory is locked by another process")

const directoryLockPollInterval = 100 * time.Millisecond

type DirectoryLock struct {
	Path   Filename
	handle fslock.Handle
}

// LockDirectory takes an exclusive lock file inside dir and fails right away
// if another process holds it.
func LockDirectory(dir Directory, name string) (*DirectoryLock, error) {
	lockFile, err := prepareDirectoryLock(dir, name)
	if err != nil {
		return nil, err
	}

	LogTrace(LogUFS, "locking %q", lockFile)
	handle, err := fslock.Lock(lockFile.String())
	if err == fslock.ErrLockHeld {
		return nil, fmt.Errorf("%w: %q", ErrDirectoryLocked, lockFile)
	} else if err != nil {
		return nil, err
	}
	return &DirectoryLock{Path: lockFile, handle: handle}, nil
}

// WaitDirectoryLock polls the lock file until it can be taken or until ctx
// is done.
func WaitDirectoryLock(ctx context.Context, dir Directory, name string) (*DirectoryLock, error) {
	lockFile, err := prepareDirectoryLock(dir, name)
	if err != nil {
		return nil, err
	}

	LogTrace(LogUFS, "waiting for %q", lockFile)
	l := fslock.L{
		Path: lockFile.String(),
		Block: func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(directoryLockPollInterval):
				return nil
			}
		},
	}
	handle, err := l.Lock()
	if err != nil {
		return nil, err
	}
	return &DirectoryLock{Path: lockFile, handle: handle}, nil
}

func prepareDirectoryLock(dir Directory, name string) (Filename, error) {
	if err := UFS.MkdirEx(dir); err != nil {
		return Filename{}, err
	}
	return dir.File(name), nil
}

func (x *DirectoryLock) Close() error {
	LogTrace(LogUFS, "unlocking %q", x.Path)
	return x.handle.Unlock()
}
