package fsutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sys/unix"

	"github.com/conn-castle/bumpver/internal/messages"
)

type fileLock struct {
	file *os.File
}

var lockFileFn = lockFile
var unlockFileFn = unlockFile
var flockFn = unix.Flock
var lockSleep = time.Sleep

var (
	lockWaitTimeout = 30 * time.Second
	lockPollEvery   = 100 * time.Millisecond
)

// WithFileLock holds an exclusive advisory lock for path while fn runs.
// The lock is taken on path's parent directory, whose inode stays the same when
// path is atomically replaced. path must already exist; it is never created here.
func WithFileLock(path string, fn func() error) error {
	lock, err := acquireFileLock(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = lock.release()
	}()
	return fn()
}

// acquireFileLock checks that path exists and locks its parent directory.
func acquireFileLock(path string) (*fileLock, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf(messages.FileOpenLockFmt, path, err)
	}
	dir, err := os.Open(lockPath(path))
	if err != nil {
		return nil, fmt.Errorf(messages.FileOpenLockFmt, path, err)
	}
	if err := lockFileFn(dir); err != nil {
		_ = dir.Close()
		return nil, fmt.Errorf(messages.FileLockFmt, path, err)
	}
	return &fileLock{file: dir}, nil
}

// lockPath returns the directory whose lock guards path.
func lockPath(path string) string {
	return filepath.Dir(filepath.Clean(path))
}

// release unlocks and closes the file lock.
func (l *fileLock) release() error {
	if l == nil || l.file == nil {
		return nil
	}
	if err := unlockFileFn(l.file); err != nil {
		_ = l.file.Close()
		return err
	}
	return l.file.Close()
}

// lockFile polls for an exclusive lock until lockWaitTimeout elapses.
func lockFile(file *os.File) error {
	deadline := time.Now().Add(lockWaitTimeout)
	for {
		err := flockFn(int(file.Fd()), unix.LOCK_EX|unix.LOCK_NB)
		if err == nil {
			return nil
		}
		if !errors.Is(err, unix.EWOULDBLOCK) && !errors.Is(err, unix.EAGAIN) {
			return err
		}
		if time.Now().After(deadline) {
			return fmt.Errorf(messages.FileLockTimeoutFmt, lockWaitTimeout)
		}
		lockSleep(lockPollEvery)
	}
}

func unlockFile(file *os.File) error {
	return flockFn(int(file.Fd()), unix.LOCK_UN)
}
