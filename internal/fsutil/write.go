package fsutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/conn-castle/bumpver/internal/messages"
)

var renameFn = os.Rename

// WriteFileAtomic replaces path with data. The bytes go to a temp file in the
// same directory which is synced and then renamed over path, so readers see
// either the old content or the new content. On any error path is untouched.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf(messages.FileWriteFailedFmt, path, err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if err = tmp.Chmod(perm); err != nil {
		return fmt.Errorf(messages.FileWriteFailedFmt, path, err)
	}
	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf(messages.FileWriteFailedFmt, path, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf(messages.FileWriteFailedFmt, path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf(messages.FileWriteFailedFmt, path, err)
	}
	if err = renameFn(tmpName, path); err != nil {
		return fmt.Errorf(messages.FileWriteFailedFmt, path, err)
	}
	return nil
}

// ReplaceFile rewrites an existing file atomically, keeping its permission bits.
func ReplaceFile(path string, data []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf(messages.FileStatFailedFmt, path, err)
	}
	return WriteFileAtomic(path, data, info.Mode().Perm())
}
