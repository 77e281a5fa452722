// Package fsutil holds the file primitives the driver uses: home-relative
// path expansion, advisory locking, and atomic replacement.
package fsutil

import (
	"fmt"

	"github.com/mitchellh/go-homedir"

	"github.com/conn-castle/bumpver/internal/messages"
)

var expandFn = homedir.Expand

// ExpandPath resolves a leading "~" to the current user's home directory.
// Other paths are returned unchanged.
func ExpandPath(path string) (string, error) {
	expanded, err := expandFn(path)
	if err != nil {
		return "", fmt.Errorf(messages.FileExpandFailedFmt, path, err)
	}
	return expanded, nil
}
