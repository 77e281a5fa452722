// Package format maps file names and explicit overrides to a document format.
//
// Detection policy: an explicit override always wins. Otherwise the file
// extension decides (.json, .yml, .yaml, .toml, case-insensitive). A missing or
// unrecognized extension is an error; there is no fallback format.
package format

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/conn-castle/bumpver/internal/messages"
)

// Format names a supported document format.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
	TOML Format = "toml"
)

// All lists the supported formats in the order shown to users.
var All = []Format{JSON, YAML, TOML}

func (f Format) String() string {
	return string(f)
}

// UnsupportedExtensionError reports a file whose format cannot be derived from its name.
type UnsupportedExtensionError struct {
	Path string
	Ext  string
}

func (e *UnsupportedExtensionError) Error() string {
	if e.Ext == "" {
		return fmt.Sprintf(messages.FormatMissingExtensionFmt, e.Path)
	}
	return fmt.Sprintf(messages.FormatUnsupportedExtensionFmt, e.Ext, e.Path)
}

// UnsupportedFormatError reports an explicit format override that is not recognized.
type UnsupportedFormatError struct {
	Name string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf(messages.FormatUnsupportedFmt, e.Name)
}

// IsUnsupported reports whether err means the format could not be determined.
func IsUnsupported(err error) bool {
	var extErr *UnsupportedExtensionError
	var fmtErr *UnsupportedFormatError
	return errors.As(err, &extErr) || errors.As(err, &fmtErr)
}

// Parse converts a user-supplied format name into a Format.
// "yml" is accepted as an alias for yaml.
func Parse(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	case "toml":
		return TOML, nil
	default:
		return "", &UnsupportedFormatError{Name: name}
	}
}

// Detect chooses the format for path. A non-empty override wins unconditionally.
func Detect(path string, override string) (Format, error) {
	if strings.TrimSpace(override) != "" {
		return Parse(override)
	}
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		return JSON, nil
	case ".yml", ".yaml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	default:
		return "", &UnsupportedExtensionError{Path: path, Ext: filepath.Ext(path)}
	}
}
