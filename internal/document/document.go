// Package document holds the JSON, YAML, and TOML tree models. Each model
// implements selector.Navigator over its own node handle so that one resolver
// serves all three formats.
package document

import (
	"errors"
	"fmt"

	"github.com/conn-castle/bumpver/internal/format"
	"github.com/conn-castle/bumpver/internal/messages"
	"github.com/conn-castle/bumpver/internal/selector"
)

// Document is a parsed configuration file that can read and replace string leaves.
type Document interface {
	// Format reports the concrete model backing the document.
	Format() format.Format
	// ReadString resolves sel and returns the string stored there.
	ReadString(sel selector.Selector) (string, error)
	// WriteString resolves sel and replaces the string stored there in place.
	// The leaf must already hold a string; missing keys are never created.
	WriteString(sel selector.Selector, value string) error
	// Encode serializes the document in its original format.
	Encode() ([]byte, error)
}

// Parse builds the document model for f from data.
func Parse(f format.Format, data []byte) (Document, error) {
	switch f {
	case format.JSON:
		return ParseJSON(data)
	case format.YAML:
		return ParseYAML(data)
	case format.TOML:
		return ParseTOML(data)
	default:
		return nil, fmt.Errorf(messages.DocumentUnsupportedFmt, f)
	}
}

// ParseError reports malformed document input.
type ParseError struct {
	Format format.Format
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf(messages.DocumentParseFailedFmt, e.Format, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NotAStringError reports a resolved leaf that does not hold a string.
type NotAStringError struct {
	Selector string
}

func (e *NotAStringError) Error() string {
	return fmt.Sprintf(messages.DocumentNotAStringFmt, e.Selector)
}

// IsParseError reports whether err is a ParseError.
func IsParseError(err error) bool {
	var target *ParseError
	return errors.As(err, &target)
}

// IsNotAString reports whether err is a NotAStringError.
func IsNotAString(err error) bool {
	var target *NotAStringError
	return errors.As(err, &target)
}

// model is the per-format capability set the shared read and write paths use.
type model[N any] interface {
	selector.Navigator[N]
	// String returns the leaf's text when n is a string scalar.
	String(n N) (string, bool)
	// SetString replaces the string held by n without moving it in the tree.
	SetString(n N, value string) error
}

func readString[N any](m model[N], root N, sel selector.Selector) (string, error) {
	leaf, err := selector.Resolve[N](m, root, sel)
	if err != nil {
		return "", err
	}
	value, ok := m.String(leaf)
	if !ok {
		return "", &NotAStringError{Selector: sel.String()}
	}
	return value, nil
}

func writeString[N any](m model[N], root N, sel selector.Selector, value string) error {
	leaf, err := selector.Resolve[N](m, root, sel)
	if err != nil {
		return err
	}
	if _, ok := m.String(leaf); !ok {
		return &NotAStringError{Selector: sel.String()}
	}
	return m.SetString(leaf, value)
}
