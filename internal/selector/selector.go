// Package selector parses dot-separated key paths and resolves them against
// any tree that exposes a Navigator.
package selector

import (
	"errors"
	"fmt"
	"strings"

	"github.com/conn-castle/bumpver/internal/messages"
)

// Selector is an ordered, non-empty list of mapping keys.
type Selector []string

// Parse splits raw on "." into a Selector. Every segment must be non-empty.
func Parse(raw string) (Selector, error) {
	if raw == "" {
		return nil, &InvalidSelectorError{Raw: raw}
	}
	segments := strings.Split(raw, ".")
	for _, segment := range segments {
		if segment == "" {
			return nil, &InvalidSelectorError{Raw: raw}
		}
	}
	return Selector(segments), nil
}

func (s Selector) String() string {
	return strings.Join(s, ".")
}

// Navigator is the capability set a document model supplies to Resolve.
// N is the model's node handle.
type Navigator[N any] interface {
	// IsTable reports whether n is a mapping that can be descended into.
	IsTable(n N) bool
	// Child returns the value stored under key in the mapping n.
	Child(n N, key string) (N, bool)
}

// Resolve walks sel from root and returns the handle of the final segment.
// The leaf's type is not inspected. Missing segments are never created.
func Resolve[N any](nav Navigator[N], root N, sel Selector) (N, error) {
	var zero N
	if len(sel) == 0 {
		return zero, &InvalidSelectorError{}
	}
	if !nav.IsTable(root) {
		return zero, &NotATableError{Selector: sel.String()}
	}

	current := root
	last := len(sel) - 1
	for i, segment := range sel {
		next, ok := nav.Child(current, segment)
		if !ok {
			return zero, &MissingKeyError{Segment: segment, Selector: sel.String()}
		}
		if i < last && !nav.IsTable(next) {
			return zero, &NotATableError{Segment: segment, Selector: sel.String()}
		}
		current = next
	}
	return current, nil
}

// InvalidSelectorError reports an empty selector or one with an empty segment.
type InvalidSelectorError struct {
	Raw string
}

func (e *InvalidSelectorError) Error() string {
	if e.Raw == "" {
		return messages.SelectorEmpty
	}
	return fmt.Sprintf(messages.SelectorEmptySegmentFmt, e.Raw)
}

// MissingKeyError names the first selector segment that is absent.
type MissingKeyError struct {
	Segment  string
	Selector string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf(messages.SelectorMissingKeyFmt, e.Segment, e.Selector)
}

// NotATableError names the segment whose value cannot be descended into.
// An empty Segment means the document root itself is not a mapping.
type NotATableError struct {
	Segment  string
	Selector string
}

func (e *NotATableError) Error() string {
	if e.Segment == "" {
		return messages.SelectorRootNotATable
	}
	return fmt.Sprintf(messages.SelectorNotATableFmt, e.Segment, e.Selector)
}

// IsMissingKey reports whether err is a MissingKeyError.
func IsMissingKey(err error) bool {
	var target *MissingKeyError
	return errors.As(err, &target)
}

// IsNotATable reports whether err is a NotATableError.
func IsNotATable(err error) bool {
	var target *NotATableError
	return errors.As(err, &target)
}
