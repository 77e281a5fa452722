// Package version parses semantic versions and computes bumps.
//
// Bump output is always the bare MAJOR.MINOR.PATCH core: pre-release and build
// metadata are accepted on input but dropped from the result.
package version

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/conn-castle/bumpver/internal/messages"
)

// Version is a parsed semantic version.
type Version struct {
	Major      uint64
	Minor      uint64
	Patch      uint64
	Prerelease string // without the leading '-'
	Build      string // without the leading '+'

	raw string
}

// InvalidVersionError reports a value that does not follow the semver grammar.
type InvalidVersionError struct {
	Value string
}

func (e *InvalidVersionError) Error() string {
	return fmt.Sprintf(messages.VersionInvalidFmt, e.Value)
}

// NotIncreasingError reports an explicit target that is not greater than the current version.
type NotIncreasingError struct {
	Current string
	Target  string
}

func (e *NotIncreasingError) Error() string {
	return fmt.Sprintf(messages.VersionNotIncreasingFmt, e.Target, e.Current)
}

// IsInvalidVersion reports whether err is an InvalidVersionError.
func IsInvalidVersion(err error) bool {
	var target *InvalidVersionError
	return errors.As(err, &target)
}

// IsNotIncreasing reports whether err is a NotIncreasingError.
func IsNotIncreasing(err error) bool {
	var target *NotIncreasingError
	return errors.As(err, &target)
}

// Parse parses s as MAJOR.MINOR.PATCH[-prerelease][+build].
// A leading "v" and the MAJOR or MAJOR.MINOR shorthands are rejected.
func Parse(s string) (Version, error) {
	if s == "" || strings.HasPrefix(s, "v") {
		return Version{}, &InvalidVersionError{Value: s}
	}
	canonical := "v" + s
	if !semver.IsValid(canonical) {
		return Version{}, &InvalidVersionError{Value: s}
	}

	core := s
	if i := strings.IndexAny(core, "-+"); i >= 0 {
		core = core[:i]
	}
	parts := strings.Split(core, ".")
	if len(parts) != 3 {
		return Version{}, &InvalidVersionError{Value: s}
	}
	nums := make([]uint64, 3)
	for i, part := range parts {
		n, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return Version{}, &InvalidVersionError{Value: s}
		}
		nums[i] = n
	}

	return Version{
		Major:      nums[0],
		Minor:      nums[1],
		Patch:      nums[2],
		Prerelease: strings.TrimPrefix(semver.Prerelease(canonical), "-"),
		Build:      strings.TrimPrefix(semver.Build(canonical), "+"),
		raw:        s,
	}, nil
}

// MustParse is like Parse but panics on error. Intended for tests and constants.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the bare MAJOR.MINOR.PATCH core.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Original returns the version exactly as it was parsed, including metadata.
func (v Version) Original() string {
	if v.raw == "" {
		return v.String()
	}
	return v.raw
}

// Compare returns -1, 0, or +1 following semver precedence.
// Build metadata does not participate in precedence.
func Compare(a, b Version) int {
	return semver.Compare("v"+a.Original(), "v"+b.Original())
}
