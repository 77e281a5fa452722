package version

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/conn-castle/bumpver/internal/messages"
)

// Kind identifies the bump instruction variant.
type Kind int

const (
	Major Kind = iota + 1
	Minor
	Patch
	Specific
)

func (k Kind) String() string {
	switch k {
	case Major:
		return "major"
	case Minor:
		return "minor"
	case Patch:
		return "patch"
	case Specific:
		return "specific"
	default:
		return "unknown"
	}
}

// Instruction is a bump request. Target is only meaningful for Specific.
type Instruction struct {
	Kind   Kind
	Target Version
}

// Set returns an instruction that sets the version to target.
func Set(target Version) Instruction {
	return Instruction{Kind: Specific, Target: target}
}

func (i Instruction) String() string {
	if i.Kind == Specific {
		return i.Target.Original()
	}
	return i.Kind.String()
}

// ParseInstruction reads a CLI bump token: major, minor, or patch in any case,
// otherwise an explicit version.
func ParseInstruction(raw string) (Instruction, error) {
	token := strings.TrimSpace(raw)
	if token == "" {
		return Instruction{}, errors.New(messages.VersionEmptyBump)
	}
	switch strings.ToLower(token) {
	case "major":
		return Instruction{Kind: Major}, nil
	case "minor":
		return Instruction{Kind: Minor}, nil
	case "patch":
		return Instruction{Kind: Patch}, nil
	}
	target, err := Parse(token)
	if err != nil {
		return Instruction{}, err
	}
	return Set(target), nil
}

// OverflowError reports a component that cannot be incremented further.
type OverflowError struct {
	Current string
	Kind    Kind
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf(messages.VersionOverflowFmt, e.Current, e.Kind)
}

// Bump applies instr to current and returns the new MAJOR.MINOR.PATCH string.
func Bump(current string, instr Instruction) (string, error) {
	v, err := Parse(current)
	if err != nil {
		return "", err
	}

	var next Version
	switch instr.Kind {
	case Major:
		if v.Major == math.MaxUint64 {
			return "", &OverflowError{Current: v.Original(), Kind: Major}
		}
		next = Version{Major: v.Major + 1}
	case Minor:
		if v.Minor == math.MaxUint64 {
			return "", &OverflowError{Current: v.Original(), Kind: Minor}
		}
		next = Version{Major: v.Major, Minor: v.Minor + 1}
	case Patch:
		if v.Patch == math.MaxUint64 {
			return "", &OverflowError{Current: v.Original(), Kind: Patch}
		}
		next = Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
	case Specific:
		if Compare(instr.Target, v) <= 0 {
			return "", &NotIncreasingError{Current: v.Original(), Target: instr.Target.Original()}
		}
		next = instr.Target
	default:
		return "", fmt.Errorf("unknown bump kind %d", instr.Kind)
	}
	return next.String(), nil
}
