package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBump_Levels(t *testing.T) {
	cases := []struct {
		current string
		kind    Kind
		want    string
	}{
		{"1.2.3", Major, "2.0.0"},
		{"1.2.3", Minor, "1.3.0"},
		{"1.2.3", Patch, "1.2.4"},
		{"0.0.0", Patch, "0.0.1"},
		{"0.9.9", Minor, "0.10.0"},
		{"1.2.3-rc.1+build.7", Patch, "1.2.4"},
		{"1.2.3-rc.1", Major, "2.0.0"},
	}
	for _, tc := range cases {
		t.Run(tc.current+"/"+tc.kind.String(), func(t *testing.T) {
			got, err := Bump(tc.current, Instruction{Kind: tc.kind})
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestBump_LevelsStrictlyIncrease(t *testing.T) {
	for _, current := range []string{"0.0.0", "1.2.3", "4.0.17", "10.20.30-beta.1", "3.3.3+meta"} {
		for _, kind := range []Kind{Major, Minor, Patch} {
			got, err := Bump(current, Instruction{Kind: kind})
			require.NoError(t, err)
			assert.Equal(t, 1, Compare(MustParse(got), MustParse(current)), "%s %s -> %s", current, kind, got)

			next := MustParse(got)
			old := MustParse(current)
			switch kind {
			case Major:
				assert.Zero(t, next.Minor)
				assert.Zero(t, next.Patch)
			case Minor:
				assert.Equal(t, old.Major, next.Major)
				assert.Zero(t, next.Patch)
			case Patch:
				assert.Equal(t, old.Major, next.Major)
				assert.Equal(t, old.Minor, next.Minor)
			}
			assert.Empty(t, next.Prerelease)
			assert.Empty(t, next.Build)
		}
	}
}

func TestBump_ComponentAtMaximumFails(t *testing.T) {
	const maxComponent = "18446744073709551615"
	cases := []struct {
		current string
		kind    Kind
	}{
		{maxComponent + ".0.0", Major},
		{"1." + maxComponent + ".3", Minor},
		{"1.2." + maxComponent, Patch},
	}
	for _, tc := range cases {
		t.Run(tc.kind.String(), func(t *testing.T) {
			got, err := Bump(tc.current, Instruction{Kind: tc.kind})
			require.Error(t, err)
			assert.Empty(t, got)
			var overflow *OverflowError
			require.ErrorAs(t, err, &overflow)
			assert.Equal(t, tc.kind, overflow.Kind)
			assert.Contains(t, err.Error(), tc.kind.String()+" component is at its maximum value")
		})
	}

	// Lower components may still be at the maximum.
	got, err := Bump("1."+maxComponent+"."+maxComponent, Instruction{Kind: Major})
	require.NoError(t, err)
	assert.Equal(t, "2.0.0", got)
}

func TestBump_Specific(t *testing.T) {
	got, err := Bump("1.2.3", Set(MustParse("2.5.0")))
	require.NoError(t, err)
	assert.Equal(t, "2.5.0", got)

	_, err = Bump("2.5.0", Set(MustParse("1.0.0")))
	require.Error(t, err)
	var notInc *NotIncreasingError
	require.ErrorAs(t, err, &notInc)
	assert.Equal(t, "2.5.0", notInc.Current)
	assert.Equal(t, "1.0.0", notInc.Target)
	assert.Equal(t, "new version 1.0.0 must be greater than current version 2.5.0", err.Error())
}

func TestBump_SpecificEqualFails(t *testing.T) {
	_, err := Bump("1.2.3", Set(MustParse("1.2.3")))
	require.Error(t, err)
	assert.True(t, IsNotIncreasing(err))

	// Build metadata does not make a version greater.
	_, err = Bump("1.2.3", Set(MustParse("1.2.3+build.2")))
	assert.True(t, IsNotIncreasing(err))
}

func TestBump_SpecificDropsMetadata(t *testing.T) {
	got, err := Bump("1.2.3", Set(MustParse("2.0.0-rc.1+sha.abc")))
	require.NoError(t, err)
	assert.Equal(t, "2.0.0", got)

	// A release is greater than its own pre-release.
	got, err = Bump("1.2.3-rc.1", Set(MustParse("1.2.3")))
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", got)
}

func TestBump_InvalidCurrent(t *testing.T) {
	_, err := Bump("one.two", Instruction{Kind: Patch})
	require.Error(t, err)
	assert.True(t, IsInvalidVersion(err))
	assert.Contains(t, err.Error(), `"one.two"`)
}

func TestBump_UnknownKind(t *testing.T) {
	_, err := Bump("1.2.3", Instruction{})
	assert.Error(t, err)
}

func TestParseInstruction(t *testing.T) {
	for raw, kind := range map[string]Kind{
		"major":   Major,
		"MINOR":   Minor,
		"Patch":   Patch,
		" patch ": Patch,
	} {
		instr, err := ParseInstruction(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, kind, instr.Kind, raw)
	}

	instr, err := ParseInstruction("3.1.4-beta")
	require.NoError(t, err)
	assert.Equal(t, Specific, instr.Kind)
	assert.Equal(t, "3.1.4-beta", instr.String())

	_, err = ParseInstruction("huge")
	assert.True(t, IsInvalidVersion(err))

	_, err = ParseInstruction("  ")
	assert.Error(t, err)
}
