package prompt

import (
	"errors"
	"testing"

	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubRunForm(t *testing.T, fn func(form *huh.Form) error) {
	t.Helper()
	origRunForm := runFormFunc
	t.Cleanup(func() {
		runFormFunc = origRunForm
	})
	runFormFunc = fn
}

func TestConfirmWrite_RequiresTerminal(t *testing.T) {
	c := &HuhConfirmer{isTerminal: func() bool { return false }}
	stubRunForm(t, func(*huh.Form) error {
		t.Fatal("form must not run without a terminal")
		return nil
	})

	ok, err := c.ConfirmWrite("package.json", "1.0.0", "1.0.1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--confirm requires an interactive terminal")
	assert.False(t, ok)
}

func TestConfirmWrite_RunsForm(t *testing.T) {
	c := &HuhConfirmer{isTerminal: func() bool { return true }}
	called := false
	stubRunForm(t, func(form *huh.Form) error {
		assert.NotNil(t, form)
		called = true
		return nil
	})

	ok, err := c.ConfirmWrite("package.json", "1.0.0", "1.0.1")
	require.NoError(t, err)
	assert.True(t, called)
	// The stub never flips the bound value, so the default answer stands.
	assert.False(t, ok)
}

func TestConfirmWrite_UserAbortIsDecline(t *testing.T) {
	c := &HuhConfirmer{isTerminal: func() bool { return true }}
	stubRunForm(t, func(*huh.Form) error { return huh.ErrUserAborted })

	ok, err := c.ConfirmWrite("Cargo.toml", "1.0.0", "2.0.0")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConfirmWrite_FormError(t *testing.T) {
	c := &HuhConfirmer{isTerminal: func() bool { return true }}
	boom := errors.New("tty closed")
	stubRunForm(t, func(*huh.Form) error { return boom })

	_, err := c.ConfirmWrite("Cargo.toml", "1.0.0", "2.0.0")
	assert.ErrorIs(t, err, boom)
}

func TestConfirmKeyMap(t *testing.T) {
	km := confirmKeyMap()
	assert.ElementsMatch(t, []string{"ctrl+c", "esc"}, km.Quit.Keys())
}

func TestNewHuhConfirmer_DefaultsToTerminalCheck(t *testing.T) {
	c := NewHuhConfirmer()
	require.NotNil(t, c.isTerminal)

	empty := &HuhConfirmer{}
	stubRunForm(t, func(*huh.Form) error { return nil })
	// Tests run without a TTY, so the fallback check refuses to prompt.
	_, err := empty.ConfirmWrite("a.json", "1.0.0", "1.0.1")
	assert.Error(t, err)
}
