// Package prompt asks the user to approve a write before the file is replaced.
package prompt

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/conn-castle/bumpver/internal/messages"
	"github.com/conn-castle/bumpver/internal/terminal"
)

// HuhConfirmer renders yes/no prompts with charmbracelet/huh.
type HuhConfirmer struct {
	isTerminal func() bool
}

var runFormFunc = func(form *huh.Form) error { return form.Run() }

// NewHuhConfirmer creates a confirmer that requires an interactive terminal.
func NewHuhConfirmer() *HuhConfirmer {
	return &HuhConfirmer{isTerminal: terminal.IsInteractive}
}

func (c *HuhConfirmer) ensureInteractive() error {
	checker := c.isTerminal
	if checker == nil {
		checker = terminal.IsInteractive
	}
	if checker() {
		return nil
	}
	return errors.New(messages.ConfirmNotInteractive)
}

// confirmKeyMap binds Esc and Ctrl+C to abort.
func confirmKeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "cancel"))
	return km
}

// ConfirmWrite asks whether newVersion should replace oldVersion in path.
// An aborted prompt counts as a "no".
func (c *HuhConfirmer) ConfirmWrite(path, oldVersion, newVersion string) (bool, error) {
	if err := c.ensureInteractive(); err != nil {
		return false, err
	}

	approved := false
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf(messages.ConfirmWriteFmt, newVersion, path, oldVersion)).
				Value(&approved),
		),
	)
	form.WithKeyMap(confirmKeyMap())
	form.WithProgramOptions(tea.WithOutput(os.Stderr))

	err := runFormFunc(form)
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return approved, nil
}
