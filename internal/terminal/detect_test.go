package terminal

import (
	"os"
	"testing"
)

func TestIsInteractive(t *testing.T) {
	orig := isTerminalFn
	t.Cleanup(func() { isTerminalFn = orig })

	isTerminalFn = func(int) bool { return true }
	if !IsInteractive() {
		t.Fatal("expected interactive when every descriptor is a terminal")
	}

	stdin := int(os.Stdin.Fd())
	isTerminalFn = func(fd int) bool { return fd != stdin }
	if IsInteractive() {
		t.Fatal("expected non-interactive when stdin is not a terminal")
	}
}

func TestIsTerminal(t *testing.T) {
	if IsTerminal(nil) {
		t.Fatal("nil file is not a terminal")
	}
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatalf("create temp: %v", err)
	}
	defer func() { _ = f.Close() }()
	if IsTerminal(f) {
		t.Fatal("regular file reported as terminal")
	}
}
