package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/conn-castle/bumpver/internal/config"
	"github.com/conn-castle/bumpver/internal/messages"
	"github.com/conn-castle/bumpver/internal/terminal"
)

var executeFunc = execute
var isTerminalFile = terminal.IsTerminal

// Version, Commit, and BuildDate are overridden at build time.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

func main() {
	runMain(os.Args, os.Stdout, os.Stderr, os.Exit)
}

// execute runs the CLI command with the provided args and output writers.
func execute(args []string, stdout io.Writer, stderr io.Writer) error {
	cmd := newRootCmd()
	cmd.Version = versionString()
	cmd.SetVersionTemplate(messages.VersionTemplate)
	if len(args) > 1 {
		cmd.SetArgs(args[1:])
	} else {
		cmd.SetArgs([]string{})
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.Execute()
}

// runMain executes the CLI and exits 1 with a single-line diagnostic on failure.
func runMain(args []string, stdout io.Writer, stderr io.Writer, exit func(int)) {
	if err := executeFunc(args, stdout, stderr); err != nil {
		printError(stderr, err)
		exit(1)
	}
}

// printError writes "error: <message>" to w, in red when w is a terminal and
// NO_COLOR is unset.
func printError(w io.Writer, err error) {
	msg := strings.Join(strings.Fields(err.Error()), " ")
	line := messages.ErrorPrefix + " " + msg
	if colorEnabled(w) {
		red := color.New(color.FgRed)
		red.EnableColor()
		line = red.Sprint(line)
	}
	_, _ = fmt.Fprintln(w, line)
}

// colorEnabled reports whether w is a terminal that should receive ANSI colors.
func colorEnabled(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || !isTerminalFile(f) {
		return false
	}
	cfg, err := config.FromEnv()
	if err != nil {
		return false
	}
	return !cfg.NoColor
}

// versionString formats Version with optional commit and build date metadata.
func versionString() string {
	meta := []string{}
	if Commit != "" && Commit != "unknown" {
		meta = append(meta, fmt.Sprintf(messages.VersionCommitFmt, Commit))
	}
	if BuildDate != "" && BuildDate != "unknown" {
		meta = append(meta, fmt.Sprintf(messages.VersionBuildFmt, BuildDate))
	}
	if len(meta) == 0 {
		return Version
	}
	return fmt.Sprintf(messages.VersionFullFmt, Version, strings.Join(meta, ", "))
}
