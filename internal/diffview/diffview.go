// Package diffview renders the unified diff shown by `preview --diff`.
package diffview

import (
	"strings"

	"github.com/aymanbagabas/go-udiff"
	"github.com/fatih/color"
)

const (
	currentSuffix = " (current)"
	bumpedSuffix  = " (bumped)"
)

// Unified returns the diff between the current and bumped contents of path.
// An empty string means the contents are identical.
func Unified(path string, before string, after string) string {
	diff := udiff.Unified(path+currentSuffix, path+bumpedSuffix, before, after)
	return ensureTrailingNewline(diff)
}

// Colorize highlights diff headers, hunks, additions, and removals.
// With enabled=false the diff is returned unchanged.
func Colorize(diff string, enabled bool) string {
	if !enabled || diff == "" {
		return diff
	}
	header := newColor(color.Bold)
	hunk := newColor(color.FgCyan)
	added := newColor(color.FgGreen)
	removed := newColor(color.FgRed)

	lines := strings.SplitAfter(diff, "\n")
	var b strings.Builder
	for _, line := range lines {
		if line == "" {
			continue
		}
		text := strings.TrimSuffix(line, "\n")
		newline := len(text) != len(line)
		switch {
		case strings.HasPrefix(text, "+++"), strings.HasPrefix(text, "---"):
			text = header.Sprint(text)
		case strings.HasPrefix(text, "@@"):
			text = hunk.Sprint(text)
		case strings.HasPrefix(text, "+"):
			text = added.Sprint(text)
		case strings.HasPrefix(text, "-"):
			text = removed.Sprint(text)
		}
		b.WriteString(text)
		if newline {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func newColor(attr color.Attribute) *color.Color {
	c := color.New(attr)
	c.EnableColor()
	return c
}

func ensureTrailingNewline(content string) string {
	if content == "" || strings.HasSuffix(content, "\n") {
		return content
	}
	return content + "\n"
}
