package output

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/oclog/oclog/internal/classify"
	"golang.org/x/term"
)

// ColorMode determines when to use colored output.
type ColorMode int

const (
	ColorAuto   ColorMode = iota // Auto-detect based on TTY
	ColorAlways                  // Always use colors
	ColorNever                   // Never use colors
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// shouldColorize determines if output should be colorized based on mode and
// TTY detection.
func shouldColorize(mode ColorMode, w io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		if f, ok := w.(*os.File); ok {
			return isTerminal(f)
		}
		return false
	}
}

// categoryColors maps each category to its display color. CategoryOther has
// no entry and renders uncolored.
var categoryColors = map[classify.Category]*color.Color{
	classify.CategoryError:        color.New(color.FgRed),
	classify.CategoryWarning:      color.New(color.FgYellow),
	classify.CategoryInfo:         color.New(color.FgBlue),
	classify.CategoryDebug:        color.New(color.FgHiBlack),
	classify.CategorySuccess:      color.New(color.FgGreen),
	classify.CategoryPlatformInfo: color.New(color.FgMagenta),
}

// ColorizeLine wraps line in the ANSI color for cat. Lines classified as
// other come back unchanged.
func ColorizeLine(cat classify.Category, line string) string {
	c, ok := categoryColors[cat]
	if !ok {
		return line
	}
	return c.Sprint(line)
}
