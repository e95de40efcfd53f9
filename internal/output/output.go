// Package output renders classified log lines for the CLI front ends.
// It supports plain text and JSON formats.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/oclog/oclog/internal/classify"
)

// Format represents an output format type.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat converts a string to a Format, defaulting to text.
func ParseFormat(s string) Format {
	if strings.ToLower(s) == "json" {
		return FormatJSON
	}
	return FormatText
}

// Writer handles writing formatted output.
type Writer struct {
	w      io.Writer
	format Format
	mode   ColorMode
}

// New creates a new output Writer with automatic color detection.
func New(w io.Writer, format Format) *Writer {
	return &Writer{w: w, format: format, mode: ColorAuto}
}

// WithColorMode overrides the color decision and returns the Writer.
func (wr *Writer) WithColorMode(mode ColorMode) *Writer {
	wr.mode = mode
	return wr
}

// Format returns the configured output format.
func (wr *Writer) Format() Format {
	return wr.format
}

// WriteLine prints one classified line, colored by category when the color
// mode allows it. The incoming line ending is stripped and normalized to a
// single newline.
func (wr *Writer) WriteLine(cat classify.Category, line string) error {
	text := strings.TrimRight(line, "\r\n")
	if shouldColorize(wr.mode, wr.w) {
		text = ColorizeLine(cat, text)
	}
	_, err := fmt.Fprintln(wr.w, text)
	return err
}

// WriteJSON outputs any value as indented JSON.
func (wr *Writer) WriteJSON(v any) error {
	enc := json.NewEncoder(wr.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
