package classify

import (
	"strings"
	"unicode"
)

// Default junk thresholds. Firmware dumps disagree on how aggressive the
// heuristic should be, so all three are configurable on Detector.
const (
	DefaultNulRatio   = 0.5
	DefaultLongLine   = 80
	DefaultMinVisible = 5
)

// Detector flags lines that are padding or corruption rather than content.
// The verdict is a heuristic but deterministic for identical input.
type Detector struct {
	NulRatio   float64 // NUL-to-length ratio above which a line is junk
	LongLine   int     // raw length beyond which near-empty lines are junk
	MinVisible int     // visible characters required to keep a long line
}

// NewDetector returns a Detector with the default thresholds.
func NewDetector() *Detector {
	return &Detector{
		NulRatio:   DefaultNulRatio,
		LongLine:   DefaultLongLine,
		MinVisible: DefaultMinVisible,
	}
}

// IsJunk reports whether line is blank, NUL-padded, or a long run of
// whitespace with almost no visible content.
func (d *Detector) IsJunk(line string) bool {
	if line == "" {
		return true
	}
	raw := strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(raw) == "" {
		return true
	}
	if nuls := strings.Count(raw, "\x00"); nuls > 0 {
		if float64(nuls)/float64(len(raw)) > d.NulRatio {
			return true
		}
	}
	visible := 0
	for _, ch := range raw {
		if ch == 0 || ch == '\n' || ch == '\r' || unicode.IsSpace(ch) {
			continue
		}
		visible++
	}
	return visible < d.MinVisible && len(raw) > d.LongLine
}
