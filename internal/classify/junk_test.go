package classify

import (
	"strings"
	"testing"
)

func TestIsJunk(t *testing.T) {
	d := NewDetector()

	tests := []struct {
		name string
		line string
		want bool
	}{
		{"empty", "", true},
		{"bare newline", "\n", true},
		{"crlf only", "\r\n", true},
		{"whitespace only", " \t  \t \n", true},
		{"90 spaces", strings.Repeat(" ", 90) + "\n", true},
		{"200 nul bytes", strings.Repeat("\x00", 200), true},
		{"mostly nul", strings.Repeat("\x00", 60) + "padding" + strings.Repeat("\x00", 30), true},
		{"long padding few visible", "a" + strings.Repeat(" ", 100) + "b\n", true},
		{"normal log line", "00:000 00:000 OCB: Loading Apple Secure Boot with Default level set to Disabled!\n", false},
		{"short line", "OK\n", false},
		{"nuls below ratio", "OCB: bootstrap" + strings.Repeat("\x00", 5) + "\n", false},
		{"long but readable", strings.Repeat("OCSMC status ", 10) + "\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.IsJunk(tt.line)
			if got != tt.want {
				t.Errorf("IsJunk(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestIsJunkThresholds(t *testing.T) {
	// 60% NUL line: junk at the default 0.5 ratio, kept at 0.9.
	line := strings.Repeat("\x00", 60) + strings.Repeat("x", 40)

	strict := NewDetector()
	if !strict.IsJunk(line) {
		t.Errorf("IsJunk() = false at ratio %.1f, want true", strict.NulRatio)
	}

	lax := NewDetector()
	lax.NulRatio = 0.9
	if lax.IsJunk(line) {
		t.Errorf("IsJunk() = true at ratio %.1f, want false", lax.NulRatio)
	}

	// 60-character near-empty line: kept at the default cutoff of 80,
	// junk when the cutoff drops to 50.
	padded := "ab" + strings.Repeat(" ", 58)
	if strict.IsJunk(padded) {
		t.Errorf("IsJunk() = true at cutoff %d, want false", strict.LongLine)
	}
	short := NewDetector()
	short.LongLine = 50
	if !short.IsJunk(padded) {
		t.Errorf("IsJunk() = false at cutoff %d, want true", short.LongLine)
	}
}

func TestIsJunkDeterministic(t *testing.T) {
	d := NewDetector()
	line := strings.Repeat("\x00", 30) + "boot" + strings.Repeat(" ", 70)
	first := d.IsJunk(line)
	for i := 0; i < 10; i++ {
		if got := d.IsJunk(line); got != first {
			t.Fatalf("IsJunk() not stable: got %v, want %v", got, first)
		}
	}
}
