package pager

import (
	"io"
	"testing"

	"github.com/oclog/oclog/internal/classify"
)

// sliceSource serves lines from memory.
type sliceSource struct {
	lines []string
	pos   int
}

func (s *sliceSource) Next() (string, error) {
	if s.pos >= len(s.lines) {
		return "", io.EOF
	}
	line := s.lines[s.pos]
	s.pos++
	return line, nil
}

type emitted struct {
	cat  classify.Category
	line string
}

func TestRunPagesAndPrompts(t *testing.T) {
	src := &sliceSource{lines: []string{
		"ERROR one\n",
		"ERROR two\n",
		"ERROR three\n",
		"ERROR four\n",
		"ERROR five\n",
	}}

	var got []emitted
	var prompts []int
	p := New(classify.Default(), 2)
	p.Emit = func(cat classify.Category, line string) error {
		got = append(got, emitted{cat, line})
		return nil
	}
	p.Prompt = func(shown int) (bool, error) {
		prompts = append(prompts, shown)
		return false, nil
	}

	if err := p.Run(src); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(got) != 5 {
		t.Errorf("emitted %d lines, want 5", len(got))
	}
	// Two full pages prompt; the final partial page does not.
	if len(prompts) != 2 || prompts[0] != 2 || prompts[1] != 4 {
		t.Errorf("prompts = %v, want [2 4]", prompts)
	}
}

func TestRunFilterSkipsWithoutCounting(t *testing.T) {
	src := &sliceSource{lines: []string{
		"ERROR one\n",
		"background noise\n",
		"INFO ignored\n",
		"ERROR two\n",
		"more noise\n",
		"ERROR three\n",
	}}

	var got []emitted
	var prompts []int
	p := New(classify.Default(), 2)
	p.Filter = map[classify.Category]bool{classify.CategoryError: true}
	p.Emit = func(cat classify.Category, line string) error {
		got = append(got, emitted{cat, line})
		return nil
	}
	p.Prompt = func(shown int) (bool, error) {
		prompts = append(prompts, shown)
		return false, nil
	}

	if err := p.Run(src); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(got) != 3 {
		t.Fatalf("emitted %d lines, want 3", len(got))
	}
	for _, e := range got {
		if e.cat != classify.CategoryError {
			t.Errorf("emitted category %v, want error only", e.cat)
		}
	}
	// Only matching lines fill pages: one full page of 2, then a partial.
	if len(prompts) != 1 || prompts[0] != 2 {
		t.Errorf("prompts = %v, want [2]", prompts)
	}
}

func TestRunQuitStopsImmediately(t *testing.T) {
	src := &sliceSource{lines: []string{
		"ERROR one\n",
		"ERROR two\n",
		"ERROR three\n",
		"ERROR four\n",
	}}

	var got []emitted
	p := New(classify.Default(), 2)
	p.Emit = func(cat classify.Category, line string) error {
		got = append(got, emitted{cat, line})
		return nil
	}
	p.Prompt = func(shown int) (bool, error) {
		return true, nil
	}

	if err := p.Run(src); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("emitted %d lines after quit, want 2", len(got))
	}
	if src.pos > 3 {
		t.Errorf("pager kept reading after quit (pos %d)", src.pos)
	}
}

func TestRunNilFilterPassesEverything(t *testing.T) {
	src := &sliceSource{lines: []string{
		"ERROR one\n",
		"plain line\n",
	}}

	count := 0
	p := New(classify.Default(), DefaultPageSize)
	p.Emit = func(classify.Category, string) error {
		count++
		return nil
	}

	if err := p.Run(src); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if count != 2 {
		t.Errorf("emitted %d lines, want 2", count)
	}
}
