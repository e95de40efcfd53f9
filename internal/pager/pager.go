// Package pager renders a classified log in fixed-size pages with a
// continue/quit gate between pages.
package pager

import (
	"io"

	"github.com/oclog/oclog/internal/classify"
)

// DefaultPageSize matches the classic "more" screenful used by the viewer.
const DefaultPageSize = 25

// LineReader is the stream a Pager consumes. source.LineSource implements it.
type LineReader interface {
	Next() (string, error)
}

// Pager pages through a line stream. Only lines whose category passes
// Filter are emitted and only those count toward the page size; skipped
// lines do not affect page boundaries.
type Pager struct {
	PageSize int
	// Filter restricts output to the given categories. A nil map means
	// every category passes.
	Filter map[classify.Category]bool
	// Emit renders one matching line. Required.
	Emit func(classify.Category, string) error
	// Prompt is consulted after every full page with the number of lines
	// shown so far; returning quit=true stops the run cleanly. A nil
	// Prompt pages through without stopping.
	Prompt func(shown int) (quit bool, err error)

	classifier *classify.Classifier
}

// New returns a Pager over c with the given page size (DefaultPageSize when
// size is not positive).
func New(c *classify.Classifier, size int) *Pager {
	if size <= 0 {
		size = DefaultPageSize
	}
	return &Pager{PageSize: size, classifier: c}
}

// Run consumes src once, emitting matching lines page by page. The final
// partial page is flushed without a prompt.
func (p *Pager) Run(src LineReader) error {
	inPage := 0
	shown := 0
	for {
		line, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		cat := p.classifier.Classify(line)
		if p.Filter != nil && !p.Filter[cat] {
			continue
		}
		if err := p.Emit(cat, line); err != nil {
			return err
		}
		inPage++
		shown++
		if inPage >= p.PageSize {
			inPage = 0
			if p.Prompt == nil {
				continue
			}
			quit, err := p.Prompt(shown)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
		}
	}
	return nil
}
