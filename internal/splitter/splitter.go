// Package splitter fans a classified line stream out into one output file
// per severity category.
package splitter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/oclog/oclog/internal/classify"
	"github.com/oclog/oclog/internal/fsx"
)

// LineReader is the stream SplitStream consumes exactly once.
// source.LineSource implements it.
type LineReader interface {
	Next() (string, error)
}

// SplitStream routes every line from r into a per-category sink under dir,
// naming sinks "{prefix_}{category}.log" with collision-safe uniquing.
// All sinks, one per category including "other", are created before the
// stream is consumed so downstream tooling can rely on every file existing,
// and all are closed before SplitStream returns on every path. Lines are
// written verbatim, endings included, each to exactly one sink. A write
// failure aborts the whole operation. The returned map holds the chosen
// path for each category.
func SplitStream(r LineReader, dir, prefix string, c *classify.Classifier) (map[classify.Category]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	sinks := make(map[classify.Category]*os.File, len(classify.Categories))
	defer func() {
		for _, f := range sinks {
			f.Close()
		}
	}()

	paths := make(map[classify.Category]string, len(classify.Categories))
	for _, cat := range classify.Categories {
		name := cat.String() + ".log"
		if prefix != "" {
			name = prefix + "_" + name
		}
		p := fsx.UniquePath(filepath.Join(dir, name))
		f, err := os.Create(p)
		if err != nil {
			return nil, fmt.Errorf("create %s sink: %w", cat, err)
		}
		sinks[cat] = f
		paths[cat] = p
	}

	for {
		line, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read source: %w", err)
		}
		cat := c.Classify(line)
		if _, err := sinks[cat].WriteString(line); err != nil {
			return nil, fmt.Errorf("write %s sink: %w", cat, err)
		}
	}

	return paths, nil
}
