// Package cleaner writes junk-filtered copies of log files.
package cleaner

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/oclog/oclog/internal/classify"
	"github.com/oclog/oclog/internal/fsx"
	"github.com/oclog/oclog/internal/source"
)

// Result reports what a clean pass did.
type Result struct {
	OutputPath string `json:"output"`
	Total      int    `json:"total"`   // lines examined
	Removed    int    `json:"removed"` // junk lines dropped
}

// Clean streams path once and writes every non-junk line, in original
// order, to the destination. With inPlace the original is replaced through
// a same-directory temp file and rename; otherwise a collision-safe
// "{stem}_cleaned{ext}" sibling is created. The input is never buffered
// whole, so arbitrarily large files are fine. A missing input is fatal.
func Clean(path string, inPlace bool, det *classify.Detector) (Result, error) {
	src, err := source.Open(path)
	if err != nil {
		return Result{}, err
	}
	defer src.Close()

	dir := filepath.Dir(path)
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(filepath.Base(path), ext)

	var out *os.File
	res := Result{}
	if inPlace {
		out, err = os.CreateTemp(dir, stem+"_clean_*"+ext)
		res.OutputPath = path
	} else {
		res.OutputPath = fsx.UniquePath(filepath.Join(dir, stem+"_cleaned"+ext))
		out, err = os.Create(res.OutputPath)
	}
	if err != nil {
		return Result{}, fmt.Errorf("create cleaned output: %w", err)
	}
	tmpPath := out.Name()
	discard := func() {
		out.Close()
		if inPlace {
			os.Remove(tmpPath)
		}
	}

	w := bufio.NewWriter(out)
	for {
		line, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			discard()
			return res, err
		}
		res.Total++
		if det.IsJunk(line) {
			res.Removed++
			continue
		}
		if _, err := w.WriteString(line); err != nil {
			discard()
			return res, fmt.Errorf("write cleaned line: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		discard()
		return res, fmt.Errorf("flush cleaned output: %w", err)
	}
	if err := out.Close(); err != nil {
		return res, fmt.Errorf("close cleaned output: %w", err)
	}

	if inPlace {
		// Release the read handle before renaming over it.
		src.Close()
		if err := os.Rename(tmpPath, path); err != nil {
			os.Remove(tmpPath)
			return res, fmt.Errorf("replace original: %w", err)
		}
	}
	return res, nil
}
