// Package fsx holds small filesystem helpers shared by the split and clean
// writers.
package fsx

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const maxNumberedAttempts = 999

// UniquePath returns path if nothing exists there, otherwise the first
// "{stem}_{n}{ext}" sibling that does not exist, for n in 1..999. When all
// numbered candidates are taken it falls back to a unix-timestamp suffix,
// so the caller never silently overwrites an existing file.
func UniquePath(path string) string {
	if !exists(path) {
		return path
	}
	dir := filepath.Dir(path)
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(filepath.Base(path), ext)
	for i := 1; i <= maxNumberedAttempts; i++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, i, ext))
		if !exists(candidate) {
			return candidate
		}
	}
	return filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, time.Now().Unix(), ext))
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
