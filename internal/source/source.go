// Package source provides lazy, forward-only line iteration over log files
// that may be huge or partially corrupted.
//
// Lines are delivered with their original line endings so writers can copy
// them verbatim. Invalid UTF-8 sequences are replaced with U+FFFD rather
// than aborting the stream; NUL bytes are valid UTF-8 and pass through
// untouched so the junk heuristic can see them.
package source

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

const readBufferSize = 64 * 1024

// LineSource reads a file one line at a time. A LineSource is single-pass:
// reopen the path for a fresh iteration. It is owned by exactly one
// consumer and must not be shared across goroutines.
type LineSource struct {
	path   string
	file   *os.File
	reader *bufio.Reader
	eof    bool
}

// Open opens path for line iteration. A missing file is the caller's
// FileNotFound case; the returned error satisfies errors.Is(err, os.ErrNotExist).
func Open(path string) (*LineSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open log source: %w", err)
	}
	return &LineSource{
		path:   path,
		file:   f,
		reader: bufio.NewReaderSize(f, readBufferSize),
	}, nil
}

// Path returns the path the source was opened with.
func (s *LineSource) Path() string {
	return s.path
}

// Next returns the next line including its line ending. The final line is
// returned even without a trailing newline. After the last line, Next
// returns io.EOF.
func (s *LineSource) Next() (string, error) {
	if s.eof {
		return "", io.EOF
	}
	line, err := s.reader.ReadString('\n')
	if err == io.EOF {
		s.eof = true
		if line == "" {
			return "", io.EOF
		}
		return sanitize(line), nil
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", s.path, err)
	}
	return sanitize(line), nil
}

// SizeBytes returns the current file size for progress reporting, or 0 if
// it cannot be determined.
func (s *LineSource) SizeBytes() int64 {
	if s.file == nil {
		return 0
	}
	info, err := s.file.Stat()
	if err != nil {
		return 0
	}
	return info.Size()
}

// SeekEnd positions the source at end-of-file, the starting point for
// tailing, and returns the offset.
func (s *LineSource) SeekEnd() (int64, error) {
	off, err := s.file.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, fmt.Errorf("seek %s: %w", s.path, err)
	}
	s.reader.Reset(s.file)
	s.eof = false
	return off, nil
}

// SeekStart rewinds to the beginning of the file. Used by the tail follower
// when the file shrank underneath it.
func (s *LineSource) SeekStart() error {
	if _, err := s.file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("seek %s: %w", s.path, err)
	}
	s.reader.Reset(s.file)
	s.eof = false
	return nil
}

// ReadAppended drains every line appended since the previous read. It
// returns an empty slice when no new data is available. A trailing partial
// line is delivered as-is, matching tail semantics.
func (s *LineSource) ReadAppended() ([]string, error) {
	s.eof = false
	var lines []string
	for {
		line, err := s.Next()
		if err == io.EOF {
			return lines, nil
		}
		if err != nil {
			return lines, err
		}
		lines = append(lines, line)
	}
}

// Close releases the file handle. Close is idempotent.
func (s *LineSource) Close() error {
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

// sanitize replaces invalid UTF-8 sequences so decoding problems never
// surface as errors.
func sanitize(line string) string {
	if utf8.ValidString(line) {
		return line
	}
	return strings.ToValidUTF8(line, "�")
}
