package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/oclog/oclog/internal/source"
)

// collect polls until a terminal message arrives or the deadline passes.
func collect(t *testing.T, l *Loader, deadline time.Duration) []Message {
	t.Helper()
	var msgs []Message
	timeout := time.After(deadline)
	for {
		for _, m := range l.Poll() {
			msgs = append(msgs, m)
			if m.Kind == KindDone || m.Kind == KindError {
				return msgs
			}
		}
		select {
		case <-timeout:
			t.Fatalf("no terminal message within %v (got %d messages)", deadline, len(msgs))
		case <-time.After(time.Millisecond):
		}
	}
}

func writeLines(t *testing.T, n int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "big.log")
	var sb strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&sb, "line %d\n", i)
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestLoaderChunking(t *testing.T) {
	const total, chunk = 10000, 500
	src, err := source.Open(writeLines(t, total))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	l := New()
	if err := l.Start(src, chunk); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	msgs := collect(t, l, 5*time.Second)

	var data []Message
	for _, m := range msgs[:len(msgs)-1] {
		if m.Kind != KindData {
			t.Fatalf("mid-stream message kind = %v, want KindData", m.Kind)
		}
		data = append(data, m)
	}
	last := msgs[len(msgs)-1]
	if last.Kind != KindDone {
		t.Fatalf("terminal message kind = %v, want KindDone", last.Kind)
	}

	if len(data) != total/chunk {
		t.Errorf("received %d Data messages, want %d", len(data), total/chunk)
	}
	for i, m := range data {
		if len(m.Lines) != chunk {
			t.Errorf("chunk %d has %d lines, want %d", i, len(m.Lines), chunk)
		}
	}
	if final := data[len(data)-1]; final.Count != total {
		t.Errorf("final cumulative count = %d, want %d", final.Count, total)
	}

	// Order end to end.
	i := 0
	for _, m := range data {
		for _, line := range m.Lines {
			want := fmt.Sprintf("line %d\n", i)
			if line != want {
				t.Fatalf("line %d = %q, want %q", i, line, want)
			}
			i++
		}
	}
}

func TestLoaderPartialFinalChunk(t *testing.T) {
	src, err := source.Open(writeLines(t, 1047))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	l := New()
	if err := l.Start(src, 100); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	msgs := collect(t, l, 5*time.Second)
	data := msgs[:len(msgs)-1]
	if len(data) != 11 {
		t.Fatalf("received %d Data messages, want 11", len(data))
	}
	if got := len(data[10].Lines); got != 47 {
		t.Errorf("final chunk has %d lines, want 47", got)
	}
	if data[10].Count != 1047 {
		t.Errorf("final cumulative count = %d, want 1047", data[10].Count)
	}
}

func TestLoaderEmptySource(t *testing.T) {
	src, err := source.Open(writeLines(t, 0))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	l := New()
	if err := l.Start(src, 10); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	msgs := collect(t, l, time.Second)
	if len(msgs) != 1 || msgs[0].Kind != KindDone {
		t.Errorf("messages = %+v, want a single Done", msgs)
	}
}

func TestLoaderNotReentrant(t *testing.T) {
	src, err := source.Open(writeLines(t, 10))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	l := New()
	if err := l.Start(src, 10); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := l.Start(src, 10); err == nil {
		t.Error("second Start() error = nil, want already-started error")
	}
	collect(t, l, time.Second)
}

// endlessSource yields lines forever, tracking reads and closure, so tests
// can observe cancellation behavior deterministically.
type endlessSource struct {
	reads  atomic.Int64
	closed atomic.Bool
}

func (s *endlessSource) Next() (string, error) {
	s.reads.Add(1)
	time.Sleep(10 * time.Microsecond)
	return "tick\n", nil
}

func (s *endlessSource) Close() error {
	s.closed.Store(true)
	return nil
}

func TestLoaderCancel(t *testing.T) {
	src := &endlessSource{}
	l := New()
	if err := l.Start(src, 5); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	// Wait for the first Data message.
	deadline := time.After(5 * time.Second)
	for {
		if msgs := l.Poll(); len(msgs) > 0 {
			if msgs[0].Kind != KindData {
				t.Fatalf("first message kind = %v, want KindData", msgs[0].Kind)
			}
			break
		}
		select {
		case <-deadline:
			t.Fatal("no Data message before cancel")
		case <-time.After(time.Millisecond):
		}
	}

	l.Cancel()
	if !l.Cancelled() {
		t.Fatal("Cancelled() = false after Cancel()")
	}

	// Producer must stop reading promptly and close the source.
	var settled int64
	for i := 0; i < 100; i++ {
		if src.closed.Load() {
			settled = src.reads.Load()
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	if !src.closed.Load() {
		t.Fatal("source not closed after cancellation")
	}
	time.Sleep(20 * time.Millisecond)
	if got := src.reads.Load(); got != settled {
		t.Errorf("reads continued after cancellation: %d -> %d", settled, got)
	}

	// No Done or Error may ever follow a cancellation.
	quietUntil := time.After(100 * time.Millisecond)
	for {
		for _, m := range l.Poll() {
			if m.Kind == KindDone || m.Kind == KindError {
				t.Fatalf("received %v after Cancel(), want none", m.Kind)
			}
		}
		select {
		case <-quietUntil:
			return
		case <-time.After(5 * time.Millisecond):
		}
	}
}

// failingSource errors mid-stream after a few good lines.
type failingSource struct {
	n int
}

func (s *failingSource) Next() (string, error) {
	if s.n >= 3 {
		return "", errors.New("simulated read failure")
	}
	s.n++
	return fmt.Sprintf("line %d\n", s.n), nil
}

func (s *failingSource) Close() error { return nil }

func TestLoaderReadError(t *testing.T) {
	l := New()
	if err := l.Start(&failingSource{}, 2); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	msgs := collect(t, l, time.Second)
	last := msgs[len(msgs)-1]
	if last.Kind != KindError {
		t.Fatalf("terminal message kind = %v, want KindError", last.Kind)
	}
	if !strings.Contains(last.Err, "simulated read failure") {
		t.Errorf("Err = %q, want the source failure text", last.Err)
	}
	for _, m := range msgs[:len(msgs)-1] {
		if m.Kind != KindData {
			t.Errorf("pre-error message kind = %v, want KindData", m.Kind)
		}
	}
}
