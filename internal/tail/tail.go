// Package tail follows a log file from end-of-file, emitting lines as they
// are appended.
//
// New content is picked up from an fsnotify write event or from a
// fixed-interval poll, whichever fires first. The poll keeps the follower
// alive on filesystems where change notification is unreliable, which is
// common for the removable media firmware logs land on.
package tail

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/oclog/oclog/internal/source"
)

// DefaultPollInterval is the sleep between polls when no events arrive.
const DefaultPollInterval = 500 * time.Millisecond

// Options configures a Follower.
type Options struct {
	FilePath     string
	PollInterval time.Duration
	// OnLine is called, in order, for every appended line (line ending
	// included). An error from OnLine stops the follower.
	OnLine func(string) error
}

// Follower tails a single file until its context is cancelled. It never
// terminates on its own for a static file.
type Follower struct {
	opts     Options
	src      *source.LineSource
	lastSize int64
}

// New creates a Follower with the given options.
func New(opts Options) *Follower {
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	return &Follower{opts: opts}
}

// Run opens the file, seeks to its end, and blocks emitting appended lines
// until ctx is cancelled. A file that shrank is treated as rewritten and is
// re-read from the start.
func (f *Follower) Run(ctx context.Context) error {
	src, err := source.Open(f.opts.FilePath)
	if err != nil {
		return err
	}
	f.src = src
	defer src.Close()

	if _, err := src.SeekEnd(); err != nil {
		return err
	}
	f.lastSize = src.SizeBytes()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()
	// A watch failure is not fatal; the poll ticker still drives reads.
	_ = watcher.Add(f.opts.FilePath)

	ticker := time.NewTicker(f.opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				continue
			}
			if ev.Op&fsnotify.Write != 0 {
				if err := f.drain(); err != nil {
					return err
				}
			}
		case <-watcher.Errors:
			// Notification is best-effort; polling continues.
		case <-ticker.C:
			if err := f.drain(); err != nil {
				return err
			}
		}
	}
}

// drain emits any lines appended since the last read.
func (f *Follower) drain() error {
	size := f.src.SizeBytes()
	if size < f.lastSize {
		// The file shrank: bootloader logs get rewritten in place.
		if err := f.src.SeekStart(); err != nil {
			return err
		}
	}
	f.lastSize = size

	lines, err := f.src.ReadAppended()
	if err != nil {
		return err
	}
	for _, line := range lines {
		if err := f.opts.OnLine(line); err != nil {
			return err
		}
	}
	return nil
}
