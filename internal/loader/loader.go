// Package loader streams a log file to a consumer in bounded batches so a
// renderer stays responsive while a large file is read in the background.
//
// One goroutine reads the source and publishes Data messages to a delivery
// channel; the consumer drains the channel on its own schedule with Poll.
// Exactly one Done or Error message ends a session, unless the session was
// cancelled, in which case the producer stops silently and the absence of
// further messages is the clean-stop signal.
package loader

import (
	"errors"
	"io"
	"sync"
	"sync/atomic"
)

// Defaults for the batch size and the delivery channel capacity.
const (
	DefaultChunkSize  = 500
	DefaultQueueDepth = 1024
)

// Source is the line stream a Loader reads. source.LineSource implements it.
type Source interface {
	Next() (string, error)
	Close() error
}

// MessageKind discriminates loader messages.
type MessageKind int

const (
	KindData MessageKind = iota
	KindDone
	KindError
)

// Message is one unit delivered from the background reader.
type Message struct {
	Kind  MessageKind
	Lines []string // batch contents, set on KindData
	Count int      // cumulative lines read so far, set on KindData and KindDone
	Err   string   // failure description, set on KindError
}

// Loader runs a single load session. It is not reentrant; create a new
// Loader to retry after an error or cancellation.
type Loader struct {
	queue     chan Message
	stop      chan struct{}
	started   atomic.Bool
	cancelled atomic.Bool
	stopOnce  sync.Once
}

// New returns an idle Loader.
func New() *Loader {
	return &Loader{
		queue: make(chan Message, DefaultQueueDepth),
		stop:  make(chan struct{}),
	}
}

// Start begins reading src in chunkSize batches on a background goroutine
// and returns immediately. The Loader owns src from this point and closes
// it when the session ends.
func (l *Loader) Start(src Source, chunkSize int) error {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if !l.started.CompareAndSwap(false, true) {
		return errors.New("loader already started")
	}
	go l.produce(src, chunkSize)
	return nil
}

func (l *Loader) produce(src Source, chunkSize int) {
	defer src.Close()

	batch := make([]string, 0, chunkSize)
	count := 0
	for {
		// Checked per line, not per batch, so cancellation lands promptly
		// even while a batch is filling slowly.
		if l.cancelled.Load() {
			return
		}
		line, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			l.send(Message{Kind: KindError, Err: err.Error()})
			return
		}
		batch = append(batch, line)
		count++
		if len(batch) >= chunkSize {
			if !l.send(Message{Kind: KindData, Lines: batch, Count: count}) {
				return
			}
			batch = make([]string, 0, chunkSize)
		}
	}
	if len(batch) > 0 {
		if !l.send(Message{Kind: KindData, Lines: batch, Count: count}) {
			return
		}
	}
	l.send(Message{Kind: KindDone, Count: count})
}

// send delivers m unless the session has been cancelled, and reports
// whether the message was enqueued.
func (l *Loader) send(m Message) bool {
	select {
	case l.queue <- m:
		return true
	case <-l.stop:
		return false
	}
}

// Poll drains every message currently queued without blocking. Messages
// arrive in production order; a nil slice means nothing was pending.
func (l *Loader) Poll() []Message {
	var msgs []Message
	for {
		select {
		case m := <-l.queue:
			msgs = append(msgs, m)
		default:
			return msgs
		}
	}
}

// Cancel requests early termination. The producer observes the flag within
// one line read, stops, and emits no Done or Error sentinel. Cancel is safe
// to call more than once and from any goroutine.
func (l *Loader) Cancel() {
	l.stopOnce.Do(func() {
		l.cancelled.Store(true)
		close(l.stop)
	})
}

// Cancelled reports whether Cancel has been called. Consumers use it to
// treat a quiet queue after cancellation as a clean stop.
func (l *Loader) Cancelled() bool {
	return l.cancelled.Load()
}
