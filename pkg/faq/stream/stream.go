package stream

import (
	"context"
	"sync"
)

// Stream is a finite, non-restartable sequence of text chunks produced by a
// generation backend. Chunks arrive in emission order through Chunks(); the
// channel is unbuffered, so a slow consumer pauses the producer instead of
// buffering unboundedly.
//
// After the channel closes, Err() reports whether the stream ended normally
// or was cut off. Close() releases the upstream call; a closed stream never
// delivers further chunks.
type Stream struct {
	ch     chan string
	cancel context.CancelFunc

	mu   sync.Mutex
	err  error
	done bool
}

// New creates a stream bound to the given cancel function. The producer side
// must use Send/Fail/Finish; the consumer side uses Chunks/Err/Close.
func New(cancel context.CancelFunc) *Stream {
	if cancel == nil {
		cancel = func() {}
	}
	return &Stream{
		ch:     make(chan string),
		cancel: cancel,
	}
}

// Chunks returns the receive side of the stream. The channel is closed when
// the producer finishes or fails.
func (s *Stream) Chunks() <-chan string {
	return s.ch
}

// Err returns the terminal error, if any. Only meaningful after Chunks()
// has been drained.
func (s *Stream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Close cancels the upstream call and discards any chunks still in flight.
// Safe to call more than once and concurrently with the producer.
func (s *Stream) Close() {
	s.cancel()
	go func() {
		for range s.ch {
		}
	}()
}

// Send delivers one chunk to the consumer, blocking until it is received or
// ctx is cancelled. Returns false when the send was abandoned.
func (s *Stream) Send(ctx context.Context, chunk string) bool {
	select {
	case s.ch <- chunk:
		return true
	case <-ctx.Done():
		return false
	}
}

// Finish marks normal completion and closes the chunk channel.
func (s *Stream) Finish() {
	s.close(nil)
}

// Fail marks abnormal termination with err and closes the chunk channel.
func (s *Stream) Fail(err error) {
	s.close(err)
}

func (s *Stream) close(err error) {
	s.mu.Lock()
	if s.done {
		s.mu.Unlock()
		return
	}
	s.done = true
	s.err = err
	s.mu.Unlock()
	close(s.ch)
}
