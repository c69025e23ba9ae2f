package stream

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamDeliversChunksInOrder(t *testing.T) {
	s := New(nil)

	go func() {
		for _, chunk := range []string{"Hello", ", ", "world"} {
			s.Send(context.Background(), chunk)
		}
		s.Finish()
	}()

	var got []string
	for chunk := range s.Chunks() {
		got = append(got, chunk)
	}

	assert.Equal(t, []string{"Hello", ", ", "world"}, got)
	assert.NoError(t, s.Err())
}

func TestStreamFailSurfacesError(t *testing.T) {
	s := New(nil)
	boom := errors.New("backend gone")

	go func() {
		s.Send(context.Background(), "partial")
		s.Fail(boom)
	}()

	var got []string
	for chunk := range s.Chunks() {
		got = append(got, chunk)
	}

	assert.Equal(t, []string{"partial"}, got)
	assert.ErrorIs(t, s.Err(), boom)
}

func TestStreamCloseCancelsProducer(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := New(cancel)

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		for i := 0; ; i++ {
			if !s.Send(ctx, "chunk") {
				s.Fail(ctx.Err())
				return
			}
		}
	}()

	// Take one chunk, then walk away.
	<-s.Chunks()
	s.Close()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("producer kept running after Close")
	}
}

func TestStreamSendAfterCancelReturnsFalse(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := New(cancel)
	cancel()

	require.False(t, s.Send(ctx, "late"))
}

func TestStreamFinishIsIdempotent(t *testing.T) {
	s := New(nil)
	s.Finish()
	s.Finish()
	s.Fail(errors.New("ignored after finish"))

	_, open := <-s.Chunks()
	assert.False(t, open)
	assert.NoError(t, s.Err())
}
