package gemini

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"
)

func TestShutdownWaitsForInflightCalls(t *testing.T) {
	cfg := &Config{APIKey: "test-key"}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatal(err)
	}
	c := New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil))).(*client)

	c.inflight.Add(1)

	done := make(chan struct{})
	go func() {
		c.shutdown()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("shutdown returned while a call was in flight")
	case <-time.After(50 * time.Millisecond):
	}

	c.inflight.Done()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("shutdown did not return after the call finished")
	}

	if _, err := c.acquire(context.Background()); !errors.Is(err, ErrClosed) {
		t.Errorf("acquire after shutdown: got %v, want ErrClosed", err)
	}
}
