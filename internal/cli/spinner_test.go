package cli

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerDraws(t *testing.T) {
	var out syncBuffer
	s := newSpinner("Rendering sales.yaml")
	s.w = &out
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	if !bytes.Contains([]byte(out.String()), []byte("Rendering sales.yaml")) {
		t.Errorf("spinner output = %q, want the message", out.String())
	}
	if s.Cancelled() {
		t.Error("Cancelled() = true after a plain Stop")
	}
}

func TestSpinnerContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinnerWithContext(ctx, "waiting")
	s.w = &syncBuffer{}
	s.Start()
	cancel()
	s.Stop()
	if !s.Cancelled() {
		t.Error("Cancelled() = false after the parent context ended")
	}
}

func TestSpinnerStopIdempotent(t *testing.T) {
	s := newSpinner("x")
	s.w = &syncBuffer{}
	s.Stop()
	s.Stop()
	s.Start() // no-op after Stop

	s2 := newSpinner("y")
	s2.w = &syncBuffer{}
	s2.Start()
	s2.SetMessage("z")
	s2.Stop()
	s2.Stop()
}
