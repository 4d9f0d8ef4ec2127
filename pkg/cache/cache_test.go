package cache

import (
	"context"
	"errors"
	"net"
	"os"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set() error = %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || hit || data != nil {
		t.Errorf("Get() = %q, %v, %v, want nil, false, nil", data, hit, err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("Get() on empty cache hit")
	}
	if err := c.Set(ctx, "a", []byte("<svg/>"), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	data, hit, err := c.Get(ctx, "a")
	if err != nil || !hit || string(data) != "<svg/>" {
		t.Errorf("Get() = %q, %v, %v, want <svg/>, true, nil", data, hit, err)
	}

	if err := c.Delete(ctx, "a"); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("Get() after Delete hit")
	}
	if err := c.Delete(ctx, "a"); err != nil {
		t.Errorf("Delete() of missing key error = %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(2 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("Get() of expired entry hit")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Errorf("expired entry still on disk: %v", err)
	}
}

func TestFileCacheCorrupt(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(c.path("k"), []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("Get() of corrupt entry = %v, %v, want miss", hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}
	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if n != 3 {
		t.Errorf("Clear() = %d, want 3", n)
	}
	entries, _ := os.ReadDir(c.Dir())
	if len(entries) != 0 {
		t.Errorf("cache dir has %d entries after Clear, want 0", len(entries))
	}
}

func TestHash(t *testing.T) {
	h1, h2 := Hash([]byte("hello")), Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash() is not deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Hash() collides for different inputs")
	}
	if len(h1) != 64 {
		t.Errorf("len(Hash()) = %d, want 64", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()
	base := ArtifactKeyOpts{Format: "svg", Width: 600, Height: 400}

	if k.ArtifactKey("doc", base) != k.ArtifactKey("doc", base) {
		t.Error("ArtifactKey() is not deterministic")
	}
	tests := []struct {
		name string
		hash string
		opts ArtifactKeyOpts
	}{
		{"format", "doc", ArtifactKeyOpts{Format: "png", Width: 600, Height: 400}},
		{"size", "doc", ArtifactKeyOpts{Format: "svg", Width: 800, Height: 400}},
		{"scale", "doc", ArtifactKeyOpts{Format: "svg", Width: 600, Height: 400, Scale: 2}},
		{"document", "other", base},
	}
	for _, tt := range tests {
		if k.ArtifactKey(tt.hash, tt.opts) == k.ArtifactKey("doc", base) {
			t.Errorf("changing %s does not change the key", tt.name)
		}
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	opts := ArtifactKeyOpts{Format: "svg"}
	scoped := NewScopedKeyer(inner, "team:a:")
	if got, want := scoped.ArtifactKey("h", opts), "team:a:"+inner.ArtifactKey("h", opts); got != want {
		t.Errorf("ArtifactKey() = %q, want %q", got, want)
	}
	if got := NewScopedKeyer(nil, "p:").ArtifactKey("h", opts); got != "p:"+inner.ArtifactKey("h", opts) {
		t.Errorf("ArtifactKey() with nil inner = %q", got)
	}
}

func TestRetryable(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) != nil")
	}
	err := Retryable(ErrUnavailable)
	if !IsRetryable(err) {
		t.Error("IsRetryable(Retryable(err)) = false")
	}
	if !errors.Is(err, ErrUnavailable) {
		t.Error("Retryable does not unwrap")
	}
	if IsRetryable(ErrUnavailable) {
		t.Error("IsRetryable(plain error) = true")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()
	b := Backoff{Attempts: 3, Delay: time.Millisecond}

	tests := []struct {
		name      string
		failures  int
		retryable bool
		wantCalls int
		wantErr   bool
	}{
		{"first try", 0, true, 1, false},
		{"permanent", 5, false, 1, true},
		{"recovers", 2, true, 3, false},
		{"exhausted", 5, true, 3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := RetryWithBackoff(ctx, b, func() error {
				calls++
				if calls <= tt.failures {
					if tt.retryable {
						return Retryable(ErrUnavailable)
					}
					return ErrUnavailable
				}
				return nil
			})
			if (err != nil) != tt.wantErr {
				t.Errorf("RetryWithBackoff() error = %v, wantErr %v", err, tt.wantErr)
			}
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
		})
	}
}

func TestRetryWithBackoffCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := RetryWithBackoff(ctx, Backoff{Attempts: 3, Delay: time.Hour}, func() error {
		return Retryable(ErrUnavailable)
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("RetryWithBackoff() error = %v, want %v", err, context.Canceled)
	}
}

func TestClassify(t *testing.T) {
	op := &net.OpError{Op: "dial", Err: errors.New("connection refused")}
	if !IsRetryable(classify(op)) {
		t.Error("classify(dial error) is not retryable")
	}
	if IsRetryable(classify(errors.New("WRONGTYPE"))) {
		t.Error("classify(server error) is retryable")
	}
}

func TestNewRedisCacheBadURL(t *testing.T) {
	if _, err := NewRedisCache(context.Background(), "http://not-redis"); err == nil {
		t.Error("NewRedisCache() with http url succeeded")
	}
}

// TestRedisCache runs against a live server named by STACKCHART_TEST_REDIS.
func TestRedisCache(t *testing.T) {
	url := os.Getenv("STACKCHART_TEST_REDIS")
	if url == "" {
		t.Skip("STACKCHART_TEST_REDIS not set")
	}
	ctx := context.Background()
	c, err := NewRedisCache(ctx, url, WithPrefix("stackchart-test:"))
	if err != nil {
		t.Fatalf("NewRedisCache() error = %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "v" {
		t.Errorf("Get() = %q, %v, %v", data, hit, err)
	}
	if n, err := c.Clear(ctx); err != nil || n != 1 {
		t.Errorf("Clear() = %d, %v, want 1, nil", n, err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("Get() after Clear hit")
	}
}
