package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || hit || data != nil {
		t.Errorf("Get = %q, %v, %v; want miss", data, hit, err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}

	if _, hit, _ := c.Get(ctx, "snap"); hit {
		t.Fatal("empty cache should miss")
	}
	if err := c.Set(ctx, "snap", []byte("payload"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "snap")
	if err != nil || !hit || string(data) != "payload" {
		t.Fatalf("Get = %q, %v, %v; want payload hit", data, hit, err)
	}

	if err := c.Delete(ctx, "snap"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "snap"); hit {
		t.Error("Get after Delete should miss")
	}
	if err := c.Delete(ctx, "snap"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
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
	time.Sleep(5 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should miss")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Error("expired entry should be removed")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	path := c.path("k")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, hit, err := c.Get(ctx, "k")
	if err != nil || hit {
		t.Errorf("corrupt entry: hit=%v err=%v, want silent miss", hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}
	foreign := filepath.Join(dir, "README")
	if err := os.WriteFile(foreign, []byte("keep"), 0o644); err != nil {
		t.Fatal(err)
	}

	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear removed %d, want 3", n)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("entry survived Clear")
	}
	if _, err := os.Stat(foreign); err != nil {
		t.Errorf("foreign file removed: %v", err)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
		check   func(t *testing.T, c Cache)
	}{
		{
			name: "File",
			opts: Options{Backend: BackendFile, Dir: t.TempDir()},
			check: func(t *testing.T, c Cache) {
				if _, ok := c.(*FileCache); !ok {
					t.Errorf("got %T, want *FileCache", c)
				}
			},
		},
		{
			name: "DefaultIsFile",
			opts: Options{Dir: t.TempDir()},
			check: func(t *testing.T, c Cache) {
				if _, ok := c.(*FileCache); !ok {
					t.Errorf("got %T, want *FileCache", c)
				}
			},
		},
		{
			name: "None",
			opts: Options{Backend: BackendNone},
			check: func(t *testing.T, c Cache) {
				if _, ok := c.(NullCache); !ok {
					t.Errorf("got %T, want NullCache", c)
				}
			},
		},
		{
			name:    "Unknown",
			opts:    Options{Backend: "memcached"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Open(ctx, tt.opts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			defer c.Close()
			if tt.check != nil {
				tt.check(t, c)
			}
		})
	}
}

func TestRedisCacheUnreachable(t *testing.T) {
	old := retryDelay
	retryDelay = time.Millisecond
	defer func() { retryDelay = old }()

	_, err := NewRedisCache(context.Background(), "127.0.0.1:1")
	if err == nil {
		t.Fatal("expected connection error")
	}
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("err = %v, want ErrNetwork", err)
	}
	if !strings.Contains(err.Error(), "127.0.0.1:1") {
		t.Errorf("error should name the address: %v", err)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestHashFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nodes.dat")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := HashFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != Hash([]byte("hello")) {
		t.Errorf("HashFile = %s, want %s", got, Hash([]byte("hello")))
	}
	if _, err := HashFile(path + ".missing"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()
	hashes := [3]string{"n", "e", "l"}

	lenient := k.SnapshotKey(hashes, "lenient")
	if !strings.HasPrefix(lenient, "snapshot:") {
		t.Errorf("SnapshotKey = %s, want snapshot: prefix", lenient)
	}
	if lenient == k.SnapshotKey(hashes, "strict") {
		t.Error("resolution should change the key")
	}
	if lenient != k.SnapshotKey(hashes, "LENIENT") {
		t.Error("resolution should be case-insensitive")
	}
	if lenient == k.SnapshotKey([3]string{"e", "n", "l"}, "lenient") {
		t.Error("file order should change the key")
	}

	c1 := k.ConvertKey("h", ConvertKeyOpts{Interest: []string{"cafe"}})
	c2 := k.ConvertKey("h", ConvertKeyOpts{Interest: []string{"cafe"}, Simplify: true})
	if c1 == c2 {
		t.Error("Different ConvertKeyOpts should produce different keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "losm:nyc:")

	hashes := [3]string{"a", "b", "c"}
	got := scoped.SnapshotKey(hashes, "lenient")
	if got != "losm:nyc:"+inner.SnapshotKey(hashes, "lenient") {
		t.Errorf("ScopedKeyer SnapshotKey unexpected: %s", got)
	}

	nilInner := NewScopedKeyer(nil, "p:")
	if !strings.HasPrefix(nilInner.ConvertKey("h", ConvertKeyOpts{}), "p:convert:") {
		t.Error("nil inner should fall back to DefaultKeyer")
	}
}

func TestRetryableError(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	err := Retryable(ErrNetwork)
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}
	if err.Error() != ErrNetwork.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}
	if IsRetryable(ErrNetwork) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	old := retryDelay
	retryDelay = time.Millisecond
	defer func() { retryDelay = old }()

	ctx := context.Background()
	permanent := errors.New("permanent")

	tests := []struct {
		name      string
		fail      int
		err       error
		wantCalls int
		wantErr   error
	}{
		{"FirstTry", 0, nil, 1, nil},
		{"NonRetryable", 3, permanent, 1, permanent},
		{"RecoversAfterOne", 1, Retryable(ErrNetwork), 2, nil},
		{"GivesUp", 5, Retryable(ErrNetwork), 3, ErrNetwork},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := RetryWithBackoff(ctx, func() error {
				calls++
				if calls <= tt.fail {
					return tt.err
				}
				return nil
			})
			if !errors.Is(err, tt.wantErr) || (tt.wantErr == nil && err != nil) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
		})
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(ErrNetwork)
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}
