package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestBackendsShareKVSemantics(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		name string
		open func(t *testing.T) KV
	}{
		{"sqlite", func(t *testing.T) KV {
			kv, err := Open(ctx, Options{Backend: BackendSQLite, DataDir: t.TempDir()})
			if err != nil {
				t.Fatalf("open sqlite: %v", err)
			}
			return kv
		}},
		{"file", func(t *testing.T) KV {
			kv, err := Open(ctx, Options{Backend: BackendFile, DataDir: filepath.Join(t.TempDir(), "kv")})
			if err != nil {
				t.Fatalf("open file: %v", err)
			}
			return kv
		}},
		{"redis", func(t *testing.T) KV {
			m, err := miniredis.Run()
			if err != nil {
				t.Fatalf("start miniredis: %v", err)
			}
			t.Cleanup(m.Close)
			kv, err := Open(ctx, Options{Backend: BackendRedis, RedisAddr: m.Addr()})
			if err != nil {
				t.Fatalf("open redis: %v", err)
			}
			return kv
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			kv := tc.open(t)
			defer kv.Close()

			if _, err := kv.Get(ctx, "tasks"); err != ErrNotFound {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
			if err := kv.Put(ctx, "tasks", []byte(`[1,2]`)); err != nil {
				t.Fatalf("put: %v", err)
			}
			got, err := kv.Get(ctx, "tasks")
			if err != nil || string(got) != `[1,2]` {
				t.Fatalf("unexpected get: %q, %v", got, err)
			}
			if err := kv.Delete(ctx, "tasks"); err != nil {
				t.Fatalf("delete: %v", err)
			}
			if err := kv.Delete(ctx, "tasks"); err != ErrNotFound {
				t.Fatalf("expected ErrNotFound on second delete, got %v", err)
			}
		})
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	if _, err := Open(context.Background(), Options{Backend: "etcd"}); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestFileKVRejectsPathKeys(t *testing.T) {
	kv, err := NewFileKV(t.TempDir())
	if err != nil {
		t.Fatalf("new file kv: %v", err)
	}
	if err := kv.Put(context.Background(), "../escape", []byte("x")); err == nil {
		t.Fatal("expected invalid key error")
	}
}

func TestFileKVWritesAtomically(t *testing.T) {
	dir := t.TempDir()
	kv, err := NewFileKV(dir)
	if err != nil {
		t.Fatalf("new file kv: %v", err)
	}
	if err := kv.Put(context.Background(), "tasks", []byte(`[]`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "tasks.json.tmp")); !os.IsNotExist(err) {
		t.Fatalf("expected temp file to be renamed away, stat err: %v", err)
	}
}

func TestRedisKVUsesPrefix(t *testing.T) {
	m, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	defer m.Close()

	kv, err := NewRedisKV(redis.NewClient(&redis.Options{Addr: m.Addr()}), "test:")
	if err != nil {
		t.Fatalf("new redis kv: %v", err)
	}
	defer kv.Close()

	if err := kv.Put(context.Background(), "tasks", []byte(`[]`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	raw, err := m.Get("test:tasks")
	if err != nil || raw != "[]" {
		t.Fatalf("unexpected raw redis value: %q, %v", raw, err)
	}
}
