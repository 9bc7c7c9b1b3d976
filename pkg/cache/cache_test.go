package cache

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	defer c.Close()

	t.Run("miss on empty", func(t *testing.T) {
		_, hit, err := c.Get(ctx, "missing")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if hit {
			t.Error("Get() hit = true, want miss")
		}
	})

	t.Run("set then get", func(t *testing.T) {
		if err := c.Set(ctx, "k", []byte("payload"), 0); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		data, hit, err := c.Get(ctx, "k")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if !hit || string(data) != "payload" {
			t.Errorf("Get() = %q, %v, want payload hit", data, hit)
		}
	})

	t.Run("expired entry is a miss", func(t *testing.T) {
		if err := c.Set(ctx, "ttl", []byte("x"), time.Nanosecond); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		time.Sleep(5 * time.Millisecond)
		_, hit, err := c.Get(ctx, "ttl")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if hit {
			t.Error("Get() hit = true for expired entry")
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := c.Set(ctx, "gone", []byte("x"), 0); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		if err := c.Delete(ctx, "gone"); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if _, hit, _ := c.Get(ctx, "gone"); hit {
			t.Error("Get() hit after Delete()")
		}
		// Deleting again is fine.
		if err := c.Delete(ctx, "gone"); err != nil {
			t.Errorf("second Delete() error = %v", err)
		}
	})

	t.Run("clear", func(t *testing.T) {
		fc := c.(*FileCache)
		if err := c.Set(ctx, "a", []byte("1"), 0); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		if err := fc.Clear(); err != nil {
			t.Fatalf("Clear() error = %v", err)
		}
		if _, hit, _ := c.Get(ctx, "a"); hit {
			t.Error("Get() hit after Clear()")
		}
	})
}

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("NullCache Get() hit = true, want always miss")
	}
}

func TestAnalysisKey(t *testing.T) {
	text := []byte("id u\nstart 0\nend 1\n")

	k1 := AnalysisKey(text, 1.0, "-silence-")
	k2 := AnalysisKey(text, 1.0, "-silence-")
	k3 := AnalysisKey(text, 2.0, "-silence-")
	k4 := AnalysisKey([]byte("other"), 1.0, "-silence-")
	k5 := AnalysisKey(text, 1.0, "<sil>")

	if !strings.HasPrefix(k1, "analysis:") {
		t.Errorf("key %q missing analysis prefix", k1)
	}
	if k1 != k2 {
		t.Errorf("same inputs gave different keys: %q vs %q", k1, k2)
	}
	if k1 == k3 {
		t.Error("different lmScale gave identical keys")
	}
	if k1 == k4 {
		t.Error("different lattice text gave identical keys")
	}
	if k1 == k5 {
		t.Error("different silence token gave identical keys")
	}
}
