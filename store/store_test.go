package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/mbolis/survey-studio/config"
	"github.com/mbolis/survey-studio/database"
	"github.com/mbolis/survey-studio/store"
)

func backends(t *testing.T) map[string]store.KV {
	t.Helper()

	db, err := database.Open(filepath.Join(t.TempDir(), "kv.sqlite"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	kvs := map[string]store.KV{
		"memory": store.NewMemory(),
		"sqlite": store.NewSQL(db),
		"redis":  store.NewRedis(client, "test:"),
	}
	t.Cleanup(func() {
		for _, kv := range kvs {
			kv.Close()
		}
	})
	return kvs
}

func TestKV(t *testing.T) {
	ctx := context.Background()

	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if _, ok, err := kv.Get(ctx, "savedSurveys"); err != nil || ok {
				t.Fatalf("get absent: ok=%v err=%v", ok, err)
			}

			if err := kv.Set(ctx, "savedSurveys", `[{"id":"a"}]`); err != nil {
				t.Fatalf("set: %v", err)
			}
			if err := kv.Set(ctx, "savedSurveys", `[]`); err != nil {
				t.Fatalf("replace: %v", err)
			}
			value, ok, err := kv.Get(ctx, "savedSurveys")
			if err != nil || !ok || value != "[]" {
				t.Fatalf("get: value=%q ok=%v err=%v", value, ok, err)
			}

			// an empty string is a value, not an absent key
			if err := kv.Set(ctx, "empty", ""); err != nil {
				t.Fatalf("set empty: %v", err)
			}
			if _, ok, err := kv.Get(ctx, "empty"); err != nil || !ok {
				t.Fatalf("get empty: ok=%v err=%v", ok, err)
			}

			if err := kv.Remove(ctx, "savedSurveys"); err != nil {
				t.Fatalf("remove: %v", err)
			}
			if err := kv.Remove(ctx, "savedSurveys"); err != nil {
				t.Fatalf("remove twice: %v", err)
			}
			if _, ok, err := kv.Get(ctx, "savedSurveys"); err != nil || ok {
				t.Fatalf("get removed: ok=%v err=%v", ok, err)
			}
		})
	}
}

func TestRedisPrefix(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	kv := store.NewRedis(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "qsurvey:")
	defer kv.Close()

	if err := kv.Set(ctx, "surveyResults", "[]"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got, err := mr.Get("qsurvey:surveyResults"); err != nil || got != "[]" {
		t.Fatalf("expected prefixed key, got %q (%v)", got, err)
	}
}

func TestOpenMemory(t *testing.T) {
	kv, err := store.Open(context.Background(), config.Config{Storage: config.StorageMemory})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer kv.Close()
	if _, ok := kv.(*store.Memory); !ok {
		t.Fatalf("expected memory backend, got %T", kv)
	}
}

func TestOpenUnknown(t *testing.T) {
	if _, err := store.Open(context.Background(), config.Config{Storage: "etcd"}); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}
