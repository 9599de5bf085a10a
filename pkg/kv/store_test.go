package kv

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := s.Get(ctx, "bookingHistory"); err != nil || ok {
		t.Fatalf("expected absent key, got ok=%v err=%v", ok, err)
	}
	if err := s.Set(ctx, "bookingHistory", `[{"id":"1"}]`); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Set(ctx, "userProfile", `{"name":"Jane"}`); err != nil {
		t.Fatalf("set profile: %v", err)
	}
	got, ok, err := s.Get(ctx, "bookingHistory")
	if err != nil || !ok {
		t.Fatalf("get after set: ok=%v err=%v", ok, err)
	}
	if got != `[{"id":"1"}]` {
		t.Fatalf("value = %q", got)
	}

	if err := s.Set(ctx, "bookingHistory", `[]`); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if got, _, _ := s.Get(ctx, "bookingHistory"); got != `[]` {
		t.Fatalf("overwrite not applied, got %q", got)
	}

	keys, err := s.Keys(ctx)
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if want := []string{"bookingHistory", "userProfile"}; !reflect.DeepEqual(keys, want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}

	if err := s.Remove(ctx, "bookingHistory"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := s.Remove(ctx, "bookingHistory"); err != nil {
		t.Fatalf("remove absent key should succeed: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "bookingHistory"); ok {
		t.Fatalf("key still present after remove")
	}

	if err := s.ClearAll(ctx); err != nil {
		t.Fatalf("clear all: %v", err)
	}
	keys, err = s.Keys(ctx)
	if err != nil {
		t.Fatalf("keys after clear: %v", err)
	}
	if len(keys) != 0 {
		t.Fatalf("expected no keys after clear, got %v", keys)
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestSQLiteStore(t *testing.T) {
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "data", "condo.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer s.Close()
	exerciseStore(t, s)
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "condo.db")
	s, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := s.Set(context.Background(), "complaintHistory", `[{"id":"9"}]`); err != nil {
		t.Fatalf("set: %v", err)
	}
	s.Close()

	reopened, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopen sqlite: %v", err)
	}
	defer reopened.Close()
	got, ok, err := reopened.Get(context.Background(), "complaintHistory")
	if err != nil || !ok || got != `[{"id":"9"}]` {
		t.Fatalf("value after reopen = %q ok=%v err=%v", got, ok, err)
	}
}

func TestSQLiteStoreRequiresPath(t *testing.T) {
	if _, err := NewSQLiteStore("  "); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	s, err := NewRedisStore(mr.Addr(), "", "test:kv")
	if err != nil {
		t.Fatalf("new redis store: %v", err)
	}
	exerciseStore(t, s)
}

func TestRedisStoreClearAllKeepsForeignKeys(t *testing.T) {
	mr := miniredis.RunT(t)
	if err := mr.Set("other:app", "keep"); err != nil {
		t.Fatalf("seed foreign key: %v", err)
	}
	s, err := NewRedisStore(mr.Addr(), "", "test:kv")
	if err != nil {
		t.Fatalf("new redis store: %v", err)
	}
	if err := s.Set(context.Background(), "paymentData", `{}`); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.ClearAll(context.Background()); err != nil {
		t.Fatalf("clear all: %v", err)
	}
	if !mr.Exists("other:app") {
		t.Fatalf("clear all removed a key outside the prefix")
	}
	if mr.Exists("test:kv:paymentData") {
		t.Fatalf("clear all left a prefixed key")
	}
}

func TestRedisStoreReportsConnectionErrors(t *testing.T) {
	mr := miniredis.RunT(t)
	s, err := NewRedisStore(mr.Addr(), "", "")
	if err != nil {
		t.Fatalf("new redis store: %v", err)
	}
	mr.Close()
	if _, _, err := s.Get(context.Background(), "bookingHistory"); err == nil {
		t.Fatalf("expected error when redis is down")
	}
}

func TestOpenSelectsDriver(t *testing.T) {
	s, err := Open(Config{Driver: "memory"})
	if err != nil {
		t.Fatalf("open memory: %v", err)
	}
	if _, ok := s.(*MemoryStore); !ok {
		t.Fatalf("expected *MemoryStore, got %T", s)
	}
	if _, err := Open(Config{Driver: "etcd"}); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
	if _, err := Open(Config{Driver: "redis"}); err == nil {
		t.Fatalf("expected error for redis without addr")
	}
}
