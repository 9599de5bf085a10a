package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	token, err := s.NewSession("resident")
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token")
	}
	subject, ok, err := s.Lookup(token)
	if err != nil || !ok || subject != "resident" {
		t.Fatalf("lookup = %q %v %v", subject, ok, err)
	}
	if _, ok, _ := s.Lookup("missing"); ok {
		t.Fatalf("unknown token resolved")
	}

	if err := s.Delete(token); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := s.Lookup(token); ok {
		t.Fatalf("deleted token still valid")
	}

	a, _ := s.NewSession("resident")
	b, _ := s.NewSession("resident")
	if err := s.Clear(context.Background()); err != nil {
		t.Fatalf("clear: %v", err)
	}
	for _, tok := range []string{a, b} {
		if _, ok, _ := s.Lookup(tok); ok {
			t.Fatalf("token %s survived clear", tok)
		}
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore(time.Hour))
}

func TestMemoryStoreExpiry(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	token, _ := s.NewSession("resident")
	now = now.Add(time.Minute)
	if _, ok, _ := s.Lookup(token); ok {
		t.Fatalf("expired token still valid")
	}
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	s := NewRedisStore(mr.Addr(), "", "test:session", time.Hour)
	t.Cleanup(func() { _ = s.Close() })
	exerciseStore(t, s)
}

func TestRedisStoreTTLAndPrefix(t *testing.T) {
	mr := miniredis.RunT(t)
	s := NewRedisStore(mr.Addr(), "", "test:session", time.Minute)
	t.Cleanup(func() { _ = s.Close() })
	if err := mr.Set("other:key", "keep"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	token, err := s.NewSession("resident")
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if ttl := mr.TTL("test:session:" + token); ttl != time.Minute {
		t.Fatalf("ttl = %v", ttl)
	}
	if err := s.Clear(context.Background()); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if !mr.Exists("other:key") {
		t.Fatalf("clear removed a key outside the prefix")
	}
	mr.FastForward(2 * time.Minute)
	if _, ok, _ := s.Lookup(token); ok {
		t.Fatalf("token valid after clear")
	}
}
