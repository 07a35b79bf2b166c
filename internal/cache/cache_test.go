package cache

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSetGetRoundTrip(t *testing.T) {
	s := openTestStore(t)
	if err := s.Set("k", []byte("v1"), time.Hour); err != nil {
		t.Fatal(err)
	}
	got, err := s.Get("k")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "v1" {
		t.Fatalf("got %q", got)
	}

	// Last write wins.
	if err := s.Set("k", []byte("v2"), time.Hour); err != nil {
		t.Fatal(err)
	}
	got, _ = s.Get("k")
	if string(got) != "v2" {
		t.Fatalf("got %q after overwrite", got)
	}
}

func TestGetMiss(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.Get("absent"); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected ErrMiss, got %v", err)
	}
}

func TestTTLExpiry(t *testing.T) {
	s := openTestStore(t)
	base := time.Now()
	s.now = func() time.Time { return base }

	if err := s.Set("k", []byte("v"), time.Minute); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get("k"); err != nil {
		t.Fatalf("entry should be live: %v", err)
	}

	s.now = func() time.Time { return base.Add(2 * time.Minute) }
	if _, err := s.Get("k"); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected ErrMiss after expiry, got %v", err)
	}
	// Expired rows are removed on read.
	if _, err := s.Get("k"); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected ErrMiss on second read, got %v", err)
	}
}

func TestZeroTTLNeverExpires(t *testing.T) {
	s := openTestStore(t)
	base := time.Now()
	s.now = func() time.Time { return base }

	if err := s.Set("k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	s.now = func() time.Time { return base.Add(1000 * time.Hour) }
	if _, err := s.Get("k"); err != nil {
		t.Fatalf("zero-ttl entry expired: %v", err)
	}
}

func TestExpireSweep(t *testing.T) {
	s := openTestStore(t)
	base := time.Now()
	s.now = func() time.Time { return base }

	_ = s.Set("old", []byte("1"), time.Minute)
	_ = s.Set("fresh", []byte("2"), time.Hour)
	_ = s.Set("forever", []byte("3"), 0)

	s.now = func() time.Time { return base.Add(10 * time.Minute) }
	n, err := s.Expire()
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("expected 1 swept entry, got %d", n)
	}
	if _, err := s.Get("fresh"); err != nil {
		t.Fatalf("fresh entry swept: %v", err)
	}
	if _, err := s.Get("forever"); err != nil {
		t.Fatalf("forever entry swept: %v", err)
	}
}
