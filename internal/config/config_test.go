package config

import (
	"testing"
	"time"
)

func TestGetenvFallbacks(t *testing.T) {
	t.Setenv("TS_TEST_STR", "")
	if got := getenv("TS_TEST_STR", "fallback"); got != "fallback" {
		t.Fatalf("got %q", got)
	}
	t.Setenv("TS_TEST_STR", "set")
	if got := getenv("TS_TEST_STR", "fallback"); got != "set" {
		t.Fatalf("got %q", got)
	}
}

func TestGetenvIntBadValue(t *testing.T) {
	t.Setenv("TS_TEST_INT", "not a number")
	if got := getenvInt("TS_TEST_INT", 42); got != 42 {
		t.Fatalf("got %d", got)
	}
	t.Setenv("TS_TEST_INT", "7")
	if got := getenvInt("TS_TEST_INT", 42); got != 7 {
		t.Fatalf("got %d", got)
	}
}

func TestGetenvDuration(t *testing.T) {
	t.Setenv("TS_TEST_DUR", "750ms")
	if got := getenvDuration("TS_TEST_DUR", time.Second); got != 750*time.Millisecond {
		t.Fatalf("got %v", got)
	}
	t.Setenv("TS_TEST_DUR", "bogus")
	if got := getenvDuration("TS_TEST_DUR", time.Second); got != time.Second {
		t.Fatalf("got %v", got)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TARGETSCOUT_CACHE_PATH", "")
	t.Setenv("TARGETSCOUT_HTTP_ADDR", "")
	t.Setenv("TARGETSCOUT_MAX_TRIALS", "")
	t.Setenv("TARGETSCOUT_REQUEST_DELAY", "")
	c := Load()
	if c.HTTPAddr != ":8089" || c.MaxTrials != 100 || c.RequestDelay != 250*time.Millisecond {
		t.Fatalf("unexpected defaults %+v", c)
	}
	if c.CachePath == "" {
		t.Fatal("cache path must have a default")
	}
}
