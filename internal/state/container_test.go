package state

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"thonex/internal/kvstore"
	"thonex/internal/log"
)

func newStore(backend kvstore.Backend) *kvstore.Store {
	return kvstore.New(backend, log.Discard())
}

func TestContainerSelfHealsOnFirstRun(t *testing.T) {
	backend := kvstore.NewMemoryBackend()
	c := NewContainer(newStore(backend), "nums", []int{1, 2}, nil)

	if c.Err() != nil {
		t.Fatalf("unexpected error: %v", c.Err())
	}
	// The fallback must have been written through immediately.
	if raw, ok := backend.Raw("nums"); !ok || raw != "[1,2]" {
		t.Fatalf("expected normalized storage, got %q ok=%v", raw, ok)
	}
}

func TestContainerSelfHealsOnCorruption(t *testing.T) {
	backend := kvstore.NewMemoryBackend()
	backend.Seed("nums", "not json")
	c := NewContainer(newStore(backend), "nums", []int{7}, nil)

	if c.Err() == nil {
		t.Fatal("expected sticky error from corrupt read")
	}
	if got := c.Get(); len(got) != 1 || got[0] != 7 {
		t.Fatalf("expected fallback value, got %v", got)
	}
	if raw, _ := backend.Raw("nums"); raw != "[7]" {
		t.Fatalf("expected corrupt value overwritten, got %q", raw)
	}
}

func TestContainerLoadsExistingValue(t *testing.T) {
	backend := kvstore.NewMemoryBackend()
	backend.Seed("nums", "[4,5,6]")
	c := NewContainer(newStore(backend), "nums", []int{}, nil)

	if got := c.Get(); len(got) != 3 || got[2] != 6 {
		t.Fatalf("expected stored value, got %v", got)
	}
	if c.Err() != nil {
		t.Fatalf("unexpected error: %v", c.Err())
	}
}

func TestContainerSetAndUpdateWriteThrough(t *testing.T) {
	backend := kvstore.NewMemoryBackend()
	c := NewContainer(newStore(backend), "n", 0, nil)

	c.Set(5)
	if raw, _ := backend.Raw("n"); raw != "5" {
		t.Fatalf("expected write-through on Set, got %q", raw)
	}

	c.Update(func(prev int) int { return prev + 1 })
	if c.Get() != 6 {
		t.Fatalf("expected functional update, got %d", c.Get())
	}
	if raw, _ := backend.Raw("n"); raw != "6" {
		t.Fatalf("expected write-through on Update, got %q", raw)
	}
}

func TestContainerWriteErrorIsStickyNotARollback(t *testing.T) {
	backend := kvstore.NewMemoryBackend()
	c := NewContainer(newStore(backend), "n", 1, nil)

	boom := errors.New("disk full")
	backend.FailWrites = boom
	c.Set(2)

	if c.Get() != 2 {
		t.Fatalf("in-memory state must not roll back, got %d", c.Get())
	}
	if !errors.Is(c.Err(), boom) {
		t.Fatalf("expected sticky write error, got %v", c.Err())
	}

	// A later, different failure replaces the flag.
	later := errors.New("quota exceeded")
	backend.FailWrites = later
	c.Set(3)
	if !errors.Is(c.Err(), later) {
		t.Fatalf("expected latest write error, got %v", c.Err())
	}

	// A later successful write does not clear the flag.
	backend.FailWrites = nil
	c.Set(4)
	if !errors.Is(c.Err(), later) {
		t.Fatalf("expected error to stay sticky, got %v", c.Err())
	}
	if raw, _ := backend.Raw("n"); raw != "4" {
		t.Fatalf("expected later write to land, got %q", raw)
	}
}

func TestContainerLogsUnderStateComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(log.Config{Handler: slog.NewTextHandler(&buf, nil)})

	backend := kvstore.NewMemoryBackend()
	c := NewContainer(newStore(backend), "n", 1, logger)
	backend.FailWrites = errors.New("disk full")
	c.Set(2)

	out := buf.String()
	if !strings.Contains(out, "component=state") {
		t.Fatalf("expected state-tagged log line, got %q", out)
	}
	if !strings.Contains(out, "storage out of sync") {
		t.Fatalf("expected out-of-sync warning, got %q", out)
	}
}

func TestContainerAbsentBackend(t *testing.T) {
	c := NewContainer(newStore(nil), "n", 9, nil)

	if !errors.Is(c.Err(), kvstore.ErrUnavailable) {
		t.Fatalf("expected unavailable error, got %v", c.Err())
	}
	c.Set(10)
	if c.Get() != 10 {
		t.Fatalf("expected in-memory operation to keep working, got %d", c.Get())
	}
}
