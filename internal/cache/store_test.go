package cache

import (
	"fmt"
	"testing"
	"time"
)

func TestStoreRoundTrip(t *testing.T) {
	t.Parallel()

	store := NewStore(8)
	store.Set("k", "v", time.Minute)

	got, ok := store.Get("k")
	if !ok {
		t.Fatalf("expected cache hit")
	}
	if got.(string) != "v" {
		t.Fatalf("unexpected cached value: %v", got)
	}
}

func TestStoreExpiry(t *testing.T) {
	t.Parallel()

	current := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := NewStore(8)
	store.now = func() time.Time { return current }

	store.Set("k", "v", 30*time.Second)
	if _, ok := store.Get("k"); !ok {
		t.Fatalf("expected hit before expiry")
	}

	current = current.Add(31 * time.Second)
	if _, ok := store.Get("k"); ok {
		t.Fatalf("expected miss after expiry")
	}
	if store.Len() != 0 {
		t.Fatalf("expected expired entry to be removed on read, len=%d", store.Len())
	}
}

func TestStoreDisabledTTL(t *testing.T) {
	t.Parallel()

	store := NewStore(8)
	store.Set("k", "v", 0)
	if _, ok := store.Get("k"); ok {
		t.Fatalf("expected set with ttl<=0 to be a no-op")
	}
	store.Set("k", "v", -time.Second)
	if _, ok := store.Get("k"); ok {
		t.Fatalf("expected set with negative ttl to be a no-op")
	}
}

func TestStoreOverwrite(t *testing.T) {
	t.Parallel()

	store := NewStore(8)
	store.Set("k", "first", time.Minute)
	store.Set("k", "second", time.Minute)

	got, ok := store.Get("k")
	if !ok || got.(string) != "second" {
		t.Fatalf("expected overwrite to win, got %v (hit=%v)", got, ok)
	}
}

func TestStoreEvictionBound(t *testing.T) {
	t.Parallel()

	const capacity = 20
	store := NewStore(capacity)
	for i := 0; i < capacity*3; i++ {
		store.Set(fmt.Sprintf("key-%d", i), i, time.Minute)
		if store.Len() > capacity {
			t.Fatalf("store grew past capacity: len=%d", store.Len())
		}
	}
}

func TestStoreEvictsOldestInserted(t *testing.T) {
	t.Parallel()

	store := NewStore(10)
	for i := 0; i < 10; i++ {
		store.Set(fmt.Sprintf("key-%d", i), i, time.Minute)
	}

	// The next insert must push out key-0, the oldest entry.
	store.Set("overflow", "v", time.Minute)
	if _, ok := store.Get("key-0"); ok {
		t.Fatalf("expected oldest entry to be evicted")
	}
	if _, ok := store.Get("overflow"); !ok {
		t.Fatalf("expected new entry to be present")
	}
}

func TestFingerprintDeterminism(t *testing.T) {
	t.Parallel()

	first := Fingerprint("alice", "hello", []string{"en", "fr"})
	second := Fingerprint("alice", "hello", []string{"en", "fr"})
	if first != second {
		t.Fatalf("fingerprint is not deterministic: %q vs %q", first, second)
	}
}

func TestFingerprintSensitivity(t *testing.T) {
	t.Parallel()

	base := Fingerprint("alice", "hello", []string{"en", "fr"})

	if got := Fingerprint("bob", "hello", []string{"en", "fr"}); got == base {
		t.Fatalf("expected author change to change the fingerprint")
	}
	if got := Fingerprint("alice", "hello!", []string{"en", "fr"}); got == base {
		t.Fatalf("expected text change to change the fingerprint")
	}
	if got := Fingerprint("alice", "hello", []string{"fr", "en"}); got == base {
		t.Fatalf("expected language order change to change the fingerprint")
	}
}

func TestFingerprintNilLanguages(t *testing.T) {
	t.Parallel()

	if Fingerprint("a", "t", nil) != Fingerprint("a", "t", []string{}) {
		t.Fatalf("expected nil and empty language lists to fingerprint identically")
	}
}
