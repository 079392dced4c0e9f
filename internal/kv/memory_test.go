package kv

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestMemoryGetSet(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if _, err := m.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get(missing) error = %v, want ErrNotFound", err)
	}

	if err := m.Set(ctx, "k", []byte("v1")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, err := m.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != "v1" {
		t.Errorf("Get() = %q, want %q", got, "v1")
	}
}

func TestMemoryCopiesValues(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	src := []byte("original")
	if err := m.Set(ctx, "k", src); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	src[0] = 'X'

	got, err := m.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != "original" {
		t.Errorf("stored value mutated through caller slice: %q", got)
	}

	got[0] = 'Y'
	again, _ := m.Get(ctx, "k")
	if string(again) != "original" {
		t.Errorf("stored value mutated through returned slice: %q", again)
	}
}

func TestMemorySetNX(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	ok, err := m.SetNX(ctx, "k", []byte("first"))
	if err != nil || !ok {
		t.Fatalf("SetNX() = (%v, %v), want (true, nil)", ok, err)
	}
	ok, err = m.SetNX(ctx, "k", []byte("second"))
	if err != nil || ok {
		t.Fatalf("SetNX() on existing key = (%v, %v), want (false, nil)", ok, err)
	}
	got, _ := m.Get(ctx, "k")
	if string(got) != "first" {
		t.Errorf("losing SetNX overwrote value: %q", got)
	}
}

func TestMemorySetNXConcurrent(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	const n = 50
	wins := make(chan bool, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := m.SetNX(ctx, "claim", []byte("x"))
			if err != nil {
				t.Errorf("SetNX() error = %v", err)
				return
			}
			wins <- ok
		}()
	}
	wg.Wait()
	close(wins)

	winners := 0
	for ok := range wins {
		if ok {
			winners++
		}
	}
	if winners != 1 {
		t.Errorf("SetNX winners = %d, want exactly 1", winners)
	}
}

func TestMemorySets(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if err := m.SetAdd(ctx, "s", "a", "b", "a"); err != nil {
		t.Fatalf("SetAdd() error = %v", err)
	}
	n, err := m.SetLen(ctx, "s")
	if err != nil {
		t.Fatalf("SetLen() error = %v", err)
	}
	if n != 2 {
		t.Errorf("SetLen() = %d, want 2", n)
	}

	members, err := m.SetMembers(ctx, "s")
	if err != nil {
		t.Fatalf("SetMembers() error = %v", err)
	}
	if len(members) != 2 {
		t.Errorf("SetMembers() = %v, want 2 members", members)
	}

	if err := m.SetRemove(ctx, "s", "a"); err != nil {
		t.Fatalf("SetRemove() error = %v", err)
	}
	n, _ = m.SetLen(ctx, "s")
	if n != 1 {
		t.Errorf("SetLen() after remove = %d, want 1", n)
	}
}

func TestMemoryIncr(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		got, err := m.Incr(ctx, "seq")
		if err != nil {
			t.Fatalf("Incr() error = %v", err)
		}
		if got != want {
			t.Errorf("Incr() = %d, want %d", got, want)
		}
	}
}

func TestMemoryDelete(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	_ = m.Set(ctx, "k", []byte("v"))
	if err := m.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := m.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
	}
	// Deleting a missing key is a no-op, not an error.
	if err := m.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete() on missing key error = %v", err)
	}
}
