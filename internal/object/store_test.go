package object

import (
	"slices"
	"testing"
)

func TestStoreAddAndHandles(t *testing.T) {
	var s Store[int]
	h1 := s.Add(10)
	h2 := s.Add(20)
	if h1 == h2 {
		t.Fatalf("handles must be unique, got %d twice", h1)
	}
	if s.Len() != 2 || s.Live() != 2 {
		t.Fatalf("expected 2 entries, got len=%d live=%d", s.Len(), s.Live())
	}
	if got := s.Find(h2); got != 1 {
		t.Errorf("Find(h2) = %d, want 1", got)
	}
	if got := s.Find(Handle(99)); got != -1 {
		t.Errorf("Find(unknown) = %d, want -1", got)
	}
}

func TestStoreKillAndReap(t *testing.T) {
	var s Store[int]
	for i := 1; i <= 5; i++ {
		s.Add(i)
	}

	if !s.Kill(1) {
		t.Fatal("first Kill should succeed")
	}
	if s.Kill(1) {
		t.Error("second Kill of the same slot should report false")
	}
	s.Kill(3)

	if s.Live() != 3 || s.Len() != 5 {
		t.Fatalf("before reap: live=%d len=%d", s.Live(), s.Len())
	}

	var visited []int
	s.Each(func(_ int, v *int) bool {
		visited = append(visited, *v)
		return true
	})
	if !slices.Equal(visited, []int{1, 3, 5}) {
		t.Errorf("Each visited %v, want [1 3 5]", visited)
	}

	if removed := s.Reap(); removed != 2 {
		t.Errorf("Reap removed %d, want 2", removed)
	}
	if got := s.Values(); !slices.Equal(got, []int{1, 3, 5}) {
		t.Errorf("after reap got %v, want [1 3 5]", got)
	}
}

func TestStoreReapIdempotent(t *testing.T) {
	var s Store[int]
	for i := 0; i < 4; i++ {
		s.Add(i)
	}
	s.Kill(0)
	s.Reap()
	before := s.Values()
	handles := []Handle{s.HandleAt(0), s.HandleAt(1), s.HandleAt(2)}

	if removed := s.Reap(); removed != 0 {
		t.Errorf("second Reap removed %d, want 0", removed)
	}
	if !slices.Equal(before, s.Values()) {
		t.Errorf("second Reap changed values: %v -> %v", before, s.Values())
	}
	for i, h := range handles {
		if s.HandleAt(i) != h {
			t.Errorf("slot %d handle changed from %d to %d", i, h, s.HandleAt(i))
		}
	}
}

func TestStoreEachStops(t *testing.T) {
	var s Store[int]
	for i := 0; i < 10; i++ {
		s.Add(i)
	}
	calls := 0
	s.Each(func(int, *int) bool {
		calls++
		return calls < 3
	})
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestStoreClearKeepsHandlesIncreasing(t *testing.T) {
	var s Store[string]
	h := s.Add("a")
	s.Clear()
	if s.Len() != 0 {
		t.Fatalf("expected empty store, got %d", s.Len())
	}
	if next := s.Add("b"); next <= h {
		t.Errorf("handle %d reused after Clear (previous %d)", next, h)
	}
}
