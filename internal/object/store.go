package object

// Handle is the stable identity of an entity in a Store.
// Handles are never reused within a store's lifetime.
type Handle uint64

// Store is an arena holding one entity collection. Entities are killed in
// place during a tick and removed by a single compacting Reap call, so indices
// stay valid for the whole tick and no collection is reallocated per removal.
type Store[T any] struct {
	entries []entry[T]
	next    Handle
	dead    int
}

type entry[T any] struct {
	handle Handle
	dead   bool
	value  T
}

// Add appends v and returns its handle.
func (s *Store[T]) Add(v T) Handle {
	s.next++
	s.entries = append(s.entries, entry[T]{handle: s.next, value: v})
	return s.next
}

// Len returns the number of slots, including entities killed but not yet reaped.
// Use it as the bound when iterating with At.
func (s *Store[T]) Len() int {
	return len(s.entries)
}

// Live returns the number of entities that have not been killed.
func (s *Store[T]) Live() int {
	return len(s.entries) - s.dead
}

// At returns a pointer to the entity in slot i. The pointer is valid until
// the next Add or Reap.
func (s *Store[T]) At(i int) *T {
	return &s.entries[i].value
}

// HandleAt returns the handle of the entity in slot i.
func (s *Store[T]) HandleAt(i int) Handle {
	return s.entries[i].handle
}

// Dead reports whether slot i was killed this tick.
func (s *Store[T]) Dead(i int) bool {
	return s.entries[i].dead
}

// Kill marks slot i for removal. It returns false if it was already dead.
func (s *Store[T]) Kill(i int) bool {
	e := &s.entries[i]
	if e.dead {
		return false
	}
	e.dead = true
	s.dead++
	return true
}

// Find returns the slot holding h, or -1.
func (s *Store[T]) Find(h Handle) int {
	for i := range s.entries {
		if s.entries[i].handle == h {
			return i
		}
	}
	return -1
}

// Each calls fn for every live entity in insertion order.
// If fn returns false, iteration stops.
func (s *Store[T]) Each(fn func(i int, v *T) bool) {
	for i := range s.entries {
		if s.entries[i].dead {
			continue
		}
		if !fn(i, &s.entries[i].value) {
			return
		}
	}
}

// Reap compacts the store, dropping killed entities while keeping the order
// of the survivors. Returns the number removed.
func (s *Store[T]) Reap() int {
	if s.dead == 0 {
		return 0
	}
	kept := s.entries[:0] // reuse backing array
	for _, e := range s.entries {
		if !e.dead {
			kept = append(kept, e)
		}
	}
	var zero entry[T]
	for i := len(kept); i < len(s.entries); i++ {
		s.entries[i] = zero
	}
	removed := len(s.entries) - len(kept)
	s.entries = kept
	s.dead = 0
	return removed
}

// Clear removes every entity. Handles keep increasing afterwards.
func (s *Store[T]) Clear() {
	clear(s.entries)
	s.entries = s.entries[:0]
	s.dead = 0
}

// Values returns a copy of every live entity, in order.
func (s *Store[T]) Values() []T {
	out := make([]T, 0, s.Live())
	for i := range s.entries {
		if !s.entries[i].dead {
			out = append(out, s.entries[i].value)
		}
	}
	return out
}
