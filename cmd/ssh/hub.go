package main

import (
	"sync"
	"sync/atomic"

	"github.com/tomz197/cosmicdefender/internal/game"
)

// tunablesRef holds the tunables new sessions start with.
type tunablesRef struct {
	p atomic.Pointer[game.Tunables]
}

func (r *tunablesRef) Store(t game.Tunables) {
	r.p.Store(&t)
}

func (r *tunablesRef) Load() (game.Tunables, bool) {
	t := r.p.Load()
	if t == nil {
		return game.Tunables{}, false
	}
	return *t, true
}

// hub fans a reload notification out to every running session.
type hub struct {
	mu   sync.Mutex
	next int
	subs map[int]chan string
}

func newHub() *hub {
	return &hub{subs: make(map[int]chan string)}
}

// subscribe returns a channel of changed paths and a func that removes it.
func (h *hub) subscribe() (<-chan string, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.next
	h.next++
	ch := make(chan string, 1)
	h.subs[id] = ch
	return ch, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subs, id)
	}
}

// broadcast sends path to every subscriber without blocking. A subscriber
// with a reload already pending keeps that one.
func (h *hub) broadcast(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs {
		select {
		case ch <- path:
		default:
		}
	}
}
