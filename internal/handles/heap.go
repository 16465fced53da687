package handles

import (
	"sync"
)

// Invalid is the ID never returned by a Heap.
const Invalid uint32 = 0xFFFFFFFF

// slot is one Heap entry.
type slot[T any] struct {
	obj  T
	live bool
}

// Heap is an arena of objects of type T addressed by IDs of the form
// base+index. Freed slots are reused lowest-index first.
//
// Thread-safe.
type Heap[T any] struct {
	mu    sync.RWMutex
	base  uint32
	slots []slot[T]
	free  []int
	live  int
}

// NewHeap creates an empty heap whose IDs start at base.
func NewHeap[T any](base uint32) *Heap[T] {
	return &Heap[T]{base: base}
}

// Allocate stores obj and returns its ID.
func (h *Heap[T]) Allocate(obj T) uint32 {
	h.mu.Lock()
	defer h.mu.Unlock()

	var idx int
	if n := len(h.free); n > 0 {
		// Pop the smallest free index; free is kept sorted descending.
		idx = h.free[n-1]
		h.free = h.free[:n-1]
	} else {
		idx = len(h.slots)
		h.slots = append(h.slots, slot[T]{})
	}
	h.slots[idx] = slot[T]{obj: obj, live: true}
	h.live++
	return h.base + uint32(idx)
}

// index converts id into a slot index, reporting whether it is in range.
func (h *Heap[T]) index(id uint32) (int, bool) {
	if id == Invalid || id < h.base {
		return 0, false
	}
	idx := int(id - h.base)
	if idx >= len(h.slots) {
		return 0, false
	}
	return idx, true
}

// Lookup returns the object identified by id.
// ok is false when id was never allocated or has been freed.
func (h *Heap[T]) Lookup(id uint32) (obj T, ok bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	idx, ok := h.index(id)
	if !ok || !h.slots[idx].live {
		return obj, false
	}
	return h.slots[idx].obj, true
}

// Free releases id. Freeing a dead or unknown ID has no effect.
// It returns whether a live object was released.
func (h *Heap[T]) Free(id uint32) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	idx, ok := h.index(id)
	if !ok || !h.slots[idx].live {
		return false
	}
	h.slots[idx] = slot[T]{}
	h.live--

	// Insert keeping descending order so the tail is the lowest index.
	i := len(h.free)
	h.free = append(h.free, idx)
	for i > 0 && h.free[i-1] < idx {
		h.free[i] = h.free[i-1]
		i--
	}
	h.free[i] = idx
	return true
}

// Len returns the number of live objects.
func (h *Heap[T]) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.live
}

// IDs returns the IDs of all live objects in ascending order.
func (h *Heap[T]) IDs() []uint32 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	ids := make([]uint32, 0, h.live)
	for i := range h.slots {
		if h.slots[i].live {
			ids = append(ids, h.base+uint32(i))
		}
	}
	return ids
}
