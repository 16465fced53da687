// Package handles provides the ID spaces the driver hands out.
//
// Registry maps small non-zero integers to Go values so that a value can be
// named from C memory, such as the opaque context pointer a native callback
// is registered with, and resolved again when the callback fires.
//
// Heap is an arena for driver-managed objects (surfaces, contexts, output
// pools, subpictures). Its IDs are offset per object kind so that IDs of
// different kinds never collide, and every lookup checks liveness.
package handles

import "sync"

// Registry holds values of type T under handles that are safe to store in
// C memory. The zero value is ready to use.
//
// Thread-safe.
type Registry[T any] struct {
	mu     sync.RWMutex
	values map[uintptr]T
	last   uintptr
}

// Register stores v and returns its handle. Handles are never zero and
// never reused.
func (r *Registry[T]) Register(v T) uintptr {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.values == nil {
		r.values = make(map[uintptr]T)
	}
	r.last++
	r.values[r.last] = v
	return r.last
}

// Lookup returns the value registered under h.
func (r *Registry[T]) Lookup(h uintptr) (v T, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok = r.values[h]
	return v, ok
}

// Release forgets h. Releasing an unknown handle has no effect.
func (r *Registry[T]) Release(h uintptr) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.values, h)
}

// Len returns the number of registered values.
func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.values)
}
