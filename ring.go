//go:build !ios && !android && (amd64 || arm64)

package vdpva

import (
	"slices"

	"github.com/obinnaokechukwu/vdpva/vdpau"
)

// ring is a fixed arena of output surfaces with a cursor naming the slot
// the next presentation renders into.
type ring struct {
	slots  []vdpau.OutputSurface
	cursor int
}

func newRing(n int) ring {
	slots := make([]vdpau.OutputSurface, n)
	for i := range slots {
		slots[i] = vdpau.InvalidHandle
	}
	return ring{slots: slots}
}

func (r *ring) len() int { return len(r.slots) }

// current returns the slot the next presentation renders into.
func (r *ring) current() vdpau.OutputSurface {
	return r.slots[r.cursor]
}

// index returns the cursor position.
func (r *ring) index() int { return r.cursor }

// advance moves the cursor to the next slot. It is only called once a
// slot has been queued for display.
func (r *ring) advance() {
	r.cursor = (r.cursor + 1) % len(r.slots)
}

// find returns the slot holding s, or -1.
func (r *ring) find(s vdpau.OutputSurface) int {
	if s == vdpau.InvalidHandle {
		return -1
	}
	return slices.Index(r.slots, s)
}
