//go:build !ios && !android && (amd64 || arm64)

package vdpva

import (
	"github.com/gogpu/gputypes"
	"github.com/obinnaokechukwu/vdpva/internal/x11"
	"github.com/obinnaokechukwu/vdpva/vdpau"
)

// OutputFormat is the format of every output surface.
const OutputFormat = gputypes.TextureFormatBGRA8Unorm

// outputPool is the ring of output surfaces a context presents through,
// together with the flip queue bound to its current drawable.
type outputPool struct {
	ring ring

	// Allocated size of every surface in the ring.
	surfaceWidth  uint32
	surfaceHeight uint32

	// Size of the drawable last presented to.
	width  int
	height int

	drawable Drawable
	flip     flipQueue

	// clipLogged is set once an oversized drawable has been reported.
	clipLogged bool
}

// region returns the presentation region, which never exceeds the
// allocated surface size.
func (o *outputPool) region() (width, height int) {
	return min(o.width, int(o.surfaceWidth)), min(o.height, int(o.surfaceHeight))
}

// exceedsCapacity reports whether the drawable is larger than the
// surfaces.
func (o *outputPool) exceedsCapacity() bool {
	return o.width > int(o.surfaceWidth) || o.height > int(o.surfaceHeight)
}

// isIdle reports whether slot i is no longer queued or shown. Slots of an
// unbound pool are idle.
func (o *outputPool) isIdle(p Presentation, i int) (bool, error) {
	if !o.flip.bound() {
		return true, nil
	}
	status, _, err := p.PresentationQueueQuerySurfaceStatus(o.flip.queue, o.ring.slots[i])
	if err != nil {
		return false, err
	}
	return status == vdpau.QueueStatusIdle, nil
}

// createOutputSurface allocates an output pool whose surfaces are at least
// as large as the screen. Either every surface of the ring is created or
// none is left behind.
func (d *Driver) createOutputSurface(width, height int) (outputID, error) {
	const op = "create output surface"
	if width <= 0 || height <= 0 {
		return InvalidID, newError(op, StatusInvalidParameter)
	}
	format, ok := vdpau.RGBAFormatFor(OutputFormat)
	if !ok {
		return InvalidID, newError(op, StatusUnsupportedRTFormat)
	}

	o := &outputPool{
		ring:     newRing(d.cfg.OutputSurfaces),
		drawable: x11.None,
		flip:     newFlipQueue(),
	}
	id := outputID(d.outputs.Allocate(o))

	dw, dh := d.display.Size()
	o.surfaceWidth = uint32(max(width, dw))
	o.surfaceHeight = uint32(max(height, dh))

	for i := range o.ring.slots {
		s, err := d.caps.Output.OutputSurfaceCreate(format, o.surfaceWidth, o.surfaceHeight)
		if err != nil {
			d.destroyOutputSurface(id)
			return InvalidID, d.nativeError(op, err)
		}
		o.ring.slots[i] = s
	}

	d.logger().Debug("output pool created",
		"output", id,
		"surfaces", o.ring.len(),
		"width", o.surfaceWidth,
		"height", o.surfaceHeight)
	return id, nil
}

// destroyOutputSurface releases the flip queue, then every surface in
// index order, then the pool itself. Unknown IDs are ignored.
func (d *Driver) destroyOutputSurface(id outputID) {
	if id == InvalidID {
		return
	}
	o, ok := d.outputs.Lookup(uint32(id))
	if !ok {
		return
	}

	d.teardownFlipQueue(o)

	for i, s := range o.ring.slots {
		if s == vdpau.InvalidHandle {
			continue
		}
		if err := d.caps.Output.OutputSurfaceDestroy(s); err != nil {
			d.logger().Warn("destroying output surface", "output", id, "slot", i, "error", err)
		}
		o.ring.slots[i] = vdpau.InvalidHandle
	}
	d.outputs.Free(uint32(id))
}
