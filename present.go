//go:build !ios && !android && (amd64 || arm64)

package vdpva

import "github.com/obinnaokechukwu/vdpva/vdpau"

// PutFlags are the flags of PutSurface. No flag is supported.
type PutFlags uint32

// PutSurface composites surface id and its subpictures and queues the
// result for display on drawable. src is in surface pixels, dst in
// drawable pixels. Clip rectangles and flags are not supported.
//
// PutSurface blocks while the output surface it renders into is still
// being displayed from an earlier call.
func (d *Driver) PutSurface(id SurfaceID, drawable Drawable, src, dst Rectangle, clip []Rectangle, flags PutFlags) error {
	const op = "put surface"
	if err := d.usable(op); err != nil {
		return err
	}
	if len(clip) > 0 {
		return newError(op, StatusInvalidParameter)
	}
	if flags != 0 {
		return newError(op, StatusFlagNotSupported)
	}
	width, height, err := d.display.DrawableSize(drawable)
	if err != nil {
		return &Error{Status: StatusInvalidParameter, Op: op, Err: err}
	}
	return d.putSurface(id, drawable, width, height, src, dst)
}

// putSurface presents s on drawable whose size is width x height.
func (d *Driver) putSurface(id SurfaceID, drawable Drawable, width, height int, src, dst Rectangle) error {
	const op = "put surface"

	s, ok := d.surfaces.Lookup(uint32(id))
	if !ok {
		return newError(op, StatusInvalidSurface)
	}
	c, ok := d.contexts.Lookup(uint32(s.context))
	if !ok {
		return newError(op, StatusInvalidContext)
	}
	o, ok := d.outputs.Lookup(uint32(c.output))
	if !ok {
		return newError(op, StatusInvalidSurface)
	}

	s.status = SurfaceReady
	s.output = vdpau.InvalidHandle
	s.queue = vdpau.InvalidHandle

	if err := d.bindFlipQueue(o, drawable); err != nil {
		return err
	}

	if o.width != width || o.height != height {
		o.width, o.height = width, height
		o.clipLogged = false
	}
	if o.exceedsCapacity() {
		if d.cfg.StrictCapacity {
			return newError(op, StatusResolutionNotSupported)
		}
		if !o.clipLogged {
			d.logger().Debug("drawable exceeds output surfaces, clipping",
				"drawable", drawable,
				"width", width, "height", height,
				"capacity_width", o.surfaceWidth, "capacity_height", o.surfaceHeight)
			o.clipLogged = true
		}
	}

	slot := o.ring.current()
	if _, err := d.caps.Presentation.PresentationQueueBlockUntilSurfaceIdle(o.flip.queue, slot); err != nil {
		return d.nativeError(op, err)
	}

	if err := d.renderVideo(s, c, o, src, dst); err != nil {
		return err
	}
	if err := d.renderSubpictures(s, o); err != nil {
		return err
	}

	clipW := min(o.surfaceWidth, uint32(width))
	clipH := min(o.surfaceHeight, uint32(height))
	if err := d.caps.Presentation.PresentationQueueDisplay(o.flip.queue, slot, clipW, clipH, 0); err != nil {
		return d.nativeError(op, err)
	}

	s.status = SurfaceDisplaying
	s.output = slot
	s.queue = o.flip.queue
	o.ring.advance()
	return nil
}
