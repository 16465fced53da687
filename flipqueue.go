//go:build !ios && !android && (amd64 || arm64)

package vdpva

import (
	"github.com/obinnaokechukwu/vdpva/internal/x11"
	"github.com/obinnaokechukwu/vdpva/vdpau"
)

// flipQueue is a presentation queue and its target. Both handles are
// valid or both are vdpau.InvalidHandle.
type flipQueue struct {
	queue  vdpau.PresentationQueue
	target vdpau.PresentationQueueTarget
}

func newFlipQueue() flipQueue {
	return flipQueue{queue: vdpau.InvalidHandle, target: vdpau.InvalidHandle}
}

func (f flipQueue) bound() bool {
	return f.queue != vdpau.InvalidHandle && f.target != vdpau.InvalidHandle
}

// bindFlipQueue makes o present to drawable, replacing the queue bound to
// a previous drawable. On failure o is left unbound.
func (d *Driver) bindFlipQueue(o *outputPool, drawable Drawable) error {
	const op = "create flip queue"
	if o.drawable == drawable && o.flip.bound() {
		return nil
	}
	if o.flip.bound() {
		d.logger().Info("rebinding flip queue", "from", o.drawable, "to", drawable)
	}
	d.teardownFlipQueue(o)

	p := d.caps.Presentation
	target, err := p.PresentationQueueTargetCreateX11(drawable)
	if err != nil {
		return d.nativeError(op, err)
	}
	queue, err := p.PresentationQueueCreate(target)
	if err != nil {
		if derr := p.PresentationQueueTargetDestroy(target); derr != nil {
			d.logger().Warn("destroying presentation queue target", "error", derr)
		}
		return d.nativeError(op, err)
	}

	o.flip = flipQueue{queue: queue, target: target}
	o.drawable = drawable
	d.logger().Debug("flip queue bound", "drawable", drawable, "queue", queue, "target", target)
	return nil
}

// teardownFlipQueue destroys the queue, then its target. It never fails;
// release errors are logged.
func (d *Driver) teardownFlipQueue(o *outputPool) {
	p := d.caps.Presentation
	if o.flip.queue != vdpau.InvalidHandle {
		if err := p.PresentationQueueDestroy(o.flip.queue); err != nil {
			d.logger().Warn("destroying presentation queue", "queue", o.flip.queue, "error", err)
		}
		o.flip.queue = vdpau.InvalidHandle
	}
	if o.flip.target != vdpau.InvalidHandle {
		if err := p.PresentationQueueTargetDestroy(o.flip.target); err != nil {
			d.logger().Warn("destroying presentation queue target", "target", o.flip.target, "error", err)
		}
		o.flip.target = vdpau.InvalidHandle
	}
	o.drawable = x11.None
}
