//go:build !ios && !android && (amd64 || arm64)

package vdpva

import (
	"slices"

	"github.com/obinnaokechukwu/vdpva/vdpau"
)

// Subpicture is an RGBA overlay, such as subtitles or an OSD, composited
// over the surfaces it is associated with.
type Subpicture struct {
	width  int
	height int
	bitmap vdpau.BitmapSurface

	// Pixel data not yet uploaded to bitmap.
	pending []byte
	pitch   uint32
	dirty   bool
}

// CreateSubpicture creates a transparent subpicture. Pixels are
// premultiplied BGRA.
func (d *Driver) CreateSubpicture(width, height int) (SubpictureID, error) {
	const op = "create subpicture"
	if err := d.usable(op); err != nil {
		return InvalidID, err
	}
	if width <= 0 || height <= 0 {
		return InvalidID, newError(op, StatusInvalidParameter)
	}
	format, _ := vdpau.RGBAFormatFor(OutputFormat)
	bitmap, err := d.caps.Bitmap.BitmapSurfaceCreate(format, uint32(width), uint32(height), true)
	if err != nil {
		return InvalidID, d.nativeError(op, err)
	}
	sub := &Subpicture{width: width, height: height, bitmap: bitmap}
	return SubpictureID(d.subpictures.Allocate(sub)), nil
}

// SetSubpictureImage replaces the pixels of subpicture id. The data is
// uploaded the next time the subpicture is composited.
func (d *Driver) SetSubpictureImage(id SubpictureID, pix []byte, stride int) error {
	const op = "set subpicture image"
	if err := d.usable(op); err != nil {
		return err
	}
	sub, ok := d.subpictures.Lookup(uint32(id))
	if !ok {
		return newError(op, StatusInvalidSubpicture)
	}
	if stride < sub.width*4 || len(pix) < stride*(sub.height-1)+sub.width*4 {
		return newError(op, StatusInvalidParameter)
	}
	sub.pending = slices.Clone(pix)
	sub.pitch = uint32(stride)
	sub.dirty = true
	return nil
}

// commitSubpicture uploads pending pixel data. It does nothing when the
// bitmap is current.
func (d *Driver) commitSubpicture(sub *Subpicture) error {
	const op = "commit subpicture"
	if !sub.dirty {
		return nil
	}
	if err := d.caps.Bitmap.BitmapSurfacePutBitsNative(sub.bitmap, sub.pending, sub.pitch, nil); err != nil {
		return d.nativeError(op, err)
	}
	sub.dirty = false
	sub.pending = nil
	return nil
}

// AssociateSubpicture places subpicture id over every surface in
// surfaces. src is relative to the subpicture and dst to the video
// surface. Associating again updates the rectangles and keeps the
// stacking position.
func (d *Driver) AssociateSubpicture(id SubpictureID, surfaces []SurfaceID, src, dst Rectangle) error {
	const op = "associate subpicture"
	if err := d.usable(op); err != nil {
		return err
	}
	if _, ok := d.subpictures.Lookup(uint32(id)); !ok {
		return newError(op, StatusInvalidSubpicture)
	}
	targets, err := d.lookupSurfaces(op, surfaces)
	if err != nil {
		return err
	}
	for _, s := range targets {
		if i := s.association(id); i >= 0 {
			s.assocs[i].src, s.assocs[i].dst = src, dst
			continue
		}
		s.assocs = append(s.assocs, &association{subpicture: id, src: src, dst: dst})
	}
	return nil
}

// DeassociateSubpicture removes subpicture id from the given surfaces.
func (d *Driver) DeassociateSubpicture(id SubpictureID, surfaces []SurfaceID) error {
	const op = "deassociate subpicture"
	if err := d.usable(op); err != nil {
		return err
	}
	if _, ok := d.subpictures.Lookup(uint32(id)); !ok {
		return newError(op, StatusInvalidSubpicture)
	}
	targets, err := d.lookupSurfaces(op, surfaces)
	if err != nil {
		return err
	}
	for _, s := range targets {
		s.deassociate(id)
	}
	return nil
}

// DestroySubpicture removes subpicture id from every surface and
// releases it.
func (d *Driver) DestroySubpicture(id SubpictureID) error {
	const op = "destroy subpicture"
	if err := d.usable(op); err != nil {
		return err
	}
	if !d.destroySubpicture(id) {
		return newError(op, StatusInvalidSubpicture)
	}
	return nil
}

func (d *Driver) destroySubpicture(id SubpictureID) bool {
	sub, ok := d.subpictures.Lookup(uint32(id))
	if !ok {
		return false
	}
	for _, sid := range d.surfaces.IDs() {
		if s, ok := d.surfaces.Lookup(sid); ok {
			s.deassociate(id)
		}
	}
	if err := d.caps.Bitmap.BitmapSurfaceDestroy(sub.bitmap); err != nil {
		d.logger().Warn("destroying bitmap surface", "subpicture", id, "error", err)
	}
	d.subpictures.Free(uint32(id))
	return true
}

// lookupSurfaces resolves every ID or fails without side effects.
func (d *Driver) lookupSurfaces(op string, ids []SurfaceID) ([]*Surface, error) {
	out := make([]*Surface, 0, len(ids))
	for _, id := range ids {
		s, ok := d.surfaces.Lookup(uint32(id))
		if !ok {
			return nil, newError(op, StatusInvalidSurface)
		}
		out = append(out, s)
	}
	return out, nil
}

func (s *Surface) association(id SubpictureID) int {
	return slices.IndexFunc(s.assocs, func(a *association) bool { return a.subpicture == id })
}

func (s *Surface) deassociate(id SubpictureID) {
	s.assocs = slices.DeleteFunc(s.assocs, func(a *association) bool { return a.subpicture == id })
}
