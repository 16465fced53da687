//go:build !ios && !android && (amd64 || arm64)

package vdpva

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/obinnaokechukwu/vdpva/vdpau"
)

// Rectangle is a region in pixels given by its origin and size.
type Rectangle struct {
	X, Y          int
	Width, Height int
}

func (r Rectangle) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Width, r.Height, r.X, r.Y)
}

// corners is a rectangle in signed corner form: x0/y0 inclusive, x1/y1
// exclusive.
type corners struct {
	x0, y0, x1, y1 int
}

func cornersOf(r Rectangle) corners {
	return corners{r.X, r.Y, r.X + r.Width, r.Y + r.Height}
}

// clamp bounds c to [0, width) x [0, height). A rectangle whose far edge
// ends up before its near edge collapses to an empty one.
func (c corners) clamp(width, height int) vdpau.Rect {
	x0 := min(max(c.x0, 0), width)
	y0 := min(max(c.y0, 0), height)
	x1 := max(min(c.x1, width), x0)
	y1 := max(min(c.y1, height), y0)
	return vdpau.Rect{X0: uint32(x0), Y0: uint32(y0), X1: uint32(x1), Y1: uint32(y1)}
}

// subpictureBlend is source-over compositing for premultiplied bitmaps.
func subpictureBlend() (vdpau.BlendState, error) {
	return vdpau.BlendStateFrom(gputypes.BlendStatePremultiplied())
}

// renderVideo mixes surface s into the current slot of o.
func (d *Driver) renderVideo(s *Surface, c *Context, o *outputPool, src, dst Rectangle) error {
	const op = "render surface"
	regionW, regionH := o.region()
	srcRect := cornersOf(src).clamp(s.width, s.height)
	dstRect := cornersOf(dst).clamp(regionW, regionH)

	err := d.caps.Mixer.VideoMixerRender(c.mixer, &vdpau.MixerRender{
		Background:           vdpau.InvalidHandle,
		Structure:            vdpau.PictureStructureFrame,
		Current:              s.video,
		SourceRect:           &srcRect,
		Destination:          o.ring.current(),
		DestinationVideoRect: &dstRect,
	})
	return d.nativeError(op, err)
}

// subpictureScale returns the factors mapping video-relative coordinates
// of a subpicture association into the presentation region.
func subpictureScale(sub *Subpicture, s *Surface, regionW, regionH int) (sx, sy float64) {
	psx := float64(s.width) / float64(sub.width)
	psy := float64(s.height) / float64(sub.height)
	ssx := float64(regionW) / float64(s.width)
	ssy := float64(regionH) / float64(s.height)
	return psx * ssx, psy * ssy
}

// scaleCorners maps r by sx horizontally and sy vertically.
func scaleCorners(r Rectangle, sx, sy float64) corners {
	return corners{
		x0: int(sx * float64(r.X)),
		y0: int(sy * float64(r.Y)),
		x1: int(sx * float64(r.X+r.Width)),
		y1: int(sy * float64(r.Y+r.Height)),
	}
}

// renderSubpicture blends one association of s into the current slot of
// o. Pending pixel data of the subpicture is uploaded first.
func (d *Driver) renderSubpicture(sub *Subpicture, s *Surface, o *outputPool, a *association) error {
	const op = "render subpicture"
	if err := d.commitSubpicture(sub); err != nil {
		return err
	}

	regionW, regionH := o.region()
	sx, sy := subpictureScale(sub, s, regionW, regionH)
	srcRect := cornersOf(a.src).clamp(sub.width, sub.height)
	dstRect := scaleCorners(a.dst, sx, sy).clamp(regionW, regionH)

	err := d.caps.Output.OutputSurfaceRenderBitmapSurface(
		o.ring.current(), &dstRect,
		sub.bitmap, &srcRect,
		nil,
		&d.blend,
		vdpau.RenderRotate0,
	)
	return d.nativeError(op, err)
}

// renderSubpictures blends every association of s in order. The first
// failure aborts the batch.
func (d *Driver) renderSubpictures(s *Surface, o *outputPool) error {
	for _, a := range s.assocs {
		sub, ok := d.subpictures.Lookup(uint32(a.subpicture))
		if !ok {
			continue
		}
		if err := d.renderSubpicture(sub, s, o, a); err != nil {
			return err
		}
	}
	return nil
}
