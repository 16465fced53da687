//go:build !ios && !android && (amd64 || arm64)

package vdpva

import (
	"slices"

	"github.com/obinnaokechukwu/vdpva/vdpau"
)

// SurfaceStatus is the state of a decoded surface, as VASurfaceStatus.
type SurfaceStatus uint32

const (
	SurfaceRendering  SurfaceStatus = 1
	SurfaceDisplaying SurfaceStatus = 2
	SurfaceReady      SurfaceStatus = 4
	SurfaceSkipped    SurfaceStatus = 8
)

func (s SurfaceStatus) String() string {
	switch s {
	case SurfaceRendering:
		return "rendering"
	case SurfaceDisplaying:
		return "displaying"
	case SurfaceReady:
		return "ready"
	case SurfaceSkipped:
		return "skipped"
	}
	return "unknown"
}

// RTFormat is a render target format (VA_RT_FORMAT_*).
type RTFormat uint32

const (
	RTFormatYUV420 RTFormat = 0x01
	RTFormatYUV422 RTFormat = 0x02
	RTFormatYUV444 RTFormat = 0x04
)

func (f RTFormat) chromaType() (vdpau.ChromaType, bool) {
	switch f {
	case RTFormatYUV420:
		return vdpau.ChromaType420, true
	case RTFormatYUV422:
		return vdpau.ChromaType422, true
	case RTFormatYUV444:
		return vdpau.ChromaType444, true
	}
	return 0, false
}

// Surface is a decoded video frame.
type Surface struct {
	status  SurfaceStatus
	width   int
	height  int
	chroma  vdpau.ChromaType
	context ContextID
	video   vdpau.VideoSurface

	// Subpictures composited over the frame, bottom first.
	assocs []*association

	// Output surface and queue the frame was last queued on.
	output vdpau.OutputSurface
	queue  vdpau.PresentationQueue
}

// association places a subpicture over a surface. src is relative to the
// subpicture, dst to the video surface.
type association struct {
	subpicture SubpictureID
	src        Rectangle
	dst        Rectangle
}

// CreateSurfaces creates n video surfaces of the given size and format.
// Either all surfaces are created or none is.
func (d *Driver) CreateSurfaces(width, height int, format RTFormat, n int) ([]SurfaceID, error) {
	const op = "create surfaces"
	if err := d.usable(op); err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 || n <= 0 {
		return nil, newError(op, StatusInvalidParameter)
	}
	chroma, ok := format.chromaType()
	if !ok {
		return nil, newError(op, StatusUnsupportedRTFormat)
	}

	ids := make([]SurfaceID, 0, n)
	for range n {
		video, err := d.caps.Video.VideoSurfaceCreate(chroma, uint32(width), uint32(height))
		if err != nil {
			for _, id := range slices.Backward(ids) {
				d.destroySurface(id)
			}
			return nil, d.nativeError(op, err)
		}
		s := &Surface{
			status:  SurfaceReady,
			width:   width,
			height:  height,
			chroma:  chroma,
			context: InvalidID,
			video:   video,
			output:  vdpau.InvalidHandle,
			queue:   vdpau.InvalidHandle,
		}
		ids = append(ids, SurfaceID(d.surfaces.Allocate(s)))
	}
	return ids, nil
}

// DestroySurfaces destroys the given surfaces. If any ID is unknown,
// nothing is destroyed.
func (d *Driver) DestroySurfaces(ids ...SurfaceID) error {
	const op = "destroy surfaces"
	if err := d.usable(op); err != nil {
		return err
	}
	for _, id := range ids {
		if _, ok := d.surfaces.Lookup(uint32(id)); !ok {
			return newError(op, StatusInvalidSurface)
		}
	}
	for _, id := range ids {
		d.destroySurface(id)
	}
	return nil
}

func (d *Driver) destroySurface(id SurfaceID) {
	s, ok := d.surfaces.Lookup(uint32(id))
	if !ok {
		return
	}
	s.assocs = nil
	if s.video != vdpau.InvalidHandle {
		if err := d.caps.Video.VideoSurfaceDestroy(s.video); err != nil {
			d.logger().Warn("destroying video surface", "surface", id, "error", err)
		}
		s.video = vdpau.InvalidHandle
	}
	d.surfaces.Free(uint32(id))
}

// displayedSlot finds the pool and slot surface s was last queued on. ok is
// false when that presentation no longer exists: the context, its pool or
// the flip queue it was queued on has since been destroyed.
func (d *Driver) displayedSlot(s *Surface) (o *outputPool, slot int, ok bool) {
	if s.output == vdpau.InvalidHandle {
		return nil, -1, false
	}
	c, ok := d.contexts.Lookup(uint32(s.context))
	if !ok {
		return nil, -1, false
	}
	o, ok = d.outputs.Lookup(uint32(c.output))
	if !ok || o.flip.queue != s.queue {
		return nil, -1, false
	}
	if slot = o.ring.find(s.output); slot < 0 {
		return nil, -1, false
	}
	return o, slot, true
}

func (s *Surface) markReady() {
	s.status = SurfaceReady
	s.output = vdpau.InvalidHandle
	s.queue = vdpau.InvalidHandle
}

// QuerySurfaceStatus returns the state of surface id. A displaying
// surface whose output surface the display has released becomes ready.
func (d *Driver) QuerySurfaceStatus(id SurfaceID) (SurfaceStatus, error) {
	const op = "query surface status"
	if err := d.usable(op); err != nil {
		return 0, err
	}
	s, ok := d.surfaces.Lookup(uint32(id))
	if !ok {
		return 0, newError(op, StatusInvalidSurface)
	}
	if s.status != SurfaceDisplaying {
		return s.status, nil
	}
	o, slot, ok := d.displayedSlot(s)
	if !ok {
		s.markReady()
		return s.status, nil
	}
	idle, err := o.isIdle(d.caps.Presentation, slot)
	if err != nil {
		return 0, d.nativeError(op, err)
	}
	if idle {
		s.markReady()
	}
	return s.status, nil
}

// SyncSurface blocks until surface id is no longer being displayed.
func (d *Driver) SyncSurface(id SurfaceID) error {
	const op = "sync surface"
	if err := d.usable(op); err != nil {
		return err
	}
	s, ok := d.surfaces.Lookup(uint32(id))
	if !ok {
		return newError(op, StatusInvalidSurface)
	}
	if s.status == SurfaceDisplaying {
		if o, slot, ok := d.displayedSlot(s); ok {
			if _, err := d.caps.Presentation.PresentationQueueBlockUntilSurfaceIdle(o.flip.queue, o.ring.slots[slot]); err != nil {
				return d.nativeError(op, err)
			}
		}
	}
	s.markReady()
	return nil
}

// UploadSurface writes YCbCr pixel data into surface id, one slice per
// plane with the matching pitch.
func (d *Driver) UploadSurface(id SurfaceID, format vdpau.YCbCrFormat, planes [][]byte, pitches []uint32) error {
	const op = "upload surface"
	if err := d.usable(op); err != nil {
		return err
	}
	s, ok := d.surfaces.Lookup(uint32(id))
	if !ok {
		return newError(op, StatusInvalidSurface)
	}
	if len(planes) == 0 || len(planes) != len(pitches) {
		return newError(op, StatusInvalidParameter)
	}
	return d.nativeError(op, d.caps.Video.VideoSurfacePutBitsYCbCr(s.video, format, planes, pitches))
}

// SupportsUpload reports whether surfaces of the given format accept
// YCbCr data in layout.
func (d *Driver) SupportsUpload(format RTFormat, layout vdpau.YCbCrFormat) (bool, error) {
	const op = "query upload format"
	if err := d.usable(op); err != nil {
		return false, err
	}
	chroma, ok := format.chromaType()
	if !ok {
		return false, newError(op, StatusUnsupportedRTFormat)
	}
	supported, err := d.caps.Video.VideoSurfaceQueryYCbCrCapabilities(chroma, layout)
	return supported, d.nativeError(op, err)
}

// DownloadSurface reads surface id back as YCbCr data in layout.
func (d *Driver) DownloadSurface(id SurfaceID, layout vdpau.YCbCrFormat, planes [][]byte, pitches []uint32) error {
	const op = "download surface"
	if err := d.usable(op); err != nil {
		return err
	}
	s, ok := d.surfaces.Lookup(uint32(id))
	if !ok {
		return newError(op, StatusInvalidSurface)
	}
	if len(planes) == 0 || len(planes) != len(pitches) {
		return newError(op, StatusInvalidParameter)
	}
	return d.nativeError(op, d.caps.Video.VideoSurfaceGetBitsYCbCr(s.video, layout, planes, pitches))
}

// Frame is a BGRA image read back from an output surface.
type Frame struct {
	Width, Height int
	Stride        int
	Pix           []byte
}

// CaptureSurface reads back the output surface surface id was last
// displayed on, cropped to the presentation region.
func (d *Driver) CaptureSurface(id SurfaceID) (*Frame, error) {
	const op = "capture surface"
	if err := d.usable(op); err != nil {
		return nil, err
	}
	s, ok := d.surfaces.Lookup(uint32(id))
	if !ok {
		return nil, newError(op, StatusInvalidSurface)
	}
	if s.output == vdpau.InvalidHandle {
		return nil, newError(op, StatusSurfaceBusy)
	}
	c, ok := d.contexts.Lookup(uint32(s.context))
	if !ok {
		return nil, newError(op, StatusInvalidContext)
	}
	o, ok := d.outputs.Lookup(uint32(c.output))
	if !ok || o.ring.find(s.output) < 0 {
		return nil, newError(op, StatusInvalidSurface)
	}

	w, h := o.region()
	format, _ := vdpau.RGBAFormatFor(OutputFormat)
	f := &Frame{Width: w, Height: h, Stride: w * format.BytesPerPixel()}
	f.Pix = make([]byte, f.Stride*h)
	src := vdpau.Rect{X1: uint32(w), Y1: uint32(h)}
	if err := d.caps.Output.OutputSurfaceGetBitsNative(s.output, &src, f.Pix, uint32(f.Stride)); err != nil {
		return nil, d.nativeError(op, err)
	}
	return f, nil
}
