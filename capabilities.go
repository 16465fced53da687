//go:build !ios && !android && (amd64 || arm64)

package vdpva

import (
	"github.com/obinnaokechukwu/vdpva/internal/x11"
	"github.com/obinnaokechukwu/vdpva/vdpau"
)

// Drawable is an X11 window or pixmap.
type Drawable = x11.Drawable

// Display answers the geometry questions the presenter asks.
type Display interface {
	// Size returns the screen resolution.
	Size() (width, height int)
	// DrawableSize returns the current size of d.
	DrawableSize(d Drawable) (width, height int, err error)
}

// OutputSurfaces creates and renders into RGBA output surfaces.
type OutputSurfaces interface {
	OutputSurfaceCreate(format vdpau.RGBAFormat, width, height uint32) (vdpau.OutputSurface, error)
	OutputSurfaceDestroy(s vdpau.OutputSurface) error
	OutputSurfaceGetBitsNative(s vdpau.OutputSurface, src *vdpau.Rect, data []byte, pitch uint32) error
	OutputSurfaceQueryRGBACapabilities(format vdpau.RGBAFormat) (bool, error)
	OutputSurfaceRenderBitmapSurface(dst vdpau.OutputSurface, dstRect *vdpau.Rect, src vdpau.BitmapSurface, srcRect *vdpau.Rect, colors *vdpau.Color, blend *vdpau.BlendState, flags vdpau.RenderFlags) error
}

// BitmapSurfaces manages the RGBA bitmaps backing subpictures.
type BitmapSurfaces interface {
	BitmapSurfaceCreate(format vdpau.RGBAFormat, width, height uint32, frequentlyAccessed bool) (vdpau.BitmapSurface, error)
	BitmapSurfaceDestroy(s vdpau.BitmapSurface) error
	BitmapSurfacePutBitsNative(s vdpau.BitmapSurface, data []byte, pitch uint32, dst *vdpau.Rect) error
}

// VideoSurfaces manages decoded YCbCr surfaces.
type VideoSurfaces interface {
	VideoSurfaceCreate(chroma vdpau.ChromaType, width, height uint32) (vdpau.VideoSurface, error)
	VideoSurfaceDestroy(s vdpau.VideoSurface) error
	VideoSurfaceGetBitsYCbCr(s vdpau.VideoSurface, format vdpau.YCbCrFormat, data [][]byte, pitches []uint32) error
	VideoSurfacePutBitsYCbCr(s vdpau.VideoSurface, format vdpau.YCbCrFormat, data [][]byte, pitches []uint32) error
	VideoSurfaceQueryYCbCrCapabilities(chroma vdpau.ChromaType, format vdpau.YCbCrFormat) (bool, error)
}

// Mixer converts video surfaces into output surfaces.
type Mixer interface {
	VideoMixerCreate(width, height uint32, chroma vdpau.ChromaType) (vdpau.VideoMixer, error)
	VideoMixerDestroy(m vdpau.VideoMixer) error
	VideoMixerRender(m vdpau.VideoMixer, r *vdpau.MixerRender) error
}

// Presentation manages presentation queues and their X11 targets.
type Presentation interface {
	PresentationQueueTargetCreateX11(d Drawable) (vdpau.PresentationQueueTarget, error)
	PresentationQueueTargetDestroy(t vdpau.PresentationQueueTarget) error
	PresentationQueueCreate(t vdpau.PresentationQueueTarget) (vdpau.PresentationQueue, error)
	PresentationQueueDestroy(q vdpau.PresentationQueue) error
	PresentationQueueDisplay(q vdpau.PresentationQueue, s vdpau.OutputSurface, clipWidth, clipHeight uint32, earliest vdpau.Time) error
	PresentationQueueBlockUntilSurfaceIdle(q vdpau.PresentationQueue, s vdpau.OutputSurface) (vdpau.Time, error)
	PresentationQueueQuerySurfaceStatus(q vdpau.PresentationQueue, s vdpau.OutputSurface) (vdpau.PresentationQueueStatus, vdpau.Time, error)
}

// Decoders manages hardware decoders.
type Decoders interface {
	DecoderQueryCapabilities(profile vdpau.DecoderProfile) (vdpau.DecoderCapabilities, error)
	DecoderCreate(profile vdpau.DecoderProfile, width, height, maxReferences uint32) (vdpau.Decoder, error)
	DecoderDestroy(d vdpau.Decoder) error
	DecoderRender(d vdpau.Decoder, target vdpau.VideoSurface, info vdpau.PictureInfo, bitstream [][]byte) error
}

// DeviceInfo describes and releases the device.
type DeviceInfo interface {
	APIVersion() (uint32, error)
	InformationString() (string, error)
	ErrorString(s vdpau.Status) string
	DeviceDestroy() error
}

// Capabilities is the set of device operations a Driver uses.
// *vdpau.Table provides all of them; tests substitute fakes.
type Capabilities struct {
	Output       OutputSurfaces
	Bitmap       BitmapSurfaces
	Video        VideoSurfaces
	Mixer        Mixer
	Presentation Presentation
	Decoders     Decoders
	Device       DeviceInfo
}

// TableCapabilities returns the capability set backed by t.
func TableCapabilities(t *vdpau.Table) Capabilities {
	return Capabilities{
		Output:       t,
		Bitmap:       t,
		Video:        t,
		Mixer:        t,
		Presentation: t,
		Decoders:     t,
		Device:       t,
	}
}

// withDefaults replaces every missing capability with Unsupported.
func (c Capabilities) withDefaults() Capabilities {
	var u Unsupported
	if c.Output == nil {
		c.Output = u
	}
	if c.Bitmap == nil {
		c.Bitmap = u
	}
	if c.Video == nil {
		c.Video = u
	}
	if c.Mixer == nil {
		c.Mixer = u
	}
	if c.Presentation == nil {
		c.Presentation = u
	}
	if c.Decoders == nil {
		c.Decoders = u
	}
	if c.Device == nil {
		c.Device = u
	}
	return c
}

// Unsupported implements every capability by failing with
// vdpau.StatusInvalidPointer.
type Unsupported struct{}

const errUnsupported = vdpau.StatusInvalidPointer

func (Unsupported) OutputSurfaceCreate(vdpau.RGBAFormat, uint32, uint32) (vdpau.OutputSurface, error) {
	return vdpau.InvalidHandle, errUnsupported
}
func (Unsupported) OutputSurfaceDestroy(vdpau.OutputSurface) error { return errUnsupported }
func (Unsupported) OutputSurfaceGetBitsNative(vdpau.OutputSurface, *vdpau.Rect, []byte, uint32) error {
	return errUnsupported
}
func (Unsupported) OutputSurfaceQueryRGBACapabilities(vdpau.RGBAFormat) (bool, error) {
	return false, errUnsupported
}
func (Unsupported) OutputSurfaceRenderBitmapSurface(vdpau.OutputSurface, *vdpau.Rect, vdpau.BitmapSurface, *vdpau.Rect, *vdpau.Color, *vdpau.BlendState, vdpau.RenderFlags) error {
	return errUnsupported
}

func (Unsupported) BitmapSurfaceCreate(vdpau.RGBAFormat, uint32, uint32, bool) (vdpau.BitmapSurface, error) {
	return vdpau.InvalidHandle, errUnsupported
}
func (Unsupported) BitmapSurfaceDestroy(vdpau.BitmapSurface) error { return errUnsupported }
func (Unsupported) BitmapSurfacePutBitsNative(vdpau.BitmapSurface, []byte, uint32, *vdpau.Rect) error {
	return errUnsupported
}

func (Unsupported) VideoSurfaceCreate(vdpau.ChromaType, uint32, uint32) (vdpau.VideoSurface, error) {
	return vdpau.InvalidHandle, errUnsupported
}
func (Unsupported) VideoSurfaceDestroy(vdpau.VideoSurface) error { return errUnsupported }
func (Unsupported) VideoSurfaceGetBitsYCbCr(vdpau.VideoSurface, vdpau.YCbCrFormat, [][]byte, []uint32) error {
	return errUnsupported
}
func (Unsupported) VideoSurfacePutBitsYCbCr(vdpau.VideoSurface, vdpau.YCbCrFormat, [][]byte, []uint32) error {
	return errUnsupported
}
func (Unsupported) VideoSurfaceQueryYCbCrCapabilities(vdpau.ChromaType, vdpau.YCbCrFormat) (bool, error) {
	return false, errUnsupported
}

func (Unsupported) VideoMixerCreate(uint32, uint32, vdpau.ChromaType) (vdpau.VideoMixer, error) {
	return vdpau.InvalidHandle, errUnsupported
}
func (Unsupported) VideoMixerDestroy(vdpau.VideoMixer) error { return errUnsupported }
func (Unsupported) VideoMixerRender(vdpau.VideoMixer, *vdpau.MixerRender) error {
	return errUnsupported
}

func (Unsupported) PresentationQueueTargetCreateX11(Drawable) (vdpau.PresentationQueueTarget, error) {
	return vdpau.InvalidHandle, errUnsupported
}
func (Unsupported) PresentationQueueTargetDestroy(vdpau.PresentationQueueTarget) error {
	return errUnsupported
}
func (Unsupported) PresentationQueueCreate(vdpau.PresentationQueueTarget) (vdpau.PresentationQueue, error) {
	return vdpau.InvalidHandle, errUnsupported
}
func (Unsupported) PresentationQueueDestroy(vdpau.PresentationQueue) error { return errUnsupported }
func (Unsupported) PresentationQueueDisplay(vdpau.PresentationQueue, vdpau.OutputSurface, uint32, uint32, vdpau.Time) error {
	return errUnsupported
}
func (Unsupported) PresentationQueueBlockUntilSurfaceIdle(vdpau.PresentationQueue, vdpau.OutputSurface) (vdpau.Time, error) {
	return 0, errUnsupported
}
func (Unsupported) PresentationQueueQuerySurfaceStatus(vdpau.PresentationQueue, vdpau.OutputSurface) (vdpau.PresentationQueueStatus, vdpau.Time, error) {
	return vdpau.QueueStatusIdle, 0, errUnsupported
}

func (Unsupported) DecoderQueryCapabilities(vdpau.DecoderProfile) (vdpau.DecoderCapabilities, error) {
	return vdpau.DecoderCapabilities{}, errUnsupported
}
func (Unsupported) DecoderCreate(vdpau.DecoderProfile, uint32, uint32, uint32) (vdpau.Decoder, error) {
	return vdpau.InvalidHandle, errUnsupported
}
func (Unsupported) DecoderDestroy(vdpau.Decoder) error { return errUnsupported }
func (Unsupported) DecoderRender(vdpau.Decoder, vdpau.VideoSurface, vdpau.PictureInfo, [][]byte) error {
	return errUnsupported
}

func (Unsupported) APIVersion() (uint32, error)        { return 0, errUnsupported }
func (Unsupported) InformationString() (string, error) { return "", errUnsupported }
func (Unsupported) ErrorString(s vdpau.Status) string  { return s.String() }
func (Unsupported) DeviceDestroy() error               { return errUnsupported }
