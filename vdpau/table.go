//go:build !ios && !android && (amd64 || arm64)

package vdpau

import (
	"runtime"
	"unsafe"

	"github.com/obinnaokechukwu/vdpva/internal/x11"
)

// Table holds a device and the entry points resolved for it.
// A nil Table, or a Table whose entry point was not resolved, answers
// every call with StatusInvalidPointer.
type Table struct {
	Device Device

	deviceDestroy        func(dev Device) Status
	getErrorString       func(s Status) string
	getAPIVersion        func(version *uint32) Status
	getInformationString func(info **byte) Status
	preemptionRegister   func(dev Device, cb uintptr, ctx uintptr) Status

	videoSurfaceQueryCaps func(dev Device, chroma ChromaType, format YCbCrFormat, supported *int32) Status
	videoSurfaceCreate    func(dev Device, chroma ChromaType, w, h uint32, s *VideoSurface) Status
	videoSurfaceDestroy   func(s VideoSurface) Status
	videoSurfaceGetBits   func(s VideoSurface, format YCbCrFormat, data *unsafe.Pointer, pitches *uint32) Status
	videoSurfacePutBits   func(s VideoSurface, format YCbCrFormat, data *unsafe.Pointer, pitches *uint32) Status

	outputSurfaceQueryCaps     func(dev Device, format RGBAFormat, supported *int32) Status
	outputSurfaceCreate        func(dev Device, format RGBAFormat, w, h uint32, s *OutputSurface) Status
	outputSurfaceDestroy       func(s OutputSurface) Status
	outputSurfaceGetBitsNative func(s OutputSurface, src *Rect, data *unsafe.Pointer, pitches *uint32) Status
	outputSurfaceRenderBitmap  func(dst OutputSurface, dstRect *Rect, src BitmapSurface, srcRect *Rect, colors *Color, blend *BlendState, flags RenderFlags) Status

	bitmapSurfaceCreate        func(dev Device, format RGBAFormat, w, h uint32, frequentlyAccessed int32, s *BitmapSurface) Status
	bitmapSurfaceDestroy       func(s BitmapSurface) Status
	bitmapSurfacePutBitsNative func(s BitmapSurface, data *unsafe.Pointer, pitches *uint32, dst *Rect) Status

	decoderQueryCaps func(dev Device, profile DecoderProfile, supported *int32, maxLevel, maxMacroblocks, maxWidth, maxHeight *uint32) Status
	decoderCreate    func(dev Device, profile DecoderProfile, w, h, maxRefs uint32, d *Decoder) Status
	decoderDestroy   func(d Decoder) Status
	decoderRender    func(d Decoder, target VideoSurface, info unsafe.Pointer, count uint32, buffers *bitstreamBuffer) Status

	videoMixerCreate  func(dev Device, featureCount uint32, features *uint32, paramCount uint32, params *uint32, values *unsafe.Pointer, m *VideoMixer) Status
	videoMixerDestroy func(m VideoMixer) Status
	videoMixerRender  func(m VideoMixer, bg OutputSurface, bgRect *Rect, structure PictureStructure, pastCount uint32, past *VideoSurface, current VideoSurface, futureCount uint32, future *VideoSurface, srcRect *Rect, dst OutputSurface, dstRect *Rect, dstVideoRect *Rect, layerCount uint32, layers unsafe.Pointer) Status

	targetCreateX11 func(dev Device, drawable x11.Drawable, target *PresentationQueueTarget) Status
	targetDestroy   func(target PresentationQueueTarget) Status

	queueCreate        func(dev Device, target PresentationQueueTarget, q *PresentationQueue) Status
	queueDestroy       func(q PresentationQueue) Status
	queueGetTime       func(q PresentationQueue, t *Time) Status
	queueDisplay       func(q PresentationQueue, s OutputSurface, clipW, clipH uint32, earliest Time) Status
	queueBlockIdle     func(q PresentationQueue, s OutputSurface, first *Time) Status
	queueSurfaceStatus func(q PresentationQueue, s OutputSurface, status *PresentationQueueStatus, first *Time) Status
}

// Video mixer creation parameters.
const (
	mixerParameterVideoSurfaceWidth  uint32 = 0
	mixerParameterVideoSurfaceHeight uint32 = 1
	mixerParameterChromaType         uint32 = 2
)

// MixerRender describes one VideoMixerRender call. Nil rectangles select
// the whole surface. Layers are not supported.
type MixerRender struct {
	Background     OutputSurface
	BackgroundRect *Rect
	Structure      PictureStructure
	Past           []VideoSurface
	Current        VideoSurface
	Future         []VideoSurface
	SourceRect     *Rect
	Destination    OutputSurface
	// DestinationRect is the region of Destination written at all;
	// DestinationVideoRect is where the video lands inside it.
	DestinationRect      *Rect
	DestinationVideoRect *Rect
}

func first[T any](s []T) *T {
	if len(s) == 0 {
		return nil
	}
	return &s[0]
}

func boolArg(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

// planes builds the pointer array VDPAU expects for plane data and pins
// each plane for the duration of the call.
func planes(p *runtime.Pinner, data [][]byte) []unsafe.Pointer {
	ptrs := make([]unsafe.Pointer, len(data))
	for i, d := range data {
		if len(d) == 0 {
			continue
		}
		p.Pin(&d[0])
		ptrs[i] = unsafe.Pointer(&d[0])
	}
	return ptrs
}

// goString converts a C string to a Go string.
func goString(ptr *byte) string {
	if ptr == nil {
		return ""
	}
	var buf []byte
	for i := uintptr(0); ; i++ {
		b := *(*byte)(unsafe.Add(unsafe.Pointer(ptr), i))
		if b == 0 {
			break
		}
		buf = append(buf, b)
	}
	return string(buf)
}

// DeviceDestroy destroys the device. All objects created on it must be
// destroyed first.
func (t *Table) DeviceDestroy() error {
	if t == nil || t.deviceDestroy == nil {
		return StatusInvalidPointer
	}
	return t.deviceDestroy(t.Device).Err()
}

// ErrorString returns the implementation's description of s, falling back
// to s.String when the entry point is missing.
func (t *Table) ErrorString(s Status) string {
	if t == nil || t.getErrorString == nil {
		return s.String()
	}
	if msg := t.getErrorString(s); msg != "" {
		return msg
	}
	return s.String()
}

// APIVersion returns VDPAU's API version.
func (t *Table) APIVersion() (uint32, error) {
	if t == nil || t.getAPIVersion == nil {
		return 0, StatusInvalidPointer
	}
	var v uint32
	if err := t.getAPIVersion(&v).Err(); err != nil {
		return 0, err
	}
	return v, nil
}

// InformationString returns the implementation's description string.
func (t *Table) InformationString() (string, error) {
	if t == nil || t.getInformationString == nil {
		return "", StatusInvalidPointer
	}
	var info *byte
	if err := t.getInformationString(&info).Err(); err != nil {
		return "", err
	}
	return goString(info), nil
}

// RegisterPreemptionCallback installs a C callback invoked when the
// device is preempted. cb must come from purego.NewCallback.
func (t *Table) RegisterPreemptionCallback(cb, ctx uintptr) error {
	if t == nil || t.preemptionRegister == nil {
		return StatusInvalidPointer
	}
	return t.preemptionRegister(t.Device, cb, ctx).Err()
}

// VideoSurfaceQueryYCbCrCapabilities reports whether surfaces of the given
// chroma type accept get/put bits in format.
func (t *Table) VideoSurfaceQueryYCbCrCapabilities(chroma ChromaType, format YCbCrFormat) (bool, error) {
	if t == nil || t.videoSurfaceQueryCaps == nil {
		return false, StatusInvalidPointer
	}
	var ok int32
	if err := t.videoSurfaceQueryCaps(t.Device, chroma, format, &ok).Err(); err != nil {
		return false, err
	}
	return ok != 0, nil
}

// VideoSurfaceCreate creates a video surface of the given chroma type and size.
func (t *Table) VideoSurfaceCreate(chroma ChromaType, width, height uint32) (VideoSurface, error) {
	if t == nil || t.videoSurfaceCreate == nil {
		return InvalidHandle, StatusInvalidPointer
	}
	s := VideoSurface(InvalidHandle)
	if err := t.videoSurfaceCreate(t.Device, chroma, width, height, &s).Err(); err != nil {
		return InvalidHandle, err
	}
	return s, nil
}

// VideoSurfaceDestroy destroys a video surface.
func (t *Table) VideoSurfaceDestroy(s VideoSurface) error {
	if t == nil || t.videoSurfaceDestroy == nil {
		return StatusInvalidPointer
	}
	return t.videoSurfaceDestroy(s).Err()
}

// VideoSurfaceGetBitsYCbCr copies the surface into data, one slice per
// plane with the matching pitch.
func (t *Table) VideoSurfaceGetBitsYCbCr(s VideoSurface, format YCbCrFormat, data [][]byte, pitches []uint32) error {
	if t == nil || t.videoSurfaceGetBits == nil {
		return StatusInvalidPointer
	}
	var pin runtime.Pinner
	defer pin.Unpin()
	ptrs := planes(&pin, data)
	return t.videoSurfaceGetBits(s, format, first(ptrs), first(pitches)).Err()
}

// VideoSurfacePutBitsYCbCr uploads planar or packed YCbCr data.
func (t *Table) VideoSurfacePutBitsYCbCr(s VideoSurface, format YCbCrFormat, data [][]byte, pitches []uint32) error {
	if t == nil || t.videoSurfacePutBits == nil {
		return StatusInvalidPointer
	}
	var pin runtime.Pinner
	defer pin.Unpin()
	ptrs := planes(&pin, data)
	return t.videoSurfacePutBits(s, format, first(ptrs), first(pitches)).Err()
}

// OutputSurfaceQueryRGBACapabilities reports whether output surfaces of
// format support native get/put bits.
func (t *Table) OutputSurfaceQueryRGBACapabilities(format RGBAFormat) (bool, error) {
	if t == nil || t.outputSurfaceQueryCaps == nil {
		return false, StatusInvalidPointer
	}
	var ok int32
	if err := t.outputSurfaceQueryCaps(t.Device, format, &ok).Err(); err != nil {
		return false, err
	}
	return ok != 0, nil
}

// OutputSurfaceCreate creates an output surface of the given format and size.
func (t *Table) OutputSurfaceCreate(format RGBAFormat, width, height uint32) (OutputSurface, error) {
	if t == nil || t.outputSurfaceCreate == nil {
		return InvalidHandle, StatusInvalidPointer
	}
	s := OutputSurface(InvalidHandle)
	if err := t.outputSurfaceCreate(t.Device, format, width, height, &s).Err(); err != nil {
		return InvalidHandle, err
	}
	return s, nil
}

// OutputSurfaceDestroy destroys an output surface.
func (t *Table) OutputSurfaceDestroy(s OutputSurface) error {
	if t == nil || t.outputSurfaceDestroy == nil {
		return StatusInvalidPointer
	}
	return t.outputSurfaceDestroy(s).Err()
}

// OutputSurfaceGetBitsNative reads back src (the whole surface when nil)
// into data using the surface's native format.
func (t *Table) OutputSurfaceGetBitsNative(s OutputSurface, src *Rect, data []byte, pitch uint32) error {
	if t == nil || t.outputSurfaceGetBitsNative == nil {
		return StatusInvalidPointer
	}
	var pin runtime.Pinner
	defer pin.Unpin()
	ptrs := planes(&pin, [][]byte{data})
	return t.outputSurfaceGetBitsNative(s, src, first(ptrs), &pitch).Err()
}

// OutputSurfaceRenderBitmapSurface blends src onto dst. A nil colors
// pointer means opaque white; a nil blend state means plain copy.
func (t *Table) OutputSurfaceRenderBitmapSurface(dst OutputSurface, dstRect *Rect, src BitmapSurface, srcRect *Rect, colors *Color, blend *BlendState, flags RenderFlags) error {
	if t == nil || t.outputSurfaceRenderBitmap == nil {
		return StatusInvalidPointer
	}
	return t.outputSurfaceRenderBitmap(dst, dstRect, src, srcRect, colors, blend, flags).Err()
}

// BitmapSurfaceCreate creates a bitmap surface. frequentlyAccessed hints
// that the surface is uploaded often.
func (t *Table) BitmapSurfaceCreate(format RGBAFormat, width, height uint32, frequentlyAccessed bool) (BitmapSurface, error) {
	if t == nil || t.bitmapSurfaceCreate == nil {
		return InvalidHandle, StatusInvalidPointer
	}
	s := BitmapSurface(InvalidHandle)
	if err := t.bitmapSurfaceCreate(t.Device, format, width, height, boolArg(frequentlyAccessed), &s).Err(); err != nil {
		return InvalidHandle, err
	}
	return s, nil
}

// BitmapSurfaceDestroy destroys a bitmap surface.
func (t *Table) BitmapSurfaceDestroy(s BitmapSurface) error {
	if t == nil || t.bitmapSurfaceDestroy == nil {
		return StatusInvalidPointer
	}
	return t.bitmapSurfaceDestroy(s).Err()
}

// BitmapSurfacePutBitsNative uploads data into dst (the whole surface when
// nil).
func (t *Table) BitmapSurfacePutBitsNative(s BitmapSurface, data []byte, pitch uint32, dst *Rect) error {
	if t == nil || t.bitmapSurfacePutBitsNative == nil {
		return StatusInvalidPointer
	}
	var pin runtime.Pinner
	defer pin.Unpin()
	ptrs := planes(&pin, [][]byte{data})
	return t.bitmapSurfacePutBitsNative(s, first(ptrs), &pitch, dst).Err()
}

// DecoderQueryCapabilities reports whether profile is supported and its limits.
func (t *Table) DecoderQueryCapabilities(profile DecoderProfile) (DecoderCapabilities, error) {
	if t == nil || t.decoderQueryCaps == nil {
		return DecoderCapabilities{}, StatusInvalidPointer
	}
	var (
		ok   int32
		caps DecoderCapabilities
	)
	err := t.decoderQueryCaps(t.Device, profile, &ok, &caps.MaxLevel, &caps.MaxMacroblocks, &caps.MaxWidth, &caps.MaxHeight).Err()
	if err != nil {
		return DecoderCapabilities{}, err
	}
	caps.Supported = ok != 0
	return caps, nil
}

// DecoderCreate creates a decoder for profile at the given size.
func (t *Table) DecoderCreate(profile DecoderProfile, width, height, maxReferences uint32) (Decoder, error) {
	if t == nil || t.decoderCreate == nil {
		return InvalidHandle, StatusInvalidPointer
	}
	d := Decoder(InvalidHandle)
	if err := t.decoderCreate(t.Device, profile, width, height, maxReferences, &d).Err(); err != nil {
		return InvalidHandle, err
	}
	return d, nil
}

// DecoderDestroy destroys a decoder.
func (t *Table) DecoderDestroy(d Decoder) error {
	if t == nil || t.decoderDestroy == nil {
		return StatusInvalidPointer
	}
	return t.decoderDestroy(d).Err()
}

// DecoderRender decodes one picture into target from the given slice data.
func (t *Table) DecoderRender(d Decoder, target VideoSurface, info PictureInfo, bitstream [][]byte) error {
	if t == nil || t.decoderRender == nil {
		return StatusInvalidPointer
	}
	if info == nil {
		return StatusInvalidPointer
	}
	var pin runtime.Pinner
	defer pin.Unpin()
	buffers := make([]bitstreamBuffer, 0, len(bitstream))
	for _, b := range bitstream {
		if len(b) == 0 {
			continue
		}
		pin.Pin(&b[0])
		buffers = append(buffers, bitstreamBuffer{
			structVersion: BitstreamBufferVersion,
			bitstream:     unsafe.Pointer(&b[0]),
			bytes:         uint32(len(b)),
		})
	}
	return t.decoderRender(d, target, info.pointer(), uint32(len(buffers)), first(buffers)).Err()
}

// VideoMixerCreate creates a mixer without optional features for video
// surfaces of the given size and chroma type.
func (t *Table) VideoMixerCreate(width, height uint32, chroma ChromaType) (VideoMixer, error) {
	if t == nil || t.videoMixerCreate == nil {
		return InvalidHandle, StatusInvalidPointer
	}
	params := []uint32{
		mixerParameterVideoSurfaceWidth,
		mixerParameterVideoSurfaceHeight,
		mixerParameterChromaType,
	}
	values := []unsafe.Pointer{
		unsafe.Pointer(&width),
		unsafe.Pointer(&height),
		unsafe.Pointer(&chroma),
	}
	var pin runtime.Pinner
	defer pin.Unpin()
	pin.Pin(&width)
	pin.Pin(&height)
	pin.Pin(&chroma)

	m := VideoMixer(InvalidHandle)
	err := t.videoMixerCreate(t.Device, 0, nil, uint32(len(params)), first(params), first(values), &m).Err()
	if err != nil {
		return InvalidHandle, err
	}
	return m, nil
}

// VideoMixerDestroy destroys a video mixer.
func (t *Table) VideoMixerDestroy(m VideoMixer) error {
	if t == nil || t.videoMixerDestroy == nil {
		return StatusInvalidPointer
	}
	return t.videoMixerDestroy(m).Err()
}

// VideoMixerRender renders r.Current into r.Destination.
func (t *Table) VideoMixerRender(m VideoMixer, r *MixerRender) error {
	if t == nil || t.videoMixerRender == nil || r == nil {
		return StatusInvalidPointer
	}
	return t.videoMixerRender(m,
		r.Background, r.BackgroundRect,
		r.Structure,
		uint32(len(r.Past)), first(r.Past),
		r.Current,
		uint32(len(r.Future)), first(r.Future),
		r.SourceRect,
		r.Destination, r.DestinationRect, r.DestinationVideoRect,
		0, nil,
	).Err()
}

// PresentationQueueTargetCreateX11 creates a presentation target for an
// X11 drawable.
func (t *Table) PresentationQueueTargetCreateX11(d x11.Drawable) (PresentationQueueTarget, error) {
	if t == nil || t.targetCreateX11 == nil {
		return InvalidHandle, StatusInvalidPointer
	}
	target := PresentationQueueTarget(InvalidHandle)
	if err := t.targetCreateX11(t.Device, d, &target).Err(); err != nil {
		return InvalidHandle, err
	}
	return target, nil
}

// PresentationQueueTargetDestroy destroys a presentation target.
func (t *Table) PresentationQueueTargetDestroy(target PresentationQueueTarget) error {
	if t == nil || t.targetDestroy == nil {
		return StatusInvalidPointer
	}
	return t.targetDestroy(target).Err()
}

// PresentationQueueCreate creates a presentation queue on target.
func (t *Table) PresentationQueueCreate(target PresentationQueueTarget) (PresentationQueue, error) {
	if t == nil || t.queueCreate == nil {
		return InvalidHandle, StatusInvalidPointer
	}
	q := PresentationQueue(InvalidHandle)
	if err := t.queueCreate(t.Device, target, &q).Err(); err != nil {
		return InvalidHandle, err
	}
	return q, nil
}

// PresentationQueueDestroy destroys a presentation queue.
func (t *Table) PresentationQueueDestroy(q PresentationQueue) error {
	if t == nil || t.queueDestroy == nil {
		return StatusInvalidPointer
	}
	return t.queueDestroy(q).Err()
}

// PresentationQueueGetTime returns the queue's current time.
func (t *Table) PresentationQueueGetTime(q PresentationQueue) (Time, error) {
	if t == nil || t.queueGetTime == nil {
		return 0, StatusInvalidPointer
	}
	var now Time
	if err := t.queueGetTime(q, &now).Err(); err != nil {
		return 0, err
	}
	return now, nil
}

// PresentationQueueDisplay enqueues s for display no earlier than
// earliest. A clip size of 0 uses the surface size; earliest 0 means as
// soon as possible.
func (t *Table) PresentationQueueDisplay(q PresentationQueue, s OutputSurface, clipWidth, clipHeight uint32, earliest Time) error {
	if t == nil || t.queueDisplay == nil {
		return StatusInvalidPointer
	}
	return t.queueDisplay(q, s, clipWidth, clipHeight, earliest).Err()
}

// PresentationQueueBlockUntilSurfaceIdle waits until s is no longer queued
// or visible and returns the time it was first presented.
func (t *Table) PresentationQueueBlockUntilSurfaceIdle(q PresentationQueue, s OutputSurface) (Time, error) {
	if t == nil || t.queueBlockIdle == nil {
		return 0, StatusInvalidPointer
	}
	var firstShown Time
	if err := t.queueBlockIdle(q, s, &firstShown).Err(); err != nil {
		return 0, err
	}
	return firstShown, nil
}

// PresentationQueueQuerySurfaceStatus reports whether s is idle, queued or
// visible, and when it was first presented.
func (t *Table) PresentationQueueQuerySurfaceStatus(q PresentationQueue, s OutputSurface) (PresentationQueueStatus, Time, error) {
	if t == nil || t.queueSurfaceStatus == nil {
		return QueueStatusIdle, 0, StatusInvalidPointer
	}
	var (
		status     PresentationQueueStatus
		firstShown Time
	)
	if err := t.queueSurfaceStatus(q, s, &status, &firstShown).Err(); err != nil {
		return QueueStatusIdle, 0, err
	}
	return status, firstShown, nil
}
