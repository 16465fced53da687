//go:build !ios && !android && (amd64 || arm64)

package vdpva

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/obinnaokechukwu/vdpva/internal/x11"
	"github.com/obinnaokechukwu/vdpva/vdpau"
)

// fakeDevice is an in-memory capability set that records every call.
type fakeDevice struct {
	calls  []string
	counts map[string]int

	// failOn makes the n-th call (1-based) of a method fail with
	// failStatus.
	failOn     map[string]int
	failStatus vdpau.Status

	next uint32
	live map[uint32]string

	outputSizes    [][2]uint32
	outputsCreated []vdpau.OutputSurface
	outputsFreed   []vdpau.OutputSurface
	mixerRenders   []mixerRender
	bitmapRenders  []bitmapRender
	displays       []displayCall
	idleWaits      []vdpau.OutputSurface
	bitmapUploads  int

	queueStatus vdpau.PresentationQueueStatus
}

type mixerRender struct {
	mixer     vdpau.VideoMixer
	current   vdpau.VideoSurface
	dst       vdpau.OutputSurface
	src       vdpau.Rect
	dstVideo  vdpau.Rect
	structure vdpau.PictureStructure
	bg        vdpau.OutputSurface
}

type bitmapRender struct {
	dst     vdpau.OutputSurface
	dstRect vdpau.Rect
	src     vdpau.BitmapSurface
	srcRect vdpau.Rect
	blend   vdpau.BlendState
	flags   vdpau.RenderFlags
}

type displayCall struct {
	queue        vdpau.PresentationQueue
	surface      vdpau.OutputSurface
	clipW, clipH uint32
	earliest     vdpau.Time
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{
		counts:     make(map[string]int),
		failOn:     make(map[string]int),
		failStatus: vdpau.StatusResources,
		next:       100,
		live:       make(map[uint32]string),
	}
}

// record logs a call and reports the configured failure, if any.
func (f *fakeDevice) record(name string) error {
	f.calls = append(f.calls, name)
	f.counts[name]++
	if n, ok := f.failOn[name]; ok && n == f.counts[name] {
		return f.failStatus
	}
	return nil
}

func (f *fakeDevice) alloc(kind string) uint32 {
	f.next++
	f.live[f.next] = kind
	return f.next
}

func (f *fakeDevice) release(h uint32, kind string) error {
	if f.live[h] != kind {
		return vdpau.StatusInvalidHandle
	}
	delete(f.live, h)
	return nil
}

func (f *fakeDevice) liveCount(kind string) int {
	n := 0
	for _, k := range f.live {
		if k == kind {
			n++
		}
	}
	return n
}

// callsSince returns the calls made after the first n.
func (f *fakeDevice) callsSince(n int) []string {
	return append([]string(nil), f.calls[n:]...)
}

func (f *fakeDevice) OutputSurfaceCreate(format vdpau.RGBAFormat, w, h uint32) (vdpau.OutputSurface, error) {
	if err := f.record("OutputSurfaceCreate"); err != nil {
		return vdpau.InvalidHandle, err
	}
	s := vdpau.OutputSurface(f.alloc("output"))
	f.outputSizes = append(f.outputSizes, [2]uint32{w, h})
	f.outputsCreated = append(f.outputsCreated, s)
	return s, nil
}

func (f *fakeDevice) OutputSurfaceDestroy(s vdpau.OutputSurface) error {
	if err := f.record("OutputSurfaceDestroy"); err != nil {
		return err
	}
	f.outputsFreed = append(f.outputsFreed, s)
	return f.release(uint32(s), "output")
}

func (f *fakeDevice) OutputSurfaceGetBitsNative(s vdpau.OutputSurface, src *vdpau.Rect, data []byte, pitch uint32) error {
	if err := f.record("OutputSurfaceGetBitsNative"); err != nil {
		return err
	}
	for i := range data {
		data[i] = 0xAB
	}
	return nil
}

func (f *fakeDevice) OutputSurfaceQueryRGBACapabilities(vdpau.RGBAFormat) (bool, error) {
	return true, f.record("OutputSurfaceQueryRGBACapabilities")
}

func (f *fakeDevice) OutputSurfaceRenderBitmapSurface(dst vdpau.OutputSurface, dstRect *vdpau.Rect, src vdpau.BitmapSurface, srcRect *vdpau.Rect, colors *vdpau.Color, blend *vdpau.BlendState, flags vdpau.RenderFlags) error {
	if err := f.record("OutputSurfaceRenderBitmapSurface"); err != nil {
		return err
	}
	f.bitmapRenders = append(f.bitmapRenders, bitmapRender{
		dst: dst, dstRect: *dstRect, src: src, srcRect: *srcRect, blend: *blend, flags: flags,
	})
	return nil
}

func (f *fakeDevice) BitmapSurfaceCreate(vdpau.RGBAFormat, uint32, uint32, bool) (vdpau.BitmapSurface, error) {
	if err := f.record("BitmapSurfaceCreate"); err != nil {
		return vdpau.InvalidHandle, err
	}
	return vdpau.BitmapSurface(f.alloc("bitmap")), nil
}

func (f *fakeDevice) BitmapSurfaceDestroy(s vdpau.BitmapSurface) error {
	if err := f.record("BitmapSurfaceDestroy"); err != nil {
		return err
	}
	return f.release(uint32(s), "bitmap")
}

func (f *fakeDevice) BitmapSurfacePutBitsNative(vdpau.BitmapSurface, []byte, uint32, *vdpau.Rect) error {
	if err := f.record("BitmapSurfacePutBitsNative"); err != nil {
		return err
	}
	f.bitmapUploads++
	return nil
}

func (f *fakeDevice) VideoSurfaceCreate(vdpau.ChromaType, uint32, uint32) (vdpau.VideoSurface, error) {
	if err := f.record("VideoSurfaceCreate"); err != nil {
		return vdpau.InvalidHandle, err
	}
	return vdpau.VideoSurface(f.alloc("video")), nil
}

func (f *fakeDevice) VideoSurfaceDestroy(s vdpau.VideoSurface) error {
	if err := f.record("VideoSurfaceDestroy"); err != nil {
		return err
	}
	return f.release(uint32(s), "video")
}

func (f *fakeDevice) VideoSurfaceGetBitsYCbCr(vdpau.VideoSurface, vdpau.YCbCrFormat, [][]byte, []uint32) error {
	return f.record("VideoSurfaceGetBitsYCbCr")
}

func (f *fakeDevice) VideoSurfacePutBitsYCbCr(vdpau.VideoSurface, vdpau.YCbCrFormat, [][]byte, []uint32) error {
	return f.record("VideoSurfacePutBitsYCbCr")
}

func (f *fakeDevice) VideoSurfaceQueryYCbCrCapabilities(vdpau.ChromaType, vdpau.YCbCrFormat) (bool, error) {
	return true, f.record("VideoSurfaceQueryYCbCrCapabilities")
}

func (f *fakeDevice) VideoMixerCreate(uint32, uint32, vdpau.ChromaType) (vdpau.VideoMixer, error) {
	if err := f.record("VideoMixerCreate"); err != nil {
		return vdpau.InvalidHandle, err
	}
	return vdpau.VideoMixer(f.alloc("mixer")), nil
}

func (f *fakeDevice) VideoMixerDestroy(m vdpau.VideoMixer) error {
	if err := f.record("VideoMixerDestroy"); err != nil {
		return err
	}
	return f.release(uint32(m), "mixer")
}

func (f *fakeDevice) VideoMixerRender(m vdpau.VideoMixer, r *vdpau.MixerRender) error {
	if err := f.record("VideoMixerRender"); err != nil {
		return err
	}
	f.mixerRenders = append(f.mixerRenders, mixerRender{
		mixer:     m,
		current:   r.Current,
		dst:       r.Destination,
		src:       *r.SourceRect,
		dstVideo:  *r.DestinationVideoRect,
		structure: r.Structure,
		bg:        r.Background,
	})
	return nil
}

func (f *fakeDevice) PresentationQueueTargetCreateX11(Drawable) (vdpau.PresentationQueueTarget, error) {
	if err := f.record("PresentationQueueTargetCreateX11"); err != nil {
		return vdpau.InvalidHandle, err
	}
	return vdpau.PresentationQueueTarget(f.alloc("target")), nil
}

func (f *fakeDevice) PresentationQueueTargetDestroy(t vdpau.PresentationQueueTarget) error {
	if err := f.record("PresentationQueueTargetDestroy"); err != nil {
		return err
	}
	return f.release(uint32(t), "target")
}

func (f *fakeDevice) PresentationQueueCreate(vdpau.PresentationQueueTarget) (vdpau.PresentationQueue, error) {
	if err := f.record("PresentationQueueCreate"); err != nil {
		return vdpau.InvalidHandle, err
	}
	return vdpau.PresentationQueue(f.alloc("queue")), nil
}

func (f *fakeDevice) PresentationQueueDestroy(q vdpau.PresentationQueue) error {
	if err := f.record("PresentationQueueDestroy"); err != nil {
		return err
	}
	return f.release(uint32(q), "queue")
}

func (f *fakeDevice) PresentationQueueDisplay(q vdpau.PresentationQueue, s vdpau.OutputSurface, clipW, clipH uint32, earliest vdpau.Time) error {
	if err := f.record("PresentationQueueDisplay"); err != nil {
		return err
	}
	f.displays = append(f.displays, displayCall{q, s, clipW, clipH, earliest})
	return nil
}

func (f *fakeDevice) PresentationQueueBlockUntilSurfaceIdle(q vdpau.PresentationQueue, s vdpau.OutputSurface) (vdpau.Time, error) {
	if err := f.record("PresentationQueueBlockUntilSurfaceIdle"); err != nil {
		return 0, err
	}
	f.idleWaits = append(f.idleWaits, s)
	return 0, nil
}

func (f *fakeDevice) PresentationQueueQuerySurfaceStatus(vdpau.PresentationQueue, vdpau.OutputSurface) (vdpau.PresentationQueueStatus, vdpau.Time, error) {
	if err := f.record("PresentationQueueQuerySurfaceStatus"); err != nil {
		return vdpau.QueueStatusIdle, 0, err
	}
	return f.queueStatus, 0, nil
}

func (f *fakeDevice) DecoderQueryCapabilities(vdpau.DecoderProfile) (vdpau.DecoderCapabilities, error) {
	if err := f.record("DecoderQueryCapabilities"); err != nil {
		return vdpau.DecoderCapabilities{}, err
	}
	return vdpau.DecoderCapabilities{Supported: true, MaxWidth: 4096, MaxHeight: 4096}, nil
}

func (f *fakeDevice) DecoderCreate(vdpau.DecoderProfile, uint32, uint32, uint32) (vdpau.Decoder, error) {
	if err := f.record("DecoderCreate"); err != nil {
		return vdpau.InvalidHandle, err
	}
	return vdpau.Decoder(f.alloc("decoder")), nil
}

func (f *fakeDevice) DecoderDestroy(d vdpau.Decoder) error {
	if err := f.record("DecoderDestroy"); err != nil {
		return err
	}
	return f.release(uint32(d), "decoder")
}

func (f *fakeDevice) DecoderRender(vdpau.Decoder, vdpau.VideoSurface, vdpau.PictureInfo, [][]byte) error {
	return f.record("DecoderRender")
}

func (f *fakeDevice) APIVersion() (uint32, error) {
	return 1, f.record("APIVersion")
}

func (f *fakeDevice) InformationString() (string, error) {
	return "fake VDPAU 1.0", f.record("InformationString")
}

func (f *fakeDevice) ErrorString(s vdpau.Status) string {
	return "fake: " + s.String()
}

func (f *fakeDevice) DeviceDestroy() error {
	return f.record("DeviceDestroy")
}

// The fake implements exactly the presentation calls the driver makes.
var _ Presentation = (*fakeDevice)(nil)

func (f *fakeDevice) capabilities() Capabilities {
	return Capabilities{
		Output:       f,
		Bitmap:       f,
		Video:        f,
		Mixer:        f,
		Presentation: f,
		Decoders:     f,
		Device:       f,
	}
}

// fakeDisplay is a screen with a fixed size and known drawables.
type fakeDisplay struct {
	width, height int
	drawables     map[Drawable][2]int
	sizeCalls     int
	drawableCalls int
}

func newFakeDisplay(width, height int) *fakeDisplay {
	return &fakeDisplay{width: width, height: height, drawables: make(map[Drawable][2]int)}
}

func (d *fakeDisplay) Size() (int, int) {
	d.sizeCalls++
	return d.width, d.height
}

func (d *fakeDisplay) DrawableSize(dr Drawable) (int, int, error) {
	d.drawableCalls++
	sz, ok := d.drawables[dr]
	if !ok {
		return 0, 0, x11.ErrBadDrawable
	}
	return sz[0], sz[1], nil
}

// testEnv is a driver over a fake device and a 1920x1080 screen.
type testEnv struct {
	d       *Driver
	dev     *fakeDevice
	display *fakeDisplay
}

func newTestEnv(t *testing.T, mutate ...func(*Config)) *testEnv {
	t.Helper()
	cfg := DefaultConfig()
	for _, m := range mutate {
		m(&cfg)
	}
	dev := newFakeDevice()
	display := newFakeDisplay(1920, 1080)
	d, err := NewDriver(cfg, dev.capabilities(), display)
	require.NoError(t, err)
	return &testEnv{d: d, dev: dev, display: display}
}

// presentable creates one surface of the given size in a context of the
// same size.
func (e *testEnv) presentable(t *testing.T, width, height int) (SurfaceID, ContextID) {
	t.Helper()
	ids, err := e.d.CreateSurfaces(width, height, RTFormatYUV420, 1)
	require.NoError(t, err)
	ctx, err := e.d.CreateContext(ProfileNone, width, height, ids)
	require.NoError(t, err)
	return ids[0], ctx
}

// pool returns the output pool of context id.
func (e *testEnv) pool(t *testing.T, id ContextID) *outputPool {
	t.Helper()
	c, ok := e.d.contexts.Lookup(uint32(id))
	require.True(t, ok, "context %#x", id)
	o, ok := e.d.outputs.Lookup(uint32(c.output))
	require.True(t, ok, "output pool %#x", c.output)
	return o
}

func fullRect(w, h int) Rectangle {
	return Rectangle{Width: w, Height: h}
}

func (e *testEnv) String() string {
	return fmt.Sprintf("calls=%v live=%v", e.dev.calls, e.dev.live)
}
