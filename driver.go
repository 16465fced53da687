//go:build !ios && !android && (amd64 || arm64)

package vdpva

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/gogpu/gputypes"
	"github.com/google/uuid"
	"github.com/obinnaokechukwu/vdpva/internal/bindings"
	"github.com/obinnaokechukwu/vdpva/internal/handles"
	"github.com/obinnaokechukwu/vdpva/internal/x11"
	"github.com/obinnaokechukwu/vdpva/vdpau"
)

// Object IDs. IDs of different kinds never collide.
type (
	SurfaceID    uint32
	ContextID    uint32
	SubpictureID uint32
	outputID     uint32
)

// InvalidID is never assigned to an object.
const InvalidID = 0xFFFFFFFF

const (
	contextIDOffset    = 0x02000000
	surfaceIDOffset    = 0x04000000
	outputIDOffset     = 0x10000000
	subpictureIDOffset = 0x40000000
)

// Driver presents decoded video through VDPAU.
//
// A Driver is not safe for concurrent use; callers serialize access.
// Only the preemption notification arrives from another thread.
type Driver struct {
	cfg     Config
	caps    Capabilities
	display Display
	id      uuid.UUID
	blend   vdpau.BlendState

	outputs     *handles.Heap[*outputPool]
	contexts    *handles.Heap[*Context]
	surfaces    *handles.Heap[*Surface]
	subpictures *handles.Heap[*Subpicture]

	preempted atomic.Bool
	closed    bool

	// Set when the driver owns the device and the display (Open).
	x                 *x11.Display
	releasePreemption func()
}

// NewDriver creates a driver over an existing capability set and display.
// Missing capabilities are replaced by Unsupported.
func NewDriver(cfg Config, caps Capabilities, display Display) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if display == nil {
		return nil, ErrNoDisplay
	}
	if cfg.Debug {
		enableDebugLogging()
	}
	blend, err := subpictureBlend()
	if err != nil {
		return nil, fmt.Errorf("vdpva: subpicture blend state: %w", err)
	}
	return &Driver{
		cfg:         cfg,
		caps:        caps.withDefaults(),
		display:     display,
		id:          uuid.New(),
		blend:       blend,
		outputs:     handles.NewHeap[*outputPool](outputIDOffset),
		contexts:    handles.NewHeap[*Context](contextIDOffset),
		surfaces:    handles.NewHeap[*Surface](surfaceIDOffset),
		subpictures: handles.NewHeap[*Subpicture](subpictureIDOffset),
	}, nil
}

// Open loads libX11 and libvdpau, connects to the configured X display and
// creates a VDPAU device on it.
func Open(cfg Config) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.LibraryPath != "" {
		bindings.SetLibraryPath(cfg.LibraryPath)
	}
	if err := bindings.Load(); err != nil {
		return nil, err
	}

	x, err := x11.Open(cfg.Display)
	if err != nil {
		return nil, errors.Join(ErrNoDisplay, err)
	}
	table, err := vdpau.CreateDeviceX11(x)
	if err != nil {
		abandonDevice(nil, x)
		return nil, wrapNative("create device", err)
	}

	d, err := NewDriver(cfg, TableCapabilities(table), x)
	if err != nil {
		abandonDevice(table, x)
		return nil, err
	}
	d.x = x

	release, err := table.OnPreemption(d.preempt)
	if err != nil {
		// Not fatal: the driver works, it only cannot notice preemption.
		d.logger().Warn("preemption callback not installed", "error", err)
	} else {
		d.releasePreemption = release
	}

	d.logger().Info("device opened",
		"display", cfg.Display,
		"output_surfaces", cfg.OutputSurfaces)
	return d, nil
}

// abandonDevice releases what Open acquired before the driver existed.
// dev may be nil when device creation itself failed.
func abandonDevice(dev DeviceInfo, display io.Closer) {
	if dev != nil {
		if err := dev.DeviceDestroy(); err != nil {
			Logger().Warn("destroy device failed", "error", err)
		}
	}
	if err := display.Close(); err != nil {
		Logger().Warn("close display failed", "error", err)
	}
}

// ID returns the identifier the driver's log records carry.
func (d *Driver) ID() uuid.UUID {
	return d.id
}

// Config returns the configuration the driver was created with.
func (d *Driver) Config() Config {
	return d.cfg
}

func (d *Driver) logger() *slog.Logger {
	return Logger().With("driver", d.id.String())
}

func (d *Driver) preempt() {
	if d.preempted.CompareAndSwap(false, true) {
		d.logger().Warn("display preempted the device")
	}
}

// Preempted reports whether the display preempted the device. A preempted
// driver must be closed and reopened.
func (d *Driver) Preempted() bool {
	return d.preempted.Load()
}

// usable fails when the driver can no longer issue device calls.
func (d *Driver) usable(op string) error {
	if d.closed {
		return &Error{Status: StatusOperationFailed, Op: op, Err: ErrClosed}
	}
	if d.preempted.Load() {
		return &Error{Status: StatusOperationFailed, Op: op, Err: ErrPreempted}
	}
	return nil
}

// nativeError maps err from the capability set and logs the device's
// description of it.
func (d *Driver) nativeError(op string, err error) error {
	if err == nil {
		return nil
	}
	if native, ok := NativeStatus(err); ok {
		d.logger().Debug("device call failed",
			"op", op,
			"status", int32(native),
			"error", d.caps.Device.ErrorString(native))
	}
	return wrapNative(op, err)
}

// Info describes the device behind a driver.
type Info struct {
	APIVersion     uint32
	Implementation string
	Vendor         string
	OutputFormat   gputypes.TextureFormat
	OutputSurfaces int
	PresentMode    gputypes.PresentMode

	// OutputReadback reports whether output surfaces can be read back,
	// which CaptureSurface needs.
	OutputReadback bool
}

// Info queries the device description.
func (d *Driver) Info() (Info, error) {
	const op = "query info"
	if err := d.usable(op); err != nil {
		return Info{}, err
	}
	version, err := d.caps.Device.APIVersion()
	if err != nil {
		return Info{}, d.nativeError(op, err)
	}
	impl, err := d.caps.Device.InformationString()
	if err != nil {
		return Info{}, d.nativeError(op, err)
	}
	format, _ := vdpau.RGBAFormatFor(OutputFormat)
	readback, err := d.caps.Output.OutputSurfaceQueryRGBACapabilities(format)
	if err != nil {
		d.logger().Debug("output readback query failed", "error", err)
	}
	return Info{
		APIVersion:     version,
		Implementation: impl,
		Vendor:         vendorString(impl),
		OutputFormat:   OutputFormat,
		OutputSurfaces: d.cfg.OutputSurfaces,
		PresentMode:    gputypes.PresentModeFifo,
		OutputReadback: readback,
	}, nil
}

func vendorString(impl string) string {
	impl = strings.TrimSpace(impl)
	if impl == "" {
		return "vdpva VDPAU backend for VA-API"
	}
	return "vdpva VDPAU backend for VA-API - " + impl
}

// Close destroys every object of the driver: contexts with their output
// surfaces, then surfaces and subpictures, then the device and display it
// opened. Closing twice has no effect.
func (d *Driver) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true

	for _, id := range d.contexts.IDs() {
		d.destroyContext(ContextID(id))
	}
	for _, id := range d.subpictures.IDs() {
		d.destroySubpicture(SubpictureID(id))
	}
	for _, id := range d.surfaces.IDs() {
		d.destroySurface(SurfaceID(id))
	}
	for _, id := range d.outputs.IDs() {
		d.destroyOutputSurface(outputID(id))
	}

	if d.releasePreemption != nil {
		d.releasePreemption()
		d.releasePreemption = nil
	}

	var err error
	if d.x != nil {
		err = wrapNative("destroy device", d.caps.Device.DeviceDestroy())
		d.x.Close()
		d.x = nil
		d.logger().Info("device closed")
	}
	return err
}
