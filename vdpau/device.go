//go:build !ios && !android && (amd64 || arm64)

package vdpau

import (
	"fmt"
	"sync"

	"github.com/ebitengine/purego"
	"github.com/obinnaokechukwu/vdpva/internal/bindings"
	"github.com/obinnaokechukwu/vdpva/internal/handles"
	"github.com/obinnaokechukwu/vdpva/internal/x11"
)

var (
	vdpDeviceCreateX11 func(dpy uintptr, screen int32, dev *Device, getProcAddress *uintptr) Status

	createOnce sync.Once
	createErr  error
)

func registerDeviceCreate() error {
	createOnce.Do(func() {
		if err := bindings.Load(); err != nil {
			createErr = err
			return
		}
		purego.RegisterLibFunc(&vdpDeviceCreateX11, bindings.LibVDPAU(), "vdp_device_create_x11")
	})
	return createErr
}

// CreateDeviceX11 creates a VDPAU device on the display's default screen
// and resolves its entry points. Entry points the implementation does not
// provide are left unresolved.
func CreateDeviceX11(dpy *x11.Display) (*Table, error) {
	if err := registerDeviceCreate(); err != nil {
		return nil, err
	}
	if dpy == nil || dpy.Ptr() == 0 {
		return nil, StatusInvalidPointer
	}

	var (
		dev Device
		gpa uintptr
	)
	if st := vdpDeviceCreateX11(dpy.Ptr(), int32(dpy.Screen()), &dev, &gpa); st != StatusOK {
		return nil, fmt.Errorf("vdp_device_create_x11: %w", st)
	}
	if gpa == 0 {
		return nil, fmt.Errorf("vdp_device_create_x11: %w", StatusInvalidPointer)
	}

	var getProcAddress func(dev Device, id FuncID, fn *uintptr) Status
	purego.RegisterFunc(&getProcAddress, gpa)

	t := &Table{Device: dev}
	resolve := func(id FuncID, fptr any) {
		var fn uintptr
		if getProcAddress(dev, id, &fn) != StatusOK || fn == 0 {
			return
		}
		purego.RegisterFunc(fptr, fn)
	}

	resolve(FuncDeviceDestroy, &t.deviceDestroy)
	resolve(FuncGetErrorString, &t.getErrorString)
	resolve(FuncGetAPIVersion, &t.getAPIVersion)
	resolve(FuncGetInformationString, &t.getInformationString)
	resolve(FuncPreemptionCallbackRegister, &t.preemptionRegister)

	resolve(FuncVideoSurfaceQueryGetPutBitsYCbCrCapabilities, &t.videoSurfaceQueryCaps)
	resolve(FuncVideoSurfaceCreate, &t.videoSurfaceCreate)
	resolve(FuncVideoSurfaceDestroy, &t.videoSurfaceDestroy)
	resolve(FuncVideoSurfaceGetBitsYCbCr, &t.videoSurfaceGetBits)
	resolve(FuncVideoSurfacePutBitsYCbCr, &t.videoSurfacePutBits)

	resolve(FuncOutputSurfaceQueryGetPutBitsNativeCapabilities, &t.outputSurfaceQueryCaps)
	resolve(FuncOutputSurfaceCreate, &t.outputSurfaceCreate)
	resolve(FuncOutputSurfaceDestroy, &t.outputSurfaceDestroy)
	resolve(FuncOutputSurfaceGetBitsNative, &t.outputSurfaceGetBitsNative)
	resolve(FuncOutputSurfaceRenderBitmapSurface, &t.outputSurfaceRenderBitmap)

	resolve(FuncBitmapSurfaceCreate, &t.bitmapSurfaceCreate)
	resolve(FuncBitmapSurfaceDestroy, &t.bitmapSurfaceDestroy)
	resolve(FuncBitmapSurfacePutBitsNative, &t.bitmapSurfacePutBitsNative)

	resolve(FuncDecoderQueryCapabilities, &t.decoderQueryCaps)
	resolve(FuncDecoderCreate, &t.decoderCreate)
	resolve(FuncDecoderDestroy, &t.decoderDestroy)
	resolve(FuncDecoderRender, &t.decoderRender)

	resolve(FuncVideoMixerCreate, &t.videoMixerCreate)
	resolve(FuncVideoMixerDestroy, &t.videoMixerDestroy)
	resolve(FuncVideoMixerRender, &t.videoMixerRender)

	resolve(FuncPresentationQueueTargetCreateX11, &t.targetCreateX11)
	resolve(FuncPresentationQueueTargetDestroy, &t.targetDestroy)
	resolve(FuncPresentationQueueCreate, &t.queueCreate)
	resolve(FuncPresentationQueueDestroy, &t.queueDestroy)
	resolve(FuncPresentationQueueGetTime, &t.queueGetTime)
	resolve(FuncPresentationQueueDisplay, &t.queueDisplay)
	resolve(FuncPresentationQueueBlockUntilSurfaceIdle, &t.queueBlockIdle)
	resolve(FuncPresentationQueueQuerySurfaceStatus, &t.queueSurfaceStatus)

	return t, nil
}

// A single C trampoline serves every device; the context pointer selects
// the Go handler through the handle registry.
var (
	preemptionOnce     sync.Once
	preemptionCB       uintptr
	preemptionHandlers handles.Registry[func()]
)

// dispatchPreemption runs the handler registered under ctx, if any.
func dispatchPreemption(ctx uintptr) {
	if fn, ok := preemptionHandlers.Lookup(ctx); ok {
		fn()
	}
}

// OnPreemption arranges for fn to run when the display preempts the
// device. fn runs on a thread owned by the VDPAU implementation. The
// returned function releases the registration; the native callback stays
// installed and becomes a no-op.
func (t *Table) OnPreemption(fn func()) (func(), error) {
	if fn == nil {
		return nil, StatusInvalidPointer
	}
	preemptionOnce.Do(func() {
		// void (*VdpPreemptionCallback)(VdpDevice device, void *context)
		preemptionCB = purego.NewCallback(func(_ purego.CDecl, _ Device, ctx uintptr) {
			dispatchPreemption(ctx)
		})
	})

	h := preemptionHandlers.Register(fn)
	if err := t.RegisterPreemptionCallback(preemptionCB, h); err != nil {
		preemptionHandlers.Release(h)
		return nil, err
	}
	return func() { preemptionHandlers.Release(h) }, nil
}
