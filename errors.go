//go:build !ios && !android && (amd64 || arm64)

package vdpva

import (
	"errors"
	"fmt"

	"github.com/obinnaokechukwu/vdpva/internal/bindings"
	"github.com/obinnaokechukwu/vdpva/vdpau"
)

// Status is a VA-API status code. Status implements error so a Status can
// be used as an errors.Is target: errors.Is(err, StatusInvalidSurface).
type Status int32

// VA-API status codes.
const (
	StatusSuccess                Status = 0x00
	StatusOperationFailed        Status = 0x01
	StatusAllocationFailed       Status = 0x02
	StatusInvalidDisplay         Status = 0x03
	StatusInvalidConfig          Status = 0x04
	StatusInvalidContext         Status = 0x05
	StatusInvalidSurface         Status = 0x06
	StatusInvalidBuffer          Status = 0x07
	StatusInvalidImage           Status = 0x08
	StatusInvalidSubpicture      Status = 0x09
	StatusAttrNotSupported       Status = 0x0a
	StatusMaxNumExceeded         Status = 0x0b
	StatusUnsupportedProfile     Status = 0x0c
	StatusUnsupportedEntrypoint  Status = 0x0d
	StatusUnsupportedRTFormat    Status = 0x0e
	StatusUnsupportedBufferType  Status = 0x0f
	StatusSurfaceBusy            Status = 0x10
	StatusFlagNotSupported       Status = 0x11
	StatusInvalidParameter       Status = 0x12
	StatusResolutionNotSupported Status = 0x13
	StatusUnimplemented          Status = 0x14
	StatusSurfaceInDisplaying    Status = 0x15
)

var statusText = map[Status]string{
	StatusSuccess:                "success",
	StatusOperationFailed:        "operation failed",
	StatusAllocationFailed:       "resource allocation failed",
	StatusInvalidDisplay:         "invalid display",
	StatusInvalidConfig:          "invalid config",
	StatusInvalidContext:         "invalid context",
	StatusInvalidSurface:         "invalid surface",
	StatusInvalidBuffer:          "invalid buffer",
	StatusInvalidImage:           "invalid image",
	StatusInvalidSubpicture:      "invalid subpicture",
	StatusAttrNotSupported:       "attribute not supported",
	StatusMaxNumExceeded:         "list argument exceeds maximum number",
	StatusUnsupportedProfile:     "unsupported profile",
	StatusUnsupportedEntrypoint:  "unsupported entrypoint",
	StatusUnsupportedRTFormat:    "unsupported RT format",
	StatusUnsupportedBufferType:  "unsupported buffer type",
	StatusSurfaceBusy:            "surface is in use",
	StatusFlagNotSupported:       "flag not supported",
	StatusInvalidParameter:       "invalid parameter",
	StatusResolutionNotSupported: "resolution not supported",
	StatusUnimplemented:          "the requested function is not implemented",
	StatusSurfaceInDisplaying:    "surface is in displaying",
}

func (s Status) String() string {
	if t, ok := statusText[s]; ok {
		return t
	}
	return fmt.Sprintf("status 0x%x", int32(s))
}

// Error implements the error interface.
func (s Status) Error() string {
	return "vdpva: " + s.String()
}

// Common errors
var (
	// ErrNotLoaded indicates libvdpau or libX11 are not loaded.
	ErrNotLoaded = bindings.ErrNotLoaded

	// ErrLibraryNotFound indicates a required shared library is missing.
	ErrLibraryNotFound = bindings.ErrLibraryNotFound

	// ErrClosed indicates the driver has been closed.
	ErrClosed = errors.New("vdpva: driver is closed")

	// ErrPreempted indicates the display preempted the VDPAU device.
	// Every object of the driver is lost; it must be closed and reopened.
	ErrPreempted = errors.New("vdpva: display preempted")

	// ErrNoDisplay indicates the X display could not be opened.
	ErrNoDisplay = errors.New("vdpva: no X display")
)

// Error is returned by every driver operation that fails.
type Error struct {
	Status Status       // VA status reported to the caller
	Op     string       // Operation that failed
	Native vdpau.Status // VDPAU status, StatusOK when the failure is not native
	Err    error        // Underlying cause, may be nil
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("vdpva %s: %s", e.Op, e.Status.String())
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the Status carried by e.
func (e *Error) Is(target error) bool {
	s, ok := target.(Status)
	return ok && s == e.Status
}

// newError returns a caller-input error carrying no native status.
func newError(op string, status Status) error {
	return &Error{Status: status, Op: op}
}

// statusFromVDPAU maps a VDPAU status to the VA status reported for it.
func statusFromVDPAU(s vdpau.Status) Status {
	switch s {
	case vdpau.StatusOK:
		return StatusSuccess
	case vdpau.StatusNoImplementation:
		return StatusUnimplemented
	case vdpau.StatusInvalidChromaType:
		return StatusUnsupportedRTFormat
	case vdpau.StatusInvalidDecoderProfile:
		return StatusUnsupportedProfile
	case vdpau.StatusResources:
		return StatusAllocationFailed
	case vdpau.StatusInvalidSize:
		return StatusResolutionNotSupported
	}
	return StatusOperationFailed
}

// wrapNative converts an error from the capability set into an *Error.
// A nil err yields nil.
func wrapNative(op string, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	var native vdpau.Status
	if errors.As(err, &native) {
		return &Error{Status: statusFromVDPAU(native), Op: op, Native: native, Err: err}
	}
	return &Error{Status: StatusOperationFailed, Op: op, Err: err}
}

// StatusOf returns the VA status carried by err: StatusSuccess for nil,
// StatusOperationFailed for errors not produced by this package.
func StatusOf(err error) Status {
	if err == nil {
		return StatusSuccess
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	var s Status
	if errors.As(err, &s) {
		return s
	}
	return StatusOperationFailed
}

// NativeStatus returns the VDPAU status behind err, if any.
func NativeStatus(err error) (vdpau.Status, bool) {
	var native vdpau.Status
	if errors.As(err, &native) {
		return native, true
	}
	return vdpau.StatusOK, false
}

// IsInvalidSurface reports whether err refers to an unknown surface.
func IsInvalidSurface(err error) bool {
	return StatusOf(err) == StatusInvalidSurface
}

// IsInvalidContext reports whether err refers to an unknown context.
func IsInvalidContext(err error) bool {
	return StatusOf(err) == StatusInvalidContext
}

// IsPreempted reports whether err was caused by display preemption.
func IsPreempted(err error) bool {
	return errors.Is(err, ErrPreempted)
}
