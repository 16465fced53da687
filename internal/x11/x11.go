//go:build !ios && !android && (amd64 || arm64)

// Package x11 binds the handful of Xlib calls the driver needs: opening a
// display, querying screen and drawable geometry, and the window helpers
// used by the example programs.
package x11

import (
	"errors"
	"sync"

	"github.com/ebitengine/purego"
	"github.com/obinnaokechukwu/vdpva/internal/bindings"
)

// Drawable is an X11 window or pixmap XID.
type Drawable uint64

// None is the null XID.
const None Drawable = 0

// ErrOpenDisplay is returned when XOpenDisplay fails.
var ErrOpenDisplay = errors.New("vdpva: cannot open X display")

// ErrBadDrawable is returned when XGetGeometry fails for a drawable.
var ErrBadDrawable = errors.New("vdpva: cannot query drawable geometry")

// Function bindings - registered on first Open.
var (
	xOpenDisplay        func(name string) uintptr
	xCloseDisplay       func(dpy uintptr) int32
	xDefaultScreen      func(dpy uintptr) int32
	xDisplayWidth       func(dpy uintptr, screen int32) int32
	xDisplayHeight      func(dpy uintptr, screen int32) int32
	xRootWindow         func(dpy uintptr, screen int32) Drawable
	xBlackPixel         func(dpy uintptr, screen int32) uint64
	xGetGeometry        func(dpy uintptr, d Drawable, root *Drawable, x, y *int32, w, h, border, depth *uint32) int32
	xCreateSimpleWindow func(dpy uintptr, parent Drawable, x, y int32, w, h, borderWidth uint32, border, background uint64) Drawable
	xStoreName          func(dpy uintptr, w Drawable, name string) int32
	xMapWindow          func(dpy uintptr, w Drawable) int32
	xDestroyWindow      func(dpy uintptr, w Drawable) int32
	xFlush              func(dpy uintptr) int32
	xSync               func(dpy uintptr, discard int32) int32

	registerOnce sync.Once
	registerErr  error
)

func registerBindings() error {
	registerOnce.Do(func() {
		if err := bindings.Load(); err != nil {
			registerErr = err
			return
		}
		lib := bindings.LibX11()

		purego.RegisterLibFunc(&xOpenDisplay, lib, "XOpenDisplay")
		purego.RegisterLibFunc(&xCloseDisplay, lib, "XCloseDisplay")
		purego.RegisterLibFunc(&xDefaultScreen, lib, "XDefaultScreen")
		purego.RegisterLibFunc(&xDisplayWidth, lib, "XDisplayWidth")
		purego.RegisterLibFunc(&xDisplayHeight, lib, "XDisplayHeight")
		purego.RegisterLibFunc(&xRootWindow, lib, "XRootWindow")
		purego.RegisterLibFunc(&xBlackPixel, lib, "XBlackPixel")
		purego.RegisterLibFunc(&xGetGeometry, lib, "XGetGeometry")
		purego.RegisterLibFunc(&xCreateSimpleWindow, lib, "XCreateSimpleWindow")
		purego.RegisterLibFunc(&xStoreName, lib, "XStoreName")
		purego.RegisterLibFunc(&xMapWindow, lib, "XMapWindow")
		purego.RegisterLibFunc(&xDestroyWindow, lib, "XDestroyWindow")
		purego.RegisterLibFunc(&xFlush, lib, "XFlush")
		purego.RegisterLibFunc(&xSync, lib, "XSync")
	})
	return registerErr
}

// Display is an open Xlib connection.
// It is not safe for concurrent use.
type Display struct {
	ptr    uintptr
	screen int32
	closed bool
}

// Open connects to the named X display.
// An empty name selects $DISPLAY.
func Open(name string) (*Display, error) {
	if err := registerBindings(); err != nil {
		return nil, err
	}
	ptr := xOpenDisplay(name)
	if ptr == 0 {
		if name == "" {
			return nil, ErrOpenDisplay
		}
		return nil, errors.Join(ErrOpenDisplay, errors.New(name))
	}
	return &Display{ptr: ptr, screen: xDefaultScreen(ptr)}, nil
}

// Ptr returns the Xlib Display pointer.
func (d *Display) Ptr() uintptr {
	return d.ptr
}

// Screen returns the default screen number.
func (d *Display) Screen() int {
	return int(d.screen)
}

// Size returns the default screen's resolution in pixels.
func (d *Display) Size() (width, height int) {
	if d == nil || d.closed {
		return 0, 0
	}
	return int(xDisplayWidth(d.ptr, d.screen)), int(xDisplayHeight(d.ptr, d.screen))
}

// DrawableSize returns the current size of a window or pixmap.
func (d *Display) DrawableSize(dr Drawable) (width, height int, err error) {
	if d == nil || d.closed {
		return 0, 0, ErrBadDrawable
	}
	var (
		root          Drawable
		x, y          int32
		w, h          uint32
		border, depth uint32
	)
	if xGetGeometry(d.ptr, dr, &root, &x, &y, &w, &h, &border, &depth) == 0 {
		return 0, 0, ErrBadDrawable
	}
	return int(w), int(h), nil
}

// CreateWindow creates and maps a top-level window with a black background.
func (d *Display) CreateWindow(width, height int, title string) Drawable {
	root := xRootWindow(d.ptr, d.screen)
	black := xBlackPixel(d.ptr, d.screen)
	win := xCreateSimpleWindow(d.ptr, root, 0, 0, uint32(width), uint32(height), 0, black, black)
	if title != "" {
		xStoreName(d.ptr, win, title)
	}
	xMapWindow(d.ptr, win)
	xSync(d.ptr, 0)
	return win
}

// DestroyWindow destroys a window created with CreateWindow.
func (d *Display) DestroyWindow(win Drawable) {
	if d == nil || d.closed || win == None {
		return
	}
	xDestroyWindow(d.ptr, win)
	xFlush(d.ptr)
}

// Flush flushes the output buffer.
func (d *Display) Flush() {
	if d == nil || d.closed {
		return
	}
	xFlush(d.ptr)
}

// Close closes the connection. Closing twice has no effect.
func (d *Display) Close() error {
	if d == nil || d.closed {
		return nil
	}
	d.closed = true
	xCloseDisplay(d.ptr)
	d.ptr = 0
	return nil
}
