//go:build !ios && !android && (amd64 || arm64)

// Package vdpva implements VA-API style video presentation on top of
// VDPAU, without cgo, using purego.
//
// A Driver owns decoded surfaces, contexts and subpictures. Each context
// presents through a ring of output surfaces sized to at least the screen.
// PutSurface composites a surface and its subpictures into the next free
// output surface and queues it on the presentation queue bound to the
// target X11 drawable:
//
//	d, err := vdpva.Open(vdpva.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer d.Close()
//
//	surfaces, err := d.CreateSurfaces(1280, 720, vdpva.RTFormatYUV420, 4)
//	ctx, err := d.CreateContext(vdpva.ProfileNone, 1280, 720, surfaces)
//	// ... fill surfaces[0] with UploadSurface or DecodePicture ...
//	err = d.PutSurface(surfaces[0], window,
//		vdpva.Rectangle{Width: 1280, Height: 720},
//		vdpva.Rectangle{Width: 1280, Height: 720}, nil, 0)
//
// Errors carry a VA status (see StatusOf) and, for device failures, the
// VDPAU status they were mapped from (see NativeStatus).
package vdpva

import "github.com/obinnaokechukwu/vdpva/internal/bindings"

// Init loads libX11 and libvdpau. Open calls it; calling it first only
// reports a missing library earlier. It is safe to call multiple times.
func Init() error {
	return bindings.Load()
}

// IsLoaded returns true if the native libraries have been loaded.
func IsLoaded() bool {
	return bindings.IsLoaded()
}
