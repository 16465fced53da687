//go:build !ios && !android && (amd64 || arm64)

// Package vdpau provides purego bindings to the VDPAU video decode and
// presentation API.
//
// A VDPAU device exposes its entry points through a get-proc-address
// function rather than exported symbols. CreateDeviceX11 resolves every
// entry point into a Table; each Table method checks that the table and the
// specific function are present before forwarding the call, and reports
// StatusInvalidPointer otherwise.
package vdpau

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// Handle types. Every VDPAU object is a 32-bit handle.
type (
	Device                  uint32
	VideoSurface            uint32
	OutputSurface           uint32
	BitmapSurface           uint32
	Decoder                 uint32
	VideoMixer              uint32
	PresentationQueue       uint32
	PresentationQueueTarget uint32
)

// InvalidHandle is the VDPAU null handle (VDP_INVALID_HANDLE).
const InvalidHandle = 0xFFFFFFFF

// Time is a presentation timestamp in nanoseconds.
type Time uint64

// Rect is a VdpRect: x0/y0 inclusive, x1/y1 exclusive.
type Rect struct {
	X0, Y0, X1, Y1 uint32
}

// Width returns the horizontal extent of r.
func (r Rect) Width() uint32 {
	if r.X1 < r.X0 {
		return 0
	}
	return r.X1 - r.X0
}

// Height returns the vertical extent of r.
func (r Rect) Height() uint32 {
	if r.Y1 < r.Y0 {
		return 0
	}
	return r.Y1 - r.Y0
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", r.X0, r.Y0, r.X1, r.Y1)
}

// ChromaType is a VdpChromaType.
type ChromaType uint32

const (
	ChromaType420 ChromaType = 0
	ChromaType422 ChromaType = 1
	ChromaType444 ChromaType = 2
)

// YCbCrFormat is a VdpYCbCrFormat.
type YCbCrFormat uint32

const (
	YCbCrFormatNV12     YCbCrFormat = 0
	YCbCrFormatYV12     YCbCrFormat = 1
	YCbCrFormatUYVY     YCbCrFormat = 2
	YCbCrFormatYUYV     YCbCrFormat = 3
	YCbCrFormatY8U8V8A8 YCbCrFormat = 4
	YCbCrFormatV8U8Y8A8 YCbCrFormat = 5
)

// RGBAFormat is a VdpRGBAFormat.
type RGBAFormat uint32

const (
	RGBAFormatB8G8R8A8    RGBAFormat = 0
	RGBAFormatR8G8B8A8    RGBAFormat = 1
	RGBAFormatR10G10B10A2 RGBAFormat = 2
	RGBAFormatB10G10R10A2 RGBAFormat = 3
	RGBAFormatA8          RGBAFormat = 4
)

// RGBAFormatFor maps a gputypes texture format to the matching VDPAU RGBA
// format. ok is false for formats VDPAU output surfaces cannot hold.
func RGBAFormatFor(f gputypes.TextureFormat) (RGBAFormat, bool) {
	switch f {
	case gputypes.TextureFormatBGRA8Unorm:
		return RGBAFormatB8G8R8A8, true
	case gputypes.TextureFormatRGBA8Unorm:
		return RGBAFormatR8G8B8A8, true
	case gputypes.TextureFormatRGB10A2Unorm:
		return RGBAFormatR10G10B10A2, true
	}
	return 0, false
}

// BytesPerPixel returns the storage size of one pixel of f.
func (f RGBAFormat) BytesPerPixel() int {
	if f == RGBAFormatA8 {
		return 1
	}
	return 4
}

// PictureStructure is a VdpVideoMixerPictureStructure.
type PictureStructure uint32

const (
	PictureStructureTopField    PictureStructure = 0
	PictureStructureBottomField PictureStructure = 1
	PictureStructureFrame       PictureStructure = 2
)

// DecoderProfile is a VdpDecoderProfile.
type DecoderProfile uint32

const (
	DecoderProfileMPEG1        DecoderProfile = 0
	DecoderProfileMPEG2Simple  DecoderProfile = 1
	DecoderProfileMPEG2Main    DecoderProfile = 2
	DecoderProfileH264Baseline DecoderProfile = 6
	DecoderProfileH264Main     DecoderProfile = 7
	DecoderProfileH264High     DecoderProfile = 8
	DecoderProfileVC1Simple    DecoderProfile = 9
	DecoderProfileVC1Main      DecoderProfile = 10
	DecoderProfileVC1Advanced  DecoderProfile = 11
	DecoderProfileMPEG4PartSP  DecoderProfile = 12
	DecoderProfileMPEG4PartASP DecoderProfile = 13
)

// PresentationQueueStatus is a VdpPresentationQueueStatus.
type PresentationQueueStatus uint32

const (
	QueueStatusIdle    PresentationQueueStatus = 0
	QueueStatusQueued  PresentationQueueStatus = 1
	QueueStatusVisible PresentationQueueStatus = 2
)

func (s PresentationQueueStatus) String() string {
	switch s {
	case QueueStatusIdle:
		return "idle"
	case QueueStatusQueued:
		return "queued"
	case QueueStatusVisible:
		return "visible"
	}
	return fmt.Sprintf("PresentationQueueStatus(%d)", uint32(s))
}

// BlendFactor is a VdpOutputSurfaceRenderBlendFactor.
type BlendFactor uint32

const (
	BlendFactorZero                  BlendFactor = 0
	BlendFactorOne                   BlendFactor = 1
	BlendFactorSrcColor              BlendFactor = 2
	BlendFactorOneMinusSrcColor      BlendFactor = 3
	BlendFactorSrcAlpha              BlendFactor = 4
	BlendFactorOneMinusSrcAlpha      BlendFactor = 5
	BlendFactorDstAlpha              BlendFactor = 6
	BlendFactorOneMinusDstAlpha      BlendFactor = 7
	BlendFactorDstColor              BlendFactor = 8
	BlendFactorOneMinusDstColor      BlendFactor = 9
	BlendFactorSrcAlphaSaturate      BlendFactor = 10
	BlendFactorConstantColor         BlendFactor = 11
	BlendFactorOneMinusConstantColor BlendFactor = 12
)

// BlendEquation is a VdpOutputSurfaceRenderBlendEquation.
type BlendEquation uint32

const (
	BlendEquationSubtract        BlendEquation = 0
	BlendEquationReverseSubtract BlendEquation = 1
	BlendEquationAdd             BlendEquation = 2
	BlendEquationMin             BlendEquation = 3
	BlendEquationMax             BlendEquation = 4
)

// BlendStateVersion is VDP_OUTPUT_SURFACE_RENDER_BLEND_STATE_VERSION.
const BlendStateVersion = 0

// Color is a VdpColor.
type Color struct {
	Red, Green, Blue, Alpha float32
}

// BlendState mirrors VdpOutputSurfaceRenderBlendState field for field.
type BlendState struct {
	StructVersion  uint32
	SrcColorFactor BlendFactor
	DstColorFactor BlendFactor
	SrcAlphaFactor BlendFactor
	DstAlphaFactor BlendFactor
	ColorEquation  BlendEquation
	AlphaEquation  BlendEquation
	BlendConstant  Color
}

// RenderFlags are the flags of the output surface render functions.
type RenderFlags uint32

const (
	RenderRotate0   RenderFlags = 0
	RenderRotate90  RenderFlags = 1
	RenderRotate180 RenderFlags = 2
	RenderRotate270 RenderFlags = 3
	// RenderColorPerVertex selects one color per vertex instead of one
	// color for the whole quad.
	RenderColorPerVertex RenderFlags = 1 << 2
)

// BlendStateFrom converts a gputypes blend state to VDPAU terms.
// It fails for factors and operations VDPAU has no equivalent for.
func BlendStateFrom(bs gputypes.BlendState) (BlendState, error) {
	out := BlendState{StructVersion: BlendStateVersion}
	factors := []struct {
		dst *BlendFactor
		src gputypes.BlendFactor
	}{
		{&out.SrcColorFactor, bs.Color.SrcFactor},
		{&out.DstColorFactor, bs.Color.DstFactor},
		{&out.SrcAlphaFactor, bs.Alpha.SrcFactor},
		{&out.DstAlphaFactor, bs.Alpha.DstFactor},
	}
	for _, f := range factors {
		v, err := blendFactorFrom(f.src)
		if err != nil {
			return BlendState{}, err
		}
		*f.dst = v
	}

	var err error
	if out.ColorEquation, err = blendEquationFrom(bs.Color.Operation); err != nil {
		return BlendState{}, err
	}
	if out.AlphaEquation, err = blendEquationFrom(bs.Alpha.Operation); err != nil {
		return BlendState{}, err
	}
	return out, nil
}

func blendFactorFrom(f gputypes.BlendFactor) (BlendFactor, error) {
	switch f {
	case gputypes.BlendFactorZero:
		return BlendFactorZero, nil
	case gputypes.BlendFactorOne:
		return BlendFactorOne, nil
	case gputypes.BlendFactorSrc:
		return BlendFactorSrcColor, nil
	case gputypes.BlendFactorOneMinusSrc:
		return BlendFactorOneMinusSrcColor, nil
	case gputypes.BlendFactorSrcAlpha:
		return BlendFactorSrcAlpha, nil
	case gputypes.BlendFactorOneMinusSrcAlpha:
		return BlendFactorOneMinusSrcAlpha, nil
	case gputypes.BlendFactorDst:
		return BlendFactorDstColor, nil
	case gputypes.BlendFactorOneMinusDst:
		return BlendFactorOneMinusDstColor, nil
	case gputypes.BlendFactorDstAlpha:
		return BlendFactorDstAlpha, nil
	case gputypes.BlendFactorOneMinusDstAlpha:
		return BlendFactorOneMinusDstAlpha, nil
	case gputypes.BlendFactorSrcAlphaSaturated:
		return BlendFactorSrcAlphaSaturate, nil
	case gputypes.BlendFactorConstant:
		return BlendFactorConstantColor, nil
	case gputypes.BlendFactorOneMinusConstant:
		return BlendFactorOneMinusConstantColor, nil
	}
	return 0, fmt.Errorf("vdpau: unsupported blend factor %v", f)
}

func blendEquationFrom(op gputypes.BlendOperation) (BlendEquation, error) {
	switch op {
	case gputypes.BlendOperationAdd:
		return BlendEquationAdd, nil
	case gputypes.BlendOperationSubtract:
		return BlendEquationSubtract, nil
	case gputypes.BlendOperationReverseSubtract:
		return BlendEquationReverseSubtract, nil
	case gputypes.BlendOperationMin:
		return BlendEquationMin, nil
	case gputypes.BlendOperationMax:
		return BlendEquationMax, nil
	}
	return 0, fmt.Errorf("vdpau: unsupported blend operation %v", op)
}
