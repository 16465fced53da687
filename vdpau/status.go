//go:build !ios && !android && (amd64 || arm64)

package vdpau

import "fmt"

// Status is a VdpStatus. It implements error so Table methods can return
// it directly; StatusOK is never returned as an error.
type Status int32

// VDPAU status codes.
const (
	StatusOK                                Status = 0
	StatusNoImplementation                  Status = 1
	StatusDisplayPreempted                  Status = 2
	StatusInvalidHandle                     Status = 3
	StatusInvalidPointer                    Status = 4
	StatusInvalidChromaType                 Status = 5
	StatusInvalidYCbCrFormat                Status = 6
	StatusInvalidRGBAFormat                 Status = 7
	StatusInvalidIndexedFormat              Status = 8
	StatusInvalidColorStandard              Status = 9
	StatusInvalidColorTableFormat           Status = 10
	StatusInvalidBlendFactor                Status = 11
	StatusInvalidBlendEquation              Status = 12
	StatusInvalidFlag                       Status = 13
	StatusInvalidDecoderProfile             Status = 14
	StatusInvalidVideoMixerFeature          Status = 15
	StatusInvalidVideoMixerParameter        Status = 16
	StatusInvalidVideoMixerAttribute        Status = 17
	StatusInvalidVideoMixerPictureStructure Status = 18
	StatusInvalidFuncID                     Status = 19
	StatusInvalidSize                       Status = 20
	StatusInvalidValue                      Status = 21
	StatusInvalidStructVersion              Status = 22
	StatusResources                         Status = 23
	StatusHandleDeviceMismatch              Status = 24
	StatusError                             Status = 25
)

var statusNames = [...]string{
	StatusOK:                                "ok",
	StatusNoImplementation:                  "no implementation",
	StatusDisplayPreempted:                  "display preempted",
	StatusInvalidHandle:                     "invalid handle",
	StatusInvalidPointer:                    "invalid pointer",
	StatusInvalidChromaType:                 "invalid chroma type",
	StatusInvalidYCbCrFormat:                "invalid Y/Cb/Cr format",
	StatusInvalidRGBAFormat:                 "invalid RGBA format",
	StatusInvalidIndexedFormat:              "invalid indexed format",
	StatusInvalidColorStandard:              "invalid color standard",
	StatusInvalidColorTableFormat:           "invalid color table format",
	StatusInvalidBlendFactor:                "invalid blend factor",
	StatusInvalidBlendEquation:              "invalid blend equation",
	StatusInvalidFlag:                       "invalid flag",
	StatusInvalidDecoderProfile:             "invalid decoder profile",
	StatusInvalidVideoMixerFeature:          "invalid video mixer feature",
	StatusInvalidVideoMixerParameter:        "invalid video mixer parameter",
	StatusInvalidVideoMixerAttribute:        "invalid video mixer attribute",
	StatusInvalidVideoMixerPictureStructure: "invalid video mixer picture structure",
	StatusInvalidFuncID:                     "invalid function id",
	StatusInvalidSize:                       "invalid size",
	StatusInvalidValue:                      "invalid value",
	StatusInvalidStructVersion:              "invalid struct version",
	StatusResources:                         "out of resources",
	StatusHandleDeviceMismatch:              "handle device mismatch",
	StatusError:                             "error",
}

// String returns a short lowercase description of s.
func (s Status) String() string {
	if s >= 0 && int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("status %d", int32(s))
}

// Error implements the error interface.
func (s Status) Error() string {
	return "vdpau: " + s.String()
}

// Err returns nil for StatusOK and s otherwise.
func (s Status) Err() error {
	if s == StatusOK {
		return nil
	}
	return s
}
