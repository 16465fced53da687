//go:build !ios && !android && (amd64 || arm64)

package vdpau

// FuncID identifies an entry point for VdpGetProcAddress.
type FuncID uint32

// Function IDs of the entry points the driver resolves. Values match
// vdpau.h; unused IDs are omitted.
const (
	FuncGetErrorString                                 FuncID = 0
	FuncGetProcAddress                                 FuncID = 1
	FuncGetAPIVersion                                  FuncID = 2
	FuncGetInformationString                           FuncID = 4
	FuncDeviceDestroy                                  FuncID = 5
	FuncVideoSurfaceQueryGetPutBitsYCbCrCapabilities   FuncID = 8
	FuncVideoSurfaceCreate                             FuncID = 9
	FuncVideoSurfaceDestroy                            FuncID = 10
	FuncVideoSurfaceGetBitsYCbCr                       FuncID = 12
	FuncVideoSurfacePutBitsYCbCr                       FuncID = 13
	FuncOutputSurfaceQueryGetPutBitsNativeCapabilities FuncID = 15
	FuncOutputSurfaceCreate                            FuncID = 18
	FuncOutputSurfaceDestroy                           FuncID = 19
	FuncOutputSurfaceGetBitsNative                     FuncID = 21
	FuncBitmapSurfaceCreate                            FuncID = 26
	FuncBitmapSurfaceDestroy                           FuncID = 27
	FuncBitmapSurfacePutBitsNative                     FuncID = 29
	FuncOutputSurfaceRenderBitmapSurface               FuncID = 34
	FuncDecoderQueryCapabilities                       FuncID = 36
	FuncDecoderCreate                                  FuncID = 37
	FuncDecoderDestroy                                 FuncID = 38
	FuncDecoderRender                                  FuncID = 40
	FuncVideoMixerCreate                               FuncID = 46
	FuncVideoMixerDestroy                              FuncID = 53
	FuncVideoMixerRender                               FuncID = 54
	FuncPresentationQueueTargetDestroy                 FuncID = 55
	FuncPresentationQueueCreate                        FuncID = 56
	FuncPresentationQueueDestroy                       FuncID = 57
	FuncPresentationQueueGetTime                       FuncID = 62
	FuncPresentationQueueDisplay                       FuncID = 63
	FuncPresentationQueueBlockUntilSurfaceIdle         FuncID = 64
	FuncPresentationQueueQuerySurfaceStatus            FuncID = 65
	FuncPreemptionCallbackRegister                     FuncID = 66
	FuncPresentationQueueTargetCreateX11               FuncID = 0x1000
)
