//go:build !ios && !android && (amd64 || arm64)

package vdpau

import "unsafe"

// PictureInfo is one of the codec-specific picture parameter blocks passed
// to DecoderRender: *PictureInfoMPEG1Or2, *PictureInfoH264 or
// *PictureInfoVC1.
type PictureInfo interface {
	pointer() unsafe.Pointer
}

// PictureInfoMPEG1Or2 mirrors VdpPictureInfoMPEG1Or2.
type PictureInfoMPEG1Or2 struct {
	ForwardReference         VideoSurface
	BackwardReference        VideoSurface
	SliceCount               uint32
	PictureStructure         uint8
	PictureCodingType        uint8
	IntraDCPrecision         uint8
	FramePredFrameDCT        uint8
	ConcealmentMotionVectors uint8
	IntraVLCFormat           uint8
	AlternateScan            uint8
	QScaleType               uint8
	TopFieldFirst            uint8
	FullPelForwardVector     uint8
	FullPelBackwardVector    uint8
	FCode                    [2][2]uint8
	IntraQuantizerMatrix     [64]uint8
	NonIntraQuantizerMatrix  [64]uint8
}

func (p *PictureInfoMPEG1Or2) pointer() unsafe.Pointer { return unsafe.Pointer(p) }

// ReferenceFrameH264 mirrors VdpReferenceFrameH264.
type ReferenceFrameH264 struct {
	Surface           VideoSurface
	IsLongTerm        int32
	TopIsReference    int32
	BottomIsReference int32
	FieldOrderCnt     [2]int32
	FrameIdx          uint16
}

// PictureInfoH264 mirrors VdpPictureInfoH264.
type PictureInfoH264 struct {
	SliceCount                         uint32
	FieldOrderCnt                      [2]int32
	IsReference                        int32
	FrameNum                           uint16
	FieldPicFlag                       uint8
	BottomFieldFlag                    uint8
	NumRefFrames                       uint8
	MbAdaptiveFrameFieldFlag           uint8
	ConstrainedIntraPredFlag           uint8
	WeightedPredFlag                   uint8
	WeightedBipredIdc                  uint8
	FrameMbsOnlyFlag                   uint8
	Transform8x8ModeFlag               uint8
	ChromaQPIndexOffset                int8
	SecondChromaQPIndexOffset          int8
	PicInitQPMinus26                   int8
	NumRefIdxL0ActiveMinus1            uint8
	NumRefIdxL1ActiveMinus1            uint8
	Log2MaxFrameNumMinus4              uint8
	PicOrderCntType                    uint8
	Log2MaxPicOrderCntLsbMinus4        uint8
	DeltaPicOrderAlwaysZeroFlag        uint8
	Direct8x8InferenceFlag             uint8
	EntropyCodingModeFlag              uint8
	PicOrderPresentFlag                uint8
	DeblockingFilterControlPresentFlag uint8
	RedundantPicCntPresentFlag         uint8
	ScalingLists4x4                    [6][16]uint8
	ScalingLists8x8                    [2][64]uint8
	ReferenceFrames                    [16]ReferenceFrameH264
}

func (p *PictureInfoH264) pointer() unsafe.Pointer { return unsafe.Pointer(p) }

// PictureInfoVC1 mirrors VdpPictureInfoVC1.
type PictureInfoVC1 struct {
	ForwardReference  VideoSurface
	BackwardReference VideoSurface
	SliceCount        uint32
	PictureType       uint8
	FrameCodingMode   uint8
	PostProcFlag      uint8
	Pulldown          uint8
	Interlace         uint8
	TFCntrFlag        uint8
	FInterpFlag       uint8
	PSF               uint8
	DQuant            uint8
	PanScanFlag       uint8
	RefDistFlag       uint8
	Quantizer         uint8
	ExtendedMV        uint8
	ExtendedDMV       uint8
	Overlap           uint8
	VSTransform       uint8
	LoopFilter        uint8
	FastUVMC          uint8
	RangeMapYFlag     uint8
	RangeMapY         uint8
	RangeMapUVFlag    uint8
	RangeMapUV        uint8
	Multires          uint8
	SyncMarker        uint8
	RangeRed          uint8
	MaxBFrames        uint8
	DeblockEnable     uint8
	PQuant            uint8
}

func (p *PictureInfoVC1) pointer() unsafe.Pointer { return unsafe.Pointer(p) }

// BitstreamBufferVersion is VDP_BITSTREAM_BUFFER_VERSION.
const BitstreamBufferVersion = 0

// bitstreamBuffer mirrors VdpBitstreamBuffer.
type bitstreamBuffer struct {
	structVersion uint32
	bitstream     unsafe.Pointer
	bytes         uint32
}

// DecoderCapabilities is the result of DecoderQueryCapabilities.
type DecoderCapabilities struct {
	Supported      bool
	MaxLevel       uint32
	MaxMacroblocks uint32
	MaxWidth       uint32
	MaxHeight      uint32
}
