//go:build !ios && !android && (amd64 || arm64)

package vdpva

import (
	"slices"

	"github.com/obinnaokechukwu/vdpva/vdpau"
)

// Profile is a VA-API decoding profile.
type Profile int32

const (
	ProfileNone                    Profile = -1
	ProfileMPEG2Simple             Profile = 0
	ProfileMPEG2Main               Profile = 1
	ProfileMPEG4Simple             Profile = 2
	ProfileMPEG4AdvancedSimple     Profile = 3
	ProfileMPEG4Main               Profile = 4
	ProfileH264Baseline            Profile = 5
	ProfileH264Main                Profile = 6
	ProfileH264High                Profile = 7
	ProfileVC1Simple               Profile = 8
	ProfileVC1Main                 Profile = 9
	ProfileVC1Advanced             Profile = 10
	ProfileH264ConstrainedBaseline Profile = 13
)

// Codec is the bitstream family of a profile.
type Codec int

const (
	CodecNone Codec = iota
	CodecMPEG2
	CodecMPEG4
	CodecH264
	CodecVC1
)

func (c Codec) String() string {
	switch c {
	case CodecMPEG2:
		return "mpeg2"
	case CodecMPEG4:
		return "mpeg4"
	case CodecH264:
		return "h264"
	case CodecVC1:
		return "vc1"
	}
	return "none"
}

// Codec returns the bitstream family of p.
func (p Profile) Codec() Codec {
	switch p {
	case ProfileMPEG2Simple, ProfileMPEG2Main:
		return CodecMPEG2
	case ProfileMPEG4Simple, ProfileMPEG4AdvancedSimple, ProfileMPEG4Main:
		return CodecMPEG4
	case ProfileH264Baseline, ProfileH264Main, ProfileH264High, ProfileH264ConstrainedBaseline:
		return CodecH264
	case ProfileVC1Simple, ProfileVC1Main, ProfileVC1Advanced:
		return CodecVC1
	}
	return CodecNone
}

// decoderProfile maps p to the VDPAU decoder profile. ok is false for
// ProfileNone and for profiles VDPAU cannot decode.
func (p Profile) decoderProfile() (vdpau.DecoderProfile, bool) {
	switch p {
	case ProfileMPEG2Simple:
		return vdpau.DecoderProfileMPEG2Simple, true
	case ProfileMPEG2Main:
		return vdpau.DecoderProfileMPEG2Main, true
	case ProfileMPEG4Simple:
		return vdpau.DecoderProfileMPEG4PartSP, true
	case ProfileMPEG4AdvancedSimple:
		return vdpau.DecoderProfileMPEG4PartASP, true
	case ProfileH264Baseline, ProfileH264ConstrainedBaseline:
		return vdpau.DecoderProfileH264Baseline, true
	case ProfileH264Main:
		return vdpau.DecoderProfileH264Main, true
	case ProfileH264High:
		return vdpau.DecoderProfileH264High, true
	case ProfileVC1Simple:
		return vdpau.DecoderProfileVC1Simple, true
	case ProfileVC1Main:
		return vdpau.DecoderProfileVC1Main, true
	case ProfileVC1Advanced:
		return vdpau.DecoderProfileVC1Advanced, true
	}
	return 0, false
}

// maxReferences is the reference frame count the decoder is created with.
func (p Profile) maxReferences() uint32 {
	if p.Codec() == CodecH264 {
		return 16
	}
	return 2
}

// PictureInfo carries the codec-specific parameters of the next picture
// decoded by a context. It is one of *MPEG2PictureInfo, *H264PictureInfo
// or *VC1PictureInfo.
type PictureInfo interface {
	codec() Codec
	native() vdpau.PictureInfo
}

type (
	MPEG2PictureInfo vdpau.PictureInfoMPEG1Or2
	H264PictureInfo  vdpau.PictureInfoH264
	VC1PictureInfo   vdpau.PictureInfoVC1
)

func (*MPEG2PictureInfo) codec() Codec { return CodecMPEG2 }
func (*H264PictureInfo) codec() Codec  { return CodecH264 }
func (*VC1PictureInfo) codec() Codec   { return CodecVC1 }

func (p *MPEG2PictureInfo) native() vdpau.PictureInfo { return (*vdpau.PictureInfoMPEG1Or2)(p) }
func (p *H264PictureInfo) native() vdpau.PictureInfo  { return (*vdpau.PictureInfoH264)(p) }
func (p *VC1PictureInfo) native() vdpau.PictureInfo   { return (*vdpau.PictureInfoVC1)(p) }

// Context is a decoding and presentation context over a set of render
// targets.
type Context struct {
	profile Profile
	width   int
	height  int
	targets []SurfaceID

	output  outputID
	mixer   vdpau.VideoMixer
	decoder vdpau.Decoder
	picture PictureInfo
}

// CreateContext creates a context presenting the given render targets.
// A decoder is created for every profile VDPAU can decode; ProfileNone
// yields a presentation-only context fed through UploadSurface.
func (d *Driver) CreateContext(profile Profile, width, height int, targets []SurfaceID) (ContextID, error) {
	const op = "create context"
	if err := d.usable(op); err != nil {
		return InvalidID, err
	}
	if width <= 0 || height <= 0 {
		return InvalidID, newError(op, StatusInvalidParameter)
	}
	vprof, decodable := profile.decoderProfile()
	if profile != ProfileNone && !decodable {
		return InvalidID, newError(op, StatusUnsupportedProfile)
	}

	chroma := vdpau.ChromaType420
	for i, id := range targets {
		s, ok := d.surfaces.Lookup(uint32(id))
		if !ok {
			return InvalidID, newError(op, StatusInvalidSurface)
		}
		if i == 0 {
			chroma = s.chroma
		}
	}

	c := &Context{
		profile: profile,
		width:   width,
		height:  height,
		targets: slices.Clone(targets),
		mixer:   vdpau.InvalidHandle,
		decoder: vdpau.InvalidHandle,
	}

	output, err := d.createOutputSurface(width, height)
	if err != nil {
		return InvalidID, err
	}
	c.output = output

	c.mixer, err = d.caps.Mixer.VideoMixerCreate(uint32(width), uint32(height), chroma)
	if err != nil {
		d.releaseContext(c)
		return InvalidID, d.nativeError(op, err)
	}

	if decodable {
		c.decoder, err = d.caps.Decoders.DecoderCreate(vprof, uint32(width), uint32(height), profile.maxReferences())
		if err != nil {
			d.releaseContext(c)
			return InvalidID, d.nativeError(op, err)
		}
	}

	id := ContextID(d.contexts.Allocate(c))
	for _, t := range c.targets {
		if s, ok := d.surfaces.Lookup(uint32(t)); ok {
			s.context = id
		}
	}
	return id, nil
}

// DestroyContext destroys context id, its decoder, its mixer and its
// output surfaces. The render targets survive without a context.
func (d *Driver) DestroyContext(id ContextID) error {
	const op = "destroy context"
	if err := d.usable(op); err != nil {
		return err
	}
	if !d.destroyContext(id) {
		return newError(op, StatusInvalidContext)
	}
	return nil
}

func (d *Driver) destroyContext(id ContextID) bool {
	c, ok := d.contexts.Lookup(uint32(id))
	if !ok {
		return false
	}
	for _, t := range c.targets {
		if s, ok := d.surfaces.Lookup(uint32(t)); ok && s.context == id {
			s.context = InvalidID
		}
	}
	d.releaseContext(c)
	d.contexts.Free(uint32(id))
	return true
}

// releaseContext destroys the objects of c in reverse creation order.
func (d *Driver) releaseContext(c *Context) {
	if c.decoder != vdpau.InvalidHandle {
		if err := d.caps.Decoders.DecoderDestroy(c.decoder); err != nil {
			d.logger().Warn("destroying decoder", "error", err)
		}
		c.decoder = vdpau.InvalidHandle
	}
	if c.mixer != vdpau.InvalidHandle {
		if err := d.caps.Mixer.VideoMixerDestroy(c.mixer); err != nil {
			d.logger().Warn("destroying video mixer", "error", err)
		}
		c.mixer = vdpau.InvalidHandle
	}
	d.destroyOutputSurface(c.output)
	c.output = InvalidID
}

// SetPictureInfo sets the parameters of the next picture decoded by
// context id. The variant must match the context's codec.
func (d *Driver) SetPictureInfo(id ContextID, info PictureInfo) error {
	const op = "set picture info"
	if err := d.usable(op); err != nil {
		return err
	}
	c, ok := d.contexts.Lookup(uint32(id))
	if !ok {
		return newError(op, StatusInvalidContext)
	}
	if info == nil || info.codec() != c.profile.Codec() {
		return newError(op, StatusInvalidParameter)
	}
	c.picture = info
	return nil
}

// DecodePicture decodes one picture from the given slice data into
// target using the picture info set last.
func (d *Driver) DecodePicture(id ContextID, target SurfaceID, bitstream [][]byte) error {
	const op = "decode picture"
	if err := d.usable(op); err != nil {
		return err
	}
	c, ok := d.contexts.Lookup(uint32(id))
	if !ok {
		return newError(op, StatusInvalidContext)
	}
	s, ok := d.surfaces.Lookup(uint32(target))
	if !ok || s.context != id {
		return newError(op, StatusInvalidSurface)
	}
	if c.decoder == vdpau.InvalidHandle {
		return newError(op, StatusUnsupportedProfile)
	}
	if c.picture == nil {
		return newError(op, StatusInvalidParameter)
	}

	s.status = SurfaceRendering
	if err := d.caps.Decoders.DecoderRender(c.decoder, s.video, c.picture.native(), bitstream); err != nil {
		s.status = SurfaceReady
		return d.nativeError(op, err)
	}
	s.status = SurfaceReady
	return nil
}

// DecoderCapabilities reports what VDPAU can decode for profile.
func (d *Driver) DecoderCapabilities(profile Profile) (vdpau.DecoderCapabilities, error) {
	const op = "query decoder"
	if err := d.usable(op); err != nil {
		return vdpau.DecoderCapabilities{}, err
	}
	vprof, ok := profile.decoderProfile()
	if !ok {
		return vdpau.DecoderCapabilities{}, newError(op, StatusUnsupportedProfile)
	}
	caps, err := d.caps.Decoders.DecoderQueryCapabilities(vprof)
	return caps, d.nativeError(op, err)
}
