//go:build !ios && !android && (amd64 || arm64)

package vdpva

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obinnaokechukwu/vdpva/vdpau"
)

func TestCreateContextPresentationOnly(t *testing.T) {
	e := newTestEnv(t)
	s, c := e.presentable(t, 1280, 720)

	ctx, ok := e.d.contexts.Lookup(uint32(c))
	require.True(t, ok)
	assert.Equal(t, vdpau.Decoder(vdpau.InvalidHandle), ctx.decoder)
	assert.Equal(t, 1, e.dev.liveCount("mixer"))
	assert.Equal(t, DefaultOutputSurfaces, e.dev.liveCount("output"))
	assert.Zero(t, e.dev.counts["DecoderCreate"])

	surf, _ := e.d.surfaces.Lookup(uint32(s))
	assert.Equal(t, c, surf.context)
}

func TestCreateContextDecoder(t *testing.T) {
	e := newTestEnv(t)
	ids, err := e.d.CreateSurfaces(1920, 1088, RTFormatYUV420, 4)
	require.NoError(t, err)

	c, err := e.d.CreateContext(ProfileH264High, 1920, 1088, ids)
	require.NoError(t, err)
	assert.Equal(t, 1, e.dev.liveCount("decoder"))

	ctx, _ := e.d.contexts.Lookup(uint32(c))
	assert.NotEqual(t, vdpau.Decoder(vdpau.InvalidHandle), ctx.decoder)
	for _, id := range ids {
		s, _ := e.d.surfaces.Lookup(uint32(id))
		assert.Equal(t, c, s.context)
	}
}

func TestCreateContextFailureCleansUp(t *testing.T) {
	for _, step := range []string{"OutputSurfaceCreate", "VideoMixerCreate", "DecoderCreate"} {
		t.Run(step, func(t *testing.T) {
			e := newTestEnv(t)
			ids, err := e.d.CreateSurfaces(640, 480, RTFormatYUV420, 1)
			require.NoError(t, err)
			e.dev.failOn[step] = 1

			c, err := e.d.CreateContext(ProfileMPEG2Main, 640, 480, ids)
			require.Error(t, err)
			assert.Equal(t, ContextID(InvalidID), c)
			for _, kind := range []string{"output", "mixer", "decoder"} {
				assert.Zero(t, e.dev.liveCount(kind), kind)
			}
			assert.Zero(t, e.d.outputs.Len())
			assert.Zero(t, e.d.contexts.Len())

			s, _ := e.d.surfaces.Lookup(uint32(ids[0]))
			assert.Equal(t, ContextID(InvalidID), s.context)
		})
	}
}

func TestCreateContextInvalid(t *testing.T) {
	e := newTestEnv(t)
	ids, err := e.d.CreateSurfaces(64, 64, RTFormatYUV420, 1)
	require.NoError(t, err)
	mark := len(e.dev.calls)

	_, err = e.d.CreateContext(Profile(42), 64, 64, ids)
	assert.ErrorIs(t, err, StatusUnsupportedProfile)
	_, err = e.d.CreateContext(ProfileNone, 0, 64, ids)
	assert.ErrorIs(t, err, StatusInvalidParameter)
	_, err = e.d.CreateContext(ProfileNone, 64, 64, []SurfaceID{ids[0] + 1})
	assert.True(t, IsInvalidSurface(err))
	assert.Empty(t, e.dev.callsSince(mark))
}

func TestDestroyContext(t *testing.T) {
	e, s, c := presentEnv(t, 1920, 1080)
	require.NoError(t, e.d.PutSurface(s, testDrawable, fullRect(1920, 1080), fullRect(1920, 1080), nil, 0))

	mark := len(e.dev.calls)
	require.NoError(t, e.d.DestroyContext(c))
	assert.Equal(t, []string{
		"VideoMixerDestroy",
		"PresentationQueueDestroy",
		"PresentationQueueTargetDestroy",
		"OutputSurfaceDestroy",
		"OutputSurfaceDestroy",
		"OutputSurfaceDestroy",
		"OutputSurfaceDestroy",
	}, e.dev.callsSince(mark))
	assert.Len(t, e.dev.live, 1)
	assert.Equal(t, 1, e.dev.liveCount("video"))
}

func TestDestroyContextKeepsTargets(t *testing.T) {
	e, s, c := presentEnv(t, 1920, 1080)
	require.NoError(t, e.d.DestroyContext(c))

	surf, ok := e.d.surfaces.Lookup(uint32(s))
	require.True(t, ok)
	assert.Equal(t, ContextID(InvalidID), surf.context)
	assert.Equal(t, 1, e.dev.liveCount("video"))

	assert.True(t, IsInvalidContext(e.d.DestroyContext(c)))
}

func TestSetPictureInfo(t *testing.T) {
	e := newTestEnv(t)
	ids, err := e.d.CreateSurfaces(1280, 720, RTFormatYUV420, 1)
	require.NoError(t, err)
	c, err := e.d.CreateContext(ProfileH264Main, 1280, 720, ids)
	require.NoError(t, err)

	assert.ErrorIs(t, e.d.SetPictureInfo(c, &MPEG2PictureInfo{}), StatusInvalidParameter)
	assert.ErrorIs(t, e.d.SetPictureInfo(c, nil), StatusInvalidParameter)
	assert.True(t, IsInvalidContext(e.d.SetPictureInfo(c+1, &H264PictureInfo{})))

	// Decoding needs picture info first.
	assert.ErrorIs(t, e.d.DecodePicture(c, ids[0], [][]byte{{0, 0, 1}}), StatusInvalidParameter)

	require.NoError(t, e.d.SetPictureInfo(c, &H264PictureInfo{}))
	require.NoError(t, e.d.DecodePicture(c, ids[0], [][]byte{{0, 0, 1}}))
	assert.Equal(t, 1, e.dev.counts["DecoderRender"])

	st, err := e.d.QuerySurfaceStatus(ids[0])
	require.NoError(t, err)
	assert.Equal(t, SurfaceReady, st)
}

func TestDecodePictureInvalid(t *testing.T) {
	e, s, c := presentEnv(t, 1920, 1080)

	// Presentation-only contexts cannot decode.
	assert.ErrorIs(t, e.d.DecodePicture(c, s, nil), StatusUnsupportedProfile)

	other, err := e.d.CreateSurfaces(64, 64, RTFormatYUV420, 1)
	require.NoError(t, err)
	assert.True(t, IsInvalidSurface(e.d.DecodePicture(c, other[0], nil)))
}

func TestProfileMapping(t *testing.T) {
	tests := []struct {
		p       Profile
		codec   Codec
		native  vdpau.DecoderProfile
		refs    uint32
		decodes bool
	}{
		{ProfileMPEG2Main, CodecMPEG2, vdpau.DecoderProfileMPEG2Main, 2, true},
		{ProfileMPEG4AdvancedSimple, CodecMPEG4, vdpau.DecoderProfileMPEG4PartASP, 2, true},
		{ProfileH264ConstrainedBaseline, CodecH264, vdpau.DecoderProfileH264Baseline, 16, true},
		{ProfileVC1Advanced, CodecVC1, vdpau.DecoderProfileVC1Advanced, 2, true},
		{ProfileMPEG4Main, CodecMPEG4, 0, 2, false},
		{ProfileNone, CodecNone, 0, 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.codec.String(), func(t *testing.T) {
			assert.Equal(t, tt.codec, tt.p.Codec())
			native, ok := tt.p.decoderProfile()
			assert.Equal(t, tt.decodes, ok)
			if ok {
				assert.Equal(t, tt.native, native)
			}
			assert.Equal(t, tt.refs, tt.p.maxReferences())
		})
	}
}

func TestDecoderCapabilities(t *testing.T) {
	e := newTestEnv(t)
	caps, err := e.d.DecoderCapabilities(ProfileH264High)
	require.NoError(t, err)
	assert.True(t, caps.Supported)

	_, err = e.d.DecoderCapabilities(ProfileNone)
	assert.ErrorIs(t, err, StatusUnsupportedProfile)
}
