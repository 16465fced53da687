//go:build !ios && !android && (amd64 || arm64)

package vdpva

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSubpicture(t *testing.T) {
	e := newTestEnv(t)
	id, err := e.d.CreateSubpicture(320, 40)
	require.NoError(t, err)
	assert.Equal(t, 1, e.dev.liveCount("bitmap"))

	sub, ok := e.d.subpictures.Lookup(uint32(id))
	require.True(t, ok)
	assert.Equal(t, 320, sub.width)
	assert.False(t, sub.dirty)

	_, err = e.d.CreateSubpicture(0, 40)
	assert.ErrorIs(t, err, StatusInvalidParameter)

	e.dev.failOn["BitmapSurfaceCreate"] = 2
	_, err = e.d.CreateSubpicture(10, 10)
	assert.Equal(t, StatusAllocationFailed, StatusOf(err))
	assert.Equal(t, 1, e.d.subpictures.Len())
}

func TestSetSubpictureImage(t *testing.T) {
	e := newTestEnv(t)
	id, err := e.d.CreateSubpicture(4, 2)
	require.NoError(t, err)

	assert.ErrorIs(t, e.d.SetSubpictureImage(id, make([]byte, 32), 8), StatusInvalidParameter, "stride too small")
	assert.ErrorIs(t, e.d.SetSubpictureImage(id, make([]byte, 20), 16), StatusInvalidParameter, "data too short")
	assert.ErrorIs(t, e.d.SetSubpictureImage(id+1, make([]byte, 32), 16), StatusInvalidSubpicture)

	pix := make([]byte, 40)
	require.NoError(t, e.d.SetSubpictureImage(id, pix, 20))
	pix[0] = 0xFF

	sub, _ := e.d.subpictures.Lookup(uint32(id))
	assert.True(t, sub.dirty)
	assert.Equal(t, uint32(20), sub.pitch)
	assert.Zero(t, sub.pending[0], "pixels are copied")
	assert.Zero(t, e.dev.bitmapUploads, "upload waits for composition")
}

func TestAssociateSubpicture(t *testing.T) {
	e := newTestEnv(t)
	ids, err := e.d.CreateSurfaces(64, 64, RTFormatYUV420, 2)
	require.NoError(t, err)
	sub, err := e.d.CreateSubpicture(16, 16)
	require.NoError(t, err)

	require.NoError(t, e.d.AssociateSubpicture(sub, ids, fullRect(16, 16), fullRect(8, 8)))
	for _, id := range ids {
		s, _ := e.d.surfaces.Lookup(uint32(id))
		require.Len(t, s.assocs, 1)
		assert.Equal(t, sub, s.assocs[0].subpicture)
	}

	require.NoError(t, e.d.AssociateSubpicture(sub, ids[:1], fullRect(16, 16), fullRect(4, 4)))
	s0, _ := e.d.surfaces.Lookup(uint32(ids[0]))
	require.Len(t, s0.assocs, 1, "reassociation updates in place")
	assert.Equal(t, fullRect(4, 4), s0.assocs[0].dst)

	err = e.d.AssociateSubpicture(sub, []SurfaceID{ids[0], ids[1] + 7}, fullRect(1, 1), fullRect(1, 1))
	assert.True(t, IsInvalidSurface(err))
	assert.Equal(t, fullRect(4, 4), s0.assocs[0].dst, "failed association changes nothing")

	assert.ErrorIs(t, e.d.AssociateSubpicture(sub+1, ids, fullRect(1, 1), fullRect(1, 1)), StatusInvalidSubpicture)
}

func TestDeassociateSubpicture(t *testing.T) {
	e := newTestEnv(t)
	ids, err := e.d.CreateSurfaces(64, 64, RTFormatYUV420, 2)
	require.NoError(t, err)
	a, err := e.d.CreateSubpicture(16, 16)
	require.NoError(t, err)
	b, err := e.d.CreateSubpicture(16, 16)
	require.NoError(t, err)
	require.NoError(t, e.d.AssociateSubpicture(a, ids, fullRect(16, 16), fullRect(8, 8)))
	require.NoError(t, e.d.AssociateSubpicture(b, ids, fullRect(16, 16), fullRect(8, 8)))

	require.NoError(t, e.d.DeassociateSubpicture(a, ids[:1]))
	s0, _ := e.d.surfaces.Lookup(uint32(ids[0]))
	s1, _ := e.d.surfaces.Lookup(uint32(ids[1]))
	require.Len(t, s0.assocs, 1)
	assert.Equal(t, b, s0.assocs[0].subpicture)
	assert.Len(t, s1.assocs, 2)
}

func TestDestroySubpictureDeassociates(t *testing.T) {
	e, s, sub := overlayEnv(t)

	require.NoError(t, e.d.DestroySubpicture(sub))
	assert.Zero(t, e.dev.liveCount("bitmap"))
	surf, _ := e.d.surfaces.Lookup(uint32(s))
	assert.Empty(t, surf.assocs)

	require.NoError(t, e.d.PutSurface(s, testDrawable, fullRect(200, 100), fullRect(800, 600), nil, 0))
	assert.Empty(t, e.dev.bitmapRenders)

	assert.ErrorIs(t, e.d.DestroySubpicture(sub), StatusInvalidSubpicture)
}
