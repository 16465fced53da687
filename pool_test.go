//go:build !ios && !android && (amd64 || arm64)

package vdpva

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obinnaokechukwu/vdpva/vdpau"
)

func TestOutputPoolSurfaceSize(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		dw, dh       int
		wantW, wantH uint32
	}{
		{"smaller than display", 640, 480, 1920, 1080, 1920, 1080},
		{"larger than display", 3840, 2160, 1920, 1080, 3840, 2160},
		{"wider only", 2560, 720, 1920, 1080, 2560, 1080},
		{"taller only", 1280, 1440, 1920, 1080, 1920, 1440},
		{"equal", 1920, 1080, 1920, 1080, 1920, 1080},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEnv(t)
			e.display.width, e.display.height = tt.dw, tt.dh

			id, err := e.d.createOutputSurface(tt.w, tt.h)
			require.NoError(t, err)

			require.Len(t, e.dev.outputSizes, DefaultOutputSurfaces)
			for _, sz := range e.dev.outputSizes {
				assert.Equal(t, [2]uint32{tt.wantW, tt.wantH}, sz)
			}
			o, ok := e.d.outputs.Lookup(uint32(id))
			require.True(t, ok)
			assert.Equal(t, tt.wantW, o.surfaceWidth)
			assert.Equal(t, tt.wantH, o.surfaceHeight)
			assert.Equal(t, 1, e.display.sizeCalls, "display size is queried once")
		})
	}
}

func TestOutputPoolConfiguredSize(t *testing.T) {
	e := newTestEnv(t, func(c *Config) { c.OutputSurfaces = 6 })

	id, err := e.d.createOutputSurface(320, 240)
	require.NoError(t, err)
	o, _ := e.d.outputs.Lookup(uint32(id))
	assert.Equal(t, 6, o.ring.len())
	assert.Equal(t, 6, e.dev.liveCount("output"))
}

func TestOutputPoolCreateFailureLeavesNothing(t *testing.T) {
	for k := 0; k < DefaultOutputSurfaces; k++ {
		e := newTestEnv(t)
		e.dev.failOn["OutputSurfaceCreate"] = k + 1

		id, err := e.d.createOutputSurface(640, 480)
		require.Error(t, err)
		assert.Equal(t, outputID(InvalidID), id)
		assert.Equal(t, StatusAllocationFailed, StatusOf(err))

		// Surfaces 0..k-1 were created and destroyed in index order.
		assert.Len(t, e.dev.outputsCreated, k)
		assert.Equal(t, e.dev.outputsCreated, e.dev.outputsFreed)
		assert.Zero(t, e.dev.liveCount("output"))
		assert.Zero(t, e.d.outputs.Len())
	}
}

func TestOutputPoolDestroy(t *testing.T) {
	e := newTestEnv(t)
	id, err := e.d.createOutputSurface(640, 480)
	require.NoError(t, err)
	o, _ := e.d.outputs.Lookup(uint32(id))
	require.NoError(t, e.d.bindFlipQueue(o, 7))

	mark := len(e.dev.calls)
	e.d.destroyOutputSurface(id)

	assert.Equal(t, []string{
		"PresentationQueueDestroy",
		"PresentationQueueTargetDestroy",
		"OutputSurfaceDestroy",
		"OutputSurfaceDestroy",
		"OutputSurfaceDestroy",
		"OutputSurfaceDestroy",
	}, e.dev.callsSince(mark))
	assert.Equal(t, e.dev.outputsCreated, e.dev.outputsFreed)
	assert.Empty(t, e.dev.live)
	assert.Zero(t, e.d.outputs.Len())
}

func TestOutputPoolDestroyUnknown(t *testing.T) {
	e := newTestEnv(t)
	e.d.destroyOutputSurface(InvalidID)
	e.d.destroyOutputSurface(outputIDOffset + 3)
	assert.Empty(t, e.dev.calls)
}

func TestOutputPoolDestroyLogsFailures(t *testing.T) {
	e := newTestEnv(t)
	id, err := e.d.createOutputSurface(640, 480)
	require.NoError(t, err)

	e.dev.failOn["OutputSurfaceDestroy"] = 2
	e.d.destroyOutputSurface(id)

	// The failing slot does not stop the others from being released.
	assert.Equal(t, 4, e.dev.counts["OutputSurfaceDestroy"])
	assert.Zero(t, e.d.outputs.Len())
}

func TestOutputPoolRejectsEmptySize(t *testing.T) {
	e := newTestEnv(t)
	_, err := e.d.createOutputSurface(0, 480)
	assert.ErrorIs(t, err, StatusInvalidParameter)
	assert.Empty(t, e.dev.calls)
}

func TestRing(t *testing.T) {
	r := newRing(3)
	for i := range r.slots {
		assert.Equal(t, vdpau.OutputSurface(vdpau.InvalidHandle), r.slots[i])
		r.slots[i] = vdpau.OutputSurface(10 + i)
	}

	var seen []vdpau.OutputSurface
	for range 7 {
		seen = append(seen, r.current())
		r.advance()
	}
	assert.Equal(t, []vdpau.OutputSurface{10, 11, 12, 10, 11, 12, 10}, seen)
	assert.Equal(t, 7%3, r.index())
	assert.Equal(t, 1, r.find(11))
	assert.Equal(t, -1, r.find(99))
	assert.Equal(t, -1, r.find(vdpau.InvalidHandle))
}

func TestOutputPoolIsIdle(t *testing.T) {
	e := newTestEnv(t)
	o := newPool(t, e)

	mark := len(e.dev.calls)
	idle, err := o.isIdle(e.dev, 0)
	require.NoError(t, err)
	assert.True(t, idle, "unbound slots are idle")
	assert.Empty(t, e.dev.callsSince(mark))

	require.NoError(t, e.d.bindFlipQueue(o, 42))
	e.dev.queueStatus = vdpau.QueueStatusQueued
	idle, err = o.isIdle(e.dev, 0)
	require.NoError(t, err)
	assert.False(t, idle)

	e.dev.queueStatus = vdpau.QueueStatusIdle
	idle, err = o.isIdle(e.dev, 0)
	require.NoError(t, err)
	assert.True(t, idle)

	e.dev.failOn["PresentationQueueQuerySurfaceStatus"] = 3
	_, err = o.isIdle(e.dev, 1)
	assert.ErrorIs(t, err, vdpau.StatusResources)
}
