package buddy_test

import (
	"testing"

	"github.com/rosgo/bringup/buddy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayeredBitmapSetAgreesWithLinearScan(t *testing.T) {
	lb := buddy.NewLayeredBitmap(200)
	lb.Set(127)

	h, ok := lb.FindFirstFreeIndexH()
	require.True(t, ok)
	assert.Equal(t, 127, h)

	linear, ok := lb.FindFirstFreeIndex()
	require.True(t, ok)
	assert.Equal(t, 127, linear)

	lb.Set(7)
	h, ok = lb.FindFirstFreeIndexH()
	require.True(t, ok)
	assert.Equal(t, 7, h)
}

func TestLayeredBitmapClearRemovesSummary(t *testing.T) {
	lb := buddy.NewLayeredBitmap(200)
	lb.Set(127)
	lb.Clear(127)

	_, ok := lb.FindFirstFreeIndexH()
	assert.False(t, ok)
	_, ok = lb.FindFirstFreeIndex()
	assert.False(t, ok)
}

func TestLayeredBitmapLargeAgreesWithLinearScan(t *testing.T) {
	const frames = 64 * 1024 * 1024 * 1024 / 4096
	lb := buddy.NewLayeredBitmap(frames)

	for _, idx := range []int{0, 1, 4095, 4096, 1 << 20, frames - 1} {
		lb.Set(idx)

		h, ok := lb.FindFirstFreeIndexH()
		require.True(t, ok)
		linear, ok2 := lb.FindFirstFreeIndex()
		require.True(t, ok2)
		assert.Equal(t, linear, h)

		lb.Clear(idx)
	}
}

func TestLayeredBitmapEmptyFindsNothing(t *testing.T) {
	lb := buddy.NewLayeredBitmap(4096)
	_, ok := lb.FindFirstFreeIndexH()
	assert.False(t, ok)
}

func TestLayeredBitmapMultipleSetClearSequence(t *testing.T) {
	lb := buddy.NewLayeredBitmap(10000)
	for _, idx := range []int{42, 9999, 0, 5000} {
		lb.Set(idx)
	}

	h, ok := lb.FindFirstFreeIndexH()
	require.True(t, ok)
	assert.Equal(t, 0, h)

	lb.Clear(0)
	h, ok = lb.FindFirstFreeIndexH()
	require.True(t, ok)
	assert.Equal(t, 42, h)

	lb.Clear(42)
	lb.Clear(5000)
	lb.Clear(9999)
	_, ok = lb.FindFirstFreeIndexH()
	assert.False(t, ok)
}
