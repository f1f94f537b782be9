package bitmap_test

import (
	"testing"

	"github.com/rosgo/bringup/bitmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGetClear(t *testing.T) {
	b := bitmap.New(7)
	b.Set(0)
	b.Set(1)
	b.Set(2)
	b.Set(3)
	b.Set(4)
	b.Set(6)

	assert.True(t, b.Get(0))
	assert.True(t, b.Get(1))
	assert.True(t, b.Get(2))
	assert.True(t, b.Get(3))
	assert.True(t, b.Get(4))
	assert.False(t, b.Get(5))
	assert.True(t, b.Get(6))

	b.Clear(2)
	assert.False(t, b.Get(2))
}

func TestFindFirstFreeIndexFrom(t *testing.T) {
	b := bitmap.New(200)
	b.Set(127)
	idx, ok := b.FindFirstFreeIndexFrom(0)
	require.True(t, ok)
	assert.Equal(t, 127, idx)

	b.Set(7)
	idx, ok = b.FindFirstFreeIndexFrom(0)
	require.True(t, ok)
	assert.Equal(t, 7, idx)
}

func TestFindFirstFreeIndexFromEmpty(t *testing.T) {
	b := bitmap.New(64)
	_, ok := b.FindFirstFreeIndexFrom(0)
	assert.False(t, ok)
}

func TestTrailingPaddingDoesNotFalsePositive(t *testing.T) {
	// 70 bits needs 2 words; the last word has 58 padding bits pinned to 1.
	b := bitmap.New(70)
	_, ok := b.FindFirstFreeIndexFrom(0)
	assert.False(t, ok, "padding bits must not appear as free")
}

func TestLastBitReportedCorrectly(t *testing.T) {
	b := bitmap.New(65)
	b.Set(b.Len() - 1)
	idx, ok := b.FindFirstFreeIndexFrom(0)
	require.True(t, ok)
	assert.Equal(t, b.Len()-1, idx)
}

func TestGetOutOfRangePanics(t *testing.T) {
	b := bitmap.New(4)
	assert.Panics(t, func() { b.Get(4) })
}
