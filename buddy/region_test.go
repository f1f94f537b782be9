package buddy_test

import (
	"testing"

	"github.com/rosgo/bringup/buddy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frameSize = 4096

func TestNewRegionTooSmallFails(t *testing.T) {
	_, err := buddy.NewRegion(0, 1, 11, frameSize)
	assert.ErrorIs(t, err, buddy.ErrRegionTooSmall)
}

func TestRegionAllocateExactOrder(t *testing.T) {
	r, err := buddy.NewRegion(0, 1024, 11, frameSize)
	require.NoError(t, err)

	alloc, ok := r.Allocate(0)
	require.True(t, ok)
	assert.Equal(t, 0, alloc.AllocatedOrder)
	assert.Equal(t, 0, alloc.SplitOrder)
	assert.True(t, r.Contains(alloc.Addr))
}

func TestRegionAllocateSplitsHigherOrder(t *testing.T) {
	r, err := buddy.NewRegion(0, 3, 11, frameSize)
	require.NoError(t, err)

	before := r.Counts(1)
	require.Greater(t, before, 0)

	alloc, ok := r.Allocate(0)
	require.True(t, ok)
	assert.Equal(t, 1, alloc.SplitOrder)
	assert.Equal(t, before-1, r.Counts(1))
	assert.Equal(t, 1, r.Counts(0))
}

func TestRegionDeallocateMergesBuddies(t *testing.T) {
	r, err := buddy.NewRegion(0, 1024, 11, frameSize)
	require.NoError(t, err)

	a0, ok := r.Allocate(0)
	require.True(t, ok)
	a1, ok := r.Allocate(0)
	require.True(t, ok)

	before := r.Counts(1)
	r.Deallocate(0, a0.Addr)
	d := r.Deallocate(0, a1.Addr)

	assert.GreaterOrEqual(t, d.MergeOrder, 1)
	assert.Equal(t, before+1, r.Counts(1))
}

func TestRegionAllocateExhaustsSpace(t *testing.T) {
	r, err := buddy.NewRegion(0, 4, 11, frameSize)
	require.NoError(t, err)

	allocated := 0
	for {
		_, ok := r.Allocate(0)
		if !ok {
			break
		}
		allocated++
	}
	assert.Greater(t, allocated, 0)

	_, ok := r.Allocate(0)
	assert.False(t, ok)
}

func TestRegionAllocateUnsupportedOrderFails(t *testing.T) {
	r, err := buddy.NewRegion(0, 4, 11, frameSize)
	require.NoError(t, err)

	_, ok := r.Allocate(10)
	assert.False(t, ok)
}
