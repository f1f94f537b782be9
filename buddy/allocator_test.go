package buddy_test

import (
	"math/rand"
	"testing"

	"github.com/rosgo/bringup/buddy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFrameSize = 4096

func newTestAllocator(t *testing.T) *buddy.Allocator {
	t.Helper()
	cfg := buddy.Config{Orders: 8, FrameSize: testFrameSize, MaxRegions: 4}
	a, err := buddy.NewAllocator(0, 4096, cfg.MaxRegions, cfg)
	require.NoError(t, err)
	require.NoError(t, a.AddRegion(0x10000000, 4096))
	return a
}

func TestAllocatorAllocateDeallocateRoundTrip(t *testing.T) {
	a := newTestAllocator(t)
	total := a.TotalFrames()

	addr, err := a.Allocate(testFrameSize)
	require.NoError(t, err)
	assert.Equal(t, total-1, a.FreeFrames())

	a.Deallocate(addr, testFrameSize)
	assert.Equal(t, total, a.FreeFrames())
}

func TestAllocatorAllocateOrderAccounting(t *testing.T) {
	a := newTestAllocator(t)
	total := a.TotalFrames()

	addr, err := a.AllocateOrder(3)
	require.NoError(t, err)
	assert.Equal(t, total-8, a.FreeFrames())

	a.DeallocateOrder(3, addr)
	assert.Equal(t, total, a.FreeFrames())
}

func TestAllocatorOrderOutOfRange(t *testing.T) {
	a := newTestAllocator(t)
	_, err := a.AllocateOrder(99)
	assert.ErrorIs(t, err, buddy.ErrOrderOutOfRange)
}

func TestAllocatorMaxRegionsEnforced(t *testing.T) {
	cfg := buddy.Config{Orders: 4, FrameSize: testFrameSize, MaxRegions: 1}
	a, err := buddy.NewAllocator(0, 64, cfg.MaxRegions, cfg)
	require.NoError(t, err)

	err = a.AddRegion(0x1000000, 64)
	assert.ErrorIs(t, err, buddy.ErrMaxCapacity)
}

func TestAllocatorExhaustionReturnsError(t *testing.T) {
	cfg := buddy.Config{Orders: 2, FrameSize: testFrameSize, MaxRegions: 1}
	a, err := buddy.NewAllocator(0, 8, cfg.MaxRegions, cfg)
	require.NoError(t, err)

	for {
		if _, err := a.Allocate(testFrameSize); err != nil {
			assert.ErrorIs(t, err, buddy.ErrNotEnoughSpace)
			break
		}
	}
}

// TestAllocatorDeallocateUnknownAddressIsNoOp exercises spec.md §4.4/§7:
// deallocating an address not owned by any region is a silent no-op, not
// an error.
func TestAllocatorDeallocateUnknownAddressIsNoOp(t *testing.T) {
	a := newTestAllocator(t)
	before := a.FreeFrames()

	a.DeallocateOrder(0, 0xdeadbeef)
	assert.Equal(t, before, a.FreeFrames())

	a.Deallocate(0xdeadbeef, testFrameSize)
	assert.Equal(t, before, a.FreeFrames())
}

// TestAllocatorRandomizedWorkloadPreservesInvariants allocates and frees a
// long randomized sequence of varying orders and checks that total free
// frames always returns to the starting total once every outstanding
// block has been released, and that free frame counts never go negative
// or exceed the total.
func TestAllocatorRandomizedWorkloadPreservesInvariants(t *testing.T) {
	cfg := buddy.Config{Orders: 6, FrameSize: testFrameSize, MaxRegions: 2}
	a, err := buddy.NewAllocator(0, 1<<16, cfg.MaxRegions, cfg)
	require.NoError(t, err)
	require.NoError(t, a.AddRegion(0x20000000, 1<<16))

	total := a.TotalFrames()
	rng := rand.New(rand.NewSource(1))

	type outstanding struct {
		order int
		addr  uint64
	}
	var live []outstanding

	for i := 0; i < 5000; i++ {
		if len(live) > 0 && rng.Intn(2) == 0 {
			idx := rng.Intn(len(live))
			item := live[idx]
			a.DeallocateOrder(item.order, item.addr)
			live = append(live[:idx], live[idx+1:]...)
			continue
		}

		order := rng.Intn(cfg.Orders)
		addr, err := a.AllocateOrder(order)
		if err != nil {
			assert.ErrorIs(t, err, buddy.ErrNotEnoughSpace)
			continue
		}
		live = append(live, outstanding{order: order, addr: addr})

		require.LessOrEqual(t, a.AllocatedFrames(), total)
		require.GreaterOrEqual(t, a.FreeFrames(), uint64(0))
	}

	for _, item := range live {
		a.DeallocateOrder(item.order, item.addr)
	}

	assert.Equal(t, total, a.FreeFrames())
	assert.Equal(t, uint64(0), a.AllocatedFrames())
}
