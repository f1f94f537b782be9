package buddy

import (
	"fmt"

	"github.com/rosgo/bringup/bitmap"
)

// RegionAllocation reports the outcome of a successful Region.Allocate.
type RegionAllocation struct {
	Addr           uint64
	AllocatedOrder int
	SplitOrder     int
}

// RegionDeallocation reports the outcome of a Region.Deallocate.
type RegionDeallocation struct {
	DeallocatedOrder int
	MergeOrder       int
}

// ErrRegionTooSmall is returned by NewRegion when the region cannot hold
// even its own per-order bitmap metadata.
var ErrRegionTooSmall = fmt.Errorf("buddy: region too small to hold its own metadata")

// Region is a contiguous physical range tracked by one set of per-order
// LayeredBitmaps. Bit i of the order-k bitmap is set iff the order-k block
// at index i is currently free.
type Region struct {
	UsableFramesBase uint64
	UsableFrames     uint64

	orders    int
	frameSize uint64
	counts    []int
	bitmaps   []*LayeredBitmap
}

// NewRegion builds a Region over (base, frames). base must be frameSize
// aligned. It fails with ErrRegionTooSmall if the region cannot support the
// reserved metadata at this order count (modeled, not actually placed in
// memory — see SPEC_FULL.md §3.1).
func NewRegion(base, frames uint64, orders int, frameSize uint64) (*Region, error) {
	if base%frameSize != 0 {
		panic("buddy: region base is not frame aligned")
	}

	maxOrder := ilogCeilU64(2, frames)
	if maxOrder > orders-1 {
		maxOrder = orders - 1
	}
	metaFrames := metaFramesForLayout(frames, maxOrder, frameSize)
	if metaFrames >= frames {
		return nil, ErrRegionTooSmall
	}

	usableFrames := frames - metaFrames
	if usable := ilogCeilU64(2, usableFrames); usable < maxOrder {
		maxOrder = usable
	}

	r := &Region{
		UsableFramesBase: base + metaFrames*frameSize,
		UsableFrames:     usableFrames,
		orders:           orders,
		frameSize:        frameSize,
		counts:           make([]int, orders),
		bitmaps:          make([]*LayeredBitmap, maxOrder+1),
	}
	r.populate(maxOrder)
	return r, nil
}

// metaFramesForLayout models the byte cost the original, heap-less
// implementation would have paid for its per-order bitmap metadata at this
// capacity and order count: the same layer sizing NewLayeredBitmap uses,
// summed across every order from 0 to maxOrder. This Go port keeps its
// bitmaps on the heap (see SPEC_FULL.md §3.1) but preserves the accounting
// so usable-frame math stays bit-for-bit compatible with the original
// layout.
func metaFramesForLayout(frames uint64, maxOrder int, frameSize uint64) uint64 {
	var totalBytes uint64
	for order := 0; order <= maxOrder; order++ {
		totalBytes += layeredBitmapBytes(frames >> uint(order))
	}
	return ceilDivU64(totalBytes, frameSize)
}

// layeredBitmapBytes mirrors NewLayeredBitmap's layer-count and per-layer
// sizing to model the byte footprint of a LayeredBitmap over n base bits,
// without constructing one.
func layeredBitmapBytes(n uint64) uint64 {
	numLayers := ilogCeil(cacheEntryBits, int(n))
	if numLayers < 1 {
		numLayers = 1
	}
	if numLayers > maxLayers {
		numLayers = maxLayers
	}

	size := n
	total := bitmapWordBytes(size)
	for l := 1; l < numLayers; l++ {
		size = ceilDivU64(size, uint64(cacheEntryBits))
		total += bitmapWordBytes(size)
	}
	return total
}

// bitmapWordBytes is the byte footprint of a bitmap.Bitmap over n bits:
// one 8-byte word per EntryBits bits.
func bitmapWordBytes(n uint64) uint64 {
	return ceilDivU64(n, bitmap.EntryBits) * 8
}

func ceilDivU64(a, b uint64) uint64 {
	if b == 0 {
		return 0
	}
	return (a + b - 1) / b
}

// populate performs the initial free-block decomposition: from the highest
// representable order down to 0, mark the frames representable as whole
// blocks at this order but not at any higher order.
func (r *Region) populate(maxOrder int) {
	for order := maxOrder; order >= 0; order-- {
		entries := int(r.UsableFrames >> uint(order))
		r.bitmaps[order] = NewLayeredBitmap(entries)
	}

	carry := 0
	for order := maxOrder; order >= 0; order-- {
		bm := r.bitmaps[order]
		for index := carry; index < bm.Len(); index++ {
			bm.Set(index)
			r.counts[order]++
		}
		carry = bm.Len() * 2
	}
}

func (r *Region) bitmap(order int) *LayeredBitmap {
	return r.bitmaps[order]
}

// Allocate tries to satisfy an order-k request, splitting a higher-order
// free block if no exact match is free.
func (r *Region) Allocate(order int) (RegionAllocation, bool) {
	if order >= len(r.bitmaps) {
		return RegionAllocation{}, false
	}

	if index, ok := r.bitmap(order).FindFirstFreeIndexH(); ok {
		r.bitmap(order).Clear(index)
		r.counts[order]--
		return RegionAllocation{
			Addr:           r.addrFromOrderAndIndex(order, index),
			AllocatedOrder: order,
			SplitOrder:     order,
		}, true
	}

	for curOrder := order + 1; curOrder < len(r.bitmaps); curOrder++ {
		index, ok := r.bitmap(curOrder).FindFirstFreeIndexH()
		if !ok {
			continue
		}

		index = r.split(curOrder, index, order)
		r.bitmap(order).Clear(index)
		r.counts[order]--
		return RegionAllocation{
			Addr:           r.addrFromOrderAndIndex(order, index),
			AllocatedOrder: order,
			SplitOrder:     curOrder,
		}, true
	}

	return RegionAllocation{}, false
}

// split clears the free bit found at (order, index), then walks downward
// to targetOrder marking the other half of each split as free, returning
// the index of the target-order block that is about to be handed out
// (still marked free in targetOrder's bitmap until the caller clears it).
func (r *Region) split(order, index, targetOrder int) int {
	r.bitmap(order).Clear(index)
	r.counts[order]--
	index *= 2

	for o := order - 1; o >= 0; o-- {
		r.counts[o]++
		r.bitmap(o).Set(index + 1)
		if o == targetOrder {
			r.bitmap(o).Set(index)
			r.counts[o]++
			break
		}
		index *= 2
	}

	return index
}

// Deallocate frees the order-k block at addr and merges upward while the
// buddy at each level is also free.
func (r *Region) Deallocate(order int, addr uint64) RegionDeallocation {
	index := r.indexFromOrderAndAddr(order, addr)
	r.bitmap(order).Set(index)
	r.counts[order]++

	return RegionDeallocation{
		DeallocatedOrder: order,
		MergeOrder:       r.merge(order, index),
	}
}

func (r *Region) merge(order, index int) int {
	for o := order; o < len(r.bitmaps)-1; o++ {
		pair := index &^ 1
		buddyIdx := index ^ 1
		bm := r.bitmap(o)
		if buddyIdx >= bm.Len() {
			return o
		}
		if bm.Get(pair) && bm.Get(buddyIdx) {
			bm.Clear(pair)
			bm.Clear(buddyIdx)
			r.counts[o] -= 2
			r.bitmap(o + 1).Set(index / 2)
			r.counts[o+1]++
			index /= 2
			continue
		}
		return o
	}

	return len(r.bitmaps) - 1
}

func (r *Region) addrFromOrderAndIndex(order, index int) uint64 {
	return r.UsableFramesBase + uint64(index)*(uint64(1)<<uint(order))*r.frameSize
}

func (r *Region) indexFromOrderAndAddr(order int, addr uint64) int {
	return int((addr - r.UsableFramesBase) / ((uint64(1) << uint(order)) * r.frameSize))
}

// Counts returns the current free-block count for order, or 0 if the
// region has no bitmap at that order (its usable frames were too few to
// ever reach it).
func (r *Region) Counts(order int) int {
	if order >= len(r.counts) {
		return 0
	}
	return r.counts[order]
}

// Contains reports whether addr falls inside this region's usable range.
func (r *Region) Contains(addr uint64) bool {
	end := r.UsableFramesBase + r.UsableFrames*r.frameSize
	return addr >= r.UsableFramesBase && addr < end
}

func ilogCeilU64(base, n uint64) int {
	if n <= 1 {
		return 0
	}
	count := 0
	size := n
	for size > 1 {
		size /= base
		count++
	}
	pow := uint64(1)
	for i := 0; i < count; i++ {
		pow *= base
	}
	if pow < n {
		count++
	}
	return count
}
