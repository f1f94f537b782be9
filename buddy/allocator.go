// Package buddy implements a multi-region buddy frame allocator backed by
// hierarchical bitmaps. Each managed Region tracks its own per-order free
// state; the Allocator fans a request out across regions, consulting a
// per-region, per-order cache bit before touching that region's bitmaps so
// that a region known to be empty at some order is skipped in O(1).
package buddy

import (
	"fmt"
	"io"
	"log"
	"os"
)

// debugLog is silent unless ROS_DEBUG is set in the environment, mirroring
// the teacher's ARM_EMULATOR_DEBUG-gated logger.
var debugLog = newDebugLogger()

func newDebugLogger() *log.Logger {
	if os.Getenv("ROS_DEBUG") == "" {
		return log.New(io.Discard, "buddy: ", log.Lshortfile)
	}
	return log.New(os.Stderr, "buddy: ", log.Lshortfile)
}

// ErrMaxCapacity is returned by AddRegion when the allocator has already
// reached its configured region capacity.
var ErrMaxCapacity = fmt.Errorf("buddy: allocator region capacity reached")

// ErrNotEnoughSpace is returned by Allocate/AllocateOrder when no region
// can satisfy the request.
var ErrNotEnoughSpace = fmt.Errorf("buddy: not enough space to satisfy allocation")

// ErrOrderOutOfRange is returned when the requested order is not one the
// allocator was configured for.
var ErrOrderOutOfRange = fmt.Errorf("buddy: order out of range")

// Config describes the static shape of an Allocator: how many distinct
// block orders it tracks, the byte size of an order-0 frame, and how many
// disjoint physical regions it can ever manage.
type Config struct {
	Orders      int
	FrameSize   uint64
	MaxRegions  int
}

// DefaultConfig mirrors a typical x86_64 bring-up: 11 orders (4KiB up to
// 4MiB blocks), 4KiB frames, room for 32 memory-map regions.
func DefaultConfig() Config {
	return Config{Orders: 11, FrameSize: 4096, MaxRegions: 32}
}

// Allocator manages zero or more disjoint Regions, each with its own
// per-order LayeredBitmaps, plus a per-order region cache bitmap that lets
// Allocate skip regions known to have no free block at the requested order.
type Allocator struct {
	cfg     Config
	regions []*Region

	// regionCache[order] has bit i set when regions[i] has at least one
	// free block at that order, so Allocate can hierarchically search
	// across regions the same way a Region searches across blocks.
	regionCache []*LayeredBitmap

	totalFrames     uint64
	allocatedFrames uint64
	allocatedBytes  uint64
	fragmentedBytes uint64
}

// allocatorLayoutBytes models the byte cost of the allocator's own
// bookkeeping — its region slice and its per-order region-cache
// LayeredBitmaps — the same way metaFramesForLayout models a Region's own
// bitmap cost, so NewAllocator can reserve frames for it up front.
func allocatorLayoutBytes(cfg Config) uint64 {
	const regionPtrBytes = 8
	total := uint64(cfg.MaxRegions) * regionPtrBytes
	for order := 0; order < cfg.Orders; order++ {
		total += layeredBitmapBytes(uint64(cfg.MaxRegions))
	}
	return total
}

// NewAllocator builds an Allocator over an initial physical range
// [base, base+frames*cfg.FrameSize), configured to manage up to
// regionsCapacity disjoint regions. It models the byte cost of its own
// layout (the region slice plus the per-order region-cache LayeredBitmaps),
// reserves that many frames at the front of the modeled address space the
// way a Region reserves frames for its own bitmaps, and seeds the first
// region with what remains. It fails with ErrRegionTooSmall if frames
// cannot even cover that reservation.
func NewAllocator(base, frames uint64, regionsCapacity int, cfg Config) (*Allocator, error) {
	cfg.MaxRegions = regionsCapacity

	metaFrames := ceilDivU64(allocatorLayoutBytes(cfg), cfg.FrameSize)
	if metaFrames >= frames {
		return nil, ErrRegionTooSmall
	}

	regionCache := make([]*LayeredBitmap, cfg.Orders)
	for o := range regionCache {
		regionCache[o] = NewLayeredBitmap(cfg.MaxRegions)
	}

	a := &Allocator{
		cfg:         cfg,
		regions:     make([]*Region, 0, cfg.MaxRegions),
		regionCache: regionCache,
	}

	if err := a.AddRegion(base+metaFrames*cfg.FrameSize, frames-metaFrames); err != nil {
		return nil, err
	}

	debugLog.Printf("allocator constructed base=%#x frames=%d meta_frames=%d", base, frames, metaFrames)
	return a, nil
}

// AddRegion registers a new physical range [base, base+frames*FrameSize)
// with the allocator. It fails with ErrMaxCapacity once MaxRegions regions
// are registered, or propagates ErrRegionTooSmall from the underlying
// Region construction.
func (a *Allocator) AddRegion(base, frames uint64) error {
	if len(a.regions) >= a.cfg.MaxRegions {
		return ErrMaxCapacity
	}

	r, err := NewRegion(base, frames, a.cfg.Orders, a.cfg.FrameSize)
	if err != nil {
		return err
	}

	idx := len(a.regions)
	a.regions = append(a.regions, r)
	a.totalFrames += r.UsableFrames

	for order := 0; order < a.cfg.Orders; order++ {
		if r.Counts(order) > 0 {
			a.regionCache[order].Set(idx)
		}
	}

	debugLog.Printf("added region base=%#x frames=%d usable=%d", base, frames, r.UsableFrames)
	return nil
}

// AddRegions registers every (base, frames) pair, stopping at the first
// error.
func (a *Allocator) AddRegions(ranges [][2]uint64) error {
	for _, rng := range ranges {
		if err := a.AddRegion(rng[0], rng[1]); err != nil {
			return err
		}
	}
	return nil
}

// Allocate reserves a block large enough to hold size bytes, rounding up
// to the smallest order whose block size (2^order * FrameSize) covers it,
// and returns its base address. The gap between that block's actual size
// and size is tracked as fragmentation (see FragmentedBytes).
func (a *Allocator) Allocate(size uint64) (uint64, error) {
	order, err := a.orderForSize(size)
	if err != nil {
		return 0, err
	}

	addr, err := a.AllocateOrder(order)
	if err != nil {
		return 0, err
	}

	blockBytes := (uint64(1) << uint(order)) * a.cfg.FrameSize
	a.allocatedBytes += size
	a.fragmentedBytes += blockBytes - size
	return addr, nil
}

// Deallocate returns a block of size bytes previously obtained from
// Allocate, reversing its accounting. Per spec.md §4.4/§7, deallocation is
// infallible from the caller's perspective: an out-of-range size or an
// addr not owned by any region is a silent no-op, not an error.
func (a *Allocator) Deallocate(addr uint64, size uint64) {
	order, err := a.orderForSize(size)
	if err != nil {
		return
	}

	if !a.deallocateOrder(order, addr) {
		return
	}

	blockBytes := (uint64(1) << uint(order)) * a.cfg.FrameSize
	a.allocatedBytes -= size
	a.fragmentedBytes -= blockBytes - size
}

// orderForSize returns the smallest order whose block size covers size
// bytes.
func (a *Allocator) orderForSize(size uint64) (int, error) {
	frames := ceilDivU64(size, a.cfg.FrameSize)
	if frames == 0 {
		frames = 1
	}
	order := ilogCeilU64(2, frames)
	if order < 0 || order >= a.cfg.Orders {
		return 0, ErrOrderOutOfRange
	}
	return order, nil
}

// AllocateOrder reserves a 2^order-frame block and returns its base
// address. It searches regions in registration order, using the regional
// cache bit to skip regions with nothing free at this order before
// consulting the region's own bitmaps. When no region has a free block at
// this order, it moves up one order at a time and asks the first region
// with a larger free block to split it.
func (a *Allocator) AllocateOrder(order int) (uint64, error) {
	if order < 0 || order >= a.cfg.Orders {
		return 0, ErrOrderOutOfRange
	}

	for o := order; o < a.cfg.Orders; o++ {
		cache := a.regionCache[o]
		for {
			found, ok := cache.FindFirstFreeIndexH()
			if !ok {
				break
			}

			r := a.regions[found]
			if alloc, ok := r.Allocate(order); ok {
				a.allocatedFrames += uint64(1) << uint(order)
				a.refreshRegionCache(found)
				debugLog.Printf("allocate order=%d region=%d addr=%#x", order, found, alloc.Addr)
				return alloc.Addr, nil
			}

			// The region's cache bit named a free block the region
			// could not supply; clear it and keep scanning.
			cache.Clear(found)
		}
	}
	return 0, ErrNotEnoughSpace
}

// DeallocateOrder returns a 2^order-frame block at addr to whichever
// region contains it. Per spec.md §4.4/§7, an out-of-range order or an
// addr not owned by any region is a silent no-op, not an error:
// deallocation is infallible from the caller's perspective.
func (a *Allocator) DeallocateOrder(order int, addr uint64) {
	if order < 0 || order >= a.cfg.Orders {
		return
	}
	a.deallocateOrder(order, addr)
}

// deallocateOrder does the actual region lookup and reports whether addr
// was found in some region, so Deallocate can decide whether to adjust
// its byte accounting.
func (a *Allocator) deallocateOrder(order int, addr uint64) bool {
	for idx, r := range a.regions {
		if !r.Contains(addr) {
			continue
		}
		r.Deallocate(order, addr)
		a.allocatedFrames -= uint64(1) << uint(order)
		a.refreshRegionCache(idx)
		debugLog.Printf("deallocate order=%d region=%d addr=%#x", order, idx, addr)
		return true
	}
	return false
}

func (a *Allocator) refreshRegionCache(regionIdx int) {
	r := a.regions[regionIdx]
	for order := 0; order < a.cfg.Orders; order++ {
		if r.Counts(order) > 0 {
			a.regionCache[order].Set(regionIdx)
		} else {
			a.regionCache[order].Clear(regionIdx)
		}
	}
}

// TotalFrames is the sum of every region's usable frame count.
func (a *Allocator) TotalFrames() uint64 { return a.totalFrames }

// AllocatedFrames is the number of order-0-equivalent frames currently
// outstanding.
func (a *Allocator) AllocatedFrames() uint64 { return a.allocatedFrames }

// FreeFrames is TotalFrames minus AllocatedFrames.
func (a *Allocator) FreeFrames() uint64 { return a.totalFrames - a.allocatedFrames }

// RegionCount reports how many regions have been registered.
func (a *Allocator) RegionCount() int { return len(a.regions) }

// OrderCounts reports the current free-block count at order, summed
// across every region.
func (a *Allocator) OrderCounts(order int) int {
	total := 0
	for _, r := range a.regions {
		total += r.Counts(order)
	}
	return total
}

