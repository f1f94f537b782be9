package buddy

// FrameAllocator is the narrow single-frame-order contract the rest of a
// kernel bring-up depends on (spec.md §6.1): one frame in, one frame back,
// at whatever order the integrator picked up front. It deliberately
// doesn't expose Allocator's multi-order surface, so a caller that only
// ever wants one block size doesn't have to thread an order through every
// call site.
type FrameAllocator interface {
	AllocateFrame() (uint64, error)
	DeallocateFrame(addr uint64) error
}

// frameAllocator adapts an Allocator to FrameAllocator by fixing every
// call to a single order. The reference bootloader uses order 1
// (two-frame blocks); see NewFrameAllocator.
type frameAllocator struct {
	alloc *Allocator
	order int
}

// NewFrameAllocator returns a FrameAllocator backed by alloc, with every
// AllocateFrame/DeallocateFrame call delegating to alloc's AllocateOrder/
// DeallocateOrder at the given order.
func NewFrameAllocator(alloc *Allocator, order int) FrameAllocator {
	return &frameAllocator{alloc: alloc, order: order}
}

func (f *frameAllocator) AllocateFrame() (uint64, error) {
	return f.alloc.AllocateOrder(f.order)
}

func (f *frameAllocator) DeallocateFrame(addr uint64) error {
	f.alloc.DeallocateOrder(f.order, addr)
	return nil
}

var _ FrameAllocator = (*frameAllocator)(nil)
