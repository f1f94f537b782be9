package buddy

import "github.com/rosgo/bringup/bitmap"

// maxLayers caps the hierarchy depth a LayeredBitmap can grow to,
// regardless of how large len is. ENTRY_BITS^2 per layer means 5 layers
// cover lengths well past anything a real frame count could need.
const maxLayers = 5

// cacheEntryBits is the number of lower-layer bits a single summary bit in
// the next layer stands for: one summary bit per EntryBits words.
const cacheEntryBits = bitmap.EntryBits * bitmap.EntryBits

// LayeredBitmap is a stack of up to maxLayers plain bitmaps. Layer 0 is the
// bitmap of actual free/used state; a bit of layer L+1 is set whenever any
// of the EntryBits words of layer L it covers holds a set bit, so a
// hierarchical scan can skip whole dead subtrees instead of walking every
// word of a huge region.
type LayeredBitmap struct {
	layers []*bitmap.Bitmap
}

// NewLayeredBitmap builds a LayeredBitmap covering n base bits.
func NewLayeredBitmap(n int) *LayeredBitmap {
	numLayers := ilogCeil(cacheEntryBits, n)
	if numLayers < 1 {
		numLayers = 1
	}
	if numLayers > maxLayers {
		numLayers = maxLayers
	}

	layers := make([]*bitmap.Bitmap, numLayers)
	layers[0] = bitmap.New(n)
	size := n
	for l := 1; l < numLayers; l++ {
		size = ceilDiv(size, cacheEntryBits)
		layers[l] = bitmap.New(size)
	}

	return &LayeredBitmap{layers: layers}
}

// Len returns the number of base-layer bits.
func (lb *LayeredBitmap) Len() int {
	return lb.layers[0].Len()
}

// Get returns the base-layer bit at index.
func (lb *LayeredBitmap) Get(index int) bool {
	return lb.layers[0].Get(index)
}

// Set sets the base-layer bit at index and propagates the summary upward,
// setting each covering summary bit that is not already set.
func (lb *LayeredBitmap) Set(index int) {
	lb.layers[0].Set(index)
	lb.cacheSet(index, 0)
}

func (lb *LayeredBitmap) cacheSet(index, layer int) {
	if layer == len(lb.layers)-1 {
		return
	}

	higherBitIndex := bitmap.EntryIndex(index) / bitmap.EntryBits
	if lb.layers[layer+1].Get(higherBitIndex) {
		return
	}
	lb.layers[layer+1].Set(higherBitIndex)
	lb.cacheSet(higherBitIndex, layer+1)
}

// Clear clears the base-layer bit at index and propagates the summary
// upward whenever every word the covering summary bit stands for is
// all-zero.
func (lb *LayeredBitmap) Clear(index int) {
	lb.layers[0].Clear(index)
	lb.cacheClear(index, 0)
}

func (lb *LayeredBitmap) cacheClear(index, layer int) {
	if layer == len(lb.layers)-1 {
		return
	}

	higherBitIndex := bitmap.EntryIndex(index) / bitmap.EntryBits
	words := ceilDiv(lb.layers[layer].Len(), bitmap.EntryBits)
	for e := higherBitIndex * bitmap.EntryBits; e < words && e < (higherBitIndex+1)*bitmap.EntryBits; e++ {
		if lb.layers[layer].GetEntry(e) != 0 {
			return
		}
	}

	lb.layers[layer+1].Clear(higherBitIndex)
	lb.cacheClear(higherBitIndex, layer+1)
}

// FindFirstFreeIndexH finds the lowest set bit in layer 0 by descending
// from the topmost summary layer, at each level narrowing the search
// window to the word the previous layer pointed at.
func (lb *LayeredBitmap) FindFirstFreeIndexH() (int, bool) {
	index := 0
	for layer := len(lb.layers) - 1; layer >= 1; layer-- {
		found, ok := lb.layers[layer].FindFirstFreeIndexFrom(index)
		if !ok {
			return 0, false
		}
		index = found * bitmap.EntryBits
	}

	return lb.layers[0].FindFirstFreeIndexFrom(index)
}

// FindFirstFreeIndex is a direct linear scan of layer 0, used as a
// correctness reference for FindFirstFreeIndexH and as a fallback.
func (lb *LayeredBitmap) FindFirstFreeIndex() (int, bool) {
	return lb.layers[0].FindFirstFreeIndexFrom(0)
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// ilogCeil returns ceil(log_base(n)), with n <= 1 treated as requiring at
// least one layer.
func ilogCeil(base, n int) int {
	if n <= 1 {
		return 1
	}
	layers := 0
	size := n
	for size > 1 {
		size = ceilDiv(size, base)
		layers++
	}
	return layers
}
