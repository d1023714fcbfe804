package timeps

import "math/bits"

// LODBucket is the integer coarseness class derived from TimePerPixel;
// samples sharing a bucket share cache entries (§4.2 glossary "LOD bucket").
type LODBucket uint64

// BucketFor returns the next power of two >= tpp.Picoseconds() (§4.2).
func BucketFor(tpp TimePerPixel) LODBucket {
	v := tpp.Picoseconds()
	if v <= 1 {
		return 1
	}
	if bits.OnesCount64(v) == 1 {
		return LODBucket(v)
	}
	shift := bits.Len64(v) // smallest n with 2^n > v when v isn't itself a power of two
	return LODBucket(uint64(1) << shift)
}
