package reaction

import (
	"hash/fnv"
	"sort"
)

// hashReaction returns a 64-bit hash of a reaction id. The spec notes the
// original implementation's choice of XXHash64 is not load-bearing; any
// order-independent 64-bit hash over the sorted per-reaction hashes is
// acceptable. FNV-1a is used here: it is in the standard library, so no
// extra dependency is needed for what is explicitly a non-cryptographic
// bookkeeping hash.
func hashReaction(id string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(id))
	return h.Sum64()
}

// combineOrderIndependent combines per-reaction hashes into one set hash by
// sorting them first, then folding sequentially. Sorting before folding is
// what makes the combined hash independent of insertion order while still
// being sensitive to the multiset of member hashes.
func combineOrderIndependent(hashes []uint64) uint64 {
	sorted := append([]uint64(nil), hashes...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	h := fnv.New64a()
	buf := make([]byte, 8)
	for _, v := range sorted {
		for i := 0; i < 8; i++ {
			buf[i] = byte(v >> (8 * i))
		}
		_, _ = h.Write(buf)
	}
	return h.Sum64()
}
