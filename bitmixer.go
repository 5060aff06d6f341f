package automaton

const (
	// Golden ratio bit mixer.
	phiC64 = uint64(0x9e3779b97f4a7c15)
)

// mix32 Final avalanche step of MurmurHash3 (32 bit).
func mix32(v int) int {
	k := uint32(v)
	k = (k ^ (k >> 16)) * 0x85ebca6b
	k = (k ^ (k >> 13)) * 0xc2b2ae35
	return int(k ^ (k >> 16))
}

// mixInts Order-sensitive hash of a sequence of ints.
func mixInts(values []int) uint64 {
	h := uint64(len(values))
	for _, v := range values {
		h = (h ^ uint64(uint32(mix32(v)))) * phiC64
		h ^= h >> 32
	}
	return h
}
