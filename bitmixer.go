package wfa

// PHI_C64 golden ratio constant of hashCombine.
const PHI_C64 = uint64(0x9e3779b97f4a7c15)

func mix(key int) int {
	return mix32(key)
}

// MurmurHash3算法中的32位最终混合步骤
func mix32(v int) int {
	k := uint32(v)
	k = (k ^ (k >> 16)) * 0x85ebca6b
	k = (k ^ (k >> 13)) * 0xc2b2ae35
	return int(k ^ (k >> 16))
}

// hashCombine folds v into seed, order-sensitive.
func hashCombine(seed, v uint64) uint64 {
	return seed ^ (v + PHI_C64 + (seed << 6) + (seed >> 2))
}
