package effectors

// Deterministic integer hash used by the Random effector and random child
// distribution. The mix constants are load-bearing: generated scenes are
// reproducible across runs and platforms only if they stay fixed.

const (
	hashMulA = 374761393
	hashMulB = 668265263
	hashMulC = 2147483647
	hashMix  = 1274126177
)

// Per-channel salts for the Random effector. Each channel draws from its own
// (seed, flatIndex, effectorIndex, salt) tuple so draws are independent but
// reproducible.
const (
	saltPosX = 1
	saltPosY = 2
	saltPosZ = 3
	saltRotX = 4
	saltRotY = 5
	saltRotZ = 6
	saltSclX = 7
	saltSclY = 8
	saltSclZ = 9

	saltHide     = 10
	saltHideProb = 11
	saltColorIdx = 12
	saltColorOn  = 13

	// Material color draws start here, one salt per sorted material name.
	saltMaterialBase = 16
)

// Child distribution salts, used by the grid cloner's random template pick.
const (
	SaltDistributeA = 17
	SaltDistributeB = 71
)

func hashU32(seed, a, b, c uint32) uint32 {
	h := seed ^ a*hashMulA ^ b*hashMulB ^ c*hashMulC
	h ^= h >> 13
	h *= hashMix
	h ^= h >> 16
	return h
}

// Hash01 returns a deterministic value in [0,1) from the seed and three lanes.
func Hash01(seed, a, b, c int) float64 {
	return float64(hashU32(uint32(seed), uint32(a), uint32(b), uint32(c))) / (1 << 32)
}

// HashSigned returns a deterministic value in [-1,1).
func HashSigned(seed, a, b, c int) float64 {
	return 2*Hash01(seed, a, b, c) - 1
}

// HashIndex returns a deterministic index in [0,n). n must be positive.
func HashIndex(seed, a, b, c, n int) int {
	return int(hashU32(uint32(seed), uint32(a), uint32(b), uint32(c)) % uint32(n))
}
