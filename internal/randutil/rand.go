package randutil

import rand "math/rand/v2"

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from the provided int64.
// It centralises how the two 64-bit PCG seeds are derived so every call site
// gets reproducible sequences from a single scalar seed.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Derive produces an independent child seed from a base seed and a stream
// index. Match and episode loops use it so that every iteration gets its own
// reproducible deck order without the streams overlapping.
func Derive(seed int64, stream int64) int64 {
	return int64(mix(uint64(seed) ^ mix(uint64(stream)*goldenRatio64)))
}

// mix is the splitmix64 finalizer.
func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
