package discovery

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
)

// Source produces a fresh rand.Rand for a single pipeline run. rand.Rand is
// not safe for concurrent use, so every request gets its own instance and
// all draws happen between fan-out barriers.
type Source func() *rand.Rand

// EntropySource returns a Source seeded from crypto-quality entropy on every
// call. Repeat requests for the same user yield different playlists.
func EntropySource() Source {
	return func() *rand.Rand {
		var b [8]byte
		if _, err := crand.Read(b[:]); err != nil {
			// Entropy read failures leave us with the zero seed, which is
			// still a valid generator.
			return rand.New(rand.NewSource(0))
		}
		return rand.New(rand.NewSource(int64(binary.LittleEndian.Uint64(b[:]))))
	}
}

// FixedSource returns a Source that always seeds with the given value,
// making pipeline runs reproducible.
func FixedSource(seed int64) Source {
	return func() *rand.Rand {
		return rand.New(rand.NewSource(seed))
	}
}
