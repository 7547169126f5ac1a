package picker

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// Source yields one uniform float64 in [0, 1) per call. It is injected into
// the generator rather than read from a process-wide global so that pick
// generation is deterministic under a seeded source.
type Source interface {
	Float64() float64
}

// cryptoSource draws 53 bits from crypto/rand per float. Default in
// production.
type cryptoSource struct{}

// NewCryptoSource returns the production entropy source.
func NewCryptoSource() Source { return cryptoSource{} }

func (cryptoSource) Float64() float64 {
	var buf [8]byte
	if _, err := cryptorand.Read(buf[:]); err != nil {
		// crypto/rand is documented never to fail on supported platforms;
		// fall back to the math/rand/v2 global rather than abort.
		return rand.Float64()
	}
	u := binary.BigEndian.Uint64(buf[:]) >> 11 // keep 53 bits
	return float64(u) / (1 << 53)
}

// seededSource is a PCG stream with a fixed seed, for tests and replayable
// CLI runs. Not safe for concurrent use; callers hold one per goroutine.
type seededSource struct {
	r *rand.Rand
}

// NewSeededSource returns a deterministic source: the same seed always
// yields the same float sequence.
func NewSeededSource(seed uint64) Source {
	return &seededSource{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededSource) Float64() float64 { return s.r.Float64() }
