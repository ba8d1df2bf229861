package gacha

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
	"sync"
)

// RandomSource is the single randomness abstraction for draws and field
// rolls. Production uses a crypto-seeded PCG per process; tests inject a
// fixed seed to get reproducible sequences.
type RandomSource interface {
	Float64() float64
	IntN(n int) int
}

// pcgSource serializes access to the underlying generator. A single source
// is shared by every request handler, and rand.Rand is not safe for
// concurrent use.
type pcgSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (s *pcgSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}

func (s *pcgSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.IntN(n)
}

// NewSource returns a source seeded from the OS entropy pool.
func NewSource() RandomSource {
	var buf [16]byte
	if _, err := cryptorand.Read(buf[:]); err != nil {
		// Entropy read failing is effectively fatal elsewhere; a time-free
		// zero seed still yields a working generator.
		return NewSeededSource(0)
	}
	hi := binary.BigEndian.Uint64(buf[:8])
	lo := binary.BigEndian.Uint64(buf[8:])
	return &pcgSource{r: rand.New(rand.NewPCG(hi, lo))}
}

// NewSeededSource returns a deterministic source for tests and replays.
func NewSeededSource(seed uint64) RandomSource {
	return &pcgSource{r: rand.New(rand.NewPCG(seed, 0))}
}
