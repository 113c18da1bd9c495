package simulator

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
	"sync"
)

// Random yields uniform values in [0, 1).
type Random interface {
	Float64() float64
}

type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

// NewRandom returns a goroutine-safe Random. A zero seed is replaced by one
// read from crypto/rand.
func NewRandom(seed int64) (Random, error) {
	if seed == 0 {
		var b [8]byte
		if _, err := crand.Read(b[:]); err != nil {
			return nil, fmt.Errorf("read random seed: %w", err)
		}
		seed = int64(binary.LittleEndian.Uint64(b[:]))
	}
	return &lockedRand{r: rand.New(rand.NewSource(seed))}, nil
}

func delta(r Random, spread float64) float64 { return (r.Float64() - 0.5) * spread }
