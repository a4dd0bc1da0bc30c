// Package random provides the random number capability used by fragment
// selection and passphrase composition, so tests can substitute a
// deterministic source.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// Source is the subset of *rand.Rand the generator needs.
type Source interface {
	// Intn returns a uniform int in [0, n). It panics if n <= 0.
	Intn(n int) int
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// New returns a source seeded from process entropy. If crypto/rand is
// unavailable it falls back to the wall clock.
func New() *rand.Rand {
	seed, err := NewSeed()
	if err != nil {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// NewSeeded creates a deterministic source. A zero seed means "pick one"
// and behaves like New.
func NewSeeded(seed int64) *rand.Rand {
	if seed == 0 {
		return New()
	}
	return rand.New(rand.NewSource(seed))
}

// Locked wraps a Source with a mutex so it can be shared between
// goroutines. *rand.Rand from rand.New is not safe for concurrent use.
type Locked struct {
	mu  sync.Mutex
	src Source
}

// NewLocked returns a goroutine-safe view of src.
func NewLocked(src Source) *Locked {
	return &Locked{src: src}
}

func (l *Locked) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Intn(n)
}

// Sequence is a scripted Source that replays fixed values, each reduced
// modulo n. It is meant for tests that need exact selections.
type Sequence struct {
	mu     sync.Mutex
	values []int
	pos    int
}

// NewSequence returns a Source that yields values in order and wraps around.
func NewSequence(values ...int) *Sequence {
	if len(values) == 0 {
		values = []int{0}
	}
	return &Sequence{values: values}
}

func (s *Sequence) Intn(n int) int {
	if n <= 0 {
		panic("random: invalid argument to Intn")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.values[s.pos%len(s.values)]
	s.pos++
	if v < 0 {
		v = -v
	}
	return v % n
}

// Calls reports how many values have been consumed.
func (s *Sequence) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos
}
