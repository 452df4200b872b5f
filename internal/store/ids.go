package store

import (
	"strconv"
	"sync"

	"github.com/google/uuid"
)

// IDGenerator hands out task identifiers.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator produces time-ordered UUIDv7 identifiers. Unlike ids derived
// from a millisecond timestamp, two tasks created in the same instant never
// collide.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// SequenceGenerator returns prefix+1, prefix+2, ... and is meant for tests
// and demos that need predictable ids.
type SequenceGenerator struct {
	mu     sync.Mutex
	prefix string
	next   int
}

// NewSequenceGenerator starts counting after start, so the first id is
// prefix + (start+1).
func NewSequenceGenerator(prefix string, start int) *SequenceGenerator {
	return &SequenceGenerator{prefix: prefix, next: start}
}

func (g *SequenceGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return g.prefix + strconv.Itoa(g.next)
}
