package score

import (
	"sync"

	"github.com/google/uuid"
)

// IDGenerator produces group ids.
type IDGenerator interface {
	Generate() string
}

// UUIDGenerator generates random (version 4) UUIDs, the form hosts use for
// group identity.
type UUIDGenerator struct{}

func (UUIDGenerator) Generate() string {
	return uuid.NewString()
}

// UUIDv7Generator generates time-ordered (version 7) UUIDs. Edit records
// use it so that ids sort in creation order.
//
// Panics if UUID generation fails.
type UUIDv7Generator struct{}

func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// FixedGenerator returns predetermined ids, for deterministic tests.
// Panics once all ids are consumed.
type FixedGenerator struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewFixedGenerator creates a generator that returns ids in order.
func NewFixedGenerator(ids ...string) *FixedGenerator {
	return &FixedGenerator{ids: ids}
}

func (g *FixedGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.idx >= len(g.ids) {
		panic("FixedGenerator: all ids exhausted")
	}
	id := g.ids[g.idx]
	g.idx++
	return id
}
