package database

import (
	"sync"

	"gorm.io/gorm"
)

// Guarded serializes all store access behind a single mutex: the store is
// one embedded database opened once, with every operation run under
// exclusive access. Go's sync.Mutex has no poisoning concept, so a panic
// inside WithLock still unlocks via defer and recovery is unconditional;
// nothing special needs to happen on the next acquirer's behalf.
type Guarded struct {
	mu sync.Mutex
	DB *gorm.DB
}

func NewGuarded(db *gorm.DB) *Guarded {
	return &Guarded{DB: db}
}

// WithLock runs fn with exclusive access to the store. Multi-step writes
// (e.g. recipe ingredient add -> virtual food recompute) must be composed
// inside a single WithLock call so both steps share the critical section.
func (g *Guarded) WithLock(fn func(db *gorm.DB) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return fn(g.DB)
}
