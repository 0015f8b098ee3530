package memory

import (
	"sync"

	"vacuumworld/internal/app/ports"
)

type Store struct {
	mu        sync.RWMutex
	snapshots map[string]ports.SnapshotRecord
	results   []ports.ActionResultRecord
}

func NewStore() *Store {
	return &Store{
		snapshots: make(map[string]ports.SnapshotRecord),
	}
}

func resultKey(tick uint64, seq int) [2]uint64 {
	return [2]uint64{tick, uint64(seq)}
}
