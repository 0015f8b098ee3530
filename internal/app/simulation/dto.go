package simulation

import (
	"time"

	"vacuumworld/internal/domain/environment"
	"vacuumworld/internal/domain/world"
)

type CycleResponse struct {
	Tick     uint64               `json:"tick"`
	Results  []world.ActionResult `json:"results"`
	Snapshot environment.Snapshot `json:"snapshot"`
}

type SnapshotResponse struct {
	Tick     uint64               `json:"tick"`
	Snapshot environment.Snapshot `json:"snapshot"`
}

type SavedSnapshot struct {
	Name    string    `json:"name"`
	Tick    uint64    `json:"tick"`
	SavedAt time.Time `json:"saved_at"`
}

type HistoryRequest struct {
	ActorID string
	Limit   int
}

type HistoryEntry struct {
	Tick       uint64    `json:"tick"`
	Seq        int       `json:"seq"`
	Kind       string    `json:"kind"`
	Outcome    string    `json:"outcome"`
	Detail     string    `json:"detail"`
	RecordedAt time.Time `json:"recorded_at"`
}

type HistoryResponse struct {
	ActorID string         `json:"actor_id"`
	Entries []HistoryEntry `json:"entries"`
}
