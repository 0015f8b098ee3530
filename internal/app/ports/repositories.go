package ports

import (
	"context"
	"time"
)

type SnapshotRecord struct {
	Name    string
	Tick    uint64
	Payload []byte
	SavedAt time.Time
}

// SnapshotRepository stores named snapshots. Saving an existing name
// replaces it.
type SnapshotRepository interface {
	Save(ctx context.Context, record SnapshotRecord) error
	Load(ctx context.Context, name string) (SnapshotRecord, error)
	List(ctx context.Context) ([]SnapshotRecord, error)
}

// ActionResultRecord is one attempted action in the cycle log.
type ActionResultRecord struct {
	Tick       uint64
	Seq        int
	ActorID    string
	Kind       string
	Outcome    string
	Detail     string
	RecordedAt time.Time
}

type CycleLogRepository interface {
	Append(ctx context.Context, records []ActionResultRecord) error
	// ListByActorID returns the newest records first. limit <= 0 means no
	// limit.
	ListByActorID(ctx context.Context, actorID string, limit int) ([]ActionResultRecord, error)
}

type SnapshotValidator interface {
	Validate(raw []byte) error
}
