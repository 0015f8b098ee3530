package ports

import "vacuumworld/internal/domain/environment"

// SnapshotPublisher fans the state reached after a cycle out to observers.
// Publish must not block the cycle.
type SnapshotPublisher interface {
	Publish(tick uint64, snapshot environment.Snapshot)
}
