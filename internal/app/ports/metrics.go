package ports

import "vacuumworld/internal/domain/world"

type CycleMetrics interface {
	RecordOutcome(kind world.ActionKind, outcome world.Outcome)
	RecordCycleFailure()
}
