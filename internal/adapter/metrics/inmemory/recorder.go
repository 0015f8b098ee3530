package inmemory

import (
	"sync"

	"vacuumworld/internal/domain/world"
)

type Snapshot struct {
	ActionTotal   uint64            `json:"action_total"`
	ActionSuccess uint64            `json:"action_success"`
	ActionFailure uint64            `json:"action_failure"`
	CycleFailure  uint64            `json:"cycle_failure"`
	SuccessByKind map[string]uint64 `json:"success_by_kind"`
	FailureByKind map[string]uint64 `json:"failure_by_kind"`
}

type Recorder struct {
	mu            sync.Mutex
	success       uint64
	failure       uint64
	cycleFailures uint64
	successByKind map[string]uint64
	failureByKind map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		successByKind: map[string]uint64{},
		failureByKind: map[string]uint64{},
	}
}

func (r *Recorder) RecordOutcome(kind world.ActionKind, outcome world.Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if outcome == world.Success {
		r.success++
		r.successByKind[string(kind)]++
		return
	}
	r.failure++
	r.failureByKind[string(kind)]++
}

func (r *Recorder) RecordCycleFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cycleFailures++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		ActionSuccess: r.success,
		ActionFailure: r.failure,
		ActionTotal:   r.success + r.failure,
		CycleFailure:  r.cycleFailures,
		SuccessByKind: make(map[string]uint64, len(r.successByKind)),
		FailureByKind: make(map[string]uint64, len(r.failureByKind)),
	}
	for k, v := range r.successByKind {
		out.SuccessByKind[k] = v
	}
	for k, v := range r.failureByKind {
		out.FailureByKind[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
