package simulation

import (
	"context"
	"errors"
	"sort"
	"sync"

	"vacuumworld/internal/app/ports"
	"vacuumworld/internal/domain/environment"
	"vacuumworld/internal/domain/world"
)

type stubTxManager struct {
	calls int
}

func (m *stubTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type stubSnapshotRepo struct {
	byName map[string]ports.SnapshotRecord
}

func newStubSnapshotRepo() *stubSnapshotRepo {
	return &stubSnapshotRepo{byName: map[string]ports.SnapshotRecord{}}
}

func (r *stubSnapshotRepo) Save(_ context.Context, record ports.SnapshotRecord) error {
	r.byName[record.Name] = record
	return nil
}

func (r *stubSnapshotRepo) Load(_ context.Context, name string) (ports.SnapshotRecord, error) {
	record, ok := r.byName[name]
	if !ok {
		return ports.SnapshotRecord{}, ports.ErrNotFound
	}
	return record, nil
}

func (r *stubSnapshotRepo) List(_ context.Context) ([]ports.SnapshotRecord, error) {
	out := make([]ports.SnapshotRecord, 0, len(r.byName))
	for _, rec := range r.byName {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type stubCycleLog struct {
	records []ports.ActionResultRecord
	err     error
}

func (r *stubCycleLog) Append(_ context.Context, records []ports.ActionResultRecord) error {
	if r.err != nil {
		return r.err
	}
	r.records = append(r.records, records...)
	return nil
}

func (r *stubCycleLog) ListByActorID(_ context.Context, actorID string, limit int) ([]ports.ActionResultRecord, error) {
	out := []ports.ActionResultRecord{}
	for i := len(r.records) - 1; i >= 0; i-- {
		if r.records[i].ActorID != actorID {
			continue
		}
		out = append(out, r.records[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

type stubMetrics struct {
	outcomes map[world.Outcome]int
	failures int
}

func (m *stubMetrics) RecordOutcome(_ world.ActionKind, outcome world.Outcome) {
	if m.outcomes == nil {
		m.outcomes = map[world.Outcome]int{}
	}
	m.outcomes[outcome]++
}

func (m *stubMetrics) RecordCycleFailure() { m.failures++ }

type stubPublisher struct {
	ticks []uint64
}

func (p *stubPublisher) Publish(tick uint64, _ environment.Snapshot) {
	p.ticks = append(p.ticks, tick)
}

type stubValidator struct {
	err error
}

func (v stubValidator) Validate([]byte) error { return v.err }

var errBoom = errors.New("boom")

type countingCycler struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (c *countingCycler) Cycle(context.Context) (CycleResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	return CycleResponse{Tick: uint64(c.calls)}, c.err
}

func (c *countingCycler) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}
