package memory

import (
	"context"

	"vacuumworld/internal/app/ports"
)

type CycleLogRepo struct {
	store *Store
}

func NewCycleLogRepo(store *Store) CycleLogRepo {
	return CycleLogRepo{store: store}
}

// Append rejects a (tick, seq) pair that was already logged.
func (r CycleLogRepo) Append(ctx context.Context, records []ports.ActionResultRecord) error {
	defer r.store.lock(ctx)()
	seen := make(map[[2]uint64]struct{}, len(r.store.results)+len(records))
	for _, rec := range r.store.results {
		seen[resultKey(rec.Tick, rec.Seq)] = struct{}{}
	}
	for _, rec := range records {
		k := resultKey(rec.Tick, rec.Seq)
		if _, exists := seen[k]; exists {
			return ports.ErrConflict
		}
		seen[k] = struct{}{}
	}
	r.store.results = append(r.store.results, records...)
	return nil
}

func (r CycleLogRepo) ListByActorID(ctx context.Context, actorID string, limit int) ([]ports.ActionResultRecord, error) {
	defer r.store.rlock(ctx)()
	out := []ports.ActionResultRecord{}
	for i := len(r.store.results) - 1; i >= 0; i-- {
		rec := r.store.results[i]
		if rec.ActorID != actorID {
			continue
		}
		out = append(out, rec)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}
