package memory

import (
	"context"
	"sort"

	"vacuumworld/internal/app/ports"
)

type SnapshotRepo struct {
	store *Store
}

func NewSnapshotRepo(store *Store) SnapshotRepo {
	return SnapshotRepo{store: store}
}

func (r SnapshotRepo) Save(ctx context.Context, record ports.SnapshotRecord) error {
	defer r.store.lock(ctx)()
	record.Payload = append([]byte(nil), record.Payload...)
	r.store.snapshots[record.Name] = record
	return nil
}

func (r SnapshotRepo) Load(ctx context.Context, name string) (ports.SnapshotRecord, error) {
	defer r.store.rlock(ctx)()
	rec, ok := r.store.snapshots[name]
	if !ok {
		return ports.SnapshotRecord{}, ports.ErrNotFound
	}
	rec.Payload = append([]byte(nil), rec.Payload...)
	return rec, nil
}

func (r SnapshotRepo) List(ctx context.Context) ([]ports.SnapshotRecord, error) {
	defer r.store.rlock(ctx)()
	out := make([]ports.SnapshotRecord, 0, len(r.store.snapshots))
	for _, rec := range r.store.snapshots {
		rec.Payload = nil
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
