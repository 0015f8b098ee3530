package sqliterepo

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"vacuumworld/internal/app/ports"
)

type SnapshotRepo struct {
	db *sql.DB
}

func NewSnapshotRepo(db *sql.DB) SnapshotRepo {
	return SnapshotRepo{db: db}
}

func (r SnapshotRepo) Save(ctx context.Context, record ports.SnapshotRecord) error {
	_, err := conn(ctx, r.db).ExecContext(ctx,
		`INSERT INTO vw_snapshots(name, tick, payload, saved_at) VALUES(?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET tick=excluded.tick, payload=excluded.payload, saved_at=excluded.saved_at`,
		record.Name, int64(record.Tick), record.Payload, record.SavedAt.UTC().Format(time.RFC3339Nano))
	return err
}

func (r SnapshotRepo) Load(ctx context.Context, name string) (ports.SnapshotRecord, error) {
	var (
		rec     ports.SnapshotRecord
		tick    int64
		savedAt string
	)
	err := conn(ctx, r.db).QueryRowContext(ctx,
		`SELECT name, tick, payload, saved_at FROM vw_snapshots WHERE name = ?`, name).
		Scan(&rec.Name, &tick, &rec.Payload, &savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ports.SnapshotRecord{}, ports.ErrNotFound
	}
	if err != nil {
		return ports.SnapshotRecord{}, err
	}
	rec.Tick = uint64(tick)
	rec.SavedAt = parseTime(savedAt)
	return rec, nil
}

func (r SnapshotRepo) List(ctx context.Context) ([]ports.SnapshotRecord, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx, `SELECT name, tick, saved_at FROM vw_snapshots ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []ports.SnapshotRecord{}
	for rows.Next() {
		var (
			rec     ports.SnapshotRecord
			tick    int64
			savedAt string
		)
		if err := rows.Scan(&rec.Name, &tick, &savedAt); err != nil {
			return nil, err
		}
		rec.Tick = uint64(tick)
		rec.SavedAt = parseTime(savedAt)
		out = append(out, rec)
	}
	return out, rows.Err()
}

type CycleLogRepo struct {
	db *sql.DB
}

func NewCycleLogRepo(db *sql.DB) CycleLogRepo {
	return CycleLogRepo{db: db}
}

func (r CycleLogRepo) Append(ctx context.Context, records []ports.ActionResultRecord) error {
	if len(records) == 0 {
		return nil
	}
	q := conn(ctx, r.db)
	for _, rec := range records {
		_, err := q.ExecContext(ctx,
			`INSERT INTO vw_action_results(tick, seq, actor_id, kind, outcome, detail, recorded_at) VALUES(?, ?, ?, ?, ?, ?, ?)`,
			int64(rec.Tick), rec.Seq, rec.ActorID, rec.Kind, rec.Outcome, rec.Detail, rec.RecordedAt.UTC().Format(time.RFC3339Nano))
		if err != nil {
			if isUniqueViolation(err) {
				return ports.ErrConflict
			}
			return err
		}
	}
	return nil
}

func (r CycleLogRepo) ListByActorID(ctx context.Context, actorID string, limit int) ([]ports.ActionResultRecord, error) {
	query := `SELECT tick, seq, actor_id, kind, outcome, detail, recorded_at FROM vw_action_results
		WHERE actor_id = ? ORDER BY tick DESC, seq DESC`
	args := []any{actorID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []ports.ActionResultRecord{}
	for rows.Next() {
		var (
			rec        ports.ActionResultRecord
			tick       int64
			recordedAt string
		)
		if err := rows.Scan(&tick, &rec.Seq, &rec.ActorID, &rec.Kind, &rec.Outcome, &rec.Detail, &recordedAt); err != nil {
			return nil, err
		}
		rec.Tick = uint64(tick)
		rec.RecordedAt = parseTime(recordedAt)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func parseTime(raw string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}
