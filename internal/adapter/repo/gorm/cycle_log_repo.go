package gormrepo

import (
	"context"
	"errors"

	"vacuumworld/internal/adapter/repo/gorm/model"
	"vacuumworld/internal/app/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CycleLogRepo struct {
	db *gorm.DB
}

func NewCycleLogRepo(db *gorm.DB) CycleLogRepo {
	return CycleLogRepo{db: db}
}

func (r CycleLogRepo) Append(ctx context.Context, records []ports.ActionResultRecord) error {
	if len(records) == 0 {
		return nil
	}
	rows := make([]model.VwActionResult, 0, len(records))
	for _, rec := range records {
		rows = append(rows, model.VwActionResult{
			Tick:       int64(rec.Tick),
			Seq:        int32(rec.Seq),
			ActorID:    rec.ActorID,
			Kind:       rec.Kind,
			Outcome:    rec.Outcome,
			Detail:     rec.Detail,
			RecordedAt: rec.RecordedAt,
		})
	}
	err := getDBFromCtx(ctx, r.db).WithContext(ctx).Create(&rows).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ports.ErrConflict
	}
	return err
}

func (r CycleLogRepo) ListByActorID(ctx context.Context, actorID string, limit int) ([]ports.ActionResultRecord, error) {
	rows := []model.VwActionResult{}
	query := getDBFromCtx(ctx, r.db).WithContext(ctx).
		Where(&model.VwActionResult{ActorID: actorID}).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{
				{Column: clause.Column{Name: "tick"}, Desc: true},
				{Column: clause.Column{Name: "seq"}, Desc: true},
			},
		})
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]ports.ActionResultRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, ports.ActionResultRecord{
			Tick:       uint64(row.Tick),
			Seq:        int(row.Seq),
			ActorID:    row.ActorID,
			Kind:       row.Kind,
			Outcome:    row.Outcome,
			Detail:     row.Detail,
			RecordedAt: row.RecordedAt,
		})
	}
	return out, nil
}
