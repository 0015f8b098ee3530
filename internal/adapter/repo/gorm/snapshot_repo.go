package gormrepo

import (
	"context"
	"errors"

	"vacuumworld/internal/adapter/repo/gorm/model"
	"vacuumworld/internal/app/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SnapshotRepo struct {
	db *gorm.DB
}

func NewSnapshotRepo(db *gorm.DB) SnapshotRepo {
	return SnapshotRepo{db: db}
}

func (r SnapshotRepo) Save(ctx context.Context, record ports.SnapshotRecord) error {
	m := model.VwSnapshot{
		Name:    record.Name,
		Tick:    int64(record.Tick),
		Payload: record.Payload,
		SavedAt: record.SavedAt,
	}
	return getDBFromCtx(ctx, r.db).WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"tick", "payload", "saved_at"}),
	}).Create(&m).Error
}

func (r SnapshotRepo) Load(ctx context.Context, name string) (ports.SnapshotRecord, error) {
	var m model.VwSnapshot
	if err := getDBFromCtx(ctx, r.db).WithContext(ctx).Where("name = ?", name).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.SnapshotRecord{}, ports.ErrNotFound
		}
		return ports.SnapshotRecord{}, err
	}
	return toSnapshotRecord(m), nil
}

func (r SnapshotRepo) List(ctx context.Context) ([]ports.SnapshotRecord, error) {
	rows := []model.VwSnapshot{}
	err := getDBFromCtx(ctx, r.db).WithContext(ctx).
		Select("name", "tick", "saved_at").
		Order("name").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]ports.SnapshotRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, toSnapshotRecord(row))
	}
	return out, nil
}

func toSnapshotRecord(m model.VwSnapshot) ports.SnapshotRecord {
	return ports.SnapshotRecord{
		Name:    m.Name,
		Tick:    uint64(m.Tick),
		Payload: m.Payload,
		SavedAt: m.SavedAt,
	}
}
