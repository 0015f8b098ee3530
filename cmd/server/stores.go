package main

import (
	"context"
	"fmt"

	"vacuumworld/internal/adapter/repo/memory"
	gormrepo "vacuumworld/internal/adapter/repo/gorm"
	sqliterepo "vacuumworld/internal/adapter/repo/sqlite"
	"vacuumworld/internal/adapter/snapshotfile"
	"vacuumworld/internal/app/ports"
	"vacuumworld/internal/config"

	"go.uber.org/zap"
)

type stores struct {
	Backend   string
	TxManager ports.TxManager
	Snapshots ports.SnapshotRepository
	CycleLog  ports.CycleLogRepository
	Close     func() error
}

// buildStores picks postgres when a DSN is set, sqlite when a path is set and
// memory otherwise. A snapshot dir overrides where named snapshots live.
func buildStores(ctx context.Context, cfg config.Config, migrate bool, logger *zap.Logger) (stores, error) {
	var out stores
	switch {
	case cfg.DBDSN != "":
		db, err := gormrepo.OpenPostgres(cfg.DBDSN)
		if err != nil {
			return stores{}, fmt.Errorf("open postgres: %w", err)
		}
		if migrate {
			if err := gormrepo.ApplyMigrations(ctx, db, gormrepo.Migrations()); err != nil {
				return stores{}, fmt.Errorf("apply migrations: %w", err)
			}
		}
		sqlDB, err := db.DB()
		if err != nil {
			return stores{}, err
		}
		out = stores{
			Backend:   "postgres",
			TxManager: gormrepo.NewTxManager(db),
			Snapshots: gormrepo.NewSnapshotRepo(db),
			CycleLog:  gormrepo.NewCycleLogRepo(db),
			Close:     sqlDB.Close,
		}
	case cfg.SQLitePath != "":
		db, err := sqliterepo.Open(cfg.SQLitePath)
		if err != nil {
			return stores{}, err
		}
		out = stores{
			Backend:   "sqlite",
			TxManager: sqliterepo.NewTxManager(db),
			Snapshots: sqliterepo.NewSnapshotRepo(db),
			CycleLog:  sqliterepo.NewCycleLogRepo(db),
			Close:     db.Close,
		}
	default:
		store := memory.NewStore()
		out = stores{
			Backend:   "memory",
			TxManager: memory.NewTxManager(store),
			Snapshots: memory.NewSnapshotRepo(store),
			CycleLog:  memory.NewCycleLogRepo(store),
			Close:     func() error { return nil },
		}
	}
	if cfg.SnapshotDir != "" {
		out.Snapshots = snapshotfile.New(cfg.SnapshotDir)
	}
	logger.Info("stores ready", zap.String("backend", out.Backend), zap.String("snapshot_dir", cfg.SnapshotDir))
	return out, nil
}
