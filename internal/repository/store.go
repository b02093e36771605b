package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hrms-engine/internal/config"
	"github.com/cmlabs-hris/hrms-engine/internal/domain/record"
	"github.com/cmlabs-hris/hrms-engine/internal/pkg/database"
	"github.com/cmlabs-hris/hrms-engine/internal/repository/memory"
	"github.com/cmlabs-hris/hrms-engine/internal/repository/postgresql"
	"github.com/cmlabs-hris/hrms-engine/internal/repository/sqlite"
)

// OpenStore connects the record store selected by STORE_DRIVER and makes sure
// its table exists. The returned close func releases the underlying pool.
func OpenStore(ctx context.Context, cfg *config.Config) (record.Store, func(), error) {
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		store := postgresql.NewRecordStore(db)
		if err := store.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		slog.Info("record store ready", "driver", cfg.Store.Driver, "host", cfg.Database.Host, "database", cfg.Database.Name)
		return store, db.Close, nil

	case config.StoreDriverSQLite:
		db, err := database.NewSQLiteDB(ctx, cfg.Store.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite: %w", err)
		}
		store := sqlite.NewRecordStore(db)
		if err := store.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		slog.Info("record store ready", "driver", cfg.Store.Driver, "path", cfg.Store.SQLitePath)
		return store, func() { db.Close() }, nil

	case config.StoreDriverMemory:
		slog.Warn("using in-memory record store, data is lost on restart")
		return memory.NewRecordStore(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}
}
