package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/codyseavey/sneaker-tracker/internal/config"
	"github.com/codyseavey/sneaker-tracker/internal/database"
)

// Open selects a Store implementation from configuration and wraps it with
// metrics. The caller owns the returned store and must Close it.
func Open(ctx context.Context, cfg config.StorageConfig, log *zap.Logger) (Store, error) {
	var (
		store Store
		err   error
	)
	switch Driver(cfg.Driver) {
	case DriverMemory:
		store = NewMemory()
	case DriverFile:
		store, err = NewFileStore(cfg.FileDir)
	case DriverSQLite:
		db, dbErr := database.Initialize(cfg.SQLitePath, log)
		if dbErr != nil {
			return nil, dbErr
		}
		store = NewSQLiteStore(db)
	case DriverPostgres:
		store, err = NewPostgresStore(ctx, cfg.PostgresDSN)
	case DriverS3:
		store, err = NewS3Store(ctx, S3Config{
			Bucket:          cfg.S3.Bucket,
			Region:          cfg.S3.Region,
			Endpoint:        cfg.S3.Endpoint,
			Prefix:          cfg.S3.Prefix,
			PathStyle:       cfg.S3.PathStyle,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
		})
	default:
		return nil, fmt.Errorf("unknown storage driver %s", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	log.Info("Storage opened", zap.String("driver", string(store.Driver())))
	return Instrument(store, log), nil
}
