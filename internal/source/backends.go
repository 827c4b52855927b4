package source

import (
	"context"

	"BillCompare/internal/config"
	"BillCompare/internal/infrastructure/storage"
	"BillCompare/internal/ports"
)

// DirBackend serves monthly JSON files from a local directory.
type DirBackend struct{}

func (DirBackend) Name() string { return config.StoreDir }

func (DirBackend) Open(_ context.Context, cfg config.StoreConfig) (Store, error) {
	return nopCloser{storage.NewDirStore(cfg.Dir)}, nil
}

// SQLBackend serves the import archive from SQLite or Postgres.
type SQLBackend struct{}

func (SQLBackend) Name() string { return config.StoreSQL }

func (SQLBackend) Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	archive, err := storage.OpenSQLArchive(ctx, cfg.DSN)
	if err != nil {
		return nil, err
	}
	return archive, nil
}

// BucketBackend serves monthly JSON objects from MinIO or S3.
type BucketBackend struct{}

func (BucketBackend) Name() string { return config.StoreS3 }

func (BucketBackend) Open(_ context.Context, cfg config.StoreConfig) (Store, error) {
	store, err := storage.NewBucketStore(storage.BucketConfig{
		Endpoint:  cfg.Bucket.Endpoint,
		AccessKey: cfg.Bucket.AccessKey,
		SecretKey: cfg.Bucket.SecretKey,
		Bucket:    cfg.Bucket.Bucket,
		Prefix:    cfg.Bucket.Prefix,
		UseSSL:    cfg.Bucket.UseSSL,
	})
	if err != nil {
		return nil, err
	}
	return nopCloser{store}, nil
}

type nopCloser struct {
	ports.BillArchive
}

func (nopCloser) Close() error { return nil }
