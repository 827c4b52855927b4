package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"BillCompare/internal/domain"
	"BillCompare/internal/ports"
)

// BucketConfig locates the object store holding the monthly files.
type BucketConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Prefix    string
	UseSSL    bool
}

// BucketStore serves the directory layout from an S3-compatible bucket.
type BucketStore struct {
	client *minio.Client
	bucket string
	prefix string
}

var _ ports.BillArchive = (*BucketStore)(nil)

// NewBucketStore connects to the configured endpoint. No request is made.
func NewBucketStore(cfg BucketConfig) (*BucketStore, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("bucket name: %w", domain.ErrInvalidInput)
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}
	return &BucketStore{
		client: client,
		bucket: cfg.Bucket,
		prefix: strings.Trim(cfg.Prefix, "/"),
	}, nil
}

// Months lists the months that have an object, newest first.
func (s *BucketStore) Months(ctx context.Context) ([]domain.MonthRef, error) {
	opts := minio.ListObjectsOptions{Recursive: false}
	if s.prefix != "" {
		opts.Prefix = s.prefix + "/"
	}

	var months []domain.MonthRef
	for obj := range s.client.ListObjects(ctx, s.bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list objects: %w", obj.Err)
		}
		if m, ok := ParseMonthFileName(path.Base(obj.Key)); ok {
			months = append(months, m)
		}
	}
	domain.SortMonthsNewestFirst(months)
	return months, nil
}

// LoadMonth reads one month object. A missing object is ErrNotFound.
func (s *BucketStore) LoadMonth(ctx context.Context, month domain.MonthRef) ([]domain.Bill, error) {
	data, err := s.get(ctx, MonthFileName(month))
	if err != nil {
		return nil, fmt.Errorf("month %s: %w", month.Label(), err)
	}
	return decodeBills(bytes.NewReader(data))
}

// Legislators reads the roster object.
func (s *BucketStore) Legislators(ctx context.Context) ([]domain.Legislator, error) {
	data, err := s.get(ctx, LegislatorsFile)
	if err != nil {
		return nil, fmt.Errorf("legislators: %w", err)
	}
	return decodeRoster(bytes.NewReader(data))
}

// SaveMonth uploads one month object tagged with the import batch.
func (s *BucketStore) SaveMonth(ctx context.Context, month domain.MonthRef, bills []domain.Bill, batchID string) error {
	data, err := encodeJSON(domain.NormalizeBills(bills))
	if err != nil {
		return err
	}
	return s.put(ctx, MonthFileName(month), data, map[string]string{"batch-id": batchID})
}

// SaveLegislators uploads the roster object.
func (s *BucketStore) SaveLegislators(ctx context.Context, legislators []domain.Legislator) error {
	data, err := encodeJSON(domain.LegislatorRoster{JSONList: legislators})
	if err != nil {
		return err
	}
	return s.put(ctx, LegislatorsFile, data, nil)
}

func (s *BucketStore) key(name string) string {
	if s.prefix == "" {
		return name
	}
	return s.prefix + "/" + name
}

func (s *BucketStore) get(ctx context.Context, name string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.key(name), minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", name, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

func (s *BucketStore) put(ctx context.Context, name string, data []byte, meta map[string]string) error {
	_, err := s.client.PutObject(ctx, s.bucket, s.key(name), bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType:  "application/json; charset=utf-8",
		UserMetadata: meta,
	})
	if err != nil {
		return fmt.Errorf("put %s: %w", name, err)
	}
	return nil
}
