package integrity

import (
	"context"

	"wish-archive/core/storage"
	"wish-archive/feature/gachalog/store"
	"wish-archive/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles integrity checks.
type Service struct {
	client storage.Client
	bucket string
	prefix string
	logger *zap.Logger
	db     *gorm.DB
}

// NewService creates a new integrity service.
func NewService(client storage.Client, bucket, prefix string, logger *zap.Logger, db *gorm.DB) *Service {
	return &Service{
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: logger,
		db:     db,
	}
}

// CheckCatalog returns the metadata documents missing from the bucket.
func (s *Service) CheckCatalog(ctx context.Context) ([]string, error) {
	return checks.CheckCatalog(ctx, s.client, s.bucket, s.prefix)
}

// CheckSchema compares the archive tables against the persisted entities.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.db, store.Entities())
}
