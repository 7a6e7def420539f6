// Package store persists archives and records with GORM.
package store

import (
	"context"
	"errors"
	"fmt"

	"wish-archive/core/reconcile"
	"wish-archive/feature/gachalog/models"

	"gorm.io/gorm"
)

// insertBatchSize bounds the rows per INSERT statement.
const insertBatchSize = 100

// Store is the GORM-backed archive store. It implements
// reconcile.Mutator and reconcile.TailReplacer for records.
type Store struct {
	db *gorm.DB
}

// New creates a store over db.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Entities lists the persisted models.
func Entities() []any {
	return []any{&models.Archive{}, &models.Record{}}
}

// Migrate creates or updates the archive tables.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(Entities()...); err != nil {
		return fmt.Errorf("failed to migrate archive tables: %w", err)
	}
	return nil
}

// FindArchiveByUID returns the archive of uid, or nil when none exists.
func (s *Store) FindArchiveByUID(ctx context.Context, uid string) (*models.Archive, error) {
	var archive models.Archive
	err := s.db.WithContext(ctx).Where("uid = ?", uid).First(&archive).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find archive %s: %w", uid, err)
	}
	return &archive, nil
}

// CreateArchive inserts a new archive for uid in its own transaction.
func (s *Store) CreateArchive(ctx context.Context, uid string) (*models.Archive, error) {
	archive := &models.Archive{UID: uid}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(archive).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create archive %s: %w", uid, err)
	}
	return archive, nil
}

// SelectArchive marks archiveID as the current archive and clears the others.
func (s *Store) SelectArchive(ctx context.Context, archiveID uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Archive{}).
			Where("inner_id <> ?", archiveID).
			Update("is_selected", false).Error; err != nil {
			return err
		}
		return tx.Model(&models.Archive{}).
			Where("inner_id = ?", archiveID).
			Update("is_selected", true).Error
	})
	if err != nil {
		return fmt.Errorf("failed to select archive %d: %w", archiveID, err)
	}
	return nil
}

// ListArchives returns every archive in creation order.
func (s *Store) ListArchives(ctx context.Context) ([]models.Archive, error) {
	var archives []models.Archive
	if err := s.db.WithContext(ctx).Order("inner_id").Find(&archives).Error; err != nil {
		return nil, fmt.Errorf("failed to list archives: %w", err)
	}
	return archives, nil
}

// ListRecords returns the records of one partition ordered by id.
func (s *Store) ListRecords(ctx context.Context, archiveID uint, queryType int) ([]models.Record, error) {
	var records []models.Record
	err := s.db.WithContext(ctx).
		Where("archive_id = ? AND query_type = ?", archiveID, queryType).
		Order("id").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	return records, nil
}

// ListAllRecords returns every record of an archive ordered by id.
func (s *Store) ListAllRecords(ctx context.Context, archiveID uint) ([]models.Record, error) {
	var records []models.Record
	err := s.db.WithContext(ctx).
		Where("archive_id = ?", archiveID).
		Order("id").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	return records, nil
}

// MaxRecordID returns the highest stored id of a partition, 0 when empty.
func (s *Store) MaxRecordID(ctx context.Context, archiveID uint, queryType int) (int64, error) {
	var maxID int64
	err := s.db.WithContext(ctx).
		Model(&models.Record{}).
		Where("archive_id = ? AND query_type = ?", archiveID, queryType).
		Select("COALESCE(MAX(id), 0)").
		Scan(&maxID).Error
	if err != nil {
		return 0, fmt.Errorf("failed to read max record id: %w", err)
	}
	return maxID, nil
}

// CountRecords returns the number of records of an archive.
func (s *Store) CountRecords(ctx context.Context, archiveID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Record{}).
		Where("archive_id = ?", archiveID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return count, nil
}

// DeleteFrom deletes the partition's records with id >= fromID.
func (s *Store) DeleteFrom(ctx context.Context, p reconcile.Partition, fromID int64) error {
	return deleteFrom(s.db.WithContext(ctx), p, fromID)
}

// Insert inserts records into the partition.
func (s *Store) Insert(ctx context.Context, p reconcile.Partition, items []models.Record) error {
	return insert(s.db.WithContext(ctx), p, items)
}

// ReplaceTail deletes the partition's records with id >= fromID and inserts
// items in one transaction.
func (s *Store) ReplaceTail(ctx context.Context, p reconcile.Partition, fromID int64, items []models.Record) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteFrom(tx, p, fromID); err != nil {
			return err
		}
		return insert(tx, p, items)
	})
}

func deleteFrom(db *gorm.DB, p reconcile.Partition, fromID int64) error {
	err := db.
		Where("archive_id = ? AND query_type = ? AND id >= ?", p.ArchiveID, p.QueryType, fromID).
		Delete(&models.Record{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete records of %s from %d: %w", p, fromID, err)
	}
	return nil
}

func insert(db *gorm.DB, p reconcile.Partition, items []models.Record) error {
	if len(items) == 0 {
		return nil
	}

	// The partition is authoritative for ownership
	for i := range items {
		items[i].ArchiveID = p.ArchiveID
		items[i].QueryType = p.QueryType
	}

	if err := db.CreateInBatches(items, insertBatchSize).Error; err != nil {
		return fmt.Errorf("failed to insert %d records into %s: %w", len(items), p, err)
	}
	return nil
}
