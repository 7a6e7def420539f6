package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"wish-archive/core/reconcile"
	"wish-archive/feature/gachalog/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestStore creates a migrated store over a named in-memory SQLite DB.
func setupTestStore(t *testing.T) *Store {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	s := New(db)
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

// setupMockStore creates a store over a sqlmock MySQL connection.
func setupMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return New(gormDB), mock
}

func records(archiveID uint, queryType int, lo, hi int64) []models.Record {
	base := time.Date(2022, 7, 1, 0, 0, 0, 0, time.UTC)
	out := make([]models.Record, 0, hi-lo+1)
	for id := lo; id <= hi; id++ {
		out = append(out, models.Record{
			ArchiveID: archiveID,
			QueryType: queryType,
			GachaType: queryType,
			ID:        id,
			Time:      base.Add(time.Duration(id) * time.Minute),
		})
	}
	return out
}

func storedIDs(t *testing.T, s *Store, archiveID uint, queryType int) []int64 {
	list, err := s.ListRecords(context.Background(), archiveID, queryType)
	require.NoError(t, err)
	out := make([]int64, len(list))
	for i, r := range list {
		out[i] = r.ID
	}
	return out
}

func TestStore_Archives(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	missing, err := s.FindArchiveByUID(ctx, "100000001")
	require.NoError(t, err)
	assert.Nil(t, missing)

	created, err := s.CreateArchive(ctx, "100000001")
	require.NoError(t, err)
	assert.NotZero(t, created.InnerID)

	found, err := s.FindArchiveByUID(ctx, "100000001")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.InnerID, found.InnerID)

	_, err = s.CreateArchive(ctx, "100000001")
	assert.Error(t, err, "uid is unique")

	second, err := s.CreateArchive(ctx, "100000002")
	require.NoError(t, err)

	require.NoError(t, s.SelectArchive(ctx, second.InnerID))
	list, err := s.ListArchives(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.False(t, list[0].IsSelected)
	assert.True(t, list[1].IsSelected)

	require.NoError(t, s.SelectArchive(ctx, created.InnerID))
	list, err = s.ListArchives(ctx)
	require.NoError(t, err)
	assert.True(t, list[0].IsSelected)
	assert.False(t, list[1].IsSelected)
}

func TestStore_InsertAndMax(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	p := reconcile.Partition{ArchiveID: 1, QueryType: 301}

	maxID, err := s.MaxRecordID(ctx, 1, 301)
	require.NoError(t, err)
	assert.Zero(t, maxID)

	// Ownership comes from the partition
	batch := records(99, 100, 1, 250)
	require.NoError(t, s.Insert(ctx, p, batch))

	maxID, err = s.MaxRecordID(ctx, 1, 301)
	require.NoError(t, err)
	assert.Equal(t, int64(250), maxID)

	count, err := s.CountRecords(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(250), count)

	// Other partitions are unaffected
	maxID, err = s.MaxRecordID(ctx, 1, 302)
	require.NoError(t, err)
	assert.Zero(t, maxID)

	assert.Error(t, s.Insert(ctx, p, records(1, 301, 250, 250)), "ids are unique per partition")
	assert.NoError(t, s.Insert(ctx, p, nil))
}

func TestStore_ReplaceTail(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	p := reconcile.Partition{ArchiveID: 1, QueryType: 200}
	other := reconcile.Partition{ArchiveID: 1, QueryType: 100}

	require.NoError(t, s.Insert(ctx, p, records(1, 200, 1, 50)))
	require.NoError(t, s.Insert(ctx, other, records(1, 100, 40, 45)))

	require.NoError(t, s.ReplaceTail(ctx, p, 30, records(1, 200, 30, 80)))

	ids := storedIDs(t, s, 1, 200)
	require.Len(t, ids, 80)
	for i, id := range ids {
		assert.Equal(t, int64(i+1), id)
	}
	assert.Len(t, storedIDs(t, s, 1, 100), 6)
}

func TestStore_ReplaceTailRollsBack(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	p := reconcile.Partition{ArchiveID: 1, QueryType: 200}

	require.NoError(t, s.Insert(ctx, p, records(1, 200, 1, 10)))

	// Repeated id inside the batch violates the unique index
	batch := append(records(1, 200, 5, 6), records(1, 200, 6, 6)...)
	assert.Error(t, s.ReplaceTail(ctx, p, 5, batch))

	assert.Len(t, storedIDs(t, s, 1, 200), 10)
}

func TestStore_DeleteFrom(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	p := reconcile.Partition{ArchiveID: 2, QueryType: 302}

	require.NoError(t, s.Insert(ctx, p, records(2, 302, 1, 10)))
	require.NoError(t, s.DeleteFrom(ctx, p, 8))
	assert.Equal(t, []int64{1, 2, 3, 4, 5, 6, 7}, storedIDs(t, s, 2, 302))

	all, err := s.ListAllRecords(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, all, 7)
}

func TestStore_DatabaseErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("connection reset")

	t.Run("FindArchiveByUID", func(t *testing.T) {
		s, mock := setupMockStore(t)
		mock.ExpectQuery("SELECT \\* FROM `gacha_archives`").WillReturnError(boom)

		_, err := s.FindArchiveByUID(ctx, "1")
		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("MaxRecordID", func(t *testing.T) {
		s, mock := setupMockStore(t)
		mock.ExpectQuery("SELECT COALESCE\\(MAX\\(id\\), 0\\) FROM `gacha_items`").WillReturnError(boom)

		_, err := s.MaxRecordID(ctx, 1, 100)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("ReplaceTail", func(t *testing.T) {
		s, mock := setupMockStore(t)
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM `gacha_items`").WillReturnError(boom)
		mock.ExpectRollback()

		err := s.ReplaceTail(ctx, reconcile.Partition{ArchiveID: 1, QueryType: 200}, 5, records(1, 200, 5, 6))
		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ListArchives", func(t *testing.T) {
		s, mock := setupMockStore(t)
		mock.ExpectQuery("SELECT \\* FROM `gacha_archives` ORDER BY inner_id").WillReturnError(boom)

		_, err := s.ListArchives(ctx)
		assert.Error(t, err)
	})
}
