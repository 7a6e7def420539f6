package checks

import (
	"regexp"
	"strings"
	"testing"

	"wish-archive/feature/gachalog/store"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func setupSQLite(t *testing.T) *gorm.DB {
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func showColumns(table string) string {
	return regexp.QuoteMeta("SHOW COLUMNS FROM `" + table + "`")
}

func columnRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"})
}

func TestCheckSchema_NilDB(t *testing.T) {
	report, err := CheckSchema(nil, store.Entities())
	assert.Error(t, err)
	assert.Nil(t, report)
}

func TestCheckSchema_MigratedSQLite(t *testing.T) {
	db := setupSQLite(t)
	require.NoError(t, db.AutoMigrate(store.Entities()...))

	report, err := CheckSchema(db, store.Entities())
	require.NoError(t, err)
	assert.Equal(t, "sqlite", report.Dialect)
	assert.True(t, report.Matched, "report: %+v", report)
	assert.Equal(t, "ok", report.Tables["gacha_archives"].Status)
	assert.Equal(t, "ok", report.Tables["gacha_items"].Status)
}

func TestCheckSchema_MissingTableSQLite(t *testing.T) {
	db := setupSQLite(t)

	report, err := CheckSchema(db, store.Entities())
	require.NoError(t, err)
	assert.False(t, report.Matched)
	assert.Contains(t, report.Tables["gacha_items"].MissingColumns, "archive_id")
}

func TestCheckSchema_MissingColumn(t *testing.T) {
	db, mock := setupMockDB(t)

	archives := columnRows().
		AddRow("inner_id", "int unsigned", "NO", "PRI", nil, "auto_increment").
		AddRow("uid", "varchar(32)", "NO", "UNI", nil, "").
		AddRow("is_selected", "tinyint(1)", "NO", "", "0", "").
		AddRow("created_at", "datetime(3)", "YES", "", nil, "")
	mock.ExpectQuery(showColumns("gacha_archives")).WillReturnRows(archives)

	items := columnRows().
		AddRow("inner_id", "int unsigned", "NO", "PRI", nil, "auto_increment").
		AddRow("archive_id", "int unsigned", "NO", "MUL", nil, "").
		AddRow("query_type", "bigint", "NO", "", nil, "").
		AddRow("id", "bigint", "NO", "", nil, "")
	mock.ExpectQuery(showColumns("gacha_items")).WillReturnRows(items)

	report, err := CheckSchema(db, store.Entities())
	require.NoError(t, err)
	assert.False(t, report.Matched)
	assert.Equal(t, "ok", report.Tables["gacha_archives"].Status)

	tbl := report.Tables["gacha_items"]
	assert.Equal(t, "error", tbl.Status)
	assert.ElementsMatch(t, []string{"gacha_type", "item_id", "name", "time"}, tbl.MissingColumns)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckSchema_TypeMismatch(t *testing.T) {
	db, mock := setupMockDB(t)

	archives := columnRows().
		AddRow("inner_id", "int unsigned", "NO", "PRI", nil, "").
		AddRow("uid", "int(11)", "NO", "UNI", nil, "").
		AddRow("is_selected", "tinyint(1)", "NO", "", "0", "").
		AddRow("created_at", "datetime(3)", "YES", "", nil, "")
	mock.ExpectQuery(showColumns("gacha_archives")).WillReturnRows(archives)
	mock.ExpectQuery(showColumns("gacha_items")).WillReturnError(assert.AnError)

	report, err := CheckSchema(db, store.Entities())
	require.NoError(t, err)
	assert.False(t, report.Matched)

	found := false
	for _, m := range report.Tables["gacha_archives"].TypeMismatches {
		if regexp.MustCompile(`uid: expected varchar\(32\), got int\(11\)`).MatchString(m) {
			found = true
		}
	}
	assert.True(t, found, "Should detect type mismatch for uid. Got: %v", report.Tables["gacha_archives"].TypeMismatches)

	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "gacha_items")
}

func TestCheckSchema_NotAnEntity(t *testing.T) {
	db, _ := setupMockDB(t)

	_, err := CheckSchema(db, []any{struct{ A int }{}})
	assert.Error(t, err)
}

func TestTypeMatches(t *testing.T) {
	assert.True(t, typeMatches("varchar(32)", "varchar(32)"))
	assert.True(t, typeMatches("varchar(64)", "character varying"))
	assert.False(t, typeMatches("varchar(64)", "int(11)"))
}

func TestParseGormTags(t *testing.T) {
	assert.Equal(t, "uid", parseGormColumn("column:uid;type:varchar(32);uniqueIndex"))
	assert.Equal(t, "inner_id", parseGormColumn("primaryKey;column:inner_id"))
	assert.Equal(t, "", parseGormColumn("primaryKey"))

	assert.Equal(t, "varchar(64)", parseGormType("column:name;type:varchar(64)"))
	assert.Equal(t, "", parseGormType("column:id"))
}
