package database

import (
	"context"
	"errors"
	"testing"

	"migration-manager/core/reconcile"

	"github.com/DATA-DOG/go-sqlmock"
	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
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

func TestCounter_Direct(t *testing.T) {
	db, mock := setupMockDB(t)
	counter := NewCounter(db)

	rows := sqlmock.NewRows([]string{"count"}).AddRow(498)
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM `users`").WillReturnRows(rows)

	count, err := counter.Count(context.Background(), "users", reconcile.ModeDirect, "")
	require.NoError(t, err)
	assert.Equal(t, int64(498), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCounter_DistinctKeyGrain(t *testing.T) {
	db, mock := setupMockDB(t)
	counter := NewCounter(db)

	// 340 raw rows collapse to 100 distinct book ids.
	rows := sqlmock.NewRows([]string{"count"}).AddRow(100)
	mock.ExpectQuery("SELECT COUNT\\(DISTINCT `book_id`\\) FROM `books`").WillReturnRows(rows)

	count, err := counter.Count(context.Background(), "books", reconcile.ModeDistinct, "book_id")
	require.NoError(t, err)
	assert.Equal(t, int64(100), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCounter_MissingTableIsSchemaError(t *testing.T) {
	db, mock := setupMockDB(t)
	counter := NewCounter(db)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM `orders_tbl`").
		WillReturnError(&mysqldrv.MySQLError{Number: 1146, Message: "Table 'books.orders_tbl' doesn't exist"})

	_, err := counter.Count(context.Background(), "orders_tbl", reconcile.ModeDirect, "")
	require.Error(t, err)

	var se *reconcile.StoreError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, reconcile.KindSchema, se.Kind)
	assert.Equal(t, "orders_tbl", se.Entity)
}

func TestCounter_MissingColumnIsSchemaError(t *testing.T) {
	db, mock := setupMockDB(t)
	counter := NewCounter(db)

	mock.ExpectQuery("SELECT COUNT\\(DISTINCT `nope`\\) FROM `books`").
		WillReturnError(&mysqldrv.MySQLError{Number: 1054, Message: "Unknown column 'nope' in 'field list'"})

	_, err := counter.Count(context.Background(), "books", reconcile.ModeDistinct, "nope")
	require.Error(t, err)

	var se *reconcile.StoreError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, reconcile.KindSchema, se.Kind)
}

func TestCounter_UnreachableIsConnectivityError(t *testing.T) {
	db, mock := setupMockDB(t)
	counter := NewCounter(db)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM `users`").
		WillReturnError(errors.New("dial tcp 127.0.0.1:3306: connect: connection refused"))

	_, err := counter.Count(context.Background(), "users", reconcile.ModeDirect, "")
	require.Error(t, err)

	var se *reconcile.StoreError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, reconcile.KindConnectivity, se.Kind)
}

func TestCounter_EmptyTableName(t *testing.T) {
	db, _ := setupMockDB(t)
	counter := NewCounter(db)

	_, err := counter.Count(context.Background(), "", reconcile.ModeDirect, "")
	require.Error(t, err)

	var se *reconcile.StoreError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, reconcile.KindSchema, se.Kind)
}

func TestCounter_SqliteSchemaMessages(t *testing.T) {
	// sqlite has no numbered errors; classification falls back to message text.
	cfg := Config{Driver: "sqlite", Name: ":memory:"}
	db, err := Connect(cfg)
	require.NoError(t, err)

	counter := NewCounter(db)

	_, err = counter.Count(context.Background(), "missing_tbl", reconcile.ModeDirect, "")
	require.Error(t, err)

	var se *reconcile.StoreError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, reconcile.KindSchema, se.Kind)
}
