package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetTableColumns(t *testing.T) {
	cfg := Config{
		Driver: "sqlite",
		Name:   ":memory:",
	}
	db, err := Connect(cfg)
	assert.NoError(t, err)
	assert.NotNil(t, db)

	err = db.Exec("CREATE TABLE books (book_id INTEGER, title TEXT, last_modified_date DATETIME)").Error
	assert.NoError(t, err)

	columns, err := GetTableColumns(db, "books")
	assert.NoError(t, err)
	assert.Len(t, columns, 3)

	colMap := make(map[string]string)
	for _, col := range columns {
		colMap[col.Field] = col.Type
	}

	assert.Equal(t, "integer", colMap["book_id"])
	assert.Equal(t, "text", colMap["title"])
	assert.Equal(t, "datetime", colMap["last_modified_date"])

	// PRAGMA table_info returns an empty result for a non-existent table.
	cols, err := GetTableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}

func TestHasColumn(t *testing.T) {
	db, err := Connect(Config{Driver: "sqlite", Name: ":memory:"})
	assert.NoError(t, err)

	err = db.Exec("CREATE TABLE readers (reader_id INTEGER, name TEXT)").Error
	assert.NoError(t, err)

	has, err := HasColumn(db, "readers", "reader_id")
	assert.NoError(t, err)
	assert.True(t, has)

	has, err = HasColumn(db, "readers", "last_modified_date")
	assert.NoError(t, err)
	assert.False(t, has)
}
