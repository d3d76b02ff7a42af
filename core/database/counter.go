package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"migration-manager/core/reconcile"

	mysqldrv "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// Counter implements the destination side of reconciliation counting.
// It is read-only: only COUNT queries are issued.
type Counter struct {
	db *gorm.DB
}

// NewCounter wraps an established database handle.
func NewCounter(db *gorm.DB) *Counter {
	return &Counter{db: db}
}

// Count returns the number of rows in table. In distinct mode the count is
// taken over distinct values of distinctKey, which re-aggregates an exploded
// table back to the original-document grain. A missing table or key surfaces
// as a schema error, never as zero.
func (c *Counter) Count(ctx context.Context, table string, mode reconcile.Mode, distinctKey string) (int64, error) {
	if table == "" {
		return 0, reconcile.NewStoreError(reconcile.KindSchema, table, errors.New("empty table name"))
	}

	var query string
	if mode == reconcile.ModeDistinct {
		query = fmt.Sprintf("SELECT COUNT(DISTINCT `%s`) FROM `%s`", distinctKey, table)
	} else {
		query = fmt.Sprintf("SELECT COUNT(*) FROM `%s`", table)
	}

	var count int64
	if err := c.db.WithContext(ctx).Raw(query).Scan(&count).Error; err != nil {
		return 0, classify(table, err)
	}
	return count, nil
}

// MySQL server error numbers for absent schema objects.
const (
	mysqlErrBadDB       = 1049 // unknown database
	mysqlErrBadField    = 1054 // unknown column
	mysqlErrNoSuchTable = 1146 // table doesn't exist
)

// classify maps a driver error to the reconciliation taxonomy: absent schema
// objects are configuration defects, everything else is a connectivity
// problem for this table only.
func classify(table string, err error) *reconcile.StoreError {
	var myErr *mysqldrv.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlErrBadDB, mysqlErrBadField, mysqlErrNoSuchTable:
			return reconcile.NewStoreError(reconcile.KindSchema, table, err)
		}
	}

	// sqlite reports schema problems by message only.
	msg := err.Error()
	if strings.Contains(msg, "no such table") || strings.Contains(msg, "no such column") {
		return reconcile.NewStoreError(reconcile.KindSchema, table, err)
	}

	return reconcile.NewStoreError(reconcile.KindConnectivity, table, err)
}
