package load

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"migration-manager/core/database"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// watermarkColumn bounds incremental loads, matching the source documents'
// modification timestamp field.
const watermarkColumn = "last_modified_date"

// Loader writes transformed rows into the destination store.
type Loader struct {
	DB  *gorm.DB
	Log *zap.Logger
	// BatchSize bounds insert batch size. Defaults to 500.
	BatchSize int
}

// Table writes rows into the named table in batches.
func (l *Loader) Table(ctx context.Context, table string, rows []map[string]any) error {
	if len(rows) == 0 {
		l.Log.Warn("no rows to load", zap.String("table", table))
		return nil
	}

	batch := l.BatchSize
	if batch <= 0 {
		batch = 500
	}

	tx := l.DB.WithContext(ctx).Table(table).CreateInBatches(rows, batch)
	if tx.Error != nil {
		return fmt.Errorf("failed to load table %s: %w", table, tx.Error)
	}

	l.Log.Info("loaded table",
		zap.String("table", table),
		zap.Int("rows", len(rows)),
		zap.Int64("inserted", tx.RowsAffected),
	)
	return nil
}

// LastLoadedAt returns the most recent last_modified_date in the table. The
// second return is false when the table has no watermark column or no rows
// yet, meaning the caller should load fully.
func (l *Loader) LastLoadedAt(ctx context.Context, table string) (time.Time, bool, error) {
	has, err := database.HasColumn(l.DB.WithContext(ctx), table, watermarkColumn)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to inspect table %s: %w", table, err)
	}
	if !has {
		return time.Time{}, false, nil
	}

	// Select the column itself rather than MAX() so the driver keeps the
	// declared column type and scans straight into NullTime.
	var last sql.NullTime
	query := fmt.Sprintf("SELECT `%s` FROM `%s` ORDER BY `%s` DESC LIMIT 1",
		watermarkColumn, table, watermarkColumn)
	if err := l.DB.WithContext(ctx).Raw(query).Scan(&last).Error; err != nil {
		return time.Time{}, false, fmt.Errorf("failed to read load watermark for %s: %w", table, err)
	}
	if !last.Valid {
		return time.Time{}, false, nil
	}
	return last.Time, true, nil
}

// IncrementalFilter returns the source filter selecting documents modified
// after the watermark.
func IncrementalFilter(since time.Time) map[string]any {
	return map[string]any{
		watermarkColumn: map[string]any{"$gt": since},
	}
}
