// Package database handles connections to the destination relational store
// and row counting for reconciliation.
//
// It wraps GORM to configure MySQL connections from application settings; the
// sqlite driver is supported for local runs and tests. Connections are
// explicit handles passed to callers with scoped acquisition and release, not
// package-level state.
//
// # Counting
//
// Counter implements the destination side of reconciliation counting. Direct
// mode is a plain COUNT(*); distinct mode counts distinct values of a key
// column, which re-aggregates exploded tables back to the original-document
// grain. Driver errors are classified so that a missing table or column
// surfaces as a schema defect rather than a connectivity failure or a silent
// zero.
//
// # Schema Inspection
//
// GetTableColumns retrieves column definitions (SHOW COLUMNS on MySQL, PRAGMA
// table_info on sqlite). The incremental loader uses it to detect whether a
// table carries a last_modified_date watermark column.
package database
