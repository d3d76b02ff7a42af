// Package report archives rendered reconciliation reports.
//
// The reconciliation core itself keeps no history; a pass produces verdicts
// and discards them. The Archiver gives operators an audit trail by rendering
// the verdict sequence as JSON and uploading it to object storage, named by
// run timestamp and run id so successive runs are diffable.
package report
