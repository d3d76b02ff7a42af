// Package load writes transformed rows into the destination store.
//
// Rows are inserted in batches. Incremental loads use a last_modified_date
// watermark: the loader reads the most recent value from the destination
// table and the pipeline filters the source by it, so only new or updated
// documents travel. Tables without the watermark column always load fully.
package load
