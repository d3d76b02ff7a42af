// Package transform restructures extracted documents into relational rows.
//
// Nested array fields are exploded into one row per element, which is what
// makes the destination books table row count diverge from the source
// document count and why reconciliation compares it at distinct-key grain.
package transform
