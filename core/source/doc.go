// Package source handles connections to the source document store and
// document counting for reconciliation.
//
// It wraps the official MongoDB driver. A Handle is an explicit, scoped
// connection passed to collaborators; there is no shared package-level
// client.
//
// Counter implements the source side of reconciliation counting. A missing
// collection is surfaced as a not-found failure instead of a zero count,
// because "nothing was migrated" and "the name is wrong" call for different
// operator responses.
package source
