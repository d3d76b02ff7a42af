package reconcile

// Mode selects how destination rows are counted for a mapping.
type Mode string

const (
	// ModeDirect compares the literal destination row count.
	ModeDirect Mode = "direct"

	// ModeDistinct compares the count of distinct values of the mapping's
	// DistinctKey. Used for exploded tables where one source document becomes
	// many rows sharing the original identifier.
	ModeDistinct Mode = "distinct"
)

// Mapping pairs a source collection with a destination table and the
// comparison mode used to reconcile them. Mappings are built once at startup
// and are immutable for the run.
type Mapping struct {
	// Source is the source collection name.
	Source string `json:"source"`

	// Dest is the destination table name.
	Dest string `json:"dest"`

	// Mode is the comparison mode.
	Mode Mode `json:"mode"`

	// DistinctKey is the column whose distinct values restore the
	// original-document grain. Required iff Mode is ModeDistinct.
	DistinctKey string `json:"distinct_key,omitempty"`

	// Filter optionally restricts which source documents are counted.
	// It is an opaque predicate understood by the source store; nil means
	// all documents.
	Filter map[string]any `json:"filter,omitempty"`
}

// StoreKind identifies which side of the migration a count was taken from.
type StoreKind string

const (
	// StoreSource is the document store being migrated from.
	StoreSource StoreKind = "source"

	// StoreDestination is the relational store being migrated into.
	StoreDestination StoreKind = "destination"
)

// CountResult is a single population count taken during a pass. It is owned
// by the engine while the verdict is being built and discarded afterwards.
type CountResult struct {
	// Entity is the collection or table that was counted.
	Entity string `json:"entity"`

	// Store is the side of the migration the count came from.
	Store StoreKind `json:"store"`

	// Count is the number of records at the moment of the call.
	Count int64 `json:"count"`

	// FilterDesc describes the filter applied, if any.
	FilterDesc string `json:"filter_desc,omitempty"`
}

// Status classifies the outcome of reconciling one mapping.
type Status string

const (
	// StatusMatch means both populations are exactly equal.
	StatusMatch Status = "match"

	// StatusMismatch means the populations differ. The delta sign tells
	// surplus from deficit.
	StatusMismatch Status = "mismatch"

	// StatusErrored means one of the counts could not be taken. This is
	// rendered distinctly from a mismatch: "we could not check" is not
	// "we checked and it's wrong".
	StatusErrored Status = "errored"
)

// Verdict is the reconciliation outcome for a single mapping. One verdict is
// produced per mapping per pass; verdicts are immutable once built.
type Verdict struct {
	// Mapping is the mapping this verdict was produced for.
	Mapping Mapping `json:"mapping"`

	// SourceCount is the source document count. Zero when counting the
	// source failed.
	SourceCount int64 `json:"source_count"`

	// DestCount is the destination count under the mapping's mode.
	DestCount int64 `json:"dest_count"`

	// Delta is DestCount minus SourceCount. Positive means surplus in the
	// destination, negative means deficit.
	Delta int64 `json:"delta"`

	// Status classifies the outcome.
	Status Status `json:"status"`

	// Detail is a human-readable triage line naming the mapping, both
	// counts, the mode used, and the delta direction.
	Detail string `json:"detail"`

	// Err carries the failure for errored verdicts, nil otherwise.
	Err *StoreError `json:"error,omitempty"`
}

// Summary aggregates verdict counts for a whole pass.
type Summary struct {
	// Total is the number of mappings reconciled.
	Total int `json:"total"`

	// Matched counts mappings whose populations are equal.
	Matched int `json:"matched"`

	// Mismatched counts mappings with a non-zero delta.
	Mismatched int `json:"mismatched"`

	// Errored counts mappings that could not be counted.
	Errored int `json:"errored"`
}

// Summarize aggregates a verdict sequence into a Summary.
func Summarize(verdicts []Verdict) Summary {
	s := Summary{Total: len(verdicts)}
	for _, v := range verdicts {
		switch v.Status {
		case StatusMatch:
			s.Matched++
		case StatusMismatch:
			s.Mismatched++
		case StatusErrored:
			s.Errored++
		}
	}
	return s
}

// Clean reports whether a pass found no discrepancies and no counting
// failures. This is the single value the surrounding CLI maps to its exit
// code.
func Clean(verdicts []Verdict) bool {
	for _, v := range verdicts {
		if v.Status != StatusMatch {
			return false
		}
	}
	return true
}
