package reconcile

import (
	"errors"
	"fmt"
)

// Kind classifies a counting or configuration failure.
type Kind string

const (
	// KindConnectivity means the store was unreachable or the call timed
	// out. The whole pass can be retried later; nothing is retried within
	// a pass.
	KindConnectivity Kind = "connectivity"

	// KindNotFound means the named source collection does not exist. A
	// missing collection and a zero count have different operational
	// meanings, so this is surfaced instead of treated as zero.
	KindNotFound Kind = "not_found"

	// KindSchema means the destination table or distinct key does not
	// exist. A configuration defect, not a transient failure.
	KindSchema Kind = "schema"

	// KindConfiguration means a mapping entry is malformed. Fatal at
	// startup, before any store is contacted.
	KindConfiguration Kind = "configuration"
)

// StoreError carries the failure kind alongside the entity being counted.
type StoreError struct {
	// Kind classifies the failure.
	Kind Kind `json:"kind"`

	// Entity is the collection, table, or mapping the failure concerns.
	Entity string `json:"entity"`

	// Message is the rendered cause, kept so archived reports stay useful
	// after the wrapped error is gone.
	Message string `json:"message"`

	err error
}

// NewStoreError builds a StoreError wrapping err.
func NewStoreError(kind Kind, entity string, err error) *StoreError {
	se := &StoreError{Kind: kind, Entity: entity, err: err}
	if err != nil {
		se.Message = err.Error()
	}
	return se
}

func (e *StoreError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %q: %s", e.Kind, e.Entity, e.Message)
	}
	return fmt.Sprintf("%s %q", e.Kind, e.Entity)
}

func (e *StoreError) Unwrap() error { return e.err }

// Coerce normalizes err into a *StoreError for the given entity. Errors the
// counters did not classify themselves (raw timeouts, cancelled contexts,
// driver failures) are treated as connectivity problems.
func Coerce(entity string, err error) *StoreError {
	var se *StoreError
	if errors.As(err, &se) {
		return se
	}
	return NewStoreError(KindConnectivity, entity, err)
}
