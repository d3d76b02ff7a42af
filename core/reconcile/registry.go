package reconcile

import (
	"encoding/json"
	"fmt"
	"os"
)

// Registry holds the ordered mappings that drive a reconciliation pass.
// Declaration order is significant: verdicts are emitted in the same order,
// which keeps reports deterministic and diffable across runs.
type Registry struct {
	mappings []Mapping
}

// NewRegistry builds a registry from the given mappings. Call Validate before
// counting; ReconcileAll does so as well.
func NewRegistry(mappings []Mapping) *Registry {
	return &Registry{mappings: mappings}
}

// Mappings returns the mappings in declaration order.
func (r *Registry) Mappings() []Mapping {
	return r.mappings
}

// Validate checks every mapping for structural defects. Violations are
// configuration errors and must abort the run before any store is contacted.
func (r *Registry) Validate() error {
	for i, m := range r.mappings {
		entity := m.Source
		if entity == "" {
			entity = fmt.Sprintf("mapping[%d]", i)
		}
		if m.Source == "" {
			return NewStoreError(KindConfiguration, entity, fmt.Errorf("missing source collection"))
		}
		if m.Dest == "" {
			return NewStoreError(KindConfiguration, entity, fmt.Errorf("missing destination table"))
		}
		switch m.Mode {
		case ModeDirect:
			if m.DistinctKey != "" {
				return NewStoreError(KindConfiguration, entity, fmt.Errorf("distinct_key %q set on a direct mapping", m.DistinctKey))
			}
		case ModeDistinct:
			if m.DistinctKey == "" {
				return NewStoreError(KindConfiguration, entity, fmt.Errorf("distinct mode requires a distinct_key"))
			}
		default:
			return NewStoreError(KindConfiguration, entity, fmt.Errorf("unknown comparison mode %q", m.Mode))
		}
	}
	return nil
}

// LoadRegistry reads an ordered mapping list from a JSON file and validates
// it. The file is an array of Mapping objects.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mappings file: %w", err)
	}

	var mappings []Mapping
	if err := json.Unmarshal(data, &mappings); err != nil {
		return nil, NewStoreError(KindConfiguration, path, fmt.Errorf("failed to parse mappings file: %w", err))
	}

	r := NewRegistry(mappings)
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// DefaultRegistry returns the mappings for the books dataset migration. The
// books table is exploded during transformation (one row per nested array
// element), so it is compared at the original-document grain via distinct
// book_id. All other tables map one row per document.
func DefaultRegistry() *Registry {
	return NewRegistry([]Mapping{
		{Source: "books", Dest: "books", Mode: ModeDistinct, DistinctKey: "book_id"},
		{Source: "authors", Dest: "authors", Mode: ModeDirect},
		{Source: "ratings", Dest: "ratings", Mode: ModeDirect},
		{Source: "tags", Dest: "tags", Mode: ModeDirect},
		{Source: "to_read", Dest: "to_read", Mode: ModeDirect},
		{Source: "readers", Dest: "readers", Mode: ModeDirect},
	})
}
