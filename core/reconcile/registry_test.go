package reconcile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryValidate(t *testing.T) {
	tests := []struct {
		name    string
		mapping Mapping
		wantErr string
	}{
		{
			name:    "valid direct",
			mapping: Mapping{Source: "authors", Dest: "authors", Mode: ModeDirect},
		},
		{
			name:    "valid distinct",
			mapping: Mapping{Source: "books", Dest: "books", Mode: ModeDistinct, DistinctKey: "book_id"},
		},
		{
			name:    "missing source",
			mapping: Mapping{Dest: "books", Mode: ModeDirect},
			wantErr: "missing source collection",
		},
		{
			name:    "missing dest",
			mapping: Mapping{Source: "books", Mode: ModeDirect},
			wantErr: "missing destination table",
		},
		{
			name:    "distinct without key",
			mapping: Mapping{Source: "books", Dest: "books", Mode: ModeDistinct},
			wantErr: "requires a distinct_key",
		},
		{
			name:    "direct with stray key",
			mapping: Mapping{Source: "books", Dest: "books", Mode: ModeDirect, DistinctKey: "book_id"},
			wantErr: "set on a direct mapping",
		},
		{
			name:    "unknown mode",
			mapping: Mapping{Source: "books", Dest: "books", Mode: "fuzzy"},
			wantErr: "unknown comparison mode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewRegistry([]Mapping{tt.mapping}).Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)

			var se *StoreError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, KindConfiguration, se.Kind)
		})
	}
}

func TestLoadRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mappings.json")
	data := `[
		{"source": "books", "dest": "books", "mode": "distinct", "distinct_key": "book_id"},
		{"source": "authors", "dest": "authors_tbl", "mode": "direct"}
	]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	reg, err := LoadRegistry(path)
	require.NoError(t, err)

	mappings := reg.Mappings()
	require.Len(t, mappings, 2)
	assert.Equal(t, "books", mappings[0].Source)
	assert.Equal(t, ModeDistinct, mappings[0].Mode)
	assert.Equal(t, "book_id", mappings[0].DistinctKey)
	assert.Equal(t, "authors_tbl", mappings[1].Dest)
}

func TestLoadRegistry_Invalid(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadRegistry(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})

	t.Run("bad json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "mappings.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

		_, err := LoadRegistry(path)
		require.Error(t, err)

		var se *StoreError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, KindConfiguration, se.Kind)
	})

	t.Run("fails validation", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "mappings.json")
		require.NoError(t, os.WriteFile(path, []byte(`[{"source": "books", "mode": "direct"}]`), 0o644))

		_, err := LoadRegistry(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing destination table")
	})
}

func TestDefaultRegistry(t *testing.T) {
	reg := DefaultRegistry()
	require.NoError(t, reg.Validate())

	mappings := reg.Mappings()
	require.Len(t, mappings, 6)

	// books is the exploded table and must be compared at document grain.
	assert.Equal(t, "books", mappings[0].Source)
	assert.Equal(t, ModeDistinct, mappings[0].Mode)
	assert.Equal(t, "book_id", mappings[0].DistinctKey)

	for _, m := range mappings[1:] {
		assert.Equal(t, ModeDirect, m.Mode)
	}
}
