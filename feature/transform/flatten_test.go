package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenDocument_NoNestedFields(t *testing.T) {
	doc := map[string]any{"book_id": 1, "title": "Dune"}

	rows := FlattenDocument(doc, nil)
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0]["book_id"])
	assert.Equal(t, "Dune", rows[0]["title"])
}

func TestFlattenDocument_SingleArray(t *testing.T) {
	doc := map[string]any{
		"book_id": 1,
		"tags":    []any{"scifi", "classic", "desert"},
	}

	rows := FlattenDocument(doc, []string{"tags"})
	require.Len(t, rows, 3)
	for _, row := range rows {
		assert.Equal(t, 1, row["book_id"])
	}
	assert.Equal(t, "scifi", rows[0]["tags"])
	assert.Equal(t, "classic", rows[1]["tags"])
	assert.Equal(t, "desert", rows[2]["tags"])
}

func TestFlattenDocument_CartesianProduct(t *testing.T) {
	doc := map[string]any{
		"book_id": 7,
		"authors": []any{"Herbert", "Anderson"},
		"tags":    []any{"scifi", "classic"},
	}

	rows := FlattenDocument(doc, []string{"authors", "tags"})
	assert.Len(t, rows, 4)

	// Every combination appears exactly once.
	combos := map[[2]string]bool{}
	for _, row := range rows {
		combos[[2]string{row["authors"].(string), row["tags"].(string)}] = true
	}
	assert.Len(t, combos, 4)
}

func TestFlattenDocument_ObjectElementsUseName(t *testing.T) {
	doc := map[string]any{
		"book_id": 2,
		"authors": []any{
			map[string]any{"name": "Le Guin", "born": 1929},
			map[string]any{"name": "Herbert"},
		},
	}

	rows := FlattenDocument(doc, []string{"authors"})
	require.Len(t, rows, 2)
	assert.Equal(t, "Le Guin", rows[0]["authors"])
	assert.Equal(t, "Herbert", rows[1]["authors"])
}

func TestFlattenDocument_ArrayNotInNestedFields(t *testing.T) {
	// Arrays outside the nested field list ride along untouched.
	doc := map[string]any{"book_id": 3, "scores": []any{1, 2, 3}}

	rows := FlattenDocument(doc, []string{"tags"})
	require.Len(t, rows, 1)
	assert.Equal(t, []any{1, 2, 3}, rows[0]["scores"])
}

func TestFlattenDocument_EmptyArrayYieldsOneRow(t *testing.T) {
	doc := map[string]any{"book_id": 4, "tags": []any{}}

	rows := FlattenDocument(doc, []string{"tags"})
	require.Len(t, rows, 1)
	assert.Equal(t, 4, rows[0]["book_id"])
}

func TestFlattenAll(t *testing.T) {
	docs := []map[string]any{
		{"book_id": 1, "tags": []any{"a", "b"}},
		{"book_id": 2, "tags": []any{"c"}},
		{"book_id": 3},
	}

	rows := FlattenAll(docs, []string{"tags"})
	assert.Len(t, rows, 4)
}

func TestDedupe(t *testing.T) {
	rows := []map[string]any{
		{"book_id": 1, "tags": "a"},
		{"book_id": 1, "tags": "a"},
		{"book_id": 1, "tags": "b"},
	}

	out := Dedupe(rows)
	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0]["tags"])
	assert.Equal(t, "b", out[1]["tags"])
}
