package transform

import (
	"encoding/json"
	"slices"
	"sort"
)

// FlattenDocument explodes a document's nested array fields into one flat
// row per element. When several nested fields are present the result is
// their cartesian product, matching the destination table's exploded layout.
// Object elements contribute their "name" field; scalar elements are used as
// is. A document without nested arrays yields exactly one row.
func FlattenDocument(doc map[string]any, nestedFields []string) []map[string]any {
	rows := []map[string]any{{}}

	// Sorted keys keep row order deterministic across runs.
	keys := make([]string, 0, len(doc))
	for key := range doc {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := doc[key]

		list, isList := value.([]any)
		if isList && slices.Contains(nestedFields, key) {
			var expanded []map[string]any
			for _, element := range list {
				for _, base := range rows {
					next := cloneRow(base)
					next[key] = elementValue(element)
					expanded = append(expanded, next)
				}
			}
			if len(expanded) > 0 {
				rows = expanded
			}
			continue
		}

		for _, base := range rows {
			base[key] = value
		}
	}

	return rows
}

// FlattenAll explodes every document and concatenates the resulting rows.
func FlattenAll(docs []map[string]any, nestedFields []string) []map[string]any {
	var rows []map[string]any
	for _, doc := range docs {
		rows = append(rows, FlattenDocument(doc, nestedFields)...)
	}
	return rows
}

// Dedupe drops exact duplicate rows, preserving first-seen order.
func Dedupe(rows []map[string]any) []map[string]any {
	seen := make(map[string]struct{}, len(rows))
	out := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		// json.Marshal sorts map keys, giving a stable identity.
		key, err := json.Marshal(row)
		if err != nil {
			out = append(out, row)
			continue
		}
		if _, dup := seen[string(key)]; dup {
			continue
		}
		seen[string(key)] = struct{}{}
		out = append(out, row)
	}
	return out
}

func cloneRow(row map[string]any) map[string]any {
	next := make(map[string]any, len(row)+1)
	for k, v := range row {
		next[k] = v
	}
	return next
}

func elementValue(element any) any {
	if obj, ok := element.(map[string]any); ok {
		if name, ok := obj["name"]; ok {
			return name
		}
	}
	return element
}
