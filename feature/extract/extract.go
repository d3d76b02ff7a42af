package extract

import (
	"context"
	"fmt"

	"migration-manager/core/source"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Document is a single source record with the store's internal id stripped.
type Document map[string]any

// Extractor reads full collections from the source store.
type Extractor struct {
	Handle *source.Handle
	Log    *zap.Logger
	// BatchSize bounds the cursor batch size. Defaults to 1000.
	BatchSize int
}

// Collections lists the collection names present in the source database.
func (e *Extractor) Collections(ctx context.Context) ([]string, error) {
	names, err := e.Handle.Database().ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to list source collections: %w", err)
	}
	return names, nil
}

// Collection reads every document of the named collection matching filter.
// A nil filter reads the whole collection.
func (e *Extractor) Collection(ctx context.Context, name string, filter map[string]any) ([]Document, error) {
	batch := e.BatchSize
	if batch <= 0 {
		batch = 1000
	}

	query := bson.M{}
	for k, v := range filter {
		query[k] = v
	}

	cur, err := e.Handle.Database().Collection(name).Find(ctx, query,
		options.Find().SetBatchSize(int32(batch)))
	if err != nil {
		return nil, fmt.Errorf("failed to read collection %s: %w", name, err)
	}
	defer cur.Close(ctx)

	var docs []Document
	for cur.Next(ctx) {
		var raw bson.M
		if err := cur.Decode(&raw); err != nil {
			return nil, fmt.Errorf("failed to decode document in %s: %w", name, err)
		}
		delete(raw, "_id")
		docs = append(docs, Document(raw))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate collection %s: %w", name, err)
	}

	e.Log.Info("extracted collection",
		zap.String("collection", name),
		zap.Int("documents", len(docs)),
	)
	return docs, nil
}

// All extracts every collection in the source database.
func (e *Extractor) All(ctx context.Context) (map[string][]Document, error) {
	names, err := e.Collections(ctx)
	if err != nil {
		return nil, err
	}

	out := make(map[string][]Document, len(names))
	for _, name := range names {
		docs, err := e.Collection(ctx, name, nil)
		if err != nil {
			return nil, err
		}
		out[name] = docs
	}
	return out, nil
}
