package source

import (
	"context"
	"fmt"

	"migration-manager/core/reconcile"

	"go.mongodb.org/mongo-driver/bson"
)

// Counter implements the source side of reconciliation counting. It is
// read-only: only metadata listings and count queries are issued.
type Counter struct {
	handle *Handle
}

// NewCounter wraps an established source handle.
func NewCounter(h *Handle) *Counter {
	return &Counter{handle: h}
}

// Count returns the number of documents in collection matching filter. A nil
// filter counts every document. A collection that does not exist is reported
// as not found rather than zero.
func (c *Counter) Count(ctx context.Context, collection string, filter map[string]any) (int64, error) {
	if collection == "" {
		return 0, reconcile.NewStoreError(reconcile.KindNotFound, collection, fmt.Errorf("empty collection name"))
	}

	names, err := c.handle.db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: collection}})
	if err != nil {
		return 0, reconcile.NewStoreError(reconcile.KindConnectivity, collection, err)
	}
	if len(names) == 0 {
		return 0, reconcile.NewStoreError(reconcile.KindNotFound, collection,
			fmt.Errorf("collection %s does not exist", collection))
	}

	query := bson.M{}
	for k, v := range filter {
		query[k] = v
	}

	count, err := c.handle.db.Collection(collection).CountDocuments(ctx, query)
	if err != nil {
		return 0, reconcile.NewStoreError(reconcile.KindConnectivity, collection, err)
	}
	return count, nil
}
