package source

import (
	"context"
	"testing"

	"migration-manager/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect_Unreachable(t *testing.T) {
	cfg := Config{
		URI:            "mongodb://localhost:1",
		Database:       "books",
		TimeoutSeconds: 1,
	}

	h, err := Connect(context.Background(), cfg)
	assert.Error(t, err)
	assert.Nil(t, h)
}

func TestCounter_EmptyCollectionName(t *testing.T) {
	counter := NewCounter(&Handle{})

	_, err := counter.Count(context.Background(), "", nil)
	require.Error(t, err)

	var se *reconcile.StoreError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, reconcile.KindNotFound, se.Kind)
}
