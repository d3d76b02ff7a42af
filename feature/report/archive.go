package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"migration-manager/core/reconcile"
	"migration-manager/core/storage"

	"github.com/minio/minio-go/v7"
)

// Archiver uploads rendered reconciliation reports to object storage.
type Archiver struct {
	Client storage.Client
	Bucket string
}

// Document is the archived report payload.
type Document struct {
	// RunID identifies the pipeline run the report belongs to.
	RunID string `json:"run_id"`
	// StartedAt is when the reconciliation pass started.
	StartedAt time.Time `json:"started_at"`
	// Clean is true iff every verdict matched and nothing errored.
	Clean bool `json:"clean"`
	// Summary aggregates the verdict counts.
	Summary reconcile.Summary `json:"summary"`
	// Verdicts is the full verdict sequence in registry order.
	Verdicts []reconcile.Verdict `json:"verdicts"`
}

// Archive renders the verdicts as JSON and uploads them under
// reports/<unix>_<run id>.json, creating the bucket on first use.
// It returns the object name.
func (a *Archiver) Archive(ctx context.Context, runID string, startedAt time.Time, verdicts []reconcile.Verdict) (string, error) {
	doc := Document{
		RunID:     runID,
		StartedAt: startedAt,
		Clean:     reconcile.Clean(verdicts),
		Summary:   reconcile.Summarize(verdicts),
		Verdicts:  verdicts,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}

	exists, err := a.Client.BucketExists(ctx, a.Bucket)
	if err != nil {
		return "", fmt.Errorf("failed to check report bucket: %w", err)
	}
	if !exists {
		if err := a.Client.MakeBucket(ctx, a.Bucket, minio.MakeBucketOptions{}); err != nil {
			return "", fmt.Errorf("failed to create report bucket: %w", err)
		}
	}

	objectName := fmt.Sprintf("reports/%d_%s.json", startedAt.Unix(), runID)

	_, err = a.Client.PutObject(ctx, a.Bucket, objectName, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return "", fmt.Errorf("failed to upload report: %w", err)
	}

	return objectName, nil
}
