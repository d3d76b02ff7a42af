package cmd

import (
	"context"
	"fmt"

	"migration-manager/core/config"
	"migration-manager/core/database"
	"migration-manager/core/logger"
	"migration-manager/core/source"
	"migration-manager/feature/extract"
	"migration-manager/feature/load"
	"migration-manager/feature/transform"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	incrementalMigrate bool
	skipReconcile      bool
	migrateBatchSize   int
)

// nestedFields names the array fields that get exploded into separate rows
// per destination table. The books table is the exploded one in this dataset.
var nestedFields = map[string][]string{
	"books": {"authors", "tags"},
}

// migrateCmd runs the full pipeline: extract, transform, load, reconcile.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run the migration pipeline (extract, transform, load, reconcile)",
	Long: `Migrate moves every source collection into its destination table and
then reconciles the two populations.

Incremental mode only moves documents modified after the destination's
last_modified_date watermark; tables without that column always load fully.

Examples:
  # Full migration with verification
  migration-manager migrate

  # Incremental run without the reconciliation pass
  migration-manager migrate --incremental --skip-reconcile`,
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().BoolVar(&incrementalMigrate, "incremental", false, "Only load documents newer than the destination watermark")
	migrateCmd.Flags().BoolVar(&skipReconcile, "skip-reconcile", false, "Skip the reconciliation pass after loading")
	migrateCmd.Flags().IntVar(&migrateBatchSize, "batch-size", 1000, "Extraction and insert batch size")

	RootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	runID := uuid.NewString()
	l = logger.WithRunID(l, runID)

	src, err := source.Connect(ctx, cfg.Source)
	if err != nil {
		return fmt.Errorf("failed to connect to source store: %w", err)
	}
	defer func() { _ = src.Close(ctx) }()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to destination database: %w", err)
	}
	defer func() { _ = database.Close(db) }()

	extractor := &extract.Extractor{Handle: src, Log: l, BatchSize: migrateBatchSize}
	loader := &load.Loader{DB: db, Log: l, BatchSize: migrateBatchSize}

	collections, err := extractor.Collections(ctx)
	if err != nil {
		return err
	}

	l.Info("starting migration",
		zap.Int("collections", len(collections)),
		zap.Bool("incremental", incrementalMigrate),
	)

	for _, name := range collections {
		if err := migrateCollection(ctx, l, extractor, loader, name); err != nil {
			return err
		}
	}

	if skipReconcile {
		l.Info("skipping reconciliation as requested")
		return nil
	}

	clean, err := reconcilePass(ctx, l, cfg, runID, src, db)
	if err != nil {
		return err
	}
	if !clean {
		return fmt.Errorf("migration loaded but reconciliation found discrepancies")
	}
	return nil
}

func migrateCollection(ctx context.Context, l *zap.Logger, extractor *extract.Extractor, loader *load.Loader, name string) error {
	var filter map[string]any
	if incrementalMigrate {
		since, ok, err := loader.LastLoadedAt(ctx, name)
		if err != nil {
			return err
		}
		if ok {
			filter = load.IncrementalFilter(since)
			l.Info("incremental load", zap.String("collection", name), zap.Time("since", since))
		}
	}

	docs, err := extractor.Collection(ctx, name, filter)
	if err != nil {
		return err
	}

	raw := make([]map[string]any, len(docs))
	for i, doc := range docs {
		raw[i] = doc
	}

	rows := transform.Dedupe(transform.FlattenAll(raw, nestedFields[name]))
	return loader.Table(ctx, name, rows)
}
