package cmd

import (
	"context"
	"fmt"
	"time"

	"migration-manager/core/config"
	"migration-manager/core/database"
	"migration-manager/core/logger"
	"migration-manager/core/reconcile"
	"migration-manager/core/source"
	"migration-manager/core/storage"
	"migration-manager/feature/report"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	mappingsFile  string
	archiveReport bool
)

// reconcileCmd verifies the migrated populations without touching any data.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Compare source collection counts against destination table counts",
	Long: `Reconcile compares each mapped source collection against its destination
table and reports per-mapping verdicts.

Exploded tables (one source document flattened into many rows) are compared
at the original-document grain via their distinct key. The command is
read-only with respect to both stores and exits non-zero when any mapping
mismatches or could not be counted.

Examples:
  # Reconcile with the built-in mappings
  migration-manager reconcile

  # Reconcile with a custom mappings file and archive the report
  migration-manager reconcile --mappings mappings.json --archive`,
	RunE: runReconcile,
}

func init() {
	reconcileCmd.Flags().StringVar(&mappingsFile, "mappings", "", "Path to a JSON mappings file (default: built-in books mappings)")
	reconcileCmd.Flags().BoolVar(&archiveReport, "archive", false, "Upload the rendered report to object storage")

	RootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
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

	// Configuration defects must surface before any store is contacted.
	if _, err := buildRegistry(cfg); err != nil {
		return err
	}

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

	clean, err := reconcilePass(ctx, l, cfg, runID, src, db)
	if err != nil {
		return err
	}
	if !clean {
		return fmt.Errorf("reconciliation found discrepancies")
	}
	return nil
}

// reconcilePass runs one full reconciliation over already-open store handles
// and renders the verdicts. Shared between the reconcile and migrate
// commands.
func reconcilePass(ctx context.Context, l *zap.Logger, cfg *config.Config, runID string, src *source.Handle, db *gorm.DB) (bool, error) {
	reg, err := buildRegistry(cfg)
	if err != nil {
		return false, err
	}

	engine := &reconcile.Engine{
		Source:  source.NewCounter(src),
		Dest:    database.NewCounter(db),
		Timeout: time.Duration(cfg.Reconcile.TimeoutSeconds) * time.Second,
		Workers: cfg.Reconcile.Workers,
	}

	startedAt := time.Now()
	l.Info("starting reconciliation",
		zap.Int("mappings", len(reg.Mappings())),
		zap.Int("workers", cfg.Reconcile.Workers),
	)

	verdicts, err := engine.ReconcileAll(ctx, reg)
	if err != nil {
		return false, fmt.Errorf("failed to reconcile: %w", err)
	}

	reconcile.EmitAll(&reconcile.LogSink{Log: l}, verdicts)

	if archiveReport {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return false, fmt.Errorf("failed to create storage client: %w", err)
		}
		archiver := &report.Archiver{Client: client, Bucket: cfg.Storage.Bucket}
		objectName, err := archiver.Archive(ctx, runID, startedAt, verdicts)
		if err != nil {
			return false, fmt.Errorf("failed to archive report: %w", err)
		}
		l.Info("report archived", zap.String("object", objectName))
	}

	return reconcile.Clean(verdicts), nil
}

func buildRegistry(cfg *config.Config) (*reconcile.Registry, error) {
	path := mappingsFile
	if path == "" {
		path = cfg.Reconcile.Mappings
	}
	if path == "" {
		reg := reconcile.DefaultRegistry()
		if err := reg.Validate(); err != nil {
			return nil, err
		}
		return reg, nil
	}
	return reconcile.LoadRegistry(path)
}
