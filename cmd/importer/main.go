package main

import (
	"context"
	"log"
	"os"

	"research-directory/config"
	"research-directory/services"
	"research-directory/storage"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// One-shot import run: snapshot (if configured), then a full transactional
// reload of the directory from the given spreadsheet.
//
//	importer <source.xlsx|source.csv>
//
// Exits nonzero if the source file cannot be read or the run fails.
func main() {
	logging, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("Config load error", zap.Error(err))
	}

	path := cfg.ImportSourcePath
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	if path == "" {
		logging.Fatal("No source file given. Pass a path or set IMPORT_SOURCE_PATH.")
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		logging.Fatal("Failed to connect to database", zap.Error(err))
	}

	store := storage.NewPostgresStore(db)
	if err := store.AutoMigrate(); err != nil {
		logging.Fatal("Database auto-migration failed", zap.Error(err))
	}

	ctx := context.Background()

	if cfg.SnapshotEnabled() {
		s3Client, err := storage.NewS3Client(cfg)
		if err != nil {
			logging.Fatal("S3 client creation failed", zap.Error(err))
		}
		snapshot := services.NewSnapshotService(cfg, db, s3Client, logging)
		url, err := snapshot.Run(ctx)
		if err != nil {
			logging.Fatal("Pre-import snapshot failed", zap.Error(err))
		}
		logging.Info("Pre-import snapshot stored", zap.String("url", url))
	}

	rules := services.DefaultClassifierRules()
	if cfg.ClassifierRulesPath != "" {
		rules, err = services.LoadClassifierRules(cfg.ClassifierRulesPath)
		if err != nil {
			logging.Fatal("Failed to load classifier rules", zap.Error(err))
		}
	}

	importer := services.NewImportService(cfg, store, services.NewClassifier(rules), logging)
	stats, err := importer.ImportFile(ctx, path)
	if err != nil {
		logging.Fatal("Import failed", zap.String("path", path), zap.Error(err))
	}

	logging.Info("Import finished",
		zap.String("path", path),
		zap.Int("rows_processed", stats.RowsProcessed),
		zap.Int("rows_skipped", stats.RowsSkipped),
		zap.Int("rows_failed", stats.RowsFailed),
		zap.Int("departments_created", stats.DepartmentsCreated),
		zap.Int("faculties_created", stats.FacultiesCreated),
		zap.Int("publications_created", stats.PublicationsCreated),
		zap.Int("publications_merged", stats.PublicationsMerged))
}
