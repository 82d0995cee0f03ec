package main

import (
	"fmt"
	"log"

	"flowcase/internal/config"
	"flowcase/internal/extractor"
	_ "flowcase/internal/extractor/openai"
	"flowcase/internal/handler"
	"flowcase/internal/port"
	"flowcase/internal/repository/postgres"
	"flowcase/internal/router"
	"flowcase/internal/service"
	s3storage "flowcase/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	runRepo := postgres.NewRunRepo(db)

	scenarioExtractor, err := extractor.New(&cfg.Extractor)
	if err != nil {
		return fmt.Errorf("failed to initialize extractor: %w", err)
	}
	if cfg.Extractor.APIKey == "" {
		log.Printf("warning: extractor API key is not configured; extraction requests will be rejected")
	}

	// Object storage is optional; without a bucket, uploads are not archived.
	var storage port.ObjectStorage
	if cfg.S3.Bucket != "" {
		storage, err = s3storage.NewS3Client(&cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	}

	extractionSvc := service.NewExtractionService(runRepo, scenarioExtractor, storage, cfg.Extractor, cfg.S3)

	extractionH := handler.NewExtractionHandler(extractionSvc)
	healthH := handler.NewHealthHandler(db)

	r := router.Setup(cfg, extractionH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
