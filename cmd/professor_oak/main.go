package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ThiagoRGoveia/professor-oak/internal/config"
	"github.com/ThiagoRGoveia/professor-oak/internal/database"
	"github.com/ThiagoRGoveia/professor-oak/internal/ingestion"
	"github.com/joho/godotenv"
)

func setup() (string, *ingestion.IngestionService, func(), error) {
	cfg, err := config.New()
	if err != nil {
		return "", nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	filePath := cfg.InputPath
	if len(os.Args) > 1 {
		filePath = os.Args[1]
	}

	if !cfg.PersistenceEnabled() {
		return filePath, ingestion.NewIngestionService(nil, nil, *cfg), func() {}, nil
	}

	dbpool, err := database.ConnectDB(cfg.DatabaseURL)
	if err != nil {
		return "", nil, nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	dbManager := database.NewPostgresDBManager(context.Background(), dbpool)
	fileProcessor := ingestion.NewFileProcessor(dbManager)

	handler := ingestion.NewIngestionService(dbManager, fileProcessor, *cfg)

	cleanupFunc := func() {
		dbpool.Close()
	}

	return filePath, handler, cleanupFunc, nil
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: could not load .env file: %v", err)
	}
	startTime := time.Now()

	filePath, handler, cleanupFunc, err := setup()
	if err != nil {
		log.Fatal(err)
	}

	err = handler.Execute(filePath, os.Stdout)
	cleanupFunc()
	if err != nil {
		log.Fatalf("Error during execution: %v", err)
	}

	log.Printf("Execution time: %s", time.Since(startTime))
}
