package ingestion

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"

	"github.com/ThiagoRGoveia/professor-oak/internal/config"
	"github.com/ThiagoRGoveia/professor-oak/internal/database"
	"github.com/ThiagoRGoveia/professor-oak/internal/inversion"
	"github.com/ThiagoRGoveia/professor-oak/internal/models"
	"github.com/ThiagoRGoveia/professor-oak/internal/output"
	"github.com/ThiagoRGoveia/professor-oak/internal/parser"
	"github.com/ThiagoRGoveia/professor-oak/pkg/checksum"
)

type IngestionService struct {
	dbManager     database.DBManager
	fileProcessor Processor
	config        config.Config
}

// NewIngestionService wires the pipeline. A nil dbManager disables persistence.
func NewIngestionService(dbManager database.DBManager, processor Processor, cfg config.Config) *IngestionService {
	return &IngestionService{
		dbManager:     dbManager,
		fileProcessor: processor,
		config:        cfg,
	}
}

// Execute reads the whole file, inverts every record and writes them to out.
// Nothing is written unless every record could be inverted.
func (h *IngestionService) Execute(filePath string, out io.Writer) error {
	// Step 1: Read every record into memory.
	log.Printf("Reading records from %s", filePath)
	dataset, err := parser.ParseCSV(filePath)
	if err != nil {
		return err
	}

	// Step 2: Invert the whole dataset before printing anything.
	inverted, err := inversion.Invert(dataset)
	if err != nil {
		return err
	}

	// Step 3: One line per record, in file order.
	if err := output.WriteRecords(out, inverted); err != nil {
		return fmt.Errorf("failed to write records: %w", err)
	}
	log.Printf("Wrote %d records", len(inverted))

	if h.dbManager == nil || h.fileProcessor == nil {
		return nil
	}

	// Step 4: Store the weights. Stdout is already flushed at this point.
	return h.persist(filePath, inverted)
}

func (h *IngestionService) persist(filePath string, inverted models.Dataset) error {
	fileInfo, err := h.fileProcessor.RegisterFile(filePath)
	if err != nil {
		return err
	}
	if fileInfo == nil {
		return nil
	}

	weights, err := buildWeightRecords(fileInfo.ID, inverted)
	if err != nil {
		return h.fail(fileInfo.ID, err)
	}

	batchSize := h.config.DBBatchSize
	if batchSize <= 0 {
		batchSize = len(weights)
	}

	for start := 0; start < len(weights); start += batchSize {
		end := min(start+batchSize, len(weights))
		log.Printf("Inserting batch of %d weight records for file %d", end-start, fileInfo.ID)
		if err := h.dbManager.InsertWeightRecords(weights[start:end]); err != nil {
			appErr := &models.AppError{Row: weights[start].Position, Message: "Failed to insert batch of weight records", Err: err}
			return h.fail(fileInfo.ID, appErr)
		}
	}

	if err := h.fileProcessor.UpdateFileStatus(fileInfo.ID, nil); err != nil {
		return err
	}

	log.Printf("Stored %d weight records for file %s (FileID: %d)", len(weights), filePath, fileInfo.ID)
	return nil
}

// fail marks the file as FATAL and returns the original error.
func (h *IngestionService) fail(fileID int, err error) error {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		appErr = &models.AppError{Message: "Failed to store weight records", Err: err}
	}

	if updateErr := h.fileProcessor.UpdateFileStatus(fileID, []models.AppError{*appErr}); updateErr != nil {
		log.Printf("ERROR: %v", updateErr)
	}
	return err
}

func buildWeightRecords(fileID int, inverted models.Dataset) ([]*models.WeightRecord, error) {
	weights := make([]*models.WeightRecord, 0, len(inverted))
	for i, record := range inverted {
		value, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, &models.AppError{Row: i + 1, Message: "Failed to parse reciprocal", Err: err, Record: record}
		}

		weights = append(weights, &models.WeightRecord{
			FileID:     fileID,
			Position:   i + 1,
			Name:       record[0],
			Kind:       record[1],
			Reciprocal: record[2],
			Value:      value,
			CheckSum:   checksum.CalculateHash(record),
		})
	}
	return weights, nil
}
