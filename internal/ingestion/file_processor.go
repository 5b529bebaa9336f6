package ingestion

import (
	"fmt"
	"log"
	"time"

	"github.com/ThiagoRGoveia/professor-oak/internal/database"
	"github.com/ThiagoRGoveia/professor-oak/internal/models"
	"github.com/ThiagoRGoveia/professor-oak/pkg/checksum"
)

var timeNow = time.Now

// Processor defines the interface for file bookkeeping operations.
type Processor interface {
	RegisterFile(filePath string) (*models.FileInfo, error)
	UpdateFileStatus(fileID int, appErrors []models.AppError) error
}

// FileProcessor keeps track of which input files were already stored, using
// the checksum of their content.
type FileProcessor struct {
	dbManager database.DBManager
}

// NewFileProcessor creates a new FileProcessor with the given DBManager.
func NewFileProcessor(dbManager database.DBManager) *FileProcessor {
	return &FileProcessor{
		dbManager: dbManager,
	}
}

// RegisterFile records the file as PROCESSING and returns its info. A nil info
// with a nil error means the same content was already stored.
func (fp *FileProcessor) RegisterFile(filePath string) (*models.FileInfo, error) {
	fileChecksum, err := checksum.GetFileChecksum(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate checksum for %s: %w", filePath, err)
	}

	isProcessed, err := fp.dbManager.IsFileAlreadyProcessed(fileChecksum)
	if err != nil {
		return nil, fmt.Errorf("failed to check if file %s is already processed: %w", filePath, err)
	}
	if isProcessed {
		log.Printf("INFO: File %s (checksum: %s) has already been processed. Skipping.", filePath, fileChecksum)
		return nil, nil
	}

	processedAt := timeNow()
	fileID, err := fp.dbManager.InsertFileRecord(filePath, processedAt, database.FILE_STATUS_PROCESSING, fileChecksum)
	if err != nil {
		return nil, fmt.Errorf("failed to insert file record for %s: %w", filePath, err)
	}

	log.Printf("Registered file %s (FileID: %d)", filePath, fileID)
	return &models.FileInfo{
		ID:          fileID,
		Path:        filePath,
		CheckSum:    fileChecksum,
		ProcessedAt: processedAt,
	}, nil
}

func (fp *FileProcessor) UpdateFileStatus(fileID int, appErrors []models.AppError) error {
	status := database.FILE_STATUS_DONE
	if len(appErrors) > 0 {
		status = database.FILE_STATUS_FATAL
	}

	if err := fp.dbManager.UpdateFileStatus(fileID, status, appErrors); err != nil {
		return fmt.Errorf("failed to update status for fileID %d: %w", fileID, err)
	}
	return nil
}
