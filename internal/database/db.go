package database

import (
	"time"

	"github.com/ThiagoRGoveia/professor-oak/internal/models"
)

const (
	FILE_STATUS_PROCESSING = "PROCESSING"
	FILE_STATUS_DONE       = "DONE"
	FILE_STATUS_FATAL      = "FATAL"
)

type DBManager interface {
	CreateFileRecordsTable() error
	CreateWeightRecordsTable() error
	InsertFileRecord(fileName string, date time.Time, status string, checksum string) (int, error)
	UpdateFileStatus(fileID int, status string, errors any) error
	IsFileAlreadyProcessed(checksum string) (bool, error)
	InsertWeightRecords(weights []*models.WeightRecord) error
}
