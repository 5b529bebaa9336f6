package ingestion

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/ThiagoRGoveia/professor-oak/internal/database"
	"github.com/ThiagoRGoveia/professor-oak/internal/models"
	"github.com/ThiagoRGoveia/professor-oak/pkg/checksum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// TestFileProcessor_RegisterFile tests the RegisterFile method of FileProcessor.
func TestFileProcessor_RegisterFile(t *testing.T) {
	originalTimeNow := timeNow
	defer func() { timeNow = originalTimeNow }()
	fixedDate := time.Date(2023, 10, 11, 0, 0, 0, 0, time.UTC)
	timeNow = func() time.Time { return fixedDate }

	path := writeInputFile(t, "Pikachu,Electric,4\n")
	fileChecksum, err := checksum.GetFileChecksum(path)
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		dbManager := new(MockDBManager)
		fileProcessor := NewFileProcessor(dbManager)

		dbManager.On("IsFileAlreadyProcessed", fileChecksum).Return(false, nil).Once()
		dbManager.On("InsertFileRecord", path, fixedDate, database.FILE_STATUS_PROCESSING, fileChecksum).Return(42, nil).Once()

		fileInfo, err := fileProcessor.RegisterFile(path)

		require.NoError(t, err)
		assert.Equal(t, &models.FileInfo{ID: 42, Path: path, CheckSum: fileChecksum, ProcessedAt: fixedDate}, fileInfo)
		dbManager.AssertExpectations(t)
	})

	t.Run("AlreadyProcessed", func(t *testing.T) {
		dbManager := new(MockDBManager)
		fileProcessor := NewFileProcessor(dbManager)

		dbManager.On("IsFileAlreadyProcessed", fileChecksum).Return(true, nil).Once()

		fileInfo, err := fileProcessor.RegisterFile(path)

		assert.NoError(t, err)
		assert.Nil(t, fileInfo)
		dbManager.AssertNotCalled(t, "InsertFileRecord", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("FileNotFound", func(t *testing.T) {
		dbManager := new(MockDBManager)
		fileProcessor := NewFileProcessor(dbManager)

		_, err := fileProcessor.RegisterFile(filepath.Join(t.TempDir(), "missing.csv"))

		assert.ErrorContains(t, err, "failed to calculate checksum")
		dbManager.AssertNotCalled(t, "IsFileAlreadyProcessed", mock.Anything)
	})

	t.Run("LookupError", func(t *testing.T) {
		dbManager := new(MockDBManager)
		fileProcessor := NewFileProcessor(dbManager)

		dbManager.On("IsFileAlreadyProcessed", fileChecksum).Return(false, fmt.Errorf("db down")).Once()

		_, err := fileProcessor.RegisterFile(path)

		assert.ErrorContains(t, err, "db down")
	})

	t.Run("InsertError", func(t *testing.T) {
		dbManager := new(MockDBManager)
		fileProcessor := NewFileProcessor(dbManager)

		dbManager.On("IsFileAlreadyProcessed", fileChecksum).Return(false, nil).Once()
		dbManager.On("InsertFileRecord", path, fixedDate, database.FILE_STATUS_PROCESSING, fileChecksum).Return(0, fmt.Errorf("insert failed")).Once()

		_, err := fileProcessor.RegisterFile(path)

		assert.ErrorContains(t, err, "failed to insert file record")
		dbManager.AssertExpectations(t)
	})
}

// TestFileProcessor_UpdateFileStatus tests the UpdateFileStatus method of FileProcessor.
func TestFileProcessor_UpdateFileStatus(t *testing.T) {
	t.Run("StatusDone", func(t *testing.T) {
		dbManager := new(MockDBManager)
		fileProcessor := NewFileProcessor(dbManager)

		dbManager.On("UpdateFileStatus", 1, database.FILE_STATUS_DONE, mock.Anything).Return(nil).Once()

		err := fileProcessor.UpdateFileStatus(1, nil)

		assert.NoError(t, err)
		dbManager.AssertExpectations(t)
	})

	t.Run("StatusFatal", func(t *testing.T) {
		dbManager := new(MockDBManager)
		fileProcessor := NewFileProcessor(dbManager)
		appErrors := []models.AppError{{Row: 3, Message: "some error"}}

		dbManager.On("UpdateFileStatus", 1, database.FILE_STATUS_FATAL, appErrors).Return(nil).Once()

		err := fileProcessor.UpdateFileStatus(1, appErrors)

		assert.NoError(t, err)
		dbManager.AssertExpectations(t)
	})

	t.Run("UpdateError", func(t *testing.T) {
		dbManager := new(MockDBManager)
		fileProcessor := NewFileProcessor(dbManager)

		dbManager.On("UpdateFileStatus", 1, database.FILE_STATUS_DONE, mock.Anything).Return(fmt.Errorf("db update failed")).Once()

		err := fileProcessor.UpdateFileStatus(1, nil)

		assert.ErrorContains(t, err, "db update failed")
		dbManager.AssertExpectations(t)
	})
}
