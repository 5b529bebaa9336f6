package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/ThiagoRGoveia/professor-oak/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func ConnectDB(connStr string) (*pgxpool.Pool, error) {
	dbpool, err := pgxpool.New(context.Background(), connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %v", err)
	}

	return dbpool, nil
}

type PostgresDBManager struct {
	dbpool *pgxpool.Pool
	ctx    context.Context
}

func NewPostgresDBManager(ctx context.Context, pool *pgxpool.Pool) *PostgresDBManager {
	return &PostgresDBManager{dbpool: pool, ctx: ctx}
}

func (m *PostgresDBManager) CreateFileRecordsTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS file_records (
		id SERIAL PRIMARY KEY,
		file_name VARCHAR(255) NOT NULL,
		processed_at TIMESTAMP NOT NULL,
		status VARCHAR(50) NOT NULL CHECK (status IN ('DONE', 'PROCESSING', 'FATAL')),
		checksum VARCHAR(64),
		errors jsonb
	);`

	_, err := m.dbpool.Exec(m.ctx, query)
	if err != nil {
		return fmt.Errorf("error creating file_records table: %v", err)
	}

	return nil
}

// CreateWeightRecordsTable creates weight_records. The reciprocal is kept both
// as printed and as a double, which accepts 'Infinity' for zero experience.
func (m *PostgresDBManager) CreateWeightRecordsTable() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS weight_records (
			id BIGSERIAL PRIMARY KEY,
			file_id INTEGER NOT NULL REFERENCES file_records (id),
			position INTEGER NOT NULL,
			name VARCHAR(255) NOT NULL,
			kind VARCHAR(255) NOT NULL,
			reciprocal VARCHAR(64) NOT NULL,
			value DOUBLE PRECISION NOT NULL,
			checksum VARCHAR(64) NOT NULL,
			UNIQUE (file_id, position)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_weight_records_name ON weight_records (name);`,
	}

	for _, query := range queries {
		_, err := m.dbpool.Exec(m.ctx, query)
		if err != nil {
			return fmt.Errorf("error creating weight_records table: %v", err)
		}
	}

	return nil
}

func (m *PostgresDBManager) InsertFileRecord(fileName string, date time.Time, status string, checksum string) (int, error) {
	query := `
	INSERT INTO file_records (file_name, processed_at, status, checksum)
	VALUES ($1, $2, $3, $4)
	RETURNING id;`

	var fileID int
	err := m.dbpool.QueryRow(m.ctx, query, fileName, date, status, checksum).Scan(&fileID)
	if err != nil {
		return 0, fmt.Errorf("error inserting file record: %v", err)
	}

	return fileID, nil
}

func (m *PostgresDBManager) UpdateFileStatus(fileID int, status string, errors any) error {
	query := `
	UPDATE file_records
	SET status = $1,
		errors = $2
	WHERE id = $3;`

	_, err := m.dbpool.Exec(m.ctx, query, status, errors, fileID)
	if err != nil {
		return fmt.Errorf("error updating file status: %v", err)
	}

	return nil
}

func (m *PostgresDBManager) IsFileAlreadyProcessed(checksum string) (bool, error) {
	query := `
	SELECT id
	FROM file_records
	WHERE checksum = $1 AND status = 'DONE';`

	var id int

	err := m.dbpool.QueryRow(m.ctx, query, checksum).Scan(&id)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("error finding file record by checksum: %v", err)
	}

	return true, nil
}

// The column order here must match weightRecordRow.
var weightRecordColumns = []string{
	"file_id", "position", "name", "kind", "reciprocal", "value", "checksum",
}

func weightRecordRow(weight *models.WeightRecord) []any {
	return []any{weight.FileID, weight.Position, weight.Name, weight.Kind, weight.Reciprocal, weight.Value, weight.CheckSum}
}

// InsertWeightRecords bulk loads one batch with COPY inside a transaction.
func (m *PostgresDBManager) InsertWeightRecords(weights []*models.WeightRecord) error {
	if len(weights) == 0 {
		return nil
	}

	tx, err := m.dbpool.Begin(m.ctx)
	if err != nil {
		return fmt.Errorf("error beginning transaction: %v", err)
	}
	defer tx.Rollback(m.ctx)

	copySource := pgx.CopyFromSlice(len(weights), func(i int) ([]any, error) {
		return weightRecordRow(weights[i]), nil
	})

	log.Printf("Bulk loading %d weight records", len(weights))
	copied, err := tx.CopyFrom(
		m.ctx,
		pgx.Identifier{"weight_records"},
		weightRecordColumns,
		copySource,
	)
	if err != nil {
		return fmt.Errorf("unable to copy weight records: %w", err)
	}
	if int(copied) != len(weights) {
		return fmt.Errorf("copied %d weight records, expected %d", copied, len(weights))
	}

	return tx.Commit(m.ctx)
}
