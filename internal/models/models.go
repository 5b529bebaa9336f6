package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Record is one row of delimited text split into its fields.
type Record []string

// Dataset holds every record of a file, in file order.
type Dataset []Record

// WeightRecord is an inverted record ready to be stored.
type WeightRecord struct {
	FileID     int     `json:"file_id,omitempty"`
	Position   int     `json:"position"`
	Name       string  `json:"name"`
	Kind       string  `json:"kind"`
	Reciprocal string  `json:"reciprocal"`
	Value      float64 `json:"-"`
	CheckSum   string  `json:"checksum,omitempty"`
}

type AppError struct {
	Row     int
	Message string
	Err     error
	Record  Record
}

func (e *AppError) Error() string {
	var recordDetails string
	if e.Record != nil {
		recordJSON, err := json.Marshal(e.Record)
		if err != nil {
			recordDetails = "failed to marshal record to JSON"
		} else {
			recordDetails = string(recordJSON)
		}
	}

	if e.Err != nil {
		if recordDetails != "" {
			return fmt.Sprintf("row %d: %s - %v - Record: %s", e.Row, e.Message, e.Err, recordDetails)
		}
		return fmt.Sprintf("row %d: %s - %v", e.Row, e.Message, e.Err)
	}

	if recordDetails != "" {
		return fmt.Sprintf("row %d: %s - Record: %s", e.Row, e.Message, recordDetails)
	}

	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// FileInfo describes an input file registered for persistence.
type FileInfo struct {
	ID          int
	Path        string
	CheckSum    string
	ProcessedAt time.Time
}
