package parser

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ThiagoRGoveia/professor-oak/internal/models"
)

const fieldDelimiter = ','

// ParseCSV reads the whole file into memory. There is no header row.
func ParseCSV(filePath string) (models.Dataset, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer file.Close()

	dataset, err := ReadCSV(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read records from %s: %w", filePath, err)
	}

	return dataset, nil
}

// ReadCSV decodes every record of r. Blank lines, which encoding/csv skips,
// are kept as empty records so the inversion step rejects them.
func ReadCSV(r io.Reader) (models.Dataset, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(bytes.NewReader(content))
	reader.Comma = fieldDelimiter
	// Column counts are checked by the inversion step, not here.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	dataset := models.Dataset{}
	lastLine := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		firstLine, _ := reader.FieldPos(0)
		dataset = appendBlankRecords(dataset, firstLine-lastLine-1)
		dataset = append(dataset, models.Record(record))

		last := len(record) - 1
		lastFieldLine, _ := reader.FieldPos(last)
		lastLine = lastFieldLine + strings.Count(record[last], "\n")
	}

	return appendBlankRecords(dataset, countLines(content)-lastLine), nil
}

func appendBlankRecords(dataset models.Dataset, n int) models.Dataset {
	for i := 0; i < n; i++ {
		dataset = append(dataset, models.Record{})
	}
	return dataset
}

func countLines(content []byte) int {
	lines := bytes.Count(content, []byte{'\n'})
	if len(content) > 0 && content[len(content)-1] != '\n' {
		lines++
	}
	return lines
}
