// Package inversion replaces the third field of every record with its reciprocal.
package inversion

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ThiagoRGoveia/professor-oak/internal/models"
)

const minFields = 3

var (
	ErrTooFewFields  = errors.New("record has fewer than 3 fields")
	ErrInvalidNumber = errors.New("third field is not a number")
)

// Invert returns a new dataset where each record (a, b, c, ...) becomes
// (a, b, 1/c). Any malformed record fails the whole dataset.
func Invert(dataset models.Dataset) (models.Dataset, error) {
	inverted := make(models.Dataset, 0, len(dataset))
	for i, record := range dataset {
		out, err := InvertRecord(record)
		if err != nil {
			return nil, &models.AppError{Row: i + 1, Message: "Failed to invert record", Err: err, Record: record}
		}
		inverted = append(inverted, out)
	}
	return inverted, nil
}

func InvertRecord(record models.Record) (models.Record, error) {
	if len(record) < minFields {
		return nil, ErrTooFewFields
	}

	value, err := Reciprocal(record[2])
	if err != nil {
		return nil, err
	}

	return models.Record{record[0], record[1], FormatReciprocal(value)}, nil
}

// Reciprocal parses field as a float64 and returns 1/field. Zero gives an
// infinity, not an error. Numbers beyond float64 range keep the ±Inf or 0
// ParseFloat rounds them to.
func Reciprocal(field string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidNumber, err)
	}
	return 1.0 / value, nil
}

// FormatReciprocal renders the shortest decimal that parses back to v,
// without exponent notation. Infinities render as "+Inf" and "-Inf".
func FormatReciprocal(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
