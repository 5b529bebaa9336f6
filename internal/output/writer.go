package output

import (
	"bufio"
	"io"
	"strings"

	"github.com/ThiagoRGoveia/professor-oak/internal/models"
)

const fieldSeparator = ","

// WriteRecords writes one comma-joined line per record. Fields are written as
// they are, without quoting.
func WriteRecords(w io.Writer, dataset models.Dataset) error {
	buffered := bufio.NewWriter(w)
	for _, record := range dataset {
		if _, err := buffered.WriteString(strings.Join(record, fieldSeparator)); err != nil {
			return err
		}
		if err := buffered.WriteByte('\n'); err != nil {
			return err
		}
	}
	return buffered.Flush()
}
