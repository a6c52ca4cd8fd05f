package picks

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Column names of the pick table.
const (
	ColumnP = "itp_pred"
	ColumnS = "its_pred"
)

var (
	// ErrMissingColumn indicates that a required column is absent.
	ErrMissingColumn = errors.New("picks: missing column")
	// ErrShortTable indicates that the table has fewer rows than requested.
	ErrShortTable = errors.New("picks: table too short")
	// ErrInvalidSource indicates a source number below 1 or a non-positive
	// receiver count.
	ErrInvalidSource = errors.New("picks: invalid source block")
)

// Table holds the raw P and S pick cells in file order.
type Table struct {
	P []string
	S []string
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.P)
}

// Source returns the block of numReceiver cells belonging to the 1-based
// source. The returned slices alias the table.
func (t *Table) Source(source, numReceiver int) (p, s []string, err error) {
	if source < 1 || numReceiver < 1 {
		return nil, nil, fmt.Errorf("%w: source %d, %d receivers", ErrInvalidSource, source, numReceiver)
	}

	start := (source - 1) * numReceiver
	end := start + numReceiver

	if end > t.Len() {
		return nil, nil, fmt.Errorf("%w: source %d needs rows %d..%d, table has %d",
			ErrShortTable, source, start+1, end, t.Len())
	}

	return t.P[start:end], t.S[start:end], nil
}

// LoadTable reads a pick table from a CSV file.
func LoadTable(filename string) (*Table, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	t, err := ReadTable(file)
	if err != nil {
		return nil, fmt.Errorf("picks: read %s: %w", filename, err)
	}

	return t, nil
}

// ReadTable reads a pick table from CSV with a header row. Columns other
// than itp_pred and its_pred are ignored.
func ReadTable(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty input", ErrMissingColumn)
		}

		return nil, err
	}

	pIdx, sIdx := -1, -1

	for i, h := range header {
		switch strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")) {
		case ColumnP:
			pIdx = i
		case ColumnS:
			sIdx = i
		}
	}

	if pIdx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, ColumnP)
	}

	if sIdx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, ColumnS)
	}

	t := &Table{}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, err
		}

		t.P = append(t.P, field(record, pIdx))
		t.S = append(t.S, field(record, sIdx))
	}

	return t, nil
}

// field returns record[i], or an empty cell for short rows.
func field(record []string, i int) string {
	if i < len(record) {
		return record[i]
	}

	return ""
}
