package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Format is the encoding of a tabular payload
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// RawRowData represents a row of raw data as string key-value pairs
type RawRowData map[string]string

// Table is a decoded payload: headers in source order plus rows.
type Table struct {
	Headers []string
	Rows    []RawRowData
}

// DetectFormat picks the decoder from a file name. Anything that is not an
// Excel workbook is read as CSV.
func DetectFormat(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX
	default:
		return FormatCSV
	}
}

// DataReader decodes CSV or XLSX payloads held in memory
type DataReader struct {
	format Format
}

// NewDataReader creates a reader for the given format
func NewDataReader(format Format) *DataReader {
	return &DataReader{format: format}
}

// Read decodes r. The first row is the header. No schema check is made: any
// well-formed table is accepted, including one with only a header.
func (r *DataReader) Read(src io.Reader) (*Table, error) {
	switch r.format {
	case FormatCSV:
		return r.readCSV(src)
	case FormatXLSX:
		return r.readExcel(src)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.format)
	}
}

// ReadBytes is Read over an in-memory payload
func (r *DataReader) ReadBytes(data []byte) (*Table, error) {
	return r.Read(bytes.NewReader(data))
}

func (r *DataReader) readCSV(src io.Reader) (*Table, error) {
	reader := csv.NewReader(src)
	// short rows are padded below; long rows are an error
	reader.FieldsPerRecord = -1

	readStart := time.Now()
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	log.Printf("[DataReader] CSV read in %.2fms (%d rows)", float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	if len(rows) == 0 {
		return nil, fmt.Errorf("no columns to parse from CSV")
	}
	rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")

	for i := 1; i < len(rows); i++ {
		if len(rows[i]) > len(rows[0]) {
			return nil, fmt.Errorf("line %d: expected %d fields, saw %d", i+1, len(rows[0]), len(rows[i]))
		}
	}

	return processRows(rows), nil
}

func (r *DataReader) readExcel(src io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("Excel workbook has no sheets")
	}

	readStart := time.Now()
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", sheets[0], err)
	}
	log.Printf("[DataReader] %s read in %.2fms (%d rows)", sheets[0], float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("Excel sheet %s is empty", sheets[0])
	}
	for i := 1; i < len(rows); i++ {
		if len(rows[i]) > len(rows[0]) {
			return nil, fmt.Errorf("row %d: expected %d cells, saw %d", i+1, len(rows[0]), len(rows[i]))
		}
	}

	return processRows(rows), nil
}

// processRows converts raw string rows into a Table. Duplicate headers get a
// ".N" suffix so that no column is silently shadowed.
func processRows(rows [][]string) *Table {
	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	seen := make(map[string]int, len(headerRow))
	for i, header := range headerRow {
		name := strings.TrimSpace(header)
		if n := seen[name]; n > 0 {
			seen[name] = n + 1
			name = fmt.Sprintf("%s.%d", name, n)
		} else {
			seen[name] = 1
		}
		headers[i] = name
	}

	dataRows := make([]RawRowData, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rowData := make(RawRowData, len(headers))
		for j, header := range headers {
			if j < len(row) {
				rowData[header] = strings.TrimSpace(row[j])
			} else {
				rowData[header] = ""
			}
		}
		dataRows = append(dataRows, rowData)
	}

	return &Table{Headers: headers, Rows: dataRows}
}

// Rename replaces the headers by position. It does not look at what the old
// headers were; it only requires the same width.
func (t *Table) Rename(names []string) error {
	if len(names) != len(t.Headers) {
		return fmt.Errorf("length mismatch: table has %d columns, %d names given", len(t.Headers), len(names))
	}
	for _, row := range t.Rows {
		values := make([]string, len(t.Headers))
		for i, old := range t.Headers {
			values[i] = row[old]
			delete(row, old)
		}
		for i, name := range names {
			row[name] = values[i]
		}
	}
	t.Headers = append([]string(nil), names...)
	return nil
}
