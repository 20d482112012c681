// Package excel reads (age, two-sigma) sample data from spreadsheet or CSV
// files. Column one holds the measured dates, column two the two-sigma
// analytical uncertainties; a non-numeric first row is treated as a header.
package excel

import (
	"encoding/csv"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"geoks/domain/core"
	"geoks/domain/geochron"
)

// DataReader handles reading Excel and CSV files
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(filePath string) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &DataReader{filePath: filePath, fileType: fileType}
}

// ReadSample reads one sample's (age, two-sigma) columns and builds a Sample.
// Unparsable or blank cells become NaN so the pair is dropped at ingest,
// matching how partially-filled lab sheets are handled.
func (r *DataReader) ReadSample(label core.SampleLabel, sheet string) (*geochron.Sample, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	case "xlsx":
		rows, err = r.readExcelRows(sheet)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
	if err != nil {
		return nil, err
	}

	values, twoSigma := parseColumns(rows)
	log.Printf("[DataReader] %s: parsed %d rows from %s", label, len(values), r.filePath)
	return geochron.NewSample(label, values, twoSigma)
}

func (r *DataReader) readExcelRows(sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = "Sheet1"
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

func (r *DataReader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	return rows, nil
}

// parseColumns extracts the first two columns as parallel float slices.
func parseColumns(rows [][]string) (values, twoSigma []float64) {
	for i, row := range rows {
		v := parseCell(row, 0)
		u := parseCell(row, 1)
		// Skip a header row rather than emitting a NaN pair for it.
		if i == 0 && math.IsNaN(v) && math.IsNaN(u) && len(row) > 0 {
			continue
		}
		if len(row) == 0 {
			continue
		}
		values = append(values, v)
		twoSigma = append(twoSigma, u)
	}
	return values, twoSigma
}

func parseCell(row []string, col int) float64 {
	if col >= len(row) {
		return math.NaN()
	}
	cell := strings.TrimSpace(row[col])
	if cell == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
