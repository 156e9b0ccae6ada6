package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"datalens/domain/table"
	"datalens/internal/coerce"
	"datalens/internal/errors"
	"datalens/internal/logging"
)

var ingestLog = logging.For("Ingest")

// dateTypeSampleSize bounds the per-column native-type probe on spreadsheet
// sources.
const dateTypeSampleSize = 50

// Reader ingests delimited and spreadsheet files into a typed Table. Read
// failures are table-level: the engine never sees partial data.
type Reader struct {
	filePath string
	fileType string // "csv", "tsv", or "xlsx"
}

// NewReader creates a reader for the given path, picking the format from
// the file extension.
func NewReader(filePath string) *Reader {
	fileType := "xlsx"
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".csv":
		fileType = "csv"
	case ".tsv":
		fileType = "tsv"
	}
	return &Reader{filePath: filePath, fileType: fileType}
}

// Read parses the file into a Table.
func (r *Reader) Read() (*table.Table, error) {
	ingestLog.Infof("Reading %s file: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, errors.NotFound(fmt.Sprintf("file %s", r.filePath))
	}

	switch r.fileType {
	case "csv":
		return r.readDelimited(',')
	case "tsv":
		return r.readDelimited('\t')
	default:
		return r.readSpreadsheet()
	}
}

func (r *Reader) readDelimited(comma rune) (*table.Table, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, errors.IngestFailed("failed to open delimited file", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = comma
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.IngestFailed("failed to parse delimited file", err)
	}
	if len(rows) < 2 {
		return nil, errors.IngestFailed("file must have a header row and at least one data row", nil)
	}

	tbl := processRows(rows)
	ingestLog.Debugf("Delimited file processed (%d columns, %d rows)",
		tbl.ColumnCount(), tbl.RowCount())
	return tbl, nil
}

// readSpreadsheet opens the workbook and tries sheets in declared order
// until one yields a non-empty rectangular table.
func (r *Reader) readSpreadsheet() (*table.Table, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, errors.IngestFailed("failed to open spreadsheet", err)
	}
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil || len(rows) < 2 {
			continue
		}
		tbl := processRows(rows)
		if tbl.ColumnCount() == 0 {
			continue
		}
		markNativeDateColumns(f, sheet, tbl)
		ingestLog.Debugf("Sheet %q processed (%d columns, %d rows)",
			sheet, tbl.ColumnCount(), tbl.RowCount())
		return tbl, nil
	}

	return nil, errors.IngestFailed("no sheet yields a usable table", nil)
}

// processRows converts raw string rows into a typed Table. Empty cells
// become missing; strict numeric strings arrive as numeric storage.
func processRows(rows [][]string) *table.Table {
	headerRow := rows[0]
	headers := make([]string, 0, len(headerRow))
	for _, header := range headerRow {
		if h := strings.TrimSpace(header); h != "" {
			headers = append(headers, h)
		} else {
			headers = append(headers, fmt.Sprintf("column_%d", len(headers)+1))
		}
	}

	columns := make([]table.Column, len(headers))
	for i, name := range headers {
		columns[i] = table.Column{Name: name, Values: make([]table.Value, 0, len(rows)-1)}
	}

	for i := 1; i < len(rows); i++ {
		for j := range headers {
			cell := ""
			if j < len(rows[i]) {
				cell = strings.TrimSpace(rows[i][j])
			}
			columns[j].Values = append(columns[j].Values, typedCell(cell))
		}
	}

	return &table.Table{Columns: columns}
}

func typedCell(cell string) table.Value {
	if cell == "" {
		return table.NewMissing()
	}
	if n, err := strconv.ParseFloat(cell, 64); err == nil {
		return table.NewNumeric(n)
	}
	return table.NewText(cell)
}

// markNativeDateColumns probes a sample of each column's native cell types;
// columns that are predominantly date-typed get their parseable cells
// upgraded to time storage so the classifier sees the native dtype.
func markNativeDateColumns(f *excelize.File, sheet string, tbl *table.Table) {
	for colIdx := range tbl.Columns {
		values := tbl.Columns[colIdx].Values
		sample := len(values)
		if sample > dateTypeSampleSize {
			sample = dateTypeSampleSize
		}
		if sample == 0 {
			continue
		}

		dateCells := 0
		for row := 0; row < sample; row++ {
			cellRef, err := excelize.CoordinatesToCellName(colIdx+1, row+2)
			if err != nil {
				continue
			}
			if cellType, err := f.GetCellType(sheet, cellRef); err == nil && cellType == excelize.CellTypeDate {
				dateCells++
			}
		}
		if float64(dateCells)/float64(sample) < 0.8 {
			continue
		}

		for i, v := range values {
			if t, ok := coerce.CellDate(v); ok {
				values[i] = table.NewTime(t)
			}
		}
	}
}
