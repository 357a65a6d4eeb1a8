package tabular

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"tirescout/domain/catalog"
	"tirescout/domain/core"
	"tirescout/internal/errors"
	"tirescout/ports"
)

// DataReader reads the tire master file, CSV or XLSX, into the domain
// table. It implements ports.CatalogSource; caching lives above it, so
// every Load re-reads the file.
type DataReader struct {
	filePath  string
	sheetName string
	fileType  string // "csv", "xlsx" or "unsupported"
}

// NewDataReader creates a reader for a CSV or XLSX file. sheetName is
// only consulted for workbooks; empty means Sheet1.
func NewDataReader(filePath, sheetName string) *DataReader {
	fileType := "unsupported"
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".csv":
		fileType = "csv"
	case ".xlsx", ".xls":
		fileType = "xlsx"
	}
	if sheetName == "" {
		sheetName = "Sheet1"
	}
	return &DataReader{filePath: filePath, sheetName: sheetName, fileType: fileType}
}

// Load reads the whole file into an immutable table plus a fingerprint
// of the raw content.
func (r *DataReader) Load(ctx context.Context) (catalog.Table, core.Fingerprint, error) {
	if err := ctx.Err(); err != nil {
		return catalog.Table{}, "", err
	}

	data, fingerprint, err := r.readData()
	if err != nil {
		return catalog.Table{}, "", err
	}

	rows := make([]catalog.Row, 0, len(data.Rows))
	for _, record := range data.Rows {
		rows = append(rows, catalog.NewRow(record))
	}
	return catalog.NewTable(rows), fingerprint, nil
}

// Stat reports the file's identity for cache revalidation.
func (r *DataReader) Stat() (ports.SourceStat, error) {
	info, err := os.Stat(r.filePath)
	if err != nil {
		return ports.SourceStat{}, errors.DataUnavailable("tire data file not found: "+r.filePath, err)
	}
	return ports.SourceStat{
		Path:    r.filePath,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

// readData reads and parses the file into raw records
func (r *DataReader) readData() (*TableData, core.Fingerprint, error) {
	log.Printf("[DataReader] Starting to read %s file: %s", r.fileType, r.filePath)

	if r.fileType == "unsupported" {
		return nil, "", errors.DataUnavailable("unsupported file type: "+filepath.Ext(r.filePath), nil)
	}

	content, err := os.ReadFile(r.filePath)
	if err != nil {
		return nil, "", errors.DataUnavailable("tire data file not found: "+r.filePath, err)
	}
	fingerprint := core.NewFingerprint(content)

	var data *TableData
	switch r.fileType {
	case "csv":
		data, err = r.readCSVData(content)
	case "xlsx":
		data, err = r.readExcelData(content)
	}
	if err != nil {
		return nil, "", err
	}
	return data, fingerprint, nil
}

// readExcelData parses workbook content from the configured sheet
func (r *DataReader) readExcelData(content []byte) (*TableData, error) {
	startTime := time.Now()
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, errors.ParseFailed(r.filePath, err)
	}
	defer f.Close()

	rows, err := f.GetRows(r.sheetName)
	if err != nil {
		return nil, errors.ParseFailed(r.filePath, err)
	}
	readTime := time.Since(startTime)
	log.Printf("[DataReader] %s read in %.2fms (%d rows)", r.sheetName, float64(readTime.Nanoseconds())/1e6, len(rows))

	if len(rows) < 2 {
		return nil, errors.ParseFailed(r.filePath,
			fmt.Errorf("file must have at least a header row and one data row"))
	}

	return r.processRows(rows), nil
}

// readCSVData parses CSV content
func (r *DataReader) readCSVData(content []byte) (*TableData, error) {
	startTime := time.Now()
	reader := csv.NewReader(bytes.NewReader(content))
	// Source rows may be ragged; short rows pad with empty values during
	// domain mapping, extra cells are dropped.
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.ParseFailed(r.filePath, err)
	}
	readTime := time.Since(startTime)
	log.Printf("[DataReader] CSV file read in %.2fms (%d rows)", float64(readTime.Nanoseconds())/1e6, len(rows))

	if len(rows) < 2 {
		return nil, errors.ParseFailed(r.filePath,
			fmt.Errorf("file must have at least a header row and one data row"))
	}

	return r.processRows(rows), nil
}

// processRows converts raw string rows into TableData. Header labels and
// cell values are trimmed of surrounding whitespace.
func (r *DataReader) processRows(rows [][]string) *TableData {
	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		headers[i] = strings.TrimSpace(header)
	}

	var dataRows []RawRecord
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		record := make(RawRecord)

		for j, cell := range row {
			if j < len(headers) {
				record[headers[j]] = strings.TrimSpace(cell)
			}
		}

		dataRows = append(dataRows, record)
	}

	log.Printf("[DataReader] %s file processed (%d columns, %d rows)",
		strings.ToUpper(r.fileType), len(headers), len(dataRows))

	return &TableData{
		Headers: headers,
		Rows:    dataRows,
	}
}
