package tabular

import (
	"encoding/csv"
	"io"

	"github.com/xuri/excelize/v2"

	"tirescout/domain/catalog"
	"tirescout/internal/errors"
)

// exportSheet is the worksheet name for XLSX exports. It matches the
// reader's default so an exported file loads back without configuration.
const exportSheet = "Sheet1"

// WriteCSV serializes the table in canonical column order, header first,
// no index column. Re-parsing the output reproduces the same rows.
func WriteCSV(w io.Writer, table catalog.Table) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(catalog.Columns()); err != nil {
		return errors.ExportFailed("csv", err)
	}
	for _, row := range table.Rows() {
		if err := writer.Write(row.Values()); err != nil {
			return errors.ExportFailed("csv", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.ExportFailed("csv", err)
	}
	return nil
}

// WriteXLSX serializes the table as a single-sheet workbook with the
// same column order as the CSV export.
func WriteXLSX(w io.Writer, table catalog.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	header := stringCells(catalog.Columns())
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return errors.ExportFailed("xlsx", err)
	}

	for i, row := range table.Rows() {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.ExportFailed("xlsx", err)
		}
		values := stringCells(row.Values())
		if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
			return errors.ExportFailed("xlsx", err)
		}
	}

	if err := f.Write(w); err != nil {
		return errors.ExportFailed("xlsx", err)
	}
	return nil
}

// stringCells widens to interface values so excelize writes cells as-is.
func stringCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
