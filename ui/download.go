package ui

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"tirescout/adapters/tabular"
	"tirescout/domain/catalog"
)

// Fixed export filenames; the filtered view always downloads under the
// same name regardless of the criteria that produced it.
const (
	csvExportName  = "filtered_slot_tires.csv"
	xlsxExportName = "filtered_slot_tires.xlsx"
)

func writeCSVAttachment(w http.ResponseWriter, table catalog.Table) error {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", csvExportName))
	return tabular.WriteCSV(w, table)
}

func writeXLSXAttachment(w http.ResponseWriter, table catalog.Table) error {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", xlsxExportName))
	return tabular.WriteXLSX(w, table)
}

func (s *Server) handleDownloadCSV(c *gin.Context) {
	criteria := ParseCriteria(c.Request.URL.Query())

	result, err := s.service.Search(c.Request.Context(), criteria)
	if err != nil {
		s.jsonError(c, err)
		return
	}

	// Headers go out before the body; write failures can only be logged.
	if err := writeCSVAttachment(c.Writer, result.Rows); err != nil {
		log.Printf("[Export] CSV export failed: %v", err)
	}
}

func (s *Server) handleDownloadXLSX(c *gin.Context) {
	criteria := ParseCriteria(c.Request.URL.Query())

	// Workbook generation buffers the whole file in memory; cap how
	// many exports run at once.
	if err := s.exportSem.Acquire(c.Request.Context(), 1); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "export canceled: " + err.Error()})
		return
	}
	defer s.exportSem.Release(1)

	result, err := s.service.Search(c.Request.Context(), criteria)
	if err != nil {
		s.jsonError(c, err)
		return
	}

	if err := writeXLSXAttachment(c.Writer, result.Rows); err != nil {
		log.Printf("[Export] XLSX export failed: %v", err)
	}
}
