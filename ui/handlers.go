package ui

import (
	"html/template"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"tirescout/app"
	"tirescout/domain/catalog"
	"tirescout/internal/errors"
)

// resultsView feeds the results fragment: rows in display order plus
// the counts the caption needs.
type resultsView struct {
	Columns []string
	Rows    []catalog.Row
	Matched int
	Total   int
}

type indexView struct {
	Criteria catalog.Criteria
	Facets   catalog.Facets
	Results  resultsView
	Info     *app.DatasetInfo
	About    template.HTML
	Error    string
}

// searchResponse is the JSON shape shared by the gin and chi surfaces.
type searchResponse struct {
	Criteria catalog.Criteria `json:"criteria"`
	Columns  []string         `json:"columns"`
	Rows     []catalog.Row    `json:"rows"`
	Matched  int              `json:"matched"`
	Total    int              `json:"total"`
}

func newResultsView(result *app.SearchResult) resultsView {
	return resultsView{
		Columns: catalog.Columns(),
		Rows:    result.Rows.Rows(),
		Matched: result.Matched,
		Total:   result.Total,
	}
}

func newSearchResponse(result *app.SearchResult) searchResponse {
	return searchResponse{
		Criteria: result.Criteria,
		Columns:  catalog.Columns(),
		Rows:     result.Rows.Rows(),
		Matched:  result.Matched,
		Total:    result.Total,
	}
}

// statusForError maps application error codes onto HTTP status codes.
func statusForError(err error) int {
	switch errors.GetCode(err) {
	case errors.CodeInvalidInput:
		return http.StatusBadRequest
	case errors.CodeNotFound:
		return http.StatusNotFound
	case errors.CodeDataUnavailable, errors.CodeParseFailed:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) jsonError(c *gin.Context, err error) {
	c.JSON(statusForError(err), gin.H{
		"error": err.Error(),
		"code":  errors.GetCode(err),
	})
}

// handleIndex renders the full search page: filter sidebar, results
// table, about panel, and dataset footer.
func (s *Server) handleIndex(c *gin.Context) {
	criteria := ParseCriteria(c.Request.URL.Query())

	result, err := s.service.Search(c.Request.Context(), criteria)
	if err != nil {
		log.Printf("[UI] Search failed: %v", err)
		s.renderTemplate(c, "index.html", indexView{
			Criteria: criteria,
			About:    s.about,
			Error:    err.Error(),
		})
		return
	}

	info, err := s.service.Info(c.Request.Context())
	if err != nil {
		log.Printf("[UI] Dataset info failed: %v", err)
		info = nil
	}

	s.renderTemplate(c, "index.html", indexView{
		Criteria: criteria,
		Facets:   result.Snapshot.Facets,
		Results:  newResultsView(result),
		Info:     info,
		About:    s.about,
	})
}

// handleSearchFragment returns only the results table, for HTMX swaps.
func (s *Server) handleSearchFragment(c *gin.Context) {
	criteria := ParseCriteria(c.Request.URL.Query())

	result, err := s.service.Search(c.Request.Context(), criteria)
	if err != nil {
		log.Printf("[UI] Search failed: %v", err)
		c.String(statusForError(err), "search failed: %s", err.Error())
		return
	}

	s.renderTemplate(c, "results.html", newResultsView(result))
}

func (s *Server) handleAPISearch(c *gin.Context) {
	criteria := ParseCriteria(c.Request.URL.Query())

	result, err := s.service.Search(c.Request.Context(), criteria)
	if err != nil {
		s.jsonError(c, err)
		return
	}

	c.JSON(http.StatusOK, newSearchResponse(result))
}

func (s *Server) handleAPIFacets(c *gin.Context) {
	facets, err := s.service.Facets(c.Request.Context())
	if err != nil {
		s.jsonError(c, err)
		return
	}

	c.JSON(http.StatusOK, facets)
}

func (s *Server) handleAPIDatasetInfo(c *gin.Context) {
	info, err := s.service.Info(c.Request.Context())
	if err != nil {
		s.jsonError(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}

func (s *Server) handleAPIDatasetProfile(c *gin.Context) {
	profile, err := s.service.Profile(c.Request.Context())
	if err != nil {
		s.jsonError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// handleAPIDatasetReload forces a fresh load regardless of whether the
// source file looks changed.
func (s *Server) handleAPIDatasetReload(c *gin.Context) {
	s.service.Invalidate()

	if _, err := s.service.Load(c.Request.Context()); err != nil {
		s.jsonError(c, err)
		return
	}

	info, err := s.service.Info(c.Request.Context())
	if err != nil {
		s.jsonError(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}
