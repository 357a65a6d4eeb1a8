package ui

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/semaphore"

	"tirescout/app"
	"tirescout/internal/config"
)

//go:embed templates/* static/* about.md
var embeddedFiles embed.FS

// Server is the web UI: rendered pages, HTMX fragments, JSON endpoints,
// and export downloads over a shared catalog service.
type Server struct {
	router    *gin.Engine
	service   *app.CatalogService
	cfg       *config.Config
	templates *template.Template
	exportSem *semaphore.Weighted
	about     template.HTML
}

// NewServer creates a new web server instance
func NewServer() *Server {
	return &Server{
		router: gin.Default(),
	}
}

// Initialize sets up the server with dependencies
func (s *Server) Initialize(service *app.CatalogService, cfg *config.Config) error {
	s.service = service
	s.cfg = cfg
	s.exportSem = semaphore.NewWeighted(cfg.Export.MaxConcurrent)

	funcMap := template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"inSlice": func(values []string, v string) bool {
			for _, candidate := range values {
				if candidate == v {
					return true
				}
			}
			return false
		},
		"upper": strings.ToUpper,
	}

	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html", "templates/fragments/*.html")
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}
	s.templates = templates

	about, err := renderAbout()
	if err != nil {
		return fmt.Errorf("failed to render about panel: %w", err)
	}
	s.about = about

	s.setupMiddleware()
	s.setupRoutes()

	return nil
}

// setupMiddleware configures Gin middleware
func (s *Server) setupMiddleware() {
	staticFS, err := fs.Sub(embeddedFiles, "static")
	if err != nil {
		log.Printf("[Static] Error creating static filesystem: %v", err)
		return
	}
	s.router.StaticFS("/static", http.FS(staticFS))
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	// Rendered pages
	s.router.GET("/", s.handleIndex)
	s.router.GET("/search", s.handleSearchFragment)

	// JSON endpoints
	s.router.GET("/api/search", s.handleAPISearch)
	s.router.GET("/api/facets", s.handleAPIFacets)
	s.router.GET("/api/dataset/info", s.handleAPIDatasetInfo)
	s.router.GET("/api/dataset/profile", s.handleAPIDatasetProfile)
	s.router.POST("/api/dataset/reload", s.handleAPIDatasetReload)

	// Export downloads
	s.router.GET("/download/csv", s.handleDownloadCSV)
	s.router.GET("/download/xlsx", s.handleDownloadXLSX)
}

// Start starts the web server
func (s *Server) Start(addr string) error {
	log.Printf("Starting tirescout UI on http://%s", addr)
	return s.router.Run(addr)
}

// Template helpers
func (s *Server) renderTemplate(c *gin.Context, templateName string, data interface{}) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(c.Writer, templateName, data); err != nil {
		log.Printf("Template error: %v", err)
		c.AbortWithStatus(http.StatusInternalServerError)
	}
}
