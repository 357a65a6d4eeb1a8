package ui

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/semaphore"

	"tirescout/app"
	"tirescout/internal/config"
	"tirescout/internal/errors"
)

// App is the headless JSON surface: the same catalog operations as the
// web UI, without the rendered pages.
type App struct {
	router    *chi.Mux
	service   *app.CatalogService
	cfg       *config.Config
	exportSem *semaphore.Weighted
}

// NewApp creates the API application over a shared catalog service.
func NewApp(service *app.CatalogService, cfg *config.Config) *App {
	a := &App{
		router:    chi.NewRouter(),
		service:   service,
		cfg:       cfg,
		exportSem: semaphore.NewWeighted(cfg.Export.MaxConcurrent),
	}

	a.setupMiddleware()
	a.setupRoutes()

	return a
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/api/search", a.handleSearch)
	a.router.Get("/api/facets", a.handleFacets)
	a.router.Get("/api/dataset/info", a.handleDatasetInfo)
	a.router.Get("/api/dataset/profile", a.handleDatasetProfile)
	a.router.Post("/api/dataset/reload", a.handleDatasetReload)

	a.router.Get("/download/csv", a.handleDownloadCSV)
	a.router.Get("/download/xlsx", a.handleDownloadXLSX)
}

// Start starts the HTTP server
func (a *App) Start() error {
	addr := ":" + a.cfg.Server.APIPort
	log.Printf("Starting tirescout API server on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

func (a *App) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[API] Failed to encode response: %v", err)
	}
}

func (a *App) writeError(w http.ResponseWriter, err error) {
	a.writeJSON(w, statusForError(err), map[string]string{
		"error": err.Error(),
		"code":  errors.GetCode(err),
	})
}

func (a *App) handleSearch(w http.ResponseWriter, r *http.Request) {
	criteria := ParseCriteria(r.URL.Query())

	result, err := a.service.Search(r.Context(), criteria)
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJSON(w, http.StatusOK, newSearchResponse(result))
}

func (a *App) handleFacets(w http.ResponseWriter, r *http.Request) {
	facets, err := a.service.Facets(r.Context())
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJSON(w, http.StatusOK, facets)
}

func (a *App) handleDatasetInfo(w http.ResponseWriter, r *http.Request) {
	info, err := a.service.Info(r.Context())
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJSON(w, http.StatusOK, info)
}

func (a *App) handleDatasetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := a.service.Profile(r.Context())
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJSON(w, http.StatusOK, profile)
}

func (a *App) handleDatasetReload(w http.ResponseWriter, r *http.Request) {
	a.service.Invalidate()

	if _, err := a.service.Load(r.Context()); err != nil {
		a.writeError(w, err)
		return
	}

	info, err := a.service.Info(r.Context())
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJSON(w, http.StatusOK, info)
}

func (a *App) handleDownloadCSV(w http.ResponseWriter, r *http.Request) {
	criteria := ParseCriteria(r.URL.Query())

	result, err := a.service.Search(r.Context(), criteria)
	if err != nil {
		a.writeError(w, err)
		return
	}

	if err := writeCSVAttachment(w, result.Rows); err != nil {
		log.Printf("[Export] CSV export failed: %v", err)
	}
}

func (a *App) handleDownloadXLSX(w http.ResponseWriter, r *http.Request) {
	criteria := ParseCriteria(r.URL.Query())

	if err := a.exportSem.Acquire(r.Context(), 1); err != nil {
		a.writeError(w, errors.ExportFailed("xlsx", err))
		return
	}
	defer a.exportSem.Release(1)

	result, err := a.service.Search(r.Context(), criteria)
	if err != nil {
		a.writeError(w, err)
		return
	}

	if err := writeXLSXAttachment(w, result.Rows); err != nil {
		log.Printf("[Export] XLSX export failed: %v", err)
	}
}
