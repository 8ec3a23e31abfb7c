package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"catalog-converter/config"
	"catalog-converter/models"
	"catalog-converter/services"
	"catalog-converter/utils"
)

// Router serves the catalog over HTTP. Each catalog request runs a build of
// the configured mode; build failures map onto status codes (missing source
// → 404, missing mandatory column → 400, anything else → 500).
type Router struct {
	*mux.Router

	cfg     *config.Config
	builder *services.Builder
	gate    *utils.RunGate
	logger  *utils.Logger
}

// NewRouter creates an HTTP router with all routes registered.
func NewRouter(cfg *config.Config, builder *services.Builder, gate *utils.RunGate, logger *utils.Logger) *Router {
	r := &Router{
		Router:  mux.NewRouter(),
		cfg:     cfg,
		builder: builder,
		gate:    gate,
		logger:  logger,
	}

	r.HandleFunc("/health", r.health).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/catalog", r.getCatalog).Methods("GET")

	return r
}

// Serve starts the HTTP server on the configured address.
func (r *Router) Serve() error {
	r.logger.Info("[server] Listening on %s", r.cfg.HTTPAddr)
	return http.ListenAndServe(r.cfg.HTTPAddr, r)
}

func (r *Router) getCatalog(w http.ResponseWriter, req *http.Request) {
	var doc any
	var err error

	r.gate.Run(func() {
		if r.cfg.Mode == config.ModeGrouped {
			doc, err = r.builder.BuildGrouped(r.cfg.SourcePath)
		} else {
			doc, err = r.builder.Build(r.cfg.SourcePath)
		}
	})

	if err != nil {
		r.logger.Error("[server] Catalog build failed: %v", err)

		var missing *models.MissingColumnError
		switch {
		case errors.Is(err, models.ErrSourceNotFound):
			writeError(w, http.StatusNotFound, "source file not found")
		case errors.As(err, &missing):
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"success":           false,
				"error":             missing.Error(),
				"available_columns": missing.Available,
			})
		default:
			writeError(w, http.StatusInternalServerError, "catalog build failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, doc)
}

func (r *Router) health(w http.ResponseWriter, req *http.Request) {
	_, err := os.Stat(r.cfg.SourcePath)
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"source_present": err == nil,
		"mode":           r.cfg.Mode,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"success": false, "error": msg})
}
