// Package handler serves the read-only REST endpoints next to the RPC service.
package handler

import (
	"net/http"

	"github.com/atlekbai/function_registry/internal/function"
	"github.com/atlekbai/function_registry/internal/schema"
	"github.com/atlekbai/function_registry/internal/service"
)

type Handler struct {
	registry *function.Registry
	catalog  *schema.Cache
}

// New creates the handler. catalog may be nil when no database is configured.
func New(registry *function.Registry, catalog *schema.Cache) *Handler {
	return &Handler{registry: registry, catalog: catalog}
}

// Register mounts the endpoints on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.Health)
	mux.HandleFunc("GET /v1/functions", h.ListFunctions)
	mux.HandleFunc("GET /v1/functions/{name}", h.GetFunction)
}

type healthResponse struct {
	Status    string `json:"status"`
	Functions int    `json:"functions"`
	Tables    int    `json:"tables"`
	Database  bool   `json:"database"`
}

// Health handles GET /healthz
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", Functions: h.registry.Len()}
	if h.catalog != nil {
		resp.Database = true
		resp.Tables = h.catalog.TableCount()
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListFunctions handles GET /v1/functions?pattern=
func (h *Handler) ListFunctions(w http.ResponseWriter, r *http.Request) {
	defs, err := h.registry.List(r.URL.Query().Get("pattern"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error(), "")
		return
	}
	out := make([]service.FunctionInfo, len(defs))
	for i, d := range defs {
		out[i] = service.Describe(d)
	}
	writeJSON(w, http.StatusOK, service.ListFunctionsResponse{Functions: out})
}

// GetFunction handles GET /v1/functions/{name}. Aliases resolve to their
// canonical function.
func (h *Handler) GetFunction(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if !h.registry.Exists(name) {
		writeError(w, http.StatusNotFound, "FUNCTION_NOT_FOUND",
			"Function not found",
			"No function registered as '"+name+"'")
		return
	}
	d, err := h.registry.ResolveFunction(h.registry.ResolveAlias(name))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Lookup failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, service.Describe(d))
}
