package handler

import (
	"log/slog"
	"net/http"

	"go-course-store/internal/cache"
	"go-course-store/internal/service"
)

type CatalogHandler struct {
	catalog *service.CatalogService
	cache   *cache.CatalogCache
}

func NewCatalogHandler(catalog *service.CatalogService, catalogCache *cache.CatalogCache) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, cache: catalogCache}
}

// List serves the public course listing. Cache failures degrade to the
// in-process catalog, they never fail the request.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.cache.Enabled() {
		cached, err := h.cache.Get(r.Context())
		if err != nil {
			slog.Warn("catalog cache read failed", "error", err)
		}
		if len(cached) > 0 {
			writeSuccess(w, http.StatusOK, cached)
			return
		}
	}

	categories := h.catalog.Categories()

	if h.cache.Enabled() {
		if err := h.cache.Set(r.Context(), categories); err != nil {
			slog.Warn("catalog cache write failed", "error", err)
		}
	}

	writeSuccess(w, http.StatusOK, categories)
}
