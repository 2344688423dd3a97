package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/ozzus/skip-hire/internal/domain/models"
	"go.uber.org/zap"
)

type SkipCatalog interface {
	List(ctx context.Context, criteria models.FilterCriteria) (models.Listing, error)
	Get(ctx context.Context, id models.SkipID) (models.Skip, error)
}

type CatalogHandler struct {
	log     *zap.Logger
	catalog SkipCatalog
	timeout time.Duration
}

func NewCatalogHandler(log *zap.Logger, catalog SkipCatalog, timeout time.Duration) *CatalogHandler {
	return &CatalogHandler{log: log, catalog: catalog, timeout: timeout}
}

func (h *CatalogHandler) ListSkips(w http.ResponseWriter, r *http.Request) {
	criteria, errMsg := parseCriteriaQuery(r)
	if errMsg != "" {
		writeError(w, http.StatusBadRequest, errMsg)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	listing, err := h.catalog.List(ctx, criteria)
	if err != nil {
		writeDomainError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, mapListing(listing))
}

func (h *CatalogHandler) GetSkip(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid skip id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	skip, err := h.catalog.Get(ctx, models.SkipID(id))
	if err != nil {
		writeDomainError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, mapSkip(skip))
}
