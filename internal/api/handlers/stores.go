package handlers

import (
	"delivery-rate-service/internal/api/dto"
	"delivery-rate-service/internal/services"
	"net/http"

	"go.uber.org/zap"
)

// StoreHandler exposes the configured store catalog read-only.
type StoreHandler struct {
	Service *services.QuoteService
	Log     *zap.Logger
}

func (h *StoreHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(h.Log, w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	stores, err := h.Service.Stores(r.Context())
	if err != nil {
		h.Log.Error("list stores failed", zap.Error(err))
		writeError(h.Log, w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListStoresResponse{
		Stores: make([]dto.StoreResponse, 0, len(stores)),
	}
	for _, s := range stores {
		res.Stores = append(res.Stores, dto.StoreResponse{
			Name:      s.Name,
			Latitude:  s.Location.Latitude,
			Longitude: s.Location.Longitude,
			Enabled:   s.Enabled,
		})
	}

	writeJSON(h.Log, w, r, http.StatusOK, res)
}
