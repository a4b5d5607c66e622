package handlers

import (
	"delivery-rate-service/internal/api/dto"
	"delivery-rate-service/internal/ports"
	"net/http"
	"strconv"

	"go.uber.org/zap"
)

// QuoteLogHandler lists recently issued quotes. Log is nil when no
// database is configured.
type QuoteLogHandler struct {
	Log    ports.QuoteLog
	Logger *zap.Logger
}

func (h *QuoteLogHandler) Recent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(h.Logger, w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if h.Log == nil {
		writeError(h.Logger, w, r, http.StatusNotImplemented, "quote log is not configured")
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 500 {
			writeError(h.Logger, w, r, http.StatusBadRequest, "limit must be between 1 and 500")
			return
		}
		limit = n
	}

	recs, err := h.Log.Recent(r.Context(), limit)
	if err != nil {
		h.Logger.Error("list quotes failed", zap.Error(err))
		writeError(h.Logger, w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListQuotesResponse{Quotes: make([]dto.QuoteRecordResponse, 0, len(recs))}
	for _, q := range recs {
		res.Quotes = append(res.Quotes, dto.QuoteRecordResponse{
			QuoteID:        q.ID.String(),
			RequestedAt:    q.RequestedAt,
			DestLat:        q.Destination.Latitude,
			DestLon:        q.Destination.Longitude,
			StoreName:      q.StoreName,
			DistanceMeters: q.DistanceMeters,
			Suppressed:     q.Suppressed,
			Cost:           q.Cost,
		})
	}

	writeJSON(h.Logger, w, r, http.StatusOK, res)
}
