package handlers

import (
	"delivery-rate-service/internal/api/dto"
	"delivery-rate-service/internal/domain"
	"delivery-rate-service/internal/platform/obs"
	"delivery-rate-service/internal/services"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

type RateHandler struct {
	Service *services.QuoteService
	Log     *zap.Logger
}

// Rate quotes home delivery for one destination. A suppressed quote is a
// successful response with no rate line.
func (h *RateHandler) Rate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(h.Log, w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.RateRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(h.Log, w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(h.Log, w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	d := req.Destination
	if d.Latitude == nil || d.Longitude == nil {
		writeError(h.Log, w, r, http.StatusBadRequest, "destination latitude and longitude are required")
		return
	}

	dest, err := domain.NewGeoPoint(*d.Latitude, *d.Longitude)
	if err != nil {
		writeError(h.Log, w, r, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.Service.Quote(r.Context(), services.QuoteRequest{
		Destination: dest,
		Address:     joinAddress(d),
	})
	switch {
	case errors.Is(err, domain.ErrEmptyCatalog):
		writeError(h.Log, w, r, http.StatusServiceUnavailable, "no stores available for delivery")
		return
	case errors.Is(err, domain.ErrInvalidCoordinate):
		// The destination was validated above, so this is a bad catalog entry.
		h.Log.Error("store catalog has invalid coordinates", zap.String("req_id", obs.RequestID(r.Context())), zap.Error(err))
		writeError(h.Log, w, r, http.StatusInternalServerError, "internal server error")
		return
	case err != nil:
		h.Log.Error("quote failed", zap.String("req_id", obs.RequestID(r.Context())), zap.Error(err))
		writeError(h.Log, w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	sel := res.Selection
	out := dto.RateResponse{
		Suppressed: sel.Quote.IsSuppressed(),
		NearestStore: dto.NearestStoreResponse{
			Name:      sel.Store.Name,
			Latitude:  sel.Store.Location.Latitude,
			Longitude: sel.Store.Location.Longitude,
		},
		DistanceMeters: sel.DistanceMeters,
	}
	if res.Rate != nil {
		out.Rate = &dto.RateLineResponse{
			ID:    res.Rate.ID,
			Label: res.Rate.Label,
			Cost:  res.Rate.Cost,
		}
	}

	writeJSON(h.Log, w, r, http.StatusOK, out)
}

func joinAddress(d dto.DestinationRequest) string {
	parts := make([]string, 0, 6)
	for _, p := range []string{d.Address1, d.Address2, d.City, d.State, d.Country, d.Postcode} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
