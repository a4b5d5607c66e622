package handlers

import (
	"context"
	"delivery-rate-service/internal/api/dto"
	"delivery-rate-service/internal/domain"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubQuoteLog struct {
	recs      []domain.QuoteRecord
	err       error
	lastLimit int
}

func (s *stubQuoteLog) Record(ctx context.Context, rec domain.QuoteRecord) error {
	s.recs = append(s.recs, rec)
	return nil
}

func (s *stubQuoteLog) Recent(ctx context.Context, limit int) ([]domain.QuoteRecord, error) {
	s.lastLimit = limit
	if s.err != nil {
		return nil, s.err
	}
	return s.recs, nil
}

func getQuotes(h *QuoteLogHandler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Recent(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestRecentQuotes(t *testing.T) {
	cost, err := domain.Cost(decimal.NewFromInt(30))
	require.NoError(t, err)

	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	offered := domain.NewQuoteRecord(farCustomer, domain.Selection{Store: jayanagar, DistanceMeters: 6200, Quote: cost}, at)
	suppressed := domain.NewQuoteRecord(nearCustomer, domain.Selection{Store: jayanagar, DistanceMeters: 1300, Quote: domain.Suppressed()}, at)

	ql := &stubQuoteLog{recs: []domain.QuoteRecord{offered, suppressed}}
	h := &QuoteLogHandler{Log: ql, Logger: zap.NewNop()}

	rec := getQuotes(h, "/quotes?limit=2")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, ql.lastLimit)

	var res dto.ListQuotesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res.Quotes, 2)

	assert.Equal(t, offered.ID.String(), res.Quotes[0].QuoteID)
	assert.True(t, res.Quotes[0].Cost.Valid)
	assert.True(t, res.Quotes[0].Cost.Decimal.Equal(decimal.NewFromInt(30)))
	assert.True(t, res.Quotes[1].Suppressed)
	assert.False(t, res.Quotes[1].Cost.Valid)
}

func TestRecentQuotesDefaultsAndErrors(t *testing.T) {
	ql := &stubQuoteLog{}
	h := &QuoteLogHandler{Log: ql, Logger: zap.NewNop()}

	rec := getQuotes(h, "/quotes")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 50, ql.lastLimit)
	assert.JSONEq(t, `{"quotes":[]}`, rec.Body.String())

	for _, bad := range []string{"0", "501", "ten"} {
		rec := getQuotes(h, "/quotes?limit="+bad)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "limit=%s", bad)
	}

	ql.err = errors.New("db down")
	assert.Equal(t, http.StatusInternalServerError, getQuotes(h, "/quotes").Code)
}

func TestRecentQuotesWithoutLog(t *testing.T) {
	h := &QuoteLogHandler{Logger: zap.NewNop()}
	assert.Equal(t, http.StatusNotImplemented, getQuotes(h, "/quotes").Code)
}
