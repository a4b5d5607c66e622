package services

import (
	"context"
	"delivery-rate-service/internal/domain"
	"delivery-rate-service/internal/platform/obs"
	"delivery-rate-service/internal/ports"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/fnv"
	"math"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// QuoteRequest is one shipping-rate quote request from the host checkout.
type QuoteRequest struct {
	Destination domain.GeoPoint
	// Address is carried for logging only; it is never geocoded here.
	Address string
}

// QuoteResult carries the selection and, when the quote is offered, the
// rate line the host should display. Rate is nil for suppressed quotes.
type QuoteResult struct {
	Selection domain.Selection
	Rate      *domain.RateLine
	Cached    bool
}

// QuoteService wires the rate engine to the store catalog and the optional
// cache and recorders.
type QuoteService struct {
	engine    *RateEngine
	catalog   ports.StoreCatalog
	cache     ports.QuoteCache
	recorders []ports.QuoteRecorder
	rateID    string
	rateLabel string
	log       *zap.Logger
	now       func() time.Time
}

type QuoteServiceOption func(*QuoteService)

// WithQuoteCache enables the selection cache.
func WithQuoteCache(c ports.QuoteCache) QuoteServiceOption {
	return func(s *QuoteService) { s.cache = c }
}

// WithRecorders adds audit sinks for computed quotes.
func WithRecorders(rs ...ports.QuoteRecorder) QuoteServiceOption {
	return func(s *QuoteService) { s.recorders = append(s.recorders, rs...) }
}

// WithRateLine sets the id and label of the rate line handed to the host.
func WithRateLine(id, label string) QuoteServiceOption {
	return func(s *QuoteService) {
		s.rateID = id
		s.rateLabel = label
	}
}

func NewQuoteService(
	engine *RateEngine,
	catalog ports.StoreCatalog,
	log *zap.Logger,
	opts ...QuoteServiceOption,
) (*QuoteService, error) {
	if engine == nil {
		return nil, errors.New("quote service: engine must be non-nil")
	}
	if catalog == nil {
		return nil, errors.New("quote service: catalog must be non-nil")
	}
	if log == nil {
		log = zap.NewNop()
	}

	s := &QuoteService{
		engine:    engine,
		catalog:   catalog,
		rateID:    "custom_shipping",
		rateLabel: "Home Delivery Charges",
		log:       log,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Stores returns the current catalog.
func (s *QuoteService) Stores(ctx context.Context) ([]domain.StoreLocation, error) {
	stores, err := s.catalog.ListStores(ctx)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	return stores, nil
}

// Quote computes the shipping quote for a destination.
//
// Cache and recorder failures are logged and never fail the quote.
func (s *QuoteService) Quote(ctx context.Context, req QuoteRequest) (_ QuoteResult, err error) {
	defer obs.Time(ctx, s.log, "quote.Quote")(&err)

	if err := req.Destination.Validate(); err != nil {
		return QuoteResult{}, fmt.Errorf("quote: destination: %w", err)
	}

	stores, err := s.catalog.ListStores(ctx)
	if err != nil {
		return QuoteResult{}, fmt.Errorf("quote: list stores: %w", err)
	}

	key := CacheKey(stores, s.engine.pricing, req.Destination)
	if s.cache != nil {
		sel, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			s.log.Warn("quote cache read failed", zap.String("req_id", obs.RequestID(ctx)), zap.Error(err))
		} else if ok {
			return s.result(sel, true), nil
		}
	}

	sel, err := s.engine.Nearest(req.Destination, stores)
	if err != nil {
		return QuoteResult{}, fmt.Errorf("quote: %w", err)
	}

	s.log.Info("quote computed",
		zap.String("req_id", obs.RequestID(ctx)),
		zap.String("address", req.Address),
		zap.Stringer("destination", req.Destination),
		zap.String("store", sel.Store.Name),
		zap.Float64("distance_meters", sel.DistanceMeters),
		zap.Stringer("quote", sel.Quote),
	)

	if s.cache != nil {
		if err := s.cache.Put(ctx, key, sel); err != nil {
			s.log.Warn("quote cache write failed", zap.String("req_id", obs.RequestID(ctx)), zap.Error(err))
		}
	}

	rec := domain.NewQuoteRecord(req.Destination, sel, s.now())
	for _, r := range s.recorders {
		if err := r.Record(ctx, rec); err != nil {
			s.log.Warn("quote record failed",
				zap.String("req_id", obs.RequestID(ctx)),
				zap.String("quote_id", rec.ID.String()),
				zap.Error(err),
			)
		}
	}

	return s.result(sel, false), nil
}

func (s *QuoteService) result(sel domain.Selection, cached bool) QuoteResult {
	res := QuoteResult{Selection: sel, Cached: cached}
	if amount, ok := sel.Quote.Amount(); ok {
		res.Rate = &domain.RateLine{ID: s.rateID, Label: s.rateLabel, Cost: amount}
	}
	return res
}

// CacheKey identifies a quote by catalog contents, pricing and exact destination.
// Any change to the catalog or pricing yields a different key.
func CacheKey(stores []domain.StoreLocation, pricing TieredPricing, dest domain.GeoPoint) string {
	return Fingerprint(stores) + ":" + pricing.signature() + ":" +
		strconv.FormatFloat(dest.Latitude, 'g', -1, 64) + ":" +
		strconv.FormatFloat(dest.Longitude, 'g', -1, 64)
}

// Fingerprint hashes the ordered catalog, including disabled entries.
func Fingerprint(stores []domain.StoreLocation) string {
	h := fnv.New64a()
	var buf [8]byte
	for _, st := range stores {
		_, _ = h.Write([]byte(st.Name))
		_, _ = h.Write([]byte{0})
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(st.Location.Latitude))
		_, _ = h.Write(buf[:])
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(st.Location.Longitude))
		_, _ = h.Write(buf[:])
		if st.Enabled {
			_, _ = h.Write([]byte{1})
		} else {
			_, _ = h.Write([]byte{0})
		}
	}
	return strconv.FormatUint(h.Sum64(), 16)
}
