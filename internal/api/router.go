package api

import (
	"delivery-rate-service/internal/api/handlers"
	"delivery-rate-service/internal/ports"
	"delivery-rate-service/internal/services"
	"net/http"

	"github.com/justinas/alice"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// quoteLog may be nil; GET /quotes then answers 501.
func NewRouter(svc *services.QuoteService, quoteLog ports.QuoteLog, log *zap.Logger) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}

	mux := http.NewServeMux()

	rateHandler := &handlers.RateHandler{Service: svc, Log: log}
	storeHandler := &handlers.StoreHandler{Service: svc, Log: log}
	quoteHandler := &handlers.QuoteLogHandler{Log: quoteLog, Logger: log}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/stores", storeHandler.List)
	mux.HandleFunc("/rates", rateHandler.Rate)
	mux.HandleFunc("/quotes", quoteHandler.Recent)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
	})

	return alice.New(requestID, accessLog(log), c.Handler).Then(mux)
}
