package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/trogers1052/portfolio-service/internal/database"
	"github.com/trogers1052/portfolio-service/internal/models"
	"github.com/trogers1052/portfolio-service/internal/valuation"
)

// Store is the persistence the HTTP handlers read and write
type Store interface {
	Ping(ctx context.Context) error

	CreatePortfolio(ctx context.Context, p *models.Portfolio) error
	GetPortfolioByID(ctx context.Context, id int) (*models.Portfolio, error)
	GetPortfoliosByOwner(ctx context.Context, ownerID string) ([]*models.Portfolio, error)
	DeletePortfolio(ctx context.Context, id int) error

	CreateTransaction(ctx context.Context, t *models.Transaction) error
	GetTransactionsByPortfolio(ctx context.Context, portfolioID int) ([]*models.Transaction, error)

	GetAllMarketPrices(ctx context.Context) ([]*models.MarketPrice, error)

	GetStock(ctx context.Context, symbol string) (*models.Stock, error)
	SearchStocks(ctx context.Context, q models.StockQuery) (*models.StockPage, error)
	GetSectors(ctx context.Context) ([]string, error)

	CreateAlert(ctx context.Context, a *models.Alert) error
	GetAlertByID(ctx context.Context, id int) (*models.Alert, error)
	GetAlertsByOwner(ctx context.Context, ownerID string) ([]*models.Alert, error)
	DeleteAlert(ctx context.Context, id int) error
}

// Valuer computes portfolio summaries
type Valuer interface {
	ComputeSummary(ctx context.Context, portfolioID int) (*models.PortfolioSummary, error)
}

// Quoter returns the latest price for one symbol
type Quoter interface {
	Quote(ctx context.Context, symbol string) (*models.MarketPrice, error)
}

// TransactionPublisher announces transactions recorded through the API
type TransactionPublisher interface {
	PublishTransactionRecorded(ctx context.Context, event *models.TransactionEvent) error
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	store     Store
	valuer    Valuer
	quotes    Quoter
	publisher TransactionPublisher
	opts      valuation.Options
	log       zerolog.Logger
}

// NewHandler creates a new Handler. publisher may be nil.
func NewHandler(store Store, valuer Valuer, quotes Quoter, publisher TransactionPublisher, opts valuation.Options, log zerolog.Logger) *Handler {
	return &Handler{
		store:     store,
		valuer:    valuer,
		quotes:    quotes,
		publisher: publisher,
		opts:      opts,
		log:       log.With().Str("component", "api").Logger(),
	}
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy", "error": err.Error()})
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// respondStoreError maps repository and engine errors to status codes
func (h *Handler) respondStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, database.ErrNotFound), errors.Is(err, valuation.ErrPortfolioNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrInvalidTransaction):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, valuation.ErrOversell):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		respondError(w, http.StatusServiceUnavailable, "request cancelled")
	default:
		h.log.Error().Err(err).Msg("Request failed")
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	return id, err == nil && id > 0
}

func queryInt(r *http.Request, key string, defaultValue int) int {
	if n, err := strconv.Atoi(r.URL.Query().Get(key)); err == nil && n > 0 {
		return n
	}
	return defaultValue
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
