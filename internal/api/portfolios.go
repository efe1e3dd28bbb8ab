package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/trogers1052/portfolio-service/internal/models"
	"github.com/trogers1052/portfolio-service/internal/valuation"
)

// CreatePortfolio handles POST /portfolios
func (h *Handler) CreatePortfolio(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Currency string `json:"currency"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	p := &models.Portfolio{
		OwnerID:  OwnerFromContext(r.Context()),
		Name:     strings.TrimSpace(req.Name),
		Currency: req.Currency,
	}
	if err := h.store.CreatePortfolio(r.Context(), p); err != nil {
		h.respondStoreError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, p)
}

// ListPortfolios handles GET /portfolios
func (h *Handler) ListPortfolios(w http.ResponseWriter, r *http.Request) {
	portfolios, err := h.store.GetPortfoliosByOwner(r.Context(), OwnerFromContext(r.Context()))
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, portfolios)
}

// GetPortfolio handles GET /portfolios/{id}
func (h *Handler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	p, ok := h.ownedPortfolio(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, p)
}

// DeletePortfolio handles DELETE /portfolios/{id}
func (h *Handler) DeletePortfolio(w http.ResponseWriter, r *http.Request) {
	p, ok := h.ownedPortfolio(w, r)
	if !ok {
		return
	}
	if err := h.store.DeletePortfolio(r.Context(), p.ID); err != nil {
		h.respondStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetSummary handles GET /portfolios/{id}/summary
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	p, ok := h.ownedPortfolio(w, r)
	if !ok {
		return
	}

	summary, err := h.valuer.ComputeSummary(r.Context(), p.ID)
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newSummaryResponse(p, summary))
}

// ListTransactions handles GET /portfolios/{id}/transactions
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	p, ok := h.ownedPortfolio(w, r)
	if !ok {
		return
	}

	txs, err := h.store.GetTransactionsByPortfolio(r.Context(), p.ID)
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, txs)
}

// AddTransaction handles POST /portfolios/{id}/transactions. A SELL that
// would take a position below zero is refused unless shorting is allowed.
func (h *Handler) AddTransaction(w http.ResponseWriter, r *http.Request) {
	p, ok := h.ownedPortfolio(w, r)
	if !ok {
		return
	}

	var req struct {
		Symbol   string          `json:"symbol"`
		Type     string          `json:"type"`
		Quantity decimal.Decimal `json:"quantity"`
		Price    decimal.Decimal `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tx, err := models.NewTransaction(p.ID, req.Symbol, req.Type, req.Quantity, req.Price)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	tx.CreatedAt = time.Now()

	if tx.Type == models.TransactionTypeSell && h.opts.Oversell == valuation.OversellReject {
		existing, err := h.store.GetTransactionsByPortfolio(r.Context(), p.ID)
		if err != nil {
			h.respondStoreError(w, err)
			return
		}
		if _, err := valuation.Compute(append(existing, tx), nil, h.opts); err != nil {
			h.respondStoreError(w, err)
			return
		}
	}

	if err := h.store.CreateTransaction(r.Context(), tx); err != nil {
		h.respondStoreError(w, err)
		return
	}

	if h.publisher != nil {
		if err := h.publisher.PublishTransactionRecorded(r.Context(), models.NewTransactionEvent(tx)); err != nil {
			h.log.Warn().Err(err).Int("transaction_id", tx.ID).Msg("Failed to publish transaction event")
		}
	}

	respondJSON(w, http.StatusCreated, tx)
}

// ownedPortfolio loads the portfolio named in the path and checks that the
// caller owns it. It writes the error response itself.
func (h *Handler) ownedPortfolio(w http.ResponseWriter, r *http.Request) (*models.Portfolio, bool) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid portfolio id")
		return nil, false
	}

	p, err := h.store.GetPortfolioByID(r.Context(), id)
	if err != nil {
		h.respondStoreError(w, err)
		return nil, false
	}
	if p.OwnerID != OwnerFromContext(r.Context()) {
		respondError(w, http.StatusForbidden, "portfolio belongs to another owner")
		return nil, false
	}
	return p, true
}
