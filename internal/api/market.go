package api

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/trogers1052/portfolio-service/internal/models"
)

const (
	defaultPageSize  = 50
	defaultMoverSize = 10
)

// ListPrices handles GET /market/prices
func (h *Handler) ListPrices(w http.ResponseWriter, r *http.Request) {
	prices, err := h.store.GetAllMarketPrices(r.Context())
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, prices)
}

// GetPrice handles GET /market/prices/{symbol}, cache first
func (h *Handler) GetPrice(w http.ResponseWriter, r *http.Request) {
	price, err := h.quotes.Quote(r.Context(), mux.Vars(r)["symbol"])
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, price)
}

// ListStocks handles GET /stocks?search=&sector=&sortBy=&order=&page=&limit=
func (h *Handler) ListStocks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := h.store.SearchStocks(r.Context(), models.StockQuery{
		Search: strings.TrimSpace(q.Get("search")),
		Sector: q.Get("sector"),
		SortBy: q.Get("sortBy"),
		Desc:   strings.EqualFold(q.Get("order"), "desc"),
		Page:   queryInt(r, "page", 1),
		Limit:  queryInt(r, "limit", defaultPageSize),
	})
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

// GetStock handles GET /stocks/{symbol}
func (h *Handler) GetStock(w http.ResponseWriter, r *http.Request) {
	stock, err := h.store.GetStock(r.Context(), mux.Vars(r)["symbol"])
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stock)
}

// ListSectors handles GET /stocks/sectors
func (h *Handler) ListSectors(w http.ResponseWriter, r *http.Request) {
	sectors, err := h.store.GetSectors(r.Context())
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sectors)
}

// Trending handles GET /stocks/trending, the highest volume stocks
func (h *Handler) Trending(w http.ResponseWriter, r *http.Request) {
	h.topStocks(w, r, "volume", true)
}

// Gainers handles GET /stocks/gainers, the highest priced stocks
func (h *Handler) Gainers(w http.ResponseWriter, r *http.Request) {
	h.topStocks(w, r, "current_price", true)
}

// Losers handles GET /stocks/losers, the lowest priced stocks
func (h *Handler) Losers(w http.ResponseWriter, r *http.Request) {
	h.topStocks(w, r, "current_price", false)
}

func (h *Handler) topStocks(w http.ResponseWriter, r *http.Request, sortBy string, desc bool) {
	page, err := h.store.SearchStocks(r.Context(), models.StockQuery{
		SortBy: sortBy,
		Desc:   desc,
		Page:   1,
		Limit:  queryInt(r, "limit", defaultMoverSize),
	})
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, page.Stocks)
}
