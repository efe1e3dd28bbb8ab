package api

import (
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// SetupRoutes configures all API routes under /api/v1
func SetupRoutes(handler *Handler, log zerolog.Logger) *mux.Router {
	r := mux.NewRouter()
	r.Use(RequestLogger(log))
	r.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// Market data is public
	api.HandleFunc("/market/prices", handler.ListPrices).Methods("GET")
	api.HandleFunc("/market/prices/{symbol}", handler.GetPrice).Methods("GET")
	api.HandleFunc("/stocks", handler.ListStocks).Methods("GET")
	api.HandleFunc("/stocks/sectors", handler.ListSectors).Methods("GET")
	api.HandleFunc("/stocks/trending", handler.Trending).Methods("GET")
	api.HandleFunc("/stocks/gainers", handler.Gainers).Methods("GET")
	api.HandleFunc("/stocks/losers", handler.Losers).Methods("GET")
	api.HandleFunc("/stocks/{symbol}", handler.GetStock).Methods("GET")

	owned := api.NewRoute().Subrouter()
	owned.Use(RequireOwner)
	owned.HandleFunc("/portfolios", handler.CreatePortfolio).Methods("POST")
	owned.HandleFunc("/portfolios", handler.ListPortfolios).Methods("GET")
	owned.HandleFunc("/portfolios/{id:[0-9]+}", handler.GetPortfolio).Methods("GET")
	owned.HandleFunc("/portfolios/{id:[0-9]+}", handler.DeletePortfolio).Methods("DELETE")
	owned.HandleFunc("/portfolios/{id:[0-9]+}/summary", handler.GetSummary).Methods("GET")
	owned.HandleFunc("/portfolios/{id:[0-9]+}/transactions", handler.AddTransaction).Methods("POST")
	owned.HandleFunc("/portfolios/{id:[0-9]+}/transactions", handler.ListTransactions).Methods("GET")
	owned.HandleFunc("/alerts", handler.CreateAlert).Methods("POST")
	owned.HandleFunc("/alerts", handler.ListAlerts).Methods("GET")
	owned.HandleFunc("/alerts/{id:[0-9]+}", handler.DeleteAlert).Methods("DELETE")

	return r
}
