package api

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/trogers1052/portfolio-service/internal/models"
)

// CreateAlert handles POST /alerts
func (h *Handler) CreateAlert(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Symbol    string          `json:"symbol"`
		Condition string          `json:"condition"`
		Threshold decimal.Decimal `json:"threshold"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	symbol := models.NormalizeSymbol(req.Symbol)
	if symbol == "" {
		respondError(w, http.StatusBadRequest, "symbol is required")
		return
	}
	condition, err := models.ParseAlertCondition(req.Condition)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !req.Threshold.IsPositive() {
		respondError(w, http.StatusBadRequest, "threshold must be positive")
		return
	}

	a := &models.Alert{
		OwnerID:   OwnerFromContext(r.Context()),
		Symbol:    symbol,
		Condition: condition,
		Threshold: req.Threshold,
	}
	if err := h.store.CreateAlert(r.Context(), a); err != nil {
		h.respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, a)
}

// ListAlerts handles GET /alerts
func (h *Handler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.store.GetAlertsByOwner(r.Context(), OwnerFromContext(r.Context()))
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, alerts)
}

// DeleteAlert handles DELETE /alerts/{id}
func (h *Handler) DeleteAlert(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid alert id")
		return
	}

	a, err := h.store.GetAlertByID(r.Context(), id)
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	if a.OwnerID != OwnerFromContext(r.Context()) {
		respondError(w, http.StatusForbidden, "alert belongs to another owner")
		return
	}

	if err := h.store.DeleteAlert(r.Context(), id); err != nil {
		h.respondStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
