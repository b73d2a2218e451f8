package handler

import (
	"net/http"

	"github.com/lootworks/casesim/internal/domain"
	"github.com/lootworks/casesim/internal/economy"
	"github.com/lootworks/casesim/internal/logger"
)

// EconomyHandler exposes the ledger commands and snapshots over HTTP.
type EconomyHandler struct {
	service economy.Service
}

func NewEconomyHandler(service economy.Service) *EconomyHandler {
	return &EconomyHandler{service: service}
}

type OpenCaseRequest struct {
	CaseID string `json:"case_id" validate:"required"`
}

// HandleOpenCase charges the case price and draws one item.
func (h *EconomyHandler) HandleOpenCase(w http.ResponseWriter, r *http.Request) {
	var req OpenCaseRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Open case"); err != nil {
		return
	}

	result, err := h.service.OpenCase(r.Context(), req.CaseID)
	if err != nil {
		respondServiceError(w, r, "open case", err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

type BuyShopItemRequest struct {
	EntryID string `json:"entry_id" validate:"required"`
}

// HandleBuyShopItem purchases one entry from today's shop.
func (h *EconomyHandler) HandleBuyShopItem(w http.ResponseWriter, r *http.Request) {
	var req BuyShopItemRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Buy shop item"); err != nil {
		return
	}

	result, err := h.service.BuyShopItem(r.Context(), req.EntryID)
	if err != nil {
		respondServiceError(w, r, "buy shop item", err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

type SellItemsRequest struct {
	// An empty selection is valid and sells nothing.
	ItemIDs []string `json:"item_ids"`
}

// HandleSellItems sells the selected inventory items for their exact value.
func (h *EconomyHandler) HandleSellItems(w http.ResponseWriter, r *http.Request) {
	var req SellItemsRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Sell items"); err != nil {
		return
	}

	result, err := h.service.SellItems(r.Context(), req.ItemIDs)
	if err != nil {
		respondServiceError(w, r, "sell items", err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// HandleClaimDaily claims the daily bonus. The body is empty.
func (h *EconomyHandler) HandleClaimDaily(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ClaimDaily(r.Context())
	if err != nil {
		respondServiceError(w, r, "claim daily", err)
		return
	}

	logger.FromContext(r.Context()).Debug("Daily reward claimed via API", "streak", result.Streak)
	respondJSON(w, http.StatusOK, result)
}

// WalletResponse carries the balance in cents plus its display form.
type WalletResponse struct {
	Balance   domain.Cents `json:"balance"`
	Display   string       `json:"display"`
	Formatted string       `json:"formatted"`
}

// HandleGetWallet returns the current balance.
func (h *EconomyHandler) HandleGetWallet(w http.ResponseWriter, r *http.Request) {
	balance := h.service.Wallet(r.Context())
	respondJSON(w, http.StatusOK, WalletResponse{
		Balance:   balance,
		Display:   balance.String(),
		Formatted: balance.Format(),
	})
}

// InventoryResponse lists owned items in acquisition order with their
// combined sell value.
type InventoryResponse struct {
	Items      domain.Inventory `json:"items"`
	TotalValue domain.Cents     `json:"total_value"`
}

// HandleGetInventory returns the owned items.
func (h *EconomyHandler) HandleGetInventory(w http.ResponseWriter, r *http.Request) {
	inv := h.service.Inventory(r.Context())
	respondJSON(w, http.StatusOK, InventoryResponse{
		Items:      inv,
		TotalValue: inv.TotalValue(),
	})
}

// CasesResponse lists the openable case definitions.
type CasesResponse struct {
	Cases []domain.Case `json:"cases"`
}

// HandleGetCases returns the case catalog.
func (h *EconomyHandler) HandleGetCases(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, CasesResponse{Cases: h.service.Cases(r.Context())})
}

// HandleGetShop returns today's shop offer, rotating it first if needed.
func (h *EconomyHandler) HandleGetShop(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.service.ShopOffer(r.Context()))
}

// HandleGetDaily reports whether today's bonus is claimable.
func (h *EconomyHandler) HandleGetDaily(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.service.DailyStatus(r.Context()))
}
