package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Daniyar05/esports-tournament-system/middleware"
	"github.com/Daniyar05/esports-tournament-system/services"
)

type WalletHandler struct {
	walletService services.WalletService
}

func NewWalletHandler(walletService services.WalletService) *WalletHandler {
	return &WalletHandler{walletService: walletService}
}

// BalanceHandler обрабатывает GET /wallet
func (h *WalletHandler) BalanceHandler(w http.ResponseWriter, r *http.Request) {
	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	wallet, err := h.walletService.Balance(r.Context(), currentUserID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"wallet": wallet}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DepositHandler обрабатывает POST /wallet/deposit
func (h *WalletHandler) DepositHandler(w http.ResponseWriter, r *http.Request) {
	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	var input struct {
		Amount int `json:"amount"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tx, err := h.walletService.Deposit(r.Context(), currentUserID, input.Amount)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"transaction": tx}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// TransactionsHandler обрабатывает GET /wallet/transactions
func (h *WalletHandler) TransactionsHandler(w http.ResponseWriter, r *http.Request) {
	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	limit := 50
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		} else {
			badRequestResponse(w, r, errors.New("invalid limit query parameter"))
			return
		}
	}

	transactions, err := h.walletService.ListTransactions(r.Context(), currentUserID, limit)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"transactions": transactions}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RefundHandler обрабатывает POST /wallet/refund — административный возврат
// UC (например, после отмены турнира).
func (h *WalletHandler) RefundHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		UserID    string `json:"user_id"`
		Amount    int    `json:"amount"`
		Reference string `json:"reference"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.UserID == "" || input.Amount <= 0 {
		badRequestResponse(w, r, errors.New("user_id and a positive amount are required"))
		return
	}

	if err := h.walletService.Refund(r.Context(), nil, input.UserID, input.Amount, input.Reference); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"message": "refund applied"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
