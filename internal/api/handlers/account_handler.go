package handlers

import (
	"context"
	"net/http"

	"tradebot/internal/models"
)

// BalanceProvider определяет зависимости AccountHandler
type BalanceProvider interface {
	GetBalance(ctx context.Context) *models.AccountBalance
}

// AccountHandler обрабатывает запросы биржевого аккаунта
type AccountHandler struct {
	account BalanceProvider
}

// NewAccountHandler создает новый AccountHandler
func NewAccountHandler(account BalanceProvider) *AccountHandler {
	return &AccountHandler{account: account}
}

// GetBalance возвращает балансы аккаунта
// GET /api/account/balance
//
// Response:
// - 200 OK: {configured, totalValue, balances: [...]}
//
// Без API ключей возвращает configured=false. При недоступности биржи
// возвращает последний успешный снимок; ошибки наружу не отдаются.
func (h *AccountHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.account.GetBalance(r.Context()))
}
