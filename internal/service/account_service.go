package service

import (
	"context"
	"strings"
	"sync"

	"tradebot/internal/models"
	"tradebot/pkg/utils"
)

// Стейблкоины оцениваются 1:1 к котируемой валюте
var stablecoins = map[string]bool{
	"USDT": true,
	"USDC": true,
	"BUSD": true,
	"DAI":  true,
}

// AccountService баланс внешнего биржевого аккаунта
//
// Деградация при сбоях провайдера:
// - учётные данные не заданы: configured=false, это не ошибка
// - провайдер недоступен: последний успешно полученный снимок,
//   а до первого успеха - пустой снимок с configured=true
// Эндпоинт баланса никогда не отвечает ошибкой из-за провайдера.
type AccountService struct {
	client BalanceFetcher
	prices PriceQuoter
	logger *utils.Logger

	mu   sync.RWMutex
	last *models.AccountBalance
}

// NewAccountService создаёт сервис баланса аккаунта
func NewAccountService(client BalanceFetcher, prices PriceQuoter) *AccountService {
	return &AccountService{
		client: client,
		prices: prices,
		logger: utils.L().WithComponent("account_service"),
	}
}

// GetBalance возвращает балансы аккаунта с оценкой в котируемой валюте
func (s *AccountService) GetBalance(ctx context.Context) *models.AccountBalance {
	balance, err := s.client.FetchBalance(ctx)
	if err != nil {
		s.logger.Warn("Account balance fetch failed, serving last known", utils.Err(err))
		return s.lastKnown()
	}

	if balance.Configured {
		balance.TotalValue = s.totalValue(balance.Balances)
		s.mu.Lock()
		s.last = balance
		s.mu.Unlock()
	}

	return balance
}

// lastKnown возвращает последний успешный снимок или пустой снимок
func (s *AccountService) lastKnown() *models.AccountBalance {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.last != nil {
		cp := *s.last
		cp.Balances = append([]models.AssetBalance(nil), s.last.Balances...)
		return &cp
	}
	return &models.AccountBalance{
		Configured: true,
		Balances:   []models.AssetBalance{},
	}
}

// totalValue оценивает суммарную стоимость балансов по кэшу цен
//
// Актив без цены в кэше не входит в оценку: лучше занизить сумму,
// чем отдать ошибку или выдуманное значение.
func (s *AccountService) totalValue(balances []models.AssetBalance) float64 {
	var total float64
	for _, b := range balances {
		qty := b.Free + b.Locked
		asset := strings.ToUpper(b.Asset)

		if stablecoins[asset] {
			total += qty
			continue
		}

		if price, ok := s.prices.Price(asset + "USDT"); ok {
			total += qty * price
		}
	}
	return utils.RoundTo(total, 2)
}
