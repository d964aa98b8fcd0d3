package service

import (
	"tradebot/internal/models"
	"tradebot/pkg/utils"
)

// holding курируемая запись каталога рекомендаций
type holding struct {
	symbol      string
	pair        string // символ инструмента для кэша цен
	name        string
	allocation  float64
	targetPrice float64
	thesis      string
	riskLevel   string
	timeHorizon string
}

// curatedHoldings статический каталог долгосрочных рекомендаций
var curatedHoldings = []holding{
	{
		symbol:      "BTC",
		pair:        "BTCUSDT",
		name:        "Bitcoin",
		allocation:  45,
		targetPrice: 95000,
		thesis:      "Digital gold narrative strengthening. Institutional adoption accelerating.",
		riskLevel:   "Low",
		timeHorizon: "2-5 years",
	},
	{
		symbol:      "ETH",
		pair:        "ETHUSDT",
		name:        "Ethereum",
		allocation:  30,
		targetPrice: 3500,
		thesis:      "Dominant smart contract platform. Staking yields 4-5%.",
		riskLevel:   "Medium",
		timeHorizon: "2-4 years",
	},
	{
		symbol:      "SOL",
		pair:        "SOLUSDT",
		name:        "Solana",
		allocation:  15,
		targetPrice: 150,
		thesis:      "High-performance blockchain. Growing DeFi ecosystem.",
		riskLevel:   "High",
		timeHorizon: "2-3 years",
	},
	{
		symbol:      "LINK",
		pair:        "LINKUSDT",
		name:        "Chainlink",
		allocation:  10,
		targetPrice: 15,
		thesis:      "Oracle market leader. Enterprise partnerships expanding.",
		riskLevel:   "Medium",
		timeHorizon: "2-3 years",
	},
}

// HoldingsService рекомендации по долгосрочному портфелю
//
// Каталог статический; текущая цена и потенциал роста подставляются
// из кэша цен в момент запроса. Отсутствующая цена даёт нулевые
// current/upside, а не ошибку.
type HoldingsService struct {
	prices PriceQuoter
}

// NewHoldingsService создаёт сервис рекомендаций
func NewHoldingsService(prices PriceQuoter) *HoldingsService {
	return &HoldingsService{prices: prices}
}

// Recommendations возвращает каталог, оценённый по текущим ценам
func (s *HoldingsService) Recommendations() []models.HoldingRecommendation {
	result := make([]models.HoldingRecommendation, 0, len(curatedHoldings))
	for _, h := range curatedHoldings {
		rec := models.HoldingRecommendation{
			Symbol:      h.symbol,
			Name:        h.name,
			Allocation:  h.allocation,
			TargetPrice: h.targetPrice,
			Thesis:      h.thesis,
			RiskLevel:   h.riskLevel,
			TimeHorizon: h.timeHorizon,
		}

		if price, ok := s.prices.Price(h.pair); ok && price > 0 {
			rec.CurrentPrice = price
			rec.Upside = utils.RoundTo(utils.CalculatePercentChange(price, h.targetPrice), 1)
		}

		result = append(result, rec)
	}
	return result
}
