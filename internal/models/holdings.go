package models

// HoldingRecommendation долгосрочная рекомендация по активу
//
// Каталог рекомендаций статический, текущая цена и потенциал роста
// подставляются из кэша цен в момент запроса.
type HoldingRecommendation struct {
	Symbol       string  `json:"symbol"`
	Name         string  `json:"name"`
	Allocation   float64 `json:"allocation"`
	TargetPrice  float64 `json:"targetPrice"`
	CurrentPrice float64 `json:"currentPrice"`
	Upside       float64 `json:"upside"`
	Thesis       string  `json:"thesis"`
	RiskLevel    string  `json:"riskLevel"`
	TimeHorizon  string  `json:"timeHorizon"`
}
