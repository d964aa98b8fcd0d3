package models

import "time"

// AssetBalance баланс одного актива биржевого аккаунта
type AssetBalance struct {
	Asset  string  `json:"asset"`
	Free   float64 `json:"free"`
	Locked float64 `json:"locked"`
}

// AccountBalance представляет баланс биржевого аккаунта
//
// Configured == false когда учётные данные не заданы: это штатный
// режим, а не ошибка. При недоступном провайдере отдаётся последний
// успешно полученный снимок.
type AccountBalance struct {
	Configured bool           `json:"configured"`
	TotalValue float64        `json:"totalValue"`
	Balances   []AssetBalance `json:"balances"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}
