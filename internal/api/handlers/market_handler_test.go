package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tradebot/internal/models"
)

// ============ MarketHandler Tests ============

func TestMarketHandler_GetPrices(t *testing.T) {
	mockSvc := &mockMarket{
		tickers: []models.Ticker{
			{Symbol: "BTCUSDT", Price: 50000},
			{Symbol: "ETHUSDT", Price: 3000},
		},
		live: true,
	}
	handler := NewMarketHandler(mockSvc)

	req := httptest.NewRequest(http.MethodGet, "/api/prices", nil)
	w := httptest.NewRecorder()

	handler.GetPrices(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var prices map[string]float64
	if err := json.NewDecoder(w.Body).Decode(&prices); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(prices) != 2 {
		t.Fatalf("expected 2 symbols, got %d", len(prices))
	}
	if prices["BTCUSDT"] != 50000 || prices["ETHUSDT"] != 3000 {
		t.Errorf("unexpected prices: %v", prices)
	}
}

func TestMarketHandler_GetMarketLive(t *testing.T) {
	t.Run("live data", func(t *testing.T) {
		mockSvc := &mockMarket{
			tickers: []models.Ticker{
				{Symbol: "BTCUSDT", Price: 50000, ChangePercent24h: 1.5},
			},
			live: true,
		}
		handler := NewMarketHandler(mockSvc)

		req := httptest.NewRequest(http.MethodGet, "/api/market/live", nil)
		w := httptest.NewRecorder()

		handler.GetMarketLive(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
		}

		var response struct {
			Live bool            `json:"live"`
			Data []models.Ticker `json:"data"`
		}
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if !response.Live {
			t.Error("live = false, want true")
		}
		if len(response.Data) != 1 || response.Data[0].Symbol != "BTCUSDT" {
			t.Errorf("unexpected data: %+v", response.Data)
		}
	})

	t.Run("stale data still returns 200 with live false", func(t *testing.T) {
		mockSvc := &mockMarket{
			tickers: []models.Ticker{{Symbol: "BTCUSDT", Price: 49000}},
			live:    false,
		}
		handler := NewMarketHandler(mockSvc)

		req := httptest.NewRequest(http.MethodGet, "/api/market/live", nil)
		w := httptest.NewRecorder()

		handler.GetMarketLive(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
		}

		var response map[string]interface{}
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if response["live"] != false {
			t.Errorf("live = %v, want false", response["live"])
		}
		if _, ok := response["data"]; !ok {
			t.Error("response missing data field")
		}
	})

	t.Run("empty cache serialized as empty array", func(t *testing.T) {
		handler := NewMarketHandler(&mockMarket{})

		req := httptest.NewRequest(http.MethodGet, "/api/market/live", nil)
		w := httptest.NewRecorder()

		handler.GetMarketLive(w, req)

		var response map[string]interface{}
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		data, ok := response["data"].([]interface{})
		if !ok {
			t.Fatalf("data is not an array: %v", response["data"])
		}
		if len(data) != 0 {
			t.Errorf("expected empty array, got %v", data)
		}
	})
}
