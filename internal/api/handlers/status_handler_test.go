package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tradebot/internal/models"
)

// ============ StatusHandler Tests ============

func TestStatusHandler_GetStatus(t *testing.T) {
	mockSvc := &mockStatus{
		summary: &models.StatusSummary{
			BotRunning:          true,
			DailyProfit:         12.5,
			CumulativeProfit:    4212.5,
			OpenCount:           3,
			OpenProfitableCount: 2,
			TotalClosedCount:    10,
			WinRate:             0.6,
			PaperTrading:        true,
		},
	}
	handler := NewStatusHandler(mockSvc)

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	w := httptest.NewRecorder()

	handler.GetStatus(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var response map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	// Проверяем camelCase ключи и значения
	if response["botRunning"] != true {
		t.Errorf("botRunning = %v", response["botRunning"])
	}
	if response["dailyProfit"] != 12.5 {
		t.Errorf("dailyProfit = %v", response["dailyProfit"])
	}
	if response["winRate"] != 0.6 {
		t.Errorf("winRate = %v", response["winRate"])
	}
	for _, key := range []string{"cumulativeProfit", "openCount", "openProfitableCount", "totalClosedCount", "paperTrading"} {
		if _, ok := response[key]; !ok {
			t.Errorf("response missing %s field", key)
		}
	}
}

func TestStatusHandler_GetTrades(t *testing.T) {
	now := time.Now().UTC()
	trade := &models.ClosedTrade{
		Position: models.Position{
			ID:         "t1",
			StrategyID: "scalping-btc",
			Symbol:     "BTCUSDT",
			Direction:  models.DirectionBuy,
			Quantity:   0.002,
			EntryPrice: 50000,
			EntryTime:  now.Add(-time.Minute),
			Status:     models.PositionClosed,
		},
		ExitPrice: 50100,
		ExitTime:  now,
		Profit:    0.2,
	}

	t.Run("returns trades with default limit", func(t *testing.T) {
		mockSvc := &mockStatus{trades: []*models.ClosedTrade{trade}}
		handler := NewStatusHandler(mockSvc)

		req := httptest.NewRequest(http.MethodGet, "/api/trades", nil)
		w := httptest.NewRecorder()

		handler.GetTrades(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
		}
		if mockSvc.gotLimit != 0 {
			t.Errorf("limit = %d, want 0 (service applies default)", mockSvc.gotLimit)
		}

		var response []map[string]interface{}
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if len(response) != 1 {
			t.Fatalf("expected 1 trade, got %d", len(response))
		}
		if response[0]["id"] != "t1" || response[0]["exitPrice"] != 50100.0 {
			t.Errorf("unexpected trade: %+v", response[0])
		}
	})

	t.Run("passes limit parameter", func(t *testing.T) {
		mockSvc := &mockStatus{}
		handler := NewStatusHandler(mockSvc)

		req := httptest.NewRequest(http.MethodGet, "/api/trades?limit=7", nil)
		w := httptest.NewRecorder()

		handler.GetTrades(w, req)

		if mockSvc.gotLimit != 7 {
			t.Errorf("limit = %d, want 7", mockSvc.gotLimit)
		}
	})

	t.Run("rejects non-numeric limit", func(t *testing.T) {
		handler := NewStatusHandler(&mockStatus{})

		req := httptest.NewRequest(http.MethodGet, "/api/trades?limit=abc", nil)
		w := httptest.NewRecorder()

		handler.GetTrades(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
		}
	})

	t.Run("empty history serialized as empty array", func(t *testing.T) {
		handler := NewStatusHandler(&mockStatus{})

		req := httptest.NewRequest(http.MethodGet, "/api/trades", nil)
		w := httptest.NewRecorder()

		handler.GetTrades(w, req)

		body := strings.TrimSpace(w.Body.String())
		if body != "[]" {
			t.Errorf("body = %q, want []", body)
		}
	})
}
