package market

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sony/gobreaker"

	"tradebot/internal/models"
)

// ErrUpstreamUnavailable помечает любую ошибку внешнего провайдера
//
// Наружу эта ошибка никогда не превращается в ошибку эндпоинта:
// вызывающая сторона деградирует к содержимому кэша.
var ErrUpstreamUnavailable = errors.New("market data upstream unavailable")

var fastJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// tickerResponse сырой ответ провайдера (все числа приходят строками)
type tickerResponse struct {
	Symbol             string `json:"symbol"`
	LastPrice          string `json:"lastPrice"`
	PriceChange        string `json:"priceChange"`
	PriceChangePercent string `json:"priceChangePercent"`
	Volume             string `json:"volume"`
	HighPrice          string `json:"highPrice"`
	LowPrice           string `json:"lowPrice"`
}

// Client клиент публичного REST API провайдера рыночных данных
//
// Обёрнут в circuit breaker: после серии отказов запросы отклоняются
// локально, не нагружая мёртвый upstream. Любой отказ (сетевой,
// HTTP-статус, разбор ответа, открытый breaker) приводит к
// ErrUpstreamUnavailable.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	breaker    *gobreaker.CircuitBreaker
}

// NewClient создаёт клиент для указанного base URL
func NewClient(baseURL string, timeout time.Duration) *Client {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "market-data",
		MaxRequests: 3,                // полуоткрытое состояние: до 3 пробных запросов
		Interval:    60 * time.Second, // сброс счётчиков раз в минуту
		Timeout:     30 * time.Second, // открытое состояние держится 30 секунд
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.Requests >= 5 && counts.TotalFailures >= 5
		},
	})

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: GetGlobalHTTPClient().GetClient(),
		timeout:    timeout,
		breaker:    breaker,
	}
}

// FetchTickers запрашивает 24-часовую статистику по списку символов
//
// GET /api/v3/ticker/24hr?symbols=["BTCUSDT",...]
func (c *Client) FetchTickers(ctx context.Context, symbols []string) ([]models.Ticker, error) {
	if len(symbols) == 0 {
		return nil, nil
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.fetchTickers(ctx, symbols)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: circuit breaker open", ErrUpstreamUnavailable)
		}
		return nil, err
	}

	return result.([]models.Ticker), nil
}

func (c *Client) fetchTickers(ctx context.Context, symbols []string) ([]models.Ticker, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	// Провайдер принимает список символов JSON-массивом в query
	quoted := make([]string, len(symbols))
	for i, s := range symbols {
		quoted[i] = `"` + s + `"`
	}
	query := url.Values{}
	query.Set("symbols", "["+strings.Join(quoted, ",")+"]")

	reqURL := c.baseURL + "/api/v3/ticker/24hr?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUpstreamUnavailable, resp.StatusCode)
	}

	var raw []tickerResponse
	if err := fastJSON.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: parse response: %v", ErrUpstreamUnavailable, err)
	}

	tickers := make([]models.Ticker, 0, len(raw))
	for _, r := range raw {
		t, err := r.toTicker()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
		}
		tickers = append(tickers, t)
	}

	return tickers, nil
}

// toTicker конвертирует строковые поля ответа в числа
func (r tickerResponse) toTicker() (models.Ticker, error) {
	parse := func(field, value string) (float64, error) {
		if value == "" {
			return 0, nil
		}
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s for %s: %q", field, r.Symbol, value)
		}
		return f, nil
	}

	var t models.Ticker
	var err error

	t.Symbol = r.Symbol
	if t.Price, err = parse("lastPrice", r.LastPrice); err != nil {
		return t, err
	}
	if t.Change24h, err = parse("priceChange", r.PriceChange); err != nil {
		return t, err
	}
	if t.ChangePercent24h, err = parse("priceChangePercent", r.PriceChangePercent); err != nil {
		return t, err
	}
	if t.Volume, err = parse("volume", r.Volume); err != nil {
		return t, err
	}
	if t.High24h, err = parse("highPrice", r.HighPrice); err != nil {
		return t, err
	}
	if t.Low24h, err = parse("lowPrice", r.LowPrice); err != nil {
		return t, err
	}

	return t, nil
}
