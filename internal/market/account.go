package market

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"tradebot/internal/models"
)

const accountRecvWindow = "5000"

// AccountClient клиент приватного API биржевого аккаунта
//
// Запросы подписываются HMAC-SHA256 по query-строке, ключ передаётся
// заголовком. Секрет попадает сюда уже расшифрованным (pkg/crypto),
// на диске он хранится только в зашифрованном виде.
type AccountClient struct {
	baseURL    string
	apiKey     string
	secret     string
	httpClient *http.Client
	timeout    time.Duration
}

// NewAccountClient создаёт клиент аккаунта
//
// Пустой apiKey допустим: Configured() вернёт false, запросы
// выполняться не будут.
func NewAccountClient(baseURL, apiKey, secret string, timeout time.Duration) *AccountClient {
	return &AccountClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		secret:     secret,
		httpClient: GetGlobalHTTPClient().GetClient(),
		timeout:    timeout,
	}
}

// Configured сообщает, заданы ли учётные данные
func (a *AccountClient) Configured() bool {
	return a.apiKey != "" && a.secret != ""
}

// sign подписывает query-строку HMAC-SHA256
func (a *AccountClient) sign(query string) string {
	h := hmac.New(sha256.New, []byte(a.secret))
	h.Write([]byte(query))
	return hex.EncodeToString(h.Sum(nil))
}

// accountResponse сырой ответ провайдера
type accountResponse struct {
	Balances []struct {
		Asset  string `json:"asset"`
		Free   string `json:"free"`
		Locked string `json:"locked"`
	} `json:"balances"`
}

// FetchBalance запрашивает балансы аккаунта
//
// GET /api/v3/account?timestamp=...&recvWindow=... + signature
func (a *AccountClient) FetchBalance(ctx context.Context) (*models.AccountBalance, error) {
	if !a.Configured() {
		return &models.AccountBalance{Configured: false}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	query := url.Values{}
	query.Set("timestamp", strconv.FormatInt(time.Now().UnixMilli(), 10))
	query.Set("recvWindow", accountRecvWindow)

	encoded := query.Encode()
	reqURL := a.baseURL + "/api/v3/account?" + encoded + "&signature=" + a.sign(encoded)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	req.Header.Set("X-MBX-APIKEY", a.apiKey)

	resp, err := a.httpClient.Do(req)
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

	var raw accountResponse
	if err := fastJSON.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: parse response: %v", ErrUpstreamUnavailable, err)
	}

	balance := &models.AccountBalance{
		Configured: true,
		Balances:   make([]models.AssetBalance, 0, len(raw.Balances)),
		UpdatedAt:  time.Now().UTC(),
	}

	for _, b := range raw.Balances {
		free, err := strconv.ParseFloat(b.Free, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid free balance for %s: %q", ErrUpstreamUnavailable, b.Asset, b.Free)
		}
		locked, err := strconv.ParseFloat(b.Locked, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid locked balance for %s: %q", ErrUpstreamUnavailable, b.Asset, b.Locked)
		}

		// Нулевые балансы не интересны дашборду
		if free == 0 && locked == 0 {
			continue
		}

		balance.Balances = append(balance.Balances, models.AssetBalance{
			Asset:  b.Asset,
			Free:   free,
			Locked: locked,
		})
	}

	return balance, nil
}
