package currency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// RateSource отдает курс обмена from -> to
type RateSource interface {
	Rate(ctx context.Context, from, to string) (float64, error)
}

var ErrRateUnavailable = errors.New("rate unavailable")

// ExchangeRateAPI клиент v6.exchangerate-api.com (эндпоинт pair)
type ExchangeRateAPI struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewExchangeRateAPI(baseURL, apiKey string, timeout time.Duration) *ExchangeRateAPI {
	return &ExchangeRateAPI{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

type pairResponse struct {
	Result         string  `json:"result"`
	ErrorType      string  `json:"error-type"`
	ConversionRate float64 `json:"conversion_rate"`
}

func (a *ExchangeRateAPI) Rate(ctx context.Context, from, to string) (float64, error) {
	if a.apiKey == "" {
		return 0, fmt.Errorf("%w: api key is not configured", ErrRateUnavailable)
	}

	endpoint := fmt.Sprintf("%s/v6/%s/pair/%s/%s",
		a.baseURL, url.PathEscape(a.apiKey), url.PathEscape(from), url.PathEscape(to))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("build rate request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request rate %s_%s: %w", from, to, err)
	}
	defer resp.Body.Close()

	var body pairResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("decode rate response: %w", err)
	}
	if resp.StatusCode != http.StatusOK || body.Result != "success" {
		return 0, fmt.Errorf("%w: status %d, result %q, error %q",
			ErrRateUnavailable, resp.StatusCode, body.Result, body.ErrorType)
	}
	if body.ConversionRate <= 0 {
		return 0, fmt.Errorf("%w: non-positive rate %v", ErrRateUnavailable, body.ConversionRate)
	}
	return body.ConversionRate, nil
}
