// Package rates adapts the external exchange-rate quote service to the
// RateSource port.
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"subsentry/internal/currency"
	"subsentry/internal/domain"
	"subsentry/internal/domain/model"
	"subsentry/internal/domain/ports/adapter"
)

const sourceLive = "exchangerate-api"

// Client fetches USD-relative rates from exchangerate-api.com.
type Client struct {
	baseURL string
	http    *http.Client
	now     func() time.Time
	log     *zerolog.Logger
}

var _ adapter.RateSource = (*Client)(nil)

func NewClient(baseURL string, timeout time.Duration, logger *zerolog.Logger) *Client {
	l := logger.With().Str("component", "RateClient").Logger()
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		now:     time.Now,
		log:     &l,
	}
}

type ratesResponse struct {
	Result string                     `json:"result"`
	Base   string                     `json:"base"`
	Rates  map[string]decimal.Decimal `json:"rates"`
}

// Latest fetches the current USD-relative rate table. Unsupported currencies
// in the payload are dropped; missing supported ones make the snapshot
// unusable and are treated as a fetch failure.
func (c *Client) Latest(ctx context.Context) (currency.Snapshot, error) {
	url := c.baseURL + "/latest/USD"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return currency.Snapshot{}, fmt.Errorf("build rate request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return currency.Snapshot{}, fmt.Errorf("fetch rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return currency.Snapshot{}, fmt.Errorf("fetch rates: unexpected status %d", resp.StatusCode)
	}

	var body ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return currency.Snapshot{}, fmt.Errorf("decode rates: %w", err)
	}

	snap := currency.Snapshot{
		Base:      model.USD,
		Rates:     make(map[model.Currency]decimal.Decimal, len(model.SupportedCurrencies())),
		FetchedAt: c.now().UTC(),
		Source:    sourceLive,
	}
	for _, cur := range model.SupportedCurrencies() {
		rate, ok := body.Rates[string(cur)]
		if !ok || rate.IsZero() {
			return currency.Snapshot{}, fmt.Errorf("rate table missing %s: %w", cur, domain.ErrConversionUnavailable)
		}
		snap.Rates[cur] = rate
	}
	return snap, nil
}
