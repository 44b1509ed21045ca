// Package feed talks to the market data provider and drives the order
// book with the prices it returns. The provider is polled, not
// subscribed to; staleness between refreshes is accepted.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/moneyverse/market"
)

// DefaultBaseURL is the public CoinGecko API.
const DefaultBaseURL = "https://api.coingecko.com/api/v3"

// DefaultAssetIDs are the instruments tracked out of the box.
var DefaultAssetIDs = []string{
	"bitcoin", "ethereum", "solana", "dogecoin", "ripple", "cardano", "polkadot",
}

// Provider returns a current snapshot for each requested asset id:
// price in the given currency, display name/symbol, 24h change.
type Provider interface {
	Markets(ctx context.Context, currency string, ids []string) ([]market.Asset, error)
}

// Client is a CoinGecko-shaped HTTP provider.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// coinMarket is the provider's wire row. decimal unmarshals the raw
// JSON numbers without a float round-trip.
type coinMarket struct {
	ID        string          `json:"id"`
	Symbol    string          `json:"symbol"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"current_price"`
	Change24h decimal.Decimal `json:"price_change_percentage_24h"`
	Image     string          `json:"image"`
}

// Markets fetches current data for the given asset ids, priced in
// currency (e.g. "usd"). The provider may be rate limited; the error is
// returned for the caller to log and the previous snapshot to survive.
func (c *Client) Markets(ctx context.Context, currency string, ids []string) ([]market.Asset, error) {
	q := url.Values{}
	q.Set("vs_currency", strings.ToLower(currency))
	q.Set("ids", strings.Join(ids, ","))
	q.Set("order", "market_cap_desc")
	q.Set("sparkline", "false")

	u := fmt.Sprintf("%s/coins/markets?%s", c.baseURL, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch markets: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("fetch markets: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var rows []coinMarket
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode markets: %w", err)
	}

	assets := make([]market.Asset, 0, len(rows))
	for _, r := range rows {
		assets = append(assets, market.Asset{
			ID:        r.ID,
			Symbol:    strings.ToUpper(r.Symbol),
			Name:      r.Name,
			Price:     r.Price,
			Kind:      market.Crypto,
			Change24h: r.Change24h,
			Image:     r.Image,
		})
	}
	return assets, nil
}
