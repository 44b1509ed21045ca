// Package market holds the data types shared between the feed, the
// portfolio simulator and the order book.
package market

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetKind classifies what the simulator is trading.
type AssetKind string

const (
	Crypto AssetKind = "CRYPTO"
	Stock  AssetKind = "STOCK"
	ETF    AssetKind = "ETF"
)

// Asset is one tradeable instrument as reported by the market data
// provider. ID is the provider's identifier (e.g. the CoinGecko id),
// Symbol is the short ticker used as the portfolio key.
type Asset struct {
	ID        string          `json:"id"`
	Symbol    string          `json:"symbol"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Kind      AssetKind       `json:"type"`
	Change24h decimal.Decimal `json:"change24h"`
	Image     string          `json:"image,omitempty"`
}

// Quote is a single price observation for a symbol. The order book
// evaluates pending orders against quotes, one symbol at a time.
type Quote struct {
	Symbol string
	Price  decimal.Decimal
	Time   time.Time
}

// QuoteOf extracts the quote carried by an asset snapshot.
func QuoteOf(a Asset, t time.Time) Quote {
	return Quote{Symbol: a.Symbol, Price: a.Price, Time: t}
}
