package feed

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rustyeddy/moneyverse/market"
)

// ErrNoQuote - no snapshot is held for the symbol (feed not yet
// refreshed, or the symbol is not tracked).
var ErrNoQuote = errors.New("no quote for symbol")

// RefreshHandler receives each successful snapshot. The order book's
// evaluation pass hangs off this.
type RefreshHandler func(assets []market.Asset, at time.Time)

// Poller caches the last-known asset list and pushes every successful
// refresh to the handler. A failed refresh keeps the previous snapshot
// and is logged, never fatal: pending orders simply wait for the next
// successful pass.
type Poller struct {
	provider Provider
	log      logrus.FieldLogger

	mu      sync.RWMutex
	assets  []market.Asset
	asOf    time.Time
	handler RefreshHandler
}

func NewPoller(p Provider, log logrus.FieldLogger) *Poller {
	return &Poller{provider: p, log: log}
}

// SetHandler registers the refresh handler. Must be called before the
// first Refresh.
func (p *Poller) SetHandler(h RefreshHandler) {
	p.mu.Lock()
	p.handler = h
	p.mu.Unlock()
}

// Refresh performs one provider fetch. On success the snapshot is
// cached and the handler invoked; on failure the last-known snapshot is
// retained and the error returned for the caller to surface.
func (p *Poller) Refresh(ctx context.Context, currency string, ids []string) error {
	assets, err := p.provider.Markets(ctx, currency, ids)
	if err != nil {
		p.log.WithError(err).Warn("market refresh failed, keeping last-known prices")
		return err
	}

	now := time.Now().UTC()

	p.mu.Lock()
	p.assets = assets
	p.asOf = now
	handler := p.handler
	p.mu.Unlock()

	if handler != nil {
		handler(assets, now)
	}
	return nil
}

// Assets returns the last-known snapshot and its fetch time.
func (p *Poller) Assets() ([]market.Asset, time.Time) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]market.Asset, len(p.assets))
	copy(out, p.assets)
	return out, p.asOf
}

// AssetBySymbol looks up a tracked asset in the last-known snapshot.
func (p *Poller) AssetBySymbol(symbol string) (market.Asset, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, a := range p.assets {
		if a.Symbol == symbol {
			return a, nil
		}
	}
	return market.Asset{}, ErrNoQuote
}
