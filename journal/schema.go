package journal

import "github.com/shopspring/decimal"

const Schema = `
CREATE TABLE IF NOT EXISTS executions (
	order_id TEXT NOT NULL,
	symbol TEXT NOT NULL,
	order_type TEXT NOT NULL,
	target_price TEXT NOT NULL,
	trigger_price TEXT NOT NULL,
	quantity TEXT NOT NULL,
	proceeds TEXT NOT NULL,
	reason TEXT NOT NULL,
	time DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_executions_time ON executions(time);
CREATE INDEX IF NOT EXISTS idx_executions_symbol ON executions(symbol);
`

func parseDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
