// Package replay feeds recorded price quotes into the trigger engine so
// order behavior can be reproduced deterministically from a file instead
// of a live feed.
package replay

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/moneyverse/market"
)

// QuoteSink receives quotes one at a time. *app.App satisfies it.
type QuoteSink interface {
	PushQuote(q market.Quote)
}

// CSV replays quotes from a CSV file into the sink, one row per quote.
//
// Format, with an optional header row:
//
//	time,symbol,price
//
// time is RFC3339. Rows are pushed in file order; replay stops at the
// first bad row or when the context is cancelled.
func CSV(ctx context.Context, csvPath string, sink QuoteSink) error {
	f, err := os.Open(csvPath)
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	firstRow, err := r.Read()
	if err != nil {
		return err
	}
	hasHeader := len(firstRow) > 0 && strings.EqualFold(strings.TrimSpace(firstRow[0]), "time")
	if !hasHeader {
		if err := pushRow(sink, firstRow); err != nil {
			return err
		}
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		row, err := r.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if len(row) == 0 {
			continue
		}
		if err := pushRow(sink, row); err != nil {
			return err
		}
	}
}

func pushRow(sink QuoteSink, row []string) error {
	if len(row) < 3 {
		return fmt.Errorf("bad row (need time,symbol,price): %v", row)
	}

	t, err := time.Parse(time.RFC3339, strings.TrimSpace(row[0]))
	if err != nil {
		return fmt.Errorf("bad time %q: %w", row[0], err)
	}
	symbol := strings.ToUpper(strings.TrimSpace(row[1]))
	price, err := decimal.NewFromString(strings.TrimSpace(row[2]))
	if err != nil {
		return fmt.Errorf("bad price %q: %w", row[2], err)
	}

	sink.PushQuote(market.Quote{Symbol: symbol, Price: price, Time: t})
	return nil
}
