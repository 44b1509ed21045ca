package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteJournalRoundTrip(t *testing.T) {
	t.Parallel()

	j, err := NewSQLite(filepath.Join(t.TempDir(), "journal.sqlite"))
	require.NoError(t, err)
	defer j.Close()

	rec := ExecutionRecord{
		OrderID:      "01JX0000000000000000000000",
		Symbol:       "BTC",
		OrderType:    "STOP_LOSS",
		TargetPrice:  decimal.NewFromInt(90),
		TriggerPrice: decimal.NewFromInt(85),
		Quantity:     decimal.NewFromInt(10),
		Proceeds:     decimal.NewFromInt(850),
		Reason:       "Executed",
		Time:         time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, j.RecordExecution(rec))

	got, err := j.Executions()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, rec.OrderID, got[0].OrderID)
	assert.Equal(t, rec.Reason, got[0].Reason)
	assert.True(t, got[0].TriggerPrice.Equal(rec.TriggerPrice))
	assert.True(t, got[0].Proceeds.Equal(rec.Proceeds))
}

func TestNopJournal(t *testing.T) {
	t.Parallel()

	var j Journal = Nop{}
	assert.NoError(t, j.RecordExecution(ExecutionRecord{}))
	assert.NoError(t, j.Close())
}
