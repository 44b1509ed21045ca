package app

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// Run drives the background loops until ctx is cancelled: a market
// refresh on the given interval (each one is a full evaluation pass
// over pending orders) and a daily login/streak check. Both fail soft -
// a bad refresh keeps the previous snapshot and orders stay pending
// until the next successful pass.
func (a *App) Run(ctx context.Context, refreshEvery time.Duration) error {
	if refreshEvery <= 0 {
		refreshEvery = time.Minute
	}

	if _, _, err := a.Login(time.Now()); err != nil {
		return fmt.Errorf("login check: %w", err)
	}
	if err := a.Refresh(ctx); err != nil {
		a.log.WithError(err).Warn("initial market refresh failed")
	}

	c := cron.New()

	_, err := c.AddFunc(fmt.Sprintf("@every %s", refreshEvery), func() {
		if err := a.Refresh(ctx); err != nil {
			a.log.WithError(err).Warn("scheduled market refresh failed")
		}
	})
	if err != nil {
		return fmt.Errorf("schedule refresh: %w", err)
	}

	_, err = c.AddFunc("@midnight", func() {
		streak, rw, err := a.Login(time.Now())
		if err != nil {
			a.log.WithError(err).Warn("daily login check failed")
			return
		}
		a.log.WithField("streak", streak).Info("daily login recorded")
		for _, b := range rw.UnlockedBadges {
			a.log.WithField("badge", b.Name).Info("badge unlocked")
		}
	})
	if err != nil {
		return fmt.Errorf("schedule login check: %w", err)
	}

	c.Start()
	<-ctx.Done()

	// Let an in-flight evaluation pass finish before returning.
	<-c.Stop().Done()
	return nil
}
