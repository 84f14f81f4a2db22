package components

import (
	"context"
	"log/slog"

	"tutorin/internal/pkg/config"
	"tutorin/internal/usecase/commands"

	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
)

// SweeperModule schedules the overdue-payment sweep. Expiry is also applied
// lazily on read, so a missed tick only delays slot release.
var SweeperModule = fx.Module("sweeper",
	fx.Invoke(RegisterPaymentSweeper),
)

func RegisterPaymentSweeper(lc fx.Lifecycle, cfg config.Config, payments commands.PaymentCommands, logger *slog.Logger) error {
	c := cron.New()
	_, err := c.AddFunc(cfg.Payment.SweepSchedule, func() {
		n, err := payments.ExpireOverdue(context.Background())
		if err != nil {
			logger.Error("payment sweep failed", "error", err)
			return
		}
		if n > 0 {
			logger.Info("expired overdue payments", "count", n)
		}
	})
	if err != nil {
		return err
	}

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			c.Start()
			return nil
		},
		OnStop: func(_ context.Context) error {
			<-c.Stop().Done()
			return nil
		},
	})
	return nil
}
