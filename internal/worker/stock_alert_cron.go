package worker

// stock_alert_cron.go
// Background goroutine that periodically sweeps the catalog for tracked
// products at or below their alert threshold and enqueues alert jobs.
// Covers alerts lost when the post-commit enqueue failed (Redis down,
// process crash between commit and enqueue).

import (
	"context"
	"fmt"
	"time"

	"github.com/kallesh653/smartcafee-sub000/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	sweepTickInterval = time.Hour
	// dedupeTTL suppresses repeat alerts for the same product within a day.
	dedupeTTL = 24 * time.Hour
)

// SweepConfig holds all dependencies for the low-stock sweep goroutine.
type SweepConfig struct {
	Products   repository.ProductRepository
	RDB        *redis.Client
	Dispatcher *Dispatcher
}

// StartLowStockSweep launches the hourly sweep. It respects the context for
// graceful shutdown.
func StartLowStockSweep(ctx context.Context, cfg SweepConfig) {
	go func() {
		ticker := time.NewTicker(sweepTickInterval)
		defer ticker.Stop()

		log.Info().Msg("stock_alert_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("stock_alert_cron: shutting down")
				return
			case <-ticker.C:
				sweepLowStock(ctx, cfg)
			}
		}
	}()
}

func sweepLowStock(ctx context.Context, cfg SweepConfig) {
	products, err := cfg.Products.ListBelowMinAlert(ctx)
	if err != nil {
		log.Error().Err(err).Msg("stock_alert_cron: query failed")
		return
	}
	if len(products) == 0 {
		return
	}

	enqueued := 0
	for i := range products {
		p := &products[i]

		// SETNX dedupe: at most one sweep alert per product per day.
		key := fmt.Sprintf("stockalert:%s:%s", time.Now().Format("2006-01-02"), p.ID)
		ok, err := cfg.RDB.SetNX(ctx, key, 1, dedupeTTL).Result()
		if err != nil || !ok {
			continue
		}

		payload := StockAlertPayload{
			ProductID:     p.ID.String(),
			Name:          p.Name,
			CurrentStock:  *p.CurrentStock,
			MinStockAlert: *p.MinStockAlert,
		}
		if err := cfg.Dispatcher.EnqueueStockAlert(ctx, payload); err != nil {
			log.Error().Err(err).Str("product", p.Name).Msg("stock_alert_cron: enqueue failed")
			continue
		}
		enqueued++
	}

	if enqueued > 0 {
		log.Info().Int("alerts", enqueued).Msg("stock_alert_cron: alerts enqueued")
	}
}
