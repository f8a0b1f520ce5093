package worker

// lowstock_cron.go
// Background goroutine that periodically sweeps the catalog for products at
// or below the restock threshold and enqueues alert jobs. A Redis SETNX key
// per product suppresses duplicate alerts for 24 hours.

import (
	"context"
	"time"

	"github.com/ShataAbiyyuPrasetyo/Elektronik-Shata/internal/ledger"
	"github.com/ShataAbiyyuPrasetyo/Elektronik-Shata/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	sweepTickInterval = 15 * time.Minute
	alertDedupTTL     = 24 * time.Hour
	alertDedupPrefix  = "alert:lowstock:"
)

// LowStockCronConfig holds all dependencies for the sweep goroutine.
type LowStockCronConfig struct {
	ProductRepo repository.ProductRepository
	Dispatcher  *Dispatcher
	RDB         *redis.Client
}

// StartLowStockCron launches a background goroutine that ticks every 15m,
// scans the catalog, and enqueues low-stock alerts.
// It respects the context for graceful shutdown.
func StartLowStockCron(ctx context.Context, cfg LowStockCronConfig) {
	go func() {
		ticker := time.NewTicker(sweepTickInterval)
		defer ticker.Stop()

		log.Info().Msg("lowstock_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("lowstock_cron: shutting down")
				return
			case <-ticker.C:
				sweepLowStock(ctx, cfg)
			}
		}
	}()
}

func sweepLowStock(ctx context.Context, cfg LowStockCronConfig) {
	products, err := cfg.ProductRepo.ListAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("lowstock_cron: failed to list products")
		return
	}

	enqueued := 0
	for i := range products {
		p := &products[i]
		if p.Stock > ledger.LowStockThreshold {
			continue
		}

		// SETNX dedup — only the first sweep within the TTL enqueues
		key := alertDedupPrefix + p.ID.String()
		ok, err := cfg.RDB.SetNX(ctx, key, "1", alertDedupTTL).Result()
		if err != nil {
			log.Error().Err(err).Str("product_id", p.ID.String()).Msg("lowstock_cron: dedup check failed")
			continue
		}
		if !ok {
			continue // already alerted recently
		}

		payload := LowStockAlertPayload{
			ProductID:   p.ID.String(),
			ProductName: p.Name,
			SKU:         p.SKU,
			Stock:       p.Stock,
		}
		if err := cfg.Dispatcher.EnqueueLowStockAlert(ctx, payload); err != nil {
			log.Error().Err(err).Str("product_id", p.ID.String()).Msg("lowstock_cron: enqueue failed")
			continue
		}
		enqueued++
	}

	if enqueued > 0 {
		log.Info().Int("count", enqueued).Msg("lowstock_cron: alerts enqueued")
	}
}
