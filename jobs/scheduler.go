// Package jobs runs the background maintenance schedule: warming the yield
// caches ahead of user traffic and recording stablecoin price snapshots.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"cryptotron-backend/database"
	"cryptotron-backend/defi"
	"cryptotron-backend/models"
	"cryptotron-backend/prices"
)

const snapshotBatchSize = 100

// Scheduler owns the cron runner. Job failures are logged and retried on the
// next tick, never fatal.
type Scheduler struct {
	cron   *cron.Cron
	agg    *defi.Aggregator
	oracle prices.Oracle
	log    zerolog.Logger
}

func NewScheduler(agg *defi.Aggregator, oracle prices.Oracle, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		agg:    agg,
		oracle: oracle,
		log:    log.With().Str("component", "scheduler").Logger(),
	}
}

// Start registers the recurring jobs and launches the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("@every 15m", s.warmYieldCaches); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("@every 10m", s.snapshotStablecoinPrices); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info().Msg("background jobs started")
	return nil
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info().Msg("background jobs stopped")
}

func (s *Scheduler) warmYieldCaches() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	opportunities := s.agg.AggregateAll(ctx, "")
	s.log.Info().Int("opportunities", len(opportunities)).Msg("yield caches warmed")
}

func (s *Scheduler) snapshotStablecoinPrices() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	coins := defi.SupportedStablecoins()
	ids := make([]string, 0, len(coins))
	idToSymbol := make(map[string]string, len(coins))
	for _, c := range coins {
		ids = append(ids, c.CoinGeckoID)
		idToSymbol[c.CoinGeckoID] = c.Symbol
	}

	quotes := s.oracle.Prices(ctx, ids)
	now := time.Now().UTC()

	snapshots := make([]models.PriceSnapshot, 0, len(quotes))
	for id, price := range quotes {
		if price == nil {
			continue
		}
		snapshots = append(snapshots, models.PriceSnapshot{
			CoinAPIID: id,
			Symbol:    idToSymbol[id],
			PriceUSD:  *price,
			Timestamp: now,
		})
	}
	if len(snapshots) == 0 {
		s.log.Warn().Msg("no stablecoin prices available, skipping snapshot")
		return
	}

	if err := database.CreateInBatches(snapshots, snapshotBatchSize); err != nil {
		s.log.Error().Err(err).Msg("failed to persist price snapshots")
		return
	}
	s.log.Info().Int("snapshots", len(snapshots)).Msg("stablecoin prices recorded")
}
