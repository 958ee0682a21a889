// Command seed fills the rate store with a month of demo quotations so the
// site charts have data to show during development.
package main

import (
	"context"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/Finger-Lab/olgacolor-back/internal/core/domain"
	"github.com/Finger-Lab/olgacolor-back/internal/platform/config"
	"github.com/Finger-Lab/olgacolor-back/internal/repositories/database/pgsql"
	"github.com/Finger-Lab/olgacolor-back/pkg/database"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const seedDays = 30

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()
	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)

	repos := pgsql.NewRepositoryContainer(dbPool)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	now := time.Now()

	// Random walks around plausible anchors: ~5.30 BRL/USD, ~2400 USD/ton.
	usd := 5.30
	aluminum := 2400.0

	seeded := 0
	for i := seedDays - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		date := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

		usd += (rng.Float64() - 0.5) * 0.08
		aluminum += (rng.Float64() - 0.5) * 40

		records := []domain.RateRecord{
			{
				RateID:     uuid.NewString(),
				Instrument: domain.InstrumentUSD,
				Rate:       decimal.NewFromFloat(usd).Round(4),
				RateDate:   date,
			},
			{
				RateID:     uuid.NewString(),
				Instrument: domain.InstrumentAluminum,
				Rate:       decimal.NewFromFloat(aluminum).Round(2),
				RateDate:   date,
			},
		}
		for _, record := range records {
			record.CreatedAt = now
			record.LastUpdatedAt = now
			if err := repos.Rate.UpsertRate(ctx, record); err != nil {
				logger.Error("Failed to seed rate",
					slog.String("instrument", string(record.Instrument)),
					slog.String("date", date.Format("2006-01-02")),
					slog.String("error", err.Error()),
				)
				os.Exit(1)
			}
			seeded++
		}
	}

	logger.Info("Seed completed", slog.Int("records", seeded), slog.Int("days", seedDays))
}
