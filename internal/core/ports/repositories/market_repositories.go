package repositories

import (
	"context"

	"github.com/Finger-Lab/olgacolor-back/internal/core/domain"
)

// MarketReader defines read operations for market catalog entries.
type MarketReader interface {
	ListMarkets(ctx context.Context) ([]domain.Market, error)
	FindMarketByID(ctx context.Context, marketID string) (*domain.Market, error)
}

// MarketWriter defines write operations for market catalog entries.
type MarketWriter interface {
	SaveMarket(ctx context.Context, market domain.Market) error
	SaveMarketImages(ctx context.Context, images []domain.MarketImage) error
}

// MarketRepositoryFacade combines all market repository interfaces.
type MarketRepositoryFacade interface {
	MarketReader
	MarketWriter
}
