package services

import (
	"context"

	"github.com/Finger-Lab/olgacolor-back/internal/core/domain"
	"github.com/Finger-Lab/olgacolor-back/internal/dto"
)

// MarketSvcFacade exposes the market catalog operations.
type MarketSvcFacade interface {
	ListMarkets(ctx context.Context) ([]domain.Market, error)
	// CreateMarket persists the catalog entry plus the already-stored image paths.
	CreateMarket(ctx context.Context, req dto.CreateMarketRequest, imagePaths []string) (*domain.Market, error)
}
