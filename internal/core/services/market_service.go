package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Finger-Lab/olgacolor-back/internal/core/domain"
	portsrepo "github.com/Finger-Lab/olgacolor-back/internal/core/ports/repositories"
	"github.com/Finger-Lab/olgacolor-back/internal/dto"
	"github.com/google/uuid"
)

// MarketService provides business logic for the product catalog.
type MarketService struct {
	marketRepo portsrepo.MarketRepositoryFacade
	now        func() time.Time
}

// NewMarketService creates a new MarketService.
func NewMarketService(marketRepo portsrepo.MarketRepositoryFacade) *MarketService {
	return &MarketService{
		marketRepo: marketRepo,
		now:        time.Now,
	}
}

// ListMarkets returns all catalog entries with their images.
func (s *MarketService) ListMarkets(ctx context.Context) ([]domain.Market, error) {
	markets, err := s.marketRepo.ListMarkets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list markets: %w", err)
	}
	return markets, nil
}

// CreateMarket persists a new catalog entry and its image records. The
// image files were already written to disk by the handler; imagePaths are
// their stored locations.
func (s *MarketService) CreateMarket(ctx context.Context, req dto.CreateMarketRequest, imagePaths []string) (*domain.Market, error) {
	now := s.now()
	market := domain.Market{
		MarketID:             uuid.NewString(),
		Name:                 req.Name,
		Description:          req.Description,
		AirPermeability:      req.AirPermeability,
		WaterTightness:       req.WaterTightness,
		WindResistance:       req.WindResistance,
		AcousticInsulation:   req.AcousticInsulation,
		ThermalTransmittance: req.ThermalTransmittance,
		GlazingThickness:     req.GlazingThickness,
		Width:                req.Width,
		Height:               req.Height,
		Weight:               req.Weight,
		TheoreticalThickness: req.TheoreticalThickness,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	for _, path := range imagePaths {
		market.Images = append(market.Images, domain.MarketImage{
			ImageID:  uuid.NewString(),
			MarketID: market.MarketID,
			Path:     path,
		})
	}

	if err := s.marketRepo.SaveMarket(ctx, market); err != nil {
		return nil, fmt.Errorf("failed to create market: %w", err)
	}
	if len(market.Images) > 0 {
		if err := s.marketRepo.SaveMarketImages(ctx, market.Images); err != nil {
			return nil, fmt.Errorf("failed to save market images: %w", err)
		}
	}
	return &market, nil
}
