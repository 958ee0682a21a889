package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/Finger-Lab/olgacolor-back/internal/apperrors"
	"github.com/Finger-Lab/olgacolor-back/internal/core/domain"
	"github.com/Finger-Lab/olgacolor-back/internal/models"
	"github.com/Finger-Lab/olgacolor-back/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const marketColumns = `market_id, name, description, air_permeability, water_tightness,
	wind_resistance, acoustic_insulation, thermal_transmittance, glazing_thickness,
	width, height, weight, theoretical_thickness, created_at, last_updated_at`

// PgxMarketRepository implements the market repository ports using pgxpool.
type PgxMarketRepository struct {
	BaseRepository
}

// NewPgxMarketRepository creates a new PgxMarketRepository.
func NewPgxMarketRepository(db *pgxpool.Pool) *PgxMarketRepository {
	return &PgxMarketRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// SaveMarket inserts a new market catalog entry.
func (r *PgxMarketRepository) SaveMarket(ctx context.Context, market domain.Market) error {
	m := mapping.ToModelMarket(market)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO markets (`+marketColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		m.MarketID, m.Name, m.Description, m.AirPermeability, m.WaterTightness,
		m.WindResistance, m.AcousticInsulation, m.ThermalTransmittance, m.GlazingThickness,
		m.Width, m.Height, m.Weight, m.TheoreticalThickness, m.CreatedAt, m.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save market: %w", err)
	}
	return nil
}

// SaveMarketImages inserts the uploaded image rows for a market.
func (r *PgxMarketRepository) SaveMarketImages(ctx context.Context, images []domain.MarketImage) error {
	for _, img := range images {
		_, err := r.Pool.Exec(ctx, `
			INSERT INTO market_images (image_id, market_id, path)
			VALUES ($1, $2, $3)`,
			img.ImageID, img.MarketID, img.Path,
		)
		if err != nil {
			return fmt.Errorf("failed to save market image: %w", err)
		}
	}
	return nil
}

// FindMarketByID retrieves a market with its images.
func (r *PgxMarketRepository) FindMarketByID(ctx context.Context, marketID string) (*domain.Market, error) {
	var m models.Market
	err := r.Pool.QueryRow(ctx, `
		SELECT `+marketColumns+`
		FROM markets
		WHERE market_id = $1`, marketID).Scan(
		&m.MarketID, &m.Name, &m.Description, &m.AirPermeability, &m.WaterTightness,
		&m.WindResistance, &m.AcousticInsulation, &m.ThermalTransmittance, &m.GlazingThickness,
		&m.Width, &m.Height, &m.Weight, &m.TheoreticalThickness, &m.CreatedAt, &m.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find market: %w", err)
	}

	market := mapping.ToDomainMarket(m)
	images, err := r.imagesForMarkets(ctx, []string{market.MarketID})
	if err != nil {
		return nil, err
	}
	market.Images = images[market.MarketID]
	return &market, nil
}

// ListMarkets returns every market with its images, newest first.
func (r *PgxMarketRepository) ListMarkets(ctx context.Context) ([]domain.Market, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+marketColumns+`
		FROM markets
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list markets: %w", err)
	}
	defer rows.Close()

	var markets []domain.Market
	var ids []string
	for rows.Next() {
		var m models.Market
		if err := rows.Scan(
			&m.MarketID, &m.Name, &m.Description, &m.AirPermeability, &m.WaterTightness,
			&m.WindResistance, &m.AcousticInsulation, &m.ThermalTransmittance, &m.GlazingThickness,
			&m.Width, &m.Height, &m.Weight, &m.TheoreticalThickness, &m.CreatedAt, &m.LastUpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan market: %w", err)
		}
		markets = append(markets, mapping.ToDomainMarket(m))
		ids = append(ids, m.MarketID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating markets: %w", err)
	}
	if len(markets) == 0 {
		return []domain.Market{}, nil
	}

	images, err := r.imagesForMarkets(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range markets {
		markets[i].Images = images[markets[i].MarketID]
	}
	return markets, nil
}

func (r *PgxMarketRepository) imagesForMarkets(ctx context.Context, marketIDs []string) (map[string][]domain.MarketImage, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT image_id, market_id, path
		FROM market_images
		WHERE market_id = ANY($1)`, marketIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list market images: %w", err)
	}
	defer rows.Close()

	images := make(map[string][]domain.MarketImage)
	for rows.Next() {
		var m models.MarketImage
		if err := rows.Scan(&m.ImageID, &m.MarketID, &m.Path); err != nil {
			return nil, fmt.Errorf("failed to scan market image: %w", err)
		}
		images[m.MarketID] = append(images[m.MarketID], mapping.ToDomainMarketImage(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating market images: %w", err)
	}
	return images, nil
}
