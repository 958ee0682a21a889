package mapping

import (
	"github.com/Finger-Lab/olgacolor-back/internal/core/domain"
	"github.com/Finger-Lab/olgacolor-back/internal/models"
)

// ToModelMarket converts a domain Market to a model Market.
func ToModelMarket(d domain.Market) models.Market {
	return models.Market{
		MarketID:             d.MarketID,
		Name:                 d.Name,
		Description:          d.Description,
		AirPermeability:      d.AirPermeability,
		WaterTightness:       d.WaterTightness,
		WindResistance:       d.WindResistance,
		AcousticInsulation:   d.AcousticInsulation,
		ThermalTransmittance: d.ThermalTransmittance,
		GlazingThickness:     d.GlazingThickness,
		Width:                d.Width,
		Height:               d.Height,
		Weight:               d.Weight,
		TheoreticalThickness: d.TheoreticalThickness,
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainMarket converts a model Market to a domain Market.
func ToDomainMarket(m models.Market) domain.Market {
	return domain.Market{
		MarketID:             m.MarketID,
		Name:                 m.Name,
		Description:          m.Description,
		AirPermeability:      m.AirPermeability,
		WaterTightness:       m.WaterTightness,
		WindResistance:       m.WindResistance,
		AcousticInsulation:   m.AcousticInsulation,
		ThermalTransmittance: m.ThermalTransmittance,
		GlazingThickness:     m.GlazingThickness,
		Width:                m.Width,
		Height:               m.Height,
		Weight:               m.Weight,
		TheoreticalThickness: m.TheoreticalThickness,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainMarketImage converts a model MarketImage to a domain MarketImage.
func ToDomainMarketImage(m models.MarketImage) domain.MarketImage {
	return domain.MarketImage{
		ImageID:  m.ImageID,
		MarketID: m.MarketID,
		Path:     m.Path,
	}
}
