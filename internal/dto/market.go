package dto

import (
	"github.com/Finger-Lab/olgacolor-back/internal/core/domain"
)

// CreateMarketRequest defines the multipart form fields for creating a market.
type CreateMarketRequest struct {
	Name                 string  `form:"name" binding:"required"`
	Description          string  `form:"description" binding:"required"`
	AirPermeability      float64 `form:"air_permeability" binding:"required"`
	WaterTightness       float64 `form:"water_tightness" binding:"required"`
	WindResistance       float64 `form:"wind_resistance" binding:"required"`
	AcousticInsulation   float64 `form:"acoustic_insulation" binding:"required"`
	ThermalTransmittance float64 `form:"thermal_transmittance" binding:"required"`
	GlazingThickness     float64 `form:"glazing_thickness" binding:"required"`
	Width                float64 `form:"width" binding:"required"`
	Height               float64 `form:"height" binding:"required"`
	Weight               float64 `form:"weight" binding:"required"`
	TheoreticalThickness float64 `form:"theoretical_thickness" binding:"required"`
}

// MarketImageResponse is the API shape of one market image.
type MarketImageResponse struct {
	ImageID string `json:"imageID"`
	Path    string `json:"path"`
}

// MarketResponse is the API shape of one market catalog entry.
type MarketResponse struct {
	MarketID             string                `json:"marketID"`
	Name                 string                `json:"name"`
	Description          string                `json:"description"`
	AirPermeability      float64               `json:"air_permeability"`
	WaterTightness       float64               `json:"water_tightness"`
	WindResistance       float64               `json:"wind_resistance"`
	AcousticInsulation   float64               `json:"acoustic_insulation"`
	ThermalTransmittance float64               `json:"thermal_transmittance"`
	GlazingThickness     float64               `json:"glazing_thickness"`
	Width                float64               `json:"width"`
	Height               float64               `json:"height"`
	Weight               float64               `json:"weight"`
	TheoreticalThickness float64               `json:"theoretical_thickness"`
	Images               []MarketImageResponse `json:"images"`
}

// ToMarketResponse converts a domain Market to its API shape.
func ToMarketResponse(d *domain.Market) MarketResponse {
	images := make([]MarketImageResponse, len(d.Images))
	for i, img := range d.Images {
		images[i] = MarketImageResponse{ImageID: img.ImageID, Path: img.Path}
	}
	return MarketResponse{
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
		Images:               images,
	}
}

// ToListMarketResponse converts a slice of domain Markets to API shapes.
func ToListMarketResponse(ds []domain.Market) []MarketResponse {
	responses := make([]MarketResponse, len(ds))
	for i := range ds {
		responses[i] = ToMarketResponse(&ds[i])
	}
	return responses
}
