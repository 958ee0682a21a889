package models

// Market mirrors the markets table.
type Market struct {
	MarketID             string  `db:"market_id"`
	Name                 string  `db:"name"`
	Description          string  `db:"description"`
	AirPermeability      float64 `db:"air_permeability"`
	WaterTightness       float64 `db:"water_tightness"`
	WindResistance       float64 `db:"wind_resistance"`
	AcousticInsulation   float64 `db:"acoustic_insulation"`
	ThermalTransmittance float64 `db:"thermal_transmittance"`
	GlazingThickness     float64 `db:"glazing_thickness"`
	Width                float64 `db:"width"`
	Height               float64 `db:"height"`
	Weight               float64 `db:"weight"`
	TheoreticalThickness float64 `db:"theoretical_thickness"`
	AuditFields
}

// MarketImage mirrors the market_images table.
type MarketImage struct {
	ImageID  string `db:"image_id"`
	MarketID string `db:"market_id"`
	Path     string `db:"path"`
}
