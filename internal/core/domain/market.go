package domain

// Market is a catalog entry for an aluminum frame product line.
type Market struct {
	MarketID             string        `json:"marketID"`
	Name                 string        `json:"name"`
	Description          string        `json:"description"`
	AirPermeability      float64       `json:"air_permeability"`
	WaterTightness       float64       `json:"water_tightness"`
	WindResistance       float64       `json:"wind_resistance"`
	AcousticInsulation   float64       `json:"acoustic_insulation"`
	ThermalTransmittance float64       `json:"thermal_transmittance"`
	GlazingThickness     float64       `json:"glazing_thickness"`
	Width                float64       `json:"width"`
	Height               float64       `json:"height"`
	Weight               float64       `json:"weight"`
	TheoreticalThickness float64       `json:"theoretical_thickness"`
	Images               []MarketImage `json:"images"`
	AuditFields
}

// MarketImage is an uploaded product photo stored on local disk.
type MarketImage struct {
	ImageID  string `json:"imageID"`
	MarketID string `json:"marketID"`
	Path     string `json:"path"`
}
