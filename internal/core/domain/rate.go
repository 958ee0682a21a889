package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Instrument identifies a quoted quantity tracked by the rate pipeline.
type Instrument string

const (
	// InstrumentUSD is quoted in BRL per 1 USD.
	InstrumentUSD Instrument = "USD"
	// InstrumentAluminum is quoted in USD per metric ton.
	InstrumentAluminum Instrument = "ALUMINUM"
)

// KnownInstruments returns every instrument the pipeline ingests.
// New instruments only need an entry here plus an adapter chain.
func KnownInstruments() []Instrument {
	return []Instrument{InstrumentUSD, InstrumentAluminum}
}

// ParseInstrument converts user input into an Instrument.
func ParseInstrument(s string) (Instrument, error) {
	candidate := Instrument(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range KnownInstruments() {
		if candidate == known {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown instrument %q", s)
}

// RateRecord is a single quotation observation. At most one record exists
// per (instrument, rate_date) pair; ingestion replaces same-day values.
type RateRecord struct {
	RateID     string          `json:"rateID"`
	Instrument Instrument      `json:"currency_type"`
	Rate       decimal.Decimal `json:"rate"`
	RateDate   time.Time       `json:"rate_date"`
	AuditFields
}

// HorizonVariation is the outcome of one lookback window. Every field is
// nullable: a horizon with no qualifying records reports absence, not zero.
type HorizonVariation struct {
	Current      *decimal.Decimal `json:"current"`
	Previous     *decimal.Decimal `json:"previous"`
	VariationPct *decimal.Decimal `json:"variation"`
	CurrentDate  *time.Time       `json:"current_date"`
	PreviousDate *time.Time       `json:"previous_date"`
}

// VariationReport groups the three standard horizons for one instrument.
type VariationReport struct {
	Instrument Instrument       `json:"type"`
	AsOf       time.Time        `json:"date"`
	Daily      HorizonVariation `json:"daily"`
	Weekly     HorizonVariation `json:"weekly"`
	Monthly    HorizonVariation `json:"monthly"`
}
