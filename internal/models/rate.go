package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateRecord mirrors the currency_rates table. The composite unique key
// (currency_type, rate_date) backs the upsert used by ingestion.
type RateRecord struct {
	RateID       string          `db:"rate_id"`
	CurrencyType string          `db:"currency_type"`
	Rate         decimal.Decimal `db:"rate"`
	RateDate     time.Time       `db:"rate_date"`
	AuditFields
}
