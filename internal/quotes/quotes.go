// Package quotes contains the upstream adapters that acquire a single
// quotation per instrument. Adapters share one contract: return a validated
// positive value, or ErrUnavailable for every expected failure mode (network
// error, timeout, non-2xx status, missing field, malformed page, implausible
// value, missing configuration). The ingestion orchestrator recovers from
// ErrUnavailable by moving to the next adapter in the chain.
package quotes

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// ErrUnavailable signals that an upstream could not produce a usable quote.
var ErrUnavailable = errors.New("quote source unavailable")

// Source is a single upstream able to quote one instrument.
type Source interface {
	Name() string
	FetchQuote(ctx context.Context) (decimal.Decimal, error)
}
