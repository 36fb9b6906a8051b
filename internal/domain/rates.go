package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidRate indicates a non-positive production rate. A rate of zero
// or less would turn the day-count division into Inf/NaN, so configuration
// is rejected before it ever reaches the scheduler.
var ErrInvalidRate = errors.New("production rate must be positive")

// ProductionRates maps a lot number to its daily throughput in m² per
// working day.
type ProductionRates map[int]float64

// Validate rejects rates that cannot drive a schedule.
func (r ProductionRates) Validate() error {
	for lot, rate := range r {
		if rate <= 0 {
			return fmt.Errorf("lote %d: rate %.2f: %w", lot, rate, ErrInvalidRate)
		}
	}
	return nil
}

// Rate returns the configured rate for a lot, if any.
func (r ProductionRates) Rate(lot int) (float64, bool) {
	rate, ok := r[lot]
	return rate, ok
}

// RatesInput is the payload for the production-rate config endpoint.
// Keys are lot numbers encoded as strings ({"1": 25000, "2": 18000}).
type RatesInput struct {
	Rates map[string]float64 `json:"mowing_production_rate" binding:"required"`
}
