package buffer

import (
	"errors"
	"fmt"

	"github.com/rustyeddy/swapbuffer/market"
)

var ErrInvalidPattern = errors.New("invalid pattern")

// Pattern is one named monthly allocation, all amounts in JPY.
type Pattern struct {
	Name  string
	GBP   float64
	TRY   float64
	MXN1x float64
	MXN2x float64
	MXN3x float64
}

// MonthlyTotal is the cash contributed each month, ignoring leverage.
func (r Pattern) MonthlyTotal() float64 {
	return r.GBP + r.TRY + r.MXN1x + r.MXN2x + r.MXN3x
}

// MXNNotional weights each MXN tier by its leverage.
func (r Pattern) MXNNotional() float64 {
	return r.MXN1x*1 + r.MXN2x*2 + r.MXN3x*3
}

// Notional is the leverage-weighted monthly JPY exposure to c. A leveraged
// currency carries the tiered amounts; the others carry their cash leg.
func (r Pattern) Notional(c market.Currency) float64 {
	if market.Currencies[c].Leveraged {
		return r.MXNNotional()
	}
	switch c {
	case market.GBP:
		return r.GBP
	case market.TRY:
		return r.TRY
	}
	return 0
}

func (r Pattern) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidPattern)
	}
	legs := []struct {
		name string
		v    float64
	}{
		{"GBP", r.GBP},
		{"TRY", r.TRY},
		{"MXN_1x", r.MXN1x},
		{"MXN_2x", r.MXN2x},
		{"MXN_3x", r.MXN3x},
	}
	for _, l := range legs {
		if !finite(l.v) || l.v < 0 {
			return fmt.Errorf("%w: %s %s must be a finite amount >= 0 (got %v)", ErrInvalidPattern, r.Name, l.name, l.v)
		}
	}
	return nil
}

// ValidatePatterns returns the error of the first invalid row, numbered from 1.
func ValidatePatterns(rows []Pattern) error {
	for i, r := range rows {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("pattern %d: %w", i+1, err)
		}
	}
	return nil
}
