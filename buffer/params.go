package buffer

import (
	"errors"
	"fmt"
	"math"

	"github.com/rustyeddy/swapbuffer/market"
)

var ErrInvalidParameter = errors.New("invalid parameter")

// MaxPeriodMonths bounds the accumulation period.
const MaxPeriodMonths = 24

type CurrencyParams struct {
	Rate           float64 // JPY per unit, e.g. 210.04
	DailySwap      float64 // JPY per lot per day
	GapWidth       float64 // 0.08 = 8%
	GapProbability float64 // probability of a gap within the period
}

// ParameterSet is read-only for the duration of a run.
type ParameterSet struct {
	StartingMargin    float64 // M0, JPY
	StartingEquity    float64 // E0, JPY
	TargetMarginRatio float64 // 1.60
	PeriodMonths      int

	Currencies map[market.Currency]CurrencyParams

	AvgHoldMonthsAnnual float64 // 6.5
	AvgHoldMonthsPeriod float64 // 3.5
}

// Currency returns the parameters for c; a missing currency yields zero values.
func (p ParameterSet) Currency(c market.Currency) CurrencyParams {
	return p.Currencies[c]
}

// Validate reports every out-of-domain field. Evaluate does not call it.
func (p ParameterSet) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidParameter}, args...)...))
	}

	if !finite(p.StartingMargin) || p.StartingMargin < 0 {
		bad("starting_margin must be >= 0 (got %v)", p.StartingMargin)
	}
	if !finite(p.StartingEquity) || p.StartingEquity < 0 {
		bad("starting_equity must be >= 0 (got %v)", p.StartingEquity)
	}
	if !finite(p.TargetMarginRatio) || p.TargetMarginRatio <= 0 {
		bad("target_margin_ratio must be positive (got %v)", p.TargetMarginRatio)
	}
	if p.PeriodMonths < 1 || p.PeriodMonths > MaxPeriodMonths {
		bad("period_months must be between 1 and %d (got %d)", MaxPeriodMonths, p.PeriodMonths)
	}
	if !finite(p.AvgHoldMonthsAnnual) || p.AvgHoldMonthsAnnual <= 0 {
		bad("avg_hold_months_annual must be positive (got %v)", p.AvgHoldMonthsAnnual)
	}
	if !finite(p.AvgHoldMonthsPeriod) || p.AvgHoldMonthsPeriod <= 0 {
		bad("avg_hold_months_period must be positive (got %v)", p.AvgHoldMonthsPeriod)
	}

	for _, c := range market.Ordered {
		cp, ok := p.Currencies[c]
		if !ok {
			bad("%s parameters missing", c)
			continue
		}
		if !finite(cp.Rate) || cp.Rate <= 0 {
			bad("%s rate must be positive (got %v)", c, cp.Rate)
		}
		if !finite(cp.GapWidth) || cp.GapWidth < 0 {
			bad("%s gap_width must be >= 0 (got %v)", c, cp.GapWidth)
		}
		if !(cp.GapProbability >= 0 && cp.GapProbability <= 1) {
			bad("%s gap_probability must be in [0,1] (got %v)", c, cp.GapProbability)
		}
		if !finite(cp.DailySwap) {
			bad("%s daily_swap must be finite (got %v)", c, cp.DailySwap)
		}
	}

	return errors.Join(errs...)
}

// finite rejects NaN and ±Inf, which slip past ordered comparisons.
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
