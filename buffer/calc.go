package buffer

import "github.com/rustyeddy/swapbuffer/market"

const daysPerYear = 365

// ExpectedStressLoss is the expected JPY loss from currency gaps over the
// period: contributed notional × tier × gap width × gap probability, summed
// over legs. No ordering or compounding across months is modeled.
func ExpectedStressLoss(p ParameterSet, r Pattern) float64 {
	months := float64(p.PeriodMonths)

	var loss float64
	for _, c := range market.Ordered {
		cp := p.Currency(c)
		loss += r.Notional(c) * months * cp.GapWidth * cp.GapProbability
	}
	return loss
}

// ContributionTotal is C, the cash added over the whole period.
func ContributionTotal(p ParameterSet, monthlyTotal float64) float64 {
	return monthlyTotal * float64(p.PeriodMonths)
}

// BaseBuffer is the extra equity needed so that contributions, which add
// equally to margin and equity, keep the account at the target ratio.
// Never negative.
func BaseBuffer(p ParameterSet, monthlyTotal float64) float64 {
	c := ContributionTotal(p, monthlyTotal)
	base := p.TargetMarginRatio*(p.StartingMargin+c) - (p.StartingEquity + c)
	if base < 0 {
		return 0
	}
	return base
}

// legSwap is the annualized swap of holding notionalJPY of one currency.
func legSwap(p ParameterSet, c market.Currency, notionalJPY float64) float64 {
	meta := market.Currencies[c]
	cp := p.Currency(c)
	units := market.UnitsFromJPY(notionalJPY, cp.Rate)
	return meta.Lots(units) * cp.DailySwap * daysPerYear * p.AvgHoldMonthsAnnual
}

// AnnualSwapEstimate is the historically calibrated annual carry figure,
// assuming a constant daily swap.
func AnnualSwapEstimate(p ParameterSet, r Pattern) float64 {
	var annual float64
	for _, c := range market.Ordered {
		annual += legSwap(p, c, r.Notional(c))
	}
	return annual
}

// PeriodSwap remaps an annual estimate onto the accumulation period.
func PeriodSwap(p ParameterSet, annual float64) float64 {
	return annual * (p.AvgHoldMonthsPeriod / p.AvgHoldMonthsAnnual)
}

// ratio returns num/den, or 0 when den is not positive.
func ratio(num, den float64) float64 {
	if den > 0 {
		return num / den
	}
	return 0
}
