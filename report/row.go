package report

import (
	"math"

	"github.com/rustyeddy/swapbuffer/buffer"
)

// Row is the display form of buffer.Metrics: whole yen and percentages to
// two decimals. Rounding is half to even.
type Row struct {
	Pattern            string
	MonthlyTotal       int64
	ContributionTotal  int64
	BaseBuffer         int64
	ExpectedStressLoss int64
	TotalBuffer        int64
	PeriodSwap         int64
	ExpectedPnL        int64
	SwapToBufferPct    float64
	PnLToBufferPct     float64
}

func Yen(x float64) int64 {
	return int64(math.RoundToEven(x))
}

// Pct converts a fraction to a percentage rounded to two decimals.
func Pct(fraction float64) float64 {
	return math.RoundToEven(fraction*100*100) / 100
}

func NewRow(m buffer.Metrics) Row {
	return Row{
		Pattern:            m.Pattern.Name,
		MonthlyTotal:       int64(m.MonthlyTotal),
		ContributionTotal:  int64(m.ContributionTotal),
		BaseBuffer:         Yen(m.BaseBuffer),
		ExpectedStressLoss: Yen(m.ExpectedStressLoss),
		TotalBuffer:        Yen(m.TotalBuffer),
		PeriodSwap:         Yen(m.PeriodSwap),
		ExpectedPnL:        Yen(m.ExpectedPnL),
		SwapToBufferPct:    Pct(m.SwapToBuffer),
		PnLToBufferPct:     Pct(m.PnLToBuffer),
	}
}

// Rows keeps the order of ms.
func Rows(ms []buffer.Metrics) []Row {
	out := make([]Row, 0, len(ms))
	for _, m := range ms {
		out = append(out, NewRow(m))
	}
	return out
}
