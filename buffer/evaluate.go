package buffer

// Metrics is derived from one Pattern and discarded after reporting.
type Metrics struct {
	Pattern Pattern

	MonthlyTotal      float64
	ContributionTotal float64

	BaseBuffer         float64
	ExpectedStressLoss float64
	TotalBuffer        float64

	AnnualSwapEstimate float64
	PeriodSwap         float64
	ExpectedPnL        float64

	SwapToBuffer float64 // fraction, 0 when TotalBuffer is 0
	PnLToBuffer  float64 // fraction, 0 when TotalBuffer is 0
}

func Evaluate(p ParameterSet, r Pattern) Metrics {
	m := Metrics{Pattern: r}

	m.MonthlyTotal = r.MonthlyTotal()
	m.ContributionTotal = ContributionTotal(p, m.MonthlyTotal)

	m.BaseBuffer = BaseBuffer(p, m.MonthlyTotal)
	m.ExpectedStressLoss = ExpectedStressLoss(p, r)
	m.TotalBuffer = m.BaseBuffer + m.ExpectedStressLoss

	m.AnnualSwapEstimate = AnnualSwapEstimate(p, r)
	m.PeriodSwap = PeriodSwap(p, m.AnnualSwapEstimate)
	m.ExpectedPnL = m.PeriodSwap - m.ExpectedStressLoss

	m.SwapToBuffer = ratio(m.PeriodSwap, m.TotalBuffer)
	m.PnLToBuffer = ratio(m.ExpectedPnL, m.TotalBuffer)

	return m
}

// EvaluateAll returns one Metrics per row, in input order.
func EvaluateAll(p ParameterSet, rows []Pattern) []Metrics {
	out := make([]Metrics, 0, len(rows))
	for _, r := range rows {
		out = append(out, Evaluate(p, r))
	}
	return out
}
