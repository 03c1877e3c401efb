package buffer

import (
	"testing"

	"github.com/rustyeddy/swapbuffer/market"
	"github.com/stretchr/testify/assert"
)

func defaultParams() ParameterSet {
	return ParameterSet{
		StartingMargin:    44450,
		StartingEquity:    70800,
		TargetMarginRatio: 1.60,
		PeriodMonths:      6,
		Currencies: map[market.Currency]CurrencyParams{
			market.GBP: {Rate: 210.04, DailySwap: 178, GapWidth: 0.08, GapProbability: 0.05},
			market.MXN: {Rate: 9.03, DailySwap: 150, GapWidth: 0.12, GapProbability: 0.10},
			market.TRY: {Rate: 3.46, DailySwap: 28, GapWidth: 0.20, GapProbability: 0.30},
		},
		AvgHoldMonthsAnnual: 6.5,
		AvgHoldMonthsPeriod: 3.5,
	}
}

var p2 = Pattern{Name: "P2", GBP: 7000, TRY: 4000, MXN3x: 5000}

func TestExpectedStressLoss(t *testing.T) {
	t.Parallel()

	p := defaultParams()

	tests := []struct {
		name string
		row  Pattern
		want float64
	}{
		{"zero", Pattern{Name: "z"}, 0},
		{"gbp only", Pattern{GBP: 7000}, 168},
		{"try only", Pattern{TRY: 4000}, 1440},
		{"mxn 3x", Pattern{MXN3x: 5000}, 1080},
		{"P2", p2, 2688},
		{"negative propagates", Pattern{GBP: -7000}, -168},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, ExpectedStressLoss(p, tt.row), 1e-9)
		})
	}
}

func TestExpectedStressLoss_Linear(t *testing.T) {
	t.Parallel()

	p := defaultParams()
	base := ExpectedStressLoss(p, Pattern{TRY: 1000})
	for _, k := range []float64{0, 0.5, 2, 7} {
		got := ExpectedStressLoss(p, Pattern{TRY: 1000 * k})
		assert.InDelta(t, base*k, got, 1e-9, "k=%v", k)
	}
}

func TestLeverageWeighting(t *testing.T) {
	t.Parallel()

	p := defaultParams()
	one := Pattern{MXN1x: 1000}
	two := Pattern{MXN2x: 1000}
	three := Pattern{MXN3x: 1000}

	l1 := ExpectedStressLoss(p, one)
	assert.InDelta(t, 2*l1, ExpectedStressLoss(p, two), 1e-9)
	assert.InDelta(t, 3*l1, ExpectedStressLoss(p, three), 1e-9)

	s1 := AnnualSwapEstimate(p, one)
	assert.InDelta(t, 2*s1, AnnualSwapEstimate(p, two), 1e-9)
	assert.InDelta(t, 3*s1, AnnualSwapEstimate(p, three), 1e-9)
}

func TestGapProbabilityDoesNotScaleWithPeriod(t *testing.T) {
	t.Parallel()

	p := defaultParams()
	short := ExpectedStressLoss(p, Pattern{GBP: 1000})
	p.PeriodMonths = 12
	long := ExpectedStressLoss(p, Pattern{GBP: 1000})

	// only the contributed notional doubles
	assert.InDelta(t, 2*short, long, 1e-9)
}

func TestBaseBuffer(t *testing.T) {
	t.Parallel()

	p := defaultParams()

	// 1.60*(44450+96000) - (70800+96000)
	assert.InDelta(t, 57920.0, BaseBuffer(p, 16000), 1e-9)
	assert.InDelta(t, 96000.0, ContributionTotal(p, 16000), 1e-9)

	// 1.60*44450 - 70800 = 320
	assert.InDelta(t, 320.0, BaseBuffer(p, 0), 1e-9)
}

func TestBaseBuffer_Clamped(t *testing.T) {
	t.Parallel()

	p := defaultParams()
	p.StartingEquity = 1_000_000

	assert.Equal(t, 0.0, BaseBuffer(p, 16000))

	for _, monthly := range []float64{0, 100, 16000, 1e6} {
		for _, equity := range []float64{0, 70800, 5e5, 1e7} {
			p.StartingEquity = equity
			c := monthly * float64(p.PeriodMonths)
			raw := p.TargetMarginRatio*(p.StartingMargin+c) - (p.StartingEquity + c)
			want := raw
			if want < 0 {
				want = 0
			}
			got := BaseBuffer(p, monthly)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.InDelta(t, want, got, 1e-6)
		}
	}
}

func TestAnnualSwapEstimate(t *testing.T) {
	t.Parallel()

	p := defaultParams()

	gbp := 7000 / 210.04 / 10_000 * 178 * 365 * 6.5
	try := 4000 / 3.46 / 10_000 * 28 * 365 * 6.5
	mxn := 5000 * 3 / 9.03 / 100_000 * 150 * 365 * 6.5

	got := AnnualSwapEstimate(p, p2)
	assert.InDelta(t, gbp+try+mxn, got, 1e-9)
	assert.InDelta(t, 14998.7289, got, 1e-3)
}

func TestPeriodSwap(t *testing.T) {
	t.Parallel()

	p := defaultParams()
	assert.InDelta(t, 3500.0, PeriodSwap(p, 6500), 1e-9)
	assert.InDelta(t, 8076.2386, PeriodSwap(p, AnnualSwapEstimate(p, p2)), 1e-3)
}

func TestRatio(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.0, ratio(10, 0))
	assert.Equal(t, 0.0, ratio(10, -5))
	assert.InDelta(t, 0.5, ratio(1, 2), 1e-12)
}
