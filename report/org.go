package report

import (
	"bytes"
	"fmt"
	"os"
	"text/template"
	"time"

	"github.com/rustyeddy/swapbuffer/market"
	"github.com/rustyeddy/swapbuffer/pkg/id"
)

var orgFuncs = template.FuncMap{
	"mul100":     func(x float64) float64 { return x * 100.0 },
	"short":      id.Short,
	"created":    createdAt,
	"currencies": func() []market.Currency { return market.Ordered },
	"pair":       func(c market.Currency) string { return c.Instrument() },
	"lot":        func(c market.Currency) float64 { return market.Currencies[c].LotSize },
}

// createdAt is the run's timestamp, falling back to the one in its run id.
func createdAt(run Run) time.Time {
	if !run.Created.IsZero() {
		return run.Created
	}
	if t, err := id.Time(run.RunID); err == nil {
		return t
	}
	return time.Now()
}

var orgTemplate = template.Must(template.New("run").Funcs(orgFuncs).Parse(RunOrgTemplate))

// Org renders run as an Org-mode block.
func Org(run Run) (string, error) {
	buf := new(bytes.Buffer)
	if err := orgTemplate.Execute(buf, run); err != nil {
		return "", fmt.Errorf("render org: %w", err)
	}
	return buf.String(), nil
}

// WriteOrg renders run into path.
func WriteOrg(path string, run Run) error {
	s, err := Org(run)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(s), 0644)
}

const RunOrgTemplate = `* SWAP BUFFER: {{len .Rows}} patterns, {{.Params.PeriodMonths}} months ({{short .RunID}})
:PROPERTIES:
:RUN_ID:      {{.RunID}}
:CREATED:     [{{(created .).Format "2006-01-02 Mon 15:04"}}]
:RANKED_BY:   {{.Rank}}
:M0:          {{printf "%.0f" .Params.StartingMargin}}
:E0:          {{printf "%.0f" .Params.StartingEquity}}
:TARGET_PCT:  {{printf "%.1f" (mul100 .Params.TargetMarginRatio)}}
:PERIOD:      {{.Params.PeriodMonths}}
:HOLD_ANNUAL: {{printf "%.1f" .Params.AvgHoldMonthsAnnual}}
:HOLD_PERIOD: {{printf "%.1f" .Params.AvgHoldMonthsPeriod}}
:END:

** Assumptions
| Currency | Pair | Rate | Daily swap | Lot | Gap width | Gap prob |
|----------+------+------+------------+-----+-----------+----------|
{{- $p := .Params }}
{{- range currencies }}
{{- $c := $p.Currency . }}
| {{.}} | {{pair .}} | {{printf "%.2f" $c.Rate}} | {{printf "%.0f" $c.DailySwap}} | {{printf "%.0f" (lot .)}} | {{printf "%.2f" $c.GapWidth}} | {{printf "%.2f" $c.GapProbability}} |
{{- end }}

** Results
| Pattern | Monthly | Base buf | Stress loss | Total buf | Swap | Exp PnL | Swap/buf % | PnL/buf % |
|---------+---------+----------+-------------+-----------+------+---------+------------+-----------|
{{- range .Rows }}
| {{.Pattern}} | {{.MonthlyTotal}} | {{.BaseBuffer}} | {{.ExpectedStressLoss}} | {{.TotalBuffer}} | {{.PeriodSwap}} | {{.ExpectedPnL}} | {{printf "%.2f" .SwapToBufferPct}} | {{printf "%.2f" .PnLToBufferPct}} |
{{- end }}
`
