package report

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
)

var Columns = []string{
	"pattern",
	"monthly_total",
	"base_buffer",
	"expected_stress_loss",
	"total_buffer",
	"period_swap",
	"expected_pnl",
	"swap_to_buffer_pct",
	"pnl_to_buffer_pct",
}

func (r Row) cells() []string {
	return []string{
		r.Pattern,
		fmt.Sprintf("%d", r.MonthlyTotal),
		fmt.Sprintf("%d", r.BaseBuffer),
		fmt.Sprintf("%d", r.ExpectedStressLoss),
		fmt.Sprintf("%d", r.TotalBuffer),
		fmt.Sprintf("%d", r.PeriodSwap),
		fmt.Sprintf("%d", r.ExpectedPnL),
		fmt.Sprintf("%.2f", r.SwapToBufferPct),
		fmt.Sprintf("%.2f", r.PnLToBufferPct),
	}
}

// Table renders rows in the order given.
func Table(w io.Writer, rows []Row) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "no patterns")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header("Pattern", "Monthly", "Base buf", "Stress loss", "Total buf", "Swap", "Exp PnL", "Swap/buf %", "PnL/buf %")

	for _, r := range rows {
		if err := table.Append(r.cells()); err != nil {
			return err
		}
	}
	return table.Render()
}

// Summary writes the table followed by the model's caveats.
func Summary(w io.Writer, run Run) error {
	if _, err := fmt.Fprintf(w, "run %s  period %d months  target %.1f%%  ranked by %s\n\n",
		run.RunID, run.Params.PeriodMonths, run.Params.TargetMarginRatio*100, run.Rank); err != nil {
		return err
	}

	if err := Table(w, run.Rows); err != nil {
		return err
	}

	for _, line := range caveats {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

var caveats = []string{
	"  total buffer = base buffer (from M0/E0 and target ratio) + expected stress loss",
	"  stress loss  = contributed notional x leverage x gap width x gap probability",
	"  swap assumes a constant daily swap; a real gap can cost more than its expectation",
}
