package report

import (
	"encoding/csv"
	"io"
	"strconv"
)

// WriteCSV writes a header and one record per row. Money is whole yen,
// ratios are percentages with two decimals.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)

	header := append([]string{}, Columns[:2]...)
	header = append(header, "contribution_total")
	header = append(header, Columns[2:]...)
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, r := range rows {
		err := cw.Write([]string{
			r.Pattern,
			i(r.MonthlyTotal),
			i(r.ContributionTotal),
			i(r.BaseBuffer),
			i(r.ExpectedStressLoss),
			i(r.TotalBuffer),
			i(r.PeriodSwap),
			i(r.ExpectedPnL),
			pct(r.SwapToBufferPct),
			pct(r.PnLToBufferPct),
		})
		if err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func i(x int64) string {
	return strconv.FormatInt(x, 10)
}

func pct(x float64) string {
	return strconv.FormatFloat(x, 'f', 2, 64)
}
