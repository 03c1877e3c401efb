package eval

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/swapbuffer/buffer"
	appconfig "github.com/rustyeddy/swapbuffer/config"
	"github.com/rustyeddy/swapbuffer/internal/cli/config"
	"github.com/rustyeddy/swapbuffer/pkg/logger"
	"github.com/rustyeddy/swapbuffer/report"
)

func New(rc *config.RootConfig) *cobra.Command {
	var (
		patternsPath string
		format       string
		rank         string
		outputPath   string
		periodMonths int
	)

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Estimate buffers and swap income for each pattern",
		Long: `Evaluate every contribution pattern against the run parameters and print
the comparison ranked by swap/buffer (or expected PnL/buffer).

Examples:
  swapbuf eval
  swapbuf eval --config run.yaml --format org --output run.org
  swapbuf eval --patterns patterns.csv --period 12 --rank pnl`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rc.Load()
			if err != nil {
				return err
			}

			// flags override the file
			if patternsPath != "" {
				rows, err := appconfig.LoadPatternsCSV(patternsPath)
				if err != nil {
					return err
				}
				cfg.Patterns = nil
				cfg.AddPatterns(rows)
			}
			if format != "" {
				cfg.Output.Format = format
			}
			if rank != "" {
				cfg.Output.Rank = rank
			}
			if outputPath != "" {
				cfg.Output.Path = outputPath
			}
			if periodMonths != 0 {
				cfg.Params.PeriodMonths = periodMonths
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid input: %w", err)
			}

			log := rc.Logger(cfg, logger.Config{Out: cmd.ErrOrStderr()})

			key, err := buffer.ParseRankKey(cfg.Output.Rank)
			if err != nil {
				return err
			}
			params := cfg.ParameterSet()
			patterns := cfg.PatternRows()

			log.Info().
				Int("patterns", len(patterns)).
				Int("period_months", params.PeriodMonths).
				Float64("target_ratio", params.TargetMarginRatio).
				Str("rank", string(key)).
				Msg("evaluating")

			run := report.NewRun(params, patterns, key, time.Now())
			for _, r := range run.Rows {
				log.Debug().
					Str("pattern", r.Pattern).
					Int64("total_buffer", r.TotalBuffer).
					Int64("period_swap", r.PeriodSwap).
					Float64("swap_to_buffer_pct", r.SwapToBufferPct).
					Msg("evaluated")
			}

			if err := write(cmd.OutOrStdout(), cfg.Output, run); err != nil {
				log.Error().Err(err).Str("path", cfg.Output.Path).Msg("render")
				return err
			}

			if cfg.Output.Path != "" {
				log.Info().Str("run_id", run.RunID).Str("path", cfg.Output.Path).Msg("report written")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&patternsPath, "patterns", "", "CSV of patterns (name,GBP,TRY,MXN_1x,MXN_2x,MXN_3x); replaces configured patterns")
	cmd.Flags().StringVar(&format, "format", "", "Output format: table|csv|org")
	cmd.Flags().StringVar(&rank, "rank", "", "Rank by: swap|pnl")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().IntVar(&periodMonths, "period", 0, "Accumulation period in months (1-24)")

	return cmd
}

// write renders run to out, or to the configured path when one is set.
func write(out io.Writer, oc appconfig.OutputConfig, run report.Run) (err error) {
	if oc.Path == "" {
		return render(out, oc.Format, run)
	}
	if oc.Format == "org" {
		return report.WriteOrg(oc.Path, run)
	}

	f, err := os.Create(oc.Path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close output: %w", cerr)
		}
	}()
	return render(f, oc.Format, run)
}

func render(w io.Writer, format string, run report.Run) error {
	switch format {
	case "csv":
		return report.WriteCSV(w, run.Rows)
	case "org":
		s, err := report.Org(run)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, s)
		return err
	default:
		return report.Summary(w, run)
	}
}
