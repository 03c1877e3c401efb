package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/swapbuffer/internal/cli/config"
	"github.com/rustyeddy/swapbuffer/internal/cli/eval"
)

const version = "1.0.0"

func NewRootCmd() *cobra.Command {
	rc := &config.RootConfig{}

	cmd := &cobra.Command{
		Use:   "swapbuf",
		Short: "Swap income vs. margin buffer estimator for FX accumulation",
		Long: `swapbuf compares monthly JPY contribution patterns across GBP, TRY and
leveraged MXN. For each pattern it estimates the extra cash needed to hold a
target maintenance margin ratio, the expected loss from currency gaps, and
the swap income over the accumulation period.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global / persistent flags
	cmd.PersistentFlags().StringVar(&rc.ConfigPath, "config", "", "Path to run config file (YAML or JSON, optional)")
	cmd.PersistentFlags().StringVar(&rc.LogLevel, "log-level", "", "Log level: debug|info|warn|error")
	cmd.PersistentFlags().BoolVar(&rc.Pretty, "pretty", false, "Human readable log output")

	cmd.AddCommand(
		eval.New(rc),
		config.New(rc),
	)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "swapbuf version %s\n", version)
		},
	})

	return cmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
