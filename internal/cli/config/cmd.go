package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	appconfig "github.com/rustyeddy/swapbuffer/config"
)

func New(rc *RootConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Generate or validate run configuration files",
		Long: `Manage run configuration files.

Subcommands:
  init     - Generate a default configuration file
  validate - Validate an existing configuration file

Examples:
  swapbuf config init -o run.yaml --patterns-out patterns.csv
  swapbuf config validate -f run.yaml`,
	}

	cmd.AddCommand(
		newInitCmd(rc),
		newValidateCmd(rc),
	)
	return cmd
}

func newInitCmd(rc *RootConfig) *cobra.Command {
	var (
		output      string
		patternsOut string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := appconfig.Default()

			if patternsOut != "" {
				if err := writePatterns(patternsOut, cfg); err != nil {
					return err
				}
				cfg.Patterns = nil
				cfg.PatternsFile = relativeTo(output, patternsOut)
			}

			if err := cfg.SaveToFile(output); err != nil {
				return fmt.Errorf("save config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "✓ Created default configuration: %s\n", output)
			if patternsOut != "" {
				fmt.Fprintf(out, "✓ Created patterns: %s\n", patternsOut)
			}
			fmt.Fprintln(out, "\nEdit the file and run with:")
			fmt.Fprintf(out, "  swapbuf eval --config %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "swapbuf.yaml", "output config file path")
	cmd.Flags().StringVar(&patternsOut, "patterns-out", "", "also write the default patterns to this CSV and reference it")
	return cmd
}

func newValidateCmd(rc *RootConfig) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				path = rc.ConfigPath
			}
			if path == "" {
				return fmt.Errorf("--file is required")
			}

			cfg, err := appconfig.LoadFromFile(path)
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}

			p := cfg.ParameterSet()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "✓ Configuration valid: %s\n", path)
			fmt.Fprintf(out, "  Start: M0 %.0f / E0 %.0f JPY, target %.1f%%\n", p.StartingMargin, p.StartingEquity, p.TargetMarginRatio*100)
			fmt.Fprintf(out, "  Period: %d months\n", p.PeriodMonths)
			fmt.Fprintf(out, "  Patterns: %d\n", len(cfg.Patterns))
			fmt.Fprintf(out, "  Output: %s ranked by %s\n", cfg.Output.Format, cfg.Output.Rank)
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "file", "f", "", "path to config file (defaults to --config)")
	return cmd
}

func writePatterns(path string, cfg *appconfig.Config) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create patterns file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close patterns file: %w", cerr)
		}
	}()
	if err := appconfig.WritePatternsCSV(f, cfg.PatternRows()); err != nil {
		return fmt.Errorf("write patterns file: %w", err)
	}
	return nil
}

// relativeTo expresses target relative to the directory of configPath, the
// way LoadFromFile resolves patterns_file.
func relativeTo(configPath, target string) string {
	base, err := filepath.Abs(filepath.Dir(configPath))
	if err != nil {
		return target
	}
	abs, err := filepath.Abs(target)
	if err != nil {
		return target
	}
	rel, err := filepath.Rel(base, abs)
	if err != nil {
		return abs
	}
	return rel
}
