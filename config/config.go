package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/swapbuffer/buffer"
	"github.com/rustyeddy/swapbuffer/market"
)

// Config represents a complete estimation run
type Config struct {
	Params       ParamsConfig    `json:"params" yaml:"params"`
	Patterns     []PatternConfig `json:"patterns,omitempty" yaml:"patterns,omitempty"`
	PatternsFile string          `json:"patterns_file,omitempty" yaml:"patterns_file,omitempty"`
	Output       OutputConfig    `json:"output" yaml:"output"`
	Log          LogConfig       `json:"log" yaml:"log"`
}

// ParamsConfig mirrors buffer.ParameterSet with the target ratio in percent
type ParamsConfig struct {
	StartingMargin      float64                            `json:"starting_margin" yaml:"starting_margin"`
	StartingEquity      float64                            `json:"starting_equity" yaml:"starting_equity"`
	TargetMarginPct     float64                            `json:"target_margin_pct" yaml:"target_margin_pct"` // 160 = 160%
	PeriodMonths        int                                `json:"period_months" yaml:"period_months"`
	AvgHoldMonthsAnnual float64                            `json:"avg_hold_months_annual" yaml:"avg_hold_months_annual"`
	AvgHoldMonthsPeriod float64                            `json:"avg_hold_months_period" yaml:"avg_hold_months_period"`
	Currencies          map[market.Currency]CurrencyConfig `json:"currencies" yaml:"currencies"`
}

// CurrencyConfig contains the market assumptions for one currency
type CurrencyConfig struct {
	Rate           float64 `json:"rate" yaml:"rate"`
	DailySwap      float64 `json:"daily_swap" yaml:"daily_swap"`
	GapWidth       float64 `json:"gap_width" yaml:"gap_width"`
	GapProbability float64 `json:"gap_probability" yaml:"gap_probability"`
}

// PatternConfig is one monthly allocation in JPY
type PatternConfig struct {
	Name  string  `json:"name" yaml:"name"`
	GBP   float64 `json:"gbp" yaml:"gbp"`
	TRY   float64 `json:"try" yaml:"try"`
	MXN1x float64 `json:"mxn_1x" yaml:"mxn_1x"`
	MXN2x float64 `json:"mxn_2x" yaml:"mxn_2x"`
	MXN3x float64 `json:"mxn_3x" yaml:"mxn_3x"`
}

// OutputConfig controls how results are rendered
type OutputConfig struct {
	Format string `json:"format" yaml:"format"` // "table", "csv" or "org"
	Rank   string `json:"rank" yaml:"rank"`     // "swap" or "pnl"
	Path   string `json:"path,omitempty" yaml:"path,omitempty"`
}

// LogConfig controls the logger
type LogConfig struct {
	Level  string `json:"level" yaml:"level"` // debug | info | warn | error
	Pretty bool   `json:"pretty" yaml:"pretty"`
}

var (
	formats   = []string{"table", "csv", "org"}
	logLevels = []string{"debug", "info", "warn", "error"}
)

// LoadFromFile loads configuration from a file and validates it.
func LoadFromFile(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Load reads a config file (YAML, falling back to JSON), appends the rows of
// patterns_file and applies environment overrides (see ApplyEnv). The result
// is not validated, so callers can layer flags on top before calling Validate.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if cfg.PatternsFile != "" {
		pf := cfg.PatternsFile
		if !filepath.IsAbs(pf) {
			pf = filepath.Join(filepath.Dir(path), pf)
		}
		rows, err := LoadPatternsCSV(pf)
		if err != nil {
			return nil, err
		}
		cfg.AddPatterns(rows)
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	setDefaults(cfg)

	return cfg, nil
}

// SaveToFile saves configuration to a file (YAML for .yaml/.yml, JSON otherwise)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// ApplyEnv overrides values with SWAPBUF_* environment variables when set.
// A .env file in the working directory is loaded first if present.
func (c *Config) ApplyEnv() error {
	_ = godotenv.Load()

	if v := os.Getenv("SWAPBUF_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("SWAPBUF_LOG_PRETTY"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("SWAPBUF_LOG_PRETTY: %w", err)
		}
		c.Log.Pretty = b
	}
	if v := os.Getenv("SWAPBUF_OUTPUT_FORMAT"); v != "" {
		c.Output.Format = v
	}
	if v := os.Getenv("SWAPBUF_PERIOD_MONTHS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SWAPBUF_PERIOD_MONTHS: %w", err)
		}
		c.Params.PeriodMonths = n
	}
	return nil
}

func setDefaults(c *Config) {
	if c.Output.Format == "" {
		c.Output.Format = "table"
	}
	if c.Output.Rank == "" {
		c.Output.Rank = string(buffer.RankBySwap)
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// AddPatterns appends rows after any inline patterns.
func (c *Config) AddPatterns(rows []buffer.Pattern) {
	for _, r := range rows {
		c.Patterns = append(c.Patterns, PatternConfig{
			Name:  r.Name,
			GBP:   r.GBP,
			TRY:   r.TRY,
			MXN1x: r.MXN1x,
			MXN2x: r.MXN2x,
			MXN3x: r.MXN3x,
		})
	}
}

// ParameterSet converts the params section for the estimator.
func (c *Config) ParameterSet() buffer.ParameterSet {
	p := buffer.ParameterSet{
		StartingMargin:      c.Params.StartingMargin,
		StartingEquity:      c.Params.StartingEquity,
		TargetMarginRatio:   c.Params.TargetMarginPct / 100.0,
		PeriodMonths:        c.Params.PeriodMonths,
		AvgHoldMonthsAnnual: c.Params.AvgHoldMonthsAnnual,
		AvgHoldMonthsPeriod: c.Params.AvgHoldMonthsPeriod,
		Currencies:          make(map[market.Currency]buffer.CurrencyParams, len(c.Params.Currencies)),
	}
	for code, cc := range c.Params.Currencies {
		p.Currencies[code] = buffer.CurrencyParams{
			Rate:           cc.Rate,
			DailySwap:      cc.DailySwap,
			GapWidth:       cc.GapWidth,
			GapProbability: cc.GapProbability,
		}
	}
	return p
}

// PatternRows converts the configured patterns, preserving order.
func (c *Config) PatternRows() []buffer.Pattern {
	rows := make([]buffer.Pattern, 0, len(c.Patterns))
	for _, pc := range c.Patterns {
		rows = append(rows, buffer.Pattern{
			Name:  pc.Name,
			GBP:   pc.GBP,
			TRY:   pc.TRY,
			MXN1x: pc.MXN1x,
			MXN2x: pc.MXN2x,
			MXN3x: pc.MXN3x,
		})
	}
	return rows
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	for code := range c.Params.Currencies {
		if _, err := market.Lookup(code); err != nil {
			return fmt.Errorf("params.currencies: %w", err)
		}
	}
	if err := c.ParameterSet().Validate(); err != nil {
		return err
	}
	if len(c.Patterns) == 0 {
		return fmt.Errorf("at least one pattern is required")
	}
	if err := buffer.ValidatePatterns(c.PatternRows()); err != nil {
		return err
	}
	if !oneOf(c.Output.Format, formats) {
		return fmt.Errorf("output.format must be one of %s", strings.Join(formats, ", "))
	}
	if _, err := buffer.ParseRankKey(c.Output.Rank); err != nil {
		return fmt.Errorf("output.rank: %w", err)
	}
	if c.Log.Level != "" && !oneOf(c.Log.Level, logLevels) {
		return fmt.Errorf("log.level must be one of %s", strings.Join(logLevels, ", "))
	}
	return nil
}

func oneOf(s string, set []string) bool {
	for _, v := range set {
		if s == v {
			return true
		}
	}
	return false
}

// Default returns the configuration the estimator ships with
func Default() *Config {
	return &Config{
		Params: ParamsConfig{
			StartingMargin:      44450,
			StartingEquity:      70800,
			TargetMarginPct:     160,
			PeriodMonths:        6,
			AvgHoldMonthsAnnual: 6.5,
			AvgHoldMonthsPeriod: 3.5,
			Currencies: map[market.Currency]CurrencyConfig{
				market.GBP: {Rate: 210.04, DailySwap: 178, GapWidth: 0.08, GapProbability: 0.05},
				market.MXN: {Rate: 9.03, DailySwap: 150, GapWidth: 0.12, GapProbability: 0.10},
				market.TRY: {Rate: 3.46, DailySwap: 28, GapWidth: 0.20, GapProbability: 0.30},
			},
		},
		Patterns: []PatternConfig{
			{Name: "P2", GBP: 7000, TRY: 4000, MXN3x: 5000},
			{Name: "CaseB", GBP: 6000, TRY: 4000, MXN2x: 1000, MXN3x: 5000},
		},
		Output: OutputConfig{
			Format: "table",
			Rank:   string(buffer.RankBySwap),
		},
		Log: LogConfig{
			Level:  "info",
			Pretty: true,
		},
	}
}
