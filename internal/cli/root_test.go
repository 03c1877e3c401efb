package cli

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "swapbuf version 1.0.0\n", out)
}

func TestEvalDefaults(t *testing.T) {
	out, logs, err := run(t, "eval")
	require.NoError(t, err)

	assert.Contains(t, out, "period 6 months")
	assert.Contains(t, out, "60608")
	assert.Contains(t, out, "13.82")
	assert.Less(t, strings.Index(out, "CaseB"), strings.Index(out, "P2"))
	assert.Contains(t, logs, "evaluating")
}

func TestEvalCSV(t *testing.T) {
	out, _, err := run(t, "eval", "--format", "csv", "--log-level", "error")
	require.NoError(t, err)

	recs, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, "CaseB", recs[1][0])
	assert.Equal(t, []string{"P2", "16000", "96000", "57920", "2688", "60608", "8076", "5388", "13.33", "8.89"}, recs[2])
}

func TestEvalPatternsAndPeriod(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "patterns.csv")
	data := "name,GBP,TRY,MXN_1x,MXN_2x,MXN_3x\nonly,10000,0,0,0,0\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	out, _, err := run(t, "eval", "--patterns", path, "--period", "12", "--format", "csv")
	require.NoError(t, err)

	recs, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "only", recs[1][0])
	assert.Equal(t, "120000", recs[1][2])
	// 10000*12*0.08*0.05
	assert.Equal(t, "480", recs[1][4])
}

func TestEvalFlagsCompleteConfigFile(t *testing.T) {
	dir := t.TempDir()

	cfgPath := filepath.Join(dir, "params.yaml")
	params := "params:\n" +
		"  starting_margin: 44450\n" +
		"  starting_equity: 70800\n" +
		"  target_margin_pct: 160\n" +
		"  period_months: 36\n" +
		"  avg_hold_months_annual: 6.5\n" +
		"  avg_hold_months_period: 3.5\n" +
		"  currencies:\n" +
		"    GBP: {rate: 210.04, daily_swap: 178, gap_width: 0.08, gap_probability: 0.05}\n" +
		"    MXN: {rate: 9.03, daily_swap: 150, gap_width: 0.12, gap_probability: 0.10}\n" +
		"    TRY: {rate: 3.46, daily_swap: 28, gap_width: 0.20, gap_probability: 0.30}\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(params), 0644))

	patPath := filepath.Join(dir, "p.csv")
	require.NoError(t, os.WriteFile(patPath, []byte("name,GBP,TRY,MXN_1x,MXN_2x,MXN_3x\nP2,7000,4000,0,0,5000\n"), 0644))

	// the file alone has no patterns and an out-of-range period
	_, _, err := run(t, "--config", cfgPath, "eval", "--log-level", "error")
	require.Error(t, err)

	_, _, err = run(t, "--config", cfgPath, "eval", "--patterns", patPath, "--log-level", "error")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "period_months must be between 1 and 24")

	out, _, err := run(t, "--config", cfgPath, "eval", "--patterns", patPath, "--period", "6", "--format", "csv", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "P2,16000,96000,57920,2688,60608,8076,5388,13.33,8.89")
}

func TestEvalOrgToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.org")

	out, logs, err := run(t, "eval", "--format", "org", "--output", path, "--log-level", "info")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, logs, "report written")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "* SWAP BUFFER: 2 patterns"))
}

func TestEvalInvalidInput(t *testing.T) {
	_, _, err := run(t, "eval", "--period", "30")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "period_months must be between 1 and 24")

	_, _, err = run(t, "eval", "--rank", "size")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output.rank")
}

func TestEvalBadPatternsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patterns.csv")
	require.NoError(t, os.WriteFile(path, []byte("name,GBP,TRY,MXN_1x,MXN_2x,MXN_3x\nx,1,2,3,4,oops\n"), 0644))

	_, _, err := run(t, "eval", "--patterns", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2: parse MXN_3x")
}

func TestConfigInitAndValidate(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "run.yaml")
	patPath := filepath.Join(dir, "patterns.csv")

	out, _, err := run(t, "config", "init", "-o", cfgPath, "--patterns-out", patPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Created default configuration")

	out, _, err = run(t, "config", "validate", "-f", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration valid")
	assert.Contains(t, out, "Patterns: 2")

	out, _, err = run(t, "--config", cfgPath, "eval", "--format", "csv", "--rank", "pnl")
	require.NoError(t, err)
	assert.Contains(t, out, "P2,16000")
}

func TestConfigValidateRequiresFile(t *testing.T) {
	_, _, err := run(t, "config", "validate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--file is required")
}
