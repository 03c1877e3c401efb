package config

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/rustyeddy/swapbuffer/buffer"
)

// PatternColumns is the header of a patterns CSV. Amounts are JPY per month.
var PatternColumns = []string{"name", "GBP", "TRY", "MXN_1x", "MXN_2x", "MXN_3x"}

// LoadPatternsCSV reads patterns from path. Columns may appear in any order;
// blank amount cells read as 0. Any malformed row fails the whole file.
func LoadPatternsCSV(path string) ([]buffer.Pattern, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open patterns: %w", err)
	}
	defer f.Close()

	rows, err := ReadPatternsCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}

func ReadPatternsCSV(r io.Reader) ([]buffer.Pattern, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("empty patterns file")
	}
	if err != nil {
		return nil, err
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	cols := make([]int, len(PatternColumns))
	for i, name := range PatternColumns {
		j, ok := idx[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
		cols[i] = j
	}

	var out []buffer.Pattern
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		var amounts [5]float64
		for i := range amounts {
			col := PatternColumns[i+1]
			s := strings.TrimSpace(rec[cols[i+1]])
			if s == "" {
				continue
			}
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: parse %s: %w", line, col, err)
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("line %d: %s must be a finite number (got %q)", line, col, s)
			}
			amounts[i] = v
		}

		out = append(out, buffer.Pattern{
			Name:  strings.TrimSpace(rec[cols[0]]),
			GBP:   amounts[0],
			TRY:   amounts[1],
			MXN1x: amounts[2],
			MXN2x: amounts[3],
			MXN3x: amounts[4],
		})
	}
	return out, nil
}

// WritePatternsCSV writes rows with the PatternColumns header.
func WritePatternsCSV(w io.Writer, rows []buffer.Pattern) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(PatternColumns); err != nil {
		return err
	}
	for _, r := range rows {
		err := cw.Write([]string{
			r.Name,
			amount(r.GBP),
			amount(r.TRY),
			amount(r.MXN1x),
			amount(r.MXN2x),
			amount(r.MXN3x),
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func amount(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
