package buffer

import (
	"fmt"
	"sort"
)

type RankKey string

const (
	RankBySwap RankKey = "swap" // SwapToBuffer
	RankByPnL  RankKey = "pnl"  // PnLToBuffer
)

func ParseRankKey(s string) (RankKey, error) {
	switch RankKey(s) {
	case "", RankBySwap:
		return RankBySwap, nil
	case RankByPnL:
		return RankByPnL, nil
	}
	return "", fmt.Errorf("unknown rank key %q (want swap or pnl)", s)
}

func (k RankKey) value(m Metrics) float64 {
	if k == RankByPnL {
		return m.PnLToBuffer
	}
	return m.SwapToBuffer
}

// Rank returns a copy of ms ordered by key, highest first. Ties keep input order.
func Rank(ms []Metrics, key RankKey) []Metrics {
	out := make([]Metrics, len(ms))
	copy(out, ms)
	sort.SliceStable(out, func(i, j int) bool {
		return key.value(out[i]) > key.value(out[j])
	})
	return out
}
