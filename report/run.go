package report

import (
	"time"

	"github.com/rustyeddy/swapbuffer/buffer"
	"github.com/rustyeddy/swapbuffer/pkg/id"
)

// Run is one evaluated and ranked comparison, ready to render.
type Run struct {
	RunID   string
	Created time.Time
	Rank    buffer.RankKey

	Params buffer.ParameterSet
	Rows   []Row
}

// NewRun evaluates every pattern, ranks by key and shapes the result for
// display. Callers validate p and patterns first.
func NewRun(p buffer.ParameterSet, patterns []buffer.Pattern, key buffer.RankKey, now time.Time) Run {
	ranked := buffer.Rank(buffer.EvaluateAll(p, patterns), key)
	return Run{
		RunID:   id.NewRun(now),
		Created: now,
		Rank:    key,
		Params:  p,
		Rows:    Rows(ranked),
	}
}
