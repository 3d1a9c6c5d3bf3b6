// Package stats reduces score records into per-participant statistics and
// derives the global extremes used for highlighting.
package stats

import (
	"math/big"
	"sort"

	"github.com/okian/scoretable/internal/domain/model"
	"github.com/okian/scoretable/internal/domain/types"
)

// Set maps participant name to its statistics.
type Set map[string]model.ParticipantStats

// Names returns the participant names in ascending order.
func (s Set) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Sorted returns the statistics ordered by participant name.
func (s Set) Sorted() []model.ParticipantStats {
	out := make([]model.ParticipantStats, 0, len(s))
	for _, name := range s.Names() {
		out = append(out, s[name])
	}
	return out
}

// group collects scores per participant in first-seen order.
type group struct {
	order  []string
	scores map[string][]int
}

func newGroup() *group {
	return &group{scores: make(map[string][]int)}
}

func (g *group) add(name string, score int) {
	if _, ok := g.scores[name]; !ok {
		g.order = append(g.order, name)
	}
	g.scores[name] = append(g.scores[name], score)
}

// Aggregate groups records by participant and reduces each group to its
// average, maximum and minimum. An empty input yields an empty Set.
func Aggregate(records []model.Record) Set {
	g := newGroup()
	for _, r := range records {
		g.add(r.Name, r.Score)
	}

	out := make(Set, len(g.order))
	for _, name := range g.order {
		out[name] = reduce(name, g.scores[name])
	}
	return out
}

// reduce requires a non-empty score slice. The sum is kept in a big.Int so
// scores near the int limits cannot wrap it.
func reduce(name string, scores []int) model.ParticipantStats {
	sum := new(big.Int)
	hi, lo := scores[0], scores[0]
	for _, v := range scores {
		sum.Add(sum, big.NewInt(int64(v)))
		if v > hi {
			hi = v
		}
		if v < lo {
			lo = v
		}
	}
	return model.ParticipantStats{
		Name:    name,
		Average: mean(sum, len(scores), lo, hi),
		Max:     hi,
		Min:     lo,
		Count:   len(scores),
	}
}

// mean divides sum by n and keeps the result inside [lo, hi].
func mean(sum *big.Int, n, lo, hi int) float64 {
	var avg float64
	if sum.IsInt64() {
		avg = float64(sum.Int64()) / float64(n)
	} else {
		q := new(big.Float).SetPrec(128).SetInt(sum)
		q.Quo(q, new(big.Float).SetPrec(128).SetInt64(int64(n)))
		avg, _ = q.Float64()
	}
	if avg < float64(lo) {
		avg = float64(lo)
	}
	if avg > float64(hi) {
		avg = float64(hi)
	}
	return avg
}

// FindExtremes returns the highest and lowest average across the set.
func FindExtremes(s Set) (model.GlobalExtremes, error) {
	if len(s) == 0 {
		return model.GlobalExtremes{}, ErrEmptyData
	}

	first := true
	var ext model.GlobalExtremes
	for _, st := range s {
		if first {
			ext = model.GlobalExtremes{MaxAverage: st.Average, MinAverage: st.Average}
			first = false
			continue
		}
		if st.Average > ext.MaxAverage {
			ext.MaxAverage = st.Average
		}
		if st.Average < ext.MinAverage {
			ext.MinAverage = st.Average
		}
	}
	return ext, nil
}

// Classify decides the emphasis of one row. The high check runs first, so
// when every average is equal each row is marked high and none low.
func Classify(st model.ParticipantStats, ext model.GlobalExtremes) types.Emphasis {
	switch {
	case st.Average == ext.MaxAverage:
		return types.EmphasisHigh
	case st.Average == ext.MinAverage:
		return types.EmphasisLow
	default:
		return types.EmphasisNone
	}
}
