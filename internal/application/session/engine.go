package session

import (
	"sort"

	"github.com/actionlens/gh-usage-dashboard-go/internal/domain/entity"
	"github.com/actionlens/gh-usage-dashboard-go/internal/shared/types"
)

// Apply runs the active filter over the full unfiltered line set and derives
// the per-line value for the given mode. It always produces fresh records;
// input lines are never aliased or mutated. Recomputation always starts from
// the base set, so applying the same filter twice yields the same output.
func Apply(lines []entity.UsageLine, filter entity.Filter, mode entity.ValueMode) []entity.ValuedLine {
	out := []entity.ValuedLine{}
	for _, l := range lines {
		if !filter.Matches(l) {
			continue
		}
		out = append(out, entity.ValuedLine{
			UsageLine: l,
			Value:     entity.ValueOf(l, mode),
		})
	}
	return out
}

// KeyTotal is one aggregation bucket: a grouping key and its summed value.
type KeyTotal struct {
	Key   string  `json:"key"`
	Total float64 `json:"total"`
}

// AggregateBy sums line values per key, dropping lines whose key is empty, and
// returns buckets sorted by descending total.
func AggregateBy(lines []entity.ValuedLine, keyOf func(entity.UsageLine) string) []KeyTotal {
	totals := map[string]float64{}
	order := []string{}
	for _, l := range lines {
		key := keyOf(l.UsageLine)
		if key == "" {
			continue
		}
		if _, seen := totals[key]; !seen {
			order = append(order, key)
		}
		totals[key] += l.Value
	}

	buckets := make([]KeyTotal, 0, len(order))
	for _, key := range order {
		buckets = append(buckets, KeyTotal{Key: key, Total: totals[key]})
	}
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Total > buckets[j].Total
	})
	return buckets
}

// DailyTotals buckets line values per calendar day in chronological order,
// for trend display.
func DailyTotals(lines []entity.ValuedLine) []types.DailyValue {
	totals := map[string]float64{}
	order := []string{}
	for _, l := range lines {
		day := l.Date.Format("2006-01-02")
		if _, seen := totals[day]; !seen {
			order = append(order, day)
		}
		totals[day] += l.Value
	}
	sort.Strings(order)

	out := make([]types.DailyValue, 0, len(order))
	for _, day := range order {
		out = append(out, types.DailyValue{Day: day, Value: totals[day]})
	}
	return out
}
