package events

import (
	"fmt"
	"math"
	"strings"

	"github.com/andareed/siftly-dash/dataset"
	"github.com/google/uuid"
)

type Origin string

const (
	OriginManual Origin = "manual"
	OriginRule   Origin = "rule"
)

// Hit is one entry of the event log.
type Hit struct {
	ID     string
	TimeNS int64
	Label  string
	Origin Origin
	Series string
}

// Scan evaluates every rule against its series. Hits come out series by
// series in rule order, ascending in time within a series. Each call
// returns fresh ids.
func Scan(ds *dataset.Dataset, rules *RuleSet) []Hit {
	if ds == nil || rules == nil {
		return nil
	}
	var hits []Hit
	for _, name := range rules.Series() {
		rule, _ := rules.Get(name)
		ys, ok := ds.Series[name]
		if !ok {
			continue
		}
		hits = append(hits, scanSeries(ds.TimeNS, ys, name, rule)...)
	}
	return hits
}

func scanSeries(timeNS []int64, ys []float64, name string, rule Rule) []Hit {
	if len(ys) < 2 {
		return nil
	}
	// restrict to finite samples first; deltapct compares neighbours in
	// this reduced sequence
	idx := make([]int, 0, len(ys))
	for i, y := range ys {
		if !math.IsNaN(y) && !math.IsInf(y, 0) {
			idx = append(idx, i)
		}
	}
	var hits []Hit
	for k, i := range idx {
		y := ys[i]
		var parts []string
		if rule.GT != nil && y > *rule.GT {
			parts = append(parts, name+">")
		}
		if rule.LT != nil && y < *rule.LT {
			parts = append(parts, name+"<")
		}
		if rule.DeltaPct != nil && k > 0 {
			if pct, ok := percentChange(ys[idx[k-1]], y); ok && pct >= *rule.DeltaPct {
				parts = append(parts, fmt.Sprintf("%s Δ%.1f%%", name, pct))
			}
		}
		if len(parts) == 0 {
			continue
		}
		hits = append(hits, Hit{
			ID:     uuid.NewString(),
			TimeNS: timeNS[i],
			Label:  strings.Join(parts, " / "),
			Origin: OriginRule,
			Series: name,
		})
	}
	return hits
}

// percentChange is |(cur-prev)/prev|*100, undefined when prev is zero.
func percentChange(prev, cur float64) (float64, bool) {
	if prev == 0 {
		return 0, false
	}
	pct := math.Abs((cur-prev)/prev) * 100
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return 0, false
	}
	return pct, true
}
