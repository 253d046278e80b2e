// Package events scans series for threshold and rate-of-change conditions.
package events

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Rule is a set of optional conditions on one series. A nil field is
// disabled.
type Rule struct {
	GT       *float64
	LT       *float64
	DeltaPct *float64
}

func (r Rule) Empty() bool { return r.GT == nil && r.LT == nil && r.DeltaPct == nil }

func (r Rule) String() string {
	var parts []string
	if r.GT != nil {
		parts = append(parts, "gt="+formatFloat(*r.GT))
	}
	if r.LT != nil {
		parts = append(parts, "lt="+formatFloat(*r.LT))
	}
	if r.DeltaPct != nil {
		parts = append(parts, "dp="+formatFloat(*r.DeltaPct))
	}
	return strings.Join(parts, " ")
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

// NormalizeRule drops non-finite thresholds and clamps a negative percent
// change to zero, so Scan only ever sees well-formed rules.
func NormalizeRule(r Rule) Rule {
	finite := func(p *float64) *float64 {
		if p == nil || math.IsNaN(*p) || math.IsInf(*p, 0) {
			return nil
		}
		v := *p
		return &v
	}
	out := Rule{GT: finite(r.GT), LT: finite(r.LT), DeltaPct: finite(r.DeltaPct)}
	if out.DeltaPct != nil && *out.DeltaPct < 0 {
		zero := 0.0
		out.DeltaPct = &zero
	}
	return out
}

// ParseRule reads "gt=5 lt=-1 dp=20". Keys may also be written ">", "<"
// and "delta"/"deltapct"; separators may be spaces or commas. The result
// is already normalised.
func ParseRule(s string) (Rule, error) {
	var r Rule
	fields := strings.FieldsFunc(s, func(c rune) bool { return c == ' ' || c == ',' || c == ';' })
	for _, f := range fields {
		key, val, ok := strings.Cut(f, "=")
		if !ok {
			return Rule{}, fmt.Errorf("rule term %q: want key=value", f)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return Rule{}, fmt.Errorf("rule term %q: %w", f, err)
		}
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "gt", ">":
			r.GT = &v
		case "lt", "<":
			r.LT = &v
		case "dp", "delta", "deltapct", "Δ%":
			r.DeltaPct = &v
		default:
			return Rule{}, fmt.Errorf("rule term %q: unknown key", f)
		}
	}
	return NormalizeRule(r), nil
}

// RuleSet holds at most one rule per series, in insertion order.
type RuleSet struct {
	order []string
	rules map[string]Rule
}

func NewRuleSet() *RuleSet {
	return &RuleSet{rules: make(map[string]Rule)}
}

// Set stores the normalised rule for series. Replacing keeps the original
// position; an empty rule removes the entry.
func (rs *RuleSet) Set(series string, r Rule) {
	r = NormalizeRule(r)
	if r.Empty() {
		rs.Delete(series)
		return
	}
	if _, ok := rs.rules[series]; !ok {
		rs.order = append(rs.order, series)
	}
	rs.rules[series] = r
}

func (rs *RuleSet) Delete(series string) {
	if _, ok := rs.rules[series]; !ok {
		return
	}
	delete(rs.rules, series)
	for i, name := range rs.order {
		if name == series {
			rs.order = append(rs.order[:i], rs.order[i+1:]...)
			break
		}
	}
}

func (rs *RuleSet) Get(series string) (Rule, bool) {
	r, ok := rs.rules[series]
	return r, ok
}

// Series lists the series with rules in insertion order.
func (rs *RuleSet) Series() []string { return append([]string(nil), rs.order...) }

func (rs *RuleSet) Len() int { return len(rs.order) }
