package events

import (
	"math"
	"testing"

	"github.com/andareed/siftly-dash/dataset"
)

func ptr(v float64) *float64 { return &v }

func seriesDataset(name string, ys ...float64) *dataset.Dataset {
	ns := make([]int64, len(ys))
	for i := range ns {
		ns[i] = int64(i) * 1e9
	}
	return &dataset.Dataset{
		TimeNS: ns,
		Names:  []string{name},
		Series: map[string][]float64{name: ys},
	}
}

func TestScanDeltaPctZeroDenominator(t *testing.T) {
	t.Parallel()
	ds := seriesDataset("p", 10, 5, 0, -5)
	rules := NewRuleSet()
	rules.Set("p", Rule{DeltaPct: ptr(50)})

	hits := Scan(ds, rules)
	// 10->5 is 50%, 5->0 is 100%, 0->-5 has a zero denominator
	wantNS := []int64{1e9, 2e9}
	if len(hits) != len(wantNS) {
		t.Fatalf("hits = %+v, want times %v", hits, wantNS)
	}
	for i, h := range hits {
		if h.TimeNS != wantNS[i] {
			t.Errorf("hit[%d].TimeNS = %d, want %d", i, h.TimeNS, wantNS[i])
		}
		if h.Origin != OriginRule || h.Series != "p" {
			t.Errorf("hit[%d] = %+v", i, h)
		}
	}
	if hits[0].Label != "p Δ50.0%" {
		t.Errorf("label = %q, want %q", hits[0].Label, "p Δ50.0%")
	}
}

func TestScanSkipsNonFiniteAndOrdersLabel(t *testing.T) {
	t.Parallel()
	nan := math.NaN()
	ds := seriesDataset("v", 1, nan, 20, -3)
	rules := NewRuleSet()
	rules.Set("v", Rule{GT: ptr(10), LT: ptr(0), DeltaPct: ptr(100)})

	hits := Scan(ds, rules)
	if len(hits) != 2 {
		t.Fatalf("hits = %+v, want 2", hits)
	}
	// 1 -> 20 across the NaN gap is 1900%
	if hits[0].TimeNS != 2e9 || hits[0].Label != "v> / v Δ1900.0%" {
		t.Errorf("hit[0] = %+v", hits[0])
	}
	if hits[1].TimeNS != 3e9 || hits[1].Label != "v< / v Δ115.0%" {
		t.Errorf("hit[1] = %+v", hits[1])
	}
}

func TestScanIdempotentContent(t *testing.T) {
	t.Parallel()
	ds := seriesDataset("v", 1, 5, 2, 8)
	rules := NewRuleSet()
	rules.Set("v", Rule{GT: ptr(3)})

	a, b := Scan(ds, rules), Scan(ds, rules)
	if len(a) != len(b) || len(a) == 0 {
		t.Fatalf("len a=%d b=%d", len(a), len(b))
	}
	for i := range a {
		if a[i].TimeNS != b[i].TimeNS || a[i].Label != b[i].Label || a[i].Series != b[i].Series {
			t.Errorf("scan %d differs: %+v vs %+v", i, a[i], b[i])
		}
		if a[i].ID == b[i].ID {
			t.Errorf("scan %d reused id %s", i, a[i].ID)
		}
	}
}

func TestRuleSetOrderAndNormalize(t *testing.T) {
	t.Parallel()
	rs := NewRuleSet()
	rs.Set("b", Rule{GT: ptr(1)})
	rs.Set("a", Rule{LT: ptr(1)})
	rs.Set("b", Rule{GT: ptr(2)})
	if got := rs.Series(); len(got) != 2 || got[0] != "b" || got[1] != "a" {
		t.Fatalf("Series() = %v, want [b a]", got)
	}
	if r, _ := rs.Get("b"); *r.GT != 2 {
		t.Errorf("replaced rule GT = %v, want 2", *r.GT)
	}

	rs.Set("a", Rule{GT: ptr(math.NaN())})
	if _, ok := rs.Get("a"); ok {
		t.Error("rule with only NaN threshold should be removed")
	}

	r := NormalizeRule(Rule{DeltaPct: ptr(-5), LT: ptr(math.Inf(1))})
	if r.LT != nil || r.DeltaPct == nil || *r.DeltaPct != 0 {
		t.Errorf("NormalizeRule = %+v", r)
	}
}

func TestParseRule(t *testing.T) {
	t.Parallel()
	r, err := ParseRule("gt=5, lt=-1 dp=20")
	if err != nil {
		t.Fatalf("ParseRule: %v", err)
	}
	if *r.GT != 5 || *r.LT != -1 || *r.DeltaPct != 20 {
		t.Errorf("ParseRule = %s", r)
	}
	if r.String() != "gt=5 lt=-1 dp=20" {
		t.Errorf("String() = %q", r.String())
	}
	for _, bad := range []string{"gt", "gt=x", "foo=1"} {
		if _, err := ParseRule(bad); err == nil {
			t.Errorf("ParseRule(%q) succeeded", bad)
		}
	}
	empty, err := ParseRule("")
	if err != nil || !empty.Empty() {
		t.Errorf("ParseRule(\"\") = %+v, %v", empty, err)
	}
}
