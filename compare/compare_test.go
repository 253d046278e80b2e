package compare

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/andareed/siftly-dash/dataset"
)

func TestAlignKeepsPrimaryOrder(t *testing.T) {
	t.Parallel()
	primary := &dataset.Dataset{
		Names:  []string{"c", "a", "b"},
		Series: map[string][]float64{"c": nil, "a": nil, "b": nil},
	}
	ref := &dataset.Dataset{
		TimeSec: []float64{0, 1},
		Names:   []string{"a", "z", "c"},
		Series:  map[string][]float64{"a": {1, 2}, "z": {3, 4}, "c": {5, 6}},
	}

	c := Align(primary, ref)
	if len(c.Common) != 2 || c.Common[0] != "c" || c.Common[1] != "a" {
		t.Fatalf("Common = %v, want [c a]", c.Common)
	}
	if _, _, ok := c.Overlay("z"); ok {
		t.Error("reference-only series exposed")
	}
	if xs, ys, ok := c.Overlay("a"); !ok || len(xs) != 2 || ys[1] != 2 {
		t.Errorf("Overlay(a) = %v %v %v", xs, ys, ok)
	}
}

func TestLoadPropagatesIngestError(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "ref.csv")
	if err := os.WriteFile(path, []byte("time,name\n2024-01-01 00:00:00,x\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := Load(path, &dataset.Dataset{}, dataset.Options{})
	if !errors.Is(err, dataset.ErrNoNumericSeries) {
		t.Fatalf("err = %v, want NoNumericSeries", err)
	}
}
