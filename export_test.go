package main

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/andareed/siftly-dash/dataset"
)

func TestWriteFrameCSV(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("KST", 9*3600)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	f := dataset.Frame{
		TimeNS:  []int64{base.UnixNano(), base.Add(1500 * time.Millisecond).UnixNano()},
		Columns: []string{"TempA", "Flow"},
		Values: [][]float64{
			{1.5, math.NaN()},
			{10, 20},
		},
	}
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := writeFrameCSV(path, f, loc); err != nil {
		t.Fatalf("writeFrameCSV: %v", err)
	}

	fh, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer fh.Close()
	recs, err := csv.NewReader(fh).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}

	want := [][]string{
		{"Timestamp (KST)", "TempA", "Flow"},
		{"2024-01-01 09:00:00", "1.5", "10"},
		{"2024-01-01 09:00:01.5", "", "20"},
	}
	if len(recs) != len(want) {
		t.Fatalf("got %d records, want %d", len(recs), len(want))
	}
	for i := range want {
		for j := range want[i] {
			if recs[i][j] != want[i][j] {
				t.Errorf("record %d col %d = %q, want %q", i, j, recs[i][j], want[i][j])
			}
		}
	}
}

func TestWriteFrameCSVBadPath(t *testing.T) {
	t.Parallel()

	err := writeFrameCSV(filepath.Join(t.TempDir(), "missing", "out.csv"), dataset.Frame{}, time.UTC)
	if err == nil {
		t.Fatal("expected error for a missing directory")
	}
}

func TestDefaultExportName(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"":                     "export.csv",
		"/data/run1.csv":       "run1_visible.csv",
		"logs/sensor.dump.tsv": "sensor.dump_visible.csv",
	}
	for in, want := range tests {
		if got := defaultExportName(in); got != want {
			t.Errorf("defaultExportName(%q) = %q, want %q", in, got, want)
		}
	}
}
