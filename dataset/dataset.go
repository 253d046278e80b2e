// Package dataset turns a delimited, time-indexed text file into aligned
// numeric series ready for plotting.
package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/andareed/siftly-dash/logging"
	"golang.org/x/text/unicode/norm"
)

// Stage is a coarse progress checkpoint.
type Stage int

const (
	StageParseStarted Stage = iota
	StageParseDone
	StageRenderDone
)

func (s Stage) String() string {
	switch s {
	case StageParseStarted:
		return "parsing"
	case StageParseDone:
		return "parsed"
	case StageRenderDone:
		return "rendered"
	default:
		return "unknown"
	}
}

// TimeRange bounds the rows kept by Load. Either end may be nil (open).
// Both ends are inclusive.
type TimeRange struct {
	Start *time.Time
	End   *time.Time
}

func (r TimeRange) Contains(t time.Time) bool {
	if r.Start != nil && t.Before(*r.Start) {
		return false
	}
	if r.End != nil && t.After(*r.End) {
		return false
	}
	return true
}

// Options tune Load. The zero value is usable.
type Options struct {
	Range        TimeRange
	Location     *time.Location
	TimeColumn   string
	SniffBytes   int
	NumericRatio float64
	// Progress must not block; it is called on the loading goroutine.
	Progress func(Stage)
}

const (
	defaultSniffBytes   = 32 * 1024
	defaultNumericRatio = 0.5
)

// DefaultLocation is UTC+9, loaded from tzdata when available.
func DefaultLocation() *time.Location {
	if loc, err := time.LoadLocation("Asia/Seoul"); err == nil {
		return loc
	}
	return time.FixedZone("KST", 9*60*60)
}

func (o Options) withDefaults() Options {
	if o.Location == nil {
		o.Location = DefaultLocation()
	}
	if o.SniffBytes <= 0 {
		o.SniffBytes = defaultSniffBytes
	}
	if o.NumericRatio <= 0 || o.NumericRatio > 1 {
		o.NumericRatio = defaultNumericRatio
	}
	return o
}

func (o Options) notify(s Stage) {
	if o.Progress != nil {
		o.Progress(s)
	}
}

// Dataset is immutable once Load returns.
type Dataset struct {
	Path           string
	Delimiter      rune
	TimeColumn     string
	TimeCandidates []string
	Location       *time.Location

	TimeNS  []int64
	TimeSec []float64

	// Names holds the numeric series in column order.
	Names      []string
	Series     map[string][]float64
	Normalized map[string][]float64
}

// Len is the number of retained rows.
func (d *Dataset) Len() int { return len(d.TimeNS) }

// Has reports whether name is one of the numeric series.
func (d *Dataset) Has(name string) bool {
	_, ok := d.Series[name]
	return ok
}

// Time returns row i as a time in the display location.
func (d *Dataset) Time(i int) time.Time {
	return time.Unix(0, d.TimeNS[i]).In(d.Location)
}

// Bounds returns the first and last TimeSec, or false for an empty dataset.
func (d *Dataset) Bounds() (float64, float64, bool) {
	if len(d.TimeSec) == 0 {
		return 0, 0, false
	}
	return d.TimeSec[0], d.TimeSec[len(d.TimeSec)-1], true
}

type row struct {
	ts    time.Time
	cells []string
}

// Load reads path and builds a Dataset. On failure it returns an
// *IngestError and no partial result.
func Load(path string, opts Options) (*Dataset, error) {
	opts = opts.withDefaults()
	opts.notify(StageParseStarted)

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ingestErr(FileNotFound, path, err)
		}
		return nil, ingestErr(ParseError, path, err)
	}
	raw = bytes.TrimPrefix(raw, []byte("\ufeff"))

	sample := raw
	if len(sample) > opts.SniffBytes {
		sample = sample[:opts.SniffBytes]
	}
	delim := SniffDelimiter(sample, path)
	logging.Debugf("dataset: %s delimiter=%q", path, delim)

	records, err := readRecords(raw, delim)
	if err != nil {
		return nil, ingestErr(ParseError, path, err)
	}
	if len(records) == 0 {
		return nil, ingestErr(ParseError, path, errors.New("file has no header row"))
	}

	ds, err := build(path, records[0], records[1:], opts)
	if err != nil {
		return nil, err
	}
	ds.Delimiter = delim
	opts.notify(StageParseDone)
	logging.Infof("dataset: loaded %s rows=%d series=%d time_col=%q", path, ds.Len(), len(ds.Names), ds.TimeColumn)
	return ds, nil
}

func readRecords(raw []byte, delim rune) ([][]string, error) {
	if delim == Whitespace {
		var out [][]string
		for _, line := range strings.Split(string(raw), "\n") {
			fields := strings.Fields(line)
			if len(fields) == 0 {
				continue
			}
			out = append(out, fields)
		}
		return out, nil
	}

	r := csv.NewReader(bytes.NewReader(raw))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	var out [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read records: %w", err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func cleanHeader(header []string) []string {
	names := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	for i, h := range header {
		n := norm.NFC.String(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if n == "" {
			n = fmt.Sprintf("Unnamed: %d", i)
		}
		unique := n
		for k := 1; seen[unique]; k++ {
			unique = fmt.Sprintf("%s.%d", n, k)
		}
		seen[unique] = true
		names[i] = unique
	}
	return names
}

func build(path string, header []string, records [][]string, opts Options) (*Dataset, error) {
	names := cleanHeader(header)
	timeIdx, candidates, matched := findTimeColumn(names, opts.TimeColumn)
	if !matched {
		logging.Debugf("dataset: %s: %s, using first column %q", path, NoTimeColumn, names[0])
	}

	// a column qualifies on the whole file, not on the filtered rows
	numericCols := make([]int, 0, len(names))
	for c := range names {
		if c == timeIdx {
			continue
		}
		numeric, nonBlank := 0, 0
		for _, rec := range records {
			if c >= len(rec) {
				continue
			}
			_, ok, blank := parseCell(rec[c])
			if blank {
				continue
			}
			nonBlank++
			if ok {
				numeric++
			}
		}
		if numeric > 0 && float64(numeric) >= opts.NumericRatio*float64(nonBlank) {
			numericCols = append(numericCols, c)
		}
	}
	if len(numericCols) == 0 {
		return nil, ingestErr(NoNumericSeries, path, nil)
	}

	rows := make([]row, 0, len(records))
	dropped := 0
	for _, rec := range records {
		if timeIdx >= len(rec) {
			dropped++
			continue
		}
		ts, ok := ParseTimestamp(rec[timeIdx])
		if !ok {
			dropped++
			continue
		}
		if !opts.Range.Contains(ts) {
			continue
		}
		rows = append(rows, row{ts: ts, cells: rec})
	}
	if dropped > 0 {
		logging.Debugf("dataset: %s dropped %d rows with unparseable time", path, dropped)
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].ts.Before(rows[j].ts) })

	ds := &Dataset{
		Path:           path,
		TimeColumn:     names[timeIdx],
		TimeCandidates: candidates,
		Location:       opts.Location,
		Series:         make(map[string][]float64, len(numericCols)),
		Normalized:     make(map[string][]float64, len(numericCols)),
	}
	cols := make([][]float64, len(numericCols))
	for k, c := range numericCols {
		ds.Names = append(ds.Names, names[c])
		cols[k] = make([]float64, 0, len(rows))
	}

	for _, r := range rows {
		vals := make([]float64, len(numericCols))
		anyFinite := false
		for k, c := range numericCols {
			v := math.NaN()
			if c < len(r.cells) {
				v, _, _ = parseCell(r.cells[c])
			}
			vals[k] = v
			if isFinite(v) {
				anyFinite = true
			}
		}
		if !anyFinite {
			continue
		}
		ns := r.ts.UnixNano()
		ds.TimeNS = append(ds.TimeNS, ns)
		ds.TimeSec = append(ds.TimeSec, float64(ns)/1e9)
		for k := range numericCols {
			cols[k] = append(cols[k], vals[k])
		}
	}

	for k, name := range ds.Names {
		ds.Series[name] = cols[k]
		ds.Normalized[name] = normalize(cols[k])
	}
	return ds, nil
}
