// Package compare aligns a reference dataset against the primary one.
package compare

import (
	"fmt"

	"github.com/andareed/siftly-dash/dataset"
)

// Comparison is a loaded reference plus the series it shares with the
// primary dataset.
type Comparison struct {
	Dataset *dataset.Dataset
	// Common is in primary column order.
	Common []string
	common map[string]struct{}
}

// Load reads the reference through the normal ingestion path and aligns it
// against primary.
func Load(path string, primary *dataset.Dataset, opts dataset.Options) (*Comparison, error) {
	ref, err := dataset.Load(path, opts)
	if err != nil {
		return nil, fmt.Errorf("load reference: %w", err)
	}
	return Align(primary, ref), nil
}

// Align computes the shared series of two datasets.
func Align(primary, ref *dataset.Dataset) *Comparison {
	c := &Comparison{Dataset: ref, common: make(map[string]struct{})}
	if primary == nil || ref == nil {
		return c
	}
	for _, name := range primary.Names {
		if ref.Has(name) {
			c.Common = append(c.Common, name)
			c.common[name] = struct{}{}
		}
	}
	return c
}

func (c *Comparison) Shares(name string) bool {
	_, ok := c.common[name]
	return ok
}

// Overlay returns the reference time axis and values for a shared series.
// Reference-only series are never exposed.
func (c *Comparison) Overlay(name string) ([]float64, []float64, bool) {
	if !c.Shares(name) {
		return nil, nil, false
	}
	return c.Dataset.TimeSec, c.Dataset.Series[name], true
}
