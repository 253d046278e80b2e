package main

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/andareed/siftly-dash/dataset"
	"github.com/andareed/siftly-dash/logging"
	"github.com/andareed/siftly-dash/session"
)

const exportTimeLayout = "2006-01-02 15:04:05.999999"

// writeFrameCSV writes the frame as CSV with the display-zone timestamp
// first. Missing samples are left empty.
func writeFrameCSV(path string, f dataset.Frame, loc *time.Location) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("open export file: %w", err)
	}
	defer out.Close()

	w := csv.NewWriter(out)

	zone, _ := time.Now().In(loc).Zone()
	header := make([]string, 0, len(f.Columns)+1)
	header = append(header, fmt.Sprintf("Timestamp (%s)", zone))
	header = append(header, f.Columns...)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	rec := make([]string, len(header))
	for r := 0; r < f.Rows(); r++ {
		rec[0] = time.Unix(0, f.TimeNS[r]).In(loc).Format(exportTimeLayout)
		for c := range f.Columns {
			rec[c+1] = formatCell(f.Values[c][r])
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("write row %d: %w", r, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func formatCell(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// exportVisible writes the active series over the visible time range.
func (m *model) exportVisible(path string) error {
	if !m.data.hasView {
		return fmt.Errorf("export: %w", session.ErrNotLoaded)
	}
	frame, err := m.sess.VisibleFrame(m.data.view.X)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := writeFrameCSV(path, frame, m.sess.Location()); err != nil {
		return err
	}
	logging.Infof("exported %d rows x %d series to %s", frame.Rows(), len(frame.Columns), path)
	return nil
}

// defaultExportName derives "<stem>_visible.csv" next to the loaded file.
func defaultExportName(path string) string {
	if path == "" {
		return "export.csv"
	}
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return stem + "_visible.csv"
}
