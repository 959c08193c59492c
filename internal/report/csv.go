package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"ordinal-complexity/internal/models"
)

// Header lists the CSV columns in order.
var Header = []string{
	"file", "tmpl", "maskmode", "dx", "dy", "n_perm",
	"windows_used", "bins_nonzero", "H", "C", "error", "run_id",
}

// utf8BOM lets spreadsheet tools detect the encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV writes a BOM, the header and one row per result.
func WriteCSV(w io.Writer, results []models.Result, runID string) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range results {
		if err := cw.Write(Row(r, runID)); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", r.Source, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Row renders r in Header order. Failed files keep only file, error and
// run_id.
func Row(r models.Result, runID string) []string {
	if r.Err != nil {
		return []string{r.Source, "", "", "", "", "", "", "", "", "", r.Err.Error(), runID}
	}
	return []string{
		r.Source,
		r.Template,
		r.MaskMode,
		strconv.Itoa(r.DX),
		strconv.Itoa(r.DY),
		strconv.Itoa(r.NPerm),
		strconv.FormatInt(r.WindowsUsed, 10),
		strconv.Itoa(r.BinsNonZero),
		formatFloat(r.H),
		formatFloat(r.C),
		"",
		runID,
	}
}

// SaveCSV writes results to path, creating parent directories as needed.
func SaveCSV(path string, results []models.Result, runID string) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return WriteCSV(f, results, runID)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
