package report

import (
	"fmt"
	"io"
	"path/filepath"

	"ordinal-complexity/internal/models"
)

// ConsoleLine renders one result as a fixed-width summary line, or an error
// line for a failed file.
func ConsoleLine(r models.Result) string {
	name := filepath.Base(r.Source)
	if r.Err != nil {
		return fmt.Sprintf("[ERR] %s: %v", name, r.Err)
	}
	return fmt.Sprintf("%-30s [dx×dy=%d×%d | n=%5d | win=%7d | nz=%2d] H=%.4f | C=%.4f | mode=%s",
		name, r.DX, r.DY, r.NPerm, r.WindowsUsed, r.BinsNonZero, r.H, r.C, r.MaskMode)
}

// Console prints each result on its own line.
type Console struct {
	w io.Writer
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) Emit(r models.Result) error {
	_, err := fmt.Fprintln(c.w, ConsoleLine(r))
	return err
}
