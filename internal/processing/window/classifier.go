package window

import (
	"context"
	"fmt"
	"sync"

	"ordinal-complexity/internal/algorithms/permutation"
	"ordinal-complexity/internal/models"
	"ordinal-complexity/internal/processing/histogram"
)

// Classifier maps window positions to pattern slots. It holds no mutable
// state, so one Classifier may sweep many images concurrently.
type Classifier struct {
	table   *permutation.Table
	rule    Rule
	workers int
}

type Option func(*Classifier)

// WithWorkers splits each sweep into n horizontal bands processed in
// parallel. The counts are identical to a sequential sweep.
func WithWorkers(n int) Option {
	return func(c *Classifier) {
		c.workers = n
	}
}

func NewClassifier(table *permutation.Table, rule Rule, opts ...Option) (*Classifier, error) {
	if table == nil {
		return nil, fmt.Errorf("window: nil pattern table")
	}
	if err := rule.Validate(); err != nil {
		return nil, err
	}

	c := &Classifier{
		table:   table,
		rule:    rule,
		workers: 1,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.workers < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWorkers, c.workers)
	}
	return c, nil
}

func (c *Classifier) Rule() Rule {
	return c.rule
}

func (c *Classifier) Table() *permutation.Table {
	return c.table
}

// Accepts applies the inclusion rule to the window whose top-left corner is
// (x, y). The window must lie inside the mask.
func (c *Classifier) Accepts(mask *models.Mask, x, y int) bool {
	shape := c.table.Shape()
	switch c.rule {
	case Center:
		return mask.Counts(x+shape.DX/2, y+shape.DY/2)
	default:
		return mask.Covered(x, y, shape.DX, shape.DY)
	}
}

// Classify returns the pattern slot of the window at (x, y) and whether the
// window is accepted.
func (c *Classifier) Classify(img *models.Gray, mask *models.Mask, x, y int) (int, bool) {
	slot, ok, _, _ := c.classify(img, mask, x, y, nil, nil)
	return slot, ok
}

func (c *Classifier) classify(img *models.Gray, mask *models.Mask, x, y int, buf []float64, order []int) (int, bool, []float64, []int) {
	if !c.Accepts(mask, x, y) {
		return 0, false, buf, order
	}

	shape := c.table.Shape()
	buf = img.Window(x, y, shape.DX, shape.DY, buf)
	order = permutation.Rank(buf, order)

	slot, ok := c.table.Index(order)
	if !ok {
		panic(fmt.Sprintf("window: pattern %v missing from %s table", order, shape))
	}
	return slot, true, buf, order
}

// Sweep visits every offset at which the window fits inside img, y outer and
// x inner, and counts the pattern of each accepted window. An image smaller
// than the window yields an empty histogram.
func (c *Classifier) Sweep(ctx context.Context, img *models.Gray, mask *models.Mask) (*histogram.Ordinal, error) {
	if img == nil || mask == nil {
		return nil, ErrNilInput
	}
	if img.Width != mask.Width || img.Height != mask.Height {
		return nil, fmt.Errorf("%w: image %dx%d, mask %dx%d",
			ErrShapeMismatch, img.Width, img.Height, mask.Width, mask.Height)
	}

	shape := c.table.Shape()
	rows := img.Height - shape.DY + 1
	cols := img.Width - shape.DX + 1
	if rows <= 0 || cols <= 0 {
		return histogram.NewOrdinal(c.table.Len()), nil
	}

	workers := min(c.workers, rows)
	if workers == 1 {
		hist := histogram.NewOrdinal(c.table.Len())
		if err := c.sweepRows(ctx, img, mask, 0, rows, cols, hist); err != nil {
			return nil, err
		}
		return hist, nil
	}

	bands := make([]*histogram.Ordinal, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		y0 := w * rows / workers
		y1 := (w + 1) * rows / workers
		bands[w] = histogram.NewOrdinal(c.table.Len())

		wg.Add(1)
		go func(w, y0, y1 int) {
			defer wg.Done()
			errs[w] = c.sweepRows(ctx, img, mask, y0, y1, cols, bands[w])
		}(w, y0, y1)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	hist := bands[0]
	for _, band := range bands[1:] {
		hist.Merge(band)
	}
	return hist, nil
}

func (c *Classifier) sweepRows(ctx context.Context, img *models.Gray, mask *models.Mask, y0, y1, cols int, hist *histogram.Ordinal) error {
	area := c.table.Area()
	buf := make([]float64, 0, area)
	order := make([]int, 0, area)

	var slot int
	var ok bool
	for y := y0; y < y1; y++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		for x := 0; x < cols; x++ {
			slot, ok, buf, order = c.classify(img, mask, x, y, buf, order)
			if ok {
				hist.Add(slot)
			}
		}
	}
	return nil
}
