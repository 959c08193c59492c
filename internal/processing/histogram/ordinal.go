// Package histogram accumulates ordinal-pattern hits into a count vector.
package histogram

import "fmt"

// Ordinal is a count vector indexed by pattern slot. It is not safe for
// concurrent use; parallel sweeps give each worker its own Ordinal and merge.
type Ordinal struct {
	counts []int64
	total  int64
}

// NewOrdinal creates an empty count vector with bins slots.
func NewOrdinal(bins int) *Ordinal {
	return &Ordinal{
		counts: make([]int64, bins),
	}
}

// Add records one accepted window in slot. A slot outside the vector is a
// caller defect and panics.
func (h *Ordinal) Add(slot int) {
	h.counts[slot]++
	h.total++
}

// Merge adds the counts of other into h.
func (h *Ordinal) Merge(other *Ordinal) {
	if len(other.counts) != len(h.counts) {
		panic(fmt.Sprintf("histogram: merging %d bins into %d", len(other.counts), len(h.counts)))
	}
	for i, c := range other.counts {
		h.counts[i] += c
	}
	h.total += other.total
}

func (h *Ordinal) Bins() int {
	return len(h.counts)
}

// Total is the number of accepted windows.
func (h *Ordinal) Total() int64 {
	return h.total
}

// Counts returns a copy of the count vector.
func (h *Ordinal) Counts() []int64 {
	out := make([]int64, len(h.counts))
	copy(out, h.counts)
	return out
}

// NonZero is the number of slots hit at least once.
func (h *Ordinal) NonZero() int {
	n := 0
	for _, c := range h.counts {
		if c > 0 {
			n++
		}
	}
	return n
}

// Probabilities normalizes the counts by the total. With no accepted
// windows it returns the all-zero vector.
func (h *Ordinal) Probabilities() []float64 {
	p := make([]float64, len(h.counts))
	if h.total == 0 {
		return p
	}

	total := float64(h.total)
	for i, c := range h.counts {
		p[i] = float64(c) / total
	}
	return p
}
