// Package permutation enumerates the ordinal patterns of a sliding window and
// maps each pattern to a fixed slot.
package permutation

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/stat/combin"
)

// MaxArea bounds dx*dy. 9! = 362880 patterns is the largest table built.
const MaxArea = 9

var (
	ErrInvalidShape = errors.New("permutation: window dimensions must be positive")
	ErrAreaTooLarge = errors.New("permutation: window area exceeds maximum")
)

// Shape is a window size in pixels.
type Shape struct {
	DX int
	DY int
}

func (s Shape) Area() int {
	return s.DX * s.DY
}

func (s Shape) Validate() error {
	if s.DX < 1 || s.DY < 1 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidShape, s.DX, s.DY)
	}
	if s.Area() > MaxArea {
		return fmt.Errorf("%w: %dx%d has area %d, limit %d", ErrAreaTooLarge, s.DX, s.DY, s.Area(), MaxArea)
	}
	return nil
}

func (s Shape) String() string {
	return fmt.Sprintf("%dx%d", s.DX, s.DY)
}

// Table holds every permutation of 0..m-1 in lexicographic order together
// with the reverse lookup. A Table is never modified after NewTable returns,
// so one instance can be shared by any number of goroutines.
type Table struct {
	shape    Shape
	area     int
	patterns []uint8
	index    map[uint64]int
}

// NewTable enumerates the pattern space of a dx by dy window.
func NewTable(dx, dy int) (*Table, error) {
	shape := Shape{DX: dx, DY: dy}
	if err := shape.Validate(); err != nil {
		return nil, err
	}

	m := shape.Area()
	n := combin.NumPermutations(m, m)

	t := &Table{
		shape:    shape,
		area:     m,
		patterns: make([]uint8, 0, n*m),
		index:    make(map[uint64]int, n),
	}

	current := make([]uint8, m)
	for i := range current {
		current[i] = uint8(i)
	}

	for slot := 0; ; slot++ {
		t.patterns = append(t.patterns, current...)
		t.index[encodeBytes(current)] = slot
		if !nextPermutation(current) {
			break
		}
	}

	if len(t.index) != n {
		return nil, fmt.Errorf("permutation: enumerated %d distinct patterns for %s, want %d", len(t.index), shape, n)
	}

	return t, nil
}

func (t *Table) Shape() Shape {
	return t.shape
}

// Area is the number of pixels in one window.
func (t *Table) Area() int {
	return t.area
}

// Len is the size of the pattern space, (dx*dy)!.
func (t *Table) Len() int {
	return len(t.patterns) / t.area
}

// At returns a copy of the pattern stored in slot i.
func (t *Table) At(i int) []int {
	if i < 0 || i >= t.Len() {
		panic(fmt.Sprintf("permutation: slot %d out of range [0, %d)", i, t.Len()))
	}
	raw := t.patterns[i*t.area : (i+1)*t.area]
	pattern := make([]int, t.area)
	for k, v := range raw {
		pattern[k] = int(v)
	}
	return pattern
}

// Index returns the slot of pattern. The second result is false when pattern
// is not a permutation of this table's window.
func (t *Table) Index(pattern []int) (int, bool) {
	if len(pattern) != t.area {
		return 0, false
	}
	slot, ok := t.index[encodeInts(pattern)]
	return slot, ok
}

// Keys pack a pattern four bits per position; MaxArea keeps every entry
// below 16.
func encodeBytes(pattern []uint8) uint64 {
	var key uint64
	for _, v := range pattern {
		key = key<<4 | uint64(v)
	}
	return key
}

func encodeInts(pattern []int) uint64 {
	var key uint64
	for _, v := range pattern {
		if v < 0 || v > 15 {
			return ^uint64(0)
		}
		key = key<<4 | uint64(v)
	}
	return key
}

// nextPermutation rearranges p into its lexicographic successor and reports
// false once p is the last permutation.
func nextPermutation(p []uint8) bool {
	i := len(p) - 2
	for i >= 0 && p[i] >= p[i+1] {
		i--
	}
	if i < 0 {
		return false
	}

	j := len(p) - 1
	for p[j] <= p[i] {
		j--
	}
	p[i], p[j] = p[j], p[i]

	for l, r := i+1, len(p)-1; l < r; l, r = l+1, r-1 {
		p[l], p[r] = p[r], p[l]
	}
	return true
}
