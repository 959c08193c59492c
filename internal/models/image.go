package models

import (
	"fmt"
	"image"
	"time"
)

// ImageData is a decoded input image reduced to its intensity plane.
type ImageData struct {
	Path     string
	Format   string
	Width    int
	Height   int
	Channels int
	Gray     *Gray
	LoadTime time.Time
	FileSize int64
}

// Gray is a row-major plane of scalar intensities.
type Gray struct {
	Width  int
	Height int
	Pix    []float64
}

func NewGray(width, height int) *Gray {
	return &Gray{
		Width:  width,
		Height: height,
		Pix:    make([]float64, width*height),
	}
}

// GrayFromRows copies a rectangular [][]float64 into a plane.
func GrayFromRows(rows [][]float64) (*Gray, error) {
	height := len(rows)
	width := 0
	if height > 0 {
		width = len(rows[0])
	}

	g := NewGray(width, height)
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("row %d has %d values, expected %d", y, len(row), width)
		}
		copy(g.Pix[y*width:], row)
	}
	return g, nil
}

// GrayFromImage averages the red, green and blue channels of every pixel
// with equal weight. Channels are taken at 8-bit depth.
func GrayFromImage(img image.Image) *Gray {
	bounds := img.Bounds()
	g := NewGray(bounds.Dx(), bounds.Dy())

	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, gr, b, _ := img.At(x, y).RGBA()
			sum := float64(r>>8) + float64(gr>>8) + float64(b>>8)
			g.Pix[i] = sum / 3.0
			i++
		}
	}
	return g
}

func (g *Gray) At(x, y int) float64 {
	return g.Pix[y*g.Width+x]
}

func (g *Gray) Set(x, y int, v float64) {
	g.Pix[y*g.Width+x] = v
}

// Window copies the dx by dy block at (x, y) into dst in row-major order.
func (g *Gray) Window(x, y, dx, dy int, dst []float64) []float64 {
	dst = dst[:0]
	for row := y; row < y+dy; row++ {
		start := row*g.Width + x
		dst = append(dst, g.Pix[start:start+dx]...)
	}
	return dst
}

// Mask marks which pixels take part in a measurement. Zero excludes a pixel,
// any other value includes it.
type Mask struct {
	Width  int
	Height int
	Pix    []uint8
}

func NewMask(width, height int) *Mask {
	return &Mask{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height),
	}
}

// FullMask includes every pixel.
func FullMask(width, height int) *Mask {
	m := NewMask(width, height)
	for i := range m.Pix {
		m.Pix[i] = 255
	}
	return m
}

// MaskFromRows copies a rectangular [][]uint8 into a mask.
func MaskFromRows(rows [][]uint8) (*Mask, error) {
	height := len(rows)
	width := 0
	if height > 0 {
		width = len(rows[0])
	}

	m := NewMask(width, height)
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("row %d has %d values, expected %d", y, len(row), width)
		}
		copy(m.Pix[y*width:], row)
	}
	return m, nil
}

func (m *Mask) Counts(x, y int) bool {
	return m.Pix[y*m.Width+x] > 0
}

// Covered reports whether every pixel of the dx by dy block at (x, y) counts.
func (m *Mask) Covered(x, y, dx, dy int) bool {
	for row := y; row < y+dy; row++ {
		start := row*m.Width + x
		for _, v := range m.Pix[start : start+dx] {
			if v == 0 {
				return false
			}
		}
	}
	return true
}

// Included is the number of pixels that count.
func (m *Mask) Included() int {
	n := 0
	for _, v := range m.Pix {
		if v > 0 {
			n++
		}
	}
	return n
}
