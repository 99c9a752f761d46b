package irb

import (
	"fmt"
	"math"
)

// Image is an immutable grid of samples stored in row-major order.
//
// Coordinates are always given as (col, row), that is x then y.
type Image struct {
	width  int
	height int
	data   []float32
}

// NewImage creates an image from row-major data.
//
// It fails with an image length *DimensionError if len(data) != width*height,
// and with *OverflowError if width*height does not fit in an int.
// The image takes ownership of data.
func NewImage(data []float32, width, height int) (*Image, error) {
	n, err := imageLen(width, height)
	if err != nil {
		return nil, err
	}
	if len(data) != n {
		return nil, &DimensionError{Kind: KindImageLength, Actual: len(data), Expected: n}
	}
	return &Image{width: width, height: height, data: data}, nil
}

// imageLen returns width*height, checked for sign and overflow.
func imageLen(width, height int) (int, error) {
	if width < 0 || height < 0 {
		return 0, fmt.Errorf("invalid image dimensions %dx%d", width, height)
	}
	if height != 0 && width > math.MaxInt/height {
		return 0, &OverflowError{Width: width, Height: height}
	}
	return width * height, nil
}

// Width returns the number of columns.
func (m *Image) Width() int { return m.width }

// Height returns the number of rows.
func (m *Image) Height() int { return m.height }

// Get returns the sample at (col, row) and false if it is out of bounds.
func (m *Image) Get(col, row int) (float32, bool) {
	if col < 0 || row < 0 || col >= m.width || row >= m.height {
		return 0, false
	}
	return m.data[row*m.width+col], true
}

// At returns the sample at (col, row). It panics if the coordinates are out of bounds.
func (m *Image) At(col, row int) float32 {
	v, ok := m.Get(col, row)
	if !ok {
		panic(fmt.Sprintf("index out of bounds for %dx%d image: (%d, %d)", m.width, m.height, col, row))
	}
	return v
}

// Row returns a copy of row r, or nil if r is out of bounds.
func (m *Image) Row(r int) []float32 {
	if r < 0 || r >= m.height {
		return nil
	}
	return append([]float32(nil), m.data[r*m.width:(r+1)*m.width]...)
}

// Values returns a copy of all samples in row-major order.
func (m *Image) Values() []float32 {
	return append([]float32(nil), m.data...)
}

// Map returns a new image with fn applied to every sample.
func (m *Image) Map(fn func(col, row int, v float32) (float32, error)) (*Image, error) {
	out := make([]float32, len(m.data))
	for i, v := range m.data {
		mv, err := fn(i%m.width, i/m.width, v)
		if err != nil {
			return nil, fmt.Errorf("map (%d, %d): %w", i%m.width, i/m.width, err)
		}
		out[i] = mv
	}
	return &Image{width: m.width, height: m.height, data: out}, nil
}

// Stats summarizes the finite samples of an image.
type Stats struct {
	Min   float32 `json:"min" yaml:"min"`
	Max   float32 `json:"max" yaml:"max"`
	Mean  float64 `json:"mean" yaml:"mean"`
	Count int     `json:"count" yaml:"count"`
}

// Stats returns min, max and mean over finite samples. NaN and infinities are ignored.
func (m *Image) Stats() Stats {
	var (
		s   Stats
		sum float64
	)
	for _, v := range m.data {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			continue
		}
		if s.Count == 0 || v < s.Min {
			s.Min = v
		}
		if s.Count == 0 || v > s.Max {
			s.Max = v
		}
		sum += f
		s.Count++
	}
	if s.Count > 0 {
		s.Mean = sum / float64(s.Count)
	}
	return s
}
