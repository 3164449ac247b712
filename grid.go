package morpho

import "fmt"

// Gray8 is a row-major grid of 8-bit samples.
type Gray8 struct {
	Width, Height int
	Pix           []uint8
}

// NewGray8 allocates a zeroed grid.
func NewGray8(width, height int) *Gray8 {
	return &Gray8{Width: width, Height: height, Pix: make([]uint8, max(0, width*height))}
}

// At returns the sample at (x, y).
func (g *Gray8) At(x, y int) uint8 {
	return g.Pix[x+y*g.Width]
}

// Set stores v at (x, y).
func (g *Gray8) Set(x, y int, v uint8) {
	g.Pix[x+y*g.Width] = v
}

// Validate reports ErrInvalidGrid for a nil grid, non-positive dimensions or
// a buffer whose length is not Width*Height.
func (g *Gray8) Validate() error {
	if g == nil {
		return fmt.Errorf("%w: nil", ErrInvalidGrid)
	}
	return validateGrid(g.Width, g.Height, len(g.Pix))
}

// Clone returns a deep copy.
func (g *Gray8) Clone() *Gray8 {
	c := *g
	c.Pix = append([]uint8(nil), g.Pix...)
	return &c
}

// Complement returns 255-v for every sample.
func (g *Gray8) Complement() *Gray8 {
	c := NewGray8(g.Width, g.Height)
	for i, v := range g.Pix {
		c.Pix[i] = 255 - v
	}
	return c
}

// ToGray16 widens every sample.
func (g *Gray8) ToGray16() *Gray16 {
	c := NewGray16(g.Width, g.Height)
	for i, v := range g.Pix {
		c.Pix[i] = int16(v)
	}
	return c
}

// Gray16 is a row-major grid of signed samples, used by the grey-level
// operations whose results lie in [-255, 510].
type Gray16 struct {
	Width, Height int
	Pix           []int16
}

// NewGray16 allocates a zeroed grid.
func NewGray16(width, height int) *Gray16 {
	return &Gray16{Width: width, Height: height, Pix: make([]int16, max(0, width*height))}
}

// At returns the sample at (x, y).
func (g *Gray16) At(x, y int) int16 {
	return g.Pix[x+y*g.Width]
}

// Set stores v at (x, y).
func (g *Gray16) Set(x, y int, v int16) {
	g.Pix[x+y*g.Width] = v
}

// Validate reports ErrInvalidGrid for a nil grid, non-positive dimensions or
// a buffer whose length is not Width*Height.
func (g *Gray16) Validate() error {
	if g == nil {
		return fmt.Errorf("%w: nil", ErrInvalidGrid)
	}
	return validateGrid(g.Width, g.Height, len(g.Pix))
}

// Clone returns a deep copy.
func (g *Gray16) Clone() *Gray16 {
	c := *g
	c.Pix = append([]int16(nil), g.Pix...)
	return &c
}

// ToGray8 narrows every sample, clamping to [0, 255].
func (g *Gray16) ToGray8() *Gray8 {
	c := NewGray8(g.Width, g.Height)
	for i, v := range g.Pix {
		c.Pix[i] = uint8(min(max(v, 0), 255))
	}
	return c
}

func validateGrid(w, h, n int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidGrid, w, h)
	}
	if n != w*h {
		return fmt.Errorf("%w: %d samples for %dx%d", ErrInvalidGrid, n, w, h)
	}
	return nil
}

// checkGray8 validates src and dst and requires equal dimensions.
func checkGray8(src, dst *Gray8) error {
	if err := src.Validate(); err != nil {
		return fmt.Errorf("source: %w", err)
	}
	if err := dst.Validate(); err != nil {
		return fmt.Errorf("destination: %w", err)
	}
	return sameSize(src.Width, src.Height, dst.Width, dst.Height)
}

// checkGray16 validates src and dst and requires equal dimensions.
func checkGray16(src, dst *Gray16) error {
	if err := src.Validate(); err != nil {
		return fmt.Errorf("source: %w", err)
	}
	if err := dst.Validate(); err != nil {
		return fmt.Errorf("destination: %w", err)
	}
	return sameSize(src.Width, src.Height, dst.Width, dst.Height)
}

func sameSize(sw, sh, dw, dh int) error {
	if sw != dw || sh != dh {
		return fmt.Errorf("%w: %dx%d and %dx%d", ErrDimensionMismatch, sw, sh, dw, dh)
	}
	return nil
}
