package morpho

import (
	"fmt"

	"github.com/gogpu/morpho/internal/front"
)

// StructuringElement is a flat structuring element: a Width×Height mask in
// which any nonzero cell is included, plus the origin that aligns with the
// output pixel.
type StructuringElement struct {
	Width, Height    int
	Mask             []uint8
	OriginX, OriginY int
}

// NewStructuringElement copies mask into a validated element.
func NewStructuringElement(width, height int, mask []uint8, ox, oy int) (StructuringElement, error) {
	se := StructuringElement{
		Width:   width,
		Height:  height,
		Mask:    append([]uint8(nil), mask...),
		OriginX: ox,
		OriginY: oy,
	}
	if err := se.Validate(); err != nil {
		return StructuringElement{}, err
	}
	return se, nil
}

// NewRectangle returns a filled width×height rectangle with its origin at
// ((width-1)/2, (height-1)/2), the placement used by the separable
// operations. Dimensions below 1 are raised to 1.
func NewRectangle(width, height int) StructuringElement {
	width, height = max(width, 1), max(height, 1)
	mask := make([]uint8, width*height)
	for i := range mask {
		mask[i] = 1
	}
	return StructuringElement{
		Width:   width,
		Height:  height,
		Mask:    mask,
		OriginX: (width - 1) / 2,
		OriginY: (height - 1) / 2,
	}
}

// NewLine returns a segment of the given length along axis, origin at
// (length-1)/2.
func NewLine(length int, axis Axis) StructuringElement {
	if axis == Vertical {
		return NewRectangle(1, length)
	}
	return NewRectangle(length, 1)
}

// NewCross returns a size×size plus sign: the middle row and column.
func NewCross(size int) StructuringElement {
	size = max(size, 1)
	c := (size - 1) / 2
	mask := make([]uint8, size*size)
	for i := range size {
		mask[i+c*size] = 1
		mask[c+i*size] = 1
	}
	return StructuringElement{Width: size, Height: size, Mask: mask, OriginX: c, OriginY: c}
}

// NewDisk returns a digital disk of the given radius: every cell whose centre
// lies within radius of the centre cell. The element is (2r+1)×(2r+1).
func NewDisk(radius int) StructuringElement {
	radius = max(radius, 0)
	d := 2*radius + 1
	mask := make([]uint8, d*d)
	for y := range d {
		for x := range d {
			dx, dy := x-radius, y-radius
			if dx*dx+dy*dy <= radius*radius {
				mask[x+y*d] = 1
			}
		}
	}
	return StructuringElement{Width: d, Height: d, Mask: mask, OriginX: radius, OriginY: radius}
}

// ElementFromGrid builds an element from an image: every nonzero pixel is
// included.
func ElementFromGrid(g *Gray8, ox, oy int) (StructuringElement, error) {
	if err := g.Validate(); err != nil {
		return StructuringElement{}, err
	}
	return NewStructuringElement(g.Width, g.Height, g.Pix, ox, oy)
}

// Included reports whether cell (x, y) belongs to the element.
func (se StructuringElement) Included(x, y int) bool {
	return x >= 0 && x < se.Width && y >= 0 && y < se.Height && se.Mask[x+y*se.Width] != 0
}

// Reflect returns the element point-reflected through its centre, with the
// origin reflected accordingly.
func (se StructuringElement) Reflect() StructuringElement {
	return StructuringElement{
		Width:   se.Width,
		Height:  se.Height,
		Mask:    front.Reflect(se.Mask),
		OriginX: se.Width - 1 - se.OriginX,
		OriginY: se.Height - 1 - se.OriginY,
	}
}

// Validate checks the dimensions, the mask length and the origin.
func (se StructuringElement) Validate() error {
	return validateMask(se.Width, se.Height, se.Mask, se.OriginX, se.OriginY)
}

// StructuringFunction is a grey-level structuring element. A cell value c
// means weight c-1 (so weights lie in [0, 254]); 0 excludes the cell.
type StructuringFunction struct {
	Width, Height    int
	Mask             []uint8
	OriginX, OriginY int
}

// NewStructuringFunction copies mask into a validated function.
func NewStructuringFunction(width, height int, mask []uint8, ox, oy int) (StructuringFunction, error) {
	sf := StructuringFunction{
		Width:   width,
		Height:  height,
		Mask:    append([]uint8(nil), mask...),
		OriginX: ox,
		OriginY: oy,
	}
	if err := sf.Validate(); err != nil {
		return StructuringFunction{}, err
	}
	return sf, nil
}

// FunctionFromGrid builds a function from an image whose pixel values are
// the encoded cells.
func FunctionFromGrid(g *Gray8, ox, oy int) (StructuringFunction, error) {
	if err := g.Validate(); err != nil {
		return StructuringFunction{}, err
	}
	return NewStructuringFunction(g.Width, g.Height, g.Pix, ox, oy)
}

// FlatFunction returns the function equal to se with every weight 0.
func FlatFunction(se StructuringElement) StructuringFunction {
	mask := make([]uint8, len(se.Mask))
	for i, c := range se.Mask {
		if c != 0 {
			mask[i] = 1
		}
	}
	return StructuringFunction{
		Width:   se.Width,
		Height:  se.Height,
		Mask:    mask,
		OriginX: se.OriginX,
		OriginY: se.OriginY,
	}
}

// Weight returns the weight of cell (x, y) and whether the cell is included.
func (sf StructuringFunction) Weight(x, y int) (int, bool) {
	if x < 0 || x >= sf.Width || y < 0 || y >= sf.Height {
		return 0, false
	}
	c := sf.Mask[x+y*sf.Width]
	if c == 0 {
		return 0, false
	}
	return int(c) - 1, true
}

// Reflect returns the function point-reflected through its centre, with the
// origin reflected accordingly.
func (sf StructuringFunction) Reflect() StructuringFunction {
	return StructuringFunction{
		Width:   sf.Width,
		Height:  sf.Height,
		Mask:    front.Reflect(sf.Mask),
		OriginX: sf.Width - 1 - sf.OriginX,
		OriginY: sf.Height - 1 - sf.OriginY,
	}
}

// Validate checks the dimensions, the mask length and the origin.
func (sf StructuringFunction) Validate() error {
	return validateMask(sf.Width, sf.Height, sf.Mask, sf.OriginX, sf.OriginY)
}

func validateMask(w, h int, mask []uint8, ox, oy int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: %dx%d element", ErrInvalidSize, w, h)
	}
	if len(mask) != w*h {
		return fmt.Errorf("%w: %d cells for %dx%d element", ErrInvalidSize, len(mask), w, h)
	}
	if ox < 0 || ox >= w || oy < 0 || oy >= h {
		return fmt.Errorf("%w: (%d,%d) outside %dx%d element", ErrInvalidOrigin, ox, oy, w, h)
	}
	if mask[ox+oy*w] == 0 {
		return fmt.Errorf("%w: (%d,%d) is excluded", ErrInvalidOrigin, ox, oy)
	}
	return nil
}
