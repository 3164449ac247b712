// Package front decomposes a structuring element into directional fronts.
//
// When a window shaped like the element slides by one pixel toward a
// direction d, only the points on its boundary change coverage: the points
// of the d front (at the new position) enter and the points of the opposite
// front (at the old position) leave. For structuring functions, interior
// points whose weight changes under the slide are collected into grey fronts
// so a histogram can swap their contribution without a rescan.
package front

import (
	"errors"
	"fmt"
)

// Errors returned by Analyze and AnalyzeGrey.
var (
	// ErrOriginOutside is returned when the origin is not inside the mask.
	ErrOriginOutside = errors.New("front: origin outside mask")

	// ErrOriginExcluded is returned when the origin cell is excluded.
	ErrOriginExcluded = errors.New("front: origin on excluded cell")

	// ErrMaskSize is returned when the mask length does not match its
	// dimensions.
	ErrMaskSize = errors.New("front: mask size mismatch")
)

// Direction is one of the four scan directions.
type Direction uint8

// Scan directions.
const (
	Left Direction = iota
	Right
	Up
	Down
)

// NumDirections is the number of scan directions.
const NumDirections = 4

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	return d ^ 1
}

// Step returns the unit displacement of d in image coordinates (y grows
// downward).
func (d Direction) Step() (dx, dy int) {
	switch d {
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	case Up:
		return 0, -1
	default:
		return 0, 1
	}
}

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
}

// Point is one mask point with its additive weight. Pos is the linear offset
// of the point from the mask corner once Locate has been called.
type Point struct {
	X, Y   int
	Weight int
	Pos    int
}

// Front is the boundary of a mask toward one direction: every included point
// whose neighbour toward Dir is excluded or off the mask.
type Front struct {
	Dir    Direction
	Points []Point
}

// Len returns the number of points.
func (f *Front) Len() int { return len(f.Points) }

// GreyPoint is a mask point whose weight at a fixed image location changes
// when the window slides one step: Before is its weight in the old window,
// After the weight of the mask point that covers the same location next.
type GreyPoint struct {
	X, Y          int
	Before, After int
	Pos           int
}

// GreyFront holds the interior weight changes for a slide toward Dir.
type GreyFront struct {
	Dir    Direction
	Points []GreyPoint
}

// Len returns the number of points.
func (f *GreyFront) Len() int { return len(f.Points) }

// Fronts is the complete decomposition of a structuring element.
type Fronts struct {
	Width, Height    int
	OriginX, OriginY int

	// Flat is indexed by Direction.
	Flat [NumDirections]Front

	// Grey is indexed by Direction. It is empty for flat elements.
	Grey [NumDirections]GreyFront

	// Points lists every included point.
	Points []Point

	// MaxWeight is the largest point weight (0 for flat elements).
	MaxWeight int

	stride int
}

// Analyze decomposes a flat mask. Any nonzero cell is included and every
// point carries weight 0.
func Analyze(mask []uint8, w, h, ox, oy int) (*Fronts, error) {
	return analyze(mask, w, h, ox, oy, false)
}

// AnalyzeGrey decomposes a structuring function. A nonzero cell c is
// included with weight c-1; grey fronts are filled.
func AnalyzeGrey(mask []uint8, w, h, ox, oy int) (*Fronts, error) {
	return analyze(mask, w, h, ox, oy, true)
}

func analyze(mask []uint8, w, h, ox, oy int, grey bool) (*Fronts, error) {
	if w <= 0 || h <= 0 || len(mask) != w*h {
		return nil, fmt.Errorf("%w: %dx%d mask with %d cells", ErrMaskSize, w, h, len(mask))
	}
	if ox < 0 || ox >= w || oy < 0 || oy >= h {
		return nil, fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOriginOutside, ox, oy, w, h)
	}
	if mask[ox+oy*w] == 0 {
		return nil, fmt.Errorf("%w: (%d,%d)", ErrOriginExcluded, ox, oy)
	}

	fr := &Fronts{Width: w, Height: h, OriginX: ox, OriginY: oy}
	for d := range Direction(NumDirections) {
		fr.Flat[d].Dir = d
		fr.Grey[d].Dir = d
	}

	included := func(x, y int) bool {
		return x >= 0 && x < w && y >= 0 && y < h && mask[x+y*w] != 0
	}
	weight := func(x, y int) int {
		if !grey {
			return 0
		}
		return int(mask[x+y*w]) - 1
	}

	for y := range h {
		for x := range w {
			if !included(x, y) {
				continue
			}
			wt := weight(x, y)
			fr.Points = append(fr.Points, Point{X: x, Y: y, Weight: wt})
			fr.MaxWeight = max(fr.MaxWeight, wt)

			for d := range Direction(NumDirections) {
				dx, dy := d.Step()
				if !included(x+dx, y+dy) {
					fr.Flat[d].Points = append(fr.Flat[d].Points, Point{X: x, Y: y, Weight: wt})
				}
				if !grey {
					continue
				}
				// Sliding toward d, the location under p is next covered by
				// the mask point one step against d.
				if included(x-dx, y-dy) {
					if after := weight(x-dx, y-dy); after != wt {
						fr.Grey[d].Points = append(fr.Grey[d].Points, GreyPoint{
							X: x, Y: y, Before: wt, After: after,
						})
					}
				}
			}
		}
	}
	return fr, nil
}

// Locate computes Pos for every point as an offset into a row-major buffer
// with the given stride, relative to the buffer position of mask cell (0,0).
func (fr *Fronts) Locate(stride int) {
	fr.stride = stride
	for i := range fr.Points {
		p := &fr.Points[i]
		p.Pos = p.X + p.Y*stride
	}
	for d := range fr.Flat {
		for i := range fr.Flat[d].Points {
			p := &fr.Flat[d].Points[i]
			p.Pos = p.X + p.Y*stride
		}
		for i := range fr.Grey[d].Points {
			p := &fr.Grey[d].Points[i]
			p.Pos = p.X + p.Y*stride
		}
	}
}

// Stride returns the stride passed to the last Locate call, or 0.
func (fr *Fronts) Stride() int {
	return fr.stride
}

// Size returns the number of included points.
func (fr *Fronts) Size() int {
	return len(fr.Points)
}

// Reflect returns the point reflection of a row-major mask through its
// centre: out[x,y] = in[w-1-x, h-1-y]. For a row-major layout this is the
// reversed cell order, so the dimensions are not needed.
func Reflect(mask []uint8) []uint8 {
	out := make([]uint8, len(mask))
	for i, c := range mask {
		out[len(mask)-1-i] = c
	}
	return out
}
