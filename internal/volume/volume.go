// Package volume implements erosion and dilation by an arbitrary structuring
// element with a serpentine histogram scan.
//
// The image is copied into a buffer padded on every side by the element's
// extent and filled with a sentinel that never wins. A window shaped like the
// element then sweeps the buffer row by row, alternating direction, and at
// each step only the points of the relevant fronts update the histogram.
package volume

import (
	"errors"
	"fmt"

	"github.com/gogpu/morpho/internal/extremum"
	"github.com/gogpu/morpho/internal/front"
)

// ErrValueRange is returned when a sample combined with a weight could leave
// the histogram key domain.
var ErrValueRange = errors.New("volume: value out of histogram range")

// Sample is the element type of a scanned grid.
type Sample interface {
	~uint8 | ~int16
}

// Polarity selects the extremum.
type Polarity uint8

const (
	// Erode tracks the minimum of sample minus weight.
	Erode Polarity = iota

	// Dilate tracks the maximum of sample plus weight.
	Dilate
)

// String returns the polarity name.
func (p Polarity) String() string {
	if p == Dilate {
		return "dilate"
	}
	return "erode"
}

// Range is the inclusive value domain of the histogram.
type Range struct {
	Lo, Hi int
}

// Predefined ranges.
var (
	// Flat covers 8-bit samples with zero weights.
	Flat = Range{Lo: 0, Hi: 255}

	// Grey covers signed samples shifted by weights up to 255 either way.
	Grey = Range{Lo: -255, Hi: 511}
)

// Len returns the number of histogram buckets.
func (r Range) Len() int {
	return r.Hi - r.Lo + 1
}

// Params describes one scan.
type Params struct {
	// Width and Height are the image dimensions.
	Width, Height int

	// Fronts must come from the mask the scan applies. For a dilation this
	// is the reflected mask with the reflected origin.
	Fronts *front.Fronts

	Polarity Polarity
	Range    Range
}

// Plan is a padded copy of one image, ready to be scanned in bands. A Plan
// is read-only once built and may be scanned from several goroutines, each
// with its own Window.
type Plan[S Sample] struct {
	p        Params
	buf      []S
	stride   int
	padX     int
	padY     int
	sentinel int
	last     int
	delta    [front.NumDirections]int
}

// NewPlan validates the element against the image and builds the padded
// buffer. The fronts are located for the buffer stride.
func NewPlan[S Sample](src []S, p Params) (*Plan[S], error) {
	fr := p.Fronts
	if fr == nil {
		return nil, errors.New("volume: nil fronts")
	}
	if len(src) != p.Width*p.Height {
		return nil, fmt.Errorf("volume: %d samples for %dx%d image", len(src), p.Width, p.Height)
	}
	if fr.Width >= p.Width || fr.Height >= p.Height {
		return nil, fmt.Errorf("volume: %dx%d element not smaller than %dx%d image",
			fr.Width, fr.Height, p.Width, p.Height)
	}
	if err := CheckRange(src, p.Range, fr.MaxWeight, p.Polarity); err != nil {
		return nil, err
	}

	pl := &Plan[S]{
		p:      p,
		padX:   fr.Width,
		padY:   fr.Height,
		stride: p.Width + 2*fr.Width,
		last:   p.Range.Len() - 1,
	}
	pl.sentinel, _ = padding[S](p.Range, p.Polarity)

	rows := p.Height + 2*pl.padY
	pl.buf = make([]S, pl.stride*rows)
	fill := S(pl.sentinel)
	for i := range pl.buf {
		pl.buf[i] = fill
	}
	for y := range p.Height {
		off := (y+pl.padY)*pl.stride + pl.padX
		copy(pl.buf[off:off+p.Width], src[y*p.Width:(y+1)*p.Width])
	}

	fr.Locate(pl.stride)
	pl.delta = [front.NumDirections]int{
		front.Left:  -1,
		front.Right: 1,
		front.Up:    -pl.stride,
		front.Down:  pl.stride,
	}
	return pl, nil
}

// Rows returns the number of output rows.
func (pl *Plan[S]) Rows() int {
	return pl.p.Height
}

// NewWindow returns a histogram sized for the plan's range.
func (pl *Plan[S]) NewWindow() *extremum.Window {
	return extremum.New(pl.p.Range.Len())
}

// key maps the sample at buffer position pos, shifted by weight w, to a
// histogram key where smaller keys are better. Padding always maps to the
// last key, so it never wins against an image sample.
func (pl *Plan[S]) key(pos, w int) int {
	v := int(pl.buf[pos])
	if v == pl.sentinel {
		return pl.last
	}
	if pl.p.Polarity == Erode {
		return v - w - pl.p.Range.Lo
	}
	return pl.p.Range.Hi - v - w
}

func (pl *Plan[S]) decode(k int) S {
	if pl.p.Polarity == Erode {
		return S(k + pl.p.Range.Lo)
	}
	return S(pl.p.Range.Hi - k)
}

// step slides the window whose mask corner sits at buffer position corner one
// pixel toward d and returns the new corner.
func (pl *Plan[S]) step(win *extremum.Window, corner int, d front.Direction) int {
	fr := pl.p.Fronts
	next := corner + pl.delta[d]
	for _, pt := range fr.Flat[d].Points {
		win.Add(pl.key(next+pt.Pos, pt.Weight))
	}
	for _, g := range fr.Grey[d].Points {
		pos := corner + g.Pos
		win.Remove(pl.key(pos, g.Before))
		win.Add(pl.key(pos, g.After))
	}
	for _, pt := range fr.Flat[d.Opposite()].Points {
		win.Remove(pl.key(corner+pt.Pos, pt.Weight))
	}
	return next
}

// Scan computes output rows [y0, y1) into dst, a Width×Height grid. The
// window is reset first, so it may be reused across calls but not shared
// between goroutines.
func (pl *Plan[S]) Scan(dst []S, y0, y1 int, win *extremum.Window) {
	if y0 >= y1 {
		return
	}
	fr := pl.p.Fronts
	w := pl.p.Width
	ox, oy := fr.OriginX, fr.OriginY

	// The corner is the buffer position of mask cell (0,0). Output (x,y)
	// sits at corner column x+padX-ox and row y+padY-oy.
	cxLo := pl.padX - ox
	cy := y0 + pl.padY - oy

	// At column 0 the window covers padding only.
	win.Reset()
	win.AddN(pl.last, fr.Size())
	corner := cy * pl.stride
	for cx := 0; cx < cxLo; cx++ {
		corner = pl.step(win, corner, front.Right)
	}

	x := 0
	for y := y0; y < y1; y++ {
		if y > y0 {
			corner = pl.step(win, corner, front.Down)
		}
		row := dst[y*w : (y+1)*w]
		row[x] = pl.decode(win.Advance())

		if (y-y0)%2 == 0 {
			for x < w-1 {
				corner = pl.step(win, corner, front.Right)
				x++
				row[x] = pl.decode(win.Advance())
			}
		} else {
			for x > 0 {
				corner = pl.step(win, corner, front.Left)
				x--
				row[x] = pl.decode(win.Advance())
			}
		}
	}
}

// padding returns the buffer value marking cells outside the image: one step
// beyond r when S can hold it, otherwise the bound of r itself. outside
// reports which.
func padding[S Sample](r Range, pol Polarity) (v int, outside bool) {
	v = r.Hi + 1
	if pol == Dilate {
		v = r.Lo - 1
	}
	if int(S(v)) == v {
		return v, true
	}
	if pol == Dilate {
		return r.Lo, false
	}
	return r.Hi, false
}

// CheckRange reports ErrValueRange when some sample, shifted by a weight in
// [0, maxWeight] in the direction of the polarity, could leave r. When the
// padding value lies inside r, weighted samples must also stay off it. The
// check is conservative: it combines the global extremes.
func CheckRange[S Sample](src []S, r Range, maxWeight int, pol Polarity) error {
	if len(src) == 0 {
		return nil
	}
	lo, hi := int(src[0]), int(src[0])
	for _, v := range src[1:] {
		lo = min(lo, int(v))
		hi = max(hi, int(v))
	}

	minOut, maxOut := lo-maxWeight, hi
	if pol == Dilate {
		minOut, maxOut = lo, hi+maxWeight
	}
	if minOut < r.Lo || maxOut > r.Hi {
		return fmt.Errorf("%w: samples [%d, %d] with weights up to %d give [%d, %d], outside [%d, %d]",
			ErrValueRange, lo, hi, maxWeight, minOut, maxOut, r.Lo, r.Hi)
	}
	// Unweighted, a sample equal to the padding decodes to itself.
	pad, outside := padding[S](r, pol)
	if outside || maxWeight == 0 {
		return nil
	}
	if (pol == Erode && hi == pad) || (pol == Dilate && lo == pad) {
		return fmt.Errorf("%w: weighted sample %d equals the padding value", ErrValueRange, pad)
	}
	return nil
}
