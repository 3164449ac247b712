package morpho

import (
	"fmt"

	"github.com/gogpu/morpho/internal/anchor"
)

// Erosion1D computes the running minimum of every row (Horizontal) or column
// (Vertical) over a segment of size samples. size must lie in [2, n) where n
// is the line length. src and dst may be the same grid.
func (e *Engine) Erosion1D(src, dst *Gray8, size int, axis Axis) error {
	return e.Apply1D(Erosion, src, dst, size, axis)
}

// Dilation1D computes the running maximum over the reflected segment.
func (e *Engine) Dilation1D(src, dst *Gray8, size int, axis Axis) error {
	return e.Apply1D(Dilation, src, dst, size, axis)
}

// Opening1D is Erosion1D followed by Dilation1D. size must be odd.
func (e *Engine) Opening1D(src, dst *Gray8, size int, axis Axis) error {
	return e.Apply1D(Opening, src, dst, size, axis)
}

// Closing1D is Dilation1D followed by Erosion1D. size must be odd.
func (e *Engine) Closing1D(src, dst *Gray8, size int, axis Axis) error {
	return e.Apply1D(Closing, src, dst, size, axis)
}

// Apply1D runs op with a linear element of the given size along axis.
func (e *Engine) Apply1D(op Operation, src, dst *Gray8, size int, axis Axis) error {
	if !op.valid() {
		return fmt.Errorf("morpho: unknown operation %d", op)
	}
	if err := checkGray8(src, dst); err != nil {
		return err
	}
	switch axis {
	case Horizontal:
		if err := checkSegment(op, size, src.Width, "width"); err != nil {
			return err
		}
	case Vertical:
		if err := checkSegment(op, size, src.Height, "height"); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %d", ErrInvalidAxis, axis)
	}

	rebuilds := e.pass(op.line(), src, dst, size, axis)
	e.log.Debug("morpho: separable",
		"op", op, "axis", axis, "size", size,
		"width", src.Width, "height", src.Height, "rebuilds", rebuilds)
	return nil
}

// Erosion2D erodes by a filled seW×seH rectangle with origin
// ((seW-1)/2, (seH-1)/2): a horizontal pass then a vertical pass.
func (e *Engine) Erosion2D(src, dst *Gray8, seW, seH int) error {
	return e.Apply2D(Erosion, src, dst, seW, seH)
}

// Dilation2D dilates by a filled seW×seH rectangle.
func (e *Engine) Dilation2D(src, dst *Gray8, seW, seH int) error {
	return e.Apply2D(Dilation, src, dst, seW, seH)
}

// Opening2D opens by a filled seW×seH rectangle. Both sizes must be odd.
func (e *Engine) Opening2D(src, dst *Gray8, seW, seH int) error {
	return e.Apply2D(Opening, src, dst, seW, seH)
}

// Closing2D closes by a filled seW×seH rectangle. Both sizes must be odd.
func (e *Engine) Closing2D(src, dst *Gray8, seW, seH int) error {
	return e.Apply2D(Closing, src, dst, seW, seH)
}

// Apply2D runs op with a filled seW×seH rectangle.
//
// Every size is checked before dst is written. Opening runs a horizontal
// erosion, a vertical opening and a horizontal dilation through one scratch
// grid; closing mirrors it.
func (e *Engine) Apply2D(op Operation, src, dst *Gray8, seW, seH int) error {
	if !op.valid() {
		return fmt.Errorf("morpho: unknown operation %d", op)
	}
	if err := checkGray8(src, dst); err != nil {
		return err
	}
	if err := checkSegment(op, seW, src.Width, "width"); err != nil {
		return err
	}
	if err := checkSegment(op, seH, src.Height, "height"); err != nil {
		return err
	}

	var rebuilds int
	switch op {
	case Erosion, Dilation:
		rebuilds += e.pass(op.line(), src, dst, seW, Horizontal)
		rebuilds += e.pass(op.line(), dst, dst, seH, Vertical)
	case Opening:
		tmp := NewGray8(src.Width, src.Height)
		rebuilds += e.pass(anchor.Erosion, src, tmp, seW, Horizontal)
		rebuilds += e.pass(anchor.Opening, tmp, tmp, seH, Vertical)
		rebuilds += e.pass(anchor.Dilation, tmp, dst, seW, Horizontal)
	case Closing:
		tmp := NewGray8(src.Width, src.Height)
		rebuilds += e.pass(anchor.Dilation, src, tmp, seW, Horizontal)
		rebuilds += e.pass(anchor.Closing, tmp, tmp, seH, Vertical)
		rebuilds += e.pass(anchor.Erosion, tmp, dst, seW, Horizontal)
	}

	e.log.Debug("morpho: rectangle",
		"op", op, "seW", seW, "seH", seH,
		"width", src.Width, "height", src.Height, "rebuilds", rebuilds)
	return nil
}

// pass filters every line of src along axis into dst and returns the number
// of histogram rebuilds. Lines are independent and split across workers.
func (e *Engine) pass(op anchor.Op, src, dst *Gray8, size int, axis Axis) int {
	w, h := src.Width, src.Height
	if axis == Horizontal {
		lf := newLineFilters(e.workers, w)
		e.split(h, e.lineParts(h), func(worker, lo, hi int) {
			f := lf.get(worker)
			for y := lo; y < hi; y++ {
				f.Row(dst.Pix[y*w:(y+1)*w], src.Pix[y*w:(y+1)*w], size, op)
			}
		})
		return lf.rebuilds()
	}

	lf := newLineFilters(e.workers, h)
	e.split(w, e.lineParts(w), func(worker, lo, hi int) {
		f := lf.get(worker)
		for x := lo; x < hi; x++ {
			f.Strided(dst.Pix, src.Pix, x, w, h, size, op)
		}
	})
	return lf.rebuilds()
}

// checkSegment validates a segment of the given size along a line of n
// samples.
func checkSegment(op Operation, size, n int, dim string) error {
	if size < 2 || size >= n {
		return fmt.Errorf("%w: %d for image %s %d (need 2 <= size < %d)", ErrInvalidSize, size, dim, n, n)
	}
	if op.needsOdd() && size%2 == 0 {
		return fmt.Errorf("%w: %s %d for %v", ErrEvenSize, dim, size, op)
	}
	return nil
}
