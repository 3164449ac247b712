package morpho

import (
	"fmt"

	"github.com/gogpu/morpho/internal/extremum"
	"github.com/gogpu/morpho/internal/front"
	"github.com/gogpu/morpho/internal/volume"
)

// ErosionFlat erodes by an arbitrary flat element. The element must be
// strictly smaller than the image in both dimensions. src and dst may be the
// same grid.
func (e *Engine) ErosionFlat(src, dst *Gray8, se StructuringElement) error {
	return e.ApplyFlat(Erosion, src, dst, se)
}

// DilationFlat dilates by an arbitrary flat element, that is, takes the
// maximum under the reflected element.
func (e *Engine) DilationFlat(src, dst *Gray8, se StructuringElement) error {
	return e.ApplyFlat(Dilation, src, dst, se)
}

// OpeningFlat is ErosionFlat followed by DilationFlat with the same element.
func (e *Engine) OpeningFlat(src, dst *Gray8, se StructuringElement) error {
	return e.ApplyFlat(Opening, src, dst, se)
}

// ClosingFlat is DilationFlat followed by ErosionFlat with the same element.
func (e *Engine) ClosingFlat(src, dst *Gray8, se StructuringElement) error {
	return e.ApplyFlat(Closing, src, dst, se)
}

// ApplyFlat runs op with an arbitrary flat element.
func (e *Engine) ApplyFlat(op Operation, src, dst *Gray8, se StructuringElement) error {
	if !op.valid() {
		return fmt.Errorf("morpho: unknown operation %d", op)
	}
	if err := checkGray8(src, dst); err != nil {
		return err
	}
	if err := se.Validate(); err != nil {
		return err
	}
	if err := checkElement(se.Width, se.Height, src.Width, src.Height); err != nil {
		return err
	}

	el := element{
		mask: se.Mask, w: se.Width, h: se.Height,
		ox: se.OriginX, oy: se.OriginY,
	}
	return compose(e, op, src.Pix, dst.Pix, src.Width, src.Height, el, volume.Flat)
}

// ErosionGrey erodes by a structuring function:
//
//	out(x, y) = min over included (i, j) of in(x-ox+i, y-oy+j) - w(i, j)
//
// The result is not clamped. ErrValueRange is returned before anything is
// written if a sample shifted by a weight could leave [-255, 510].
func (e *Engine) ErosionGrey(src, dst *Gray16, sf StructuringFunction) error {
	return e.ApplyGrey(Erosion, src, dst, sf)
}

// DilationGrey dilates by a structuring function:
//
//	out(x, y) = max over included (i, j) of in(x+ox-i, y+oy-j) + w(i, j)
func (e *Engine) DilationGrey(src, dst *Gray16, sf StructuringFunction) error {
	return e.ApplyGrey(Dilation, src, dst, sf)
}

// OpeningGrey is ErosionGrey followed by DilationGrey.
func (e *Engine) OpeningGrey(src, dst *Gray16, sf StructuringFunction) error {
	return e.ApplyGrey(Opening, src, dst, sf)
}

// ClosingGrey is DilationGrey followed by ErosionGrey.
func (e *Engine) ClosingGrey(src, dst *Gray16, sf StructuringFunction) error {
	return e.ApplyGrey(Closing, src, dst, sf)
}

// ApplyGrey runs op with a structuring function.
func (e *Engine) ApplyGrey(op Operation, src, dst *Gray16, sf StructuringFunction) error {
	if !op.valid() {
		return fmt.Errorf("morpho: unknown operation %d", op)
	}
	if err := checkGray16(src, dst); err != nil {
		return err
	}
	if err := sf.Validate(); err != nil {
		return err
	}
	if err := checkElement(sf.Width, sf.Height, src.Width, src.Height); err != nil {
		return err
	}

	el := element{
		mask: sf.Mask, w: sf.Width, h: sf.Height,
		ox: sf.OriginX, oy: sf.OriginY, grey: true,
	}
	return compose(e, op, src.Pix, dst.Pix, src.Width, src.Height, el, volume.Grey)
}

// element is the mask shared by flat elements and structuring functions.
type element struct {
	mask   []uint8
	w, h   int
	ox, oy int
	grey   bool
}

// fronts analyzes el for a pass. Dilation uses the reflected mask and origin.
func (el element) fronts(pol volume.Polarity) (*front.Fronts, error) {
	mask, ox, oy := el.mask, el.ox, el.oy
	if pol == volume.Dilate {
		mask = front.Reflect(mask)
		ox, oy = el.w-1-ox, el.h-1-oy
	}

	analyze := front.Analyze
	if el.grey {
		analyze = front.AnalyzeGrey
	}
	fr, err := analyze(mask, el.w, el.h, ox, oy)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOrigin, err)
	}
	return fr, nil
}

// compose runs op as one or two volume scans. Opening and closing go through
// a private scratch buffer, so dst is only written by the final scan, after
// its plan validated.
func compose[S volume.Sample](e *Engine, op Operation, src, dst []S, w, h int, el element, r volume.Range) error {
	switch op {
	case Erosion:
		return scan(e, src, dst, w, h, el, volume.Erode, r)
	case Dilation:
		return scan(e, src, dst, w, h, el, volume.Dilate, r)
	}

	first, second := volume.Erode, volume.Dilate
	if op == Closing {
		first, second = volume.Dilate, volume.Erode
	}
	tmp := make([]S, len(src))
	if err := scan(e, src, tmp, w, h, el, first, r); err != nil {
		return err
	}
	return scan(e, tmp, dst, w, h, el, second, r)
}

// scan runs one erosion or dilation. Output rows are cut into bands, one
// histogram per worker.
func scan[S volume.Sample](e *Engine, src, dst []S, w, h int, el element, pol volume.Polarity, r volume.Range) error {
	fr, err := el.fronts(pol)
	if err != nil {
		return err
	}
	plan, err := volume.NewPlan(src, volume.Params{
		Width:    w,
		Height:   h,
		Fronts:   fr,
		Polarity: pol,
		Range:    r,
	})
	if err != nil {
		return err
	}

	wins := &windows{
		wins:   make([]*extremum.Window, max(e.workers, 1)),
		newWin: plan.NewWindow,
	}
	bands := e.bandParts(h)
	e.split(plan.Rows(), bands, func(worker, lo, hi int) {
		plan.Scan(dst, lo, hi, wins.get(worker))
	})

	e.log.Debug("morpho: arbitrary",
		"pass", pol, "grey", el.grey,
		"seW", el.w, "seH", el.h, "points", fr.Size(),
		"left", fr.Flat[front.Left].Len(), "right", fr.Flat[front.Right].Len(),
		"up", fr.Flat[front.Up].Len(), "down", fr.Flat[front.Down].Len(),
		"bands", bands)
	return nil
}

// bandParts is the number of bands a scan over h rows is cut into. Each band
// re-primes its histogram, so bands are not cut finer than one per worker.
func (e *Engine) bandParts(h int) int {
	if e.pool == nil {
		return 1
	}
	return min(h, e.workers)
}

// checkElement requires an element of at least two cells that is strictly
// smaller than the image.
func checkElement(seW, seH, w, h int) error {
	if seW*seH < 2 {
		return fmt.Errorf("%w: %dx%d element", ErrInvalidSize, seW, seH)
	}
	if seW >= w || seH >= h {
		return fmt.Errorf("%w: %dx%d element for %dx%d image", ErrInvalidSize, seW, seH, w, h)
	}
	return nil
}
