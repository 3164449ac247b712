package morpho

import (
	"errors"

	"github.com/gogpu/morpho/internal/volume"
)

// Errors returned by the engine. They are wrapped with the offending values;
// test with errors.Is.
var (
	// ErrInvalidSize is returned when a window or element dimension is below
	// 2 or not smaller than the image dimension it slides along.
	ErrInvalidSize = errors.New("morpho: invalid structuring element size")

	// ErrEvenSize is returned when an opening or closing gets an even size.
	ErrEvenSize = errors.New("morpho: opening and closing need an odd size")

	// ErrInvalidOrigin is returned when the origin is outside the element or
	// on an excluded cell.
	ErrInvalidOrigin = errors.New("morpho: invalid origin")

	// ErrDimensionMismatch is returned when source and destination grids
	// differ in size.
	ErrDimensionMismatch = errors.New("morpho: source and destination dimensions differ")

	// ErrInvalidGrid is returned for a grid with non-positive dimensions or a
	// pixel buffer of the wrong length.
	ErrInvalidGrid = errors.New("morpho: invalid grid")

	// ErrInvalidAxis is returned for an axis other than Horizontal or
	// Vertical.
	ErrInvalidAxis = errors.New("morpho: invalid axis")

	// ErrValueRange is returned by the grey-level operations when a sample
	// shifted by a weight could leave [-255, 510].
	ErrValueRange = volume.ErrValueRange
)
