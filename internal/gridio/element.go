package gridio

import (
	"fmt"

	"github.com/gogpu/morpho"
)

// LoadElement reads a flat structuring element from an image file: every
// nonzero pixel is included. A negative origin coordinate selects the
// centre cell along that axis.
func LoadElement(path string, ox, oy int) (morpho.StructuringElement, error) {
	g, err := Load(path)
	if err != nil {
		return morpho.StructuringElement{}, err
	}
	ox, oy = origin(g, ox, oy)
	se, err := morpho.ElementFromGrid(g, ox, oy)
	if err != nil {
		return morpho.StructuringElement{}, fmt.Errorf("gridio: element %s: %w", path, err)
	}
	return se, nil
}

// LoadFunction reads a structuring function: pixel value v > 0 is a cell
// of weight v-1, and zero pixels are excluded. Origins default as in
// LoadElement.
func LoadFunction(path string, ox, oy int) (morpho.StructuringFunction, error) {
	g, err := Load(path)
	if err != nil {
		return morpho.StructuringFunction{}, err
	}
	ox, oy = origin(g, ox, oy)
	sf, err := morpho.FunctionFromGrid(g, ox, oy)
	if err != nil {
		return morpho.StructuringFunction{}, fmt.Errorf("gridio: function %s: %w", path, err)
	}
	return sf, nil
}

func origin(g *morpho.Gray8, ox, oy int) (int, int) {
	if ox < 0 {
		ox = (g.Width - 1) / 2
	}
	if oy < 0 {
		oy = (g.Height - 1) / 2
	}
	return ox, oy
}
