package morpho

import (
	"math/rand/v2"
	"testing"
)

// Brute-force evaluations of the definitions, used as ground truth.
//
//	erosion(x, y)  = min over included (i, j) of in(x-ox+i, y-oy+j) - w(i, j)
//	dilation(x, y) = max over included (i, j) of in(x+ox-i, y+oy-j) + w(i, j)
//
// Samples outside the image are skipped.

func refExtremum(pix []int, iw, ih int, mask []uint8, sw, sh, ox, oy int, grey, dilate bool) []int {
	out := make([]int, len(pix))
	for y := range ih {
		for x := range iw {
			best, found := 0, false
			for j := range sh {
				for i := range sw {
					c := mask[i+j*sw]
					if c == 0 {
						continue
					}
					wt := 0
					if grey {
						wt = int(c) - 1
					}
					sx, sy := x-ox+i, y-oy+j
					if dilate {
						sx, sy = x+ox-i, y+oy-j
					}
					if sx < 0 || sx >= iw || sy < 0 || sy >= ih {
						continue
					}
					v := pix[sx+sy*iw] - wt
					if dilate {
						v = pix[sx+sy*iw] + wt
					}
					if !found || (!dilate && v < best) || (dilate && v > best) {
						best, found = v, true
					}
				}
			}
			out[x+y*iw] = best
		}
	}
	return out
}

func refFlat(op Operation, src *Gray8, se StructuringElement) *Gray8 {
	pix := make([]int, len(src.Pix))
	for i, v := range src.Pix {
		pix[i] = int(v)
	}
	pix = refCompose(op, pix, src.Width, src.Height, se.Mask, se.Width, se.Height, se.OriginX, se.OriginY, false)
	out := NewGray8(src.Width, src.Height)
	for i, v := range pix {
		out.Pix[i] = uint8(v)
	}
	return out
}

func refGrey(op Operation, src *Gray16, sf StructuringFunction) *Gray16 {
	pix := make([]int, len(src.Pix))
	for i, v := range src.Pix {
		pix[i] = int(v)
	}
	pix = refCompose(op, pix, src.Width, src.Height, sf.Mask, sf.Width, sf.Height, sf.OriginX, sf.OriginY, true)
	out := NewGray16(src.Width, src.Height)
	for i, v := range pix {
		out.Pix[i] = int16(v)
	}
	return out
}

func refCompose(op Operation, pix []int, iw, ih int, mask []uint8, sw, sh, ox, oy int, grey bool) []int {
	ero := func(p []int) []int { return refExtremum(p, iw, ih, mask, sw, sh, ox, oy, grey, false) }
	dil := func(p []int) []int { return refExtremum(p, iw, ih, mask, sw, sh, ox, oy, grey, true) }
	switch op {
	case Erosion:
		return ero(pix)
	case Dilation:
		return dil(pix)
	case Opening:
		return dil(ero(pix))
	default:
		return ero(dil(pix))
	}
}

func randomGray8(r *rand.Rand, w, h, levels int) *Gray8 {
	g := NewGray8(w, h)
	for i := range g.Pix {
		g.Pix[i] = uint8(r.IntN(levels))
	}
	return g
}

// randomElement returns a random flat element of at least two cells and at
// most maxW×maxH.
func randomElement(r *rand.Rand, maxW, maxH int) StructuringElement {
	for {
		sw, sh := 1+r.IntN(maxW), 1+r.IntN(maxH)
		if sw*sh < 2 {
			continue
		}
		mask := make([]uint8, sw*sh)
		for i := range mask {
			if r.IntN(3) != 0 {
				mask[i] = 255
			}
		}
		ox, oy := r.IntN(sw), r.IntN(sh)
		mask[ox+oy*sw] = 255
		return StructuringElement{Width: sw, Height: sh, Mask: mask, OriginX: ox, OriginY: oy}
	}
}

// randomFunction returns a random structuring function with weights below
// maxWeight.
func randomFunction(r *rand.Rand, maxW, maxH, maxWeight int) StructuringFunction {
	se := randomElement(r, maxW, maxH)
	for i, c := range se.Mask {
		if c != 0 {
			se.Mask[i] = uint8(1 + r.IntN(maxWeight))
		}
	}
	return StructuringFunction{
		Width: se.Width, Height: se.Height, Mask: se.Mask,
		OriginX: se.OriginX, OriginY: se.OriginY,
	}
}

// mustEqual8 fails the test at the first differing pixel.
func mustEqual8(t *testing.T, label string, want, got *Gray8) {
	t.Helper()
	for i := range want.Pix {
		if want.Pix[i] != got.Pix[i] {
			x, y := i%want.Width, i/want.Width
			t.Fatalf("%s: pixel (%d,%d) = %d, want %d", label, x, y, got.Pix[i], want.Pix[i])
		}
	}
}

func mustEqual16(t *testing.T, label string, want, got *Gray16) {
	t.Helper()
	for i := range want.Pix {
		if want.Pix[i] != got.Pix[i] {
			x, y := i%want.Width, i/want.Width
			t.Fatalf("%s: pixel (%d,%d) = %d, want %d", label, x, y, got.Pix[i], want.Pix[i])
		}
	}
}
