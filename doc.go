// Package morpho provides fast mathematical morphology on 8-bit grey images.
//
// # Overview
//
// morpho computes erosion, dilation, opening and closing of rectangular
// sample grids. Two algorithm families are provided and agree exactly on the
// mathematical definitions at every pixel, borders included:
//
//   - Linear and rectangular elements use the anchor algorithm, a running
//     minimum/maximum whose cost per pixel does not depend on the element
//     size (Erosion1D, Erosion2D and friends).
//   - Arbitrarily shaped flat elements and grey-level structuring functions
//     use a serpentine histogram scan driven by the element's boundary fronts
//     (ErosionFlat, ErosionGrey and friends).
//
// # Quick Start
//
//	import "github.com/gogpu/morpho"
//
//	eng := morpho.New()
//	defer eng.Close()
//
//	dst := morpho.NewGray8(src.Width, src.Height)
//	if err := eng.Opening2D(src, dst, 5, 5); err != nil {
//	    return err
//	}
//
//	disk := morpho.NewDisk(3)
//	if err := eng.ClosingFlat(src, dst, disk); err != nil {
//	    return err
//	}
//
// # Borders
//
// Windows are clipped to the image: a border pixel is the extremum over the
// neighbours that exist, never over padded values.
//
// # Origins and Sizes
//
// A structuring element carries an origin, the cell that aligns with the
// output pixel. Erosion by an element with origin (ox, oy) is
//
//	out(x, y) = min over included (i, j) of in(x-ox+i, y-oy+j) - w(i, j)
//
// and dilation uses the point-reflected element, as is conventional. The
// separable operations place the origin of a segment of length n at
// (n-1)/2, so Erosion2D(w, h) equals ErosionFlat with NewRectangle(w, h).
// Openings and closings require odd sizes.
//
// # Concurrency
//
// An Engine is safe for concurrent use. By default every operation runs on
// the calling goroutine; WithWorkers splits rows, columns and scan bands
// across a worker pool with identical results.
//
// # Logging
//
// morpho produces no log output by default. Use SetLogger or WithLogger to
// receive debug diagnostics through log/slog.
package morpho
