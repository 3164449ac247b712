// Package anchor implements running minimum and maximum filters over lines of
// 8-bit samples using the anchor algorithm of Van Droogenbroeck and Buckley.
//
// The filter scans a line once. While new samples keep setting a new minimum
// (an "anchor"), no histogram is needed: the anchor is the minimum of every
// window that contains it. Only when an anchor slides out of the window
// without being replaced is a 256-bucket histogram built over the pending
// window, and it is then updated incrementally until the next anchor.
// The cost per sample is amortized O(1) and independent of the window size.
//
// Maxima are computed by the same code on complemented samples (v ^ 0xFF).
package anchor

import "github.com/gogpu/morpho/internal/extremum"

// Op selects the line operation.
type Op uint8

const (
	// Erosion is the running minimum.
	Erosion Op = iota

	// Dilation is the running maximum over the reflected segment.
	Dilation

	// Opening is an erosion followed by a dilation.
	Opening

	// Closing is a dilation followed by an erosion.
	Closing
)

// String returns the operation name.
func (op Op) String() string {
	switch op {
	case Erosion:
		return "erosion"
	case Dilation:
		return "dilation"
	case Opening:
		return "opening"
	case Closing:
		return "closing"
	default:
		return "unknown"
	}
}

// NeedsOddSize reports whether op requires an odd segment size.
func (op Op) NeedsOddSize() bool {
	return op == Opening || op == Closing
}

// Reach returns how many samples before and after the output position an
// erosion window of the given size covers. The origin of the segment sits at
// (size-1)/2. Dilation uses the reflected segment, with ahead and behind
// swapped.
func Reach(size int) (behind, ahead int) {
	ahead = size / 2
	behind = size - 1 - ahead
	return behind, ahead
}

// state is the mode of the centre scan.
type state uint8

const (
	// stateRun: the current minimum is the anchor, which is still inside the
	// window. No histogram is maintained.
	stateRun state = iota

	// stateHistogram: the anchor expired; the window histogram is maintained
	// incrementally until a new anchor appears.
	stateHistogram
)

// Filter holds the scratch buffers and histogram for one goroutine.
//
// A Filter is not safe for concurrent use; give each worker its own.
type Filter struct {
	hist *extremum.Window
	line []uint8
	tmp  []uint8
	out  []uint8

	rebuilds int
}

// NewFilter creates a filter able to process lines up to maxLen samples.
// Longer lines grow the buffers on demand.
func NewFilter(maxLen int) *Filter {
	f := &Filter{hist: extremum.New(256)}
	f.grow(maxLen)
	return f
}

// Rebuilds returns how many times a histogram had to be rebuilt from scratch
// since the filter was created.
func (f *Filter) Rebuilds() int {
	return f.rebuilds
}

func (f *Filter) grow(n int) {
	if cap(f.line) >= n {
		f.line = f.line[:n]
		f.tmp = f.tmp[:n]
		f.out = f.out[:n]
		return
	}
	f.line = make([]uint8, n)
	f.tmp = make([]uint8, n)
	f.out = make([]uint8, n)
}

// Row filters one contiguous line. dst and src must have equal length and may
// be the same slice.
//
// Preconditions (checked by callers): 2 <= size < len(src), and size is odd
// when op.NeedsOddSize().
func (f *Filter) Row(dst, src []uint8, size int, op Op) {
	f.Strided(dst, src, 0, 1, len(src), size, op)
}

// Strided filters the n samples src[off], src[off+stride], ... and writes the
// result to the same positions of dst. It is used for columns of a row-major
// grid. dst and src may alias: the line is copied before anything is written.
func (f *Filter) Strided(dst, src []uint8, off, stride, n, size int, op Op) {
	f.grow(n)

	for i, p := 0, off; i < n; i, p = i+1, p+stride {
		f.line[i] = src[p]
	}

	switch op {
	case Erosion:
		f.pass(f.line, f.out, size, false)
	case Dilation:
		f.pass(f.line, f.out, size, true)
	case Opening:
		f.pass(f.line, f.tmp, size, false)
		f.pass(f.tmp, f.out, size, true)
	case Closing:
		f.pass(f.line, f.tmp, size, true)
		f.pass(f.tmp, f.out, size, false)
	}

	for i, p := 0, off; i < n; i, p = i+1, p+stride {
		dst[p] = f.out[i]
	}
}

// pass runs one erosion or dilation over in. For a dilation, in is
// complemented in place, so callers must not reuse it afterwards.
func (f *Filter) pass(in, out []uint8, size int, dilate bool) {
	behind, ahead := Reach(size)
	if !dilate {
		f.erode(in, out, size, behind, ahead)
		return
	}
	complement(in)
	f.erode(in, out, size, ahead, behind)
	complement(out)
}

// erode writes to out[o] the minimum of in[o-behind .. o+ahead], clipped to
// the line, where behind+ahead+1 == size.
func (f *Filter) erode(in, out []uint8, size, behind, ahead int) {
	n := len(in)

	// Left border: the window grows on its right, so the minimum only drops.
	if behind > 0 {
		m := in[0]
		for i := 1; i <= ahead; i++ {
			m = min(m, in[i])
		}
		out[0] = m
		for o := 1; o < behind; o++ {
			m = min(m, in[o+ahead])
			out[o] = m
		}
	}

	// Centre: window [e-size+1, e] written at e-ahead. The anchor a is the
	// last position holding the minimum of the first full window.
	m := in[0]
	a := 0
	for i := 1; i < size; i++ {
		if in[i] <= m {
			m = in[i]
			a = i
		}
	}
	out[size-1-ahead] = m

	mode := stateRun
	for e := size; e < n; e++ {
		v := in[e]
		switch {
		case v <= m:
			// New anchor. Every sample still in the window is >= v.
			m = v
			a = e
			mode = stateRun
		case mode == stateRun:
			if e-a >= size {
				// The anchor left the window and no sample replaced it. Every
				// remaining sample is > m, so the new minimum is larger.
				m = uint8(f.hist.Init(in[e-size+1 : e+1]))
				f.rebuilds++
				mode = stateHistogram
			}
		default:
			f.hist.Add(int(v))
			f.hist.Remove(int(in[e-size]))
			m = uint8(f.hist.Advance())
		}
		out[e-ahead] = m
	}

	// Right border: the window shrinks on its left; walking backwards it
	// grows, so the minimum only drops again.
	if ahead > 0 {
		m := in[n-1]
		for i := n - 1 - behind; i < n-1; i++ {
			m = min(m, in[i])
		}
		out[n-1] = m
		for o := n - 2; o >= n-ahead; o-- {
			m = min(m, in[o-behind])
			out[o] = m
		}
	}
}

func complement(s []uint8) {
	for i := range s {
		s[i] ^= 0xFF
	}
}
