// Package extremum provides the bounded histogram shared by the anchor and
// volume filters.
//
// A Window counts small non-negative integer keys and keeps a pointer to the
// smallest non-empty bucket. Filters that need a running maximum map their
// samples through an order-reversing key (hi - v) and use the same type.
package extremum

// Window is a histogram over keys in [0, Len()) that tracks its minimum.
//
// Adding a key below the pointer lowers it immediately. Removing keys never
// moves the pointer; call Advance after removals to skip buckets that became
// empty. Because Advance only moves upward, a stable minimum costs amortized
// O(1) per slide step.
//
// A Window is not safe for concurrent use.
type Window struct {
	counts []int
	min    int
	count  int
}

// New creates an empty window over keys in [0, n).
func New(n int) *Window {
	if n < 1 {
		n = 1
	}
	return &Window{
		counts: make([]int, n),
		min:    n,
	}
}

// Len returns the size of the key domain.
func (w *Window) Len() int {
	return len(w.counts)
}

// Count returns the number of keys currently held.
func (w *Window) Count() int {
	return w.count
}

// Reset empties the window.
func (w *Window) Reset() {
	clear(w.counts)
	w.min = len(w.counts)
	w.count = 0
}

// Init resets the window, counts every key of keys and returns the minimum.
func (w *Window) Init(keys []uint8) int {
	w.Reset()
	for _, k := range keys {
		w.Add(int(k))
	}
	return w.min
}

// Add inserts one occurrence of k.
func (w *Window) Add(k int) {
	w.counts[k]++
	w.count++
	if k < w.min {
		w.min = k
	}
}

// AddN inserts n occurrences of k.
func (w *Window) AddN(k, n int) {
	if n <= 0 {
		return
	}
	w.counts[k] += n
	w.count += n
	if k < w.min {
		w.min = k
	}
}

// Remove deletes one occurrence of k. The key must be present.
func (w *Window) Remove(k int) {
	w.counts[k]--
	w.count--
}

// Advance moves the pointer up to the first non-empty bucket and returns it.
// On an empty window it returns Len().
func (w *Window) Advance() int {
	for w.min < len(w.counts) && w.counts[w.min] <= 0 {
		w.min++
	}
	return w.min
}

// Min returns the tracked pointer without advancing it. The value is only the
// true minimum if no removal happened since the last Advance.
func (w *Window) Min() int {
	return w.min
}

// Occurrences returns how many times k is held.
func (w *Window) Occurrences(k int) int {
	return w.counts[k]
}
