package extremum

import "testing"

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want int
	}{
		{"flat domain", 256, 256},
		{"grey domain", 767, 767},
		{"zero clamps to one", 0, 1},
		{"negative clamps to one", -4, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := New(tt.n)
			if w.Len() != tt.want {
				t.Errorf("Len() = %d, want %d", w.Len(), tt.want)
			}
			if w.Count() != 0 {
				t.Errorf("Count() = %d, want 0", w.Count())
			}
			if got := w.Advance(); got != tt.want {
				t.Errorf("Advance() on empty window = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWindow_Init(t *testing.T) {
	w := New(256)
	got := w.Init([]uint8{9, 4, 200, 4, 17})
	if got != 4 {
		t.Errorf("Init() = %d, want 4", got)
	}
	if w.Count() != 5 {
		t.Errorf("Count() = %d, want 5", w.Count())
	}
	if w.Occurrences(4) != 2 {
		t.Errorf("Occurrences(4) = %d, want 2", w.Occurrences(4))
	}

	// Init must discard the previous contents.
	got = w.Init([]uint8{30, 31})
	if got != 30 {
		t.Errorf("second Init() = %d, want 30", got)
	}
	if w.Occurrences(4) != 0 {
		t.Errorf("Occurrences(4) after re-Init = %d, want 0", w.Occurrences(4))
	}
}

func TestWindow_AddLowersMinimum(t *testing.T) {
	w := New(256)
	w.Add(50)
	w.Add(80)
	if w.Min() != 50 {
		t.Fatalf("Min() = %d, want 50", w.Min())
	}
	w.Add(10)
	if w.Min() != 10 {
		t.Errorf("Min() after Add(10) = %d, want 10", w.Min())
	}
	w.Add(90)
	if w.Min() != 10 {
		t.Errorf("Min() after Add(90) = %d, want 10", w.Min())
	}
}

func TestWindow_AdvanceIsMonotonic(t *testing.T) {
	w := New(256)
	w.Init([]uint8{3, 5, 5, 7, 250})

	steps := []struct {
		remove int
		want   int
	}{
		{3, 5},
		{5, 5},
		{5, 7},
		{7, 250},
	}

	prev := w.Min()
	for _, s := range steps {
		w.Remove(s.remove)
		got := w.Advance()
		if got != s.want {
			t.Errorf("after Remove(%d): Advance() = %d, want %d", s.remove, got, s.want)
		}
		if got < prev {
			t.Errorf("pointer moved down from %d to %d", prev, got)
		}
		prev = got
	}

	w.Remove(250)
	if got := w.Advance(); got != w.Len() {
		t.Errorf("Advance() on drained window = %d, want %d", got, w.Len())
	}
	if w.Count() != 0 {
		t.Errorf("Count() = %d, want 0", w.Count())
	}
}

func TestWindow_AddN(t *testing.T) {
	w := New(767)
	w.AddN(766, 9)
	w.AddN(12, 0)
	if w.Count() != 9 {
		t.Errorf("Count() = %d, want 9", w.Count())
	}
	if w.Advance() != 766 {
		t.Errorf("Advance() = %d, want 766", w.Min())
	}
	w.AddN(100, 2)
	if w.Min() != 100 {
		t.Errorf("Min() = %d, want 100", w.Min())
	}
}

func TestWindow_Reset(t *testing.T) {
	w := New(16)
	w.Init([]uint8{1, 2, 3})
	w.Reset()
	if w.Count() != 0 {
		t.Errorf("Count() = %d, want 0", w.Count())
	}
	for k := range w.Len() {
		if w.Occurrences(k) != 0 {
			t.Fatalf("Occurrences(%d) = %d after Reset, want 0", k, w.Occurrences(k))
		}
	}
}

func BenchmarkWindow_Slide(b *testing.B) {
	w := New(256)
	line := make([]uint8, 4096)
	for i := range line {
		line[i] = uint8((i * 37) % 251)
	}
	const size = 31
	w.Init(line[:size])

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for e := size; e < len(line); e++ {
			w.Add(int(line[e]))
			w.Remove(int(line[e-size]))
			w.Advance()
		}
		w.Init(line[:size])
	}
}
