package front

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

type xy struct{ X, Y int }

func coords(pts []Point) []xy {
	out := make([]xy, len(pts))
	for i, p := range pts {
		out[i] = xy{p.X, p.Y}
	}
	return out
}

func TestDirection(t *testing.T) {
	tests := []struct {
		d        Direction
		opposite Direction
		dx, dy   int
		name     string
	}{
		{Left, Right, -1, 0, "left"},
		{Right, Left, 1, 0, "right"},
		{Up, Down, 0, -1, "up"},
		{Down, Up, 0, 1, "down"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.d.Opposite(); got != tt.opposite {
				t.Errorf("Opposite() = %v, want %v", got, tt.opposite)
			}
			dx, dy := tt.d.Step()
			if dx != tt.dx || dy != tt.dy {
				t.Errorf("Step() = (%d, %d), want (%d, %d)", dx, dy, tt.dx, tt.dy)
			}
			if got := tt.d.String(); got != tt.name {
				t.Errorf("String() = %q, want %q", got, tt.name)
			}
		})
	}
	if got := Direction(9).String(); got != "Direction(9)" {
		t.Errorf("String() of invalid direction = %q", got)
	}
}

func TestAnalyze_Rectangle(t *testing.T) {
	mask := []uint8{
		1, 1, 1,
		1, 1, 1,
	}
	fr, err := Analyze(mask, 3, 2, 1, 0)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	want := map[Direction][]xy{
		Left:  {{0, 0}, {0, 1}},
		Right: {{2, 0}, {2, 1}},
		Up:    {{0, 0}, {1, 0}, {2, 0}},
		Down:  {{0, 1}, {1, 1}, {2, 1}},
	}
	for d, pts := range want {
		if diff := cmp.Diff(pts, coords(fr.Flat[d].Points)); diff != "" {
			t.Errorf("%v front mismatch (-want +got):\n%s", d, diff)
		}
		if fr.Flat[d].Dir != d {
			t.Errorf("Flat[%v].Dir = %v", d, fr.Flat[d].Dir)
		}
		if fr.Grey[d].Len() != 0 {
			t.Errorf("flat analysis produced %d grey points toward %v", fr.Grey[d].Len(), d)
		}
	}
	if fr.Size() != 6 {
		t.Errorf("Size() = %d, want 6", fr.Size())
	}
	if fr.MaxWeight != 0 {
		t.Errorf("MaxWeight = %d, want 0", fr.MaxWeight)
	}
}

func TestAnalyze_Cross(t *testing.T) {
	mask := []uint8{
		0, 1, 0,
		1, 1, 1,
		0, 1, 0,
	}
	fr, err := Analyze(mask, 3, 3, 1, 1)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	want := map[Direction][]xy{
		Left:  {{1, 0}, {0, 1}, {1, 2}},
		Right: {{1, 0}, {2, 1}, {1, 2}},
		Up:    {{1, 0}, {0, 1}, {2, 1}},
		Down:  {{0, 1}, {2, 1}, {1, 2}},
	}
	for d, pts := range want {
		if diff := cmp.Diff(pts, coords(fr.Flat[d].Points)); diff != "" {
			t.Errorf("%v front mismatch (-want +got):\n%s", d, diff)
		}
	}
}

// Sliding a window one step toward d must change its coverage by exactly the
// d front (entering) and the opposite front (leaving).
func TestAnalyze_FrontsDescribeSlide(t *testing.T) {
	mask := []uint8{
		0, 1, 1, 0,
		1, 1, 0, 0,
		1, 0, 1, 1,
		0, 1, 1, 0,
	}
	const w, h = 4, 4
	fr, err := Analyze(mask, w, h, 1, 1)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	covered := func(cx, cy int) map[xy]bool {
		m := make(map[xy]bool)
		for y := range h {
			for x := range w {
				if mask[x+y*w] != 0 {
					m[xy{cx + x, cy + y}] = true
				}
			}
		}
		return m
	}

	for d := range Direction(NumDirections) {
		dx, dy := d.Step()
		before := covered(10, 10)
		after := covered(10+dx, 10+dy)

		entering := make(map[xy]bool)
		for _, p := range fr.Flat[d].Points {
			entering[xy{10 + dx + p.X, 10 + dy + p.Y}] = true
		}
		leaving := make(map[xy]bool)
		for _, p := range fr.Flat[d.Opposite()].Points {
			leaving[xy{10 + p.X, 10 + p.Y}] = true
		}

		for q := range after {
			if !before[q] && !entering[q] {
				t.Errorf("%v: %v enters but is not in the front", d, q)
			}
		}
		for q := range entering {
			if before[q] {
				t.Errorf("%v: front point %v was already covered", d, q)
			}
		}
		for q := range before {
			if !after[q] && !leaving[q] {
				t.Errorf("%v: %v leaves but is not in the opposite front", d, q)
			}
		}
		for q := range leaving {
			if after[q] {
				t.Errorf("%v: opposite front point %v is still covered", d, q)
			}
		}
	}
}

func TestAnalyzeGrey_Row(t *testing.T) {
	// Weights 0, 1, 2.
	mask := []uint8{1, 2, 3}
	fr, err := AnalyzeGrey(mask, 3, 1, 0, 0)
	if err != nil {
		t.Fatalf("AnalyzeGrey() error = %v", err)
	}

	ignorePos := cmpopts.IgnoreFields(GreyPoint{}, "Pos")
	want := map[Direction][]GreyPoint{
		Right: {
			{X: 1, Y: 0, Before: 1, After: 0},
			{X: 2, Y: 0, Before: 2, After: 1},
		},
		Left: {
			{X: 0, Y: 0, Before: 0, After: 1},
			{X: 1, Y: 0, Before: 1, After: 2},
		},
	}
	for d, pts := range want {
		if diff := cmp.Diff(pts, fr.Grey[d].Points, ignorePos); diff != "" {
			t.Errorf("grey %v front mismatch (-want +got):\n%s", d, diff)
		}
	}
	if fr.Grey[Up].Len() != 0 || fr.Grey[Down].Len() != 0 {
		t.Errorf("single-row mask has vertical grey points")
	}
	if fr.MaxWeight != 2 {
		t.Errorf("MaxWeight = %d, want 2", fr.MaxWeight)
	}
	if got := fr.Flat[Right].Points[0].Weight; got != 2 {
		t.Errorf("right front weight = %d, want 2", got)
	}
}

func TestAnalyzeGrey_EqualWeightsHaveNoGreyFront(t *testing.T) {
	mask := []uint8{
		5, 5,
		5, 5,
	}
	fr, err := AnalyzeGrey(mask, 2, 2, 0, 0)
	if err != nil {
		t.Fatalf("AnalyzeGrey() error = %v", err)
	}
	for d := range Direction(NumDirections) {
		if fr.Grey[d].Len() != 0 {
			t.Errorf("grey %v front has %d points, want 0", d, fr.Grey[d].Len())
		}
	}
	for _, p := range fr.Points {
		if p.Weight != 4 {
			t.Errorf("point (%d,%d) weight = %d, want 4", p.X, p.Y, p.Weight)
		}
	}
}

func TestAnalyze_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mask   []uint8
		w, h   int
		ox, oy int
		want   error
	}{
		{"origin left of mask", []uint8{1, 1, 1}, 3, 1, -1, 0, ErrOriginOutside},
		{"origin right of mask", []uint8{1, 1, 1}, 3, 1, 3, 0, ErrOriginOutside},
		{"origin below mask", []uint8{1, 1, 1}, 3, 1, 0, 1, ErrOriginOutside},
		{"origin excluded", []uint8{1, 0, 1}, 3, 1, 1, 0, ErrOriginExcluded},
		{"short mask", []uint8{1, 1}, 3, 1, 0, 0, ErrMaskSize},
		{"zero width", nil, 0, 1, 0, 0, ErrMaskSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Analyze(tt.mask, tt.w, tt.h, tt.ox, tt.oy)
			if !errors.Is(err, tt.want) {
				t.Errorf("Analyze() error = %v, want %v", err, tt.want)
			}
			_, err = AnalyzeGrey(tt.mask, tt.w, tt.h, tt.ox, tt.oy)
			if !errors.Is(err, tt.want) {
				t.Errorf("AnalyzeGrey() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFronts_Locate(t *testing.T) {
	mask := []uint8{
		1, 2,
		3, 1,
	}
	fr, err := AnalyzeGrey(mask, 2, 2, 0, 0)
	if err != nil {
		t.Fatalf("AnalyzeGrey() error = %v", err)
	}
	const stride = 17
	fr.Locate(stride)

	if fr.Stride() != stride {
		t.Errorf("Stride() = %d, want %d", fr.Stride(), stride)
	}
	for _, p := range fr.Points {
		if p.Pos != p.X+p.Y*stride {
			t.Errorf("point (%d,%d) Pos = %d", p.X, p.Y, p.Pos)
		}
	}
	for d := range Direction(NumDirections) {
		for _, p := range fr.Flat[d].Points {
			if p.Pos != p.X+p.Y*stride {
				t.Errorf("%v front point (%d,%d) Pos = %d", d, p.X, p.Y, p.Pos)
			}
		}
		for _, p := range fr.Grey[d].Points {
			if p.Pos != p.X+p.Y*stride {
				t.Errorf("%v grey point (%d,%d) Pos = %d", d, p.X, p.Y, p.Pos)
			}
		}
	}
}

func TestReflect(t *testing.T) {
	mask := []uint8{
		1, 2, 3,
		4, 5, 6,
	}
	want := []uint8{
		6, 5, 4,
		3, 2, 1,
	}
	got := Reflect(mask)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Reflect() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(mask, Reflect(got)); diff != "" {
		t.Errorf("Reflect() is not an involution (-want +got):\n%s", diff)
	}
}
