package rng

import (
	"errors"
	"testing"
)

func TestDeterminism(t *testing.T) {
	a := New(42)
	b := New(42)

	for i := 0; i < 1000; i++ {
		av, aerr := a.WeightedIndex([]float64{0.4, 0.22, 0.2, 0.18})
		bv, berr := b.WeightedIndex([]float64{0.4, 0.22, 0.2, 0.18})
		if aerr != nil || berr != nil {
			t.Fatalf("WeightedIndex failed: %v / %v", aerr, berr)
		}
		if av != bv {
			t.Fatalf("draw %d diverged: %d vs %d", i, av, bv)
		}
	}
}

func TestDeterminismMixedCalls(t *testing.T) {
	a := New(7)
	b := New(7)

	for i := 0; i < 200; i++ {
		if a.Prob(0.5) != b.Prob(0.5) {
			t.Fatalf("Prob diverged at call %d", i)
		}
		if a.IntRange(1, 10) != b.IntRange(1, 10) {
			t.Fatalf("IntRange diverged at call %d", i)
		}
		if a.FloatRange(-5, 5) != b.FloatRange(-5, 5) {
			t.Fatalf("FloatRange diverged at call %d", i)
		}
	}
}

func TestSeed(t *testing.T) {
	r := New(1234)
	if r.Seed() != 1234 {
		t.Errorf("Seed() = %d, want 1234", r.Seed())
	}
}

func TestWeightedIndexInRange(t *testing.T) {
	r := New(99)
	weights := []float64{1, 2, 3}

	for i := 0; i < 500; i++ {
		idx, err := r.WeightedIndex(weights)
		if err != nil {
			t.Fatalf("WeightedIndex failed: %v", err)
		}
		if idx < 0 || idx >= len(weights) {
			t.Fatalf("WeightedIndex = %d, out of range", idx)
		}
	}
}

func TestWeightedIndexSkipsZeroWeights(t *testing.T) {
	r := New(5)
	// Only index 2 has weight; it must always win.
	for i := 0; i < 100; i++ {
		idx, err := r.WeightedIndex([]float64{0, 0, 1, 0})
		if err != nil {
			t.Fatalf("WeightedIndex failed: %v", err)
		}
		if idx != 2 {
			t.Fatalf("WeightedIndex = %d, want 2", idx)
		}
	}
}

func TestWeightedIndexProportions(t *testing.T) {
	r := New(2024)
	counts := make([]int, 2)
	n := 10000

	for i := 0; i < n; i++ {
		idx, err := r.WeightedIndex([]float64{0.9, 0.1})
		if err != nil {
			t.Fatalf("WeightedIndex failed: %v", err)
		}
		counts[idx]++
	}

	// 0.9 weight should land roughly 9000 times; allow a wide band.
	if counts[0] < 8500 || counts[0] > 9500 {
		t.Errorf("heavy index drawn %d of %d, want ~9000", counts[0], n)
	}
}

func TestWeightedIndexErrors(t *testing.T) {
	r := New(1)

	tests := []struct {
		name    string
		weights []float64
		want    error
	}{
		{"empty", nil, ErrEmptyWeights},
		{"all zero", []float64{0, 0, 0}, ErrZeroWeights},
		{"negative", []float64{0.5, -0.1}, ErrBadWeight},
	}

	for _, tc := range tests {
		if _, err := r.WeightedIndex(tc.weights); !errors.Is(err, tc.want) {
			t.Errorf("%s: error = %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestProbSaturation(t *testing.T) {
	r := New(3)

	for i := 0; i < 50; i++ {
		if r.Prob(0) {
			t.Fatal("Prob(0) returned true")
		}
		if !r.Prob(1) {
			t.Fatal("Prob(1) returned false")
		}
	}
}

func TestProbConsumesOneDraw(t *testing.T) {
	// Saturated probabilities must advance the stream exactly like open
	// ones, so toggling a gate off does not shift later samples.
	a := New(11)
	b := New(11)

	a.Prob(0)
	b.Prob(0.5)

	av, _ := a.WeightedIndex([]float64{1, 1, 1, 1})
	bv, _ := b.WeightedIndex([]float64{1, 1, 1, 1})
	if av != bv {
		t.Errorf("stream diverged after saturated Prob: %d vs %d", av, bv)
	}
}

func TestIntRange(t *testing.T) {
	r := New(8)

	seen := make(map[int]bool)
	for i := 0; i < 500; i++ {
		v := r.IntRange(3, 5)
		if v < 3 || v > 5 {
			t.Fatalf("IntRange(3,5) = %d", v)
		}
		seen[v] = true
	}
	// Inclusive bounds: all three values should appear over 500 draws.
	for v := 3; v <= 5; v++ {
		if !seen[v] {
			t.Errorf("IntRange(3,5) never produced %d", v)
		}
	}

	if v := r.IntRange(7, 7); v != 7 {
		t.Errorf("IntRange(7,7) = %d, want 7", v)
	}
}

func TestFloatRange(t *testing.T) {
	r := New(8)

	for i := 0; i < 500; i++ {
		v := r.FloatRange(-2.5, 2.5)
		if v < -2.5 || v >= 2.5 {
			t.Fatalf("FloatRange(-2.5, 2.5) = %v", v)
		}
	}

	if v := r.FloatRange(1.5, 1.5); v != 1.5 {
		t.Errorf("FloatRange(1.5, 1.5) = %v, want 1.5", v)
	}
}

func TestDistValidate(t *testing.T) {
	tests := []struct {
		name string
		dist Dist[int]
		want error
	}{
		{"valid", NewDist([]int{3, 5}, []float64{0.25, 0.75}), nil},
		{"empty", Dist[int]{}, ErrDistEmpty},
		{"length mismatch", NewDist([]int{3, 5}, []float64{1}), ErrDistLength},
		{"zero weights", NewDist([]int{3, 5}, []float64{0, 0}), ErrZeroWeights},
		{"negative weight", NewDist([]int{3, 5}, []float64{1, -1}), ErrBadWeight},
	}

	for _, tc := range tests {
		err := tc.dist.Validate()
		if tc.want == nil {
			if err != nil {
				t.Errorf("%s: Validate() = %v, want nil", tc.name, err)
			}
			continue
		}
		if !errors.Is(err, tc.want) {
			t.Errorf("%s: Validate() = %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestDistSample(t *testing.T) {
	r := New(6)
	d := NewDist([]int{3, 5}, []float64{0.25, 0.75})

	for i := 0; i < 200; i++ {
		v, err := d.Sample(r)
		if err != nil {
			t.Fatalf("Sample failed: %v", err)
		}
		if v != 3 && v != 5 {
			t.Fatalf("Sample = %d, want 3 or 5", v)
		}
	}
}

func TestDistSampleSingle(t *testing.T) {
	r := New(6)
	d := NewDist([]float64{0.6}, []float64{1})

	for i := 0; i < 20; i++ {
		v, err := d.Sample(r)
		if err != nil {
			t.Fatalf("Sample failed: %v", err)
		}
		if v != 0.6 {
			t.Fatalf("Sample = %v, want 0.6", v)
		}
	}
}

func TestDistMax(t *testing.T) {
	if got := Max(NewDist([]int{3, 5, 4}, []float64{1, 1, 1})); got != 5 {
		t.Errorf("Max = %d, want 5", got)
	}
	if got := Max(NewDist([]float64{0.8, 0.0, 0.6}, []float64{1, 1, 1})); got != 0.8 {
		t.Errorf("Max = %v, want 0.8", got)
	}
}
