package layout

import "testing"

func TestRNGDeterministic(t *testing.T) {
	a, b := NewRNG(42), NewRNG(42)
	for i := 0; i < 1000; i++ {
		if x, y := a.Next(), b.Next(); x != y {
			t.Fatalf("Next() #%d = %v and %v, want equal", i, x, y)
		}
	}
}

func TestRNGRange(t *testing.T) {
	for _, seed := range []uint32{0, 1, 7, 42, 0xffffffff} {
		r := NewRNG(seed)
		for i := 0; i < 10000; i++ {
			v := r.Next()
			if v < 0 || v >= 1 {
				t.Fatalf("seed %d: Next() = %v, want in [0,1)", seed, v)
			}
		}
	}
}

func TestRNGSeedsDiffer(t *testing.T) {
	a, b := NewRNG(OrganicSeed), NewRNG(ForceSeed)
	same := 0
	for i := 0; i < 100; i++ {
		if a.Next() == b.Next() {
			same++
		}
	}
	if same == 100 {
		t.Error("different seeds produced identical streams")
	}
}

func TestRNGKnownSequence(t *testing.T) {
	tests := []struct {
		seed uint32
		want []float64
	}{
		{42, []float64{0.6011037519201636, 0.44829055899754167, 0.8524657934904099}},
		{7, []float64{0.011704753153026104, 0.06195825757458806, 0.97690763277933}},
	}

	for _, tt := range tests {
		r := NewRNG(tt.seed)
		for i, want := range tt.want {
			if got := r.Next(); got != want {
				t.Errorf("seed %d: Next() #%d = %v, want %v", tt.seed, i, got, want)
			}
		}
	}
}

func TestRNGMean(t *testing.T) {
	r := NewRNG(12345)
	const samples = 20000
	sum := 0.0
	for i := 0; i < samples; i++ {
		sum += r.Next()
	}
	mean := sum / samples
	if mean < 0.48 || mean > 0.52 {
		t.Errorf("mean of %d samples = %v, want about 0.5", samples, mean)
	}
}
