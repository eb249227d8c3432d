package noise

import "testing"

func TestFieldNoiseDeterministic(t *testing.T) {
	f := NewField(42)
	a := f.Noise3D(1.5, 2.5, 3.5)
	b := f.Noise3D(1.5, 2.5, 3.5)
	if a != b {
		t.Fatalf("expected identical output for identical inputs, got %v vs %v", a, b)
	}
}

func TestFieldNoiseDiffersAcrossSeeds(t *testing.T) {
	a := NewField(1).Noise3D(0.3, 0.7, 1.1)
	b := NewField(2).Noise3D(0.3, 0.7, 1.1)
	if a == b {
		t.Error("expected different seeds to produce different noise permutations (flaky only in extreme coincidence)")
	}
}

func TestNoise01StaysInUnitRange(t *testing.T) {
	f := NewField(7)
	for i := 0; i < 50; i++ {
		v := f.Noise01(float64(i)*0.37, float64(i)*0.11, float64(i)*0.91)
		if v < 0 || v > 1 {
			t.Fatalf("Noise01 out of [0,1] range: %v", v)
		}
	}
}

func TestLayeredNoise01ClampsOctavesToOne(t *testing.T) {
	f := NewField(3)
	v0 := f.LayeredNoise01(1, 2, 3, 0, 1)
	v1 := f.LayeredNoise01(1, 2, 3, 1, 1)
	if v0 != v1 {
		t.Errorf("expected octaves<1 to behave like octaves=1, got %v vs %v", v0, v1)
	}
}

func TestLayeredNoise01StaysInUnitRange(t *testing.T) {
	f := NewField(11)
	for i := 0; i < 20; i++ {
		v := f.LayeredNoise01(float64(i)*0.5, float64(i)*0.3, 0, 4, 1.0)
		if v < 0 || v > 1 {
			t.Fatalf("LayeredNoise01 out of [0,1] range: %v", v)
		}
	}
}
