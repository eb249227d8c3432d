package agent

import "testing"

func genomeFromActive(active string) [GenomeBytes]byte {
	var g [GenomeBytes]byte
	for i := range g {
		g[i] = 'X'
	}
	pad := (GenomeBytes - len(active)) / 2
	copy(g[pad:], active)
	return g
}

func activeString(g [GenomeBytes]byte) string {
	start, end := activeRegion(&g)
	return string(g[start:end])
}

func TestReverseComplementInvolution(t *testing.T) {
	active := "AUGGCUGCUUAAGCUAGC"
	g := genomeFromActive(active)

	once := ReverseComplement(&g)
	twice := ReverseComplement(&once)

	got := activeString(twice)
	if got != active {
		t.Fatalf("reverse-complement is not involutive: got %q, want %q", got, active)
	}
}

func TestReverseComplementBasePairing(t *testing.T) {
	active := "AUGC"
	g := genomeFromActive(active)
	rc := ReverseComplement(&g)
	got := activeString(rc)

	// reversed order C,G,U,A complemented base-by-base: C->G G->C U->A A->U
	want := "GCAU"
	if got != want {
		t.Fatalf("ReverseComplement(%q) = %q, want %q", active, got, want)
	}
}

func TestReverseComplementEmptyGenome(t *testing.T) {
	var g [GenomeBytes]byte
	for i := range g {
		g[i] = 'X'
	}
	rc := ReverseComplement(&g)
	for i, b := range rc {
		if b != 'X' {
			t.Fatalf("expected all-X output for an empty genome, byte %d = %q", i, b)
		}
	}
}

func TestActiveRegionPicksLargestSpan(t *testing.T) {
	var g [GenomeBytes]byte
	for i := range g {
		g[i] = 'X'
	}
	copy(g[2:5], "AUG")    // short span, length 3
	copy(g[40:60], "AUGGCUGCUGCUGCUGCUGC") // longer span, length 20

	start, end := activeRegion(&g)
	if end-start != 20 {
		t.Fatalf("expected the largest active span (20) to win, got length %d at [%d,%d)", end-start, start, end)
	}
	if start != 40 {
		t.Fatalf("expected largest span to start at 40, got %d", start)
	}
}

func TestRecenterIntoCapsAtGenomeBytes(t *testing.T) {
	var out [GenomeBytes]byte
	oversized := make([]byte, GenomeBytes+10)
	for i := range oversized {
		oversized[i] = 'A'
	}

	recenterInto(&out, oversized)

	for i, b := range out {
		if b != 'A' {
			t.Fatalf("expected byte %d to be capped-and-copied 'A', got %q", i, b)
		}
	}
}
