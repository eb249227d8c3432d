package agent

import "testing"

func TestTranslateGenomeDeterministic(t *testing.T) {
	var genome [GenomeBytes]byte
	copy(genome[:], "AUGGCUGCUGCUUAAXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXX")

	first := TranslateGenome(&genome, false, false)
	second := TranslateGenome(&genome, false, false)

	if len(first) != len(second) {
		t.Fatalf("non-deterministic translation: got %d then %d parts", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("part %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestTranslateGenomeStopsAtStopCodon(t *testing.T) {
	var genome [GenomeBytes]byte
	// AUG GCU UAA: start, one amino, then a stop codon.
	copy(genome[:], "AUGGCUUAA")
	for i := 9; i < GenomeBytes; i++ {
		genome[i] = 'X'
	}

	parts := TranslateGenome(&genome, false, false)
	if len(parts) != 2 {
		t.Fatalf("expected translation to stop at UAA, got %d parts", len(parts))
	}
}

func TestTranslateGenomeIgnoreStopCodonsSkipsPastStopCodon(t *testing.T) {
	// AUG GCU UAA GCU: start, one amino, a stop codon, then another amino.
	var genome [GenomeBytes]byte
	copy(genome[:], "AUGGCUUAAGCU")
	for i := 12; i < GenomeBytes; i++ {
		genome[i] = 'X'
	}

	withStops := TranslateGenome(&genome, false, false)
	if len(withStops) != 2 {
		t.Fatalf("expected translation to halt at the UAA stop codon, got %d parts", len(withStops))
	}

	withoutStops := TranslateGenome(&genome, false, true)
	if len(withoutStops) != 3 {
		t.Fatalf("expected ignoreStopCodons to skip past UAA and keep translating, got %d parts", len(withoutStops))
	}
	for i := range withStops {
		if withStops[i] != withoutStops[i] {
			t.Fatalf("expected the parts preceding the stop codon to match: part %d is %+v vs %+v", i, withStops[i], withoutStops[i])
		}
	}
}

func TestTranslateGenomeIgnoreStopCodonsHaltsOnPadding(t *testing.T) {
	// A stop codon followed immediately by padding: ignoreStopCodons skips
	// the stop codon but still halts at the non-coding triplet after it,
	// since padding is not a stop codon it can choose to ignore.
	var genome [GenomeBytes]byte
	copy(genome[:], "AUGGCUUAA")
	for i := 9; i < GenomeBytes; i++ {
		genome[i] = 'X'
	}

	parts := TranslateGenome(&genome, false, true)
	if len(parts) != 2 {
		t.Fatalf("expected translation to halt at the padding following the skipped stop codon, got %d parts", len(parts))
	}
}

func TestTranslateGenomeNoStartCodonReturnsNil(t *testing.T) {
	var genome [GenomeBytes]byte
	for i := range genome {
		genome[i] = 'X'
	}

	parts := TranslateGenome(&genome, false, false)
	if parts != nil {
		t.Fatalf("expected nil parts for all-padding genome, got %d", len(parts))
	}
}

func TestTranslateGenomeRequireStartCodon(t *testing.T) {
	var genome [GenomeBytes]byte
	// GCU is a valid coding triplet but not AUG; with requireStartCodon,
	// translation should not begin here.
	copy(genome[:], "GCUGCUGCU")
	for i := 9; i < GenomeBytes; i++ {
		genome[i] = 'X'
	}

	parts := TranslateGenome(&genome, true, false)
	if parts != nil {
		t.Fatalf("expected nil parts with no AUG present, got %d", len(parts))
	}
}

func TestTranslateGenomeRespectsMaxParts(t *testing.T) {
	var genome [GenomeBytes]byte
	genome[0], genome[1], genome[2] = 'A', 'U', 'G'
	for i := 3; i+3 <= GenomeBytes; i += 3 {
		genome[i], genome[i+1], genome[i+2] = 'G', 'C', 'U' // KindAla, non-promoter
	}

	parts := TranslateGenome(&genome, false, false)
	if len(parts) > MaxParts {
		t.Fatalf("translation exceeded MaxParts: got %d", len(parts))
	}
}

func TestOrganFamilyPromoterBoundaries(t *testing.T) {
	cases := []struct {
		promoter PartKind
		modifier PartKind
		want     PartKind
	}{
		{promoterLeucine, KindAla, KindPropeller},  // modifier index 0 <= 9
		{promoterLeucine, KindPhe, KindDisplacer},  // modifier index 19 > 9
		{promoterProline, KindAla, KindMouth},      // 0 <= 6
		{promoterProline, KindGly, KindCondenser},  // index 7, 7<=13
		{promoterProline, KindPhe, KindEnabler},    // index 19 > 13
		{promoterGln, KindAla, KindAlphaSensor},
		{promoterGln, KindGly, KindBetaSensor},
		{promoterGln, KindPhe, KindEnergySensor},
		{promoterHis, KindAla, KindCondenser},
		{promoterHis, KindPhe, KindCondenser},
	}

	for _, c := range cases {
		got, ok := organFamily(c.promoter, c.modifier)
		if !ok {
			t.Fatalf("organFamily(%v, %v): expected ok", c.promoter, c.modifier)
		}
		if got != c.want {
			t.Errorf("organFamily(%v, %v) = %v, want %v", c.promoter, c.modifier, got, c.want)
		}
	}
}
