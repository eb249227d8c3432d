package agent

// codonTable maps an RNA triplet to an amino index, mirroring the standard
// genetic code. Triplets not present here (and any containing 'X') are
// stop codons.
var codonTable = map[[3]byte]PartKind{
	{'U', 'U', 'U'}: KindPhe, {'U', 'U', 'C'}: KindPhe,
	{'U', 'U', 'A'}: KindLeu, {'U', 'U', 'G'}: KindLeu,
	{'C', 'U', 'U'}: KindLeu, {'C', 'U', 'C'}: KindLeu, {'C', 'U', 'A'}: KindLeu, {'C', 'U', 'G'}: KindLeu,
	{'A', 'U', 'U'}: KindIle, {'A', 'U', 'C'}: KindIle, {'A', 'U', 'A'}: KindIle,
	{'A', 'U', 'G'}: KindMet,
	{'G', 'U', 'U'}: KindVal, {'G', 'U', 'C'}: KindVal, {'G', 'U', 'A'}: KindVal, {'G', 'U', 'G'}: KindVal,
	{'U', 'C', 'U'}: KindSer, {'U', 'C', 'C'}: KindSer, {'U', 'C', 'A'}: KindSer, {'U', 'C', 'G'}: KindSer,
	{'C', 'C', 'U'}: KindPro, {'C', 'C', 'C'}: KindPro, {'C', 'C', 'A'}: KindPro, {'C', 'C', 'G'}: KindPro,
	{'A', 'C', 'U'}: KindThr, {'A', 'C', 'C'}: KindThr, {'A', 'C', 'A'}: KindThr, {'A', 'C', 'G'}: KindThr,
	{'G', 'C', 'U'}: KindAla, {'G', 'C', 'C'}: KindAla, {'G', 'C', 'A'}: KindAla, {'G', 'C', 'G'}: KindAla,
	{'U', 'A', 'U'}: KindTyr, {'U', 'A', 'C'}: KindTyr,
	{'C', 'A', 'U'}: KindHis, {'C', 'A', 'C'}: KindHis,
	{'C', 'A', 'A'}: KindGln, {'C', 'A', 'G'}: KindGln,
	{'A', 'A', 'U'}: KindAsn, {'A', 'A', 'C'}: KindAsn,
	{'A', 'A', 'A'}: KindLys, {'A', 'A', 'G'}: KindLys,
	{'G', 'A', 'U'}: KindAsp, {'G', 'A', 'C'}: KindAsp,
	{'G', 'A', 'A'}: KindGlu, {'G', 'A', 'G'}: KindGlu,
	{'U', 'G', 'U'}: KindCys, {'U', 'G', 'C'}: KindCys,
	{'U', 'G', 'G'}: KindTrp,
	{'C', 'G', 'U'}: KindArg, {'C', 'G', 'C'}: KindArg, {'C', 'G', 'A'}: KindArg, {'C', 'G', 'G'}: KindArg,
	{'A', 'G', 'U'}: KindSer, {'A', 'G', 'C'}: KindSer,
	{'A', 'G', 'A'}: KindArg, {'A', 'G', 'G'}: KindArg,
	{'G', 'G', 'U'}: KindGly, {'G', 'G', 'C'}: KindGly, {'G', 'G', 'A'}: KindGly, {'G', 'G', 'G'}: KindGly,
}

var stopCodons = map[[3]byte]bool{
	{'U', 'A', 'A'}: true,
	{'U', 'A', 'G'}: true,
	{'U', 'G', 'A'}: true,
}

func isLiveBase(b byte) bool {
	return b == 'A' || b == 'U' || b == 'G' || b == 'C'
}

func triplet(genome *[GenomeBytes]byte, pos int) ([3]byte, bool) {
	if pos+3 > GenomeBytes {
		return [3]byte{}, false
	}
	t := [3]byte{genome[pos], genome[pos+1], genome[pos+2]}
	return t, true
}

func isCodingTriplet(t [3]byte) bool {
	return isLiveBase(t[0]) && isLiveBase(t[1]) && isLiveBase(t[2])
}

// TranslatedPart is one output slot of genome translation, prior to
// morphology construction.
type TranslatedPart struct {
	Kind       PartKind
	OrganParam uint8
}

// findStart locates the translation start offset per the require-start-codon
// feature flag. Returns -1 if no valid start exists.
func findStart(genome *[GenomeBytes]byte, requireStartCodon bool) int {
	if requireStartCodon {
		for i := 0; i+3 <= GenomeBytes; i++ {
			t, _ := triplet(genome, i)
			if t == [3]byte{'A', 'U', 'G'} {
				return i
			}
		}
		return -1
	}
	for i := 0; i+3 <= GenomeBytes; i++ {
		t, ok := triplet(genome, i)
		if ok && isCodingTriplet(t) {
			return i
		}
	}
	return -1
}

// isHalt reports whether t ends translation outright: padding/invalid
// bases always halt, regardless of ignoreStopCodons (that flag only
// governs the three genuine stop codons, not genome padding).
func isHalt(t [3]byte) bool {
	return !isCodingTriplet(t)
}

// organFamily maps a promoter amino (L,P,Q,H) and a modifier amino index
// (0..19) to the specific organ it selects, per the two-codon promoter
// rule of spec §4.1.
func organFamily(promoter PartKind, modifier PartKind) (PartKind, bool) {
	m := int(modifier)
	switch promoter {
	case promoterLeucine:
		if m <= 9 {
			return KindPropeller, true
		}
		return KindDisplacer, true
	case promoterProline:
		switch {
		case m <= 6:
			return KindMouth, true
		case m <= 13:
			return KindCondenser, true
		default:
			return KindEnabler, true
		}
	case promoterGln:
		switch {
		case m <= 6:
			return KindAlphaSensor, true
		case m <= 13:
			return KindBetaSensor, true
		default:
			return KindEnergySensor, true
		}
	case promoterHis:
		// Reserved family; implemented as a single condenser placeholder
		// per the open design question in spec §9.
		return KindCondenser, true
	}
	return 0, false
}

func organParamFromModifier(modifier PartKind) uint8 {
	v := float64(modifier) / 19.0 * 255.0
	return uint8(v + 0.5)
}

// TranslateGenome runs the genome -> part-kind-list translation of spec
// §4.1. It is pure and idempotent: identical genome bytes always produce
// an identical part list.
func TranslateGenome(genome *[GenomeBytes]byte, requireStartCodon, ignoreStopCodons bool) []TranslatedPart {
	start := findStart(genome, requireStartCodon)
	if start < 0 {
		return nil
	}

	parts := make([]TranslatedPart, 0, MaxParts)
	pos := start
	for pos+3 <= GenomeBytes && len(parts) < MaxParts {
		t, ok := triplet(genome, pos)
		if !ok {
			break
		}
		if isHalt(t) {
			break
		}
		if stopCodons[t] {
			if !ignoreStopCodons {
				break
			}
			// Skip past the stop codon as if it were non-coding and keep
			// translating the remaining triplets.
			pos += 3
			continue
		}
		amino, known := codonTable[t]
		if !known {
			break
		}

		isPromoter := amino == promoterLeucine || amino == promoterProline ||
			amino == promoterGln || amino == promoterHis

		if isPromoter {
			second, ok := triplet(genome, pos+3)
			if ok && isCodingTriplet(second) {
				if modifier, known := codonTable[second]; known {
					if organKind, ok := organFamily(amino, modifier); ok {
						parts = append(parts, TranslatedPart{
							Kind:       organKind,
							OrganParam: organParamFromModifier(modifier),
						})
						pos += 6
						continue
					}
				}
			}
			// Promoter demoted to its raw amino-acid meaning: second codon
			// missing, crosses genome end, or maps to an invalid modifier.
		}

		parts = append(parts, TranslatedPart{Kind: amino})
		pos += 3
	}

	return parts
}
