package agent

// PartKind is the closed enum of 28 part kinds: 20 amino-acid archetypes
// (0..19) plus 8 organ archetypes (20..27) formed by a two-codon
// promoter+modifier pattern. Behaviour is a switch on this index reading
// from the constant property table below; there is no polymorphism.
type PartKind uint8

const (
	KindAla PartKind = iota // 0
	KindArg                 // 1
	KindAsn                 // 2
	KindAsp                 // 3
	KindCys                 // 4
	KindGlu                 // 5
	KindHis                 // 6  organ promoter family H
	KindGly                 // 7
	KindIle                 // 8
	KindLeu                 // 9  organ promoter family L / chirality flipper
	KindLys                 // 10
	KindMet                 // 11
	KindPro                 // 12 organ promoter family P
	KindGln                 // 13 organ promoter family Q
	KindSer                 // 14
	KindThr                 // 15
	KindVal                 // 16
	KindTrp                 // 17
	KindTyr                 // 18
	KindPhe                 // 19

	KindPropeller    // 20
	KindDisplacer    // 21
	KindMouth        // 22
	KindCondenser    // 23
	KindEnabler      // 24
	KindAlphaSensor  // 25
	KindBetaSensor   // 26
	KindEnergySensor // 27

	numPartKinds = 28
)

// Promoter families, keyed by the raw amino index that introduces them.
const (
	promoterLeucine = KindLeu
	promoterProline = KindPro
	promoterGln     = KindGln
	promoterHis     = KindHis
)

// KindProps is the constant per-kind property record referenced by every
// kernel that touches body parts.
type KindProps struct {
	Name string

	SegmentLength float32
	Thickness     float32
	BaseAngle     float32 // baseline bend angle, radians
	Mass          float32
	EnergyStorage float32

	SensAlpha float32 // Sα: signal-driven angle sensitivity to alpha
	SensBeta  float32 // Sβ

	MulAlphaLeft  float32 // anisotropic left/right flow multipliers
	MulAlphaRight float32
	MulBetaLeft   float32
	MulBetaRight  float32

	SignalDecay float32

	ColorDamage float32 // contributes to the identity-color hash

	AbsorbRateAlpha float32 // mouth absorb rate, channel alpha
	AbsorbRateBeta  float32 // mouth absorb rate, channel beta

	ThrustMagnitude float32 // propeller kind_thrust
	OrganCost       float32 // organ maintenance baseline cost

	IsPropeller    bool
	IsMouth        bool
	IsAlphaSensor  bool
	IsBetaSensor   bool
	IsEnergySensor bool
	IsCondenser    bool
	IsDisplacer    bool
	IsEnabler      bool
	IsChiralityFlipper bool
}

// kindTable is the closed constant property table, indexed by PartKind.
var kindTable = [numPartKinds]KindProps{
	KindAla: {Name: "Ala", SegmentLength: 8, Thickness: 3, BaseAngle: 0.05, Mass: 1.0, EnergyStorage: 2, SensAlpha: 0.02, SensBeta: 0.02, MulAlphaLeft: 0.5, MulAlphaRight: 0.5, MulBetaLeft: 0.5, MulBetaRight: 0.5, SignalDecay: 0.99, ColorDamage: 0.10, OrganCost: 0},
	KindArg: {Name: "Arg", SegmentLength: 9, Thickness: 3.2, BaseAngle: -0.08, Mass: 1.3, EnergyStorage: 2, SensAlpha: 0.03, SensBeta: 0.05, MulAlphaLeft: 0.45, MulAlphaRight: 0.55, MulBetaLeft: 0.55, MulBetaRight: 0.45, SignalDecay: 0.99, ColorDamage: 0.35},
	KindAsn: {Name: "Asn", SegmentLength: 7, Thickness: 2.8, BaseAngle: 0.10, Mass: 0.9, EnergyStorage: 2, SensAlpha: 0.04, SensBeta: 0.02, MulAlphaLeft: 0.55, MulAlphaRight: 0.45, MulBetaLeft: 0.5, MulBetaRight: 0.5, SignalDecay: 0.99, ColorDamage: 0.55},
	KindAsp: {Name: "Asp", SegmentLength: 7, Thickness: 2.8, BaseAngle: -0.10, Mass: 0.9, EnergyStorage: 2, SensAlpha: 0.02, SensBeta: 0.04, MulAlphaLeft: 0.5, MulAlphaRight: 0.5, MulBetaLeft: 0.45, MulBetaRight: 0.55, SignalDecay: 0.99, ColorDamage: 0.70},
	KindCys: {Name: "Cys", SegmentLength: 6, Thickness: 2.5, BaseAngle: 0.15, Mass: 0.8, EnergyStorage: 1.5, SensAlpha: 0.01, SensBeta: 0.01, MulAlphaLeft: 0.5, MulAlphaRight: 0.5, MulBetaLeft: 0.5, MulBetaRight: 0.5, SignalDecay: 0.985, ColorDamage: 0.95},
	KindGlu: {Name: "Glu", SegmentLength: 8, Thickness: 3, BaseAngle: -0.12, Mass: 1.1, EnergyStorage: 2.2, SensAlpha: 0.02, SensBeta: 0.06, MulAlphaLeft: 0.5, MulAlphaRight: 0.5, MulBetaLeft: 0.4, MulBetaRight: 0.6, SignalDecay: 0.99, ColorDamage: 1.15},
	KindHis: {Name: "His", SegmentLength: 8, Thickness: 3.1, BaseAngle: 0.12, Mass: 1.1, EnergyStorage: 2, SensAlpha: 0.03, SensBeta: 0.03, MulAlphaLeft: 0.5, MulAlphaRight: 0.5, MulBetaLeft: 0.5, MulBetaRight: 0.5, SignalDecay: 0.99, ColorDamage: 1.35},
	KindGly: {Name: "Gly", SegmentLength: 5, Thickness: 2.2, BaseAngle: 0.25, Mass: 0.6, EnergyStorage: 1, SensAlpha: 0.05, SensBeta: 0.05, MulAlphaLeft: 0.6, MulAlphaRight: 0.4, MulBetaLeft: 0.4, MulBetaRight: 0.6, SignalDecay: 0.98, ColorDamage: 1.55},
	KindIle: {Name: "Ile", SegmentLength: 9, Thickness: 3.3, BaseAngle: -0.05, Mass: 1.4, EnergyStorage: 2.4, SensAlpha: 0.02, SensBeta: 0.02, MulAlphaLeft: 0.5, MulAlphaRight: 0.5, MulBetaLeft: 0.5, MulBetaRight: 0.5, SignalDecay: 0.99, ColorDamage: 1.75},
	KindLeu: {Name: "Leu", SegmentLength: 9, Thickness: 3.3, BaseAngle: 0, Mass: 1.4, EnergyStorage: 2.4, SensAlpha: 0.02, SensBeta: 0.02, MulAlphaLeft: 0.5, MulAlphaRight: 0.5, MulBetaLeft: 0.5, MulBetaRight: 0.5, SignalDecay: 0.99, ColorDamage: 1.95, IsChiralityFlipper: true},
	KindLys: {Name: "Lys", SegmentLength: 9, Thickness: 3.2, BaseAngle: -0.07, Mass: 1.3, EnergyStorage: 2.2, SensAlpha: 0.02, SensBeta: 0.05, MulAlphaLeft: 0.45, MulAlphaRight: 0.55, MulBetaLeft: 0.55, MulBetaRight: 0.45, SignalDecay: 0.99, ColorDamage: 2.15},
	KindMet: {Name: "Met", SegmentLength: 10, Thickness: 3.4, BaseAngle: 0, Mass: 1.5, EnergyStorage: 2.6, SensAlpha: 0.02, SensBeta: 0.02, MulAlphaLeft: 0.5, MulAlphaRight: 0.5, MulBetaLeft: 0.5, MulBetaRight: 0.5, SignalDecay: 0.99, ColorDamage: 2.35},
	KindPro: {Name: "Pro", SegmentLength: 6, Thickness: 3, BaseAngle: 0.35, Mass: 1.0, EnergyStorage: 1.8, SensAlpha: 0.03, SensBeta: 0.03, MulAlphaLeft: 0.5, MulAlphaRight: 0.5, MulBetaLeft: 0.5, MulBetaRight: 0.5, SignalDecay: 0.99, ColorDamage: 2.55},
	KindGln: {Name: "Gln", SegmentLength: 8, Thickness: 3, BaseAngle: -0.15, Mass: 1.1, EnergyStorage: 2, SensAlpha: 0.04, SensBeta: 0.02, MulAlphaLeft: 0.55, MulAlphaRight: 0.45, MulBetaLeft: 0.5, MulBetaRight: 0.5, SignalDecay: 0.99, ColorDamage: 2.75},
	KindSer: {Name: "Ser", SegmentLength: 7, Thickness: 2.6, BaseAngle: 0.18, Mass: 0.85, EnergyStorage: 1.6, SensAlpha: 0.03, SensBeta: 0.02, MulAlphaLeft: 0.5, MulAlphaRight: 0.5, MulBetaLeft: 0.5, MulBetaRight: 0.5, SignalDecay: 0.985, ColorDamage: 2.95},
	KindThr: {Name: "Thr", SegmentLength: 7, Thickness: 2.7, BaseAngle: -0.18, Mass: 0.9, EnergyStorage: 1.8, SensAlpha: 0.02, SensBeta: 0.03, MulAlphaLeft: 0.5, MulAlphaRight: 0.5, MulBetaLeft: 0.5, MulBetaRight: 0.5, SignalDecay: 0.985, ColorDamage: 3.15},
	KindVal: {Name: "Val", SegmentLength: 8, Thickness: 3.1, BaseAngle: 0.08, Mass: 1.2, EnergyStorage: 2.1, SensAlpha: 0.02, SensBeta: 0.02, MulAlphaLeft: 0.5, MulAlphaRight: 0.5, MulBetaLeft: 0.5, MulBetaRight: 0.5, SignalDecay: 0.99, ColorDamage: 3.35},
	KindTrp: {Name: "Trp", SegmentLength: 10, Thickness: 3.5, BaseAngle: -0.02, Mass: 1.6, EnergyStorage: 2.8, SensAlpha: 0.01, SensBeta: 0.01, MulAlphaLeft: 0.5, MulAlphaRight: 0.5, MulBetaLeft: 0.5, MulBetaRight: 0.5, SignalDecay: 0.995, ColorDamage: 3.55},
	KindTyr: {Name: "Tyr", SegmentLength: 9, Thickness: 3.2, BaseAngle: 0.06, Mass: 1.3, EnergyStorage: 2.3, SensAlpha: 0.03, SensBeta: 0.02, MulAlphaLeft: 0.5, MulAlphaRight: 0.5, MulBetaLeft: 0.5, MulBetaRight: 0.5, SignalDecay: 0.99, ColorDamage: 3.75},
	KindPhe: {Name: "Phe", SegmentLength: 9, Thickness: 3.2, BaseAngle: -0.06, Mass: 1.3, EnergyStorage: 2.3, SensAlpha: 0.02, SensBeta: 0.02, MulAlphaLeft: 0.5, MulAlphaRight: 0.5, MulBetaLeft: 0.5, MulBetaRight: 0.5, SignalDecay: 0.99, ColorDamage: 3.95},

	KindPropeller: {Name: "Propeller", SegmentLength: 9, Thickness: 4, BaseAngle: 0, Mass: 1.8, EnergyStorage: 1, ThrustMagnitude: 1.0, OrganCost: 0.015, IsPropeller: true},
	KindDisplacer: {Name: "Displacer", SegmentLength: 8, Thickness: 4, BaseAngle: 0, Mass: 1.6, EnergyStorage: 1, OrganCost: 0.012, IsDisplacer: true},
	KindMouth:     {Name: "Mouth", SegmentLength: 6, Thickness: 4.5, BaseAngle: 0, Mass: 1.2, EnergyStorage: 1, AbsorbRateAlpha: 0.6, AbsorbRateBeta: 0.4, OrganCost: 0.008, IsMouth: true},
	KindCondenser: {Name: "Condenser", SegmentLength: 5, Thickness: 3.5, BaseAngle: 0, Mass: 1.4, EnergyStorage: 1.5, OrganCost: 0.006, IsCondenser: true},
	KindEnabler:   {Name: "Enabler", SegmentLength: 5, Thickness: 2.5, BaseAngle: 0, Mass: 0.7, EnergyStorage: 0.8, OrganCost: 0.004, IsEnabler: true},
	KindAlphaSensor:  {Name: "AlphaSensor", SegmentLength: 6, Thickness: 3, BaseAngle: 0, Mass: 0.9, EnergyStorage: 1, OrganCost: 0.004, IsAlphaSensor: true},
	KindBetaSensor:   {Name: "BetaSensor", SegmentLength: 6, Thickness: 3, BaseAngle: 0, Mass: 0.9, EnergyStorage: 1, OrganCost: 0.004, IsBetaSensor: true},
	KindEnergySensor: {Name: "EnergySensor", SegmentLength: 5, Thickness: 2.8, BaseAngle: 0, Mass: 0.8, EnergyStorage: 1, OrganCost: 0.004, IsEnergySensor: true},
}

// Props returns the constant property record for a kind.
func Props(k PartKind) KindProps {
	if int(k) >= numPartKinds {
		return kindTable[KindAla]
	}
	return kindTable[k]
}

// MassFloored returns a kind's mass with the spec's floor of 0.01 applied.
func (p KindProps) MassFloored() float32 {
	if p.Mass < 0.01 {
		return 0.01
	}
	return p.Mass
}
