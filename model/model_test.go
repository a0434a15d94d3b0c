package model

import (
	"math"
	"testing"
)

func neutralTraitTable(n int) []TraitRow {
	rows := make([]TraitRow, n)
	for i := range rows {
		rows[i] = NeutralTraitRow()
	}
	return rows
}

// Test case for bit-identical replay of a seeded run
func TestSimulateRoundDeterministic(t *testing.T) {
	build := func() *FakeNewsModel {
		m, err := NewFakeNewsModel(40, 0.2, 12345, nil, nil, nil)
		if err != nil {
			t.Fatalf("Failed to create model: %v", err)
		}
		m.SeedInitialState(3, false)
		return m
	}

	a := build()
	b := build()

	for round := 0; round < 10; round++ {
		a.SimulateRound(0.6, 1.2, "confirmation_bias", false, false)
		b.SimulateRound(0.6, 1.2, "confirmation_bias", false, false)

		beliefsA := a.CollectBeliefs()
		beliefsB := b.CollectBeliefs()
		for i := range beliefsA {
			if beliefsA[i] != beliefsB[i] {
				t.Fatalf("Round %d agent %d: beliefs diverged (%v vs %v)", round, i, beliefsA[i], beliefsB[i])
			}
		}

		sharedA := a.CollectShared()
		sharedB := b.CollectShared()
		for i := range sharedA {
			if sharedA[i] != sharedB[i] {
				t.Fatalf("Round %d agent %d: shared flags diverged", round, i)
			}
		}
	}

	if len(a.TransmissionHistory) != len(b.TransmissionHistory) {
		t.Fatalf("Transmission history lengths differ: %d vs %d",
			len(a.TransmissionHistory), len(b.TransmissionHistory))
	}
	for r := range a.TransmissionHistory {
		ta, tb := a.TransmissionHistory[r], b.TransmissionHistory[r]
		if len(ta) != len(tb) {
			t.Fatalf("Round %d: transmission counts differ: %d vs %d", r, len(ta), len(tb))
		}
		for k := range ta {
			if ta[k] != tb[k] {
				t.Fatalf("Round %d: transmission %d differs: %v vs %v", r, k, ta[k], tb[k])
			}
		}
	}
}

// Test case for attribution modes: believer trajectories must be identical
// across weighted, random and first attribution, since attribution only
// labels transmissions and never feeds back into the dynamics.
func TestAttributionModeDoesNotAffectDynamics(t *testing.T) {
	run := func(mode AttributionMode) [][]float64 {
		params := DefaultFNModelParams()
		params.Attribution = mode
		m, err := NewFakeNewsModel(30, 0.3, 42, nil, params, nil)
		if err != nil {
			t.Fatalf("Failed to create model: %v", err)
		}
		m.SeedInitialState(3, false)

		var beliefs [][]float64
		for round := 0; round < 8; round++ {
			m.SimulateRound(0.9, 1.3, "trust_level", false, false)
			beliefs = append(beliefs, m.CollectBeliefs())
		}
		return beliefs
	}

	weighted := run(AttributionWeighted)
	random := run(AttributionRandom)
	first := run(AttributionFirst)

	for round := range weighted {
		for i := range weighted[round] {
			if weighted[round][i] != random[round][i] {
				t.Fatalf("Round %d agent %d: weighted and random trajectories diverged", round, i)
			}
			if weighted[round][i] != first[round][i] {
				t.Fatalf("Round %d agent %d: weighted and first trajectories diverged", round, i)
			}
		}
	}
}

// Test case for the immune state: once set it must persist with belief 0 and
// no sharing for the rest of the run.
func TestImmunityIsMonotonic(t *testing.T) {
	m, err := NewFakeNewsModel(30, 0.3, 7, neutralTraitTable(30), nil, nil)
	if err != nil {
		t.Fatalf("Failed to create model: %v", err)
	}
	m.SeedInitialState(10, false)

	immuneSince := make([]int, len(m.Agents))
	for i := range immuneSince {
		immuneSince[i] = -1
	}

	// intervention accelerates decay so seeded believers cross back below
	// the threshold and go immune within the round budget
	for round := 0; round < 40; round++ {
		m.SimulateRound(0.5, 1.0, "", true, false)

		for i, a := range m.Agents {
			if immuneSince[i] >= 0 {
				if !a.Immune {
					t.Fatalf("Round %d agent %d: immunity was lost (set at round %d)", round, i, immuneSince[i])
				}
				if a.Belief != 0.0 {
					t.Fatalf("Round %d agent %d: immune agent has belief %v", round, i, a.Belief)
				}
				if a.Shared {
					t.Fatalf("Round %d agent %d: immune agent shared", round, i)
				}
			} else if a.Immune {
				immuneSince[i] = round
			}
		}
	}

	anyImmune := false
	for i := range immuneSince {
		if immuneSince[i] >= 0 {
			anyImmune = true
			break
		}
	}
	if !anyImmune {
		t.Errorf("Expected at least one agent to go immune under intervention")
	}
}

// Test case for transmission attribution: every credited source must be a
// contact-graph neighbor of the target.
func TestTransmissionSourcesAreNeighbors(t *testing.T) {
	m, err := NewFakeNewsModel(40, 0.25, 99, nil, nil, nil)
	if err != nil {
		t.Fatalf("Failed to create model: %v", err)
	}
	m.SeedInitialState(4, false)

	for round := 0; round < 10; round++ {
		m.SimulateRound(0.95, 1.4, "emotional_susceptibility", false, false)
	}

	for r, records := range m.TransmissionHistory {
		for _, rec := range records {
			if !m.Graph.HasEdgeBetween(int64(rec.Source), int64(rec.Target)) {
				t.Errorf("Round %d: transmission %d->%d is not an edge", r, rec.Source, rec.Target)
			}
		}
	}
}

// Test case for the first attribution policy on a complete graph: the
// credited source must be the lowest-ID sharing neighbor.
func TestAttributionFirstPicksLowestID(t *testing.T) {
	params := DefaultFNModelParams()
	params.Attribution = AttributionFirst
	m, err := NewFakeNewsModel(10, 1.0, 5, neutralTraitTable(10), params, nil)
	if err != nil {
		t.Fatalf("Failed to create model: %v", err)
	}

	prevShared := make([]bool, 10)
	prevBelief := make([]float64, 10)
	prevShared[4] = true
	prevShared[7] = true
	prevBelief[4] = 0.2
	prevBelief[7] = 0.9

	src, ok := m.attributeSource(0, prevShared, prevBelief)
	if !ok {
		t.Fatalf("Expected attribution to find a source")
	}
	if src != 4 {
		t.Errorf("Expected source 4 (lowest sharing ID), got %d", src)
	}

	// no sharing neighbor means no attribution
	none := make([]bool, 10)
	if _, ok := m.attributeSource(0, none, prevBelief); ok {
		t.Errorf("Expected no attribution when nobody shared")
	}
}

// Test case for SeedInitialState
func TestSeedInitialState(t *testing.T) {
	m, err := NewFakeNewsModel(20, 0.2, 1, nil, nil, nil)
	if err != nil {
		t.Fatalf("Failed to create model: %v", err)
	}
	m.SeedInitialState(5, false)

	believers := 0
	for _, a := range m.Agents {
		if a.Belief == 1.0 && a.Shared {
			believers++
		}
	}
	if believers != 5 {
		t.Errorf("Expected 5 seeded believers, got %d", believers)
	}
}

// Test case for invalid construction
func TestNewFakeNewsModelRejectsNonPositiveCount(t *testing.T) {
	if _, err := NewFakeNewsModel(0, 0.2, 1, nil, nil, nil); err == nil {
		t.Errorf("Expected an error for zero agents")
	}
	if _, err := NewFakeNewsModel(-3, 0.2, 1, nil, nil, nil); err == nil {
		t.Errorf("Expected an error for negative agents")
	}
}

// Test case for SharingProbability: zero belief must never share
func TestZeroBeliefNeverShares(t *testing.T) {
	a := NewAgent(0, TraitRow{
		ConfirmationBias:        0.9,
		EmotionalSusceptibility: 0.9,
		TrustLevel:              0.9,
		CriticalThinking:        0.1,
		FactCheckSignal:         0.1,
		RiskPerception:          0.5,
	})
	p := SharingProbability(a, DefaultSharingWeights(), 0.0, 1.0, false)
	if p != 0.0 {
		t.Errorf("Expected sharing probability 0 at zero belief, got %v", p)
	}
}

// Test case for SmoothBelief bounds and delta capping
func TestSmoothBelief(t *testing.T) {
	// full jump is capped at maxDelta, then scaled by (1 - inertia)
	got := SmoothBelief(0.0, 1.0, 0.6, 0.2)
	want := 0.4 * 0.2
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("Expected %v, got %v", want, got)
	}

	// downward jump is capped symmetrically
	got = SmoothBelief(1.0, 0.0, 0.6, 0.2)
	want = 1.0 - 0.4*0.2
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("Expected %v, got %v", want, got)
	}

	// result stays inside [0,1]
	if v := SmoothBelief(0.0, -5.0, 0.0, 10.0); v < 0.0 {
		t.Errorf("Expected clamp at 0, got %v", v)
	}
	if v := SmoothBelief(1.0, 5.0, 0.0, 10.0); v > 1.0 {
		t.Errorf("Expected clamp at 1, got %v", v)
	}
}

// Test case for the juiciness tiers of GetDynamicParams
func TestGetDynamicParams(t *testing.T) {
	viral := GetDynamicParams(0.97, false, false)
	if viral.ThetaB != 0.35 || viral.LambdaDecay != 0.05 {
		t.Errorf("Unexpected viral tier params: %+v", viral)
	}

	moderate := GetDynamicParams(0.85, false, false)
	if moderate.ThetaB != 0.42 || moderate.LambdaDecay != 0.08 {
		t.Errorf("Unexpected moderate tier params: %+v", moderate)
	}

	regular := GetDynamicParams(0.3, false, false)
	if regular.ThetaB != 0.48 || regular.LambdaDecay != 0.1 {
		t.Errorf("Unexpected regular tier params: %+v", regular)
	}

	// intervention raises the sharing threshold and speeds decay
	intervened := GetDynamicParams(0.3, true, false)
	if math.Abs(intervened.ThetaS-regular.ThetaS*1.3) > 1e-12 {
		t.Errorf("Expected sharing threshold %v, got %v", regular.ThetaS*1.3, intervened.ThetaS)
	}
	if math.Abs(intervened.LambdaDecay-regular.LambdaDecay*1.5) > 1e-12 {
		t.Errorf("Expected decay %v, got %v", regular.LambdaDecay*1.5, intervened.LambdaDecay)
	}

	// the extended regime speeds decay further
	extended := GetDynamicParams(0.3, false, true)
	if math.Abs(extended.LambdaDecay-regular.LambdaDecay*1.2) > 1e-12 {
		t.Errorf("Expected decay %v, got %v", regular.LambdaDecay*1.2, extended.LambdaDecay)
	}
}

// Test case for trait weight scaling by a category's primary trait
func TestCalculateTraitWeights(t *testing.T) {
	base := CalculateTraitWeights("")
	if base.ConfirmationBias != Beta1 || base.EmotionalSusceptibility != Beta2 ||
		base.TrustLevel != Beta3 || base.CriticalThinking != Beta4 {
		t.Errorf("Expected base weights, got %+v", base)
	}

	// an unknown trait name leaves the base weights alone
	unknown := CalculateTraitWeights("greed")
	if unknown != base {
		t.Errorf("Expected base weights for unknown trait, got %+v", unknown)
	}

	boosted := CalculateTraitWeights("trust_level")
	if math.Abs(boosted.TrustLevel-Beta3*PrimaryTraitBoost) > 1e-12 {
		t.Errorf("Expected trust weight %v, got %v", Beta3*PrimaryTraitBoost, boosted.TrustLevel)
	}
	if math.Abs(boosted.ConfirmationBias-Beta1*SecondaryTraitScale) > 1e-12 {
		t.Errorf("Expected scaled bias weight %v, got %v", Beta1*SecondaryTraitScale, boosted.ConfirmationBias)
	}
}

// Test case for BeliefProbability clamping
func TestBeliefProbabilityClamps(t *testing.T) {
	w := CalculateTraitWeights("")

	gullible := NewAgent(0, TraitRow{
		ConfirmationBias:        1.0,
		EmotionalSusceptibility: 1.0,
		TrustLevel:              1.0,
		CriticalThinking:        0.0,
	})
	if p := BeliefProbability(gullible, w, 1.5, 1.0); p != PStarCap {
		t.Errorf("Expected cap %v, got %v", PStarCap, p)
	}

	skeptic := NewAgent(1, TraitRow{
		CriticalThinking: 1.0,
	})
	if p := BeliefProbability(skeptic, w, 0.0, 0.0); p < 0.0 {
		t.Errorf("Expected non-negative probability, got %v", p)
	}
}

// Test case for the exposure factor cap
func TestExposureFactorCap(t *testing.T) {
	// many exposures at full juiciness saturate the cap
	sf := SocialFactor(1.0, 100)
	if f := ExposureFactor(sf, 1.0); f != 0.8 {
		t.Errorf("Expected cap 0.8, got %v", f)
	}

	// no exposure keeps the factor at the logistic midpoint scaled by juice
	sf = SocialFactor(0.7, 0)
	want := 0.5 * (1.0 + 0.35*0.4)
	if f := ExposureFactor(sf, 0.4); math.Abs(f-want) > 1e-12 {
		t.Errorf("Expected %v, got %v", want, f)
	}
}

// Test case for DecayBelief modifier floors
func TestDecayBelief(t *testing.T) {
	// zero exposures decay at the full rate
	got := DecayBelief(1.0, 0.1, 0, 8.0, 0.6)
	want := math.Exp(-0.1)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("Expected %v, got %v", want, got)
	}

	// heavy exposure hits the modifier floor instead of going negative
	got = DecayBelief(1.0, 0.1, 50, 10.0, 0.5)
	want = math.Exp(-0.1 * 0.5)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("Expected floored decay %v, got %v", want, got)
	}
}
