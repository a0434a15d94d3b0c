package model

import "math"

// Agent holds one agent's psychological traits and mutable simulation state.
// Traits are set at construction and never validated; callers supplying their
// own tables must keep them in [0,1].
type Agent struct {
	UniqueID int

	// Static traits
	ConfirmationBias        float64
	EmotionalSusceptibility float64
	TrustLevel              float64
	CriticalThinking        float64
	FactCheckSignal         float64
	RiskPerception          float64

	// Mutable state
	Belief  float64
	Shared  bool
	Scammed bool
	// Immune is monotonic: once set the agent stays at belief 0 and never
	// shares again for the rest of the run.
	Immune bool
}

// NewAgent creates an agent from a trait row.
func NewAgent(uniqueID int, traits TraitRow) *Agent {
	return &Agent{
		UniqueID:                uniqueID,
		ConfirmationBias:        traits.ConfirmationBias,
		EmotionalSusceptibility: traits.EmotionalSusceptibility,
		TrustLevel:              traits.TrustLevel,
		CriticalThinking:        traits.CriticalThinking,
		FactCheckSignal:         traits.FactCheckSignal,
		RiskPerception:          traits.RiskPerception,
	}
}

// TraitWeights are the category-adjusted coefficients of the belief equation.
type TraitWeights struct {
	ConfirmationBias        float64
	EmotionalSusceptibility float64
	TrustLevel              float64
	CriticalThinking        float64
}

// CalculateTraitWeights scales the base coefficients by the primary
// vulnerability trait of the topic category. An empty or unknown primary
// trait leaves the base weights untouched.
func CalculateTraitWeights(primaryTrait string) TraitWeights {
	w := TraitWeights{
		ConfirmationBias:        Beta1,
		EmotionalSusceptibility: Beta2,
		TrustLevel:              Beta3,
		CriticalThinking:        Beta4,
	}

	switch primaryTrait {
	case "confirmation_bias", "emotional_susceptibility", "trust_level", "critical_thinking":
	default:
		return w
	}

	scale := func(name string, base float64) float64 {
		if name == primaryTrait {
			return base * PrimaryTraitBoost
		}
		return base * SecondaryTraitScale
	}

	w.ConfirmationBias = scale("confirmation_bias", Beta1)
	w.EmotionalSusceptibility = scale("emotional_susceptibility", Beta2)
	w.TrustLevel = scale("trust_level", Beta3)
	w.CriticalThinking = scale("critical_thinking", Beta4)

	return w
}

// BeliefProbability computes P*, the pre-social probability that the agent
// believes the item, from its traits and the news properties. The result is
// clamped to [0, PStarCap].
func BeliefProbability(a *Agent, w TraitWeights, topicWeight, juiceFactor float64) float64 {
	traitInfluence := w.ConfirmationBias*a.ConfirmationBias +
		w.EmotionalSusceptibility*a.EmotionalSusceptibility*(topicWeight+TInfluenceJuice*juiceFactor) +
		w.TrustLevel*a.TrustLevel

	resistance := w.CriticalThinking * a.CriticalThinking

	base := PBaseFloor + PBaseTopic*topicWeight + PBaseJuice*juiceFactor

	return math.Min(PStarCap, math.Max(0.0, base+traitInfluence-resistance))
}

// SocialFactor is the logistic social influence of exposure count.
func SocialFactor(exposureAlpha float64, exposures int) float64 {
	return 1.0 / (1.0 + math.Exp(-exposureAlpha*float64(exposures)))
}

// ExposureFactor combines social influence with a juiciness amplification,
// capped at 0.8 to keep exposure from dominating traits.
func ExposureFactor(socialFactor, juiceFactor float64) float64 {
	return math.Min(0.8, socialFactor*(1.0+0.35*juiceFactor))
}

// FactCheckImpact is the belief penalty from the agent's fact-check signal,
// amplified while the intervention is active.
func FactCheckImpact(a *Agent, intervention bool) float64 {
	gamma := BaseGamma
	impactMult := FCBaseMult
	if intervention {
		gamma *= FCGammaMult
		impactMult = FCImpactMult
	}
	return gamma * a.FactCheckSignal * impactMult
}

// DecayBelief applies exponential decay with an exposure-dependent modifier.
// More sharing neighbors slow the decay down, with modifier floored at
// modifierFloor.
func DecayBelief(belief, lambdaDecay float64, exposures int, exposureDiv, modifierFloor float64) float64 {
	modifier := math.Max(modifierFloor, 1.0-float64(exposures)/exposureDiv)
	return belief * math.Exp(-lambdaDecay*modifier)
}

// SmoothBelief applies inertia and caps the per-round belief change, then
// clamps the result to [0,1].
func SmoothBelief(oldBelief, targetBelief, inertia, maxDelta float64) float64 {
	delta := targetBelief - oldBelief
	if delta > maxDelta {
		delta = maxDelta
	} else if delta < -maxDelta {
		delta = -maxDelta
	}
	smoothed := oldBelief + (1.0-inertia)*delta
	return math.Max(0.0, math.Min(1.0, smoothed))
}

// SharingProbability computes the probability that the agent shares the item
// this round. The logistic score is gated by the committed belief, so agents
// with no belief never share, and the intervention penalty is applied last.
func SharingProbability(a *Agent, w SharingWeights, belief, juiceFactor float64, intervention bool) float64 {
	score := w.Belief*belief +
		w.Emotional*a.EmotionalSusceptibility +
		w.Confirmation*a.ConfirmationBias +
		w.Juice*juiceFactor -
		w.CriticalPenalty*a.CriticalThinking +
		w.Offset

	p := sigmoid(score) * math.Max(0.0, belief)
	if intervention {
		p *= ShareInterventionPenalty
	}
	return p
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

// ScamProbability is the deterministic susceptibility check of the scam
// variant: a pure function of traits, clamped to [0,1]. There is no random
// draw on this path; identical traits and exposure always give the same
// outcome.
func ScamProbability(a *Agent) float64 {
	p := 0.5*a.TrustLevel + 0.4*(1.0-a.RiskPerception) - 0.3*a.CriticalThinking
	return math.Max(0.0, math.Min(1.0, p))
}
