package model

// Global simulation constants. These mirror the documented model equations;
// per-run tunables live in FNModelParams instead.
const (
	// Belief equation
	PBaseFloor      = 0.2  // minimum base probability
	PBaseTopic      = 0.15 // weight of topic relevance in the base probability
	PBaseJuice      = 0.10 // weight of juiciness in the base probability
	TInfluenceJuice = 0.2  // extra juice weight inside the emotional trait term
	PStarCap        = 0.95 // cap on the pre-social belief probability

	// Trait weight base coefficients
	Beta1 = 0.4 // confirmation bias
	Beta2 = 0.3 // emotional susceptibility
	Beta3 = 0.2 // trust level
	Beta4 = 0.3 // critical thinking (resistance)

	// Primary-vulnerability scaling of trait weights per topic category
	PrimaryTraitBoost   = 1.4
	SecondaryTraitScale = 0.9

	// Fact-check effect
	BaseGamma          = 0.3 // base fact-check effectiveness
	FCGammaMult        = 2.5 // gamma multiplier during intervention
	FCImpactMult       = 1.5 // impact multiplier during intervention
	FCBaseMult         = 0.8 // impact multiplier without intervention
	ShareInterventionPenalty = 0.45 // sharing probability multiplier during intervention

	// Stochastic recovery
	BoredomProb = 0.05 // per-round probability of spontaneous recovery
)

// SharingWeights are the coefficients of the logistic sharing score.
type SharingWeights struct {
	Belief          float64 `json:"belief"`
	Emotional       float64 `json:"emotional"`
	Confirmation    float64 `json:"confirmation"`
	Juice           float64 `json:"juice"`
	CriticalPenalty float64 `json:"critical_penalty"`
	Offset          float64 `json:"offset"`
}

// DefaultSharingWeights returns the documented defaults.
func DefaultSharingWeights() SharingWeights {
	return SharingWeights{
		Belief:          3.0,
		Emotional:       1.2,
		Confirmation:    0.8,
		Juice:           0.8,
		CriticalPenalty: 2.5,
		Offset:          -1.0,
	}
}

// AttributionMode selects how the source of a new believer is credited.
type AttributionMode string

const (
	// AttributionWeighted picks among sharing neighbors with probability
	// proportional to their previous-round belief (floor 0.01).
	AttributionWeighted AttributionMode = "weighted"
	// AttributionRandom picks uniformly among sharing neighbors.
	AttributionRandom AttributionMode = "random"
	// AttributionFirst picks the sharing neighbor with the lowest ID.
	AttributionFirst AttributionMode = "first"
)

// FNModelParams contains the per-run tunables of the fake news model.
type FNModelParams struct {
	// Sharing score coefficients.
	Sharing SharingWeights `json:"sharing"`
	// BeliefInertia is how much of the old belief persists per round, in [0,1).
	BeliefInertia float64 `json:"belief_inertia"`
	// MaxBeliefDelta caps the per-round belief change before smoothing.
	MaxBeliefDelta float64 `json:"max_belief_delta"`
	// Attribution selects the transmission source attribution policy.
	Attribution AttributionMode `json:"attribution_mode"`
}

// DefaultFNModelParams creates a parameter struct with default values.
func DefaultFNModelParams() *FNModelParams {
	return &FNModelParams{
		Sharing:        DefaultSharingWeights(),
		BeliefInertia:  0.6,
		MaxBeliefDelta: 0.2,
		Attribution:    AttributionWeighted,
	}
}

// DynamicParams are the round thresholds derived from scenario conditions.
type DynamicParams struct {
	ThetaB        float64 // belief threshold
	ThetaS        float64 // sharing threshold (kept for inspection; the probabilistic sharing path does not consult it)
	LambdaDecay   float64 // exponential belief decay rate
	ExposureAlpha float64 // steepness of the social influence logistic
}

// GetDynamicParams returns thresholds for the given round conditions. Juicier
// content is easier to believe and decays slower; intervention and the
// extra-rounds extension both speed decay up.
func GetDynamicParams(juiceFactor float64, intervention bool, extraRounds bool) DynamicParams {
	var p DynamicParams
	switch {
	case juiceFactor >= 0.95: // very juicy, viral
		p = DynamicParams{ThetaB: 0.35, ThetaS: 0.55, LambdaDecay: 0.05, ExposureAlpha: 1.0}
	case juiceFactor >= 0.8: // moderately viral
		p = DynamicParams{ThetaB: 0.42, ThetaS: 0.62, LambdaDecay: 0.08, ExposureAlpha: 0.8}
	default: // regular news
		p = DynamicParams{ThetaB: 0.48, ThetaS: 0.65, LambdaDecay: 0.1, ExposureAlpha: 0.7}
	}

	if intervention {
		p.ThetaS *= 1.3
		p.LambdaDecay *= 1.5
	}
	if extraRounds {
		p.LambdaDecay *= 1.2
	}

	return p
}
