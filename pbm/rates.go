package pbm

import "math"

// Default rate values. AdjustRates only retunes a rate that the caller has
// not explicitly pinned via the Override* setters.
const (
	DefaultContactRate  = 0.4
	DefaultBeliefRate   = 0.3
	DefaultRecoveryRate = 0.1

	// InterventionRecoveryRate always applies while the intervention is
	// active, even over a pinned recovery rate.
	InterventionRecoveryRate = 0.15
)

// SimulationRates holds the three compartment-transition rates together with
// explicit override markers. The markers replace the old trick of comparing a
// rate against its default literal to guess whether a user had touched it,
// which misfired when a user deliberately chose the default value.
type SimulationRates struct {
	ContactRate  float64 `json:"contact_rate"`
	BeliefRate   float64 `json:"belief_rate"`
	RecoveryRate float64 `json:"recovery_rate"`

	ContactOverridden  bool `json:"contact_overridden,omitempty"`
	BeliefOverridden   bool `json:"belief_overridden,omitempty"`
	RecoveryOverridden bool `json:"recovery_overridden,omitempty"`

	// pinnedRecovery remembers the caller's recovery value so it can be
	// restored after intervention forces RecoveryRate up.
	pinnedRecovery float64
}

// DefaultSimulationRates returns rates at their documented defaults with no
// overrides set.
func DefaultSimulationRates() SimulationRates {
	return SimulationRates{
		ContactRate:  DefaultContactRate,
		BeliefRate:   DefaultBeliefRate,
		RecoveryRate: DefaultRecoveryRate,
	}
}

// OverrideContactRate pins the contact rate to a caller-chosen value. The
// value is clamped to [0,1]; the pin survives later AdjustRates calls.
func (r *SimulationRates) OverrideContactRate(v float64) {
	r.ContactRate = clamp01(v)
	r.ContactOverridden = true
}

// OverrideBeliefRate pins the belief rate to a caller-chosen value.
func (r *SimulationRates) OverrideBeliefRate(v float64) {
	r.BeliefRate = clamp01(v)
	r.BeliefOverridden = true
}

// OverrideRecoveryRate pins the recovery rate to a caller-chosen value.
// Intervention still raises it while active.
func (r *SimulationRates) OverrideRecoveryRate(v float64) {
	r.RecoveryRate = clamp01(v)
	r.pinnedRecovery = r.RecoveryRate
	r.RecoveryOverridden = true
}

// Adjust retunes the rates for the given scenario conditions. Pinned contact
// and belief rates are respected; the recovery rate is forced up whenever the
// intervention is active, pinned or not.
func (r *SimulationRates) Adjust(topicWeight, juiceFactor float64, intervention bool) {
	if !r.ContactOverridden {
		topicEffect := math.Max(0.1, math.Min(0.8, topicWeight))
		r.ContactRate = math.Min(0.8, DefaultContactRate*(1.0+0.3*topicEffect))
	}

	if !r.BeliefOverridden {
		juiceEffect := math.Max(0.1, math.Min(0.7, juiceFactor))
		r.BeliefRate = math.Min(0.7, DefaultBeliefRate*(1.0+0.4*juiceEffect))
	}

	switch {
	case intervention:
		r.RecoveryRate = InterventionRecoveryRate
	case r.RecoveryOverridden:
		r.RecoveryRate = r.pinnedRecovery
	default:
		r.RecoveryRate = DefaultRecoveryRate
	}
}

// Calibrate rescales the contact rate to account for the ABM contact graph
// topology: denser networks amplify contact. density is avgDegree/(N-1),
// multiplier is the scenario's calibration multiplier. The result stays
// below 0.95.
func (r *SimulationRates) Calibrate(density, multiplier float64) {
	scale := 1.0 + multiplier*density
	r.ContactRate = math.Min(0.95, r.ContactRate*scale)
}

func clamp01(v float64) float64 {
	return math.Max(0.0, math.Min(1.0, v))
}
