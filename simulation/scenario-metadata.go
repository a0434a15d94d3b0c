package simulation

import (
	"encoding/json"
	"os"

	"github.com/shahtr4sh/FYPFN/model"
)

// PBMRateOverrides carries optional absolute rate values from the scenario
// file. A present field pins that rate so later adjustments leave it alone.
type PBMRateOverrides struct {
	Contact  *float64 `json:"contact,omitempty"`
	Belief   *float64 `json:"belief,omitempty"`
	Recovery *float64 `json:"recovery,omitempty"`
}

// ScenarioMetadata is the full scenario input of a lockstep ABM/PBM run.
type ScenarioMetadata struct {
	UniqueName string `json:"unique_name"`

	// Population and topology
	NumAgents       int     `json:"num_agents"`
	EdgeProbability float64 `json:"edge_probability"`
	Seed            int64   `json:"seed"`

	// News item
	TopicWeight   float64 `json:"topic_weight"`
	TopicCategory string  `json:"topic_category"`
	// Juiciness is the normalized virality score in [0,1].
	Juiciness float64 `json:"juiciness"`

	// Round control
	MaxRounds         int `json:"max_rounds"`
	InterventionRound int `json:"intervention_round"`
	InitialBelievers  int `json:"initial_believers"`

	// ABM tunables
	AttributionMode model.AttributionMode `json:"attribution_mode"`
	SharingWeights  model.SharingWeights  `json:"sharing_weights"`
	BeliefInertia   float64               `json:"belief_inertia"`
	MaxBeliefDelta  float64               `json:"max_belief_delta"`

	// PBM tunables
	PBMRates              PBMRateOverrides `json:"pbm_rates"`
	PBMInitialBelievers   *int             `json:"pbm_initial_believers,omitempty"`
	CalibrationMultiplier float64          `json:"calibration_multiplier"`

	// Optional CSV trait table; when empty, traits are synthesized.
	TraitCSVPath string `json:"trait_csv_path,omitempty"`
}

// DefaultScenarioMetadata returns a runnable scenario with documented
// defaults.
func DefaultScenarioMetadata() *ScenarioMetadata {
	return &ScenarioMetadata{
		UniqueName:            "scenario",
		NumAgents:             50,
		EdgeProbability:       0.2,
		Seed:                  42,
		TopicWeight:           1.0,
		TopicCategory:         "",
		Juiciness:             0.5,
		MaxRounds:             20,
		InterventionRound:     5,
		InitialBelievers:      2,
		AttributionMode:       model.AttributionWeighted,
		SharingWeights:        model.DefaultSharingWeights(),
		BeliefInertia:         0.6,
		MaxBeliefDelta:        0.2,
		CalibrationMultiplier: 3.0,
	}
}

// LoadScenarioMetadata reads a scenario JSON file into a defaults-prefilled
// metadata struct, so absent fields keep their default values.
func LoadScenarioMetadata(path string) (*ScenarioMetadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	metadata := DefaultScenarioMetadata()
	if err := json.Unmarshal(data, metadata); err != nil {
		return nil, err
	}

	return metadata, nil
}

// Save writes the scenario back out as indented JSON.
func (m *ScenarioMetadata) Save(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ModelParams assembles the ABM parameter struct from the scenario fields.
func (m *ScenarioMetadata) ModelParams() *model.FNModelParams {
	params := model.DefaultFNModelParams()
	params.Sharing = m.SharingWeights
	params.BeliefInertia = m.BeliefInertia
	params.MaxBeliefDelta = m.MaxBeliefDelta
	if m.AttributionMode != "" {
		params.Attribution = m.AttributionMode
	}
	return params
}
