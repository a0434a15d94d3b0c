package model

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/shahtr4sh/FYPFN/utils"
	"gonum.org/v1/gonum/graph/simple"
)

// TransmissionRecord attributes one new believer to the sharing neighbor who
// reached them.
type TransmissionRecord struct {
	Source int `msgpack:"source"`
	Target int `msgpack:"target"`
}

// FakeNewsModel is the agent-based engine. It owns the contact graph, the
// agent store and the transmission history; all randomness goes through its
// seeded RNG so runs replay bit-identically.
type FakeNewsModel struct {
	Graph       *simple.UndirectedGraph
	Agents      []*Agent
	Params      *FNModelParams
	EventLogger func(*EventRecord)
	CurRound    int

	// TransmissionHistory holds one record list per simulated round.
	TransmissionHistory [][]TransmissionRecord

	// rng drives the belief/sharing dynamics; attrRng drives attribution
	// tie-breaks. Separate streams keep the trajectories identical across
	// attribution modes: attribution affects logging only, never dynamics.
	rng       *rand.Rand
	attrRng   *rand.Rand
	neighbors [][]int64 // sorted neighbor IDs per agent, fixed at construction
}

// NewFakeNewsModel creates a model over numAgents agents connected by an
// Erdős–Rényi graph with the given edge probability. When traits is nil a
// random trait table is synthesized from the same seed. numAgents must be
// positive.
func NewFakeNewsModel(
	numAgents int,
	edgeProbability float64,
	seed int64,
	traits []TraitRow,
	params *FNModelParams,
	eventLogger func(*EventRecord),
) (*FakeNewsModel, error) {
	if numAgents <= 0 {
		return nil, fmt.Errorf("invalid agent count %d: must be positive", numAgents)
	}
	if params == nil {
		params = DefaultFNModelParams()
	}

	g := utils.CreateContactNetwork(numAgents, edgeProbability, seed)

	if traits == nil {
		traits = GenerateRandomTraits(numAgents, uint64(seed))
	}

	m := &FakeNewsModel{
		Graph:       g,
		Params:      params,
		EventLogger: eventLogger,
		rng:         rand.New(rand.NewSource(seed)),
		attrRng:     rand.New(rand.NewSource(seed + 1)),
	}

	m.Agents = make([]*Agent, numAgents)
	for i := 0; i < numAgents; i++ {
		row := NeutralTraitRow()
		if i < len(traits) {
			row = traits[i]
		}
		m.Agents[i] = NewAgent(i, row)
	}

	m.neighbors = make([][]int64, numAgents)
	for i := 0; i < numAgents; i++ {
		m.neighbors[i] = utils.SortedNeighbors(g, int64(i))
	}

	return m, nil
}

// SeedInitialState makes count random agents full believers and sharers, or
// scam victims in the scam variant.
func (m *FakeNewsModel) SeedInitialState(count int, isScam bool) {
	if count > len(m.Agents) {
		count = len(m.Agents)
	}
	for _, idx := range m.rng.Perm(len(m.Agents))[:count] {
		if isScam {
			m.Agents[idx].Scammed = true
		} else {
			m.Agents[idx].Belief = 1.0
			m.Agents[idx].Shared = true
		}
	}
}

// countExposures counts neighbors of agent i that were sharing last round.
func (m *FakeNewsModel) countExposures(i int, prevShared []bool) int {
	exposures := 0
	for _, j := range m.neighbors[i] {
		if prevShared[j] {
			exposures++
		}
	}
	return exposures
}

// SimulateRound advances the standard fake-news model by one round and
// returns the committed shared flags. Agent updates read only the previous
// round's snapshot, so iteration order cannot leak state within a round.
//
// Per-agent transition order: boredom recovery, decay or standard update,
// immunity transition, smoothing, sharing decision, transmission attribution.
func (m *FakeNewsModel) SimulateRound(
	juiceFactor float64,
	topicWeight float64,
	primaryTrait string,
	intervention bool,
	extraRounds bool,
) []bool {
	n := len(m.Agents)

	// snapshot previous round state
	prevShared := make([]bool, n)
	prevBelief := make([]float64, n)
	for i, a := range m.Agents {
		prevShared[i] = a.Shared
		prevBelief[i] = a.Belief
	}

	dyn := GetDynamicParams(juiceFactor, intervention, extraRounds)
	weights := CalculateTraitWeights(primaryTrait)

	prevBeliever := make([]bool, n)
	for i := 0; i < n; i++ {
		prevBeliever[i] = prevBelief[i] > dyn.ThetaB
	}

	// phase 1: target beliefs
	newBeliefs := make([]float64, n)
	for i, a := range m.Agents {
		if a.Immune {
			continue
		}

		exposures := m.countExposures(i, prevShared)

		// spontaneous recovery takes precedence over continued exposure
		if prevBeliever[i] && m.rng.Float64() < BoredomProb {
			newBeliefs[i] = 0.0
			continue
		}

		if extraRounds || exposures == 0 {
			newBeliefs[i] = DecayBelief(prevBelief[i], dyn.LambdaDecay, exposures, 8.0, 0.6)
			continue
		}

		pStar := BeliefProbability(a, weights, topicWeight, juiceFactor)
		exposureFactor := ExposureFactor(SocialFactor(dyn.ExposureAlpha, exposures), juiceFactor)
		pBelieve := math.Max(0.0, exposureFactor*pStar-FactCheckImpact(a, intervention))

		if pBelieve > dyn.ThetaB {
			newBeliefs[i] = math.Min(PStarCap, pBelieve)
		} else {
			newBeliefs[i] = DecayBelief(prevBelief[i], dyn.LambdaDecay, exposures, 10.0, 0.5)
		}
	}

	// phase 2: immunity transition. A believer that fell below the threshold
	// is done with this item for good.
	for i, a := range m.Agents {
		if prevBeliever[i] && newBeliefs[i] <= dyn.ThetaB {
			a.Immune = true
			newBeliefs[i] = 0.0
		}
	}

	// phase 3: smoothing and commit
	for i, a := range m.Agents {
		if a.Immune {
			a.Belief = 0.0
			a.Shared = false
			continue
		}
		a.Belief = SmoothBelief(prevBelief[i], newBeliefs[i], m.Params.BeliefInertia, m.Params.MaxBeliefDelta)
	}

	// phase 4: sharing decisions from the committed beliefs
	for _, a := range m.Agents {
		if a.Immune {
			continue
		}
		p := SharingProbability(a, m.Params.Sharing, a.Belief, juiceFactor, intervention)
		a.Shared = m.rng.Float64() < p
	}

	// phase 5: transmission attribution for agents that crossed the belief
	// threshold this round
	transmissions := make([]TransmissionRecord, 0)
	for i := 0; i < n; i++ {
		if prevBeliever[i] || newBeliefs[i] <= dyn.ThetaB {
			continue
		}
		src, ok := m.attributeSource(i, prevShared, prevBelief)
		if !ok {
			continue
		}
		rec := TransmissionRecord{Source: src, Target: i}
		transmissions = append(transmissions, rec)
		if m.EventLogger != nil {
			m.EventLogger(&EventRecord{
				Type:  EventTransmission,
				Round: m.CurRound,
				Body:  rec,
			})
		}
	}

	m.TransmissionHistory = append(m.TransmissionHistory, transmissions)
	m.CurRound++

	return m.CollectShared()
}

// CollectBelievers reports which agents are believers under the belief
// threshold for the given round conditions.
func (m *FakeNewsModel) CollectBelievers(juiceFactor float64, intervention, extraRounds bool) []bool {
	dyn := GetDynamicParams(juiceFactor, intervention, extraRounds)
	out := make([]bool, len(m.Agents))
	for i, a := range m.Agents {
		out[i] = a.Belief > dyn.ThetaB
	}
	return out
}

// CollectShared returns the current shared flags.
func (m *FakeNewsModel) CollectShared() []bool {
	out := make([]bool, len(m.Agents))
	for i, a := range m.Agents {
		out[i] = a.Shared
	}
	return out
}

// CollectBeliefs returns the current belief strengths.
func (m *FakeNewsModel) CollectBeliefs() []float64 {
	out := make([]float64, len(m.Agents))
	for i, a := range m.Agents {
		out[i] = a.Belief
	}
	return out
}

// LastTransmissions returns the records of the most recent round.
func (m *FakeNewsModel) LastTransmissions() []TransmissionRecord {
	if len(m.TransmissionHistory) == 0 {
		return nil
	}
	return m.TransmissionHistory[len(m.TransmissionHistory)-1]
}

// AverageDegree exposes the contact graph topology for PBM calibration.
func (m *FakeNewsModel) AverageDegree() float64 {
	return utils.AverageDegree(m.Graph)
}
