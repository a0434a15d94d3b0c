package simulation

import (
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"

	"github.com/shahtr4sh/FYPFN/model"
	"github.com/shahtr4sh/FYPFN/pbm"
	"github.com/shahtr4sh/FYPFN/topics"
	"github.com/shahtr4sh/FYPFN/utils"
)

// Scenario drives the ABM and PBM engines in lockstep for a configured
// number of rounds, flips the intervention flag at the configured round and
// collects the parallel believer histories the comparison consumes.
type Scenario struct {
	dir      string
	metadata *ScenarioMetadata

	abm      *model.FakeNewsModel
	pbm      *pbm.PopulationSimulator
	db       *EventDB
	eventLog *model.EventLogger

	round        int
	maxRounds    int
	intervention bool
	extraRounds  bool
	isScam       bool
	primaryTrait string

	// InterventionRounds records every round at which the flag flipped
	// (at most one per run; kept as a list for the plot markers).
	InterventionRounds []int

	// ABMBelieverCounts and the PBM history are the two parallel believer
	// time series, index 0 being the initial state.
	ABMBelieverCounts []int

	// RoundHistory holds the per-round shared (or scammed) vectors.
	RoundHistory [][]bool
}

// NewScenario creates a scenario rooted at dir. Call Init before stepping.
func NewScenario(dir string, metadata *ScenarioMetadata) *Scenario {
	return &Scenario{
		dir:      dir,
		metadata: metadata,
	}
}

const dbEventCacheSize = 1000

// Init constructs both engines from the scenario metadata.
func (s *Scenario) Init() error {
	md := s.metadata

	var traits []model.TraitRow
	if md.TraitCSVPath != "" {
		f, err := os.Open(md.TraitCSVPath)
		if err != nil {
			return fmt.Errorf("failed to open trait table: %w", err)
		}
		traits, err = model.ReadTraitsCSV(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("failed to parse trait table: %w", err)
		}
	}

	s.isScam = md.TopicCategory == topics.CategoryFinancialScams
	s.primaryTrait = topics.PrimaryTrait(md.TopicCategory)

	abm, err := model.NewFakeNewsModel(
		md.NumAgents,
		md.EdgeProbability,
		md.Seed,
		traits,
		md.ModelParams(),
		s.logEvent,
	)
	if err != nil {
		return err
	}
	abm.SeedInitialState(md.InitialBelievers, s.isScam)
	s.abm = abm

	// PBM initial believers: explicit override wins, else the trait
	// heuristic estimate
	pbmInitial := EstimateInitialBelievers(abm.Agents, md.TopicWeight)
	if md.PBMInitialBelievers != nil {
		pbmInitial = *md.PBMInitialBelievers
	}

	pop, err := pbm.NewPopulationSimulator(md.NumAgents, pbmInitial)
	if err != nil {
		return err
	}

	// pin user-supplied rates before the first adjustment so they survive it
	if md.PBMRates.Contact != nil {
		pop.Rates.OverrideContactRate(*md.PBMRates.Contact)
	}
	if md.PBMRates.Belief != nil {
		pop.Rates.OverrideBeliefRate(*md.PBMRates.Belief)
	}
	if md.PBMRates.Recovery != nil {
		pop.Rates.OverrideRecoveryRate(*md.PBMRates.Recovery)
	}

	pop.AdjustRates(md.TopicWeight, md.Juiciness, false)

	// topology calibration: denser ABM contact graphs push the PBM contact
	// rate up
	density := utils.Density(abm.AverageDegree(), md.NumAgents)
	pop.Rates.Calibrate(density, md.CalibrationMultiplier)

	s.pbm = pop

	s.round = 0
	s.maxRounds = md.MaxRounds
	s.intervention = false
	s.extraRounds = false
	s.InterventionRounds = nil
	s.RoundHistory = nil
	s.ABMBelieverCounts = []int{s.countABMBelievers()}

	if s.dir != "" {
		if err := os.MkdirAll(filepath.Join(s.dir, md.UniqueName), 0755); err != nil {
			return fmt.Errorf("failed to create scenario dump folder: %w", err)
		}
		db, err := OpenEventDB(filepath.Join(s.dir, md.UniqueName, "events.db"), dbEventCacheSize)
		if err != nil {
			return fmt.Errorf("failed to open event db: %w", err)
		}
		s.db = db

		// raw append-only stream next to the queryable db
		logger, err := model.NewEventLogger(filepath.Join(s.dir, md.UniqueName, "events.msgpack"), dbEventCacheSize)
		if err != nil {
			return fmt.Errorf("failed to open event log: %w", err)
		}
		s.eventLog = logger
	}

	return nil
}

// Round returns the number of completed rounds.
func (s *Scenario) Round() int { return s.round }

// Intervention reports whether the intervention flag is active.
func (s *Scenario) Intervention() bool { return s.intervention }

// IsFinished reports whether the configured round budget is spent.
func (s *Scenario) IsFinished() bool { return s.round >= s.maxRounds }

// Step runs one lockstep round of both engines. The intervention flag flips
// once, before the configured round executes, and never resets.
func (s *Scenario) Step() error {
	if s.IsFinished() {
		return nil
	}

	md := s.metadata

	if s.round == md.InterventionRound && !s.intervention {
		s.intervention = true
		s.InterventionRounds = append(s.InterventionRounds, s.round)
	}

	// ABM round
	var result []bool
	if s.isScam {
		result = s.abm.SimulateScamRound()
	} else {
		result = s.abm.SimulateRound(
			md.Juiciness,
			md.TopicWeight,
			s.primaryTrait,
			s.intervention,
			s.extraRounds,
		)
	}
	s.RoundHistory = append(s.RoundHistory, result)
	s.ABMBelieverCounts = append(s.ABMBelieverCounts, s.countABMBelievers())

	// PBM round: re-adjust rates while the intervention is active, then step
	if s.intervention {
		s.pbm.AdjustRates(md.TopicWeight, md.Juiciness, true)
	}
	_, pbmBelievers, _ := s.pbm.SimulateStep()

	// stats carry the 0-based index of the round just executed, matching
	// the transmission events emitted inside it
	s.logEvent(&model.EventRecord{
		Type:  model.EventRoundStats,
		Round: s.round,
		Body: model.RoundStatsBody{
			ABMBelievers: s.ABMBelieverCounts[len(s.ABMBelieverCounts)-1],
			PBMBelievers: float64(pbmBelievers),
			Intervention: s.intervention,
		},
	})

	s.round++

	return nil
}

// RunToEnd steps the scenario until the round budget is spent, then flushes
// and dumps results.
func (s *Scenario) RunToEnd() error {
	bar := progressbar.Default(int64(s.maxRounds))
	bar.Set(s.round)

	for !s.IsFinished() {
		if err := s.Step(); err != nil {
			return err
		}
		bar.Set(s.round)
	}

	return s.Dump()
}

// Extend grants k more rounds and switches the ABM into its extra-rounds
// decay-only regime. The run continues from the current state.
func (s *Scenario) Extend(k int) {
	s.maxRounds += k
	s.extraRounds = true
}

// PBMHistory exposes the population model's per-round counts.
func (s *Scenario) PBMHistory() *pbm.CompartmentHistory {
	return s.pbm.History()
}

// TransmissionHistory exposes the ABM transmission log.
func (s *Scenario) TransmissionHistory() [][]model.TransmissionRecord {
	return s.abm.TransmissionHistory
}

// Dump flushes the event db and serializes run results and the contact graph.
func (s *Scenario) Dump() error {
	if s.dir == "" {
		return nil
	}

	if s.db != nil {
		if err := s.db.Flush(); err != nil {
			log.Printf("failed to flush event db: %v", err)
		}
	}

	serializer := NewResultSerializer(s.dir, s.metadata.UniqueName)
	if err := serializer.SaveResults(s.BuildResults()); err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}

	graphFile := filepath.Join(s.dir, s.metadata.UniqueName, "contact-graph.msgpack")
	if err := utils.SaveGraphToFile(s.abm.Graph, graphFile); err != nil {
		return fmt.Errorf("failed to save contact graph: %w", err)
	}

	return nil
}

// Close stops the event log and releases the event db.
func (s *Scenario) Close() error {
	if s.eventLog != nil {
		s.eventLog.Stop()
	}
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// BuildResults assembles the serializable run results.
func (s *Scenario) BuildResults() *RunResults {
	return &RunResults{
		Metadata:           s.metadata,
		Rounds:             s.round,
		InterventionRounds: s.InterventionRounds,
		ABMBelieverCounts:  s.ABMBelieverCounts,
		PBM:                *s.pbm.History(),
		Transmissions:      s.abm.TransmissionHistory,
	}
}

// countABMBelievers counts scam victims in the scam variant, threshold
// believers otherwise.
func (s *Scenario) countABMBelievers() int {
	var flags []bool
	if s.isScam {
		flags = s.abm.CollectScammed()
	} else {
		flags = s.abm.CollectBelievers(s.metadata.Juiciness, s.intervention, s.extraRounds)
	}
	count := 0
	for _, f := range flags {
		if f {
			count++
		}
	}
	return count
}

// logEvent persists a simulation event to both sinks.
func (s *Scenario) logEvent(event *model.EventRecord) {
	if s.db != nil {
		if err := s.db.StoreEvent(event); err != nil {
			log.Printf("failed to store event: %v", err)
		}
	}
	if s.eventLog != nil {
		s.eventLog.LogEvent(event)
	}
}

// EstimateInitialBelievers estimates how many agents start out believing,
// from a compact mirror of the ABM trait influence. Used to seed the PBM
// when the scenario carries no explicit override.
func EstimateInitialBelievers(agents []*model.Agent, topicWeight float64) int {
	sum := 0.0
	for _, a := range agents {
		p := 0.3 + 0.2*topicWeight +
			0.15*((a.ConfirmationBias+a.EmotionalSusceptibility+a.TrustLevel)/3.0) -
			0.2*a.CriticalThinking
		sum += math.Max(0.0, math.Min(1.0, p))
	}
	return int(math.Round(sum))
}
