package simulation

import (
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/shahtr4sh/FYPFN/model"
	"github.com/shahtr4sh/FYPFN/pbm"
)

// RunResults is everything a finished run hands to analysis: the scenario
// that produced it, the two parallel believer time series and the ABM
// transmission log.
type RunResults struct {
	Metadata           *ScenarioMetadata            `msgpack:"metadata"`
	Rounds             int                          `msgpack:"rounds"`
	InterventionRounds []int                        `msgpack:"intervention_rounds"`
	ABMBelieverCounts  []int                        `msgpack:"abm_believer_counts"`
	PBM                pbm.CompartmentHistory       `msgpack:"pbm"`
	Transmissions      [][]model.TransmissionRecord `msgpack:"transmissions"`
}

// ResultSerializer persists run results under baseDir/runName.
type ResultSerializer struct {
	baseDir string
	runName string
}

func NewResultSerializer(baseDir, runName string) *ResultSerializer {
	return &ResultSerializer{baseDir: baseDir, runName: runName}
}

func (s *ResultSerializer) resultsPath() string {
	return filepath.Join(s.baseDir, s.runName, "results.msgpack")
}

// SaveResults writes the run results as msgpack.
func (s *ResultSerializer) SaveResults(results *RunResults) error {
	if err := os.MkdirAll(filepath.Join(s.baseDir, s.runName), 0755); err != nil {
		return err
	}

	data, err := msgpack.Marshal(results)
	if err != nil {
		return err
	}

	return os.WriteFile(s.resultsPath(), data, 0644)
}

// LoadResults reads previously saved run results.
func (s *ResultSerializer) LoadResults() (*RunResults, error) {
	data, err := os.ReadFile(s.resultsPath())
	if err != nil {
		return nil, err
	}

	var results RunResults
	if err := msgpack.Unmarshal(data, &results); err != nil {
		return nil, err
	}

	return &results, nil
}

// Exists reports whether results were already saved for this run name.
func (s *ResultSerializer) Exists() bool {
	_, err := os.Stat(s.resultsPath())
	return err == nil
}
