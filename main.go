package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/shahtr4sh/FYPFN/simulation"
	"github.com/shahtr4sh/FYPFN/topics"
	"github.com/shahtr4sh/FYPFN/viz"
)

// Usage: FYPFN <baseDir> <scenario.json> [context text]
//
// When a context text is given, its juiciness and topic are inferred and
// override the scenario file's values, mirroring the interactive workflow.
func main() {
	args := os.Args
	if len(args) < 3 {
		log.Fatalf("usage: %s <baseDir> <scenario.json> [context text]", filepath.Base(args[0]))
	}
	basePath := args[1]
	metadataPath := args[2]

	metadata, err := simulation.LoadScenarioMetadata(metadataPath)
	if err != nil {
		log.Fatalf("Failed to load scenario file: %v", err)
	}

	if len(args) > 3 {
		context := args[3]
		score := topics.AnalyzeJuiciness(context)
		topic, weight, category := topics.InferTopic(context)
		metadata.Juiciness = float64(score) / 100.0
		metadata.TopicWeight = weight
		metadata.TopicCategory = category
		log.Printf("Inferred topic %q (category %s, weight %.2f), juiciness %d/100",
			topic, category, weight, score)
	}

	scenario := simulation.NewScenario(basePath, metadata)
	if err := scenario.Init(); err != nil {
		log.Fatalf("Failed to initialize scenario: %v", err)
	}
	defer scenario.Close()

	if err := scenario.RunToEnd(); err != nil {
		log.Fatalf("Simulation failed: %v", err)
	}

	results := scenario.BuildResults()
	comparison := &viz.ComparisonChart{
		Title:              metadata.UniqueName,
		ABMBelieverCounts:  results.ABMBelieverCounts,
		PBMBelieverCounts:  results.PBM.Believers,
		InterventionRounds: results.InterventionRounds,
	}
	chartFile := filepath.Join(basePath, metadata.UniqueName, "comparison.png")
	if err := comparison.Render(chartFile); err != nil {
		log.Fatalf("Failed to render comparison chart: %v", err)
	}

	log.Printf("Run %q finished after %d rounds; results in %s",
		metadata.UniqueName, results.Rounds, filepath.Join(basePath, metadata.UniqueName))
}
