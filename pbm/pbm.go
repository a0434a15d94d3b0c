// Package pbm implements the population-based compartment model that runs in
// lockstep with the agent-based engine: three aggregate compartments
// (susceptible, believers, immune) advanced by a bounded SIR-like difference
// equation.
package pbm

import (
	"fmt"
	"math"
)

// MaxNewBelieverRatio caps the fraction of susceptibles that can convert in a
// single round.
const MaxNewBelieverRatio = 0.3

// CompartmentHistory tracks the integer-truncated compartment counts per
// round, index 0 being the initial state.
type CompartmentHistory struct {
	Susceptible []int `json:"susceptible" msgpack:"susceptible"`
	Believers   []int `json:"believers" msgpack:"believers"`
	Immune      []int `json:"immune" msgpack:"immune"`
}

// PopulationSimulator advances the aggregate compartments. Internally the
// compartments stay float so no mass is lost to rounding; the reported
// history is truncated to ints like the displayed counts.
type PopulationSimulator struct {
	TotalPopulation int
	Rates           SimulationRates

	susceptible float64
	believers   float64
	immune      float64

	history CompartmentHistory
}

// NewPopulationSimulator creates a simulator over a fixed total population
// with the given number of initial believers. The population must be
// positive; initial believers are clamped into [0, population].
func NewPopulationSimulator(initialPopulation, initialBelievers int) (*PopulationSimulator, error) {
	if initialPopulation <= 0 {
		return nil, fmt.Errorf("invalid population size %d: must be positive", initialPopulation)
	}
	if initialBelievers < 0 {
		initialBelievers = 0
	}
	if initialBelievers > initialPopulation {
		initialBelievers = initialPopulation
	}

	s := &PopulationSimulator{
		TotalPopulation: initialPopulation,
		Rates:           DefaultSimulationRates(),
		susceptible:     float64(initialPopulation - initialBelievers),
		believers:       float64(initialBelievers),
		immune:          0,
	}
	s.appendHistory()

	return s, nil
}

// AdjustRates retunes the rates for the given scenario conditions; see
// SimulationRates.Adjust.
func (s *PopulationSimulator) AdjustRates(topicWeight, juiceFactor float64, intervention bool) {
	s.Rates.Adjust(topicWeight, juiceFactor, intervention)
}

// SimulateStep runs one round of the difference equation and returns the
// truncated (susceptible, believers, immune) counts. New believers only move
// mass from S to I and recoveries only from I to R, so S+I+R stays equal to
// the total population up to floating error.
func (s *PopulationSimulator) SimulateStep() (int, int, int) {
	N := float64(s.TotalPopulation)
	S, I, R := s.susceptible, s.believers, s.immune

	exposureRate := 0.0
	if N > 0 {
		exposureRate = s.Rates.ContactRate * s.Rates.BeliefRate * S * I / N
	}
	newBelievers := math.Min(exposureRate, S*MaxNewBelieverRatio)
	recoveries := s.Rates.RecoveryRate * I

	s.susceptible = math.Max(0, S-newBelievers)
	s.believers = math.Max(0, I+newBelievers-recoveries)
	s.immune = R + recoveries

	s.appendHistory()

	return int(s.susceptible), int(s.believers), int(s.immune)
}

// Compartments returns the current float compartment values.
func (s *PopulationSimulator) Compartments() (susceptible, believers, immune float64) {
	return s.susceptible, s.believers, s.immune
}

// History returns the recorded per-round counts.
func (s *PopulationSimulator) History() *CompartmentHistory {
	return &s.history
}

func (s *PopulationSimulator) appendHistory() {
	s.history.Susceptible = append(s.history.Susceptible, int(s.susceptible))
	s.history.Believers = append(s.history.Believers, int(s.believers))
	s.history.Immune = append(s.history.Immune, int(s.immune))
}
