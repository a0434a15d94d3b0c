package model

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	exprand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// TraitRow is one agent's trait profile. All six values are expected in [0,1].
type TraitRow struct {
	ConfirmationBias        float64
	EmotionalSusceptibility float64
	TrustLevel              float64
	CriticalThinking        float64
	FactCheckSignal         float64
	RiskPerception          float64
}

// NeutralTraitRow is the default used for traits absent from supplied data.
func NeutralTraitRow() TraitRow {
	return TraitRow{0.5, 0.5, 0.5, 0.5, 0.5, 0.5}
}

// GenerateRandomTraits synthesizes n trait rows from Beta distributions:
//
//	confirmation_bias, emotional_susceptibility, risk_perception ~ Beta(5,5)
//	trust_level, fact_check_signal                               ~ Beta(4,6)  (slightly skeptical)
//	critical_thinking                                            ~ Beta(6,4)  (slightly higher)
//
// The same seed always yields the same table.
func GenerateRandomTraits(n int, seed uint64) []TraitRow {
	src := exprand.NewSource(seed)

	bell := distuv.Beta{Alpha: 5, Beta: 5, Src: src}
	low := distuv.Beta{Alpha: 4, Beta: 6, Src: src}
	high := distuv.Beta{Alpha: 6, Beta: 4, Src: src}

	rows := make([]TraitRow, n)
	for i := range rows {
		rows[i] = TraitRow{
			ConfirmationBias:        bell.Rand(),
			EmotionalSusceptibility: bell.Rand(),
			TrustLevel:              low.Rand(),
			CriticalThinking:        high.Rand(),
			FactCheckSignal:         low.Rand(),
			RiskPerception:          bell.Rand(),
		}
	}
	return rows
}

// trait column names accepted in CSV headers
const (
	colConfirmationBias        = "confirmation_bias"
	colEmotionalSusceptibility = "emotional_susceptibility"
	colTrustLevel              = "trust_level"
	colCriticalThinking        = "critical_thinking"
	colFactCheckSignal         = "fact_check_signal"
	colRiskPerception          = "risk_perception"
)

// ReadTraitsCSV parses a trait table from CSV. The first row is a header of
// column names; unknown columns are ignored and missing columns default every
// agent to the neutral 0.5. A malformed numeric cell is an error.
func ReadTraitsCSV(r io.Reader) ([]TraitRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read trait header: %w", err)
	}

	colIndex := make(map[string]int)
	for i, name := range header {
		colIndex[strings.TrimSpace(strings.ToLower(name))] = i
	}

	var rows []TraitRow
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read trait row %d: %w", line, err)
		}
		line++

		row := NeutralTraitRow()
		get := func(col string, dst *float64) error {
			idx, ok := colIndex[col]
			if !ok || idx >= len(record) {
				return nil // missing column: keep the neutral default
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(record[idx]), 64)
			if err != nil {
				return fmt.Errorf("row %d column %s: %w", line, col, err)
			}
			*dst = v
			return nil
		}

		for _, c := range []struct {
			name string
			dst  *float64
		}{
			{colConfirmationBias, &row.ConfirmationBias},
			{colEmotionalSusceptibility, &row.EmotionalSusceptibility},
			{colTrustLevel, &row.TrustLevel},
			{colCriticalThinking, &row.CriticalThinking},
			{colFactCheckSignal, &row.FactCheckSignal},
			{colRiskPerception, &row.RiskPerception},
		} {
			if err := get(c.name, c.dst); err != nil {
				return nil, err
			}
		}

		rows = append(rows, row)
	}

	return rows, nil
}
