// Package viz renders ABM/PBM comparison charts for finished runs.
package viz

import (
	"fmt"
	"os"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ComparisonChart plots the two believer trajectories of a lockstep run on a
// shared round axis, with a vertical marker at every intervention round.
type ComparisonChart struct {
	Title              string
	ABMBelieverCounts  []int
	PBMBelieverCounts  []int
	InterventionRounds []int
}

// Render writes the comparison chart as a PNG.
func (c *ComparisonChart) Render(filename string) error {
	if len(c.ABMBelieverCounts) == 0 || len(c.PBMBelieverCounts) == 0 {
		return fmt.Errorf("nothing to plot: empty believer history")
	}

	abmX, abmY := toXY(c.ABMBelieverCounts)
	pbmX, pbmY := toXY(c.PBMBelieverCounts)

	yMax := maxOf(abmY)
	if m := maxOf(pbmY); m > yMax {
		yMax = m
	}
	if yMax == 0 {
		yMax = 1
	}

	series := []chart.Series{
		chart.ContinuousSeries{
			Name:    "ABM believers",
			XValues: abmX,
			YValues: abmY,
			Style:   chart.Style{StrokeColor: chart.ColorRed, StrokeWidth: 2.5},
		},
		chart.ContinuousSeries{
			Name:    "PBM believers",
			XValues: pbmX,
			YValues: pbmY,
			Style: chart.Style{
				StrokeColor:     chart.ColorBlue,
				StrokeWidth:     2.5,
				StrokeDashArray: []float64{5.0, 3.0},
			},
		},
	}

	// vertical intervention markers
	for i, r := range c.InterventionRounds {
		name := ""
		if i == 0 {
			name = "Intervention"
		}
		series = append(series, chart.ContinuousSeries{
			Name:    name,
			XValues: []float64{float64(r), float64(r)},
			YValues: []float64{0, yMax},
			Style: chart.Style{
				StrokeColor:     drawing.Color{R: 90, G: 90, B: 90, A: 255},
				StrokeWidth:     1.5,
				StrokeDashArray: []float64{2.0, 2.0},
			},
		})
	}

	title := c.Title
	if title == "" {
		title = "ABM vs PBM believer trajectories"
	}

	graph := chart.Chart{
		Title:  title,
		Width:  900,
		Height: 500,
		XAxis: chart.XAxis{
			Name:  "Round",
			Style: chart.Style{FontSize: 10.0},
		},
		YAxis: chart.YAxis{
			Name:  "Believers",
			Style: chart.Style{FontSize: 10.0},
			Range: &chart.ContinuousRange{Min: 0, Max: yMax * 1.05},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	return graph.Render(chart.PNG, f)
}

func toXY(counts []int) ([]float64, []float64) {
	xs := make([]float64, len(counts))
	ys := make([]float64, len(counts))
	for i, v := range counts {
		xs[i] = float64(i)
		ys[i] = float64(v)
	}
	return xs, ys
}

func maxOf(vals []float64) float64 {
	m := 0.0
	for _, v := range vals {
		if v > m {
			m = v
		}
	}
	return m
}
