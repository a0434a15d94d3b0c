package model

// attributeSource picks which sharing neighbor gets credited for turning
// agent i into a believer. Candidates are the neighbors that were sharing in
// the previous round, walked in ascending ID order so every policy is
// reproducible. Returns false when nobody was sharing nearby.
func (m *FakeNewsModel) attributeSource(i int, prevShared []bool, prevBelief []float64) (int, bool) {
	var candidates []int64
	for _, j := range m.neighbors[i] {
		if prevShared[j] {
			candidates = append(candidates, j)
		}
	}
	if len(candidates) == 0 {
		return 0, false
	}

	switch m.Params.Attribution {
	case AttributionRandom:
		return int(candidates[m.attrRng.Intn(len(candidates))]), true

	case AttributionFirst:
		return int(candidates[0]), true

	default: // weighted by previous-round belief
		weights := make([]float64, len(candidates))
		total := 0.0
		for k, j := range candidates {
			w := prevBelief[j]
			if w < 0.01 {
				w = 0.01 // floor keeps zero-belief sharers selectable
			}
			weights[k] = w
			total += w
		}

		r := m.attrRng.Float64() * total
		for k, w := range weights {
			r -= w
			if r < 0 {
				return int(candidates[k]), true
			}
		}
		return int(candidates[len(candidates)-1]), true
	}
}
