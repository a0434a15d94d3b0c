package model

// SimulateScamRound advances the scam variant by one round and returns the
// committed scammed flags. Once scammed an agent stays scammed. Unlike the
// standard round there is no random draw here: an exposed agent falls for the
// scam exactly when its trait susceptibility exceeds 0.5, so two agents with
// identical traits and identical exposure always end up in the same state.
func (m *FakeNewsModel) SimulateScamRound() []bool {
	n := len(m.Agents)

	prevScammed := make([]bool, n)
	for i, a := range m.Agents {
		prevScammed[i] = a.Scammed
	}

	newScammed := make([]bool, n)
	for i, a := range m.Agents {
		if prevScammed[i] {
			newScammed[i] = true
			continue
		}

		exposures := 0
		for _, j := range m.neighbors[i] {
			if prevScammed[j] {
				exposures++
			}
		}
		if exposures == 0 {
			continue
		}

		newScammed[i] = ScamProbability(a) > 0.5
	}

	for i, a := range m.Agents {
		a.Scammed = newScammed[i]
	}

	m.CurRound++

	return newScammed
}

// CollectScammed returns the current scammed flags.
func (m *FakeNewsModel) CollectScammed() []bool {
	out := make([]bool, len(m.Agents))
	for i, a := range m.Agents {
		out[i] = a.Scammed
	}
	return out
}
