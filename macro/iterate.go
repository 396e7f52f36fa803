package macro

import (
	"math"
	"math/rand"
)

// step advances every model in the list by one time step. Order per model:
// before hooks, totals, transition application, after hooks, iteration
// counter. Models whose [From, To) window excludes iteration are skipped
// but remain visible to the hooks of their siblings.
func (s *Simulator) step(iteration int) {
	for idx, m := range s.models {
		if iteration < m.Parameters.From || iteration >= m.Parameters.To {
			continue
		}
		for _, h := range m.Parameters.BeforeFuncs {
			h.Apply(m, s.models)
		}
		totals := CalcTotals(&m.Group)
		s.applyTransitions(m, totals, s.noise.forModel(idx))
		for _, h := range m.Parameters.AfterFuncs {
			h.Apply(m, s.models)
		}
		m.Iteration = iteration + 1
	}
}

// applyTransitions applies every effective transition at every leaf of the
// model. Within a leaf all deltas are computed from the compartment values
// as they stood at the top of the step, then applied together: a
// compartment that is the "from" of one transition and the "to" of another
// contributes its pre-step value to both.
func (s *Simulator) applyTransitions(m *Model, totals Totals, rng *rand.Rand) {
	p := m.Parameters
	m.WalkLeaves(func(leaf *Group, effective Transitions) {
		names := sortedNames(effective)
		deltas := make([]float64, len(names))
		for i, name := range names {
			fn := resolveDeltaFunc(name, p.TransitionFuncs)
			delta := fn.Delta(name, effective[name], leaf.Compartments, totals, m)
			if p.Noise != 0 {
				delta *= uniformFactor(rng, p.Noise)
			}
			if p.Discrete {
				delta = math.Round(delta)
			}
			deltas[i] = delta
		}
		for i, name := range names {
			from, to, ok := splitTransition(name)
			if !ok {
				continue
			}
			// Missing compartments read as zero above and are
			// created on application.
			leaf.Compartments[from] -= deltas[i]
			leaf.Compartments[to] += deltas[i]
		}
	})
}
