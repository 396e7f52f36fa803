package macro

// Hook is a callback run before or after each iteration. It may mutate its
// model or exchange population with the other models in the list. Hooks run
// synchronously on the model that owns them, in registered order.
type Hook interface {
	Apply(m *Model, list ModelList)
}

// ReduceInfectivity multiplies every transition rate flowing from an
// S-prefixed compartment into an E- or I-prefixed one by the model's
// ReduceInfectivity parameter. Registered as a recurring hook the effect
// compounds each iteration, approximating the fact that in heterogeneous
// populations the most susceptible are infected first.
type ReduceInfectivity struct{}

func (ReduceInfectivity) Apply(m *Model, _ ModelList) {
	reduction := 1.0
	if m.Parameters != nil {
		reduction = m.Parameters.ReduceInfectivity
	}
	m.Walk(func(grp *Group) {
		for name := range grp.Transitions {
			from, to, ok := splitTransition(name)
			if !ok {
				continue
			}
			if classify(from) == classSusceptible {
				switch classify(to) {
				case classExposed, classInfectious:
					grp.Transitions[name] *= reduction
				}
			}
		}
	})
}

// hookNames maps serializable names to built-in hooks.
var hookNames = map[string]Hook{
	"reduce_infectivity": ReduceInfectivity{},
}

// HookByName returns the built-in hook registered under name, currently
// only "reduce_infectivity".
func HookByName(name string) (Hook, bool) {
	h, ok := hookNames[name]
	return h, ok
}
