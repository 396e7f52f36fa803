package macro

import "strings"

// DeltaFunc computes the quantity one transition moves in one iteration.
// The caller subtracts the result from the "from" compartment and adds it
// to the "to" compartment. Implementations must be stateless: the engine
// shares instances across groups and goroutine-independent batch runs.
type DeltaFunc interface {
	// Delta receives the transition name, its effective rate, the leaf
	// group's compartments, the model's precomputed totals and the model
	// itself. Compartment reads treat missing names as zero.
	Delta(transition string, rate float64, compartments Compartments, totals Totals, model *Model) float64
}

// splitTransition splits "<from>_<to>" into its compartment names. ok is
// false unless the name contains exactly one underscore with text on both
// sides.
func splitTransition(name string) (from, to string, ok bool) {
	from, to, ok = strings.Cut(name, "_")
	if !ok || from == "" || to == "" || strings.Contains(to, "_") {
		return "", "", false
	}
	return from, to, true
}

// InfectionForce is the simple SIR-style infection equation:
//
//	delta = from * rate * totals[to] / N
//
// where totals[to] is the precomputed sum of the destination (infectious or
// exposed) compartment across the whole model. A zero living population
// yields a zero delta.
type InfectionForce struct{}

func (InfectionForce) Delta(transition string, rate float64, c Compartments, totals Totals, _ *Model) float64 {
	from, to, ok := splitTransition(transition)
	if !ok {
		return 0
	}
	n := totals[TotalN]
	if n == 0 {
		return 0
	}
	return rate * c[from] * totals[to] / n
}

// WeightedInfectionForce weighs every infectious compartment in the model:
//
//	delta = from * rate * SumInfectiousness(model) / N
//
// The infectiousness sum is re-derived on every application; caching it
// mid-iteration would go stale as hooks and sibling models mutate state.
type WeightedInfectionForce struct{}

func (WeightedInfectionForce) Delta(transition string, rate float64, c Compartments, totals Totals, m *Model) float64 {
	from, _, ok := splitTransition(transition)
	if !ok {
		return 0
	}
	n := totals[TotalN]
	if n == 0 {
		return 0
	}
	return rate * c[from] * SumInfectiousness(m) / n
}

// ProportionalFlow moves a fixed proportion of the source compartment and
// is the fallback for any transition without a more specific function.
type ProportionalFlow struct{}

func (ProportionalFlow) Delta(transition string, rate float64, c Compartments, _ Totals, _ *Model) float64 {
	from, _, ok := splitTransition(transition)
	if !ok {
		return 0
	}
	return rate * c[from]
}

// BirthInflow scales off the destination compartment, which is the
// population base giving birth; the "B" source is a nominal counter.
type BirthInflow struct{}

func (BirthInflow) Delta(transition string, rate float64, c Compartments, _ Totals, _ *Model) float64 {
	_, to, ok := splitTransition(transition)
	if !ok {
		return 0
	}
	return rate * c[to]
}

// TransitionFuncDefault is the fallback key in a TransitionFuncs table.
const TransitionFuncDefault = "default"

// defaultTransitionFuncs is the built-in selection table. Dispatch is by
// exact transition name only; there is no prefix matching beyond this
// static table and the default fallback.
func defaultTransitionFuncs() map[string]DeltaFunc {
	return map[string]DeltaFunc{
		"S_I":                 InfectionForce{},
		"S_E":                 InfectionForce{},
		"S_I1":                WeightedInfectionForce{},
		"S_E1":                WeightedInfectionForce{},
		"B_S":                 BirthInflow{},
		TransitionFuncDefault: ProportionalFlow{},
	}
}

// resolveDeltaFunc selects the function for a transition: exact name match
// first, then the "default" entry. funcs must be a normalized table, so the
// fallback is always present.
func resolveDeltaFunc(transition string, funcs map[string]DeltaFunc) DeltaFunc {
	if fn, ok := funcs[transition]; ok && fn != nil {
		return fn
	}
	return funcs[TransitionFuncDefault]
}

// deltaFuncNames maps serializable names to built-in delta functions, for
// config loaders that reference functions from plain text.
var deltaFuncNames = map[string]DeltaFunc{
	"infection_force":          InfectionForce{},
	"weighted_infection_force": WeightedInfectionForce{},
	"proportional_flow":        ProportionalFlow{},
	"birth_inflow":             BirthInflow{},
}

// DeltaFuncByName returns the built-in delta function registered under
// name: "infection_force", "weighted_infection_force", "proportional_flow"
// or "birth_inflow".
func DeltaFuncByName(name string) (DeltaFunc, bool) {
	fn, ok := deltaFuncNames[name]
	return fn, ok
}
