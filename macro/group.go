package macro

import "sort"

// Compartments maps compartment name to the quantity of individuals in it.
type Compartments map[string]float64

// Transitions maps a transition name of the form "<from>_<to>" to a
// per-iteration rate or proportion.
type Transitions map[string]float64

// Group is a node in a model tree. Exactly one of Compartments or Groups
// must be set: a leaf group holds compartments, a branch group holds child
// groups. Validate enforces this before a simulation starts.
type Group struct {
	Name         string
	Compartments Compartments
	Groups       []*Group
	Transitions  Transitions
}

// Model is the root group of a tree together with its simulation
// parameters. Ident tags the model within a batch run and Iteration counts
// completed time steps.
type Model struct {
	Group
	Parameters *Parameters
	Ident      int
	Iteration  int
}

// ModelList is an ordered set of models advanced in lockstep so that hooks
// can exchange population between them on each iteration.
type ModelList []*Model

// Snapshot is one recorded state of a ModelList, tagged with the iteration
// it was taken at. Snapshots are deep copies and never alias live state.
type Snapshot struct {
	Iteration int
	Models    ModelList
}

// ModelListSeries is the time series of snapshots produced by a simulation.
type ModelListSeries []Snapshot

// IsLeaf reports whether g holds compartments rather than child groups.
func (g *Group) IsLeaf() bool {
	return g.Compartments != nil
}

// Walk visits g and every descendant group depth-first in declared order.
func (g *Group) Walk(fn func(*Group)) {
	fn(g)
	for _, child := range g.Groups {
		child.Walk(fn)
	}
}

// WalkLeaves visits every leaf group depth-first, passing the leaf's
// effective transitions: ancestor entries overlaid root-to-leaf with the
// leaf's own entries taking precedence per transition name.
func (g *Group) WalkLeaves(fn func(leaf *Group, effective Transitions)) {
	g.walkLeaves(nil, fn)
}

func (g *Group) walkLeaves(inherited Transitions, fn func(*Group, Transitions)) {
	merged := overlayTransitions(inherited, g.Transitions)
	if g.IsLeaf() {
		fn(g, merged)
		return
	}
	for _, child := range g.Groups {
		child.walkLeaves(merged, fn)
	}
}

// overlayTransitions copies parent and lays own over it. Override is per
// transition name, wholesale.
func overlayTransitions(parent, own Transitions) Transitions {
	merged := make(Transitions, len(parent)+len(own))
	for name, rate := range parent {
		merged[name] = rate
	}
	for name, rate := range own {
		merged[name] = rate
	}
	return merged
}

// sortedNames returns map keys in ascending order. Iteration and totals use
// it so that floating-point accumulation order, and therefore output, is
// identical run to run.
func sortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a deep copy of the group tree.
func (g *Group) Clone() *Group {
	c := &Group{Name: g.Name}
	if g.Compartments != nil {
		c.Compartments = make(Compartments, len(g.Compartments))
		for name, v := range g.Compartments {
			c.Compartments[name] = v
		}
	}
	if g.Transitions != nil {
		c.Transitions = make(Transitions, len(g.Transitions))
		for name, rate := range g.Transitions {
			c.Transitions[name] = rate
		}
	}
	for _, child := range g.Groups {
		c.Groups = append(c.Groups, child.Clone())
	}
	return c
}

// Clone returns a deep copy of the model, including its parameters.
func (m *Model) Clone() *Model {
	return &Model{
		Group:      *m.Group.Clone(),
		Parameters: m.Parameters.Clone(),
		Ident:      m.Ident,
		Iteration:  m.Iteration,
	}
}

// Clone returns a deep copy of the list.
func (ml ModelList) Clone() ModelList {
	c := make(ModelList, len(ml))
	for i, m := range ml {
		c[i] = m.Clone()
	}
	return c
}

// compartmentClass is the semantic category encoded in a compartment name's
// first letter. Delta and totals logic consult the class rather than
// sniffing string prefixes inline.
type compartmentClass int

const (
	classOther compartmentClass = iota
	classSusceptible
	classExposed
	classInfectious
	classAsymptomatic
	classTreatment
	classDead
	classBirth
	classRecovered
	classMaternal
	classVaccinated
)

func classify(name string) compartmentClass {
	if name == "" {
		return classOther
	}
	switch name[0] {
	case 'S':
		return classSusceptible
	case 'E':
		return classExposed
	case 'I':
		return classInfectious
	case 'A':
		return classAsymptomatic
	case 'T':
		return classTreatment
	case 'D':
		return classDead
	case 'B':
		return classBirth
	case 'R':
		return classRecovered
	case 'M':
		return classMaternal
	case 'V':
		return classVaccinated
	}
	return classOther
}

// countedInN reports whether a compartment contributes to the living
// population total N. Dead and birth-counter compartments do not.
func countedInN(name string) bool {
	switch classify(name) {
	case classDead, classBirth:
		return false
	}
	return true
}
