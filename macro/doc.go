// Package macro provides a discrete-time compartmental model engine for
// infectious disease epidemics.
//
// Users describe a population as a tree of groups. A leaf group holds named
// compartments (e.g. S, I, R) and a branch group holds child groups
// (e.g. geography split into age bands). Transitions between compartments
// are named "<from>_<to>" and carry a per-iteration rate; a group inherits
// its ancestors' transitions and may override them per name.
//
// # Reading Guide
//
// Start with these three files to understand the engine:
//   - group.go: the Group/Model tree, traversal and effective transitions
//   - iterate.go: one time step — hooks, totals, staged transition deltas
//   - simulate.go: the Simulator driver and snapshot recording
//
// # Compartment name prefixes
//
// The first letter of a compartment name is meaningful to the built-in
// delta functions and the totals aggregator:
//
//	S - Susceptible        E - Exposed
//	I - Infectious         A - Asymptomatic (weighted by AsymptomaticInfectiousness)
//	T - On treatment       (weighted by TreatmentInfectiousness)
//	D - Dead               (excluded from the living total N)
//	B - Birth counter      (excluded from the living total N)
//	R - Recovered          M - Maternal immunity
//	V - Vaccinated
//
// The name "N" is strictly reserved for the computed living population total
// and is rejected at validation time.
//
// # Extension points
//
// Behaviour is supplied through two small interfaces rather than values
// embedded in configuration, so model files stay serializable:
//   - DeltaFunc: computes how much quantity one transition moves in one step
//   - Hook: runs before or after each iteration and may mutate models or
//     move population between the models of a ModelList
//
// Built-ins are registered by name (see DeltaFuncByName, HookByName) so a
// config loader can reference them from plain text.
package macro
