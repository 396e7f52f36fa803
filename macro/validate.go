package macro

import (
	"errors"
	"fmt"
	"strings"
)

// Validation errors. Structural and configuration problems are fatal and
// reported before any iteration runs; numeric boundary conditions during a
// run (empty compartments, zero population) degrade silently instead.
var (
	// ErrBothCompartmentsAndGroups indicates a group that is simultaneously
	// a leaf and a branch.
	ErrBothCompartmentsAndGroups = errors.New("macro: group has both compartments and groups")

	// ErrNeitherCompartmentsNorGroups indicates a group with no payload.
	ErrNeitherCompartmentsNorGroups = errors.New("macro: group has neither compartments nor groups")

	// ErrReservedCompartment indicates a compartment using the reserved
	// name "N", which would silently corrupt totals aggregation.
	ErrReservedCompartment = errors.New("macro: compartment name \"N\" is reserved for the living total")

	// ErrBadTransitionName indicates a transition name that is not two
	// compartment names joined by a single underscore.
	ErrBadTransitionName = errors.New("macro: transition name must have the form <from>_<to>")

	// ErrNoDefaultTransitionFunc indicates a TransitionFuncs table whose
	// "default" entry is missing or nil, so fallback lookup cannot resolve.
	ErrNoDefaultTransitionFunc = errors.New("macro: transition_funcs has no usable \"default\" entry")
)

// Validate checks every model in the list for structural violations,
// reserved compartment names, malformed transition names and an unusable
// delta-function table. Errors name the offending group by its path from
// the model root.
func (ml ModelList) Validate() error {
	for i, m := range ml {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("model %d (%s): %w", i, m.Name, err)
		}
	}
	return nil
}

// Validate checks one model. See ModelList.Validate.
func (m *Model) Validate() error {
	if err := validateGroup(&m.Group, nil); err != nil {
		return err
	}
	if m.Parameters != nil && m.Parameters.TransitionFuncs != nil {
		if fn, ok := m.Parameters.TransitionFuncs[TransitionFuncDefault]; ok && fn == nil {
			return ErrNoDefaultTransitionFunc
		}
	}
	return nil
}

func validateGroup(g *Group, path []string) error {
	path = append(path, g.Name)
	where := groupPath(path)

	isLeaf := g.Compartments != nil
	isBranch := len(g.Groups) > 0
	switch {
	case isLeaf && isBranch:
		return fmt.Errorf("group %q: %w", where, ErrBothCompartmentsAndGroups)
	case !isLeaf && !isBranch:
		return fmt.Errorf("group %q: %w", where, ErrNeitherCompartmentsNorGroups)
	}

	for name := range g.Compartments {
		if name == TotalN {
			return fmt.Errorf("group %q: %w", where, ErrReservedCompartment)
		}
	}
	for name := range g.Transitions {
		if _, _, ok := splitTransition(name); !ok {
			return fmt.Errorf("group %q: transition %q: %w", where, name, ErrBadTransitionName)
		}
	}

	for _, child := range g.Groups {
		if err := validateGroup(child, path); err != nil {
			return err
		}
	}
	return nil
}

func groupPath(path []string) string {
	parts := make([]string, 0, len(path))
	for _, name := range path {
		if name == "" {
			name = "?"
		}
		parts = append(parts, name)
	}
	return strings.Join(parts, "/")
}
