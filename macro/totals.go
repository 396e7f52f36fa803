package macro

import "gonum.org/v1/gonum/floats"

// Totals is a flat mapping of compartment name to its sum across all leaf
// groups of a model, plus the synthetic living-population key "N".
type Totals map[string]float64

// TotalN is the reserved key for the living population total.
const TotalN = "N"

// CalcTotals sums every compartment by name across all leaf groups of the
// tree rooted at g, and computes N as the sum of all values excluding B-
// and D-prefixed compartments. Accumulation order is fixed (depth-first,
// compartment names sorted) so results are reproducible.
func CalcTotals(g *Group) Totals {
	totals := Totals{TotalN: 0}
	var living []float64
	g.Walk(func(grp *Group) {
		if !grp.IsLeaf() {
			return
		}
		for _, name := range sortedNames(grp.Compartments) {
			totals[name] += grp.Compartments[name]
			if countedInN(name) {
				living = append(living, grp.Compartments[name])
			}
		}
	})
	totals[TotalN] = floats.Sum(living)
	return totals
}

// SumTotals unions several totals mappings, summing matching keys and
// treating absent keys as zero. Use it to combine the totals of the
// independent models in a ModelList.
func SumTotals(totals []Totals) Totals {
	result := Totals{}
	for _, t := range totals {
		for name, v := range t {
			result[name] += v
		}
	}
	return result
}

// GrandSumTotals sums every value across every mapping, excluding the named
// keys. With no keys given it excludes "B" and "N", yielding the total
// number of individuals alive or dead.
func GrandSumTotals(totals []Totals, ignore ...string) float64 {
	if len(ignore) == 0 {
		ignore = []string{"B", TotalN}
	}
	skip := make(map[string]bool, len(ignore))
	for _, name := range ignore {
		skip[name] = true
	}
	var values []float64
	for _, t := range totals {
		for _, name := range sortedNames(t) {
			if !skip[name] {
				values = append(values, t[name])
			}
		}
	}
	return floats.Sum(values)
}

// SumInfectiousness walks the entire model and returns the weighted sum of
// its infectious compartments: I-prefixed at weight 1, A-prefixed at
// AsymptomaticInfectiousness and T-prefixed at TreatmentInfectiousness.
func SumInfectiousness(m *Model) float64 {
	ai := 1.0
	ti := 1.0
	if m.Parameters != nil {
		ai = m.Parameters.AsymptomaticInfectiousness
		ti = m.Parameters.TreatmentInfectiousness
	}
	var weighted []float64
	m.Walk(func(grp *Group) {
		if !grp.IsLeaf() {
			return
		}
		for _, name := range sortedNames(grp.Compartments) {
			switch classify(name) {
			case classInfectious:
				weighted = append(weighted, grp.Compartments[name])
			case classAsymptomatic:
				weighted = append(weighted, ai*grp.Compartments[name])
			case classTreatment:
				weighted = append(weighted, ti*grp.Compartments[name])
			}
		}
	})
	return floats.Sum(weighted)
}
