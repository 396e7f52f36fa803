package macro

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func twoLeafModel() *Model {
	return &Model{
		Group: Group{
			Name: "Two towns",
			Groups: []*Group{
				{Name: "a", Compartments: Compartments{"S": 100, "I": 1, "R": 0}},
				{Name: "b", Compartments: Compartments{"S": 100, "I": 1, "R": 0}},
			},
		},
	}
}

func TestCalcTotals(t *testing.T) {
	totals := CalcTotals(&twoLeafModel().Group)
	assert.Equal(t, Totals{"S": 200, "I": 2, "R": 0, TotalN: 202}, totals)
}

func TestCalcTotalsExcludesDeadAndBirthsFromN(t *testing.T) {
	g := &Group{
		Compartments: Compartments{"S": 90, "I": 10, "D": 5, "DI": 2, "B": 3},
	}
	totals := CalcTotals(g)

	assert.Equal(t, 5.0, totals["D"], "dead still totalled by name")
	assert.Equal(t, 3.0, totals["B"])
	assert.Equal(t, 100.0, totals[TotalN], "N counts only the living")
}

func TestSumTotals(t *testing.T) {
	got := SumTotals([]Totals{
		{"S": 100, "I": 1, TotalN: 101},
		{"S": 50, "R": 7, TotalN: 57},
	})
	assert.Equal(t, Totals{"S": 150, "I": 1, "R": 7, TotalN: 158}, got)
}

func TestGrandSumTotals(t *testing.T) {
	totals := []Totals{
		{"S": 100, "I": 1, "B": 4, TotalN: 101},
		{"S": 50, "D": 3, TotalN: 50},
	}

	// Default ignore set is {"B", "N"}: the dead are counted.
	assert.InDelta(t, 154.0, GrandSumTotals(totals), 1e-12)
	// Caller-specified ignore set.
	assert.InDelta(t, 151.0, GrandSumTotals(totals, "B", "D", TotalN), 1e-12)
}

func TestSumInfectiousnessWholeModel(t *testing.T) {
	p := DefaultParameters()
	p.AsymptomaticInfectiousness = 0.75
	p.TreatmentInfectiousness = 0.001
	m := &Model{
		Group: Group{
			Groups: []*Group{
				{Compartments: Compartments{"S": 100, "I1": 10, "I2": 5}},
				{Compartments: Compartments{"S": 100, "A": 8, "T1": 1000}},
			},
		},
		Parameters: p,
	}

	assert.InDelta(t, 10+5+0.75*8+0.001*1000, SumInfectiousness(m), 1e-12)
}

func TestSumInfectiousnessDefaultsWithoutParameters(t *testing.T) {
	m := &Model{Group: Group{Compartments: Compartments{"I": 3, "A": 2, "T": 1}}}
	assert.InDelta(t, 6.0, SumInfectiousness(m), 1e-12, "all weights default to 1")
}
