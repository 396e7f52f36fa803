package macro

import "math/rand"

// Sample models, useful for tests and as starting points for real work.
// None of them is calibrated; treat the outputs as illustrative only.

// SimpleModel is a single-group SIR model of a large population with one
// index case.
func SimpleModel() *Model {
	return &Model{
		Group: Group{
			Name: "Simple model",
			Compartments: Compartments{
				"S": 57000000,
				"I": 1,
				"R": 0,
			},
			Transitions: Transitions{
				"S_I": 0.6,
				"I_R": 0.1,
			},
		},
	}
}

// TownModel nests an SIR model by sex and age band, with transition rates
// overridden at different levels of the tree.
func TownModel() *Model {
	return &Model{
		Group: Group{
			Name: "Van Wyks Dorp",
			Groups: []*Group{
				{
					Transitions: Transitions{"I_R": 0.1},
					Groups: []*Group{
						{
							Name:        "Male",
							Transitions: Transitions{"S_I": 0.3},
							Groups: []*Group{
								{
									Name:         "0-50",
									Compartments: Compartments{"S": 290.0, "I": 1.0, "R": 0.0},
								},
								{
									Name:         "50-100",
									Compartments: Compartments{"S": 200.0, "I": 0.0, "R": 0.0},
								},
							},
						},
						{
							Name:        "Female",
							Transitions: Transitions{"S_I": 0.15},
							Groups: []*Group{
								{
									Name:         "0-50",
									Compartments: Compartments{"S": 310.0, "I": 0.0, "R": 0.0},
								},
								{
									Name:         "50-100",
									Compartments: Compartments{"S": 290.0, "I": 0.0, "R": 0.0},
								},
							},
						},
					},
				},
			},
		},
	}
}

// GranichModel is an HIV treatment-cascade model after Granich et al. 2009,
// with four infection stages, matching treatment compartments and birth and
// death flows. If treatOnlyLate is set, only stage 4 starts treatment.
func GranichModel(treatOnlyLate bool) *Model {
	lifeExpectancy := 1.0 / (365.25 * 70)
	stageLength := 1.0 / (365.25 * 2.0)
	p := DefaultParameters()
	p.To = 365 * 20
	p.AfterFuncs = []Hook{ReduceInfectivity{}}
	p.ReduceInfectivity = 0.9999
	p.TreatmentInfectiousness = 0.001
	p.Noise = 0.1
	m := &Model{
		Group: Group{
			Name: "Granich et al. 2009",
			Compartments: Compartments{
				"S":  30000000.0,
				"I1": 750000.0,
				"I2": 750000.0,
				"I3": 750000.0,
				"I4": 750000.0,
				"T1": 750000.0,
				"T2": 750000.0,
				"T3": 750000.0,
				"T4": 750000.0,
				"D":  0.0,
				"DI": 0.0,
				"DT": 0.0,
				"B":  0.0,
			},
			Transitions: Transitions{
				"S_I1":  0.001,
				"I1_I2": stageLength,
				"I2_I3": stageLength,
				"I3_I4": stageLength,

				"I1_T1": 0.005,
				"I2_T2": 0.005,
				"I3_T3": 0.01,
				"I4_T4": 0.005,
				"T1_I1": 0.0001,
				"T2_I2": 0.0001,
				"T3_I3": 0.0001,
				"T4_I4": 0.0001,

				"S_D":   lifeExpectancy,
				"I1_D":  lifeExpectancy,
				"I2_D":  lifeExpectancy,
				"I3_D":  lifeExpectancy,
				"I4_D":  lifeExpectancy,
				"T1_D":  lifeExpectancy,
				"T2_D":  lifeExpectancy,
				"T3_D":  lifeExpectancy,
				"T4_D":  lifeExpectancy,
				"I4_DI": 0.005,
				"T4_DT": 0.0001,

				"B_S": (1000000.0 / 50000000.0) / 365.25,
			},
		},
		Parameters: p,
	}
	if treatOnlyLate {
		m.Transitions["I1_T1"] = 0.0
		m.Transitions["I2_T2"] = 0.0
		m.Transitions["I3_T3"] = 0.0
		m.Transitions["I3_T4"] = 0.01
	}
	return m
}

// MixRegions is an after-iteration hook that migrates a small share of
// selected compartments between the three models of RegionalCoronaList,
// alternating direction with iteration parity. It illustrates how a hook
// connects the otherwise independent models of a list.
type MixRegions struct {
	Rand *rand.Rand
}

var mixed = []string{"S", "E", "Im", "A", "R"}

func (x MixRegions) Apply(m *Model, list ModelList) {
	if len(list) < 3 {
		return
	}
	noise := 0.0
	if m.Parameters != nil {
		noise = m.Parameters.Noise
	}
	calc := func(a, b, prop float64) float64 {
		result := min(a, b) * prop
		if noise != 0 {
			result *= uniformFactor(x.Rand, noise)
		}
		return result
	}
	informal, formal, rural := list[0].Groups, list[1].Groups, list[2].Groups
	for i := range informal {
		for _, key := range mixed {
			formalToInformal := calc(informal[i].Compartments[key], formal[i].Compartments[key], 0.02)
			informalToRural := calc(informal[i].Compartments[key], rural[i].Compartments[key], 0.01)
			ruralToFormal := calc(formal[i].Compartments[key], rural[i].Compartments[key], 0.01)
			if m.Iteration%2 == 0 {
				formalToInformal = -formalToInformal
				informalToRural = -informalToRural
				ruralToFormal = -ruralToFormal
			}
			formal[i].Compartments[key] += formalToInformal
			informal[i].Compartments[key] -= formalToInformal

			informal[i].Compartments[key] += informalToRural
			rural[i].Compartments[key] -= informalToRural

			rural[i].Compartments[key] += ruralToFormal
			formal[i].Compartments[key] -= ruralToFormal
		}
	}
}

// RegionalCoronaList is an uncalibrated Covid-19 model list for South
// Africa: urban informal, urban formal and rural models, each split into
// three age bands, connected by the MixRegions hook on the rural model.
func RegionalCoronaList() ModelList {
	params := func() *Parameters {
		p := DefaultParameters()
		p.To = 365
		p.RecordFrequency = 1
		p.RecordLast = false
		p.Noise = 0.1
		p.AsymptomaticInfectiousness = 0.75
		p.ReduceInfectivity = 0.999
		p.AfterFuncs = []Hook{ReduceInfectivity{}}
		p.TransitionFuncs = map[string]DeltaFunc{
			"S_E": WeightedInfectionForce{},
		}
		return p
	}

	ageBands := func(s0, s1, s2 float64, late float64) []*Group {
		return []*Group{
			{
				Name: "0-24",
				Transitions: Transitions{
					"E_A":  0.25,
					"E_Im": 0.01,
					"Ic_D": 0.002,
				},
				Compartments: Compartments{
					"S": s0, "E": 10, "Im": 0, "Ic": 0, "A": 0, "R": 0, "D": 0,
				},
			},
			{
				Name:        "25-54",
				Transitions: Transitions{"Ic_D": late / 10},
				Compartments: Compartments{
					"S": s1, "E": 0, "Im": 0, "Ic": 0, "A": 0, "R": 0, "D": 0,
				},
			},
			{
				Name:        "55-",
				Transitions: Transitions{"Ic_D": late},
				Compartments: Compartments{
					"S": s2, "E": 0, "Im": 0, "Ic": 0, "A": 0, "R": 0, "D": 0,
				},
			},
		}
	}

	shared := func(contactRate float64) Transitions {
		return Transitions{
			"S_E":   contactRate,
			"E_A":   0.125,
			"E_Im":  0.125,
			"Im_Ic": 0.2,
			"Ic_R":  0.2,
			"A_R":   0.2,
		}
	}

	ruralParams := params()
	ruralParams.AfterFuncs = []Hook{
		ReduceInfectivity{},
		MixRegions{Rand: rand.New(rand.NewSource(1))},
	}

	return ModelList{
		{
			Group: Group{
				Name:        "Urban informal",
				Transitions: shared(0.4),
				Groups:      ageBands(2100000, 2100000, 600000, 0.032),
			},
			Parameters: params(),
		},
		{
			Group: Group{
				Name:        "Urban formal",
				Transitions: shared(0.3),
				Groups:      ageBands(16940000, 16940000, 4620000, 0.03),
			},
			Parameters: params(),
		},
		{
			Group: Group{
				Name:        "Rural",
				Transitions: shared(0.27),
				Groups:      ageBands(7260000, 7260000, 2000000, 0.035),
			},
			Parameters: ruralParams,
		},
	}
}
