package macro

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordedIterations(series ModelListSeries) []int {
	var iters []int
	for _, snap := range series {
		iters = append(iters, snap.Iteration)
	}
	return iters
}

func TestRecordingCadence(t *testing.T) {
	series, err := SimulateSeeded(ModelList{SimpleModel()}, 1)
	require.NoError(t, err)

	assert.Equal(t,
		[]int{0, 50, 100, 150, 200, 250, 300, 350, 365},
		recordedIterations(series))
}

func TestRecordingCadenceFrequencyOne(t *testing.T) {
	m := SimpleModel()
	m.Parameters = DefaultParameters()
	m.Parameters.To = 3
	m.Parameters.RecordFrequency = 1
	series, err := SimulateSeeded(ModelList{m}, 1)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, 2, 3}, recordedIterations(series))
}

func TestRecordingFirstAndLastFlags(t *testing.T) {
	m := SimpleModel()
	m.Parameters = DefaultParameters()
	m.Parameters.To = 120
	m.Parameters.RecordFirst = false
	series, err := SimulateSeeded(ModelList{m}, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{50, 100, 120}, recordedIterations(series))

	m = SimpleModel()
	m.Parameters = DefaultParameters()
	m.Parameters.To = 120
	m.Parameters.RecordLast = false
	series, err = SimulateSeeded(ModelList{m}, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 50, 100}, recordedIterations(series))
}

func TestSimulateDoesNotMutateInput(t *testing.T) {
	m := SimpleModel()
	_, err := SimulateSeeded(ModelList{m}, 1)
	require.NoError(t, err)

	assert.Equal(t, 57000000.0, m.Compartments["S"])
	assert.Nil(t, m.Parameters, "defaults are filled on a clone, not the input")
}

func TestSnapshotIsolation(t *testing.T) {
	series, err := SimulateSeeded(ModelList{SimpleModel()}, 1)
	require.NoError(t, err)
	require.True(t, len(series) >= 2)

	first := series[0].Models[0].Compartments["S"]
	series[1].Models[0].Compartments["S"] = -99

	assert.Equal(t, first, series[0].Models[0].Compartments["S"],
		"mutating one snapshot never changes another")
	assert.Equal(t, 57000000.0, first)
}

func TestDeterminismWithoutNoise(t *testing.T) {
	// Different seeds: with Noise at zero the RNG is never consulted.
	a, err := SimulateSeeded(ModelList{SimpleModel()}, 1)
	require.NoError(t, err)
	b, err := SimulateSeeded(ModelList{SimpleModel()}, 2)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestDeterminismWithNoiseAndSameSeed(t *testing.T) {
	noisy := func(seed int64) ModelListSeries {
		m := SimpleModel()
		m.Parameters = DefaultParameters()
		m.Parameters.Noise = 0.05
		series, err := SimulateSeeded(ModelList{m}, seed)
		require.NoError(t, err)
		return series
	}

	assert.Equal(t, noisy(7), noisy(7), "same seed, same draws")

	a := noisy(7)
	b := noisy(8)
	last := len(a) - 1
	assert.NotEqual(t,
		a[last].Models[0].Compartments["S"],
		b[last].Models[0].Compartments["S"],
		"different seeds diverge")
}

// Final S/I/R for the spec's SIR scenario, pinned from the deterministic
// recurrence. The exact last digits depend on accumulation order, hence
// the tolerances.
func TestEndToEndSIR(t *testing.T) {
	m := &Model{
		Group: Group{
			Name:         "SIR",
			Compartments: Compartments{"S": 1000000, "I": 1, "R": 0},
			Transitions:  Transitions{"S_I": 0.6, "I_R": 0.1},
		},
	}
	series, err := SimulateSeeded(ModelList{m}, 1)
	require.NoError(t, err)

	final := series[len(series)-1]
	require.Equal(t, 365, final.Iteration)
	c := final.Models[0].Compartments
	assert.InDelta(t, 1149.5728001747111, c["S"], 1e-4)
	assert.InDelta(t, 9.511394664033693e-10, c["I"], 1e-15)
	assert.InDelta(t, 998851.4271998239, c["R"], 1e-3)
	assert.InDelta(t, 1000001.0, CalcTotals(&final.Models[0].Group)[TotalN], 1e-4)
}

// Same regression against the original 57-million-person run.
func TestEndToEndSimpleModel(t *testing.T) {
	series, err := SimulateSeeded(ModelList{SimpleModel()}, 1)
	require.NoError(t, err)

	at350 := series[len(series)-2]
	require.Equal(t, 350, at350.Iteration)
	c := at350.Models[0].Compartments
	assert.InDelta(t, 65525.67886409854, c["S"], 1e-3)
	assert.InDelta(t, 7.386505182276728e-07, c["I"], 1e-12)
	assert.InDelta(t, 56934475.321135156, c["R"], 1e-1)
}

// Regression for a nested tree with rate overrides at two levels.
func TestEndToEndTownModel(t *testing.T) {
	series, err := SimulateSeeded(ModelList{TownModel()}, 1)
	require.NoError(t, err)

	at350 := series[len(series)-2]
	require.Equal(t, 350, at350.Iteration)
	c := at350.Models[0].Groups[0].Groups[0].Groups[0].Compartments
	assert.InDelta(t, 25.590872768816183, c["S"], 1e-6)
	assert.InDelta(t, 6.371396740780493e-07, c["I"], 1e-12)
	assert.InDelta(t, 265.4091265940443, c["R"], 1e-6)
	assert.InDelta(t, 1091.0, CalcTotals(&at350.Models[0].Group)[TotalN], 1e-6)
}

func TestSimulateRejectsInvalidInput(t *testing.T) {
	_, err := Simulate(nil)
	require.ErrorIs(t, err, ErrEmptyModelList)

	_, err = Simulate(ModelList{{Group: Group{Name: "hollow"}}})
	require.ErrorIs(t, err, ErrNeitherCompartmentsNorGroups)
}

func TestZeroStepRun(t *testing.T) {
	m := SimpleModel()
	m.Parameters = DefaultParameters()
	m.Parameters.From = 5
	m.Parameters.To = 5
	series, err := SimulateSeeded(ModelList{m}, 1)
	require.NoError(t, err)

	require.Len(t, series, 1, "first and last coincide; recorded once")
	assert.Equal(t, 5, series[0].Iteration)
}
