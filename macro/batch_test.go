package macro

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulateManyTagsAndOrdersResults(t *testing.T) {
	lists := []ModelList{
		{SimpleModel()},
		{TownModel()},
		{SimpleModel()},
	}

	results, err := SimulateMany(lists, 2, 1)
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i, res := range results {
		assert.Equal(t, i, res.Ident, "results indexed by submission order")
		require.NoError(t, res.Err)
		require.NotEmpty(t, res.Series)
		for _, m := range res.Series[0].Models {
			assert.Equal(t, i, m.Ident, "models stamped with their task ident")
		}
	}
}

func TestSimulateManyMatchesSequentialRuns(t *testing.T) {
	// Without noise, a batch run of the same list is just N identical
	// simulations.
	lists := []ModelList{{SimpleModel()}, {SimpleModel()}}
	results, err := SimulateMany(lists, 0, 1)
	require.NoError(t, err)

	direct, err := SimulateSeeded(ModelList{SimpleModel()}, 1)
	require.NoError(t, err)

	last := len(direct) - 1
	for _, res := range results {
		assert.Equal(t,
			direct[last].Models[0].Compartments,
			res.Series[last].Models[0].Compartments)
	}
}

func TestSimulateManyDoesNotMutateInput(t *testing.T) {
	m := SimpleModel()
	_, err := SimulateMany([]ModelList{{m}, {m}}, 2, 1)
	require.NoError(t, err)

	assert.Equal(t, 0, m.Ident)
	assert.Equal(t, 57000000.0, m.Compartments["S"])
}

func TestSimulateManyReportsTaskErrors(t *testing.T) {
	lists := []ModelList{
		{SimpleModel()},
		{{Group: Group{Name: "hollow"}}},
	}

	results, err := SimulateMany(lists, 2, 1)
	require.ErrorIs(t, err, ErrNeitherCompartmentsNorGroups)
	require.NoError(t, results[0].Err)
	require.ErrorIs(t, results[1].Err, ErrNeitherCompartmentsNorGroups)
}
