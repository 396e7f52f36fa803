package macro

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// BatchResult is the outcome of one independent simulation in a batch run.
// Ident is the index of the list in the submitted batch.
type BatchResult struct {
	Ident  int
	Series ModelListSeries
	Err    error
}

// SimulateMany runs each list to completion on its own worker and collects
// the results. Nothing is shared between workers: each task gets a clone of
// its list, an Ident stamped on its models and a noise seed derived from
// the master seed and the task index, so results do not depend on
// completion order. workers bounds parallelism; values below 1 mean one
// worker per CPU.
//
// Results are indexed by Ident. The returned error is the first validation
// failure across the batch, if any; per-task errors are also recorded on
// their BatchResult.
func SimulateMany(lists []ModelList, workers int, seed int64) ([]BatchResult, error) {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	results := make([]BatchResult, len(lists))
	g := new(errgroup.Group)
	g.SetLimit(workers)
	for i, list := range lists {
		i, list := i, list
		g.Go(func() error {
			tagged := list.Clone()
			for _, m := range tagged {
				m.Ident = i
			}
			series, err := SimulateSeeded(tagged, int64(batchKey(NewSimulationKey(seed), i)))
			results[i] = BatchResult{Ident: i, Series: series, Err: err}
			return err
		})
	}
	err := g.Wait()
	return results, err
}
