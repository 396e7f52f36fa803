package macro

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrEmptyModelList indicates a simulation request with no models.
var ErrEmptyModelList = errors.New("macro: model list is empty")

// Simulator drives a ModelList from its first to its last iteration,
// recording snapshots along the way. It owns deep copies of the input
// models; the caller's models are never mutated.
type Simulator struct {
	models ModelList
	noise  *noiseSource
	from   int
	to     int
}

// NewSimulator validates the list, clones it, fills missing parameters from
// the defaults and prepares deterministic noise streams derived from seed.
// The iteration range is the union of the models' [From, To) windows;
// recording cadence comes from the first model's parameters.
func NewSimulator(list ModelList, seed int64) (*Simulator, error) {
	if len(list) == 0 {
		return nil, ErrEmptyModelList
	}
	if err := list.Validate(); err != nil {
		return nil, err
	}
	models := list.Clone()
	from := 0
	to := 0
	for i, m := range models {
		m.Parameters = m.Parameters.normalized()
		if i == 0 || m.Parameters.From < from {
			from = m.Parameters.From
		}
		if i == 0 || m.Parameters.To > to {
			to = m.Parameters.To
		}
		m.Iteration = m.Parameters.From
	}
	return &Simulator{
		models: models,
		noise:  newNoiseSource(NewSimulationKey(seed)),
		from:   from,
		to:     to,
	}, nil
}

// Run executes the simulation and returns the recorded series. A snapshot
// is recorded at the first iteration if RecordFirst, at every iteration
// where (iteration - from) is a multiple of RecordFrequency, and at the
// last iteration if RecordLast; each index is recorded at most once.
func (s *Simulator) Run() ModelListSeries {
	p := s.models[0].Parameters
	logrus.Infof("simulating %d model(s) from iteration %d to %d", len(s.models), s.from, s.to)

	var series ModelListSeries
	if p.RecordFirst {
		series = append(series, s.snapshot(s.from))
	}
	for iteration := s.from; iteration < s.to; iteration++ {
		logrus.Debugf("[iteration %d] advancing %d model(s)", iteration, len(s.models))
		s.step(iteration)
		current := iteration + 1
		onCadence := (current-s.from)%p.RecordFrequency == 0
		if current == s.to {
			if p.RecordLast || onCadence {
				series = append(series, s.snapshot(current))
			}
		} else if onCadence {
			series = append(series, s.snapshot(current))
		}
	}
	if s.to == s.from && !p.RecordFirst && p.RecordLast {
		series = append(series, s.snapshot(s.from))
	}
	logrus.Infof("simulation ended at iteration %d with %d snapshot(s)", s.to, len(series))
	return series
}

// snapshot deep-copies the live models so later mutation never reaches a
// recorded state.
func (s *Simulator) snapshot(iteration int) Snapshot {
	return Snapshot{Iteration: iteration, Models: s.models.Clone()}
}

// Simulate runs the list with a time-derived seed. Use SimulateSeeded for
// reproducible noise.
func Simulate(list ModelList) (ModelListSeries, error) {
	return SimulateSeeded(list, time.Now().UnixNano())
}

// SimulateSeeded runs the list with the given seed. With Noise at zero the
// seed has no effect and two runs with identical input produce identical
// series.
func SimulateSeeded(list ModelList, seed int64) (ModelListSeries, error) {
	s, err := NewSimulator(list, seed)
	if err != nil {
		return nil, err
	}
	return s.Run(), nil
}
