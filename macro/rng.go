package macro

import (
	"fmt"
	"hash/fnv"
	"math/rand"
)

// SimulationKey uniquely identifies a reproducible simulation run. Two runs
// with the same SimulationKey and identical models MUST produce identical
// results, noise included.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// noiseSource hands out deterministic, isolated RNG streams, one per model
// in a list. Stream seeds derive from the master key XOR a hash of the
// stream name, so adding a model to a list never perturbs the draws of the
// others.
//
// Thread-safety: NOT thread-safe. Each Simulator owns one noiseSource and
// runs on a single goroutine.
type noiseSource struct {
	key     SimulationKey
	streams map[string]*rand.Rand
}

func newNoiseSource(key SimulationKey) *noiseSource {
	return &noiseSource{
		key:     key,
		streams: make(map[string]*rand.Rand),
	}
}

// forModel returns the stream for the model at position index in the list.
// The same index always returns the same cached *rand.Rand.
func (n *noiseSource) forModel(index int) *rand.Rand {
	name := fmt.Sprintf("model_%d", index)
	if rng, ok := n.streams[name]; ok {
		return rng
	}
	rng := rand.New(rand.NewSource(int64(n.key) ^ fnv1a64(name)))
	n.streams[name] = rng
	return rng
}

// batchKey derives the simulation key for task index within a batch run,
// keeping sibling tasks' streams independent of worker scheduling.
func batchKey(master SimulationKey, index int) SimulationKey {
	return SimulationKey(int64(master) ^ fnv1a64(fmt.Sprintf("batch_%d", index)))
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}

// uniformFactor draws a multiplier in [1-noise, 1+noise].
func uniformFactor(rng *rand.Rand, noise float64) float64 {
	return 1.0 - noise + 2.0*noise*rng.Float64()
}
