package sim

import (
	"fmt"
	"hash/fnv"
	"math/rand"
)

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible experiment.
// Two experiments with the same SimulationKey and identical configuration
// MUST produce bit-for-bit identical results, regardless of worker count.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// === Subsystem names ===

// SubsystemTrial returns the subsystem name for one trial of one radius.
// Radius is identified by its index in the sweep so that float formatting
// never influences seeding.
func SubsystemTrial(radiusIndex, trial int) string {
	return fmt.Sprintf("radius_%d/trial_%d", radiusIndex, trial)
}

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG streams per subsystem.
//
// Derivation formula: masterSeed XOR fnv1a64(subsystemName).
//
// Streams are independent *rand.Rand values; hand each one to exactly one
// worker. A *rand.Rand is not safe for concurrent use.
type PartitionedRNG struct {
	key SimulationKey
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{key: key}
}

// ForSubsystem returns a freshly seeded RNG for the named subsystem.
// Every call restarts the stream from the same derived seed, which is what
// replay relies on. Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	return rand.New(rand.NewSource(p.deriveSeed(name)))
}

// ForTrial returns the RNG stream for one trial of one radius.
func (p *PartitionedRNG) ForTrial(radiusIndex, trial int) *rand.Rand {
	return p.ForSubsystem(SubsystemTrial(radiusIndex, trial))
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

func (p *PartitionedRNG) deriveSeed(name string) int64 {
	return int64(p.key) ^ fnv1a64(name)
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}

// unitLattice is the number of steps in the closed unit interval draw.
const unitLattice = 1 << 53

// closedUnit draws uniformly from the closed interval [0, 1].
// rand.Float64 never returns 1, which would make the far boundary of the
// region unreachable as a sensor position.
func closedUnit(rng *rand.Rand) float64 {
	return float64(rng.Int63n(unitLattice+1)) / unitLattice
}
