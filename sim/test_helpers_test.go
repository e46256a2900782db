package sim

import "math/rand"

// recount rescans every cell of c, independent of the incremental counter.
func recount(c *RasterCanvas) int {
	n := 0
	for _, v := range c.cells {
		if v {
			n++
		}
	}
	return n
}

// smallTrialConfig returns a quick-converging trial on a 40x40 canvas.
func smallTrialConfig() TrialConfig {
	return TrialConfig{
		Width:          40,
		Height:         40,
		SensingRadius:  8,
		TargetFraction: 0.95,
		Milestones:     []int{1, 2, 3, 5, 10, 20},
		MaxSensors:     10000,
	}
}

// smallExperimentConfig returns a fast sweep: a 10x8 region at 4 cells per
// unit, radii 1, 2 and 3 units, 4 trials each.
func smallExperimentConfig() ExperimentConfig {
	return ExperimentConfig{
		Region:         RegionConfig{Width: 10, Height: 8, CellsPerUnit: 4},
		Sweep:          RadiusSweep{Start: 1, End: 3, Step: 1},
		Trials:         4,
		TargetCoverage: 95,
		Milestones:     []int{1, 5, 10, 50},
		MaxSensors:     10000,
		Workers:        1,
		Seed:           7,
	}
}

func seededRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
