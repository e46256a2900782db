// Package testutil provides shared test infrastructure for the coverage
// simulator: the golden disk-coverage dataset and float assertion helpers
// used by sim/ test packages.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/disk_coverage_golden.json.
// Expected counts were produced by a brute-force scan of every cell center.
type GoldenDataset struct {
	Cases []GoldenCase `json:"cases"`
}

// GoldenCase paints Disks in order onto a Width x Height canvas.
// CoveredAfterEach[k] is the covered-cell count after painting Disks[k].
type GoldenCase struct {
	Name             string       `json:"name"`
	Width            int          `json:"width"`
	Height           int          `json:"height"`
	Disks            []GoldenDisk `json:"disks"`
	CoveredAfterEach []int        `json:"covered_after_each"`
}

// GoldenDisk is a disk in cell coordinates.
type GoldenDisk struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "disk_coverage_golden.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}
	if len(dataset.Cases) == 0 {
		t.Fatal("golden dataset has no cases")
	}
	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
