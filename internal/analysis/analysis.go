package analysis

import (
	"math/rand"
	"sort"

	"github.com/cropscope/cropscope-research-cli/internal/features"
)

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func sortedIndexNames(vector features.Vector) []string {
	names := make([]string, 0, len(vector.Indices))
	for name := range vector.Indices {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
