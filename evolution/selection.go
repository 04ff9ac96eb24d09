package evolution

import (
	"math"
	"sort"

	"github.com/JamesCalleja/Evolution-Visualizer/sim"
)

// EliteSelector keeps the top fraction of a generation, ranked by food
// eaten. Ties rank by spawn index, so selection is deterministic for a
// given generation outcome. At least one creature always survives,
// regardless of how small the fraction is.
type EliteSelector struct {
	Fraction float64
}

// Rank returns the results sorted best-first: descending food eaten,
// ascending spawn index among equals. The input is not modified.
func (s EliteSelector) Rank(results []sim.CreatureResult) []sim.CreatureResult {
	ranked := make([]sim.CreatureResult, len(results))
	copy(ranked, results)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].FoodEaten != ranked[j].FoodEaten {
			return ranked[i].FoodEaten > ranked[j].FoodEaten
		}
		return ranked[i].Index < ranked[j].Index
	})
	return ranked
}

// Select ranks the results and returns the survivors. Dead creatures
// compete on equal footing: a creature that ate well and then starved can
// still pass on its genome.
func (s EliteSelector) Select(results []sim.CreatureResult) []sim.CreatureResult {
	ranked := s.Rank(results)
	n := s.Count(len(ranked))
	return ranked[:n]
}

// Count returns the number of survivors for a population of the given size.
func (s EliteSelector) Count(population int) int {
	if population == 0 {
		return 0
	}
	n := int(math.Ceil(s.Fraction * float64(population)))
	if n < 1 {
		n = 1
	}
	if n > population {
		n = population
	}
	return n
}
